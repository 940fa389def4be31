// Package config handles project configuration loading and persistence for
// nbshuttle. Configuration lives in <project>/.nbshuttle/config.yaml; the
// name-template settings it carries are handed by value into the validation
// core, which never reads ambient state of its own.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"nbshuttle/internal/validate"
)

// ConfigErrorType represents the type of configuration error.
type ConfigErrorType string

const (
	FileNotFound    ConfigErrorType = "FILE_NOT_FOUND"
	InvalidYAML     ConfigErrorType = "INVALID_YAML"
	ValidationError ConfigErrorType = "VALIDATION_ERROR"
)

// ConfigError represents an error that occurred during configuration
// loading or persistence.
type ConfigError struct {
	Type    ConfigErrorType
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	switch e.Type {
	case FileNotFound:
		return fmt.Sprintf("configuration file not found: %s", e.Path)
	case InvalidYAML:
		return fmt.Sprintf("invalid YAML in configuration file: %s", e.Message)
	case ValidationError:
		return fmt.Sprintf("configuration validation error: %s", e.Message)
	default:
		return fmt.Sprintf("configuration error: %s", e.Message)
	}
}

// Connection methods for reaching the central store.
const (
	MethodLocalFilesystem = "local_filesystem"
	MethodSSH             = "ssh"
)

// NameTemplates is the persisted form of the per-prefix name templates.
type NameTemplates struct {
	On  bool   `yaml:"on"`
	Sub string `yaml:"sub,omitempty"`
	Ses string `yaml:"ses,omitempty"`
}

// Core converts the persisted templates into the form the validation core
// consumes.
func (t NameTemplates) Core() *validate.NameTemplates {
	return &validate.NameTemplates{On: t.On, Sub: t.Sub, Ses: t.Ses}
}

// Config holds all settings of one nbshuttle project.
type Config struct {
	LocalPath        string        `yaml:"local_path"`
	CentralPath      string        `yaml:"central_path,omitempty"`
	CentralHost      string        `yaml:"central_host,omitempty"`
	CentralUser      string        `yaml:"central_user,omitempty"`
	ConnectionMethod string        `yaml:"connection_method,omitempty"`
	NameTemplates    NameTemplates `yaml:"name_templates"`
}

const (
	// ProjectDir is the settings directory at the project root.
	ProjectDir = ".nbshuttle"
	// ConfigFile is the configuration file name inside ProjectDir.
	ConfigFile = "config.yaml"
	// AuditFile is the event log file name inside ProjectDir.
	AuditFile = "events.jsonl"
)

// Path returns the configuration file path for a project root.
func Path(root string) string {
	return filepath.Join(root, ProjectDir, ConfigFile)
}

// AuditPath returns the event log path for a project root.
func AuditPath(root string) string {
	return filepath.Join(root, ProjectDir, AuditFile)
}

// Load reads, parses and validates the configuration of the project rooted
// at root.
func Load(root string) (*Config, error) {
	path := Path(root)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &ConfigError{Type: FileNotFound, Path: path}
		}
		return nil, &ConfigError{Type: FileNotFound, Path: path, Message: err.Error()}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Type: InvalidYAML, Message: err.Error()}
	}

	if cfg.LocalPath == "" {
		cfg.LocalPath = root
	}
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrCreate loads the project configuration, or returns a default
// configuration rooted at root when none is persisted yet.
func LoadOrCreate(root string) (*Config, error) {
	cfg, err := Load(root)
	if err != nil {
		var cerr *ConfigError
		if errors.As(err, &cerr) && cerr.Type == FileNotFound {
			cfg = &Config{
				LocalPath:        root,
				ConnectionMethod: MethodLocalFilesystem,
			}
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// Save serializes and writes the configuration under the project root,
// creating the settings directory when needed.
func Save(cfg *Config, root string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return &ConfigError{Type: InvalidYAML, Message: err.Error()}
	}
	if err := os.MkdirAll(filepath.Join(root, ProjectDir), 0755); err != nil {
		return &ConfigError{Type: ValidationError, Message: fmt.Sprintf("failed to create settings directory: %s", err)}
	}
	if err := os.WriteFile(Path(root), data, 0644); err != nil {
		return &ConfigError{Type: ValidationError, Message: fmt.Sprintf("failed to write configuration file: %s", err)}
	}
	return nil
}

// applyEnvOverrides lets environment variables (optionally sourced from a
// .env file by the CLI) override the persisted central-store settings.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NBSHUTTLE_CENTRAL_PATH"); v != "" {
		cfg.CentralPath = v
	}
	if v := os.Getenv("NBSHUTTLE_CENTRAL_HOST"); v != "" {
		cfg.CentralHost = v
	}
	if v := os.Getenv("NBSHUTTLE_CENTRAL_USER"); v != "" {
		cfg.CentralUser = v
	}
	if v := os.Getenv("NBSHUTTLE_CONNECTION_METHOD"); v != "" {
		cfg.ConnectionMethod = v
	}
}
