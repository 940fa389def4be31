package config

import (
	"fmt"
	"regexp"
)

// Validate checks that the configuration is internally consistent. Template
// regexps must compile, and an SSH connection needs a host and a central
// path to point at.
func (c *Config) Validate() error {
	if c.LocalPath == "" {
		return &ConfigError{Type: ValidationError, Message: "local_path cannot be empty"}
	}

	switch c.ConnectionMethod {
	case "", MethodLocalFilesystem:
	case MethodSSH:
		if c.CentralHost == "" {
			return &ConfigError{Type: ValidationError, Message: "connection_method ssh requires central_host"}
		}
		if c.CentralPath == "" {
			return &ConfigError{Type: ValidationError, Message: "connection_method ssh requires central_path"}
		}
	default:
		return &ConfigError{
			Type:    ValidationError,
			Message: fmt.Sprintf("unknown connection_method %q (expected %q or %q)", c.ConnectionMethod, MethodLocalFilesystem, MethodSSH),
		}
	}

	for _, tpl := range []struct{ key, pattern string }{
		{"name_templates.sub", c.NameTemplates.Sub},
		{"name_templates.ses", c.NameTemplates.Ses},
	} {
		if tpl.pattern == "" {
			continue
		}
		if _, err := regexp.Compile(tpl.pattern); err != nil {
			return &ConfigError{
				Type:    ValidationError,
				Message: fmt.Sprintf("%s is not a valid regular expression: %s", tpl.key, err),
			}
		}
	}

	return nil
}
