package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"nbshuttle/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set project configuration values",
	Long: `Get or set project configuration values.

Usage:
  nbshuttle config                           # Show all config
  nbshuttle config central-host              # Get one value
  nbshuttle config central-host hpc.uni.edu  # Set a value

Keys:
  local-path         Local project copy (defaults to the project root)
  central-path       Central store path
  central-host       SSH host of the central store
  central-user       SSH user on the central store
  connection-method  local_filesystem or ssh
  template-on        true/false: enforce the name templates
  template-sub       Regexp every subject name must match
  template-ses       Regexp every session name must match`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	p, out, err := openProject()
	if err != nil {
		return err
	}
	cfg := p.Cfg

	if len(args) == 0 {
		out.Info("local-path:         %s", cfg.LocalPath)
		out.Info("central-path:       %s", cfg.CentralPath)
		out.Info("central-host:       %s", cfg.CentralHost)
		out.Info("central-user:       %s", cfg.CentralUser)
		out.Info("connection-method:  %s", cfg.ConnectionMethod)
		out.Info("template-on:        %t", cfg.NameTemplates.On)
		out.Info("template-sub:       %s", cfg.NameTemplates.Sub)
		out.Info("template-ses:       %s", cfg.NameTemplates.Ses)
		return nil
	}

	key := args[0]
	if len(args) == 1 {
		value, err := getConfigKey(cfg, key)
		if err != nil {
			return err
		}
		out.Info("%s", value)
		return nil
	}

	if err := setConfigKey(cfg, key, args[1]); err != nil {
		return err
	}
	if err := config.Save(cfg, p.Root); err != nil {
		return err
	}
	out.Success("set %s", key)
	return nil
}

func getConfigKey(cfg *config.Config, key string) (string, error) {
	switch key {
	case "local-path":
		return cfg.LocalPath, nil
	case "central-path":
		return cfg.CentralPath, nil
	case "central-host":
		return cfg.CentralHost, nil
	case "central-user":
		return cfg.CentralUser, nil
	case "connection-method":
		return cfg.ConnectionMethod, nil
	case "template-on":
		return strconv.FormatBool(cfg.NameTemplates.On), nil
	case "template-sub":
		return cfg.NameTemplates.Sub, nil
	case "template-ses":
		return cfg.NameTemplates.Ses, nil
	default:
		return "", fmt.Errorf("unknown configuration key %q", key)
	}
}

func setConfigKey(cfg *config.Config, key, value string) error {
	switch key {
	case "local-path":
		cfg.LocalPath = value
	case "central-path":
		cfg.CentralPath = value
	case "central-host":
		cfg.CentralHost = value
	case "central-user":
		cfg.CentralUser = value
	case "connection-method":
		cfg.ConnectionMethod = value
	case "template-on":
		on, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("template-on must be true or false, got %q", value)
		}
		cfg.NameTemplates.On = on
	case "template-sub":
		cfg.NameTemplates.Sub = value
	case "template-ses":
		cfg.NameTemplates.Ses = value
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}
	return nil
}
