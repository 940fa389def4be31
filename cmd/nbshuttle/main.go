// Package main provides the nbshuttle CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"nbshuttle/internal/output"
	"nbshuttle/internal/project"
)

// Version is set at build time via ldflags.
var Version = "dev"

var (
	projectRoot string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "nbshuttle",
	Short: "Manage and validate NeuroBlueprint project folders",
	Long: `nbshuttle creates, validates and transfers NeuroBlueprint-compliant
research-data folder hierarchies (sub-XXX/ses-XXX/<datatype>).

Names may embed tags that are expanded on the way in: @DATE@, @TIME@ and
@DATETIME@ insert the current timestamp, sub-01@TO@03 expands to a numeric
range, and @*@ is a wildcard in search and transfer contexts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectRoot, "project", "", "Project root directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.Version = Version
}

func main() {
	// A .env next to the working directory may override central-store
	// settings; absence is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		out := output.New(output.DefaultConfig())
		out.Error("%v", err)
		os.Exit(1)
	}
}

// openProject resolves the project root and loads its configuration.
func openProject() (*project.Project, *output.Output, error) {
	root := projectRoot
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, nil, err
		}
		root = cwd
	}

	p, err := project.Open(root)
	if err != nil {
		return nil, nil, err
	}

	cfg := output.DefaultConfig()
	cfg.Verbose = verbose
	return p, output.New(cfg), nil
}
