package main

import (
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"nbshuttle/internal/names"
	"nbshuttle/internal/validate"
	"nbshuttle/internal/watcher"
)

var (
	validateTop     string
	validateScope   string
	validateStrict  bool
	validateWatch   bool
	validateSettled time.Duration
)

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateTop, "top", string(names.RawData), "Top-level folder (rawdata or derivatives)")
	validateCmd.Flags().StringVar(&validateScope, "scope", "local", "Project copies to validate: local, central or both")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Report every non-NeuroBlueprint folder instead of ignoring it")
	validateCmd.Flags().BoolVar(&validateWatch, "watch", false, "Keep running and revalidate when project folders change")
	validateCmd.Flags().DurationVar(&validateSettled, "settle", watcher.DefaultDebounce, "Settle delay before a change triggers revalidation in watch mode")
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate every folder name in the project",
	Long: `Validate the whole project tree against the NeuroBlueprint naming
rules: per-name structure, duplicate identifiers, zero-padding consistency
and (when configured) the name templates. All findings are reported at
once. Exits non-zero when any finding exists.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	p, out, err := openProject()
	if err != nil {
		return err
	}

	scopes, err := parseScopes(validateScope)
	if err != nil {
		return err
	}

	runOnce := func() (int, error) {
		findings, err := p.ValidateProject(names.TopLevel(validateTop), scopes, validateStrict)
		if err != nil {
			return 0, err
		}
		out.Findings(findings)
		if len(findings) == 0 {
			out.Success("project is valid")
		}
		return len(findings), nil
	}

	count, err := runOnce()
	if err != nil {
		return err
	}

	if !validateWatch {
		if count > 0 {
			return errors.New("validation found problems")
		}
		return nil
	}

	root := filepath.Join(p.Cfg.LocalPath, validateTop)
	w := watcher.New(root, validateSettled, func() {
		out.Info("project changed; revalidating")
		if _, err := runOnce(); err != nil {
			out.Error("%v", err)
		}
	})
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()
	out.Info("watching %s (ctrl-c to stop)", root)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}

// parseScopes maps the --scope flag onto validation scopes.
func parseScopes(flag string) ([]validate.Scope, error) {
	switch flag {
	case "local":
		return []validate.Scope{validate.ScopeLocal}, nil
	case "central":
		return []validate.Scope{validate.ScopeCentral}, nil
	case "both":
		return []validate.Scope{validate.ScopeLocal, validate.ScopeCentral}, nil
	default:
		return nil, errors.New(`--scope must be "local", "central" or "both"`)
	}
}
