// Package transfer builds and runs the external rclone invocations that
// move validated folder trees between the local machine and the central
// store. Only argument construction and result capture live here; the sync
// protocol itself belongs to rclone.
package transfer

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/uuid"

	"nbshuttle/internal/config"
	"nbshuttle/internal/folders"
	"nbshuttle/internal/names"
	"nbshuttle/internal/tags"
)

// Direction of a transfer relative to the local machine.
type Direction string

const (
	Upload   Direction = "upload"
	Download Direction = "download"
)

// Request describes one transfer of a subset of the project tree. SubNames
// and SesNames are formatted names or selector keywords ("all_sub",
// "all_non_ses", ...); they may carry search tags (@*@, date ranges), which
// are translated to rclone filter globs.
type Request struct {
	Direction Direction
	Top       names.TopLevel
	SubNames  []string
	SesNames  []string
	Selector  folders.DatatypeSelector
	DryRun    bool
}

// Runner executes an external command. The production runner shells out;
// tests substitute a recorder.
type Runner interface {
	Run(name string, args []string) ([]byte, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes the command and returns its combined output.
func (ExecRunner) Run(name string, args []string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// Result records one transfer invocation.
type Result struct {
	RunID  string
	Args   []string
	Output string
}

// BuildArgs constructs the full rclone argument list for the request. The
// source and destination come from the project configuration; the name
// subsets become --include filters rooted at the top-level folder.
func BuildArgs(cfg *config.Config, req Request) ([]string, error) {
	if !req.Top.Valid() {
		return nil, names.Errorf(names.BadName, "unknown top-level folder %q", string(req.Top))
	}

	local := cfg.LocalPath
	central := cfg.CentralPath
	if cfg.ConnectionMethod == config.MethodSSH {
		host := cfg.CentralHost
		if cfg.CentralUser != "" {
			host = cfg.CentralUser + "@" + host
		}
		central = host + ":" + cfg.CentralPath
	}
	if central == "" {
		return nil, names.Errorf(names.BadName, "no central path is configured for this project")
	}

	src, dst := local, central
	if req.Direction == Download {
		src, dst = central, local
	}

	args := []string{"copy", src, dst}

	includes, err := buildIncludes(req)
	if err != nil {
		return nil, err
	}
	for _, inc := range includes {
		args = append(args, "--include", inc)
	}

	if req.DryRun {
		args = append(args, "--dry-run")
	}
	return args, nil
}

// buildIncludes translates the requested name subsets into rclone include
// globs under the top-level folder.
func buildIncludes(req Request) ([]string, error) {
	subGlobs, err := levelGlobs(req.SubNames, names.Sub)
	if err != nil {
		return nil, err
	}
	sesGlobs, err := levelGlobs(req.SesNames, names.Ses)
	if err != nil {
		return nil, err
	}

	var datatypeGlobs []string
	switch req.Selector.Kind {
	case folders.SelectAll:
		datatypeGlobs = []string{"**"}
	case folders.SelectAllDatatype:
		for _, dt := range names.Datatypes {
			datatypeGlobs = append(datatypeGlobs, dt+"/**")
		}
	case folders.SelectAllNonDatatype:
		datatypeGlobs = []string{"*"}
	case folders.SelectSpecific:
		for _, dt := range req.Selector.Set {
			datatypeGlobs = append(datatypeGlobs, dt+"/**")
		}
	default:
		datatypeGlobs = []string{"**"}
	}

	var includes []string
	for _, sub := range subGlobs {
		for _, ses := range sesGlobs {
			for _, dt := range datatypeGlobs {
				includes = append(includes, fmt.Sprintf("/%s/%s/%s/%s", req.Top, sub, ses, dt))
			}
		}
	}
	return includes, nil
}

// levelGlobs maps one level's names and selector keywords onto globs.
func levelGlobs(batch []string, prefix names.Prefix) ([]string, error) {
	if len(batch) == 0 {
		return []string{prefix.Dashed() + "*"}, nil
	}

	var globs []string
	for _, name := range batch {
		switch name {
		case "all", "all_" + string(prefix):
			globs = append(globs, prefix.Dashed()+"*")
		case "all_non_" + string(prefix):
			// Everything at this level except prefixed folders; rclone
			// filters have no negation inside include, so match all and
			// let the prefixed include above take precedence when both
			// are requested.
			globs = append(globs, "*")
		default:
			glob, _, verr := tags.TranslateForSearch(name)
			if verr != nil {
				return nil, verr
			}
			globs = append(globs, glob)
		}
	}
	return globs, nil
}

// Transfer builds the argument list and executes rclone through the runner.
func Transfer(r Runner, cfg *config.Config, req Request) (Result, error) {
	args, err := BuildArgs(cfg, req)
	if err != nil {
		return Result{}, err
	}

	res := Result{RunID: uuid.NewString(), Args: args}
	out, err := r.Run("rclone", args)
	res.Output = strings.TrimSpace(string(out))
	if err != nil {
		return res, fmt.Errorf("rclone transfer failed: %w", err)
	}
	return res, nil
}
