// Package output handles terminal output for the CLI: severity coloring,
// verbose mode and validation-finding rendering. The core engine returns
// data; this package is the only place findings become text on a screen.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"nbshuttle/internal/names"
)

// Config holds output configuration.
type Config struct {
	Verbose   bool      // Enable verbose output
	Writer    io.Writer // Output destination (default: os.Stdout)
	ErrWriter io.Writer // Error output destination (default: os.Stderr)
	IsTTY     bool      // Whether output is a terminal
}

// Output writes formatted messages according to its configuration.
type Output struct {
	config  Config
	errTag  *color.Color
	warnTag *color.Color
	okTag   *color.Color
}

// DefaultConfig returns a Config with TTY detection against stdout.
func DefaultConfig() Config {
	return Config{
		Writer:    os.Stdout,
		ErrWriter: os.Stderr,
		IsTTY:     term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// New creates an Output with the given configuration.
func New(config Config) *Output {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	if config.ErrWriter == nil {
		config.ErrWriter = os.Stderr
	}
	o := &Output{
		config:  config,
		errTag:  color.New(color.FgRed, color.Bold),
		warnTag: color.New(color.FgYellow),
		okTag:   color.New(color.FgGreen),
	}
	if !config.IsTTY {
		o.errTag.DisableColor()
		o.warnTag.DisableColor()
		o.okTag.DisableColor()
	}
	return o
}

// Verbose prints a message only when verbose mode is enabled.
func (o *Output) Verbose(format string, args ...interface{}) {
	if !o.config.Verbose {
		return
	}
	fmt.Fprint(o.config.Writer, terminated(fmt.Sprintf(format, args...)))
}

// Info prints an informational message.
func (o *Output) Info(format string, args ...interface{}) {
	fmt.Fprint(o.config.Writer, terminated(fmt.Sprintf(format, args...)))
}

// Success prints a green confirmation message.
func (o *Output) Success(format string, args ...interface{}) {
	fmt.Fprint(o.config.Writer, terminated(o.okTag.Sprintf(format, args...)))
}

// Warn prints a yellow warning to stderr.
func (o *Output) Warn(format string, args ...interface{}) {
	fmt.Fprint(o.config.ErrWriter, terminated(o.warnTag.Sprint("warning: ")+fmt.Sprintf(format, args...)))
}

// Error prints a red error message to stderr.
func (o *Output) Error(format string, args ...interface{}) {
	fmt.Fprint(o.config.ErrWriter, terminated(o.errTag.Sprint("error: ")+fmt.Sprintf(format, args...)))
}

// Findings renders a batch of validation findings, one per line, each
// tagged with its error kind.
func (o *Output) Findings(errs []names.Error) {
	for i := range errs {
		e := &errs[i]
		line := o.errTag.Sprint(string(e.Kind)) + ": " + e.Message
		if e.Path != "" {
			line += " (" + e.Path + ")"
		}
		fmt.Fprint(o.config.ErrWriter, terminated(line))
	}
}

// IsVerbose reports whether verbose mode is enabled.
func (o *Output) IsVerbose() bool {
	return o.config.Verbose
}

func terminated(msg string) string {
	if strings.HasSuffix(msg, "\n") {
		return msg
	}
	return msg + "\n"
}
