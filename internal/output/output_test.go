package output

import (
	"bytes"
	"strings"
	"testing"

	"nbshuttle/internal/names"
)

func newTestOutput(verbose bool) (*Output, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	o := New(Config{Verbose: verbose, Writer: &out, ErrWriter: &errOut})
	return o, &out, &errOut
}

func TestVerboseGating(t *testing.T) {
	o, out, _ := newTestOutput(false)
	o.Verbose("hidden %d", 1)
	if out.Len() != 0 {
		t.Errorf("verbose message printed in quiet mode: %q", out.String())
	}
	if o.IsVerbose() {
		t.Error("IsVerbose = true in quiet mode")
	}

	o, out, _ = newTestOutput(true)
	o.Verbose("shown %d", 1)
	if got := out.String(); got != "shown 1\n" {
		t.Errorf("verbose output = %q", got)
	}
}

func TestSeverityStreams(t *testing.T) {
	o, out, errOut := newTestOutput(false)

	o.Info("created %d folders", 3)
	o.Success("done")
	o.Warn("gap after %d", 2)
	o.Error("boom")

	if got := out.String(); got != "created 3 folders\ndone\n" {
		t.Errorf("stdout = %q", got)
	}
	if got := errOut.String(); got != "warning: gap after 2\nerror: boom\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestFindings(t *testing.T) {
	o, _, errOut := newTestOutput(false)

	o.Findings([]names.Error{
		{Kind: names.DuplicateName, Message: "sub-001 already taken"},
		{Kind: names.ValueLength, Message: "widths differ", Path: "/p/rawdata"},
	})

	lines := strings.Split(strings.TrimRight(errOut.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("findings lines = %v", lines)
	}
	if lines[0] != "DUPLICATE_NAME: sub-001 already taken" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[1] != "VALUE_LENGTH: widths differ (/p/rawdata)" {
		t.Errorf("second line = %q", lines[1])
	}
}
