package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"nbshuttle/internal/audit"
	"nbshuttle/internal/config"
	"nbshuttle/internal/names"
	"nbshuttle/internal/transfer"
	"nbshuttle/internal/validate"
)

func openTestProject(t *testing.T) *Project {
	t.Helper()
	p, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	p.Clock = func() time.Time {
		return time.Date(2024, 3, 15, 14, 30, 5, 0, time.UTC)
	}
	return p
}

func assertDir(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		t.Errorf("expected folder %q: %v", path, err)
	}
}

func TestCreateFoldersFreshProject(t *testing.T) {
	p := openTestProject(t)

	paths, findings, err := p.CreateFolders([]string{"001"}, []string{"001"}, CreateOptions{
		Datatypes: []string{"behav"},
	})
	if err != nil {
		t.Fatalf("CreateFolders: %v (findings: %v)", err, findings)
	}
	if len(findings) != 0 {
		t.Errorf("fresh project produced findings: %v", findings)
	}
	if len(paths) != 1 {
		t.Fatalf("created paths = %v", paths)
	}
	assertDir(t, filepath.Join(p.Root, "rawdata", "sub-001", "ses-001", "behav"))
}

func TestCreateFoldersRangeAndTags(t *testing.T) {
	p := openTestProject(t)

	paths, _, err := p.CreateFolders([]string{"001@TO@003"}, []string{"001@DATE@"}, CreateOptions{})
	if err != nil {
		t.Fatalf("CreateFolders: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("created paths = %v, want 3", paths)
	}
	assertDir(t, filepath.Join(p.Root, "rawdata", "sub-002", "ses-001_date-20240315"))
}

func TestCreateFoldersRejectsDuplicateIdentifier(t *testing.T) {
	p := openTestProject(t)

	if _, _, err := p.CreateFolders([]string{"sub-001"}, nil, CreateOptions{}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, findings, err := p.CreateFolders([]string{"sub-001_id-9"}, nil, CreateOptions{})
	if err == nil {
		t.Fatal("conflicting create succeeded")
	}
	if len(findings) != 1 || findings[0].Kind != names.DuplicateName {
		t.Errorf("findings = %v, want one DUPLICATE_NAME", findings)
	}
	if _, statErr := os.Stat(filepath.Join(p.Root, "rawdata", "sub-001_id-9")); !os.IsNotExist(statErr) {
		t.Error("rejected folder was created anyway")
	}
}

func TestCreateFoldersBypassValidation(t *testing.T) {
	p := openTestProject(t)

	if _, _, err := p.CreateFolders([]string{"sub-001"}, nil, CreateOptions{}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	paths, findings, err := p.CreateFolders([]string{"sub-001_id-9"}, nil, CreateOptions{BypassValidation: true})
	if err != nil {
		t.Fatalf("bypassed create: %v", err)
	}
	if len(findings) == 0 {
		t.Error("bypass hid the findings instead of returning them")
	}
	if len(paths) != 1 {
		t.Fatalf("created paths = %v", paths)
	}
	assertDir(t, paths[0])
}

// Re-creating an existing folder verbatim is idempotent.
func TestCreateFoldersIdempotent(t *testing.T) {
	p := openTestProject(t)

	for i := 0; i < 2; i++ {
		if _, _, err := p.CreateFolders([]string{"sub-001"}, nil, CreateOptions{}); err != nil {
			t.Fatalf("create round %d: %v", i+1, err)
		}
	}
}

func TestCreateFoldersChecksCentralScope(t *testing.T) {
	central := t.TempDir()
	if err := os.MkdirAll(filepath.Join(central, "rawdata", "sub-001"), 0755); err != nil {
		t.Fatal(err)
	}

	p := openTestProject(t)
	p.Cfg.CentralPath = central
	p.Cfg.ConnectionMethod = config.MethodLocalFilesystem

	_, findings, err := p.CreateFolders([]string{"sub-001_id-9"}, nil, CreateOptions{
		Scopes: []validate.Scope{validate.ScopeLocal, validate.ScopeCentral},
	})
	if err == nil {
		t.Fatal("create succeeded despite a central conflict")
	}
	if len(findings) != 1 || findings[0].Kind != names.DuplicateName {
		t.Errorf("findings = %v, want one DUPLICATE_NAME", findings)
	}
}

func TestCreateFoldersAppendsAuditEvent(t *testing.T) {
	p := openTestProject(t)

	if _, _, err := p.CreateFolders([]string{"sub-001"}, nil, CreateOptions{}); err != nil {
		t.Fatalf("CreateFolders: %v", err)
	}

	events, err := audit.ReadAll(config.AuditPath(p.Root))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(events) != 1 || events[0].Type != audit.EventFolderCreate {
		t.Fatalf("events = %+v", events)
	}
	if len(events[0].Paths) != 1 {
		t.Errorf("event paths = %v", events[0].Paths)
	}
}

func TestValidateProject(t *testing.T) {
	p := openTestProject(t)
	for _, f := range []string{"sub-001/ses-001", "sub-001_id-2", "notes"} {
		if err := os.MkdirAll(filepath.Join(p.Root, "rawdata", f), 0755); err != nil {
			t.Fatal(err)
		}
	}

	findings, err := p.ValidateProject(names.RawData, nil, false)
	if err != nil {
		t.Fatalf("ValidateProject: %v", err)
	}
	if len(findings) != 1 || findings[0].Kind != names.DuplicateName {
		t.Errorf("relaxed findings = %v, want one DUPLICATE_NAME", findings)
	}

	strict, err := p.ValidateProject(names.RawData, nil, true)
	if err != nil {
		t.Fatalf("ValidateProject strict: %v", err)
	}
	var badNames int
	for _, f := range strict {
		if f.Kind == names.BadName {
			badNames++
		}
	}
	if badNames != 1 {
		t.Errorf("strict BAD_NAME findings = %d, want 1 (notes)", badNames)
	}
}

func TestValidateProjectMissingTopLevel(t *testing.T) {
	p := openTestProject(t)

	findings, err := p.ValidateProject(names.RawData, nil, false)
	if err != nil {
		t.Fatalf("ValidateProject: %v", err)
	}
	if len(findings) != 1 || findings[0].Kind != names.MissingTopLevelFolder {
		t.Errorf("findings = %v, want one MISSING_TOP_LEVEL_FOLDER", findings)
	}
}

func TestNextSubAndSes(t *testing.T) {
	p := openTestProject(t)
	if _, _, err := p.CreateFolders([]string{"001", "002"}, []string{"001"}, CreateOptions{}); err != nil {
		t.Fatalf("seed create: %v", err)
	}

	sub, err := p.NextSub(names.RawData)
	if err != nil {
		t.Fatalf("NextSub: %v", err)
	}
	if sub.Name != "sub-003" {
		t.Errorf("NextSub = %q, want sub-003", sub.Name)
	}

	ses, err := p.NextSes(names.RawData, "sub-001")
	if err != nil {
		t.Fatalf("NextSes: %v", err)
	}
	if ses.Name != "ses-002" {
		t.Errorf("NextSes = %q, want ses-002", ses.Name)
	}
}

func TestNextSubEmptyProject(t *testing.T) {
	p := openTestProject(t)
	p.Cfg.NameTemplates = config.NameTemplates{On: true, Sub: `sub-\d\d`}

	sub, err := p.NextSub(names.RawData)
	if err != nil {
		t.Fatalf("NextSub: %v", err)
	}
	if sub.Name != "sub-01" {
		t.Errorf("NextSub on empty project = %q, want sub-01 (width from template)", sub.Name)
	}
}

// Suggestion pools the local and central copies so the next number is free
// on both sides.
func TestNextSubPoolsScopes(t *testing.T) {
	central := t.TempDir()
	if err := os.MkdirAll(filepath.Join(central, "rawdata", "sub-005"), 0755); err != nil {
		t.Fatal(err)
	}

	p := openTestProject(t)
	p.Cfg.CentralPath = central
	if _, _, err := p.CreateFolders([]string{"001"}, nil, CreateOptions{}); err != nil {
		t.Fatalf("seed create: %v", err)
	}

	sub, err := p.NextSub(names.RawData)
	if err != nil {
		t.Fatalf("NextSub: %v", err)
	}
	if sub.Name != "sub-006" {
		t.Errorf("NextSub = %q, want sub-006", sub.Name)
	}
	if len(sub.Warnings) != 1 {
		t.Errorf("warnings = %v, want the gap warning", sub.Warnings)
	}
}

type runnerStub struct {
	args []string
}

func (r *runnerStub) Run(name string, args []string) ([]byte, error) {
	r.args = args
	return []byte("ok"), nil
}

func TestTransferRecordsAuditEvent(t *testing.T) {
	p := openTestProject(t)
	p.Cfg.CentralPath = t.TempDir()

	stub := &runnerStub{}
	res, err := p.Transfer(stub, transfer.Request{Direction: transfer.Upload})
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if len(stub.args) == 0 || stub.args[0] != "copy" {
		t.Errorf("runner args = %v", stub.args)
	}

	events, err := audit.ReadAll(config.AuditPath(p.Root))
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(events) != 1 || events[0].Type != audit.EventTransfer || events[0].RunID != res.RunID {
		t.Fatalf("events = %+v", events)
	}
}
