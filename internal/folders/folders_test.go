package folders

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"nbshuttle/internal/names"
)

func TestResolveSelector(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    DatatypeSelector
		wantErr bool
	}{
		{
			name: "no arguments selects no datatype folders",
			args: nil,
			want: DatatypeSelector{Kind: SelectAllNonDatatype},
		},
		{
			name: "all keyword",
			args: []string{"all"},
			want: DatatypeSelector{Kind: SelectAll},
		},
		{
			name: "all_datatype keyword",
			args: []string{"all_datatype"},
			want: DatatypeSelector{Kind: SelectAllDatatype},
		},
		{
			name: "all_non_datatype keyword",
			args: []string{"all_non_datatype"},
			want: DatatypeSelector{Kind: SelectAllNonDatatype},
		},
		{
			name: "specific datatype",
			args: []string{"behav"},
			want: DatatypeSelector{Kind: SelectSpecific, Set: []string{"behav"}},
		},
		{
			name: "specific datatypes deduplicated in order",
			args: []string{"ephys", "behav", "ephys"},
			want: DatatypeSelector{Kind: SelectSpecific, Set: []string{"ephys", "behav"}},
		},
		{
			name:    "unknown datatype",
			args:    []string{"widefield"},
			wantErr: true,
		},
		{
			name:    "keyword mixed with a datatype",
			args:    []string{"all", "behav"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSelector(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolveSelector(%v) succeeded, want error", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveSelector(%v): %v", tt.args, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ResolveSelector(%v) = %+v, want %+v", tt.args, got, tt.want)
			}
		})
	}
}

func TestSelectorDatatypes(t *testing.T) {
	if got := (DatatypeSelector{Kind: SelectAll}).Datatypes(); !reflect.DeepEqual(got, names.Datatypes) {
		t.Errorf("SelectAll datatypes = %v", got)
	}
	if got := (DatatypeSelector{Kind: SelectAllNonDatatype}).Datatypes(); got != nil {
		t.Errorf("SelectAllNonDatatype datatypes = %v, want none", got)
	}
	if got := (DatatypeSelector{Kind: SelectSpecific, Set: []string{"anat"}}).Datatypes(); !reflect.DeepEqual(got, []string{"anat"}) {
		t.Errorf("SelectSpecific datatypes = %v", got)
	}
}

func TestBuildPlan(t *testing.T) {
	sel := DatatypeSelector{Kind: SelectSpecific, Set: []string{"behav", "ephys"}}

	plan := BuildPlan("/p", names.RawData, []string{"sub-001", "sub-002"}, []string{"ses-001"}, sel)
	want := []string{
		filepath.Join("/p", "rawdata", "sub-001", "ses-001", "behav"),
		filepath.Join("/p", "rawdata", "sub-001", "ses-001", "ephys"),
		filepath.Join("/p", "rawdata", "sub-002", "ses-001", "behav"),
		filepath.Join("/p", "rawdata", "sub-002", "ses-001", "ephys"),
	}
	if !reflect.DeepEqual(plan.Paths, want) {
		t.Errorf("BuildPlan paths = %v, want %v", plan.Paths, want)
	}
}

func TestBuildPlanWithoutSessions(t *testing.T) {
	plan := BuildPlan("/p", names.Derivatives, []string{"sub-001"}, nil, DatatypeSelector{Kind: SelectAll})
	want := []string{filepath.Join("/p", "derivatives", "sub-001")}
	if !reflect.DeepEqual(plan.Paths, want) {
		t.Errorf("BuildPlan paths = %v, want %v", plan.Paths, want)
	}
}

func TestBuildPlanWithoutDatatypes(t *testing.T) {
	plan := BuildPlan("/p", names.RawData, []string{"sub-001"}, []string{"ses-001", "ses-002"},
		DatatypeSelector{Kind: SelectAllNonDatatype})
	want := []string{
		filepath.Join("/p", "rawdata", "sub-001", "ses-001"),
		filepath.Join("/p", "rawdata", "sub-001", "ses-002"),
	}
	if !reflect.DeepEqual(plan.Paths, want) {
		t.Errorf("BuildPlan paths = %v, want %v", plan.Paths, want)
	}
}

func TestExecute(t *testing.T) {
	root := t.TempDir()
	plan := BuildPlan(root, names.RawData, []string{"sub-001"}, []string{"ses-001"},
		DatatypeSelector{Kind: SelectSpecific, Set: []string{"behav"}})

	if err := plan.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, p := range plan.Paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			t.Errorf("planned folder %q was not created: %v", p, err)
		}
	}

	// Re-executing over existing folders is a no-op.
	if err := plan.Execute(); err != nil {
		t.Errorf("re-Execute over existing folders: %v", err)
	}
}
