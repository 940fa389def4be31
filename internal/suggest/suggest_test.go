package suggest

import (
	"errors"
	"testing"

	"nbshuttle/internal/names"
)

func TestNextNumber(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		prefix   names.Prefix
		opts     Options
		want     string
		warnings int
	}{
		{
			name:     "empty project starts at one with the default width",
			existing: nil,
			prefix:   names.Sub,
			want:     "001",
		},
		{
			name:     "empty project with a custom default width",
			existing: nil,
			prefix:   names.Sub,
			opts:     Options{DefaultDigits: 2},
			want:     "01",
		},
		{
			name:     "empty project infers the width from the template",
			existing: nil,
			prefix:   names.Sub,
			opts:     Options{TemplateRegexp: `sub-\d\d_id-.?`},
			want:     "01",
		},
		{
			name:     "template with mixed placeholder tokens",
			existing: nil,
			prefix:   names.Ses,
			opts:     Options{TemplateRegexp: `ses-\d.?\d\d`},
			want:     "0001",
		},
		{
			name:     "undeterminable template falls back to the default",
			existing: nil,
			prefix:   names.Sub,
			opts:     Options{TemplateRegexp: `sub-\d+`},
			want:     "001",
		},
		{
			name:     "consecutive numbers suggest max plus one",
			existing: []string{"sub-001", "sub-002", "sub-003"},
			prefix:   names.Sub,
			want:     "004",
		},
		{
			name:     "existing order does not matter",
			existing: []string{"sub-003", "sub-001", "sub-002"},
			prefix:   names.Sub,
			want:     "004",
		},
		{
			name:     "gap produces a warning but still suggests max plus one",
			existing: []string{"sub-001", "sub-002", "sub-004"},
			prefix:   names.Sub,
			want:     "005",
			warnings: 1,
		},
		{
			name:     "width follows the existing names not the default",
			existing: []string{"sub-01"},
			prefix:   names.Sub,
			want:     "02",
		},
		{
			name:     "suffixes and misnamed folders are ignored",
			existing: []string{"sub-001_date-20240315", "sub-abc", "notes"},
			prefix:   names.Sub,
			want:     "002",
		},
		{
			name:     "verbatim duplicates across copies collapse",
			existing: []string{"sub-001", "sub-001", "sub-002"},
			prefix:   names.Sub,
			want:     "003",
		},
		{
			name:     "prefix included on request",
			existing: []string{"ses-001"},
			prefix:   names.Ses,
			opts:     Options{IncludePrefix: true},
			want:     "ses-002",
		},
		{
			name:     "suggestion outgrows the padding width",
			existing: []string{"sub-98", "sub-99"},
			prefix:   names.Sub,
			want:     "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextNumber(tt.existing, tt.prefix, tt.opts)
			if err != nil {
				t.Fatalf("NextNumber(%v) returned error: %v", tt.existing, err)
			}
			if got.Name != tt.want {
				t.Errorf("NextNumber(%v) = %q, want %q", tt.existing, got.Name, tt.want)
			}
			if len(got.Warnings) != tt.warnings {
				t.Errorf("NextNumber(%v) warnings = %v, want %d", tt.existing, got.Warnings, tt.warnings)
			}
		})
	}
}

func TestNextNumberErrors(t *testing.T) {
	_, err := NextNumber([]string{"sub-01", "sub-002"}, names.Sub, Options{})
	var verr *names.Error
	if !errors.As(err, &verr) || verr.Kind != names.ValueLength {
		t.Fatalf("mixed widths: got %v, want a VALUE_LENGTH error", err)
	}

	_, err = NextNumber(nil, names.Prefix("run"), Options{})
	if !errors.As(err, &verr) || verr.Kind != names.BadName {
		t.Fatalf("unknown prefix: got %v, want a BAD_NAME error", err)
	}
}

func TestTemplateDigitWidth(t *testing.T) {
	tests := []struct {
		template string
		prefix   names.Prefix
		want     int
		ok       bool
	}{
		{``, names.Sub, 0, false},
		{`sub-\d\d\d`, names.Sub, 3, true},
		{`sub-\d\d\d_id-.?`, names.Sub, 3, true},
		{`sub-.?.?`, names.Sub, 2, true},
		{`sub-\d+`, names.Sub, 0, false},
		{`sub-001`, names.Sub, 0, false},
		{`sub-`, names.Sub, 0, false},
		{`ses-\d\d`, names.Sub, 0, false},
		{`ses-\d\d`, names.Ses, 2, true},
	}

	for _, tt := range tests {
		got, ok := TemplateDigitWidth(tt.template, tt.prefix)
		if got != tt.want || ok != tt.ok {
			t.Errorf("TemplateDigitWidth(%q, %s) = (%d, %v), want (%d, %v)",
				tt.template, tt.prefix, got, ok, tt.want, tt.ok)
		}
	}
}
