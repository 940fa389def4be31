// Package folders plans and creates NeuroBlueprint folder trees for
// validated subject and session names. Planning is pure; execution is
// all-or-nothing from the caller's point of view because callers only
// execute a plan after validation passed (or was explicitly bypassed).
package folders

import (
	"os"
	"path/filepath"
	"strings"

	"nbshuttle/internal/names"
)

// SelectorKind tags the closed set of datatype selections.
type SelectorKind string

const (
	SelectAll            SelectorKind = "all"
	SelectAllDatatype    SelectorKind = "all_datatype"
	SelectAllNonDatatype SelectorKind = "all_non_datatype"
	SelectSpecific       SelectorKind = "specific"
)

// DatatypeSelector is the resolved form of the user's datatype arguments.
// Selector keywords are resolved once at the boundary so the rest of the
// code never string-matches on "all_datatype" and friends.
type DatatypeSelector struct {
	Kind SelectorKind
	Set  []string // populated only for SelectSpecific
}

// ResolveSelector resolves raw datatype arguments into a selector. A
// keyword must be the only argument; anything else must be a canonical
// datatype name. No arguments selects no datatype folders.
func ResolveSelector(args []string) (DatatypeSelector, error) {
	if len(args) == 0 {
		return DatatypeSelector{Kind: SelectAllNonDatatype}, nil
	}

	if len(args) == 1 {
		switch args[0] {
		case "all":
			return DatatypeSelector{Kind: SelectAll}, nil
		case "all_datatype":
			return DatatypeSelector{Kind: SelectAllDatatype}, nil
		case "all_non_datatype":
			return DatatypeSelector{Kind: SelectAllNonDatatype}, nil
		}
	}

	seen := make(map[string]bool, len(args))
	set := make([]string, 0, len(args))
	for _, arg := range args {
		if !names.IsDatatype(arg) {
			return DatatypeSelector{}, names.Errorf(names.Datatype,
				"%q is not a canonical datatype (%s) or selector keyword", arg, strings.Join(names.Datatypes, ", "))
		}
		if !seen[arg] {
			seen[arg] = true
			set = append(set, arg)
		}
	}
	return DatatypeSelector{Kind: SelectSpecific, Set: set}, nil
}

// Datatypes returns the datatype folder names the selector creates under
// each session. The non-datatype selector creates none.
func (s DatatypeSelector) Datatypes() []string {
	switch s.Kind {
	case SelectAll, SelectAllDatatype:
		return names.Datatypes
	case SelectSpecific:
		return s.Set
	default:
		return nil
	}
}

// Plan is the list of folder paths one create operation will make.
type Plan struct {
	Paths []string
}

// BuildPlan lays out the folder tree for the given formatted names:
// <root>/<top>/<sub>[/<ses>[/<datatype>]] for every combination. Subjects
// without sessions and sessions without datatypes get their bare folder.
// BuildPlan never touches the filesystem.
func BuildPlan(root string, top names.TopLevel, subs, sess []string, sel DatatypeSelector) Plan {
	var plan Plan
	datatypes := sel.Datatypes()

	for _, sub := range subs {
		subPath := filepath.Join(root, string(top), sub)
		if len(sess) == 0 {
			plan.Paths = append(plan.Paths, subPath)
			continue
		}
		for _, ses := range sess {
			sesPath := filepath.Join(subPath, ses)
			if len(datatypes) == 0 {
				plan.Paths = append(plan.Paths, sesPath)
				continue
			}
			for _, dt := range datatypes {
				plan.Paths = append(plan.Paths, filepath.Join(sesPath, dt))
			}
		}
	}
	return plan
}

// Execute creates every planned folder. Existing folders are left alone.
func (p Plan) Execute() error {
	for _, path := range p.Paths {
		if err := os.MkdirAll(path, 0755); err != nil {
			return err
		}
	}
	return nil
}
