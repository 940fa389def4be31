package validate

import (
	"nbshuttle/internal/names"
)

// Scope identifies which copy of the project an existing-name list came from.
type Scope string

const (
	ScopeLocal   Scope = "local"
	ScopeCentral Scope = "central"
)

// ProjectNames is the materialized existing-name index of a project, as
// gathered by the (possibly slow) index collaborators before validation is
// invoked. Sub holds subject folders per scope; Ses holds session folders
// per scope keyed by their subject folder name. The checker never performs
// I/O of its own.
type ProjectNames struct {
	Sub map[Scope][]names.Ref
	Ses map[Scope]map[string][]names.Ref
}

// ProjectOptions configures a consistency check against existing names.
type ProjectOptions struct {
	// Scopes lists the copies of the project to check against; defaults
	// to the local scope only.
	Scopes []Scope
	// Templates is the persisted per-prefix template setting, or nil.
	Templates *NameTemplates
}

func (o ProjectOptions) scopes() []Scope {
	if len(o.Scopes) == 0 {
		return []Scope{ScopeLocal}
	}
	return o.Scopes
}

// ValidateAgainstProject checks a set of proposed subject and session names
// against the names already present in the project. The proposed names are
// first validated on their own; then subjects are checked for duplicate
// identifiers and padding consistency against the union of existing
// subjects over the requested scopes, and sessions are checked for
// duplicate identifiers per subject but for padding consistency across the
// whole project, since uniform session-id width is a project-wide property.
// All findings are collected; nothing stops at the first problem.
func ValidateAgainstProject(existing ProjectNames, proposedSub, proposedSes []string, opts ProjectOptions) []names.Error {
	var errs []names.Error

	subRefs := names.Refs(proposedSub)
	sesRefs := names.Refs(proposedSes)

	if len(subRefs) > 0 {
		errs = append(errs, ValidateList(subRefs, names.Sub, opts.Templates, true)...)
	}
	if len(sesRefs) > 0 {
		errs = append(errs, ValidateList(sesRefs, names.Ses, opts.Templates, true)...)
	}

	existingSubs := unionSubjects(existing, opts.scopes())

	for _, sub := range subRefs {
		errs = append(errs, NewNameDuplicatesExisting(sub, existingSubs, names.Sub)...)
	}

	if len(subRefs) > 0 {
		if baseErr := ValueLengthsInconsistent(existingSubs, names.Sub); baseErr != nil {
			// The project is already internally inconsistent; checking the
			// new names against a broken baseline would be meaningless.
			errs = append(errs, *names.Errorf(names.ValueLength,
				"cannot check the sub value lengths of the new names: the existing project sub names already have inconsistent value lengths"))
		} else if lenErr := ValueLengthsInconsistent(append(append([]names.Ref{}, existingSubs...), subRefs...), names.Sub); lenErr != nil {
			errs = append(errs, *lenErr)
		}
	}

	if len(sesRefs) > 0 {
		for _, sub := range subRefs {
			existingSes := unionSessions(existing, opts.scopes(), sub.Name)
			for _, ses := range sesRefs {
				errs = append(errs, NewNameDuplicatesExisting(ses, existingSes, names.Ses)...)
			}
		}

		allSes := unionAllSessions(existing, opts.scopes())
		if baseErr := ValueLengthsInconsistent(allSes, names.Ses); baseErr != nil {
			errs = append(errs, *names.Errorf(names.ValueLength,
				"cannot check the ses value lengths of the new names: the existing project ses names already have inconsistent value lengths"))
		} else if lenErr := ValueLengthsInconsistent(append(append([]names.Ref{}, allSes...), sesRefs...), names.Ses); lenErr != nil {
			errs = append(errs, *lenErr)
		}
	}

	return errs
}

// unionSubjects merges the existing subject refs over the given scopes.
func unionSubjects(existing ProjectNames, scopes []Scope) []names.Ref {
	var out []names.Ref
	for _, scope := range scopes {
		out = append(out, existing.Sub[scope]...)
	}
	return out
}

// unionSessions merges the existing session refs of one subject over the
// given scopes.
func unionSessions(existing ProjectNames, scopes []Scope, subject string) []names.Ref {
	var out []names.Ref
	for _, scope := range scopes {
		if perSub, ok := existing.Ses[scope]; ok {
			out = append(out, perSub[subject]...)
		}
	}
	return out
}

// unionAllSessions pools every subject's sessions over the given scopes.
func unionAllSessions(existing ProjectNames, scopes []Scope) []names.Ref {
	var out []names.Ref
	for _, scope := range scopes {
		for _, refs := range existing.Ses[scope] {
			out = append(out, refs...)
		}
	}
	return out
}
