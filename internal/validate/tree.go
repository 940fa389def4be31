package validate

import (
	"strings"

	"nbshuttle/internal/names"
)

// ProjectTree mirrors the on-disk folder hierarchy of one project copy at
// the subject, session and datatype levels. It includes every folder found
// at each level, conforming or not, so strict validation can see
// non-NeuroBlueprint content.
type ProjectTree struct {
	Subjects []SubjectFolder
}

// SubjectFolder is one folder at the subject level and its contents.
type SubjectFolder struct {
	Ref       names.Ref
	Sessions  []SessionFolder
	Datatypes []names.Ref // datatype-level folders directly under the subject
}

// SessionFolder is one folder at the session level and its contents.
type SessionFolder struct {
	Ref       names.Ref
	Datatypes []names.Ref
}

// TreeOptions configures whole-project validation.
type TreeOptions struct {
	Templates *NameTemplates
	// Strict reports every folder that does not conform to NeuroBlueprint
	// as a finding, instead of silently ignoring non-conforming content.
	Strict bool
}

// ValidateTree validates one project copy in full: subject names as a batch,
// each subject's session names as a batch scoped to that subject, and
// session value lengths pooled across the entire project. In strict mode
// every non-"sub-" folder at the subject level, non-"ses-" folder at the
// session level and non-canonical datatype folder is additionally reported.
func ValidateTree(tree ProjectTree, opts TreeOptions) []names.Error {
	var errs []names.Error

	var subRefs []names.Ref
	for _, sub := range tree.Subjects {
		if strings.HasPrefix(sub.Ref.Name, names.Sub.Dashed()) {
			subRefs = append(subRefs, sub.Ref)
		} else if opts.Strict {
			errs = append(errs, located(sub.Ref, names.Errorf(names.BadName,
				"folder %q at the subject level does not begin with %q", sub.Ref.Name, names.Sub.Dashed())))
		}
	}
	errs = append(errs, ValidateList(subRefs, names.Sub, opts.Templates, true)...)

	var allSes []names.Ref
	for _, sub := range tree.Subjects {
		var sesRefs []names.Ref
		for _, ses := range sub.Sessions {
			if strings.HasPrefix(ses.Ref.Name, names.Ses.Dashed()) {
				sesRefs = append(sesRefs, ses.Ref)
			} else if opts.Strict {
				errs = append(errs, located(ses.Ref, names.Errorf(names.BadName,
					"folder %q at the session level does not begin with %q", ses.Ref.Name, names.Ses.Dashed())))
			}
			if opts.Strict {
				errs = append(errs, checkDatatypeFolders(ses.Datatypes)...)
			}
		}
		if opts.Strict {
			errs = append(errs, checkDatatypeFolders(sub.Datatypes)...)
		}

		// Duplicate identifiers are scoped per subject; value lengths are
		// checked project-wide below instead.
		errs = append(errs, ValidateList(sesRefs, names.Ses, opts.Templates, false)...)
		allSes = append(allSes, sesRefs...)
	}

	if lenErr := ValueLengthsInconsistent(allSes, names.Ses); lenErr != nil {
		errs = append(errs, *lenErr)
	}

	return errs
}

// checkDatatypeFolders reports folders at the datatype level that are not
// canonical datatype names.
func checkDatatypeFolders(refs []names.Ref) []names.Error {
	var errs []names.Error
	for _, ref := range refs {
		if !names.IsDatatype(ref.Name) {
			errs = append(errs, located(ref, names.Errorf(names.Datatype,
				"folder %q at the datatype level is not a canonical datatype (%s)",
				ref.Name, strings.Join(names.Datatypes, ", "))))
		}
	}
	return errs
}
