// Package index materializes the existing folder names of a project so the
// pure validation core can consume them as in-memory lists. The local store
// reads the filesystem directly; the central store arrives through the same
// Lister interface, so the core never knows where a name list came from.
package index

import (
	"os"
	"path/filepath"

	"nbshuttle/internal/names"
	"nbshuttle/internal/validate"
)

// Lister lists the folder names at one level of the project hierarchy.
// Implementations may be slow or failing (network-backed); callers gather
// the lists before handing them to the validation core.
type Lister interface {
	// ListSubjects returns every folder at the subject level.
	ListSubjects() ([]names.Ref, error)
	// ListSessions returns every folder at the session level under the
	// named subject folder.
	ListSessions(subject string) ([]names.Ref, error)
}

// LocalStore reads one top-level folder of a local project tree.
type LocalStore struct {
	Root string
	Top  names.TopLevel
}

// NewLocalStore returns a store over <root>/<top>.
func NewLocalStore(root string, top names.TopLevel) *LocalStore {
	return &LocalStore{Root: root, Top: top}
}

// base returns the top-level folder path.
func (s *LocalStore) base() string {
	return filepath.Join(s.Root, string(s.Top))
}

// ListSubjects returns every folder directly under the top-level folder.
// A missing top-level folder is a MISSING_TOP_LEVEL_FOLDER finding.
func (s *LocalStore) ListSubjects() ([]names.Ref, error) {
	return listFolders(s.base(), true)
}

// ListSessions returns every folder under the named subject folder.
func (s *LocalStore) ListSessions(subject string) ([]names.Ref, error) {
	return listFolders(filepath.Join(s.base(), subject), false)
}

// listFolders reads the directories directly under dir. When topLevel is
// set, a missing dir reports the MISSING_TOP_LEVEL_FOLDER finding;
// otherwise a missing dir is an empty listing.
func listFolders(dir string, topLevel bool) ([]names.Ref, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			if topLevel {
				return nil, names.Errorf(names.MissingTopLevelFolder,
					"the top-level folder %q does not exist", dir)
			}
			return nil, nil
		}
		return nil, err
	}

	var refs []names.Ref
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		refs = append(refs, names.Ref{Name: entry.Name(), Path: filepath.Join(dir, entry.Name())})
	}
	return refs, nil
}

// Tree walks the whole top-level folder into the three-level structure the
// project validator consumes, keeping non-conforming folders so strict mode
// can report them.
func (s *LocalStore) Tree() (validate.ProjectTree, error) {
	var tree validate.ProjectTree

	subs, err := s.ListSubjects()
	if err != nil {
		return tree, err
	}

	for _, sub := range subs {
		folder := validate.SubjectFolder{Ref: sub}

		children, err := listFolders(sub.Path, false)
		if err != nil {
			return tree, err
		}
		for _, child := range children {
			if names.IsDatatype(child.Name) {
				folder.Datatypes = append(folder.Datatypes, child)
				continue
			}
			ses := validate.SessionFolder{Ref: child}
			grandchildren, err := listFolders(child.Path, false)
			if err != nil {
				return tree, err
			}
			ses.Datatypes = grandchildren
			folder.Sessions = append(folder.Sessions, ses)
		}
		tree.Subjects = append(tree.Subjects, folder)
	}

	return tree, nil
}

// BuildProjectNames gathers the existing conforming subject and session
// names from the given scopes into the structure the consistency checker
// consumes. Non-conforming folders (no "sub-"/"ses-" prefix) are excluded
// here; strict tree validation reports them separately.
func BuildProjectNames(listers map[validate.Scope]Lister, scopes []validate.Scope) (validate.ProjectNames, error) {
	out := validate.ProjectNames{
		Sub: make(map[validate.Scope][]names.Ref),
		Ses: make(map[validate.Scope]map[string][]names.Ref),
	}

	for _, scope := range scopes {
		lister, ok := listers[scope]
		if !ok || lister == nil {
			continue
		}

		subs, err := lister.ListSubjects()
		if err != nil {
			return out, err
		}
		out.Ses[scope] = make(map[string][]names.Ref)
		for _, sub := range subs {
			if !hasPrefix(sub.Name, names.Sub) {
				continue
			}
			out.Sub[scope] = append(out.Sub[scope], sub)

			sessions, err := lister.ListSessions(sub.Name)
			if err != nil {
				return out, err
			}
			for _, ses := range sessions {
				if !hasPrefix(ses.Name, names.Ses) {
					continue
				}
				out.Ses[scope][sub.Name] = append(out.Ses[scope][sub.Name], ses)
			}
		}
	}

	return out, nil
}

func hasPrefix(name string, p names.Prefix) bool {
	return len(name) >= len(p.Dashed()) && name[:len(p.Dashed())] == p.Dashed()
}
