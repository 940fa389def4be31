package index

import (
	"path"

	"nbshuttle/internal/names"
	"nbshuttle/internal/tags"
)

// SearchSubjects returns the subject-level folders matching a tag pattern.
// The pattern may contain @*@ wildcards and date/time/datetime range tags;
// it is translated to a glob once and range bounds filter the glob matches.
func (s *LocalStore) SearchSubjects(pattern string) ([]names.Ref, error) {
	subs, err := s.ListSubjects()
	if err != nil {
		return nil, err
	}
	return filterRefs(subs, pattern)
}

// SearchSessions returns the session-level folders of one subject matching
// a tag pattern.
func (s *LocalStore) SearchSessions(subject, pattern string) ([]names.Ref, error) {
	sessions, err := s.ListSessions(subject)
	if err != nil {
		return nil, err
	}
	return filterRefs(sessions, pattern)
}

// filterRefs applies the translated glob and datetime bounds to a listing.
func filterRefs(refs []names.Ref, pattern string) ([]names.Ref, error) {
	glob, bounds, verr := tags.TranslateForSearch(pattern)
	if verr != nil {
		return nil, verr
	}

	var matched []names.Ref
	for _, ref := range refs {
		ok, err := path.Match(glob, ref.Name)
		if err != nil {
			return nil, names.Errorf(names.NameFormat, "search pattern %q is not a valid glob", glob)
		}
		if !ok {
			continue
		}
		inside := true
		for _, b := range bounds {
			if !tags.InBounds(ref.Name, b) {
				inside = false
				break
			}
		}
		if inside {
			matched = append(matched, ref)
		}
	}
	return matched, nil
}
