// Package formatter produces canonical, prefixed, tag-expanded subject and
// session names from raw user input. Formatting fails fast: the first
// violated input rule aborts the whole batch, because malformed input is a
// caller mistake rather than a project-state conflict.
package formatter

import (
	"strings"
	"time"

	"nbshuttle/internal/names"
	"nbshuttle/internal/tags"
)

// FormatNames canonicalises a batch of raw names for the given prefix:
// spaces are rejected, the "<prefix>-" key is prepended where missing
// (reserved selector keywords pass through untouched), in-batch duplicates
// and broken delimiter alternation are rejected, @TO@ ranges are expanded
// (which may grow the batch) and literal timestamp tags are resolved against
// a single timestamp shared by the whole batch.
//
// now supplies the batch timestamp; pass nil for the wall clock. The
// function touches no filesystem or project state.
func FormatNames(input []string, prefix names.Prefix, now func() time.Time) ([]string, error) {
	if !prefix.Valid() {
		return nil, names.Errorf(names.BadName, "unknown prefix %q", string(prefix))
	}
	if len(input) == 0 {
		return nil, names.Errorf(names.BadName, "at least one %s name is required", prefix)
	}
	if now == nil {
		now = time.Now
	}

	for _, name := range input {
		if strings.ContainsRune(name, ' ') {
			return nil, names.Errorf(names.SpecialChar, "name %q contains a space; names cannot include spaces", name)
		}
	}

	prefixed := make([]string, 0, len(input))
	for _, name := range input {
		if !names.IsReservedKeyword(name) && !strings.HasPrefix(name, prefix.Dashed()) {
			name = prefix.Dashed() + name
		}
		prefixed = append(prefixed, name)
	}

	seen := make(map[string]bool, len(prefixed))
	for _, name := range prefixed {
		if seen[name] {
			return nil, names.Errorf(names.DuplicateName, "name %q appears more than once; names must be unique within one batch", name)
		}
		seen[name] = true
	}

	for _, name := range prefixed {
		if names.IsReservedKeyword(name) {
			continue
		}
		if !names.DelimitersAlternate(name) {
			return nil, names.Errorf(names.NameFormat,
				"name %q is not formatted correctly: dashes and underscores must alternate, starting and ending on a dash-separated pair", name)
		}
	}

	expanded := make([]string, 0, len(prefixed))
	for _, name := range prefixed {
		batch, verr := tags.ExpandRange(name, prefix)
		if verr != nil {
			return nil, verr
		}
		expanded = append(expanded, batch...)
	}

	return tags.ResolveLiteral(expanded, now()), nil
}
