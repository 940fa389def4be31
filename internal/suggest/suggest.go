// Package suggest computes the next available subject or session number for
// a project, with the correct zero-padding inferred from the existing names
// or, for an empty project, from the name template.
package suggest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"nbshuttle/internal/names"
)

// DefaultDigits is the padding width used when neither existing names nor a
// template determine one.
const DefaultDigits = 3

// Options configures a suggestion.
type Options struct {
	// DefaultDigits is the fallback padding width for an empty project;
	// zero means DefaultDigits.
	DefaultDigits int
	// TemplateRegexp is the persisted name-template regexp for the prefix,
	// used to infer the width when the project has no existing names yet.
	// Empty means no template.
	TemplateRegexp string
	// IncludePrefix prepends "<prefix>-" to the suggested name.
	IncludePrefix bool
}

// Suggestion is the result of a next-number computation. Warnings carry
// non-fatal observations, such as a gap in the existing number sequence;
// the caller decides whether and how to surface them.
type Suggestion struct {
	Name     string
	Warnings []string
}

// NextNumber suggests the next free integer identifier for the prefix given
// the existing names of the project (local and central unioned by the
// caller). For an empty project the suggestion is 1, padded to the width
// inferred from the template or the default. Otherwise the suggestion is
// max+1 padded to the width shared by every existing value; existing values
// with differing widths make the suggestion unreliable and return an error.
func NextNumber(existing []string, prefix names.Prefix, opts Options) (Suggestion, error) {
	if !prefix.Valid() {
		return Suggestion{}, names.Errorf(names.BadName, "unknown prefix %q", string(prefix))
	}

	values := extractValues(existing, prefix)

	if len(values) == 0 {
		width, ok := TemplateDigitWidth(opts.TemplateRegexp, prefix)
		if !ok {
			width = opts.DefaultDigits
			if width <= 0 {
				width = DefaultDigits
			}
		}
		return Suggestion{Name: render(1, width, prefix, opts.IncludePrefix)}, nil
	}

	width := len(values[0])
	for _, v := range values {
		if len(v) != width {
			return Suggestion{}, names.Errorf(names.ValueLength,
				"cannot suggest the next %s number: the existing %s values do not share one zero-padding width", prefix, prefix)
		}
	}

	ids := make([]int, len(values))
	for i, v := range values {
		// values are digit strings by construction
		ids[i], _ = strconv.Atoi(v)
	}
	sort.Ints(ids)

	sug := Suggestion{}
	for i := 1; i < len(ids); i++ {
		if ids[i] != ids[i-1]+1 {
			sug.Warnings = append(sug.Warnings, fmt.Sprintf(
				"the existing %s numbers are not consecutive (gap after %d); the suggestion skips the missing numbers", prefix, ids[i-1]))
			break
		}
	}

	sug.Name = render(ids[len(ids)-1]+1, width, prefix, opts.IncludePrefix)
	return sug, nil
}

// extractValues pulls the deduplicated raw value strings out of the existing
// names. Names whose value does not extract cleanly are skipped: the index
// has already validated or filtered them, and a next-number suggestion
// should not fail because an unrelated folder is misnamed. Deduplication
// collapses names present verbatim in both the local and central copies.
func extractValues(existing []string, prefix names.Prefix) []string {
	seen := make(map[string]bool)
	var values []string
	for _, name := range existing {
		value, verr := names.ExtractValue(name, prefix)
		if verr != nil {
			continue
		}
		if !seen[value] {
			seen[value] = true
			values = append(values, value)
		}
	}
	return values
}

// render formats the suggested number at the given width.
func render(n, width int, prefix names.Prefix, includePrefix bool) string {
	s := fmt.Sprintf("%0*d", width, n)
	if includePrefix {
		return prefix.Dashed() + s
	}
	return s
}

// TemplateDigitWidth infers a fixed digit width from the value position of a
// name-template regexp. The value segment sits between "<prefix>-" and the
// next underscore (or the end of the template); its width is the count of
// `\d` and `.?` placeholder tokens it holds. Any other residue in the
// segment makes the width undeterminable and the second result is false.
func TemplateDigitWidth(template string, prefix names.Prefix) (int, bool) {
	if template == "" {
		return 0, false
	}
	idx := strings.Index(template, prefix.Dashed())
	if idx < 0 {
		return 0, false
	}
	segment := template[idx+len(prefix.Dashed()):]
	if cut := strings.IndexByte(segment, '_'); cut >= 0 {
		segment = segment[:cut]
	}

	count := 0
	for segment != "" {
		switch {
		case strings.HasPrefix(segment, `\d`):
			segment = segment[2:]
			count++
		case strings.HasPrefix(segment, ".?"):
			segment = segment[2:]
			count++
		default:
			return 0, false
		}
	}
	if count == 0 {
		return 0, false
	}
	return count, true
}
