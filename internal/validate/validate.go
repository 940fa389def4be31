// Package validate runs the full naming rule set over batches of subject and
// session names and checks proposed names against the existing state of a
// project. Unlike the formatter, validation never stops early: every check
// runs over the whole batch and all findings are collected before any are
// returned, so a caller creating fifty folders sees every problem at once.
package validate

import (
	"regexp"
	"strings"
	"time"

	"nbshuttle/internal/names"
	"nbshuttle/internal/tags"
)

// NameTemplates is the optional per-prefix conformance template, persisted
// with the project settings and passed by value into each validation call.
// An empty template string means no template for that prefix.
type NameTemplates struct {
	On  bool
	Sub string
	Ses string
}

// forPrefix returns the template regexp for the prefix, or "" when unset.
func (t *NameTemplates) forPrefix(p names.Prefix) string {
	if t == nil || !t.On {
		return ""
	}
	if p == names.Sub {
		return t.Sub
	}
	return t.Ses
}

// specialCharPattern is the full character set a name may use.
var specialCharPattern = regexp.MustCompile(`^[A-Za-z0-9_-]*$`)

// datetimeChecks lists the embedded key-value pairs carrying timestamps,
// most specific key first, with their expected layout and its human name.
var datetimeChecks = []struct {
	key      string
	layout   string
	expected string
}{
	{"datetime", tags.DatetimeLayout, "YYYYMMDDTHHMMSS"},
	{"time", tags.TimeLayout, "HHMMSS"},
	{"date", tags.DateLayout, "YYYYMMDD"},
}

// templateTagPatterns substitutes symbolic tags inside a template regexp
// with their regexp equivalents before matching.
var templateTagPatterns = []struct {
	tag string
	re  string
}{
	{tags.DatetimeTag, `\d{8}T\d{6}`},
	{tags.DateTag, `\d{8}`},
	{tags.TimeTag, `\d{6}`},
}

// ValidateList runs every per-name and cross-name check over the batch and
// returns all findings. Input refs may carry paths, which are copied onto
// the findings they produce. checkValueLengths controls the batch-wide
// value-length consistency check, which is a property of the set rather
// than of any single name.
func ValidateList(refs []names.Ref, prefix names.Prefix, tpl *NameTemplates, checkValueLengths bool) []names.Error {
	var errs []names.Error

	// stripped collects the refs whose integer value extracted cleanly;
	// only those take part in the cross-name checks.
	var stripped []names.Ref

	for _, ref := range refs {
		perName, ok := checkSingleName(ref, prefix, tpl)
		errs = append(errs, perName...)
		if ok {
			stripped = append(stripped, ref)
		}
	}

	for i := 1; i < len(stripped); i++ {
		errs = append(errs, NewNameDuplicatesExisting(stripped[i], stripped[:i], prefix)...)
	}

	if checkValueLengths {
		if lenErr := ValueLengthsInconsistent(stripped, prefix); lenErr != nil {
			errs = append(errs, *lenErr)
		}
	}

	return errs
}

// checkSingleName runs the per-name checks in order. Each check operates
// independently, so one name can accumulate several findings. The boolean
// result reports whether the integer value extracted cleanly, which gates
// the name's participation in cross-name analysis.
func checkSingleName(ref names.Ref, prefix names.Prefix, tpl *NameTemplates) ([]names.Error, bool) {
	var errs []names.Error
	name := ref.Name

	valueOK := true
	if _, verr := names.ExtractValue(name, prefix); verr != nil {
		verr.Path = ref.Path
		errs = append(errs, *verr)
		valueOK = false
	}

	if !strings.HasPrefix(name, prefix.Dashed()) {
		errs = append(errs, located(ref, names.Errorf(names.BadName,
			"name %q must begin with %q", name, prefix.Dashed())))
	}

	if !specialCharPattern.MatchString(name) {
		errs = append(errs, located(ref, names.Errorf(names.SpecialChar,
			"name %q contains special characters; only letters, digits, dashes and underscores are allowed", name)))
	}

	if !names.IsReservedKeyword(name) && !names.DelimitersAlternate(name) {
		errs = append(errs, located(ref, names.Errorf(names.NameFormat,
			"name %q is not formatted correctly: dashes and underscores must alternate, starting and ending on a dash-separated pair", name)))
	}

	errs = append(errs, checkDatetimes(ref)...)

	if pattern := tpl.forPrefix(prefix); pattern != "" {
		if terr := checkTemplate(name, pattern); terr != nil {
			errs = append(errs, located(ref, terr))
		}
	}

	return errs, valueOK
}

// checkDatetimes validates every embedded date-, time- and datetime- value
// against its fixed layout. Keys only match at the start of a name or after
// an underscore, so "time-" inside "datetime-" is never misread.
func checkDatetimes(ref names.Ref) []names.Error {
	var errs []names.Error
	for _, dc := range datetimeChecks {
		value, ok := keyValue(ref.Name, dc.key)
		if !ok {
			continue
		}
		if _, err := time.Parse(dc.layout, value); err != nil {
			errs = append(errs, located(ref, names.Errorf(names.Datetime,
				"the %s value %q in name %q is not a valid %s timestamp (expected %s)",
				dc.key, value, ref.Name, dc.key, dc.expected)))
		}
	}
	return errs
}

// checkTemplate matches name against the template regexp after substituting
// symbolic tags for their regexp equivalents. A full match is required.
func checkTemplate(name, pattern string) *names.Error {
	for _, tp := range templateTagPatterns {
		pattern = strings.ReplaceAll(pattern, tp.tag, tp.re)
	}
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return names.Errorf(names.Template, "name template %q is not a valid regular expression", pattern)
	}
	if !re.MatchString(name) {
		return names.Errorf(names.Template, "name %q does not match the name template %q", name, pattern)
	}
	return nil
}

// NewNameDuplicatesExisting compares the parsed integer identifier of
// newName against every existing name. A matching identifier on a different
// full string is a DUPLICATE_NAME finding; an exact string match is
// permitted silently, since the name already exists verbatim (for example
// duplicated across the local and central indexes).
func NewNameDuplicatesExisting(newName names.Ref, existing []names.Ref, prefix names.Prefix) []names.Error {
	newID, _, verr := names.ParseID(newName.Name, prefix)
	if verr != nil {
		return nil
	}

	var errs []names.Error
	for _, ex := range existing {
		exID, _, verr := names.ParseID(ex.Name, prefix)
		if verr != nil {
			continue
		}
		if exID == newID && ex.Name != newName.Name {
			errs = append(errs, located(newName, names.Errorf(names.DuplicateName,
				"name %q claims the same %s identifier as existing name %q", newName.Name, prefix, ex.Name)))
		}
	}
	return errs
}

// ValueLengthsInconsistent checks that every extracted integer value in the
// batch has the same string length. Inconsistency produces a single finding
// for the whole batch, never one per name: uniform zero-padding is a
// property of the set.
func ValueLengthsInconsistent(refs []names.Ref, prefix names.Prefix) *names.Error {
	lengths := make(map[int]bool)
	for _, ref := range refs {
		value, verr := names.ExtractValue(ref.Name, prefix)
		if verr != nil {
			continue
		}
		lengths[len(value)] = true
	}
	if len(lengths) > 1 {
		return names.Errorf(names.ValueLength,
			"inconsistent value lengths for the %s key: every %s value in the project must use the same number of digits", prefix, prefix)
	}
	return nil
}

// located copies the ref's path onto the finding.
func located(ref names.Ref, e *names.Error) names.Error {
	e.Path = ref.Path
	return *e
}

// keyValue extracts the value of "<key>-" from name; the key must start the
// name or follow an underscore.
func keyValue(name, key string) (string, bool) {
	target := key + "-"
	for idx := 0; idx <= len(name)-len(target); idx++ {
		if !strings.HasPrefix(name[idx:], target) {
			continue
		}
		if idx != 0 && name[idx-1] != '_' {
			continue
		}
		rest := name[idx+len(target):]
		if cut := strings.IndexByte(rest, '_'); cut >= 0 {
			rest = rest[:cut]
		}
		return rest, true
	}
	return "", false
}
