// Package tags expands the symbolic tags that may be embedded in subject and
// session names: literal timestamp tags (@DATE@, @TIME@, @DATETIME@), the
// @TO@ numeric range tag, and the search-only wildcard and datetime-range
// tags. All functions are pure; the current time is always a parameter.
package tags

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"nbshuttle/internal/names"
)

// Tag delimiters recognised in user-supplied names.
const (
	DateTag     = "@DATE@"
	TimeTag     = "@TIME@"
	DatetimeTag = "@DATETIME@"
	ToTag       = "@TO@"
	WildcardTag = "@*@"
)

// Timestamp layouts for the key-value pairs the literal tags expand into.
const (
	DateLayout     = "20060102"
	TimeLayout     = "150405"
	DatetimeLayout = "20060102T150405"
)

// literalTags lists the literal substitutions in application order.
// @DATETIME@ is handled first so a name containing substrings of several
// tags resolves to the most specific one.
var literalTags = []struct {
	tag    string
	key    string
	layout string
}{
	{DatetimeTag, "datetime", DatetimeLayout},
	{DateTag, "date", DateLayout},
	{TimeTag, "time", TimeLayout},
}

// ResolveLiteral replaces every @DATE@, @TIME@ and @DATETIME@ tag in the
// batch with its key-value form, all using the single timestamp now so a
// whole batch shares one moment. Underscores are inserted around the
// replacement where the tag was not already delimiter-adjacent. The input
// slice is not modified.
func ResolveLiteral(batch []string, now time.Time) []string {
	out := make([]string, len(batch))
	for i, name := range batch {
		for _, lt := range literalTags {
			name = substituteLiteral(name, lt.tag, lt.key+"-"+now.Format(lt.layout))
		}
		out[i] = name
	}
	return out
}

// substituteLiteral replaces every occurrence of tag in name with
// replacement, padding with underscores so the inserted key-value pair is
// delimiter-separated from its neighbours.
func substituteLiteral(name, tag, replacement string) string {
	for {
		idx := strings.Index(name, tag)
		if idx < 0 {
			return name
		}
		before := name[:idx]
		after := name[idx+len(tag):]

		rep := replacement
		if before != "" && !isDelimiter(before[len(before)-1]) {
			rep = "_" + rep
		}
		if after != "" && !isDelimiter(after[0]) {
			rep = rep + "_"
		}
		name = before + rep + after
	}
}

func isDelimiter(b byte) bool {
	return b == '-' || b == '_'
}

// rangePatterns matches "<prefix>-<int>@TO@<int>" at the start of a name,
// capturing both bounds and any trailing remainder.
var rangePatterns = map[names.Prefix]*regexp.Regexp{
	names.Sub: regexp.MustCompile(`^sub-(\d+)@TO@(\d+)(.*)$`),
	names.Ses: regexp.MustCompile(`^ses-(\d+)@TO@(\d+)(.*)$`),
}

// ExpandRange expands a @TO@ tag embedded in the prefix key-value pair of
// name into one name per integer in the inclusive range. A name without the
// tag is returned as a single-element slice unchanged.
//
// The zero-padding width of every expanded value is
// max(leading zeros of left bound, leading zeros of right bound) + 1,
// one digit more than the more-padded bound. "sub-01@TO@003" therefore
// expands to sub-001, sub-002, sub-003.
func ExpandRange(name string, prefix names.Prefix) ([]string, *names.Error) {
	if !strings.Contains(name, ToTag) {
		return []string{name}, nil
	}

	pat, ok := rangePatterns[prefix]
	if !ok {
		return nil, names.Errorf(names.BadName, "unknown prefix %q", string(prefix))
	}
	m := pat.FindStringSubmatch(name)
	if m == nil {
		return nil, names.Errorf(names.NameFormat,
			"%q is not a valid range: the %s tag must sit directly between two integers immediately after %q",
			name, ToTag, prefix.Dashed())
	}

	left, right, rest := m[1], m[2], m[3]
	lo, err := strconv.Atoi(left)
	if err != nil {
		return nil, names.Errorf(names.NameFormat, "range bound %q does not parse as an integer", left)
	}
	hi, err := strconv.Atoi(right)
	if err != nil {
		return nil, names.Errorf(names.NameFormat, "range bound %q does not parse as an integer", right)
	}
	if lo >= hi {
		return nil, names.Errorf(names.NameFormat,
			"the left bound of %q must be strictly smaller than the right bound", name)
	}

	width := leadingZeros(left)
	if z := leadingZeros(right); z > width {
		width = z
	}
	width++

	expanded := make([]string, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		expanded = append(expanded, fmt.Sprintf("%s%0*d%s", prefix.Dashed(), width, n, rest))
	}
	return expanded, nil
}

// leadingZeros counts the '0' characters at the front of a digit string.
func leadingZeros(value string) int {
	count := 0
	for count < len(value) && value[count] == '0' {
		count++
	}
	return count
}
