package tags

import (
	"regexp"
	"strings"
	"time"

	"nbshuttle/internal/names"
)

// Bounds is a datetime range extracted from a search pattern. Key is the
// key-value key the bounds apply to ("date", "time" or "datetime").
type Bounds struct {
	Key   string
	Start time.Time
	End   time.Time
}

// searchRangeTags lists the search-only range tags in application order,
// most specific key first.
var searchRangeTags = []struct {
	key    string
	tag    string
	layout string
}{
	{"datetime", "@DATETIMETO@", DatetimeLayout},
	{"time", "@TIMETO@", TimeLayout},
	{"date", "@DATETO@", DateLayout},
}

var searchRangePatterns = map[string]*regexp.Regexp{
	"@DATETIMETO@": regexp.MustCompile(`datetime-([0-9T]+)@DATETIMETO@([0-9T]+)`),
	"@TIMETO@":     regexp.MustCompile(`time-([0-9]+)@TIMETO@([0-9]+)`),
	"@DATETO@":     regexp.MustCompile(`date-([0-9]+)@DATETO@([0-9]+)`),
}

// TranslateForSearch converts the tag syntax of a name into a glob pattern
// usable against existing folder names. @*@ becomes the glob wildcard *;
// each datetime-range tag becomes a wildcard value plus an extracted Bounds
// entry for post-filtering the glob matches. Only search code paths use
// this translation, never folder creation.
func TranslateForSearch(name string) (string, []Bounds, *names.Error) {
	pattern := strings.ReplaceAll(name, WildcardTag, "*")

	var bounds []Bounds
	for _, rt := range searchRangeTags {
		pat := searchRangePatterns[rt.tag]
		m := pat.FindStringSubmatch(pattern)
		if m == nil {
			continue
		}
		start, err := time.Parse(rt.layout, m[1])
		if err != nil {
			return "", nil, names.Errorf(names.Datetime,
				"range bound %q does not match the %s format %s", m[1], rt.key, rt.layout)
		}
		end, err := time.Parse(rt.layout, m[2])
		if err != nil {
			return "", nil, names.Errorf(names.Datetime,
				"range bound %q does not match the %s format %s", m[2], rt.key, rt.layout)
		}
		if end.Before(start) {
			return "", nil, names.Errorf(names.NameFormat,
				"the start of the %s range in %q must not come after the end", rt.key, name)
		}
		bounds = append(bounds, Bounds{Key: rt.key, Start: start, End: end})
		pattern = pat.ReplaceAllString(pattern, rt.key+"-*")
	}
	return pattern, bounds, nil
}

// InBounds reports whether the key-value pair named by b.Key inside name
// parses to a timestamp within [b.Start, b.End]. Names whose value is
// missing or unparseable are excluded.
func InBounds(name string, b Bounds) bool {
	value, ok := keyValue(name, b.Key)
	if !ok {
		return false
	}
	layout := DateLayout
	switch b.Key {
	case "time":
		layout = TimeLayout
	case "datetime":
		layout = DatetimeLayout
	}
	t, err := time.Parse(layout, value)
	if err != nil {
		return false
	}
	return !t.Before(b.Start) && !t.After(b.End)
}

// FilterByBounds keeps the candidates whose embedded date/time/datetime
// values fall inside every given range.
func FilterByBounds(candidates []string, bounds []Bounds) []string {
	if len(bounds) == 0 {
		return candidates
	}
	var kept []string
	for _, c := range candidates {
		inside := true
		for _, b := range bounds {
			if !InBounds(c, b) {
				inside = false
				break
			}
		}
		if inside {
			kept = append(kept, c)
		}
	}
	return kept
}

// keyValue extracts the value of "<key>-" from name. The key must start the
// name or follow an underscore, so "time-" never matches inside "datetime-".
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
