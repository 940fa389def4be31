// Package names defines the naming vocabulary shared by the nbshuttle core:
// subject/session prefixes, reserved keywords, canonical datatypes, the
// prefix-value grammar and the delimiter-alternation rule.
package names

import (
	"regexp"
	"strconv"
	"strings"
)

// Prefix identifies the leading key of a folder name.
type Prefix string

const (
	Sub Prefix = "sub"
	Ses Prefix = "ses"
)

// Valid reports whether p is one of the two known prefixes.
func (p Prefix) Valid() bool {
	return p == Sub || p == Ses
}

// Dashed returns the prefix with its trailing dash, e.g. "sub-".
func (p Prefix) Dashed() string {
	return string(p) + "-"
}

// TopLevel names one of the two NeuroBlueprint top-level folders.
type TopLevel string

const (
	RawData     TopLevel = "rawdata"
	Derivatives TopLevel = "derivatives"
)

// Valid reports whether t is a known top-level folder name.
func (t TopLevel) Valid() bool {
	return t == RawData || t == Derivatives
}

// Ref pairs a folder name with its optional filesystem path. A Ref with an
// empty Path stands in for a bare name string.
type Ref struct {
	Name string
	Path string
}

// Refs wraps bare name strings into Refs with no path.
func Refs(ss []string) []Ref {
	out := make([]Ref, len(ss))
	for i, s := range ss {
		out[i] = Ref{Name: s}
	}
	return out
}

// reservedKeywords are selector names that pass through formatting unprefixed
// and bypass the single-name structural checks.
var reservedKeywords = map[string]bool{
	"all":              true,
	"all_sub":          true,
	"all_ses":          true,
	"all_non_sub":      true,
	"all_non_ses":      true,
	"all_datatype":     true,
	"all_non_datatype": true,
}

// IsReservedKeyword reports whether name is exactly one of the selector
// keywords ("all", "all_sub", ...).
func IsReservedKeyword(name string) bool {
	return reservedKeywords[name]
}

// Datatypes is the canonical NeuroBlueprint datatype folder set.
var Datatypes = []string{"behav", "ephys", "funcimg", "anat"}

// IsDatatype reports whether name is a canonical datatype folder name.
func IsDatatype(name string) bool {
	for _, d := range Datatypes {
		if name == d {
			return true
		}
	}
	return false
}

// allDigits matches a non-negative integer literal: no sign, no decimal point.
var allDigits = regexp.MustCompile(`^\d+$`)

// valuePatterns caches the per-prefix extraction pattern. The value is the
// substring between "<prefix>-" and the next underscore or end of string.
var valuePatterns = map[Prefix]*regexp.Regexp{
	Sub: regexp.MustCompile(`sub-([^_]*)`),
	Ses: regexp.MustCompile(`ses-([^_]*)`),
}

// ExtractValue pulls the raw value of the prefix key-value pair out of name.
// It returns a MISSING_PREFIX finding when the prefix pair is absent, a
// DUPLICATE_PREFIX finding when the prefix appears more than once, and a
// BAD_VALUE finding when the value is not a non-negative integer literal.
// Leading zeros are preserved in the returned value.
func ExtractValue(name string, prefix Prefix) (string, *Error) {
	pat, ok := valuePatterns[prefix]
	if !ok {
		return "", Errorf(BadName, "unknown prefix %q", string(prefix))
	}

	matches := pat.FindAllStringSubmatch(name, -1)
	switch {
	case len(matches) == 0:
		return "", Errorf(MissingPrefix, "name %q does not contain the key %q", name, prefix.Dashed())
	case len(matches) > 1:
		return "", Errorf(DuplicatePrefix, "name %q contains the key %q more than once", name, prefix.Dashed())
	}

	value := matches[0][1]
	if !allDigits.MatchString(value) {
		return "", Errorf(BadValue, "the %s value %q in name %q must be a non-negative integer", prefix, value, name)
	}
	return value, nil
}

// ParseID extracts the integer identifier of the prefix key-value pair.
// Leading zeros are significant for padding but not for the returned id.
func ParseID(name string, prefix Prefix) (int, string, *Error) {
	value, verr := ExtractValue(name, prefix)
	if verr != nil {
		return 0, "", verr
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, "", Errorf(BadValue, "the %s value %q in name %q does not parse as an integer", prefix, value, name)
	}
	return id, value, nil
}

// DelimitersAlternate reports whether the dashes and underscores in name
// form a valid alternating sequence. Scanning left to right and mapping
// '-' to +1 and '_' to -1, the sequence must be non-empty, start and end
// with +1, never repeat a value in adjacent positions, and the name must
// not end on a bare delimiter character.
func DelimitersAlternate(name string) bool {
	var seq []int
	for _, r := range name {
		switch r {
		case '-':
			seq = append(seq, 1)
		case '_':
			seq = append(seq, -1)
		}
	}

	if len(seq) == 0 {
		return false
	}
	if seq[0] != 1 || seq[len(seq)-1] != 1 {
		return false
	}
	for i := 1; i < len(seq); i++ {
		if seq[i] == seq[i-1] {
			return false
		}
	}
	return !strings.HasSuffix(name, "-") && !strings.HasSuffix(name, "_")
}
