package names

import "fmt"

// ErrorKind tags a validation finding with its place in the flat error taxonomy.
type ErrorKind string

const (
	MissingPrefix         ErrorKind = "MISSING_PREFIX"
	DuplicatePrefix       ErrorKind = "DUPLICATE_PREFIX"
	BadValue              ErrorKind = "BAD_VALUE"
	BadName               ErrorKind = "BAD_NAME"
	SpecialChar           ErrorKind = "SPECIAL_CHAR"
	NameFormat            ErrorKind = "NAME_FORMAT"
	ValueLength           ErrorKind = "VALUE_LENGTH"
	Datetime              ErrorKind = "DATETIME"
	Template              ErrorKind = "TEMPLATE"
	DuplicateName         ErrorKind = "DUPLICATE_NAME"
	Datatype              ErrorKind = "DATATYPE"
	MissingTopLevelFolder ErrorKind = "MISSING_TOP_LEVEL_FOLDER"
)

// Error is a single structured validation finding. Validation functions return
// slices of these; they never panic and never write to logs or stdout.
type Error struct {
	Kind    ErrorKind
	Message string
	Path    string // filesystem location of the offending folder, when known
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Errorf builds an Error with a formatted message.
func Errorf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// JoinErrors renders a slice of findings as one newline-separated string,
// for callers that surface the whole batch as a single error.
func JoinErrors(errs []Error) string {
	out := ""
	for i := range errs {
		if i > 0 {
			out += "\n"
		}
		out += errs[i].Error()
	}
	return out
}
