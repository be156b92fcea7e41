// Package importerror defines the typed errors surfaced by the import and
// backup boundaries.
package importerror

import "fmt"

// ParseError reports a row or field of an import file that could not be
// parsed. Parse errors abort the whole file: a failed import stages nothing.
type ParseError struct {
	File  string
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v", e.File, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatError reports an import file whose structure is not usable, such as
// a missing date header row.
type FormatError struct {
	File string
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s", e.File, e.Msg)
}

// ValidationError reports a backup document that failed schema validation.
// Existing persisted state is never touched when validation fails.
type ValidationError struct {
	Name   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Name, e.Reason)
}
