// Package parsererror defines the typed errors raised while loading statements.
package parsererror

import "fmt"

// ExtractionFailedMsg is the user-facing message for any extraction failure.
const ExtractionFailedMsg = "could not extract transactions from PDF"

// ParseError reports a field of a stored transaction file that could not be decoded.
type ParseError struct {
	Source string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: cannot parse %s %q: %v", e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a malformed record returned by the extraction service.
// Index is the record's position in the service response.
type ValidationError struct {
	Index  int
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("record %d: invalid %s '%s': %s", e.Index, e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("record %d: invalid %s: %s", e.Index, e.Field, e.Reason)
}

// InvalidFormatError is returned when an input is not a statement of the expected kind.
// Snippet holds the first bytes of the input, if any were read.
type InvalidFormatError struct {
	Path     string
	Expected string
	Reason   string
	Snippet  string
}

func (e *InvalidFormatError) Error() string {
	msg := fmt.Sprintf("%s is not a valid %s file: %s", e.Path, e.Expected, e.Reason)
	if e.Snippet == "" {
		return msg
	}
	return fmt.Sprintf("%s (starts with %q)", msg, e.Snippet)
}

// ExtractionError wraps a failed call to the extraction service or an undecodable response.
type ExtractionError struct {
	FilePath string
	Reason   string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.FilePath != "" {
		return fmt.Sprintf("%s: %s (%s): %v", ExtractionFailedMsg, e.FilePath, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", ExtractionFailedMsg, e.Reason, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
