package source

import "fmt"

// ReadError is returned when a source file exists but cannot be read, or
// when a required source file is missing.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ParseError is returned when a source file is not valid JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError describes the first schema violation found in a document.
// Path points at the offending value, e.g. changelog.releases[2].entries[0].type.
type ValidationError struct {
	File     string
	Path     string
	Expected string
	Actual   string
	Err      error
}

func (e *ValidationError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("invalid value at %s: %v", e.Path, e.Err)
	} else {
		msg = fmt.Sprintf("expected %s at %s, got %s", e.Expected, e.Path, e.Actual)
	}
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Err }
