package metagen

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is wrapped by a ParseError when the decoded value is blank.
var ErrEmptyResponse = errors.New("empty response")

// ParseError is returned when formatted model output does not decode into the
// expected wrapper for a field. Raw carries the offending text.
type ParseError struct {
	Raw  string
	Kind FieldKind
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s response %q: %v", e.Kind, e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// StageError reports the field at which a pipeline run stopped.
type StageError struct {
	Stage FieldKind
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("metadata generation failed at %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
