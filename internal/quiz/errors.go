package quiz

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField      = errors.New("missing required field")
	ErrUnsupportedSource = errors.New("unsupported question source")
)

// LoadError means the question source could not be read, parsed or fetched.
// No partial question list accompanies it.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load questions from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// SchemaError means item Index of Source lacks Field (or has an empty question
// text). The whole load fails rather than silently shrinking the quiz.
type SchemaError struct {
	Source string
	Index  int
	Field  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("load questions from %s: item %d: %s %q", e.Source, e.Index, ErrMissingField, e.Field)
}

func (e *SchemaError) Unwrap() error {
	return ErrMissingField
}
