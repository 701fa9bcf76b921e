package models

import (
	"errors"
	"fmt"
)

// InsufficientDataError reports a "not enough history" condition: fewer
// distinct days than requested, or a merge that left fewer aligned rows than
// the model window needs. Recoverable by re-fetching with a larger window.
type InsufficientDataError struct {
	Side  string // which input lacked coverage: "reddit", "price" or "merge"
	Found int
	Need  int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient %s data: found %d day(s), need %d", e.Side, e.Found, e.Need)
}

// SchemaError reports a collaborator payload that is missing a required
// field or carries an unexpected column set. A caller contract violation,
// distinct from running out of history.
type SchemaError struct {
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema violation: missing or invalid field %q", e.Field)
}

// InferenceError wraps a failure inside the external scaler or model
// invocation. Internal to the request, never retried.
type InferenceError struct {
	Stage string // "scale" or "score"
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed at %s: %v", e.Stage, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// IsInsufficientData reports whether err is an InsufficientDataError.
func IsInsufficientData(err error) bool {
	var target *InsufficientDataError
	return errors.As(err, &target)
}

// IsSchemaError reports whether err is a SchemaError.
func IsSchemaError(err error) bool {
	var target *SchemaError
	return errors.As(err, &target)
}
