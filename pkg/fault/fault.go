// Package fault defines the error taxonomy shared by the form engine.
//
// Validation errors are local to one field and never escape a submission.
// Definition errors are raised while forms are being declared. Structural
// errors flag programmer mistakes such as unknown lanes or unregistered
// fields. Computation errors wrap failures of user supplied callbacks.
package fault

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or out-of-range input for one field.
type ValidationError struct {
	Field   string
	Message string
}

// Validation constructs a ValidationError that is not yet bound to a field.
func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// DefinitionError is raised when a form, param or select option is declared
// inconsistently.
type DefinitionError struct {
	Subject string
	Message string
}

// Definition constructs a DefinitionError for the named subject.
func Definition(subject, format string, args ...any) *DefinitionError {
	return &DefinitionError{Subject: subject, Message: fmt.Sprintf(format, args...)}
}

func (e *DefinitionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Subject == "" {
		return "definition: " + e.Message
	}
	return fmt.Sprintf("definition %q: %s", e.Subject, e.Message)
}

// StructuralError marks a defect in the calling code rather than bad input.
type StructuralError struct {
	Message string
}

// Structural constructs a StructuralError.
func Structural(format string, args ...any) *StructuralError {
	return &StructuralError{Message: fmt.Sprintf(format, args...)}
}

func (e *StructuralError) Error() string {
	if e == nil {
		return ""
	}
	return "structural: " + e.Message
}

// ComputationError wraps an error returned (or a panic raised) by a form
// computation.
type ComputationError struct {
	Form string
	Err  error
}

func (e *ComputationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("computation %q failed", e.Form)
	}
	return fmt.Sprintf("computation %q: %v", e.Form, e.Err)
}

func (e *ComputationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// AsValidation extracts the ValidationError carried by err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var target *ValidationError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// IsDefinition reports whether err carries a DefinitionError.
func IsDefinition(err error) bool {
	var target *DefinitionError
	return errors.As(err, &target)
}

// IsStructural reports whether err carries a StructuralError.
func IsStructural(err error) bool {
	var target *StructuralError
	return errors.As(err, &target)
}

// IsComputation reports whether err carries a ComputationError.
func IsComputation(err error) bool {
	var target *ComputationError
	return errors.As(err, &target)
}
