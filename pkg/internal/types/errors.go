package types

import "fmt"

// ValidationError reports an input or parameter set that violates a component's
// preconditions, such as a FilterSpec whose cutoffs do not fit the record's
// Nyquist frequency. It is terminal for the stage that raises it.
type ValidationError struct {
	Field  string // Parameter or field that failed validation.
	Reason string // Human-readable explanation of the violation.
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// EmptySignalError reports a zero-length or entirely invalid (all-NaN) sample
// sequence where a non-empty one is required.
type EmptySignalError struct {
	Reason string
}

func (e *EmptySignalError) Error() string {
	return fmt.Sprintf("empty signal: %s", e.Reason)
}

// InsufficientDataError reports an input that is well-formed but too short for
// the requested operation, such as a record shorter than the zero-phase filter's
// edge padding.
type InsufficientDataError struct {
	Op     string // Operation that could not proceed.
	Needed int    // Minimum number of samples or events required.
	Got    int    // Number actually available.
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: need at least %d, got %d", e.Op, e.Needed, e.Got)
}
