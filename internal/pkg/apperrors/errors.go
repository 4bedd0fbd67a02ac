package apperrors

import "errors"

// Sentinel errors. The parser, validator and planner never return errors
// for any input; the sentinels below cover the store boundary and lookups,
// the only conditions this core cannot mask.
var (
	// ErrGraphUnavailable means the backing graph store could not be
	// reached or returned garbage. Callers decide retry/fallback policy.
	ErrGraphUnavailable = errors.New("graph store unavailable")

	// ErrCourseNotFound is returned by direct course lookups.
	ErrCourseNotFound = errors.New("course not found")

	// ErrMetadataNotFound means the graph metadata row is missing and
	// could not be created.
	ErrMetadataNotFound = errors.New("graph metadata not found")
)

// CustomError wraps a sentinel with a human-readable message and optional
// context details.
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap makes the wrapped sentinel visible to errors.Is.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError around a sentinel.
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{Err: err, Message: message}
}

// WithDetails attaches context details to the error.
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewGraphUnavailableError wraps a store failure so that
// errors.Is(err, ErrGraphUnavailable) holds for callers.
func NewGraphUnavailableError(cause error) error {
	return &CustomError{
		Err:     ErrGraphUnavailable,
		Message: "graph store unavailable: " + cause.Error(),
	}
}
