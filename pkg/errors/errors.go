package errors

import (
	"fmt"
)

// ErrorType defines different categories of errors
type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "VALIDATION"
	ErrorTypeDateMismatch    ErrorType = "DATE_MISMATCH"
	ErrorTypeInvalidTimezone ErrorType = "INVALID_TIMEZONE"
	ErrorTypeGeocoding       ErrorType = "GEOCODING_FAILURE"
	ErrorTypeNoGateFound     ErrorType = "NO_GATE_FOUND"
	ErrorTypeEphemeris       ErrorType = "EPHEMERIS"
	ErrorTypeInternal        ErrorType = "INTERNAL"
)

// AppError is the custom error type for the application
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work
func (e *AppError) Unwrap() error {
	return e.Err
}

// Constructor functions for different error types

// NewValidation creates a validation error
func NewValidation(message string) error {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewDateMismatch creates an error for a birth date that disagrees with the
// date embedded in the local-time value.
func NewDateMismatch(message string) error {
	return &AppError{
		Type:    ErrorTypeDateMismatch,
		Message: message,
	}
}

// NewInvalidTimezone creates an error for an unrecognized IANA timezone name
func NewInvalidTimezone(name string, err error) error {
	return &AppError{
		Type:    ErrorTypeInvalidTimezone,
		Message: fmt.Sprintf("unrecognized IANA timezone %q", name),
		Err:     err,
	}
}

// NewGeocoding creates an error for a place that could not be resolved
func NewGeocoding(place string, err error) error {
	return &AppError{
		Type:    ErrorTypeGeocoding,
		Message: fmt.Sprintf("could not geocode place %q", place),
		Err:     err,
	}
}

// NewNoGateFound reports a longitude that fell outside every partition arc.
// A validated wheel makes this unreachable; seeing it means the wheel data is
// corrupt, so it is an internal-consistency error rather than bad input.
func NewNoGateFound(longitude float64) error {
	return &AppError{
		Type:    ErrorTypeNoGateFound,
		Message: fmt.Sprintf("no gate arc contains longitude %.6f", longitude),
	}
}

// NewEphemeris wraps a failure from the ephemeris provider
func NewEphemeris(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeEphemeris,
		Message: message,
		Err:     err,
	}
}

// NewInternal creates an internal error
func NewInternal(message string, err error) error {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, preserve the type
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Type:    appErr.Type,
			Message: fmt.Sprintf("%s: %s", message, appErr.Message),
			Err:     appErr.Err,
		}
	}

	// Otherwise, create an internal error
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// Type checking functions

func isType(err error, t ErrorType) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Type == t
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return isType(err, ErrorTypeValidation) || isType(err, ErrorTypeDateMismatch)
}

// IsDateMismatch checks if an error is a date mismatch error
func IsDateMismatch(err error) bool {
	return isType(err, ErrorTypeDateMismatch)
}

// IsInvalidTimezone checks if an error is an invalid timezone error
func IsInvalidTimezone(err error) bool {
	return isType(err, ErrorTypeInvalidTimezone)
}

// IsGeocoding checks if an error is a geocoding failure
func IsGeocoding(err error) bool {
	return isType(err, ErrorTypeGeocoding)
}

// IsNoGateFound checks if an error is a partition-table consistency failure
func IsNoGateFound(err error) bool {
	return isType(err, ErrorTypeNoGateFound)
}

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool {
	return isType(err, ErrorTypeInternal)
}
