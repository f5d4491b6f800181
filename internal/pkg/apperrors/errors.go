package apperrors

import "errors"

// Registration pipeline errors
var (
	// ErrValidation indicates a required form field is missing or malformed.
	// The message wrapped around it is safe to show to the applicant.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateRegistration indicates a student with the same full name and
	// guardian mobile number is already registered.
	ErrDuplicateRegistration = errors.New("student already registered")

	// ErrNumberGeneration indicates the store-side registration number sequence
	// could not produce a value. Surfaced to the client as a generic retry message.
	ErrNumberGeneration = errors.New("registration number generation failed")

	// ErrImageProcessing indicates an uploaded image could not be decoded or
	// re-encoded. Never surfaced to the applicant; the pipeline substitutes a
	// placeholder asset reference instead.
	ErrImageProcessing = errors.New("image processing failed")

	// ErrPersistence indicates the assembled record could not be written.
	ErrPersistence = errors.New("failed to persist registration")
)

// Lookup errors
var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrResourceNotFound = errors.New("resource not found")
)

// Authentication errors
var (
	// ErrInvalidCredentials covers both unknown username and wrong password so
	// the login endpoint cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionInvalid     = errors.New("invalid session")
	ErrSessionExpired     = errors.New("session expired")
)

// Request errors
var (
	ErrBadRequest           = errors.New("bad request")
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// CustomError represents application-specific errors with additional context.
type CustomError struct {
	Err     error
	Message string
	Field   string
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

// Unwrap implements errors.Unwrap.
func (e *CustomError) Unwrap() error {
	return e.Err
}

// WithField records which form field caused the error.
func (e *CustomError) WithField(field string) *CustomError {
	e.Field = field
	return e
}

// NewCustomError creates a CustomError wrapping a sentinel with a message.
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewValidationError creates an error for a missing or malformed field. The
// message is user-correctable and surfaced verbatim.
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidation,
		Message: message,
	}
}

// NewDuplicateError creates an error for an identity collision.
func NewDuplicateError(message string) error {
	return &CustomError{
		Err:     ErrDuplicateRegistration,
		Message: message,
	}
}
