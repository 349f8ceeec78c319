package errors

import (
	"net/http"

	"authd/internal/errors"
)

// Kind is the closed set of failures the service reports to callers.
// Anything that is not one of these is a fault and surfaces as a 5xx.
type Kind int

const (
	// KindDuplicateIdentifier means the email is already registered.
	KindDuplicateIdentifier Kind = iota + 1
	// KindInvalidCredentials covers both an unknown email and a wrong password.
	KindInvalidCredentials
	// KindValidation means the request was malformed before reaching the service.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindDuplicateIdentifier:
		return "duplicate_identifier"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

func newBaseError(kind Kind, httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the error category
func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy carrying detailed error information.
// The copy still matches its source under errors.Is.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Is matches any BaseError with the same kind and error code.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.kind == t.kind && e.errorCode == t.errorCode
}

var (
	ErrEmailTaken = newBaseError(
		KindDuplicateIdentifier,
		http.StatusBadRequest,
		"EMAIL_TAKEN",
		"Email already taken",
	)

	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike, so callers cannot probe which accounts exist.
	ErrInvalidCredentials = newBaseError(
		KindInvalidCredentials,
		http.StatusForbidden,
		"INVALID_CREDENTIALS",
		"Invalid credentials",
	)

	ErrValidationFailed = newBaseError(
		KindValidation,
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
	)
)

// KindOf reports the Kind of the first AppError in err's chain.
func KindOf(err error) (Kind, bool) {
	var appErr AppError
	if !errors.As(err, &appErr) {
		return 0, false
	}

	return appErr.Kind(), true
}
