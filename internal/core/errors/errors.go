package errors

import (
	"errors"
	"fmt"
)

// Domain errors - these represent failures the boundary layer maps to
// HTTP responses.
var (
	// ErrDataUnavailable signals that the ticket source could not be
	// reached or the query failed. It is distinct from an empty result,
	// which is a successful fetch of zero rows.
	ErrDataUnavailable = errors.New("ticket data unavailable")

	// Request validation
	ErrInvalidDate      = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidDateRange = errors.New("start_date must not be after end_date")

	// Configuration
	ErrUnsupportedBackend = errors.New("unsupported database backend")

	// Generic
	ErrBadRequest  = errors.New("bad request")
	ErrInternal    = errors.New("internal server error")
	ErrRateLimited = errors.New("rate limit exceeded")
)

// AppError wraps errors with additional context for HTTP responses
type AppError struct {
	Err        error  // The underlying error
	Message    string // User-friendly message
	Code       string // Machine-readable error code
	StatusCode int    // HTTP status code
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors for common cases

func NewBadRequestError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "BAD_REQUEST",
		StatusCode: 400,
	}
}

// NewUnavailableError wraps a ticket source failure. The message matches
// the one the legacy dashboard front-end displays.
func NewUnavailableError(err error) *AppError {
	return &AppError{
		Err:        fmt.Errorf("%w: %w", ErrDataUnavailable, err),
		Message:    "Falha ao buscar dados da base de dados.",
		Code:       "DATA_UNAVAILABLE",
		StatusCode: 503,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "An unexpected error occurred",
		Code:       "INTERNAL_ERROR",
		StatusCode: 500,
	}
}
