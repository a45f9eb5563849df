package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrAdviceNotFound is returned when an advice record is not found.
	ErrAdviceNotFound = errors.New("advice not found")
	// ErrTitleAndTextRequired is returned when title or text is missing or empty.
	ErrTitleAndTextRequired = errors.New("title and text are required")
	// ErrForbidden is returned when the caller is neither the author nor an admin.
	ErrForbidden = errors.New("not allowed to modify this advice")
	// ErrAdminOnly is returned when a non-admin calls an admin-only operation.
	ErrAdminOnly = errors.New("admin only")
	// ErrUnauthorized is returned when an operation requires an authenticated caller.
	ErrUnauthorized = errors.New("authentication required")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrAdviceNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ADVICE_NOT_FOUND")
	case ErrTitleAndTextRequired:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TITLE_TEXT_REQUIRED")
	case ErrForbidden:
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case ErrAdminOnly:
		return NewHTTPError(http.StatusForbidden, err.Error(), "ADMIN_ONLY")
	case ErrUnauthorized:
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
