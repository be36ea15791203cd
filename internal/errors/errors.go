package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrRecipeNotFound is returned when a recipe is not found.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrFavoriteNotFound is returned when a favorite edge does not exist.
	ErrFavoriteNotFound = errors.New("recipe not found in favorites")
	// ErrNotOwner is returned when a caller mutates a recipe they do not own.
	ErrNotOwner = errors.New("you can only modify your own recipes")
	// ErrAdminOnly is returned when a non-admin calls an admin-only operation.
	ErrAdminOnly = errors.New("admin access required")
)

// ErrorResponse is the uniform failure envelope. Error carries an internal
// diagnostic detail and is not guaranteed stable across versions.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Detail     string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, detail string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Detail:     detail,
	}
}

// ToErrorResponse converts an HTTPError to the wire envelope.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Success: false,
		Message: e.Message,
		Error:   e.Detail,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Anything unrecognized is
// a store or internal failure and reported as a 500 without retry semantics.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "")
	case errors.Is(err, ErrRecipeNotFound):
		return NewHTTPError(http.StatusNotFound, ErrRecipeNotFound.Error(), "")
	case errors.Is(err, ErrFavoriteNotFound):
		return NewHTTPError(http.StatusNotFound, ErrFavoriteNotFound.Error(), "")
	case errors.Is(err, ErrNotOwner):
		return NewHTTPError(http.StatusForbidden, ErrNotOwner.Error(), "")
	case errors.Is(err, ErrAdminOnly):
		return NewHTTPError(http.StatusForbidden, ErrAdminOnly.Error(), "")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", err.Error())
	}
}
