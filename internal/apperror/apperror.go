// Package apperror defines the application's error taxonomy.
//
// Services and clients return these typed errors; the HTTP layer
// (internal/handler/response.go) is the only place that maps them to status
// codes. That keeps every other layer protocol-agnostic.
package apperror

import (
	"errors"
	"fmt"
)

// Sentinel errors. Wrap these in an AppError so errors.Is can classify a
// failure anywhere in the chain.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenMissing = errors.New("provider token missing")
	ErrUpstream     = errors.New("upstream error")
	ErrGeneration   = errors.New("generation failed")
)

// AppError carries a sentinel (for classification), a human-readable message
// (safe to show to the client), and optional extras.
//
// Status is only set for ErrUpstream: the remote API's status code, which the
// HTTP layer passes through to the caller. Internal detail (URLs, provider
// error bodies, tokens) never goes in Message — log it instead.
type AppError struct {
	Err     error  // sentinel error for errors.Is
	Message string // human-readable, client-safe
	Field   string // optional: input field causing a validation error
	Status  int    // optional: remote status for ErrUpstream
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Unauthorized means the request carries no valid session. The fix for the
// user is to log in.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// TokenMissing means the session is valid but we hold no usable GitHub token
// for the user. Distinct from Unauthorized: the fix is to re-connect GitHub,
// not to log in again. Both map to 401 at the HTTP layer.
func TokenMissing() *AppError {
	return &AppError{
		Err:     ErrTokenMissing,
		Message: "GitHub token missing",
	}
}

// Upstream records a non-success status from the GitHub API on a required
// call. The HTTP layer responds with the same status.
func Upstream(status int) *AppError {
	return &AppError{
		Err:     ErrUpstream,
		Message: "GitHub API error",
		Status:  status,
	}
}

// Generation means the AI call failed or produced no usable text. The caller
// gets a generic failure — never a partial document.
func Generation() *AppError {
	return &AppError{
		Err:     ErrGeneration,
		Message: "README generation failed",
	}
}
