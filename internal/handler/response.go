package handler

// RESPONSE HELPERS:
// These functions standardise how we send JSON responses and errors.
// Every error response from the API has the same shape:
//
//	{"error": "token_missing", "message": "GitHub token missing"}
//
// so the frontend always knows what fields to expect, regardless of whether
// it's a 400, 401, or 502.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/readme-studio/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "token_missing")
	Message string `json:"message"` // Human-readable description
}

// writeJSON sends a JSON response with the given status code.
// Headers and status code must be set before the body is written — once
// Encode calls w.Write, header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent — we can only log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to the appropriate HTTP status code.
//
// This is the ONLY place the error taxonomy meets HTTP:
//
//	ErrValidation   → 400  (bad input, e.g. missing repoId)
//	ErrUnauthorized → 401  (no session — log in)
//	ErrTokenMissing → 401  (session fine, GitHub token gone — reconnect)
//	ErrNotFound     → 404
//	ErrUpstream     → the GitHub status, passed through unchanged
//	ErrGeneration   → 502  (AI call failed; generic message, no provider detail)
//	anything else   → 500  with a generic body
//
// The two 401 variants carry different error types on purpose: the frontend
// prompts "log in" for one and "re-connect GitHub" for the other.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
			errorType = "unauthorized"
		case errors.Is(err, apperror.ErrTokenMissing):
			status = http.StatusUnauthorized
			errorType = "token_missing"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrUpstream):
			status = appErr.Status
			if status == 0 {
				status = http.StatusBadGateway
			}
			errorType = "upstream_error"
		case errors.Is(err, apperror.ErrGeneration):
			status = http.StatusBadGateway
			errorType = "generation_failed"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	// Unknown error — generic 500. The raw message might contain URLs or
	// other internals, so it never reaches the client.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
