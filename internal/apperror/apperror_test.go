package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("user", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("repoId", "repo ID is required"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Unauthorized wraps ErrUnauthorized",
			err:       Unauthorized("authentication required"),
			target:    ErrUnauthorized,
			wantMatch: true,
		},
		{
			name:      "TokenMissing wraps ErrTokenMissing",
			err:       TokenMissing(),
			target:    ErrTokenMissing,
			wantMatch: true,
		},
		{
			name:      "Upstream wraps ErrUpstream",
			err:       Upstream(404),
			target:    ErrUpstream,
			wantMatch: true,
		},
		{
			name:      "Generation wraps ErrGeneration",
			err:       Generation(),
			target:    ErrGeneration,
			wantMatch: true,
		},
		{
			name:      "TokenMissing does NOT match ErrUnauthorized",
			err:       TokenMissing(),
			target:    ErrUnauthorized,
			wantMatch: false,
		},
		{
			name:      "Upstream does NOT match ErrGeneration",
			err:       Upstream(502),
			target:    ErrGeneration,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.wantMatch {
				t.Errorf("errors.Is() = %v, want %v", got, tt.wantMatch)
			}
		})
	}
}

// Classification must survive fmt.Errorf("%w") wrapping — services wrap
// errors with context before returning them up the stack.
func TestErrorsIsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("generating readme for repo 42: %w", Upstream(404))

	if !errors.Is(wrapped, ErrUpstream) {
		t.Error("wrapped Upstream error should match ErrUpstream")
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("errors.As should extract *AppError through wrapping")
	}
	if appErr.Status != 404 {
		t.Errorf("Status = %d, want 404", appErr.Status)
	}
}

func TestErrorMessages(t *testing.T) {
	if got := TokenMissing().Error(); got != "GitHub token missing" {
		t.Errorf("TokenMissing message = %q", got)
	}
	if got := Generation().Error(); got != "README generation failed" {
		t.Errorf("Generation message = %q", got)
	}
}
