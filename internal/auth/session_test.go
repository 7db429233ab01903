package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sakif/readme-studio/internal/apperror"
)

func newTestSessionService(t *testing.T) (*SessionService, *TokenService) {
	t.Helper()
	tokens := newTestTokenService(t)
	return NewSessionService(tokens), tokens
}

func TestFromRequest_ValidCookie(t *testing.T) {
	sessions, tokens := newTestSessionService(t)

	tokenStr, err := tokens.Generate("user-42")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/repos", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: tokenStr})

	sess, err := sessions.FromRequest(r)
	if err != nil {
		t.Fatalf("FromRequest() error = %v", err)
	}
	if sess.UserID != "user-42" {
		t.Errorf("UserID = %q, want %q", sess.UserID, "user-42")
	}
}

func TestFromRequest_NoCookie(t *testing.T) {
	sessions, _ := newTestSessionService(t)

	r := httptest.NewRequest(http.MethodGet, "/api/repos", nil)

	_, err := sessions.FromRequest(r)
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("FromRequest() error = %v, want ErrUnauthorized", err)
	}
}

func TestFromRequest_ExpiredCookie(t *testing.T) {
	sessions, tokens := newTestSessionService(t)

	tokenStr, err := tokens.GenerateWithDuration("user-42", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateWithDuration() error = %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/api/repos", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: tokenStr})

	_, err = sessions.FromRequest(r)
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("FromRequest() error = %v, want ErrUnauthorized", err)
	}
}
