package auth

import (
	"net/http"

	"github.com/sakif/readme-studio/internal/apperror"
	"github.com/sakif/readme-studio/internal/model"
)

// SessionCookie is the name of the HttpOnly cookie carrying the JWT.
//
// COOKIE-BASED TOKEN STORAGE:
// We store the JWT in an HttpOnly cookie rather than localStorage or a
// header. HttpOnly means JavaScript cannot read it, which prevents XSS
// attacks from stealing the token.
const SessionCookie = "token"

// SessionService resolves an inbound request to the session it carries.
// It is the application's session gate: every authenticated route asks it
// "who is this?" before doing anything else.
type SessionService struct {
	tokens *TokenService
}

// NewSessionService creates a SessionService around the given TokenService.
func NewSessionService(tokens *TokenService) *SessionService {
	return &SessionService{tokens: tokens}
}

// FromRequest reads the session cookie, validates the JWT, and returns the
// session it encodes.
//
// An absent or expired cookie is the NORMAL logged-out case, not a fault:
// it returns apperror.Unauthorized so the HTTP layer answers 401 and the
// caller performs no downstream work. No error is ever returned for reasons
// other than "not authenticated".
func (s *SessionService) FromRequest(r *http.Request) (*model.Session, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		// http.ErrNoCookie — no session at all
		return nil, apperror.Unauthorized("authentication required")
	}

	userID, err := s.tokens.Validate(cookie.Value)
	if err != nil {
		// Expired or tampered token — same outcome as no cookie.
		return nil, apperror.Unauthorized("authentication required")
	}

	return &model.Session{UserID: userID}, nil
}
