package handler

import (
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/sakif/readme-studio/internal/auth"
	"github.com/sakif/readme-studio/internal/model"
	"github.com/sakif/readme-studio/internal/repository"
	"github.com/sakif/readme-studio/internal/service"
)

// AuthHandler manages the GitHub OAuth login flow and session management.
//
// HANDLER RESPONSIBILITIES:
//   - HandleGitHubLogin    → redirect the browser to GitHub's authorization page
//   - HandleGitHubCallback → receive the code, exchange it, store the GitHub
//     token, issue the JWT session cookie
//   - HandleLogout         → clear the session cookie
//   - HandleMe             → return the logged-in user's profile
type AuthHandler struct {
	github   *auth.GitHubProvider
	tokens   *auth.TokenService
	sessions SessionSource
	users    repository.UserRepository
	provider repository.ProviderTokenRepository
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler. All dependencies are injected here;
// the handler has no knowledge of how they're constructed.
func NewAuthHandler(
	github *auth.GitHubProvider,
	tokens *auth.TokenService,
	sessions SessionSource,
	users repository.UserRepository,
	provider repository.ProviderTokenRepository,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		github:   github,
		tokens:   tokens,
		sessions: sessions,
		users:    users,
		provider: provider,
		logger:   logger,
	}
}

// HandleGitHubLogin redirects the user to GitHub's authorization page.
//
// HTTP: GET /auth/github/login
//
// CSRF PROTECTION VIA STATE:
// We generate a random state string and store it in a short-lived cookie.
// When GitHub calls back, HandleGitHubCallback verifies the state matches.
// This proves the callback was initiated by this server, not an attacker.
func (h *AuthHandler) HandleGitHubLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     "oauth_state",
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.github.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGitHubCallback completes the OAuth login flow.
//
// HTTP: GET /auth/github/callback?code=xxx&state=yyy
//
// FLOW:
//  1. Validate the state parameter (CSRF check)
//  2. Exchange the code for the GitHub user profile and access token
//  3. Upsert the user in the database
//  4. Store the GitHub access token — the README endpoints read it back on
//     every request via the token broker
//  5. Issue the JWT session cookie and redirect home
func (h *AuthHandler) HandleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	// --- Step 1: Validate CSRF state ---
	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" {
		h.logger.Warn("auth callback: missing state cookie")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("state") != stateCookie.Value {
		h.logger.Warn("auth callback: state mismatch")
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}

	// Clear the state cookie — it's single-use
	http.SetCookie(w, &http.Cookie{
		Name:   "oauth_state",
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	// User denied authorization on GitHub's side
	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.logger.Info("auth callback: user denied authorization",
			slog.String("error", errParam),
		)
		http.Redirect(w, r, "/?auth=denied", http.StatusSeeOther)
		return
	}

	// --- Step 2: Exchange code for profile + access token ---
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "missing OAuth code", http.StatusBadRequest)
		return
	}

	ghUser, oauthToken, err := h.github.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("auth callback: GitHub exchange failed", slog.String("error", err.Error()))
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	// --- Step 3: Upsert user ---
	user := &model.User{
		GitHubID:  ghUser.ID,
		Login:     ghUser.Login,
		Email:     ghUser.Email,
		AvatarURL: ghUser.AvatarURL,
	}
	if err := h.users.Upsert(r.Context(), user); err != nil {
		h.logger.Error("auth callback: upsert failed",
			slog.Int64("githubID", ghUser.ID),
			slog.String("error", err.Error()),
		)
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	// --- Step 4: Store the GitHub access token ---
	// oauth2.Token.Expiry is the zero time for tokens without an expiry,
	// which is exactly what ProviderToken.ExpiresAt expects.
	providerToken := &model.ProviderToken{
		UserID:       user.ID,
		Provider:     service.GitHubProviderID,
		AccessToken:  oauthToken.AccessToken,
		RefreshToken: oauthToken.RefreshToken,
		ExpiresAt:    oauthToken.Expiry,
	}
	if err := h.provider.SaveToken(r.Context(), providerToken); err != nil {
		h.logger.Error("auth callback: saving github token failed",
			slog.String("userID", user.ID),
			slog.String("error", err.Error()),
		)
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	h.logger.Info("user authenticated",
		slog.String("userID", user.ID),
		slog.String("login", user.Login),
	)

	// --- Step 5: Issue the session cookie ---
	tokenStr, err := h.tokens.Generate(user.ID)
	if err != nil {
		h.logger.Error("auth callback: token generation failed", slog.String("error", err.Error()))
		http.Error(w, "authentication failed", http.StatusInternalServerError)
		return
	}

	// HttpOnly = JavaScript cannot read this cookie (XSS protection).
	// SameSite=Lax = sent on top-level navigations but not cross-site POSTs.
	// Secure should be true in production (HTTPS only).
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    tokenStr,
		Path:     "/",
		MaxAge:   int(auth.SessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the session cookie, effectively logging the user out.
//
// HTTP: POST /auth/logout
//
// POST, not GET: logout is state-changing; GET would be vulnerable to CSRF
// and to browsers pre-fetching the URL. Since sessions are stateless JWTs,
// "logout" just means deleting the client-side cookie.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// HandleMe returns the currently authenticated user's profile.
//
// HTTP: GET /api/me
//
// The frontend calls this on load to decide between the login button and
// the repo picker.
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.FromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.GetUserByID(r.Context(), sess.UserID)
	if err != nil {
		h.logger.Error("HandleMe: user lookup failed", slog.String("userID", sess.UserID))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
