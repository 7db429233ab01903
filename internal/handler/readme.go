// Package handler contains the HTTP request handlers.
//
// Handlers parse requests, gate them on the session, delegate to the
// service layer, and map errors to status codes. No business logic and no
// GitHub/Gemini knowledge lives here.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/readme-studio/internal/apperror"
	"github.com/sakif/readme-studio/internal/model"
)

// SessionSource resolves a request to its session.
// Implemented by *auth.SessionService; faked in tests.
type SessionSource interface {
	FromRequest(r *http.Request) (*model.Session, error)
}

// ReadmeService is the slice of the service layer these handlers consume.
// Implemented by *service.ReadmeService.
type ReadmeService interface {
	ListRepositories(ctx context.Context, userID string) ([]model.Repository, error)
	Generate(ctx context.Context, userID, repoID string) (*model.Repository, string, error)
}

// ReadmeHandler serves the two API endpoints of the app:
//
//	GET  /api/repos   → the user's repositories
//	POST /api/readme  → a generated README for one repository
type ReadmeHandler struct {
	sessions SessionSource
	svc      ReadmeService
	logger   *slog.Logger
}

// NewReadmeHandler creates a ReadmeHandler with its dependencies injected.
func NewReadmeHandler(sessions SessionSource, svc ReadmeService, logger *slog.Logger) *ReadmeHandler {
	return &ReadmeHandler{
		sessions: sessions,
		svc:      svc,
		logger:   logger,
	}
}

// listReposResponse wraps the repository list under a fixed field name.
type listReposResponse struct {
	Repos []model.Repository `json:"repos"`
}

// generateRequest is the body of POST /api/readme.
// repoId is a string on the wire even though GitHub IDs are numeric — the
// frontend reads it out of a <select> and never does arithmetic on it.
type generateRequest struct {
	RepoID string `json:"repoId"`
}

// generateResponse echoes the repository metadata next to the generated
// document so the frontend can label the preview without a second fetch.
type generateResponse struct {
	Repo            *model.Repository `json:"repo"`
	GeneratedReadme string            `json:"generatedReadme"`
}

// HandleListRepos returns the authenticated user's GitHub repositories.
//
// HTTP: GET /api/repos
//
// Flow: session gate → token broker → GitHub. A request without a valid
// session is answered 401 here, before the service (and therefore GitHub)
// is ever touched.
func (h *ReadmeHandler) HandleListRepos(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.FromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	repos, err := h.svc.ListRepositories(r.Context(), sess.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	if repos == nil {
		repos = []model.Repository{} // "repos":[] — never "repos":null
	}

	writeJSON(w, http.StatusOK, listReposResponse{Repos: repos})
}

// HandleGenerate generates a styled HTML README for one repository.
//
// HTTP: POST /api/readme
// Body: {"repoId": "123456"}
//
// Request validation runs BEFORE the session gate: a malformed request is a
// 400 regardless of who sent it. After that the order is session gate (401)
// → service, whose errors arrive pre-classified (401 token missing,
// pass-through GitHub status, 502 generation failure).
func (h *ReadmeHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid generate request body", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("repoId", "repo ID is required"))
		return
	}
	if req.RepoID == "" {
		writeError(w, apperror.ValidationFailed("repoId", "repo ID is required"))
		return
	}

	sess, err := h.sessions.FromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	repo, generated, err := h.svc.Generate(r.Context(), sess.UserID, req.RepoID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, generateResponse{
		Repo:            repo,
		GeneratedReadme: generated,
	})
}
