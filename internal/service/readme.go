package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/readme-studio/internal/apperror"
	"github.com/sakif/readme-studio/internal/model"
	"github.com/sakif/readme-studio/internal/readme"
)

// AccessTokenSource resolves a user to a GitHub access token.
// Implemented by *TokenBroker; faked in tests.
type AccessTokenSource interface {
	AccessToken(ctx context.Context, userID string) (string, error)
}

// RepoDirectory is the slice of the GitHub API this service consumes.
// Implemented by *github.Client.
type RepoDirectory interface {
	ListRepositories(ctx context.Context, token string) ([]model.Repository, error)
	GetRepository(ctx context.Context, token, repoID string) (*model.Repository, error)
	// GetReadme returns (content, true, nil) when a README exists and
	// ("", false, nil) when it doesn't — absence is not an error.
	GetReadme(ctx context.Context, token, fullName string) (string, bool, error)
}

// Generator produces raw text from a prompt. Implemented by *genai.Client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ReadmeService orchestrates the two API flows: listing the user's
// repositories and generating a README for one of them.
//
// Per-request sequencing (no fan-out, no retries):
//
//	ListRepositories: token → GitHub list
//	Generate:         token → GitHub repo lookup → GitHub readme fetch
//	                  → compose prompt → Gemini → sanitize
//
// All state is request-scoped; the service itself holds only its
// dependencies and is safe for concurrent use.
type ReadmeService struct {
	broker    AccessTokenSource
	directory RepoDirectory
	generator Generator
	logger    *slog.Logger
}

// NewReadmeService creates a ReadmeService with all dependencies injected.
func NewReadmeService(
	broker AccessTokenSource,
	directory RepoDirectory,
	generator Generator,
	logger *slog.Logger,
) *ReadmeService {
	return &ReadmeService{
		broker:    broker,
		directory: directory,
		generator: generator,
		logger:    logger,
	}
}

// ListRepositories returns the user's repositories from GitHub.
//
// Failure modes, in order: ErrTokenMissing (no usable token — the caller
// answers 401 before any GitHub call happens), then whatever the directory
// client reports (ErrUpstream with the remote status).
func (s *ReadmeService) ListRepositories(ctx context.Context, userID string) ([]model.Repository, error) {
	token, err := s.broker.AccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	repos, err := s.directory.ListRepositories(ctx, token)
	if err != nil {
		return nil, err
	}

	s.logger.Info("listed repositories",
		slog.String("userID", userID),
		slog.Int("count", len(repos)),
	)

	return repos, nil
}

// Generate produces a styled HTML README for one repository.
//
// Returns the repository metadata alongside the sanitized document so the
// handler can echo both in the response.
//
// ERROR POLICY (the one asymmetry is deliberate):
//   - token missing            → ErrTokenMissing, nothing else runs
//   - repository lookup fails  → ErrUpstream{status}, generation never runs
//   - readme fetch finds none  → NOT an error; the prompt gets a placeholder
//   - generation fails, or the output sanitizes to nothing
//     → ErrGeneration; the caller never sees partial output
func (s *ReadmeService) Generate(ctx context.Context, userID, repoID string) (*model.Repository, string, error) {
	token, err := s.broker.AccessToken(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	repo, err := s.directory.GetRepository(ctx, token, repoID)
	if err != nil {
		return nil, "", err
	}

	existing, found, err := s.directory.GetReadme(ctx, token, repo.FullName)
	if err != nil {
		return nil, "", fmt.Errorf("service/readme: fetching existing readme for %s: %w", repo.FullName, err)
	}

	prompt := readme.ComposePrompt(repo, existing)

	s.logger.Info("generating readme",
		slog.String("userID", userID),
		slog.String("repo", repo.FullName),
		slog.Bool("hasExistingReadme", found),
	)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("readme generation failed",
			slog.String("repo", repo.FullName),
			slog.String("error", err.Error()),
		)
		return nil, "", apperror.Generation()
	}

	clean := readme.Sanitize(raw)
	if strings.TrimSpace(clean) == "" {
		// The model produced only fence markers or whitespace. An empty
		// document must never be reported as a success.
		s.logger.Error("readme sanitized to empty output",
			slog.String("repo", repo.FullName),
		)
		return nil, "", apperror.Generation()
	}

	s.logger.Info("readme generated",
		slog.String("repo", repo.FullName),
		slog.Int("bytes", len(clean)),
	)

	return repo, clean, nil
}
