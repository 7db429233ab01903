// Package service contains the business logic layer of the application.
//
// Handlers parse HTTP and map errors; services sequence the actual work.
// Every dependency a service uses is an interface injected at construction,
// so the orchestration logic is testable with fakes — no real GitHub, no
// real Gemini, no real database.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/readme-studio/internal/apperror"
	"github.com/sakif/readme-studio/internal/repository"
)

// GitHubProviderID is the provider key tokens are stored under.
const GitHubProviderID = "github"

// TokenBroker resolves a user to a usable GitHub access token.
//
// This is deliberately a separate, tiny service: "session is valid" and "we
// can act on GitHub for this user" are different questions with different
// answers for the user (log in vs. re-connect GitHub), and the caller needs
// to tell them apart.
type TokenBroker struct {
	tokens repository.ProviderTokenRepository
	logger *slog.Logger
}

// NewTokenBroker creates a TokenBroker over the given token store.
func NewTokenBroker(tokens repository.ProviderTokenRepository, logger *slog.Logger) *TokenBroker {
	return &TokenBroker{
		tokens: tokens,
		logger: logger,
	}
}

// AccessToken returns the stored GitHub access token for the user.
//
// A missing or expired token returns apperror.ErrTokenMissing — recoverable
// by re-authenticating with GitHub, never treated as a system fault. One
// lookup per call, no refresh, no retry.
func (b *TokenBroker) AccessToken(ctx context.Context, userID string) (string, error) {
	tok, err := b.tokens.GetToken(ctx, userID, GitHubProviderID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			b.logger.Info("no github token stored", slog.String("userID", userID))
			return "", apperror.TokenMissing()
		}
		return "", fmt.Errorf("service/token: loading github token for user %s: %w", userID, err)
	}

	if tok.Expired(time.Now()) {
		b.logger.Info("github token expired",
			slog.String("userID", userID),
			slog.Time("expiresAt", tok.ExpiresAt),
		)
		return "", apperror.TokenMissing()
	}

	return tok.AccessToken, nil
}
