// Package repository defines the storage interfaces implemented by the
// sqlite subpackage.
//
// Services and handlers depend on these interfaces, never on *sqlite.DB
// directly, so tests can inject in-memory fakes and the backend could be
// swapped without touching callers.
package repository

import (
	"context"

	"github.com/sakif/readme-studio/internal/model"
)

// UserRepository stores user accounts keyed by our internal ID, with a
// uniqueness guarantee on the GitHub ID.
type UserRepository interface {
	// Upsert inserts the user on first login and updates the profile fields
	// on subsequent logins. Fills in ID/CreatedAt/UpdatedAt.
	Upsert(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// ProviderTokenRepository stores one OAuth access token per (user, provider)
// pair. Saving again overwrites the previous token — we only ever need the
// latest one.
type ProviderTokenRepository interface {
	SaveToken(ctx context.Context, token *model.ProviderToken) error
	// GetToken returns apperror.ErrNotFound when no token is stored for the
	// pair.
	GetToken(ctx context.Context, userID, provider string) (*model.ProviderToken, error)
	DeleteToken(ctx context.Context, userID, provider string) error
}
