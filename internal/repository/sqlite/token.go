package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/readme-studio/internal/apperror"
	"github.com/sakif/readme-studio/internal/model"
	"github.com/sakif/readme-studio/internal/repository"
)

// compile-time check that *DB implements repository.ProviderTokenRepository
var _ repository.ProviderTokenRepository = (*DB)(nil)

// SaveToken stores (or replaces) the OAuth token for a (user, provider) pair.
//
// ON CONFLICT ... DO UPDATE (SQLite's upsert) keys on the composite primary
// key. A user re-running the OAuth flow simply overwrites their old token —
// there is never more than one live token per pair, and the previous one is
// invalidated by GitHub at that point anyway.
func (db *DB) SaveToken(ctx context.Context, token *model.ProviderToken) error {
	token.UpdatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO provider_tokens (user_id, provider, access_token, refresh_token, expires_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, provider) DO UPDATE SET
			access_token  = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at    = excluded.expires_at,
			updated_at    = excluded.updated_at`,
		token.UserID,
		token.Provider,
		token.AccessToken,
		token.RefreshToken,
		token.ExpiresAt,
		token.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: saving %s token for user %s: %w", token.Provider, token.UserID, err)
	}

	return nil
}

// GetToken retrieves the stored OAuth token for a (user, provider) pair.
// Returns apperror.ErrNotFound when the user never connected the provider.
func (db *DB) GetToken(ctx context.Context, userID, provider string) (*model.ProviderToken, error) {
	var tok model.ProviderToken

	err := db.conn.QueryRowContext(ctx,
		`SELECT user_id, provider, access_token, refresh_token, expires_at, updated_at
		 FROM provider_tokens WHERE user_id = ? AND provider = ?`,
		userID, provider,
	).Scan(
		&tok.UserID,
		&tok.Provider,
		&tok.AccessToken,
		&tok.RefreshToken,
		&tok.ExpiresAt,
		&tok.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("provider token", userID)
		}
		return nil, fmt.Errorf("sqlite: getting %s token for user %s: %w", provider, userID, err)
	}

	return &tok, nil
}

// DeleteToken removes the stored token for a (user, provider) pair.
// Deleting a token that doesn't exist is not an error — logout is idempotent.
func (db *DB) DeleteToken(ctx context.Context, userID, provider string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM provider_tokens WHERE user_id = ? AND provider = ?`,
		userID, provider,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting %s token for user %s: %w", provider, userID, err)
	}
	return nil
}
