package model

import "time"

// ProviderToken is an OAuth access token we hold on a user's behalf for an
// external provider ("github" is the only provider today).
//
// The token is obtained once, during the OAuth callback, and read back on
// every API request that talks to the provider. It is the only secret this
// app stores — it never appears in a response body or a log line.
//
// ExpiresAt is the zero time when the provider did not give the token an
// expiry (classic GitHub OAuth app tokens don't expire). A non-zero
// ExpiresAt in the past means the token is unusable and the user has to
// re-authenticate; we don't run a refresh flow.
type ProviderToken struct {
	UserID       string    `db:"user_id"`
	Provider     string    `db:"provider"`
	AccessToken  string    `db:"access_token"`
	RefreshToken string    `db:"refresh_token"`
	ExpiresAt    time.Time `db:"expires_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Expired reports whether the token carries an expiry that has passed.
func (t *ProviderToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}
