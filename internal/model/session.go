package model

// Session is the server-verified identity of the logged-in user for the
// current request. It is reconstructed from the JWT cookie on every request
// and never persisted — the cookie IS the session.
//
// Handlers that need the full user record (login, email, avatar) look it up
// via the UserRepository; most request paths only need the UserID.
type Session struct {
	UserID string `json:"userId"`
}
