package tokenstore

import (
	"context"
	"time"
)

// Storage keys shared by the file and Redis backends. These three entries
// are the entire durable footprint of the session core.
const (
	KeyAccessToken  = "auth_token"
	KeyRefreshToken = "refresh_token"
	KeyTokenExpiry  = "auth_token_expiry"
)

// Tokens is the persisted session triplet. Empty strings mean the token is
// absent; a zero ExpiresAt means the access token carries no expiry.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Empty reports whether no access token is stored.
func (t Tokens) Empty() bool {
	return t.AccessToken == ""
}

// Store owns read/write/clear of the token triplet. Save writes all three
// fields together; readers never observe a partially written triplet.
// Clear is idempotent: clearing an empty store is a no-op, never an error.
//
// Store implementations perform no network access beyond their own backend
// and have no side effects beyond the persisted entries.
type Store interface {
	Save(ctx context.Context, tokens Tokens) error
	Read(ctx context.Context) (Tokens, error)
	Clear(ctx context.Context) error
}
