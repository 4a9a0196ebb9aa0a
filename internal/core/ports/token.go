package ports

import (
	"context"
	"time"
)

// TokenService issues, validates, and revokes bearer session tokens.
type TokenService interface {
	// Issue mints a signed token for the given user id with a fixed TTL.
	Issue(userID string) (string, error)

	// Validate returns the user id encoded in the token, or one of the
	// domain token errors (malformed, signature mismatch, expired, revoked —
	// reported in that precedence when several apply).
	Validate(ctx context.Context, token string) (string, error)

	// Revoke permanently invalidates the token. Revoking an already-revoked
	// token is a no-op success.
	Revoke(ctx context.Context, token string) error
}

// RevocationLedger is the durable set of revoked token strings. Contains is
// consulted synchronously on every validation; results must never be served
// from a stale cache, since logout has to take effect immediately.
type RevocationLedger interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}
