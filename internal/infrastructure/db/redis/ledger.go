package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:"

// RevocationLedger is a durable set of revoked token strings backed by Redis.
// Entries carry a TTL aligned with the token's own expiry; once a token has
// expired it fails validation regardless of ledger state, so letting the key
// lapse is safe housekeeping, not a correctness requirement.
type RevocationLedger struct {
	client *redis.Client
}

func NewRevocationLedger(client *redis.Client) *RevocationLedger {
	return &RevocationLedger{client: client}
}

// Add records the token as revoked. SET is idempotent: revoking an already
// revoked token simply refreshes the key.
func (l *RevocationLedger) Add(ctx context.Context, token string, ttl time.Duration) error {
	if err := l.client.Set(ctx, revokedKeyPrefix+token, "1", ttl).Err(); err != nil {
		return fmt.Errorf("ledger add: %w", err)
	}
	return nil
}

// Contains reports whether the token has been revoked. Always hits Redis —
// logout must be visible to the very next request.
func (l *RevocationLedger) Contains(ctx context.Context, token string) (bool, error) {
	n, err := l.client.Exists(ctx, revokedKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("ledger lookup: %w", err)
	}
	return n > 0, nil
}
