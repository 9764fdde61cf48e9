package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell/blog/internal/core/ports"
)

// SessionRevoker records logged-out session ids in Redis.
// Key format: session:revoked:<token_id>
// Each key lives until the session token itself would have expired.
type SessionRevoker struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewSessionRevoker creates a SessionRevoker wrapping the given Redis client.
func NewSessionRevoker(client redis.Cmdable) *SessionRevoker {
	return &SessionRevoker{client: client, now: time.Now}
}

// Revoke blacklists tokenID until the given instant. Sessions that have
// already expired need no entry.
func (r *SessionRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, r.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID was logged out.
func (r *SessionRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("session revocation check: %w", err)
	}
	return n > 0, nil
}

func (r *SessionRevoker) key(tokenID string) string {
	return fmt.Sprintf("session:revoked:%s", tokenID)
}

var _ ports.SessionRevoker = (*SessionRevoker)(nil)
