package ports

import (
	"context"
	"time"

	"github.com/inkwell/blog/internal/core/domain"
)

// TokenCodec signs and verifies self-expiring tokens. Decode reports every
// failure (bad signature, malformed input, expiry) as domain.ErrInvalidToken.
type TokenCodec interface {
	Encode(payload domain.TokenPayload, expiresIn time.Duration) (string, error)
	Decode(token string) (domain.TokenPayload, error)
	// ExpiresAt returns the expiry embedded in a token that Decode accepted.
	ExpiresAt(token string) (time.Time, error)
}

// SessionRevoker remembers session ids that were logged out before expiry.
type SessionRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
