package contract

import (
	"context"
	"time"
)

// TokenDenylist records revoked token ids until their original expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
