package redis

import (
	"context"
	"time"

	"studynotes-be/internal/repository/contract"

	goredis "github.com/redis/go-redis/v9"
)

const denylistPrefix = "auth:revoked:"

type TokenDenylist struct {
	rdb *goredis.Client
}

func NewTokenDenylist(rdb *goredis.Client) contract.TokenDenylist {
	return &TokenDenylist{rdb: rdb}
}

func (d *TokenDenylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return d.rdb.Set(ctx, denylistPrefix+jti, 1, ttl).Err()
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.rdb.Exists(ctx, denylistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
