package memory

import (
	"context"
	"time"

	"studynotes-be/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type TokenDenylist struct {
	cache *cache.Cache
}

func NewTokenDenylist() contract.TokenDenylist {
	// entries carry their own TTL; purge expired ones every 10 minutes
	return &TokenDenylist{cache: cache.New(cache.NoExpiration, 10*time.Minute)}
}

func (d *TokenDenylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	d.cache.Set(jti, struct{}{}, ttl)
	return nil
}

func (d *TokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, found := d.cache.Get(jti)
	return found, nil
}
