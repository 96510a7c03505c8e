package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Naseebullah-Wali/MoProject/pkg/logger"
	"github.com/Naseebullah-Wali/MoProject/pkg/redis"
)

// SessionRevoker invalidates issued session tokens before their natural
// expiry.
type SessionRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) bool
}

// RedisRevocationList stores revoked jti values in redis with a TTL equal
// to the remaining token lifetime, so entries expire with the tokens they
// block. When redis is disabled, revocation degrades to a no-op and logout
// relies on client-side token disposal.
type RedisRevocationList struct {
	client *redis.Client
}

func NewRedisRevocationList(client *redis.Client) *RedisRevocationList {
	return &RedisRevocationList{client: client}
}

func revocationKey(jti string) string {
	return fmt.Sprintf("session:revoked:%s", jti)
}

func (r *RedisRevocationList) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if !r.client.IsEnabled() {
		logger.WarnWithContext(ctx, "Revocation list disabled, logout is client-side only").
			String("jti", jti).
			Log()
		return nil
	}
	if ttl <= 0 {
		return nil
	}
	return r.client.SetWithTTL(ctx, revocationKey(jti), "1", ttl)
}

func (r *RedisRevocationList) IsRevoked(ctx context.Context, jti string) bool {
	if !r.client.IsEnabled() || jti == "" {
		return false
	}
	revoked, err := r.client.Exists(ctx, revocationKey(jti))
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to check revocation list").
			String("jti", jti).
			Err(err).
			Log()
		return false
	}
	return revoked
}
