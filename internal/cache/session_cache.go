package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionCache tracks live admin sessions so tokens can be revoked before they expire
type SessionCache interface {
	Set(ctx context.Context, sessionID string, ttl time.Duration) error
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}

type sessionCache struct {
	client *redis.Client
}

func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{
		client: client,
	}
}

func sessionKey(id string) string {
	return "admin:session:" + id
}

func (c *sessionCache) Set(ctx context.Context, sessionID string, ttl time.Duration) error {
	return c.client.Set(ctx, sessionKey(sessionID), time.Now().UTC().Format(time.RFC3339), ttl).Err()
}

func (c *sessionCache) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := c.client.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *sessionCache) Delete(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, sessionKey(sessionID)).Err()
}
