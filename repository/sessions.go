package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revocations remembers signed-out sessions until their tokens expire.
type Revocations struct {
	client *redis.Client
}

func NewRevocations(client *redis.Client) *Revocations {
	return &Revocations{client: client}
}

func revokedKey(sessionID string) string {
	return "session:revoked:" + sessionID
}

func (r *Revocations) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKey(sessionID), 1, ttl).Err()
}

func (r *Revocations) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SearchCounter counts filtered browse requests for the admin stats.
type SearchCounter struct {
	client *redis.Client
}

const searchesKey = "stats:searches"

func NewSearchCounter(client *redis.Client) *SearchCounter {
	return &SearchCounter{client: client}
}

func (c *SearchCounter) Incr(ctx context.Context) error {
	return c.client.Incr(ctx, searchesKey).Err()
}

func (c *SearchCounter) Count(ctx context.Context) (int64, error) {
	n, err := c.client.Get(ctx, searchesKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return n, err
}
