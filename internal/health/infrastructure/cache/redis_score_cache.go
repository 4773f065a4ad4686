// Package cache stores portfolio health snapshots in Redis so the CLI
// can show sweep results without re-evaluating the whole portfolio.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/pulso/internal/health/domain"
	"github.com/redis/go-redis/v9"
)

// snapshotKey holds the latest portfolio snapshot as a JSON array of
// health scores.
const snapshotKey = "pulso:health:scores"

// DefaultTTL bounds snapshot staleness when no TTL is configured.
const DefaultTTL = 10 * time.Minute

// RedisScoreCache implements application.ScoreCache on Redis.
type RedisScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisScoreCache creates a cache with the given snapshot TTL.
func NewRedisScoreCache(client *redis.Client, ttl time.Duration) *RedisScoreCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisScoreCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot. An expired or missing key is a miss,
// not an error.
func (c *RedisScoreCache) Get(ctx context.Context) ([]domain.HealthScore, bool, error) {
	payload, err := c.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var scores []domain.HealthScore
	if err := json.Unmarshal(payload, &scores); err != nil {
		return nil, false, fmt.Errorf("corrupt health snapshot: %w", err)
	}
	return scores, true, nil
}

// Put replaces the snapshot.
func (c *RedisScoreCache) Put(ctx context.Context, scores []domain.HealthScore) error {
	payload, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("marshal health snapshot: %w", err)
	}
	return c.client.Set(ctx, snapshotKey, payload, c.ttl).Err()
}
