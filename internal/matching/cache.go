package matching

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// ScoreCache memoizes pair compatibility scores in Redis. The score is
// symmetric, so the key is built from the ordered pair. Value results
// change rarely (a questionnaire retake), so a short TTL is enough to
// bound staleness.
type ScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewScoreCache(client *redis.Client, ttl time.Duration) *ScoreCache {
	return &ScoreCache{client: client, ttl: ttl}
}

func scoreKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("compat:%d:%d", a, b)
}

// Get returns the cached score for a pair, if present
func (c *ScoreCache) Get(ctx context.Context, a, b int64) (int, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}

	val, err := c.client.Get(ctx, scoreKey(a, b)).Result()
	if err != nil {
		return 0, false
	}

	score, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}

	return score, true
}

// Set stores the score for a pair. Errors are dropped; the cache is an
// optimization, never a source of truth.
func (c *ScoreCache) Set(ctx context.Context, a, b int64, score int) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(ctx, scoreKey(a, b), strconv.Itoa(score), c.ttl)
}

// Invalidate drops every cached score involving the given user. Called
// after a questionnaire retake.
func (c *ScoreCache) Invalidate(ctx context.Context, userID int64) {
	if c == nil || c.client == nil {
		return
	}

	patterns := []string{
		fmt.Sprintf("compat:%d:*", userID),
		fmt.Sprintf("compat:*:%d", userID),
	}
	for _, pattern := range patterns {
		iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
		for iter.Next(ctx) {
			c.client.Del(ctx, iter.Val())
		}
	}
}
