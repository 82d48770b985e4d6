package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/legalaid/practice-api/internal/api/metrics"
	"github.com/legalaid/practice-api/internal/core/domain"
	"github.com/legalaid/practice-api/internal/core/ports"
)

const (
	statsKeyPrefix  = "feedback:stats:"
	generationKey   = "feedback:stats:gen"
	defaultStatsTTL = time.Minute
)

// StatsCache keeps feedback aggregations in Redis, one key per generation.
// Invalidate increments the generation counter; stats stored under an older
// generation are never read again and expire with their TTL.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a StatsCache. A non-positive ttl falls back to one minute.
func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	if ttl <= 0 {
		ttl = defaultStatsTTL
	}
	return &StatsCache{client: client, ttl: ttl}
}

var _ ports.StatsCache = (*StatsCache)(nil)

// Get returns the stats of the current generation, or nil without error on
// a miss, along with that generation.
func (c *StatsCache) Get(ctx context.Context) (*domain.FeedbackStats, int64, error) {
	gen, err := c.generation(ctx)
	if err != nil {
		metrics.StatsCacheTotal.WithLabelValues("error").Inc()
		return nil, 0, err
	}

	raw, err := c.client.Get(ctx, statsKey(gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		return nil, gen, nil
	}
	if err != nil {
		metrics.StatsCacheTotal.WithLabelValues("error").Inc()
		return nil, 0, fmt.Errorf("stats cache get: %w", err)
	}

	var stats domain.FeedbackStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		metrics.StatsCacheTotal.WithLabelValues("error").Inc()
		return nil, 0, fmt.Errorf("stats cache decode: %w", err)
	}
	metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
	return &stats, gen, nil
}

// Set stores stats for gen until the TTL expires.
func (c *StatsCache) Set(ctx context.Context, gen int64, stats domain.FeedbackStats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	return c.client.Set(ctx, statsKey(gen), raw, c.ttl).Err()
}

// Invalidate starts a new generation.
func (c *StatsCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}

func (c *StatsCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("stats cache generation: %w", err)
	}
	return gen, nil
}

func statsKey(gen int64) string {
	return statsKeyPrefix + strconv.FormatInt(gen, 10)
}
