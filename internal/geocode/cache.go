package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"intake_backend/platform/config"
	"intake_backend/platform/logger"
	"intake_backend/platform/metrics"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "geocode:v1:"

// Cache is a read-through Redis cache in front of another Geocoder. Only
// non-empty provider results are stored, so a transient outage is never
// remembered as "no such address".
type Cache struct {
	next    Geocoder
	rdb     *redis.Client
	ttl     time.Duration
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewCache wraps next. log and m may be nil.
func NewCache(next Geocoder, rdb *redis.Client, ttl time.Duration, log *logger.Logger, m *metrics.Metrics) *Cache {
	if log == nil {
		log = logger.Discard()
	}
	return &Cache{next: next, rdb: rdb, ttl: ttl, log: log, metrics: m}
}

// NewRedisClient connects to the configured cache and verifies it with a ping.
func NewRedisClient(ctx context.Context, cfg config.CacheConfig) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.GetCacheRedisURL())
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return rdb, nil
}

// Lookup serves from the cache when possible. Cache errors are logged and
// treated as misses.
func (c *Cache) Lookup(ctx context.Context, address string) []Candidate {
	key := cacheKey(address)
	log := c.log.WithContext(ctx)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []Candidate
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil && len(cached) > 0 {
			c.metrics.ObserveCache("hit")
			return cached
		}
		c.metrics.ObserveCache("corrupt")
		log.Warn("discarding unreadable geocode cache entry", "key", key)
	case errors.Is(err, redis.Nil):
		c.metrics.ObserveCache("miss")
	default:
		c.metrics.ObserveCache("error")
		log.Warn("geocode cache read failed", "error", err)
	}

	candidates := c.next.Lookup(ctx, address)
	if len(candidates) == 0 {
		return candidates
	}

	payload, err := json.Marshal(candidates)
	if err != nil {
		log.Warn("geocode cache encode failed", "error", err)
		return candidates
	}
	if err := c.rdb.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		log.Warn("geocode cache write failed", "error", err)
	}

	return candidates
}

func cacheKey(address string) string {
	return cacheKeyPrefix + strings.Join(strings.Fields(strings.ToLower(address)), " ")
}
