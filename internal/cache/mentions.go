// Package cache keeps mention counts between requests so repeated venues do
// not cost a blog search each time.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/octobees/food-recommender/internal/config"
	"github.com/octobees/food-recommender/internal/logging"
	"github.com/octobees/food-recommender/internal/metrics"
)

const keyPrefix = "mentions:"

// MentionCache stores blog mention totals by search query. Failures are
// reported as misses.
type MentionCache interface {
	Get(ctx context.Context, query string) (int, bool)
	Set(ctx context.Context, query string, count int)
}

// NewRedisClient builds a client for cfg and pings it.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RedisMentions is the Redis backed MentionCache.
type RedisMentions struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisMentions wraps client; entries expire after ttl.
func NewRedisMentions(client redis.Cmdable, ttl time.Duration) *RedisMentions {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &RedisMentions{client: client, ttl: ttl}
}

func (c *RedisMentions) Get(ctx context.Context, query string) (int, bool) {
	val, err := c.client.Get(ctx, Key(query)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Ctx(ctx).Debug().Err(err).Msg("mention cache read failed")
			metrics.MentionCacheLookups.WithLabelValues("error").Inc()
			return 0, false
		}
		metrics.MentionCacheLookups.WithLabelValues("miss").Inc()
		return 0, false
	}
	count, err := strconv.Atoi(val)
	if err != nil || count < 0 {
		metrics.MentionCacheLookups.WithLabelValues("error").Inc()
		return 0, false
	}
	metrics.MentionCacheLookups.WithLabelValues("hit").Inc()
	return count, true
}

func (c *RedisMentions) Set(ctx context.Context, query string, count int) {
	if err := c.client.Set(ctx, Key(query), count, c.ttl).Err(); err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("mention cache write failed")
	}
}

// Noop never hits.
type Noop struct{}

func (Noop) Get(context.Context, string) (int, bool) { return 0, false }

func (Noop) Set(context.Context, string, int) {}

// Key hashes the query so multibyte venue names give short, uniform keys.
func Key(query string) string {
	sum := sha1.Sum([]byte(query))
	return keyPrefix + hex.EncodeToString(sum[:])
}
