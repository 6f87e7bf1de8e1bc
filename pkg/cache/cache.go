package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTL constants
const (
	TTLLearningData = 10 * time.Minute
	TTLShort        = 1 * time.Minute
	TTLDefault      = 5 * time.Minute
)

// Key prefixes
const (
	PrefixLearning = "learning:"
	PrefixStats    = "pattern_stats:"
)

// ErrUnavailable is returned by reads when no Redis client is configured
var ErrUnavailable = errors.New("redis not available")

// Service cache used by the learning read paths
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// ranked pattern lists handed to generation
	GetLearningData(ctx context.Context, categoryID uint64, platform string, dest interface{}) error
	SetLearningData(ctx context.Context, categoryID uint64, platform string, data interface{}) error
	InvalidateLearning(ctx context.Context, categoryID uint64, platform string) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewService creates a cache; a nil client yields a no-op cache whose reads always miss
func NewService(client *redis.Client, ttl time.Duration) Service {
	if ttl <= 0 {
		ttl = TTLLearningData
	}
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return ErrUnavailable
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return ErrUnavailable
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

// LearningKey cache key of one (category, platform) ledger slice
func LearningKey(categoryID uint64, platform string) string {
	return fmt.Sprintf("%s%d:%s", PrefixLearning, categoryID, platform)
}

// StatsKey cache key of the per-type statistics of one category; 0 means all categories
func StatsKey(categoryID uint64) string {
	return fmt.Sprintf("%s%d", PrefixStats, categoryID)
}

func (c *redisCache) GetLearningData(ctx context.Context, categoryID uint64, platform string, dest interface{}) error {
	return c.Get(ctx, LearningKey(categoryID, platform), dest)
}

func (c *redisCache) SetLearningData(ctx context.Context, categoryID uint64, platform string, data interface{}) error {
	return c.Set(ctx, LearningKey(categoryID, platform), data, c.ttl)
}

// InvalidateLearning drops every cached view a fold into (category, platform) can change
func (c *redisCache) InvalidateLearning(ctx context.Context, categoryID uint64, platform string) error {
	return c.Delete(ctx, LearningKey(categoryID, platform), StatsKey(categoryID), StatsKey(0))
}
