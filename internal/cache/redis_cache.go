package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"chainlink-service/internal/domain"
)

// RedisCache stores each game day as a redis hash: field = external game id,
// value = serialized matchup JSON.
type RedisCache struct {
	rdb *redis.Client
}

// Config controls the redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisCache connects to redis and verifies the connection.
func NewRedisCache(ctx context.Context, cfg Config) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisCache{rdb: rdb}, nil
}

func (c *RedisCache) ReadDay(ctx context.Context, key string) (map[string]domain.Matchup, error) {
	fields, err := c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall %s: %w", key, err)
	}

	out := make(map[string]domain.Matchup, len(fields))
	for id, raw := range fields {
		var m domain.Matchup
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return nil, fmt.Errorf("decode cached matchup %s: %w", id, err)
		}
		out[id] = m
	}
	return out, nil
}

func (c *RedisCache) WriteDay(ctx context.Context, key string, matchups []domain.Matchup) error {
	if len(matchups) == 0 {
		return nil
	}

	fields := make(map[string]any, len(matchups))
	for _, m := range matchups {
		raw, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encode matchup %s: %w", m.ExternalID, err)
		}
		fields[m.ExternalID] = raw
	}
	if err := c.rdb.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("redis hset %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) DeleteDay(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close releases the client connection.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}

var _ MatchupCache = (*RedisCache)(nil)
