package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/profile-backend/internal/platform/logger"
)

// GeneratedCache holds synthetic profile documents for a short time so
// repeated reads of an unknown username return the same data.
type GeneratedCache interface {
	Get(ctx context.Context, username string) (json.RawMessage, bool, error)
	Set(ctx context.Context, username string, doc json.RawMessage) error
	Close() error
}

type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Prefix   string
}

type generatedCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	ttl    time.Duration
	prefix string
}

func NewGeneratedCache(log *logger.Logger, cfg Config) (GeneratedCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("generated cache ttl must be positive")
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "profile:generated:"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &generatedCache{
		log:    log.With("service", "RedisGeneratedCache"),
		rdb:    rdb,
		ttl:    cfg.TTL,
		prefix: prefix,
	}, nil
}

func (c *generatedCache) key(username string) string {
	return c.prefix + username
}

func (c *generatedCache) Get(ctx context.Context, username string) (json.RawMessage, bool, error) {
	if c == nil || c.rdb == nil {
		return nil, false, fmt.Errorf("redis generated cache not initialized")
	}
	raw, err := c.rdb.Get(ctx, c.key(username)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	if !json.Valid(raw) {
		// Not ours or truncated; drop it and regenerate.
		_ = c.rdb.Del(ctx, c.key(username)).Err()
		return nil, false, nil
	}
	return json.RawMessage(raw), true, nil
}

func (c *generatedCache) Set(ctx context.Context, username string, doc json.RawMessage) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("redis generated cache not initialized")
	}
	if err := c.rdb.Set(ctx, c.key(username), []byte(doc), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *generatedCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
