package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/yungbote/profile-backend/internal/clients/redis"
	"github.com/yungbote/profile-backend/internal/platform/enrichment"
	"github.com/yungbote/profile-backend/internal/platform/logger"
	"github.com/yungbote/profile-backend/internal/services"
)

type Clients struct {
	Enrichment     enrichment.Client
	Blobs          services.BlobStore
	GeneratedCache redis.GeneratedCache
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	enrich, err := enrichment.NewClient(log, enrichment.Config{
		BaseURL: cfg.EnrichmentURL,
		Timeout: cfg.EnrichmentTimeout,
	})
	if err != nil {
		return Clients{}, fmt.Errorf("init enrichment client: %w", err)
	}

	blobs, err := resolveBlobStore(ctx, log, cfg)
	if err != nil {
		return Clients{}, err
	}

	// Redis is optional; without it generated profiles are not cached.
	var cache redis.GeneratedCache
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		c, err := redis.NewGeneratedCache(log, redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.GeneratedCacheTTL,
		})
		if err != nil {
			closeBlobStore(blobs)
			return Clients{}, fmt.Errorf("init redis generated cache: %w", err)
		}
		cache = c
	}

	return Clients{
		Enrichment:     enrich,
		Blobs:          blobs,
		GeneratedCache: cache,
	}, nil
}

func (c Clients) Close() {
	if c.GeneratedCache != nil {
		_ = c.GeneratedCache.Close()
	}
	if c.Blobs != nil {
		closeBlobStore(c.Blobs)
	}
}
