package app

import (
	"fmt"

	"github.com/yungbote/profile-backend/internal/observability"
	"github.com/yungbote/profile-backend/internal/platform/logger"
	"github.com/yungbote/profile-backend/internal/services"
)

type Services struct {
	Resolver services.ProfileResolver
	Merger   services.ProfileMerger
	Images   services.ImageUploader
	Sessions services.SessionService
}

func wireServices(log *logger.Logger, cfg Config, repos Repos, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	resolver, err := services.NewProfileResolver(log, repos.Profile, clients.Enrichment, clients.GeneratedCache, metrics, services.ResolverConfig{
		ReservedUsername:  cfg.ReservedUsername,
		StoreTimeout:      cfg.StoreTimeout,
		EnrichmentTimeout: cfg.EnrichmentTimeout,
	})
	if err != nil {
		return Services{}, fmt.Errorf("init profile resolver: %w", err)
	}

	sessions, err := services.NewSessionService(log, cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return Services{}, fmt.Errorf("init session service: %w", err)
	}

	return Services{
		Resolver: resolver,
		Merger: services.NewProfileMerger(log, repos.Profile, metrics, services.MergerConfig{
			ReservedUsername: cfg.ReservedUsername,
			StoreTimeout:     cfg.StoreTimeout,
		}),
		Images:   services.NewImageUploader(log, clients.Blobs, metrics, cfg.BlobTimeout),
		Sessions: sessions,
	}, nil
}
