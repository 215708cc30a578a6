package services

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"github.com/yungbote/profile-backend/internal/clients/redis"
	profilerepo "github.com/yungbote/profile-backend/internal/data/repos/profile"
	types "github.com/yungbote/profile-backend/internal/domain/profile"
	"github.com/yungbote/profile-backend/internal/observability"
	"github.com/yungbote/profile-backend/internal/pkg/dbctx"
	apperrors "github.com/yungbote/profile-backend/internal/pkg/errors"
	"github.com/yungbote/profile-backend/internal/platform/enrichment"
	"github.com/yungbote/profile-backend/internal/platform/logger"
)

//go:embed fixtures/reanimator.json
var reservedFixture []byte

// Source names the stage that produced a Resolution.
type Source string

const (
	SourceStore          Source = "store"
	SourceStoreHydrated  Source = "store_hydrated"
	SourceFixture        Source = "fixture"
	SourceGenerated      Source = "generated"
	SourceGeneratedCache Source = "generated_cache"
)

type Resolution struct {
	Document json.RawMessage
	Source   Source
}

type ProfileResolver interface {
	// Resolve returns the document to show caller for username, or an error
	// tagged with the apperrors taxonomy.
	Resolve(ctx context.Context, username string, caller types.Identity) (*Resolution, error)
}

type ResolverConfig struct {
	ReservedUsername  string
	StoreTimeout      time.Duration
	EnrichmentTimeout time.Duration
	// Fixture overrides the embedded reserved profile.
	Fixture json.RawMessage
}

// resolveStage reports done=true when it produced a definitive result.
type resolveStage struct {
	name string
	run  func(ctx context.Context, username string, caller types.Identity) (res *Resolution, done bool, err error)
}

type profileResolver struct {
	log        *logger.Logger
	repo       profilerepo.ProfileRepo
	enrichment enrichment.Client
	cache      redis.GeneratedCache
	metrics    *observability.Metrics
	cfg        ResolverConfig
	fixture    json.RawMessage
	generating singleflight.Group
	stages     []resolveStage
}

// NewProfileResolver builds the read chain. cache and metrics may be nil.
func NewProfileResolver(
	log *logger.Logger,
	repo profilerepo.ProfileRepo,
	enrich enrichment.Client,
	cache redis.GeneratedCache,
	metrics *observability.Metrics,
	cfg ResolverConfig,
) (ProfileResolver, error) {
	fixture := cfg.Fixture
	if len(fixture) == 0 {
		fixture = reservedFixture
	}
	if _, err := types.ParseDocument(fixture); err != nil {
		return nil, fmt.Errorf("reserved profile fixture: %w", err)
	}
	r := &profileResolver{
		log:        log.With("service", "ProfileResolver"),
		repo:       repo,
		enrichment: enrich,
		cache:      cache,
		metrics:    metrics,
		cfg:        cfg,
		fixture:    fixture,
	}
	r.stages = []resolveStage{
		{name: "store", run: r.fromStore},
		{name: "reserved", run: r.fromFixture},
		{name: "generate", run: r.fromGenerator},
	}
	return r, nil
}

func (r *profileResolver) Resolve(ctx context.Context, username string, caller types.Identity) (*Resolution, error) {
	tracer := otel.Tracer("profile-backend/services")
	for _, stage := range r.stages {
		stageCtx, span := tracer.Start(ctx, "profile.resolve."+stage.name)
		span.SetAttributes(attribute.String("profile.username", username))
		res, done, err := stage.run(stageCtx, username, caller)
		if err != nil {
			span.RecordError(err)
		}
		span.End()
		if err != nil {
			r.metrics.ObserveResolution(stage.name, resultLabel(err))
			return nil, err
		}
		if done {
			r.metrics.ObserveResolution(string(res.Source), "ok")
			return res, nil
		}
	}
	// The generator stage is always definitive, so this is only reached with
	// an empty stage list.
	return nil, apperrors.NotFound("no profile data for " + username)
}

func (r *profileResolver) fromStore(ctx context.Context, username string, caller types.Identity) (*Resolution, bool, error) {
	storeCtx, cancel := withTimeout(ctx, r.cfg.StoreTimeout)
	defer cancel()

	rec, err := r.repo.Find(dbctx.Context{Ctx: storeCtx}, username)
	if err != nil {
		return nil, true, asTransient("profile store find", err)
	}
	if rec == nil {
		return nil, false, nil
	}
	if !json.Valid([]byte(rec.Data)) {
		r.metrics.IncCorruption()
		r.log.Error("Stored profile is not valid JSON", "username", username, "record_id", rec.ID)
		return nil, true, apperrors.Corruption("stored profile for "+username+" is not valid JSON", nil)
	}

	if Classify(username, caller) == PassThrough {
		return &Resolution{Document: json.RawMessage(rec.Data), Source: SourceStore}, true, nil
	}

	enrichCtx, cancelEnrich := withTimeout(ctx, r.cfg.EnrichmentTimeout)
	defer cancelEnrich()
	start := time.Now()
	hydrated, err := r.enrichment.Hydrate(enrichCtx, json.RawMessage(rec.Data))
	r.metrics.ObserveEnrichment("hydrate", resultLabel(err), time.Since(start))
	if err != nil {
		r.log.Warn("Profile hydration failed", "username", username, "error", err)
		return nil, true, apperrors.Transient("profile hydration failed", err)
	}
	return &Resolution{Document: hydrated, Source: SourceStoreHydrated}, true, nil
}

func (r *profileResolver) fromFixture(_ context.Context, username string, _ types.Identity) (*Resolution, bool, error) {
	if username != r.cfg.ReservedUsername {
		return nil, false, nil
	}
	doc := make(json.RawMessage, len(r.fixture))
	copy(doc, r.fixture)
	return &Resolution{Document: doc, Source: SourceFixture}, true, nil
}

type generated struct {
	doc json.RawMessage
	ok  bool
}

func (r *profileResolver) fromGenerator(ctx context.Context, username string, _ types.Identity) (*Resolution, bool, error) {
	if doc, ok := r.cachedGenerated(ctx, username); ok {
		return &Resolution{Document: doc, Source: SourceGeneratedCache}, true, nil
	}

	// The shared call outlives any one waiter; each caller gives up on its own ctx.
	ch := r.generating.DoChan(username, func() (any, error) {
		enrichCtx, cancel := withTimeout(context.WithoutCancel(ctx), r.cfg.EnrichmentTimeout)
		defer cancel()
		start := time.Now()
		doc, ok, err := r.enrichment.Generate(enrichCtx, username)
		r.metrics.ObserveEnrichment("generate", resultLabel(err), time.Since(start))
		if err != nil {
			return nil, err
		}
		if ok {
			r.storeGenerated(enrichCtx, username, doc)
		}
		return generated{doc: doc, ok: ok}, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, true, apperrors.Transient("profile generation abandoned", ctx.Err())
	}
	if res.Err != nil {
		r.log.Warn("Profile generation failed", "username", username, "error", res.Err)
		return nil, true, apperrors.Transient("profile generation failed", res.Err)
	}
	g := res.Val.(generated)
	if !g.ok {
		return nil, true, apperrors.NotFound("no profile data for " + username)
	}
	return &Resolution{Document: g.doc, Source: SourceGenerated}, true, nil
}

func (r *profileResolver) cachedGenerated(ctx context.Context, username string) (json.RawMessage, bool) {
	if r.cache == nil {
		return nil, false
	}
	cacheCtx, cancel := withTimeout(ctx, r.cfg.StoreTimeout)
	defer cancel()
	doc, ok, err := r.cache.Get(cacheCtx, username)
	if err != nil {
		r.metrics.ObserveCacheLookup("error")
		r.log.Warn("Generated profile cache read failed", "username", username, "error", err)
		return nil, false
	}
	if !ok {
		r.metrics.ObserveCacheLookup("miss")
		return nil, false
	}
	r.metrics.ObserveCacheLookup("hit")
	return doc, true
}

func (r *profileResolver) storeGenerated(ctx context.Context, username string, doc json.RawMessage) {
	if r.cache == nil {
		return
	}
	cacheCtx, cancel := withTimeout(context.WithoutCancel(ctx), r.cfg.StoreTimeout)
	defer cancel()
	if err := r.cache.Set(cacheCtx, username, doc); err != nil {
		r.log.Warn("Generated profile cache write failed", "username", username, "error", err)
	}
}
