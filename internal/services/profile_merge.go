package services

import (
	"context"
	"encoding/json"
	"time"

	profilerepo "github.com/yungbote/profile-backend/internal/data/repos/profile"
	types "github.com/yungbote/profile-backend/internal/domain/profile"
	"github.com/yungbote/profile-backend/internal/observability"
	"github.com/yungbote/profile-backend/internal/pkg/dbctx"
	apperrors "github.com/yungbote/profile-backend/internal/pkg/errors"
	"github.com/yungbote/profile-backend/internal/platform/logger"
)

type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeMerged  Outcome = "merged"
)

type ProfileMerger interface {
	// Upsert creates the record for username from partial, or shallow-merges
	// partial into the existing document.
	Upsert(ctx context.Context, username string, partial json.RawMessage, caller types.Identity) (Outcome, error)
}

type MergerConfig struct {
	ReservedUsername string
	StoreTimeout     time.Duration
}

type profileMerger struct {
	log     *logger.Logger
	repo    profilerepo.ProfileRepo
	metrics *observability.Metrics
	cfg     MergerConfig
}

func NewProfileMerger(log *logger.Logger, repo profilerepo.ProfileRepo, metrics *observability.Metrics, cfg MergerConfig) ProfileMerger {
	return &profileMerger{
		log:     log.With("service", "ProfileMerger"),
		repo:    repo,
		metrics: metrics,
		cfg:     cfg,
	}
}

// CanWrite reports whether caller may write the profile of username.
func CanWrite(username, reserved string, caller types.Identity) bool {
	if username == reserved {
		return true
	}
	return caller.Is(username)
}

func (m *profileMerger) Upsert(ctx context.Context, username string, partial json.RawMessage, caller types.Identity) (Outcome, error) {
	if !CanWrite(username, m.cfg.ReservedUsername, caller) {
		if caller.Anonymous() {
			return "", apperrors.Forbidden("anonymous callers cannot write profile " + username)
		}
		return "", apperrors.Forbidden("caller does not own profile " + username)
	}

	incoming, err := types.ParseDocument(partial)
	if err != nil {
		return "", apperrors.BadInput("profile update must be a JSON object", err)
	}
	initial, err := incoming.Marshal()
	if err != nil {
		return "", apperrors.BadInput("profile update could not be serialized", err)
	}

	storeCtx, cancel := withTimeout(ctx, m.cfg.StoreTimeout)
	defer cancel()

	var outcome Outcome
	err = m.repo.Transaction(storeCtx, func(dbc dbctx.Context) error {
		rec, created, err := m.repo.FindOrCreate(dbc, username, string(initial))
		if err != nil {
			return err
		}
		if created {
			outcome = OutcomeCreated
			return nil
		}

		existing, err := types.ParseDocument([]byte(rec.Data))
		if err != nil {
			m.metrics.IncCorruption()
			m.log.Error("Stored profile is not valid JSON, refusing merge", "username", username, "record_id", rec.ID, "error", err)
			return apperrors.Corruption("stored profile for "+username+" is not valid JSON", err)
		}
		merged, err := existing.Merge(incoming).Marshal()
		if err != nil {
			return apperrors.Corruption("merged profile could not be serialized", err)
		}
		rec.Data = string(merged)
		if err := m.repo.Save(dbc, rec, "data"); err != nil {
			return err
		}
		outcome = OutcomeMerged
		return nil
	})
	if err != nil {
		return "", asTransient("profile store upsert", err)
	}
	m.metrics.ObserveMerge(string(outcome))
	m.log.Debug("Profile written", "username", username, "outcome", outcome)
	return outcome, nil
}
