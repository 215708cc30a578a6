package profile

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/profile-backend/internal/domain/profile"
	"github.com/yungbote/profile-backend/internal/pkg/dbctx"
	"github.com/yungbote/profile-backend/internal/platform/logger"
)

type ProfileRepo interface {
	// Find returns nil, nil when no record exists.
	Find(dbc dbctx.Context, username string) (*types.Record, error)
	// FindOrCreate inserts a record with data when none exists. The returned
	// bool is true when this call created it. An existing row is read with a
	// row lock when running inside a transaction on a store that supports it.
	FindOrCreate(dbc dbctx.Context, username string, data string) (*types.Record, bool, error)
	// Save persists only the named columns of rec.
	Save(dbc dbctx.Context, rec *types.Record, fields ...string) error
	// Transaction runs fn in a single store transaction.
	Transaction(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{db: db, log: baseLog.With("repo", "ProfileRepo")}
}

func (r *profileRepo) conn(dbc dbctx.Context) *gorm.DB {
	return dbc.Conn(r.db)
}

func (r *profileRepo) Find(dbc dbctx.Context, username string) (*types.Record, error) {
	var row types.Record
	res := r.conn(dbc).Where("username = ?", username).Limit(1).Find(&row)
	if res.Error != nil {
		return nil, MapError("find", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *profileRepo) FindOrCreate(dbc dbctx.Context, username string, data string) (*types.Record, bool, error) {
	now := time.Now().UTC()
	row := types.Record{
		ID:        uuid.New(),
		Username:  username,
		Data:      data,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res := r.conn(dbc).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoNothing: true,
		}).
		Create(&row)
	if res.Error != nil {
		return nil, false, MapError("find_or_create", res.Error)
	}
	if res.RowsAffected == 1 {
		return &row, true, nil
	}

	var existing types.Record
	q := r.conn(dbc)
	if dbc.InTx() {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Where("username = ?", username).Take(&existing).Error; err != nil {
		return nil, false, MapError("find_or_create", err)
	}
	return &existing, false, nil
}

func (r *profileRepo) Save(dbc dbctx.Context, rec *types.Record, fields ...string) error {
	if rec == nil || rec.ID == uuid.Nil {
		return MapError("save", gorm.ErrMissingWhereClause)
	}
	rec.UpdatedAt = time.Now().UTC()
	cols := append([]string{}, fields...)
	cols = append(cols, "updated_at")
	err := r.conn(dbc).
		Model(rec).
		Select(cols).
		Updates(rec).Error
	return MapError("save", err)
}

func (r *profileRepo) Transaction(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
	return MapError("transaction", err)
}
