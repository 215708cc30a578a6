package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/profile-backend/internal/platform/logger"
)

// gormLog routes gorm's own logging through the service logger so SQL errors
// and slow queries land in the same structured stream.
type gormLog struct {
	log   *logger.Logger
	level gormLogger.LogLevel
	slow  time.Duration
}

func newGormLog(log *logger.Logger, slow time.Duration) gormLogger.Interface {
	return &gormLog{log: log.With("component", "gorm"), level: gormLogger.Warn, slow: slow}
}

func (g *gormLog) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *g
	cp.level = level
	return &cp
}

func (g *gormLog) Info(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormLogger.Info {
		g.log.Info(msg, "args", args)
	}
}

func (g *gormLog) Warn(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormLogger.Warn {
		g.log.Warn(msg, "args", args)
	}
}

func (g *gormLog) Error(_ context.Context, msg string, args ...interface{}) {
	if g.level >= gormLogger.Error {
		g.log.Error(msg, "args", args)
	}
}

// Trace logs timing and row counts only. The SQL text carries bound values.
func (g *gormLog) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && g.level >= gormLogger.Error:
		_, rows := fc()
		g.log.Error("SQL failed", "error", err, "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	case g.slow > 0 && elapsed > g.slow && g.level >= gormLogger.Warn:
		_, rows := fc()
		g.log.Warn("Slow SQL", "rows", rows, "elapsed_ms", elapsed.Milliseconds(), "threshold_ms", g.slow.Milliseconds())
	case g.level >= gormLogger.Info:
		_, rows := fc()
		g.log.Debug("SQL", "rows", rows, "elapsed_ms", elapsed.Milliseconds())
	}
}
