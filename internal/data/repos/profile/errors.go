package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	apperrors "github.com/yungbote/profile-backend/internal/pkg/errors"
)

// MapError tags store failures as transient. Errors that already carry a
// taxonomy kind pass through unchanged.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.Kind(err) != nil {
		return err
	}
	return apperrors.Transient(fmt.Sprintf("profile store %s: %s", op, classify(err)), err)
}

func classify(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "deadline_exceeded"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "record_vanished"
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return "unique_violation"
		case "40001":
			return "serialization_failure"
		case "40P01":
			return "deadlock_detected"
		case "55P03":
			return "lock_not_available"
		case "57014":
			return "query_canceled"
		}
		if strings.HasPrefix(pgErr.Code, "08") {
			return "connection_exception"
		}
		return "pg_" + pgErr.Code
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "database is locked"), strings.Contains(msg, "busy"):
		return "store_busy"
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"):
		return "connection_exception"
	default:
		return "store_error"
	}
}
