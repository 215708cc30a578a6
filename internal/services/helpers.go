package services

import (
	"context"
	"time"

	apperrors "github.com/yungbote/profile-backend/internal/pkg/errors"
	"github.com/yungbote/profile-backend/internal/platform/ctxutil"
)

// withTimeout bounds a downstream call. A zero d leaves ctx unchanged.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	ctx = ctxutil.Default(ctx)
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// asTransient keeps an already classified error and tags anything else as a
// downstream failure.
func asTransient(msg string, err error) error {
	if apperrors.Kind(err) != nil {
		return err
	}
	return apperrors.Transient(msg, err)
}

func resultLabel(err error) string {
	switch apperrors.Kind(err) {
	case nil:
		if err != nil {
			return "error"
		}
		return "ok"
	case apperrors.ErrNotFound:
		return "not_found"
	case apperrors.ErrForbidden:
		return "forbidden"
	case apperrors.ErrBadInput:
		return "bad_input"
	case apperrors.ErrCorruption:
		return "corruption"
	case apperrors.ErrTimeout:
		return "timeout"
	default:
		return "transient"
	}
}
