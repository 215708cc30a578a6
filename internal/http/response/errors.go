package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yungbote/profile-backend/internal/pkg/errors"
	"github.com/yungbote/profile-backend/internal/platform/apierr"
	"github.com/yungbote/profile-backend/internal/platform/ctxutil"
	"github.com/yungbote/profile-backend/internal/platform/logger"
)

// ToAPIError maps a service error to the status and public message the
// caller sees. The cause is kept for logging only.
func ToAPIError(err error) *apierr.Error {
	var ae *apierr.Error
	if errors.As(err, &ae) && ae != nil {
		return ae
	}
	switch apperrors.Kind(err) {
	case apperrors.ErrBadInput:
		return apierr.New(http.StatusBadRequest, apierr.CodeBadRequest, err)
	case apperrors.ErrForbidden:
		return apierr.New(http.StatusForbidden, apierr.CodeForbidden, err)
	case apperrors.ErrNotFound:
		return apierr.New(http.StatusNotFound, apierr.CodeNotFound, err)
	case apperrors.ErrCorruption:
		return apierr.New(http.StatusInternalServerError, apierr.CodeCorruptRecord, err)
	case apperrors.ErrTimeout:
		return apierr.New(http.StatusGatewayTimeout, apierr.CodeUpstreamTimeout, err)
	case apperrors.ErrTransient:
		return apierr.New(http.StatusBadGateway, apierr.CodeUpstreamUnavailable, err)
	default:
		return apierr.New(http.StatusInternalServerError, apierr.CodeInternal, err)
	}
}

// Fail logs err with request context and writes the JSON error envelope.
// Downstream error text never reaches the response body.
func Fail(c *gin.Context, log *logger.Logger, err error) {
	ae := ToAPIError(err)
	if log != nil {
		fields := []interface{}{
			"status", ae.Status,
			"code", ae.Code,
			"path", c.FullPath(),
			"error", err,
		}
		if _, reqID := ctxutil.TraceIDs(c.Request.Context()); reqID != "" {
			fields = append(fields, "request_id", reqID)
		}
		switch {
		case ae.Code == apierr.CodeCorruptRecord:
			log.Error("Data integrity incident", fields...)
		case ae.Status >= 500:
			log.Error("Request failed", fields...)
		default:
			log.Warn("Request rejected", fields...)
		}
	}
	RespondError(c, ae.Status, ae.Code, errors.New(ae.Public()))
}
