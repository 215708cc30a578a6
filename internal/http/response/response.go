package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/profile-backend/internal/platform/ctxutil"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	// RequestID lets a caller quote the failing request to support.
	RequestID string `json:"requestId,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError aborts the chain. err's text is sent verbatim, so callers
// pass a public message, not a downstream cause.
func RespondError(c *gin.Context, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	_, reqID := ctxutil.TraceIDs(c.Request.Context())
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message:   msg,
			Code:      code,
			RequestID: reqID,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	Respond(c, http.StatusOK, payload)
}

func Respond(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// RespondRawJSON writes an already serialized JSON document unchanged.
func RespondRawJSON(c *gin.Context, status int, raw []byte) {
	c.Data(status, "application/json; charset=utf-8", raw)
}
