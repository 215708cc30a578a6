package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpMW "github.com/yungbote/profile-backend/internal/http/middleware"
	"github.com/yungbote/profile-backend/internal/http/response"
	"github.com/yungbote/profile-backend/internal/platform/ctxutil"
	"github.com/yungbote/profile-backend/internal/platform/logger"
)

type SessionHandler struct {
	log      *logger.Logger
	sessions *httpMW.SessionMiddleware
	audience string
}

func NewSessionHandler(log *logger.Logger, sessions *httpMW.SessionMiddleware, audience string) *SessionHandler {
	return &SessionHandler{
		log:      log.With("handler", "SessionHandler"),
		sessions: sessions,
		audience: audience,
	}
}

// GET /getcsrf
func (h *SessionHandler) GetCSRF(c *gin.Context) {
	token := ""
	if sd := ctxutil.GetSessionData(c.Request.Context()); sd != nil {
		token = sd.CSRF
	}
	response.RespondOK(c, gin.H{"csrfToken": token})
}

// GET /env.json
func (h *SessionHandler) FrontendConfig(c *gin.Context) {
	response.RespondOK(c, gin.H{"serviceURL": h.audience, "confirmDelete": true})
}

// POST /logout
func (h *SessionHandler) Logout(c *gin.Context) {
	h.sessions.ClearCookie(c)
	c.Status(http.StatusOK)
}
