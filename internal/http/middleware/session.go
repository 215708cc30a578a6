package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/profile-backend/internal/http/response"
	"github.com/yungbote/profile-backend/internal/platform/apierr"
	"github.com/yungbote/profile-backend/internal/platform/ctxutil"
	"github.com/yungbote/profile-backend/internal/platform/logger"
	"github.com/yungbote/profile-backend/internal/services"
)

const HeaderCSRFToken = "X-CSRF-Token"

type CookieConfig struct {
	Name   string
	Domain string
	Secure bool
}

type SessionMiddleware struct {
	log      *logger.Logger
	sessions services.SessionService
	cookie   CookieConfig
}

func NewSessionMiddleware(log *logger.Logger, sessions services.SessionService, cookie CookieConfig) *SessionMiddleware {
	if cookie.Name == "" {
		cookie.Name = "profile_session"
	}
	return &SessionMiddleware{
		log:      log.With("Middleware", "SessionMiddleware"),
		sessions: sessions,
		cookie:   cookie,
	}
}

// Attach reads the session cookie into the request context. Callers without
// a valid session get a fresh anonymous one so they can obtain a CSRF token.
func (sm *SessionMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		sd := sm.readSession(c)
		if sd == nil {
			token, claims, err := sm.sessions.Issue("")
			if err != nil {
				response.Fail(c, sm.log, err)
				return
			}
			sm.SetCookie(c, token)
			sd = &ctxutil.SessionData{CSRF: claims.CSRF}
		}
		c.Request = c.Request.WithContext(ctxutil.WithSessionData(c.Request.Context(), sd))
		c.Next()
	}
}

func (sm *SessionMiddleware) readSession(c *gin.Context) *ctxutil.SessionData {
	raw, err := c.Cookie(sm.cookie.Name)
	if err != nil || strings.TrimSpace(raw) == "" {
		return nil
	}
	claims, err := sm.sessions.Parse(raw)
	if err != nil {
		sm.log.Debug("Discarding invalid session cookie", "error", err)
		return nil
	}
	return &ctxutil.SessionData{Username: claims.Username, CSRF: claims.CSRF}
}

// RequireCSRF rejects state-changing requests whose X-CSRF-Token header does
// not match the session's token.
func (sm *SessionMiddleware) RequireCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
			c.Next()
			return
		}
		sd := ctxutil.GetSessionData(c.Request.Context())
		sent := strings.TrimSpace(c.GetHeader(HeaderCSRFToken))
		if sd == nil || sd.CSRF == "" || sent == "" ||
			subtle.ConstantTimeCompare([]byte(sent), []byte(sd.CSRF)) != 1 {
			response.Fail(c, sm.log, apierr.New(http.StatusForbidden, apierr.CodeCSRF, errors.New("csrf token mismatch")))
			return
		}
		c.Next()
	}
}

func (sm *SessionMiddleware) SetCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sm.cookie.Name, token, int(sm.sessions.TTL().Seconds()), "/", sm.cookie.Domain, sm.cookie.Secure, true)
}

func (sm *SessionMiddleware) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sm.cookie.Name, "", -1, "/", sm.cookie.Domain, sm.cookie.Secure, true)
}
