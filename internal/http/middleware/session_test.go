package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/profile-backend/internal/platform/ctxutil"
	"github.com/yungbote/profile-backend/internal/platform/logger"
	"github.com/yungbote/profile-backend/internal/services"
)

func newSessionRouter(t *testing.T) (*gin.Engine, services.SessionService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	sessions, err := services.NewSessionService(log, "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewSessionService: %v", err)
	}
	sm := NewSessionMiddleware(log, sessions, CookieConfig{Name: "profile_session"})
	r := gin.New()
	r.Use(sm.Attach(), sm.RequireCSRF())
	whoami := func(c *gin.Context) {
		sd := ctxutil.GetSessionData(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"username": sd.Username, "csrf": sd.CSRF})
	}
	r.GET("/whoami", whoami)
	r.POST("/whoami", whoami)
	return r, sessions
}

func TestSessionAttachIssuesAnonymousCookie(t *testing.T) {
	r, _ := newSessionRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	cookie := rec.Header().Get("Set-Cookie")
	if !strings.HasPrefix(cookie, "profile_session=") || !strings.Contains(cookie, "HttpOnly") {
		t.Fatalf("expected anonymous session cookie, got %q", cookie)
	}
	if !strings.Contains(rec.Body.String(), `"username":""`) {
		t.Fatalf("expected anonymous caller, got %s", rec.Body.String())
	}
}

func TestSessionAttachReadsValidCookie(t *testing.T) {
	r, sessions := newSessionRouter(t)
	token, _, err := sessions.Issue("alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "profile_session", Value: token})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), `"username":"alice"`) {
		t.Fatalf("expected alice, got %s", rec.Body.String())
	}
	if rec.Header().Get("Set-Cookie") != "" {
		t.Fatalf("valid session should not be reissued")
	}
}

func TestRequireCSRF(t *testing.T) {
	r, sessions := newSessionRouter(t)
	token, claims, _ := sessions.Issue("alice")

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing", want: http.StatusForbidden},
		{name: "wrong", header: "nope", want: http.StatusForbidden},
		{name: "match", header: claims.CSRF, want: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/whoami", nil)
			req.AddCookie(&http.Cookie{Name: "profile_session", Value: token})
			if tc.header != "" {
				req.Header.Set(HeaderCSRFToken, tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status: want=%d got=%d body=%s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SecurityHeaders(SecurityConfig{ForceSSL: true, CSPReportURI: "https://csp.example.org/report"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("nosniff: %q", got)
	}
	if got := rec.Header().Get("X-XSS-Protection"); got != "1; mode=block" {
		t.Fatalf("xss: %q", got)
	}
	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.Contains(csp, "default-src 'self'") || !strings.HasSuffix(csp, "report-uri https://csp.example.org/report") {
		t.Fatalf("csp: %q", csp)
	}
	for _, directive := range []string{"frame-src https://login.persona.org", "script-src 'self' https://login.persona.org"} {
		if !strings.Contains(csp, directive) {
			t.Fatalf("csp missing %q: %q", directive, csp)
		}
	}
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Fatalf("expected HSTS when ForceSSL")
	}
}

func TestAttachTraceContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/", func(c *gin.Context) {
		td := ctxutil.GetTraceData(c.Request.Context())
		c.String(http.StatusOK, td.RequestID)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Body.String() != "req-123" || rec.Header().Get(headerRequestID) != "req-123" {
		t.Fatalf("request id not propagated: body=%q header=%q", rec.Body.String(), rec.Header().Get(headerRequestID))
	}
	if rec.Header().Get(headerTraceID) == "" {
		t.Fatalf("missing trace id header")
	}
}
