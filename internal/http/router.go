package http

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/profile-backend/internal/http/handlers"
	httpMW "github.com/yungbote/profile-backend/internal/http/middleware"
	"github.com/yungbote/profile-backend/internal/observability"
	"github.com/yungbote/profile-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string

	SessionMiddleware *httpMW.SessionMiddleware
	Security          httpMW.SecurityConfig
	CORSOrigins       []string
	MaxBodyBytes      int64
	Metrics           *observability.Metrics
	StaticDir         string
	Compress          bool

	ProfileHandler *httpH.ProfileHandler
	ImageHandler   *httpH.ImageHandler
	SessionHandler *httpH.SessionHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Security.ForceSSL {
		// TLS terminates at the load balancer; trust its forwarding headers.
		_ = r.SetTrustedProxies([]string{"0.0.0.0/0", "::/0"})
	} else {
		_ = r.SetTrustedProxies(nil)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "profile-backend"
	}
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	if cfg.Compress {
		// promhttp negotiates its own encoding.
		r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	}
	r.Use(httpMW.SecurityHeaders(cfg.Security))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	r.Use(httpMW.LimitBody(cfg.MaxBodyBytes))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	app := r.Group("/")
	{
		if cfg.SessionMiddleware != nil {
			app.Use(cfg.SessionMiddleware.Attach(), cfg.SessionMiddleware.RequireCSRF())
		}

		// Session
		if cfg.SessionHandler != nil {
			app.GET("/getcsrf", cfg.SessionHandler.GetCSRF)
			app.GET("/env.json", cfg.SessionHandler.FrontendConfig)
			app.POST("/logout", cfg.SessionHandler.Logout)
		}

		// Profiles
		if cfg.ProfileHandler != nil {
			app.GET("/user-data/:username", cfg.ProfileHandler.GetProfile)
			app.POST("/user-data/:username", cfg.ProfileHandler.UpsertProfile)
		}

		// Images
		if cfg.ImageHandler != nil {
			app.POST("/store-img", cfg.ImageHandler.StoreImage)
		}
	}

	if dir := strings.TrimSpace(cfg.StaticDir); dir != "" {
		fs := http.Dir(dir)
		fileServer := http.FileServer(fs)
		r.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
				c.Status(http.StatusNotFound)
				return
			}
			fileServer.ServeHTTP(c.Writer, c.Request)
		})
	}

	return r
}
