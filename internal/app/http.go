package app

import (
	"github.com/yungbote/profile-backend/internal/http"
	httpH "github.com/yungbote/profile-backend/internal/http/handlers"
	httpMW "github.com/yungbote/profile-backend/internal/http/middleware"
	"github.com/yungbote/profile-backend/internal/observability"
	"github.com/yungbote/profile-backend/internal/platform/logger"
)

type Middleware struct {
	Session *httpMW.SessionMiddleware
}

type Handlers struct {
	Health  *httpH.HealthHandler
	Profile *httpH.ProfileHandler
	Image   *httpH.ImageHandler
	Session *httpH.SessionHandler
}

func wireMiddleware(log *logger.Logger, cfg Config, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Session: httpMW.NewSessionMiddleware(log, services.Sessions, httpMW.CookieConfig{
			Name:   cfg.SessionCookie,
			Domain: cfg.CookieDomain,
			Secure: cfg.ForceSSL,
		}),
	}
}

func wireHandlers(log *logger.Logger, cfg Config, services Services, middleware Middleware) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(cfg.Version),
		Profile: httpH.NewProfileHandler(log, services.Resolver, services.Merger),
		Image:   httpH.NewImageHandler(log, services.Images),
		Session: httpH.NewSessionHandler(log, middleware.Session, cfg.Audience),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:               log,
		ServiceName:       cfg.Otel.ServiceName,
		SessionMiddleware: middleware.Session,
		Security: httpMW.SecurityConfig{
			ForceSSL:     cfg.ForceSSL,
			CSPReportURI: cfg.CSPReportURI,
		},
		CORSOrigins:    cfg.CORSOrigins,
		MaxBodyBytes:   cfg.MaxImageBytes,
		Metrics:        metrics,
		StaticDir:      cfg.StaticDir,
		Compress:       cfg.Compress,
		ProfileHandler: handlers.Profile,
		ImageHandler:   handlers.Image,
		SessionHandler: handlers.Session,
		HealthHandler:  handlers.Health,
	})
}
