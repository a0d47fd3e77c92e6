package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "codedcode/docs"
	"codedcode/internal/delivery/http/controllers"
	"codedcode/internal/delivery/http/middleware"
	"codedcode/internal/metrics"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Contact    *controllers.ContactController
	Membership *controllers.MembershipController
	Stats      *controllers.StatsController
	Health     *controllers.HealthController
}

// RouterConfig holds the edge settings that vary per environment.
type RouterConfig struct {
	CORS middleware.CORSConfig
	// RateLimit turns both per-IP limiters on.
	RateLimit bool
	// ExemptLoopback lets local clients bypass the limiters.
	ExemptLoopback bool
	General        middleware.LimitConfig
	Form           middleware.LimitConfig
}

// DefaultRouterConfig returns the limits used in production.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit: true,
		General:   middleware.GeneralLimit,
		Form:      middleware.FormLimit,
	}
}

func (c RouterConfig) skip() func(*http.Request) bool {
	switch {
	case !c.RateLimit:
		return middleware.SkipAll
	case c.ExemptLoopback:
		return middleware.SkipLoopback
	}
	return nil
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(logger *slog.Logger, cfg RouterConfig, c Controllers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(func(next http.Handler) http.Handler { return middleware.LoggingMiddleware(logger, next) })
	r.Use(chimw.Recoverer)
	r.Use(metrics.PrometheusMiddleware)
	r.Use(middleware.SecurityHeaders)
	r.Use(func(next http.Handler) http.Handler { return middleware.CORS(cfg.CORS, next) })
	r.Use(middleware.Sanitize)

	r.NotFound(controllers.NotFound)
	r.MethodNotAllowed(controllers.NotFound)

	r.Get("/", c.Health.Health)
	r.Get("/health", c.Health.Health)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	if cfg.General.Limit < 1 {
		cfg.General = middleware.GeneralLimit
	}
	if cfg.Form.Limit < 1 {
		cfg.Form = middleware.FormLimit
	}
	general := middleware.NewRateLimiter(cfg.General, cfg.skip())
	form := middleware.NewRateLimiter(cfg.Form, cfg.skip())

	r.Route("/api", func(api chi.Router) {
		api.Use(general.Handler)

		api.With(form.Handler).Post("/contact", c.Contact.Submit)
		api.Get("/contact", c.Contact.List)
		api.Get("/contact/stats/dashboard", c.Contact.Stats)
		api.Get("/contact/{id}", c.Contact.Get)
		api.Patch("/contact/{id}/status", c.Contact.UpdateStatus)

		api.With(form.Handler).Post("/membership", c.Membership.Submit)
		api.Get("/membership", c.Membership.List)
		api.Get("/membership/stats/dashboard", c.Membership.Stats)
		api.Get("/membership/check-email/{email}", c.Membership.CheckEmail)
		api.Get("/membership/{id}", c.Membership.Get)
		api.Patch("/membership/{id}/status", c.Membership.UpdateStatus)

		api.Get("/stats", c.Stats.Dashboard)
	})

	return r
}
