package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"codedcode/internal/delivery/http/helpers"
	"codedcode/internal/domain"
)

// Version is reported by the health check. Overridden at build time with -ldflags.
var Version = "1.0.0"

// HealthResponse is the body of GET / and GET /health.
type HealthResponse struct {
	Success     bool      `json:"success"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
	Version     string    `json:"version"`
	Database    string    `json:"database" enums:"connected,disconnected"`
	Uptime      float64   `json:"uptime"`
}

type HealthController struct {
	Logger      *slog.Logger
	Probe       domain.StoreProbe
	Environment string
	started     time.Time
	now         func() time.Time
}

func NewHealthController(logger *slog.Logger, probe domain.StoreProbe, environment string) *HealthController {
	return &HealthController{
		Logger:      logger,
		Probe:       probe,
		Environment: environment,
		started:     time.Now(),
		now:         time.Now,
	}
}

// Health godoc
// @Summary API health check
// @Description Always 200 while the process serves requests; database reports store reachability.
// @Tags health
// @Produce json
// @Success 200 {object} controllers.HealthResponse
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	database := "connected"
	if err := c.Probe.Ping(r.Context()); err != nil {
		c.Logger.WarnContext(r.Context(), "database ping failed", "err", err)
		database = "disconnected"
	}
	now := c.now()
	helpers.WriteJSON(w, http.StatusOK, HealthResponse{
		Success:     true,
		Message:     "Code_d_Code Backend API is running",
		Timestamp:   now.UTC(),
		Environment: c.Environment,
		Version:     Version,
		Database:    database,
		Uptime:      now.Sub(c.started).Seconds(),
	})
}
