package controllers

import (
	"log/slog"
	"net/http"

	"codedcode/internal/delivery/http/helpers"
	"codedcode/internal/domain"
)

type StatsController struct {
	Logger  *slog.Logger
	Service domain.StatsService
	Errors  *helpers.ErrorResponder
}

func NewStatsController(logger *slog.Logger, svc domain.StatsService, errs *helpers.ErrorResponder) *StatsController {
	return &StatsController{Logger: logger, Service: svc, Errors: errs}
}

// Dashboard godoc
// @Summary Combined dashboard statistics
// @Description Headline counters for both forms and per-day submission counts for the last 7 days.
// @Tags stats
// @Produce json
// @Success 200 {object} helpers.APIResponse{data=domain.DashboardStats}
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /api/stats [get]
func (c *StatsController) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Service.Dashboard(r.Context())
	if err != nil {
		c.Errors.Write(w, r, err, helpers.ErrorMessages{Failure: "Failed to fetch statistics"})
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, "", stats)
}
