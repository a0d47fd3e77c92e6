package controllers

import (
	"net/http"

	"codedcode/internal/delivery/http/helpers"
)

// AvailableRoutes is advertised on every 404.
var AvailableRoutes = map[string]string{
	"GET /":                "API health check",
	"POST /api/contact":    "Submit contact form",
	"GET /api/contact":     "Get contact submissions (admin)",
	"POST /api/membership": "Submit membership application",
	"GET /api/membership":  "Get membership applications (admin)",
	"GET /api/stats":       "Get dashboard statistics",
}

// NotFoundResponse is the body returned for unknown routes.
type NotFoundResponse struct {
	helpers.APIResponse
	AvailableRoutes map[string]string `json:"availableRoutes"`
}

// NotFound answers unknown routes and unsupported methods alike.
func NotFound(w http.ResponseWriter, r *http.Request) {
	msg := "Route " + r.Method + " " + r.URL.RequestURI() + " not found"
	helpers.WriteJSON(w, http.StatusNotFound, NotFoundResponse{
		APIResponse: helpers.APIResponse{
			Message: msg,
			Error:   &helpers.APIError{Code: helpers.ErrCodeNotFound, Message: msg},
		},
		AvailableRoutes: AvailableRoutes,
	})
}
