package handlers

import (
	"net/http"
	"time"

	"github.com/minhvu-dev/crm-backend/internal/utils"
)

const version = "1.0.0"

// Root serves the service banner.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	utils.Respond(w, http.StatusOK, "CRM Backend API is running", map[string]any{
		"version":   version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health reports liveness and process uptime.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.Respond(w, http.StatusOK, "", map[string]any{
		"status":    "healthy",
		"uptime":    time.Since(h.started).Seconds(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// NotFound is the catch-all for unknown routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	utils.Fail(w, http.StatusNotFound, "API endpoint not found: "+r.URL.Path)
}
