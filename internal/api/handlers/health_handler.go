package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/statushub/profiles-be/internal/monitoring"
)

// HealthHandler reports process liveness and a host resource snapshot.
type HealthHandler struct{}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Get handles the liveness probe.
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := monitoring.CurrentSnapshot()
	if err != nil {
		// Still alive; the snapshot is informational.
		log.Warn().Err(err).Msg("Failed to sample host stats for health check")
		respondJSON(w, http.StatusOK, map[string]interface{}{"status": "ok"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"host":   snap,
	})
}
