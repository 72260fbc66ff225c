package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/statushub/profiles-be/internal/apperr"
	"github.com/statushub/profiles-be/internal/auth"
	"github.com/statushub/profiles-be/internal/services"
)

// EventHandler handles HTTP requests for the audit event log.
type EventHandler struct {
	service services.EventServiceProvider
	userSvc services.UserServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider, userSvc services.UserServiceProvider) *EventHandler {
	return &EventHandler{service: service, userSvc: userSvc}
}

// GetRecent handles the request to get recent audit events. Staff only.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	requester, err := h.userSvc.GetUserByID(claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !requester.IsStaff {
		log.Warn().Str("requester_id", requester.ID).Msg("Audit log access denied")
		respondError(w, apperr.ErrForbidden)
		return
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20 // Default limit
	}

	events, err := h.service.GetRecentEvents(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve events")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}
