package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/statushub/profiles-be/internal/apperr"
	"github.com/statushub/profiles-be/internal/auth"
	"github.com/statushub/profiles-be/internal/authz"
	"github.com/statushub/profiles-be/internal/models"
	"github.com/statushub/profiles-be/internal/services"
	ws "github.com/statushub/profiles-be/internal/websocket"
)

// FeedHandler handles HTTP requests for the status feed.
type FeedHandler struct {
	service  services.FeedServiceProvider
	eventSvc services.EventServiceProvider
	hub      *ws.Hub
}

// NewFeedHandler creates a new FeedHandler.
func NewFeedHandler(service services.FeedServiceProvider, eventSvc services.EventServiceProvider, hub *ws.Hub) *FeedHandler {
	return &FeedHandler{service: service, eventSvc: eventSvc, hub: hub}
}

// StatusPayload defines the structure for feed item create/update requests.
// The owner is never part of the payload; it always comes from the token.
type StatusPayload struct {
	StatusText string `json:"statusText"`
}

// List handles listing all feed items, newest first. Reading is open to any
// authenticated caller.
func (h *FeedHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListFeedItems()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list feed items")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// Get handles retrieving a single feed item.
func (h *FeedHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetFeedItemByID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// Create handles posting a new status. The owner is injected from the
// authenticated requester's identity; any owner field a client smuggles into
// the payload is ignored.
func (h *FeedHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	var payload StatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	item, err := h.service.CreateFeedItem(claims.UserID, payload.StatusText)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("Failed to create feed item")
		respondError(w, err)
		return
	}

	if err := h.eventSvc.RecordEvent("feed.create", "info", "Status posted", &claims.UserID); err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("Failed to record feed create event")
	}
	h.hub.Broadcast <- ws.NewFeedItemMessage(item)
	respondJSON(w, http.StatusCreated, item)
}

// Update handles a full status replacement, restricted to the owner.
func (h *FeedHandler) Update(w http.ResponseWriter, r *http.Request) {
	item, ok := h.authorizeItemMutation(w, r)
	if !ok {
		return
	}

	var payload StatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	updated, err := h.service.UpdateFeedItem(item.ID, payload.StatusText)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Patch handles a partial update. The only mutable field is the status
// text; omitting it leaves the item unchanged, and repeating the same patch
// reproduces the same state.
func (h *FeedHandler) Patch(w http.ResponseWriter, r *http.Request) {
	item, ok := h.authorizeItemMutation(w, r)
	if !ok {
		return
	}

	var payload struct {
		StatusText *string `json:"statusText"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if payload.StatusText == nil {
		respondJSON(w, http.StatusOK, item)
		return
	}

	updated, err := h.service.UpdateFeedItem(item.ID, *payload.StatusText)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles removing a feed item, restricted to the owner.
func (h *FeedHandler) Delete(w http.ResponseWriter, r *http.Request) {
	item, ok := h.authorizeItemMutation(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteFeedItem(item.ID); err != nil {
		log.Error().Err(err).Str("item_id", item.ID).Msg("Failed to delete feed item")
		respondError(w, err)
		return
	}

	if err := h.eventSvc.RecordEvent("feed.delete", "info", "Status deleted", &item.UserID); err != nil {
		log.Warn().Err(err).Str("user_id", item.UserID).Msg("Failed to record feed delete event")
	}
	w.WriteHeader(http.StatusNoContent)
}

// authorizeItemMutation loads the target feed item and evaluates the
// own-status predicate. Denials are reported before any mutation happens.
func (h *FeedHandler) authorizeItemMutation(w http.ResponseWriter, r *http.Request) (models.FeedItem, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return models.FeedItem{}, false
	}

	item, err := h.service.GetFeedItemByID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return models.FeedItem{}, false
	}

	if !authz.CanAccessFeedItem(r.Method, claims.UserID, item) {
		log.Warn().Str("method", r.Method).Str("requester_id", claims.UserID).Str("owner_id", item.UserID).Str("item_id", item.ID).Msg("Feed item mutation denied")
		respondError(w, apperr.ErrForbidden)
		return models.FeedItem{}, false
	}
	return item, true
}
