package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/statushub/profiles-be/internal/apperr"
	"github.com/statushub/profiles-be/internal/auth"
	"github.com/statushub/profiles-be/internal/authz"
	"github.com/statushub/profiles-be/internal/models"
	"github.com/statushub/profiles-be/internal/services"
)

// UserHandler handles HTTP requests for account management.
type UserHandler struct {
	service   services.UserServiceProvider
	eventSvc  services.EventServiceProvider
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, eventSvc services.EventServiceProvider, jwtSecret []byte, tokenTTL time.Duration) *UserHandler {
	return &UserHandler{
		service:   service,
		eventSvc:  eventSvc,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles public account registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, err := h.service.Register(payload.Email, payload.Name, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		respondError(w, err)
		return
	}

	if err := h.eventSvc.RecordEvent("user.register", "info", "New account registered: "+user.Email, &user.ID); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to record registration event")
	}
	respondJSON(w, http.StatusCreated, user)
}

// Login handles credential verification and bearer-token issuance.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, err := h.service.Authenticate(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		respondError(w, err)
		return
	}

	token, err := auth.GenerateToken(user, h.jwtSecret, h.tokenTTL)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate token")
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to generate token"})
		return
	}

	if err := h.eventSvc.RecordEvent("user.login", "info", "Account logged in: "+user.Email, &user.ID); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to record login event")
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// GetMe retrieves the currently authenticated user from the token.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user claims from context")
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}

	user, err := h.service.GetUserByID(claims.UserID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("User from token not found in DB")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// List handles listing accounts with an optional name/email search filter.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.URL.Query().Get("search"))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// Get handles retrieving a user by their ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUserByID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Update handles a full profile replacement, restricted to the owner.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	target, claims, ok := h.authorizeProfileMutation(w, r)
	if !ok {
		return
	}

	var payload struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, err := h.service.UpdateUser(target.ID, payload.Email, payload.Name)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("Failed to update profile")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Patch handles a partial profile update, restricted to the owner.
func (h *UserHandler) Patch(w http.ResponseWriter, r *http.Request) {
	target, claims, ok := h.authorizeProfileMutation(w, r)
	if !ok {
		return
	}

	var patch services.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, err := h.service.PatchUser(target.ID, patch)
	if err != nil {
		log.Warn().Err(err).Str("user_id", claims.UserID).Msg("Failed to patch profile")
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// authorizeProfileMutation loads the target account and evaluates the
// own-profile predicate. Denials are reported before any mutation happens.
func (h *UserHandler) authorizeProfileMutation(w http.ResponseWriter, r *http.Request) (target models.User, claims *auth.Claims, ok bool) {
	claims, hasClaims := auth.ClaimsFromContext(r.Context())
	if !hasClaims {
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return target, nil, false
	}

	loaded, err := h.service.GetUserByID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return target, nil, false
	}

	if !authz.CanAccessProfile(r.Method, claims.UserID, loaded) {
		log.Warn().Str("method", r.Method).Str("requester_id", claims.UserID).Str("target_id", loaded.ID).Msg("Profile mutation denied")
		respondError(w, apperr.ErrForbidden)
		return target, nil, false
	}
	return loaded, claims, true
}
