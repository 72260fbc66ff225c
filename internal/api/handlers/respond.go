package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/statushub/profiles-be/internal/apperr"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps service errors onto the HTTP error taxonomy: validation
// failures carry the fields at fault, authentication and authorization
// failures stay distinct, and anything unclassified is a 500 with no
// internal detail leaked.
func respondError(w http.ResponseWriter, err error) {
	var verr *apperr.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, apperr.ErrInvalidCredentials), errors.Is(err, apperr.ErrInvalidToken):
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	case errors.Is(err, apperr.ErrForbidden):
		respondJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	case errors.Is(err, apperr.ErrNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
