package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/statushub/profiles-be/internal/apperr"
)

// maxHelloNameLength bounds the name field of the demonstration endpoint.
const maxHelloNameLength = 10

// HelloHandler implements the demonstration endpoint showing one handler
// per HTTP method.
type HelloHandler struct{}

// NewHelloHandler creates a new HelloHandler.
func NewHelloHandler() *HelloHandler {
	return &HelloHandler{}
}

// Get returns a greeting and a short description of the endpoint.
func (h *HelloHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Hello",
		"features": []string{
			"Maps HTTP methods to handler functions (GET, POST, PUT, PATCH, DELETE)",
			"Demonstrates request validation and error reporting",
			"Is wired into the route table like any other resource",
		},
	})
}

// Post validates a name field and returns a personalized greeting.
func (h *HelloHandler) Post(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if payload.Name == "" {
		respondError(w, apperr.NewValidation("name", "is required"))
		return
	}
	if len(payload.Name) > maxHelloNameLength {
		respondError(w, apperr.NewValidation("name", "must be at most 10 characters"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Hello " + payload.Name})
}

// Put echoes the method name; the endpoint stores nothing.
func (h *HelloHandler) Put(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"method": "PUT"})
}

// Patch echoes the method name; the endpoint stores nothing.
func (h *HelloHandler) Patch(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"method": "PATCH"})
}

// Delete echoes the method name; the endpoint stores nothing.
func (h *HelloHandler) Delete(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"method": "DELETE"})
}
