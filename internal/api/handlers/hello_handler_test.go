package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestHelloGet(t *testing.T) {
	t.Parallel()

	h := NewHelloHandler()
	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/hello", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Hello", body["message"])
	assert.NotEmpty(t, body["features"])
}

func TestHelloPost(t *testing.T) {
	t.Parallel()

	h := NewHelloHandler()

	rec := httptest.NewRecorder()
	h.Post(rec, httptest.NewRequest(http.MethodPost, "/hello", strings.NewReader(`{"name":"Alice"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello Alice", decodeBody(t, rec)["message"])

	// Missing name.
	rec = httptest.NewRecorder()
	h.Post(rec, httptest.NewRequest(http.MethodPost, "/hello", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Name over the 10-character bound.
	rec = httptest.NewRecorder()
	h.Post(rec, httptest.NewRequest(http.MethodPost, "/hello", strings.NewReader(`{"name":"Bartholomew"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	fields := body["fields"].(map[string]interface{})
	assert.Contains(t, fields, "name")
}

func TestHelloMethodEchoes(t *testing.T) {
	t.Parallel()

	h := NewHelloHandler()

	rec := httptest.NewRecorder()
	h.Put(rec, httptest.NewRequest(http.MethodPut, "/hello", nil))
	assert.Equal(t, "PUT", decodeBody(t, rec)["method"])

	rec = httptest.NewRecorder()
	h.Patch(rec, httptest.NewRequest(http.MethodPatch, "/hello", nil))
	assert.Equal(t, "PATCH", decodeBody(t, rec)["method"])

	rec = httptest.NewRecorder()
	h.Delete(rec, httptest.NewRequest(http.MethodDelete, "/hello", nil))
	assert.Equal(t, "DELETE", decodeBody(t, rec)["method"])
}
