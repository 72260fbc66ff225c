package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statushub/profiles-be/internal/apperr"
	"github.com/statushub/profiles-be/internal/auth"
	"github.com/statushub/profiles-be/internal/models"
	ws "github.com/statushub/profiles-be/internal/websocket"
)

type fakeFeedService struct {
	item    models.FeedItem
	deleted []string
}

func (f *fakeFeedService) CreateFeedItem(ownerID, statusText string) (models.FeedItem, error) {
	return models.FeedItem{ID: "f1", UserID: ownerID, StatusText: statusText, CreatedAt: time.Now()}, nil
}

func (f *fakeFeedService) ListFeedItems() ([]models.FeedItem, error) {
	return []models.FeedItem{f.item}, nil
}

func (f *fakeFeedService) GetFeedItemByID(id string) (models.FeedItem, error) {
	if id != f.item.ID {
		return models.FeedItem{}, apperr.ErrNotFound
	}
	return f.item, nil
}

func (f *fakeFeedService) UpdateFeedItem(id, statusText string) (models.FeedItem, error) {
	f.item.StatusText = statusText
	return f.item, nil
}

func (f *fakeFeedService) DeleteFeedItem(id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

// failingEventService rejects every write; the audit log is best-effort and
// must never fail the request it annotates.
type failingEventService struct{}

func (failingEventService) RecordEvent(eventType, level, message string, userID *string) error {
	return errors.New("event store unavailable")
}

func (failingEventService) GetRecentEvents(limit int) ([]models.Event, error) {
	return nil, errors.New("event store unavailable")
}

func (failingEventService) PruneOlderThan(cutoff time.Time) (int64, error) {
	return 0, errors.New("event store unavailable")
}

func newFeedTestRouter(feedSvc *fakeFeedService, requesterID string) http.Handler {
	hub := ws.NewHub()
	go hub.Run()

	h := NewFeedHandler(feedSvc, failingEventService{}, hub)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), auth.UserClaimsKey, &auth.Claims{UserID: requesterID})
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Post("/feed", h.Create)
	r.Delete("/feed/{id}", h.Delete)
	return r
}

func TestFeedCreate_SucceedsWhenEventRecordingFails(t *testing.T) {
	feedSvc := &fakeFeedService{}
	router := newFeedTestRouter(feedSvc, "owner-1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/feed", strings.NewReader(`{"statusText":"hello"}`)))

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "owner-1", body["userId"])
}

func TestFeedDelete_NonOwnerDeniedBeforeMutation(t *testing.T) {
	feedSvc := &fakeFeedService{item: models.FeedItem{ID: "f1", UserID: "owner-1"}}
	router := newFeedTestRouter(feedSvc, "intruder")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/feed/f1", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, feedSvc.deleted)
}

func TestFeedDelete_OwnerAllowed(t *testing.T) {
	feedSvc := &fakeFeedService{item: models.FeedItem{ID: "f1", UserID: "owner-1"}}
	router := newFeedTestRouter(feedSvc, "owner-1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/feed/f1", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"f1"}, feedSvc.deleted)
}
