package services

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/statushub/profiles-be/internal/apperr"
	"github.com/statushub/profiles-be/internal/models"
)

// FeedServiceProvider defines the interface for feed-item services.
type FeedServiceProvider interface {
	CreateFeedItem(ownerID, statusText string) (models.FeedItem, error)
	ListFeedItems() ([]models.FeedItem, error)
	GetFeedItemByID(id string) (models.FeedItem, error)
	UpdateFeedItem(id, statusText string) (models.FeedItem, error)
	DeleteFeedItem(id string) error
}

// FeedService provides business logic for status-feed management. Ownership
// checks live in the façade; this layer only persists. The owner reference
// is set once at creation and never accepted from request input.
type FeedService struct {
	db *sql.DB
}

// NewFeedService creates a new FeedService.
func NewFeedService(db *sql.DB) *FeedService {
	return &FeedService{db: db}
}

func validateStatusText(statusText string) error {
	if strings.TrimSpace(statusText) == "" {
		return apperr.NewValidation("statusText", "is required")
	}
	if len(statusText) > models.MaxStatusLength {
		return apperr.NewValidation("statusText", "must be at most 255 characters")
	}
	return nil
}

// CreateFeedItem persists a new status post owned by ownerID.
func (s *FeedService) CreateFeedItem(ownerID, statusText string) (models.FeedItem, error) {
	if err := validateStatusText(statusText); err != nil {
		return models.FeedItem{}, err
	}

	item := models.FeedItem{
		ID:         uuid.New().String(),
		UserID:     ownerID,
		StatusText: statusText,
	}

	stmt, err := s.db.Prepare("INSERT INTO feed_items(id, user_id, status_text) VALUES(?, ?, ?)")
	if err != nil {
		return models.FeedItem{}, err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(item.ID, item.UserID, item.StatusText); err != nil {
		return models.FeedItem{}, err
	}

	return s.GetFeedItemByID(item.ID)
}

// ListFeedItems returns all feed items, newest first. Pagination is left to
// the transport layer.
func (s *FeedService) ListFeedItems() ([]models.FeedItem, error) {
	rows, err := s.db.Query("SELECT id, user_id, status_text, created_at FROM feed_items ORDER BY created_at DESC, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.FeedItem{}
	for rows.Next() {
		var item models.FeedItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.StatusText, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetFeedItemByID retrieves a single feed item.
func (s *FeedService) GetFeedItemByID(id string) (models.FeedItem, error) {
	row := s.db.QueryRow("SELECT id, user_id, status_text, created_at FROM feed_items WHERE id = ?", id)

	var item models.FeedItem
	err := row.Scan(&item.ID, &item.UserID, &item.StatusText, &item.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.FeedItem{}, apperr.ErrNotFound
		}
		return models.FeedItem{}, err
	}
	return item, nil
}

// UpdateFeedItem replaces the status text of an existing item. Owner and
// creation timestamp are immutable.
func (s *FeedService) UpdateFeedItem(id, statusText string) (models.FeedItem, error) {
	if err := validateStatusText(statusText); err != nil {
		return models.FeedItem{}, err
	}

	res, err := s.db.Exec("UPDATE feed_items SET status_text = ? WHERE id = ?", statusText, id)
	if err != nil {
		return models.FeedItem{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.FeedItem{}, apperr.ErrNotFound
	}
	return s.GetFeedItemByID(id)
}

// DeleteFeedItem removes a feed item.
func (s *FeedService) DeleteFeedItem(id string) error {
	res, err := s.db.Exec("DELETE FROM feed_items WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
