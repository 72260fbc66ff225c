package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/statushub/profiles-be/internal/models"
)

// EventServiceProvider defines the interface for event services.
type EventServiceProvider interface {
	RecordEvent(eventType, level, message string, userID *string) error
	GetRecentEvents(limit int) ([]models.Event, error)
	PruneOlderThan(cutoff time.Time) (int64, error)
}

// EventService provides business logic for the audit event log.
type EventService struct {
	db *sql.DB
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{db: db}
}

// RecordEvent logs a new event to the database.
func (s *EventService) RecordEvent(eventType, level, message string, userID *string) error {
	event := models.Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Level:   level,
		Message: message,
		UserID:  userID,
	}

	stmt, err := s.db.Prepare("INSERT INTO events (id, type, level, message, user_id) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(event.ID, event.Type, event.Level, event.Message, event.UserID)
	return err
}

// GetRecentEvents retrieves the most recent events from the database.
func (s *EventService) GetRecentEvents(limit int) ([]models.Event, error) {
	rows, err := s.db.Query("SELECT id, type, level, message, user_id, created_at FROM events ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []models.Event{}
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Level, &event.Message, &event.UserID, &event.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// PruneOlderThan deletes events created before the cutoff and returns the
// number of rows removed. The cutoff is formatted to match the UTC
// CURRENT_TIMESTAMP layout the rows are stored with.
func (s *EventService) PruneOlderThan(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM events WHERE created_at < ?", cutoff.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
