package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventService_RecordAndRecent(t *testing.T) {
	svc := NewEventService(newTestDB(t))

	userID := "u1"
	require.NoError(t, svc.RecordEvent("user.register", "info", "New account registered", &userID))
	require.NoError(t, svc.RecordEvent("system.alert.cpu", "warn", "High CPU", nil))

	events, err := svc.GetRecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	limited, err := svc.GetRecentEvents(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestEventService_PruneOlderThan(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)

	require.NoError(t, svc.RecordEvent("user.login", "info", "fresh", nil))
	require.NoError(t, svc.RecordEvent("user.login", "info", "stale", nil))

	_, err := db.Exec("UPDATE events SET created_at = datetime('now', '-60 days') WHERE message = 'stale'")
	require.NoError(t, err)

	removed, err := svc.PruneOlderThan(time.Now().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	events, err := svc.GetRecentEvents(10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "fresh", events[0].Message)
}
