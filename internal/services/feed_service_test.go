package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statushub/profiles-be/internal/apperr"
	"github.com/statushub/profiles-be/internal/models"
)

func registerTestUser(t *testing.T, svc *UserService, email string) models.User {
	t.Helper()
	user, err := svc.Register(email, "Test User", "pw123456")
	require.NoError(t, err)
	return user
}

func TestCreateFeedItem(t *testing.T) {
	db := newTestDB(t)
	userSvc := NewUserService(db)
	feedSvc := NewFeedService(db)

	owner := registerTestUser(t, userSvc, "alice@example.com")

	item, err := feedSvc.CreateFeedItem(owner.ID, "hello")
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, owner.ID, item.UserID)
	assert.Equal(t, "hello", item.StatusText)
	assert.False(t, item.CreatedAt.IsZero())
}

func TestCreateFeedItem_Validation(t *testing.T) {
	db := newTestDB(t)
	feedSvc := NewFeedService(db)
	owner := registerTestUser(t, NewUserService(db), "alice@example.com")

	_, err := feedSvc.CreateFeedItem(owner.ID, "   ")
	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "statusText")

	_, err = feedSvc.CreateFeedItem(owner.ID, strings.Repeat("x", models.MaxStatusLength+1))
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "statusText")

	_, err = feedSvc.CreateFeedItem(owner.ID, strings.Repeat("x", models.MaxStatusLength))
	assert.NoError(t, err)
}

func TestListFeedItems_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	feedSvc := NewFeedService(db)
	owner := registerTestUser(t, NewUserService(db), "alice@example.com")

	older, err := feedSvc.CreateFeedItem(owner.ID, "first")
	require.NoError(t, err)

	// Push the first item into the past; CURRENT_TIMESTAMP has one-second
	// granularity, so back-to-back inserts would otherwise tie.
	_, err = db.Exec("UPDATE feed_items SET created_at = datetime(created_at, '-1 hour') WHERE id = ?", older.ID)
	require.NoError(t, err)

	newer, err := feedSvc.CreateFeedItem(owner.ID, "second")
	require.NoError(t, err)

	items, err := feedSvc.ListFeedItems()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, newer.ID, items[0].ID)
	assert.Equal(t, older.ID, items[1].ID)
}

func TestUpdateFeedItem_OwnerAndTimestampImmutable(t *testing.T) {
	db := newTestDB(t)
	feedSvc := NewFeedService(db)
	owner := registerTestUser(t, NewUserService(db), "alice@example.com")

	item, err := feedSvc.CreateFeedItem(owner.ID, "before")
	require.NoError(t, err)

	updated, err := feedSvc.UpdateFeedItem(item.ID, "after")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.StatusText)
	assert.Equal(t, item.UserID, updated.UserID)
	assert.Equal(t, item.CreatedAt, updated.CreatedAt)

	_, err = feedSvc.UpdateFeedItem("missing-id", "text")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteFeedItem(t *testing.T) {
	db := newTestDB(t)
	feedSvc := NewFeedService(db)
	owner := registerTestUser(t, NewUserService(db), "alice@example.com")

	item, err := feedSvc.CreateFeedItem(owner.ID, "doomed")
	require.NoError(t, err)

	require.NoError(t, feedSvc.DeleteFeedItem(item.ID))

	_, err = feedSvc.GetFeedItemByID(item.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assert.ErrorIs(t, feedSvc.DeleteFeedItem(item.ID), apperr.ErrNotFound)
}
