package services

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/statushub/profiles-be/internal/database"
)

// newTestDB opens a migrated sqlite database in a per-test temp directory.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}
