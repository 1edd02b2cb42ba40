package database

import (
	"context"
	"testing"
)

// SetupTestSQLite opens an in-memory SQLite database closed at test cleanup
func SetupTestSQLite(t testing.TB) *SQLiteDB {
	t.Helper()

	db, err := NewSQLiteDB(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close test database: %v", err)
		}
	})
	return db
}
