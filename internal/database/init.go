package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yourusername/playoff-odds/internal/config"
)

// Initialize creates a PostgreSQL pool and makes sure the schema exists
func Initialize(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	db, err := NewDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitializeSQLite opens the SQLite file, creating its directory if needed
func InitializeSQLite(ctx context.Context, path string) (*SQLiteDB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}
	return NewSQLiteDB(ctx, path)
}
