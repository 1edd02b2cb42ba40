// Package repository persists ratings and simulation runs.
package repository

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/playoff-odds/internal/database"
	"github.com/yourusername/playoff-odds/internal/models"
)

// Storage drivers
const (
	DriverNone     = "none"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultListLimit caps ListRecent when no positive limit is given
const DefaultListLimit = 20

// Repositories holds all repository implementations
type Repositories struct {
	Ratings     RatingRepository
	Simulations SimulationRepository
}

// NewRepositories creates PostgreSQL-backed repositories. A positive cacheTTL
// puts an in-memory cache in front of rating reads.
func NewRepositories(db *database.DB, cacheTTL time.Duration) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	return &Repositories{
		Ratings:     withCache(NewPostgresRatingRepository(db), cacheTTL),
		Simulations: NewPostgresSimulationRepository(db),
	}, nil
}

// NewSQLiteRepositories creates SQLite-backed repositories
func NewSQLiteRepositories(db *database.SQLiteDB, cacheTTL time.Duration) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}
	return &Repositories{
		Ratings:     withCache(NewSQLiteRatingRepository(db), cacheTTL),
		Simulations: NewSQLiteSimulationRepository(db),
	}, nil
}

func withCache(repo RatingRepository, ttl time.Duration) RatingRepository {
	if ttl <= 0 {
		return repo
	}
	return NewCachedRatingRepository(repo, ttl)
}

// prepareRun assigns an ID and timestamp to new runs and checks required fields
func prepareRun(run *models.SimulationRun) error {
	if run == nil {
		return fmt.Errorf("%w: nil simulation run", models.ErrInvalidParameter)
	}
	if run.Runs < 1 {
		return fmt.Errorf("%w: simulation run has %d runs", models.ErrInvalidParameter, run.Runs)
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	return nil
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
