package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/playoff-odds/internal/config"
	"github.com/yourusername/playoff-odds/internal/database"
)

// Store holds the repositories of the configured driver and the connection behind them.
// Repos is nil when the driver is "none".
type Store struct {
	Driver string
	Repos  *Repositories

	ping  func(ctx context.Context) error
	close func()
}

// Open connects to the configured storage driver and builds its repositories
func Open(ctx context.Context, cfg config.StorageConfig) (*Store, error) {
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second

	switch cfg.Driver {
	case "", DriverNone:
		return &Store{Driver: DriverNone}, nil

	case DriverSQLite:
		db, err := database.InitializeSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		repos, err := NewSQLiteRepositories(db, ttl)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		return &Store{
			Driver: DriverSQLite,
			Repos:  repos,
			ping:   db.Ping,
			close:  func() { _ = db.Close() },
		}, nil

	case DriverPostgres:
		db, err := database.Initialize(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		repos, err := NewRepositories(db, ttl)
		if err != nil {
			db.Close()
			return nil, err
		}
		return &Store{
			Driver: DriverPostgres,
			Repos:  repos,
			ping:   db.Ping,
			close:  db.Close,
		}, nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
}

// Enabled reports whether a storage backend is configured
func (s *Store) Enabled() bool {
	return s.Repos != nil
}

// RatingRepository returns the rating repository, or nil without storage
func (s *Store) RatingRepository() RatingRepository {
	if s.Repos == nil {
		return nil
	}
	return s.Repos.Ratings
}

// SimulationRepository returns the simulation repository, or nil without storage
func (s *Store) SimulationRepository() SimulationRepository {
	if s.Repos == nil {
		return nil
	}
	return s.Repos.Simulations
}

// Ping checks the connection; it always succeeds without storage
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close releases the connection
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}
