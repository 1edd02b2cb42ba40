package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/playoff-odds/internal/database"
	"github.com/yourusername/playoff-odds/internal/metrics"
	"github.com/yourusername/playoff-odds/internal/models"
)

const sqliteRunColumns = `id, season, runs, random_seed, home_field_advantage, workers, champion, created_at, odds`

// SQLiteSimulationRepository implements SimulationRepository for SQLite
type SQLiteSimulationRepository struct {
	db *database.SQLiteDB
}

// NewSQLiteSimulationRepository creates a new simulation run repository
func NewSQLiteSimulationRepository(db *database.SQLiteDB) SimulationRepository {
	return &SQLiteSimulationRepository{db: db}
}

// SaveRun inserts a simulation run
func (r *SQLiteSimulationRepository) SaveRun(ctx context.Context, run *models.SimulationRun) (err error) {
	defer func() { metrics.RecordStorageOperation(DriverSQLite, "save_run", err) }()

	if err := prepareRun(run); err != nil {
		return err
	}
	odds, err := json.Marshal(run.Odds)
	if err != nil {
		return fmt.Errorf("failed to encode odds: %w", err)
	}

	_, err = r.db.DB().ExecContext(ctx,
		`INSERT INTO simulation_runs (`+sqliteRunColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.Season, run.Runs, run.RandomSeed, run.HomeFieldAdvantage,
		run.Workers, run.Champion, run.CreatedAt.UTC().Format(sqliteTimeLayout), string(odds),
	)
	if err != nil {
		return fmt.Errorf("failed to save simulation run: %w", err)
	}
	return nil
}

// GetByID retrieves a simulation run by ID
func (r *SQLiteSimulationRepository) GetByID(ctx context.Context, id uuid.UUID) (run *models.SimulationRun, err error) {
	defer func() { metrics.RecordStorageOperation(DriverSQLite, "get_run", err) }()

	row := r.db.DB().QueryRowContext(ctx, `SELECT `+sqliteRunColumns+` FROM simulation_runs WHERE id = ?`, id.String())
	run, err = scanSQLiteRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: simulation run %s", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get simulation run: %w", err)
	}
	return run, nil
}

// ListRecent retrieves the newest runs first
func (r *SQLiteSimulationRepository) ListRecent(ctx context.Context, limit int) (runs []*models.SimulationRun, err error) {
	defer func() { metrics.RecordStorageOperation(DriverSQLite, "list_runs", err) }()

	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT `+sqliteRunColumns+` FROM simulation_runs ORDER BY created_at DESC, id LIMIT ?`, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list simulation runs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		run, err := scanSQLiteRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan simulation run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteRun(row rowScanner) (*models.SimulationRun, error) {
	run := &models.SimulationRun{}
	var id, createdAt, odds string
	err := row.Scan(
		&id, &run.Season, &run.Runs, &run.RandomSeed, &run.HomeFieldAdvantage,
		&run.Workers, &run.Champion, &createdAt, &odds,
	)
	if err != nil {
		return nil, err
	}
	if run.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("bad run id %q: %w", id, err)
	}
	if run.CreatedAt, err = parseSQLiteTime(createdAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(odds), &run.Odds); err != nil {
		return nil, fmt.Errorf("failed to decode odds: %w", err)
	}
	return run, nil
}

func parseSQLiteTime(raw string) (time.Time, error) {
	for _, layout := range []string{sqliteTimeLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("bad timestamp %q", raw)
}
