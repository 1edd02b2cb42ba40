package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/playoff-odds/internal/database"
	"github.com/yourusername/playoff-odds/internal/metrics"
	"github.com/yourusername/playoff-odds/internal/models"
)

const postgresRunColumns = `id, season, runs, random_seed, home_field_advantage, workers, champion, created_at, odds`

// PostgresSimulationRepository implements SimulationRepository for PostgreSQL
type PostgresSimulationRepository struct {
	db *database.DB
}

// NewPostgresSimulationRepository creates a new simulation run repository
func NewPostgresSimulationRepository(db *database.DB) SimulationRepository {
	return &PostgresSimulationRepository{db: db}
}

// SaveRun inserts a simulation run
func (r *PostgresSimulationRepository) SaveRun(ctx context.Context, run *models.SimulationRun) (err error) {
	defer func() { metrics.RecordStorageOperation(DriverPostgres, "save_run", err) }()

	if err := prepareRun(run); err != nil {
		return err
	}
	odds, err := json.Marshal(run.Odds)
	if err != nil {
		return fmt.Errorf("failed to encode odds: %w", err)
	}

	query := `
		INSERT INTO simulation_runs (` + postgresRunColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.Pool().Exec(ctx, query,
		run.ID, run.Season, run.Runs, run.RandomSeed, run.HomeFieldAdvantage,
		run.Workers, run.Champion, run.CreatedAt, odds,
	)
	if err != nil {
		return fmt.Errorf("failed to save simulation run: %w", err)
	}
	return nil
}

// GetByID retrieves a simulation run by ID
func (r *PostgresSimulationRepository) GetByID(ctx context.Context, id uuid.UUID) (run *models.SimulationRun, err error) {
	defer func() { metrics.RecordStorageOperation(DriverPostgres, "get_run", err) }()

	row := r.db.Pool().QueryRow(ctx, `SELECT `+postgresRunColumns+` FROM simulation_runs WHERE id = $1`, id)
	run, err = scanPostgresRun(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: simulation run %s", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get simulation run: %w", err)
	}
	return run, nil
}

// ListRecent retrieves the newest runs first
func (r *PostgresSimulationRepository) ListRecent(ctx context.Context, limit int) (runs []*models.SimulationRun, err error) {
	defer func() { metrics.RecordStorageOperation(DriverPostgres, "list_runs", err) }()

	query := `SELECT ` + postgresRunColumns + ` FROM simulation_runs ORDER BY created_at DESC, id LIMIT $1`
	rows, err := r.db.Pool().Query(ctx, query, normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list simulation runs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		run, err := scanPostgresRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan simulation run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanPostgresRun(row pgx.Row) (*models.SimulationRun, error) {
	run := &models.SimulationRun{}
	var odds []byte
	err := row.Scan(
		&run.ID, &run.Season, &run.Runs, &run.RandomSeed, &run.HomeFieldAdvantage,
		&run.Workers, &run.Champion, &run.CreatedAt, &odds,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(odds, &run.Odds); err != nil {
		return nil, fmt.Errorf("failed to decode odds: %w", err)
	}
	return run, nil
}
