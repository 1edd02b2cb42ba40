package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/playoff-odds/internal/database"
	"github.com/yourusername/playoff-odds/internal/metrics"
	"github.com/yourusername/playoff-odds/internal/models"
)

// PostgresRatingRepository implements RatingRepository for PostgreSQL
type PostgresRatingRepository struct {
	db *database.DB
}

// NewPostgresRatingRepository creates a new rating repository
func NewPostgresRatingRepository(db *database.DB) RatingRepository {
	return &PostgresRatingRepository{db: db}
}

// SaveRatings replaces the season's ratings in a single transaction
func (r *PostgresRatingRepository) SaveRatings(ctx context.Context, season int, ratings models.Ratings) (err error) {
	defer func() { metrics.RecordStorageOperation(DriverPostgres, "save_ratings", err) }()

	now := time.Now().UTC()
	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM team_ratings WHERE season = $1`, season); err != nil {
			return fmt.Errorf("failed to clear ratings: %w", err)
		}

		batch := &pgx.Batch{}
		for _, row := range ratings.Sorted() {
			batch.Queue(
				`INSERT INTO team_ratings (season, team, rating, updated_at) VALUES ($1, $2, $3, $4)`,
				season, row.Team, row.Rating, now,
			)
		}
		results := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return fmt.Errorf("failed to insert rating: %w", err)
			}
		}
		return results.Close()
	})
}

// GetRatings retrieves the ratings of a season
func (r *PostgresRatingRepository) GetRatings(ctx context.Context, season int) (ratings models.Ratings, err error) {
	defer func() { metrics.RecordStorageOperation(DriverPostgres, "get_ratings", err) }()

	rows, err := r.db.Pool().Query(ctx, `SELECT team, rating FROM team_ratings WHERE season = $1`, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	ratings = make(models.Ratings)
	for rows.Next() {
		var team string
		var rating float64
		if err := rows.Scan(&team, &rating); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings[team] = rating
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ratings: %w", err)
	}
	if len(ratings) == 0 {
		return nil, fmt.Errorf("%w: ratings for season %d", models.ErrNotFound, season)
	}
	return ratings, nil
}
