package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yourusername/playoff-odds/internal/database"
	"github.com/yourusername/playoff-odds/internal/metrics"
	"github.com/yourusername/playoff-odds/internal/models"
)

// sqliteTimeLayout is fixed width so stored timestamps sort lexically
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRatingRepository implements RatingRepository for SQLite
type SQLiteRatingRepository struct {
	db *database.SQLiteDB
}

// NewSQLiteRatingRepository creates a new rating repository
func NewSQLiteRatingRepository(db *database.SQLiteDB) RatingRepository {
	return &SQLiteRatingRepository{db: db}
}

// SaveRatings replaces the season's ratings in a single transaction
func (r *SQLiteRatingRepository) SaveRatings(ctx context.Context, season int, ratings models.Ratings) (err error) {
	defer func() { metrics.RecordStorageOperation(DriverSQLite, "save_ratings", err) }()

	now := time.Now().UTC().Format(sqliteTimeLayout)
	return r.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM team_ratings WHERE season = ?`, season); err != nil {
			return fmt.Errorf("failed to clear ratings: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO team_ratings (season, team, rating, updated_at) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, row := range ratings.Sorted() {
			if _, err := stmt.ExecContext(ctx, season, row.Team, row.Rating, now); err != nil {
				return fmt.Errorf("failed to insert rating for %s: %w", row.Team, err)
			}
		}
		return nil
	})
}

// GetRatings retrieves the ratings of a season
func (r *SQLiteRatingRepository) GetRatings(ctx context.Context, season int) (ratings models.Ratings, err error) {
	defer func() { metrics.RecordStorageOperation(DriverSQLite, "get_ratings", err) }()

	rows, err := r.db.DB().QueryContext(ctx, `SELECT team, rating FROM team_ratings WHERE season = ?`, season)
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
