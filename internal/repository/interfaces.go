package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourusername/playoff-odds/internal/models"
)

// RatingRepository defines the interface for per-season rating storage
type RatingRepository interface {
	// SaveRatings replaces every stored rating of a season
	SaveRatings(ctx context.Context, season int, ratings models.Ratings) error
	// GetRatings returns models.ErrNotFound when the season has no ratings
	GetRatings(ctx context.Context, season int) (models.Ratings, error)
}

// SimulationRepository defines the interface for simulation run storage
type SimulationRepository interface {
	SaveRun(ctx context.Context, run *models.SimulationRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SimulationRun, error)
	ListRecent(ctx context.Context, limit int) ([]*models.SimulationRun, error)
}
