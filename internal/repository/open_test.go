package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/playoff-odds/internal/config"
	"github.com/yourusername/playoff-odds/internal/models"
)

func TestOpenWithoutStorage(t *testing.T) {
	store, err := Open(context.Background(), config.StorageConfig{Driver: DriverNone})
	require.NoError(t, err)
	defer store.Close()

	assert.False(t, store.Enabled())
	assert.Nil(t, store.RatingRepository())
	assert.Nil(t, store.SimulationRepository())
	assert.NoError(t, store.Ping(context.Background()))
}

func TestOpenSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "odds.db")

	store, err := Open(ctx, config.StorageConfig{Driver: DriverSQLite, SQLitePath: path, CacheTTLSeconds: 60})
	require.NoError(t, err)
	defer store.Close()

	assert.True(t, store.Enabled())
	assert.Equal(t, DriverSQLite, store.Driver)
	assert.IsType(t, &CachedRatingRepository{}, store.RatingRepository())
	require.NoError(t, store.Ping(ctx))

	require.NoError(t, store.RatingRepository().SaveRatings(ctx, 2025, models.Ratings{"SEA": 1610, "LA": 1590}))
	got, err := store.RatingRepository().GetRatings(ctx, 2025)
	require.NoError(t, err)
	assert.InDelta(t, 1610, got["SEA"], 1e-9)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.StorageConfig{Driver: "mongo"})
	assert.Error(t, err)
}
