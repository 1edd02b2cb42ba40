package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/playoff-odds/internal/database"
	"github.com/yourusername/playoff-odds/internal/models"
)

func newSQLiteRepos(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewSQLiteRepositories(database.SetupTestSQLite(t), 0)
	require.NoError(t, err)
	return repos
}

func sampleRun(champion string, createdAt time.Time) *models.SimulationRun {
	return &models.SimulationRun{
		Season:             2025,
		Runs:               10000,
		RandomSeed:         2025,
		HomeFieldAdvantage: 55,
		Workers:            1,
		Champion:           champion,
		CreatedAt:          createdAt,
		Odds: []models.TeamOdds{
			{Team: champion, Conference: models.ConferenceNFC, Seed: 1, Rating: 1650.5, Divisional: 1, ConferenceChampionship: 0.61, Final: 0.38, Champion: 0.2134, ChampionCI95: 0.008},
			{Team: "DEN", Conference: models.ConferenceAFC, Seed: 1, Rating: 1620, Divisional: 1, ConferenceChampionship: 0.55, Final: 0.31, Champion: 0.1702, ChampionCI95: 0.0074},
		},
	}
}

func TestSQLiteRatingRepositorySaveAndGet(t *testing.T) {
	repos := newSQLiteRepos(t)
	ctx := context.Background()

	ratings := models.Ratings{"SEA": 1650.25, "DEN": 1620.5, "GB": 1480}
	require.NoError(t, repos.Ratings.SaveRatings(ctx, 2025, ratings))

	got, err := repos.Ratings.GetRatings(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, ratings, got)

	// saving again replaces the season rather than merging
	require.NoError(t, repos.Ratings.SaveRatings(ctx, 2025, models.Ratings{"SEA": 1700}))
	got, err = repos.Ratings.GetRatings(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, models.Ratings{"SEA": 1700}, got)

	_, err = repos.Ratings.GetRatings(ctx, 2024)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSQLiteSimulationRepositoryRoundTrip(t *testing.T) {
	repos := newSQLiteRepos(t)
	ctx := context.Background()

	created := time.Date(2026, time.January, 9, 18, 30, 0, 123000000, time.UTC)
	run := sampleRun("SEA", created)
	require.NoError(t, repos.Simulations.SaveRun(ctx, run))
	require.NotEqual(t, uuid.Nil, run.ID)

	got, err := repos.Simulations.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "SEA", got.Champion)
	assert.True(t, created.Equal(got.CreatedAt))
	assert.Equal(t, run.Odds, got.Odds)

	_, err = repos.Simulations.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestSQLiteSimulationRepositoryListRecent(t *testing.T) {
	repos := newSQLiteRepos(t)
	ctx := context.Background()

	base := time.Date(2026, time.January, 9, 12, 0, 0, 0, time.UTC)
	for i, champ := range []string{"SEA", "DEN", "PHI"} {
		require.NoError(t, repos.Simulations.SaveRun(ctx, sampleRun(champ, base.Add(time.Duration(i)*time.Hour))))
	}

	runs, err := repos.Simulations.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "PHI", runs[0].Champion)
	assert.Equal(t, "DEN", runs[1].Champion)

	runs, err = repos.Simulations.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestSaveRunRejectsInvalidRun(t *testing.T) {
	repos := newSQLiteRepos(t)

	err := repos.Simulations.SaveRun(context.Background(), &models.SimulationRun{Runs: 0})
	assert.ErrorIs(t, err, models.ErrInvalidParameter)
	assert.ErrorIs(t, repos.Simulations.SaveRun(context.Background(), nil), models.ErrInvalidParameter)
}

func TestNewRepositoriesRequiresDatabase(t *testing.T) {
	_, err := NewRepositories(nil, 0)
	assert.Error(t, err)
	_, err = NewSQLiteRepositories(nil, 0)
	assert.Error(t, err)

	repos, err := NewSQLiteRepositories(database.SetupTestSQLite(t), time.Minute)
	require.NoError(t, err)
	assert.IsType(t, &CachedRatingRepository{}, repos.Ratings)
}

// countingRatings counts reads so cache hits can be observed
type countingRatings struct {
	data  map[int]models.Ratings
	reads int
	fail  error
}

func (c *countingRatings) SaveRatings(_ context.Context, season int, ratings models.Ratings) error {
	if c.fail != nil {
		return c.fail
	}
	c.data[season] = ratings.Clone()
	return nil
}

func (c *countingRatings) GetRatings(_ context.Context, season int) (models.Ratings, error) {
	c.reads++
	r, ok := c.data[season]
	if !ok {
		return nil, models.ErrNotFound
	}
	return r.Clone(), nil
}

func TestCachedRatingRepository(t *testing.T) {
	ctx := context.Background()
	inner := &countingRatings{data: map[int]models.Ratings{2025: {"SEA": 1600}}}
	cached := NewCachedRatingRepository(inner, time.Minute)

	first, err := cached.GetRatings(ctx, 2025)
	require.NoError(t, err)
	second, err := cached.GetRatings(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.reads)

	// callers get copies
	first["SEA"] = 0
	third, err := cached.GetRatings(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1600.0, third["SEA"])

	require.NoError(t, cached.SaveRatings(ctx, 2025, models.Ratings{"SEA": 1700}))
	got, err := cached.GetRatings(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1700.0, got["SEA"])
	assert.Equal(t, 1, inner.reads)

	cached.Invalidate(2025)
	_, err = cached.GetRatings(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.reads)

	_, err = cached.GetRatings(ctx, 2030)
	assert.ErrorIs(t, err, models.ErrNotFound)

	inner.fail = errors.New("write failed")
	assert.Error(t, cached.SaveRatings(ctx, 2025, models.Ratings{"SEA": 1}))
	got, err = cached.GetRatings(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1700.0, got["SEA"])
}
