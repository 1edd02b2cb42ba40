// Package service wires the schedule source, rating engine, simulator and storage together.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/playoff-odds/internal/datasource"
	"github.com/yourusername/playoff-odds/internal/elo"
	"github.com/yourusername/playoff-odds/internal/logger"
	"github.com/yourusername/playoff-odds/internal/metrics"
	"github.com/yourusername/playoff-odds/internal/models"
	"github.com/yourusername/playoff-odds/internal/repository"
	"github.com/yourusername/playoff-odds/internal/simulation"
)

// ErrStorageDisabled is returned by operations that need a repository when none is configured
var ErrStorageDisabled = errors.New("storage is disabled")

// Options configures a PlayoffService. Repositories may be nil when storage is disabled.
type Options struct {
	Source      datasource.GameSource
	Ratings     repository.RatingRepository
	Runs        repository.SimulationRepository
	StorageName string
	Params      elo.Params
	Seeds       models.SeedTable
	Season      int
	Simulation  simulation.Config
	Logger      *logrus.Logger
}

// RatingsBuild is the result of replaying a season's games
type RatingsBuild struct {
	Season   int
	Source   string
	Games    int
	Ratings  models.Ratings
	Log      []elo.GameLogEntry
	Duration time.Duration
}

// RefreshResult is the result of a full refresh
type RefreshResult struct {
	Build   *RatingsBuild
	Outcome *simulation.Outcome
	Run     *models.SimulationRun
}

// PlayoffService runs the ratings and simulation workflow
type PlayoffService struct {
	source      datasource.GameSource
	ratingsRepo repository.RatingRepository
	runsRepo    repository.SimulationRepository
	storageName string
	params      elo.Params
	seeds       models.SeedTable
	season      int
	simCfg      simulation.Config
	aggregator  *simulation.Aggregator
	simLog      *logger.SimulationLogger
	audit       *logger.AuditLogger
	logger      *logrus.Entry
	now         func() time.Time

	mu          sync.RWMutex
	lastRefresh time.Time
	lastErr     error
}

// NewPlayoffService creates a new playoff service
func NewPlayoffService(opts Options) (*PlayoffService, error) {
	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Seeds.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	storage := opts.StorageName
	if storage == "" {
		storage = repository.DriverNone
	}

	return &PlayoffService{
		source:      opts.Source,
		ratingsRepo: opts.Ratings,
		runsRepo:    opts.Runs,
		storageName: storage,
		params:      opts.Params,
		seeds:       opts.Seeds,
		season:      opts.Season,
		simCfg:      opts.Simulation,
		aggregator:  simulation.NewAggregator(log),
		simLog:      logger.NewSimulationLogger(log),
		audit:       logger.NewAuditLogger(log),
		logger:      log.WithField("component", "playoff_service"),
		now:         time.Now,
	}, nil
}

// BuildRatings fetches the season's completed games and replays them in order.
// Ratings are persisted when a rating repository is configured.
func (s *PlayoffService) BuildRatings(ctx context.Context) (*RatingsBuild, error) {
	if s.source == nil {
		return nil, fmt.Errorf("%w: no schedule source configured", models.ErrInvalidParameter)
	}
	start := s.now()

	games, err := s.source.FetchGames(ctx, s.season)
	if err != nil {
		metrics.RecordRatingBuild("failure", 0)
		return nil, fmt.Errorf("failed to fetch games: %w", err)
	}

	ratings, gameLog, err := elo.ComputeRatings(games, nil, s.params)
	if err != nil {
		metrics.RecordRatingBuild("failure", 0)
		return nil, fmt.Errorf("failed to compute ratings: %w", err)
	}

	build := &RatingsBuild{
		Season:   s.season,
		Source:   s.source.Name(),
		Games:    len(games),
		Ratings:  ratings,
		Log:      gameLog,
		Duration: s.now().Sub(start),
	}
	metrics.RecordRatingBuild("success", build.Games)
	metrics.UpdateTeamRatings(ratings)
	s.simLog.LogRatingsBuilt(s.season, build.Games, len(ratings), build.Source, build.Duration)

	if s.ratingsRepo != nil {
		if err := s.ratingsRepo.SaveRatings(ctx, s.season, ratings); err != nil {
			return nil, fmt.Errorf("failed to persist ratings: %w", err)
		}
		s.audit.LogRatingsPersisted(s.season, len(ratings), s.storageName)
	}
	return build, nil
}

// LoadRatings reads the season's ratings from storage
func (s *PlayoffService) LoadRatings(ctx context.Context) (models.Ratings, error) {
	if s.ratingsRepo == nil {
		return nil, ErrStorageDisabled
	}
	return s.ratingsRepo.GetRatings(ctx, s.season)
}

// Simulate runs the configured Monte Carlo aggregation over ratings.
// The run is persisted when a simulation repository is configured.
func (s *PlayoffService) Simulate(ctx context.Context, ratings models.Ratings) (*simulation.Outcome, *models.SimulationRun, error) {
	outcome, err := s.aggregator.Run(ctx, s.seeds, ratings, s.simCfg)
	if err != nil {
		return nil, nil, err
	}

	run := &models.SimulationRun{
		ID:                 uuid.New(),
		Season:             s.season,
		Runs:               outcome.Runs,
		RandomSeed:         outcome.Seed,
		HomeFieldAdvantage: outcome.HFA,
		Workers:            outcome.Workers,
		CreatedAt:          s.now().UTC(),
		Odds:               outcome.Odds,
	}
	if fav, ok := outcome.Favourite(); ok {
		run.Champion = fav.Team
	}

	if s.runsRepo != nil {
		if err := s.runsRepo.SaveRun(ctx, run); err != nil {
			return outcome, nil, fmt.Errorf("failed to persist simulation run: %w", err)
		}
		s.audit.LogRunPersisted(run.ID.String(), run.Season, run.Runs, run.RandomSeed, s.storageName, run.CreatedAt)
	}
	return outcome, run, nil
}

// Refresh rebuilds ratings from the schedule and re-simulates the playoffs
func (s *PlayoffService) Refresh(ctx context.Context) (*RefreshResult, error) {
	build, err := s.BuildRatings(ctx)
	if err != nil {
		s.recordRefresh(err)
		return nil, err
	}
	outcome, run, err := s.Simulate(ctx, build.Ratings)
	if err != nil {
		s.recordRefresh(err)
		return nil, err
	}
	s.recordRefresh(nil)
	metrics.UpdateLastRefresh(float64(s.now().Unix()))

	s.logger.WithFields(logrus.Fields{
		"season":   s.season,
		"games":    build.Games,
		"runs":     outcome.Runs,
		"champion": run.Champion,
	}).Info("Refresh completed")
	return &RefreshResult{Build: build, Outcome: outcome, Run: run}, nil
}

// LastRefresh returns when the last successful refresh finished and the
// error of the most recent attempt, if it failed.
func (s *PlayoffService) LastRefresh() (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh, s.lastErr
}

func (s *PlayoffService) recordRefresh(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	if err == nil {
		s.lastRefresh = s.now()
	}
}

// History lists the most recent persisted runs
func (s *PlayoffService) History(ctx context.Context, limit int) ([]*models.SimulationRun, error) {
	if s.runsRepo == nil {
		return nil, ErrStorageDisabled
	}
	return s.runsRepo.ListRecent(ctx, limit)
}

// GetRun retrieves a persisted run
func (s *PlayoffService) GetRun(ctx context.Context, id uuid.UUID) (*models.SimulationRun, error) {
	if s.runsRepo == nil {
		return nil, ErrStorageDisabled
	}
	return s.runsRepo.GetByID(ctx, id)
}
