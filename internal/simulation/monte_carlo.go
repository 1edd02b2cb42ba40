// Package simulation runs many bracket simulations and aggregates the outcomes.
package simulation

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/playoff-odds/internal/bracket"
	"github.com/yourusername/playoff-odds/internal/logger"
	"github.com/yourusername/playoff-odds/internal/metrics"
	"github.com/yourusername/playoff-odds/internal/models"
)

// DefaultProgressInterval is how many runs pass between progress log lines
const DefaultProgressInterval = 1000

// Aggregation modes reported in metrics
const (
	ModeSequential = "sequential"
	ModeSubstream  = "substream"
	ModeTrace      = "trace"
)

// Config configures a Monte Carlo aggregation
type Config struct {
	Runs             int
	Seed             *int64
	HFA              float64
	Workers          int
	ProgressInterval int
}

// Outcome is the result of an aggregation
type Outcome struct {
	Odds      []models.TeamOdds `json:"odds"`
	Tally     *Tally            `json:"-"`
	Runs      int               `json:"runs"`
	Seed      int64             `json:"random_seed"`
	SeedDrawn bool              `json:"seed_drawn"`
	Workers   int               `json:"workers"`
	HFA       float64           `json:"home_field_advantage"`
	Mode      string            `json:"mode"`
	Duration  time.Duration     `json:"duration"`
	// Trace is the single tournament played when Runs == 1
	Trace *bracket.Result `json:"trace,omitempty"`
}

// Favourite returns the team with the highest championship rate
func (o *Outcome) Favourite() (models.TeamOdds, bool) {
	if len(o.Odds) == 0 {
		return models.TeamOdds{}, false
	}
	return o.Odds[0], true
}

// Aggregator drives repeated bracket simulations
type Aggregator struct {
	log *logger.SimulationLogger
	now func() time.Time
}

// NewAggregator creates an aggregator logging through log
func NewAggregator(log *logrus.Logger) *Aggregator {
	return &Aggregator{
		log: logger.NewSimulationLogger(log),
		now: time.Now,
	}
}

// Run simulates cfg.Runs tournaments. With Workers <= 1 a single random stream
// drives every run in order. With Workers > 1 each worker owns a stream seeded
// from a master stream, so results depend on (seed, runs, workers).
func (a *Aggregator) Run(ctx context.Context, seeds models.SeedTable, ratings models.Ratings, cfg Config) (*Outcome, error) {
	if cfg.Runs < 1 {
		return nil, fmt.Errorf("%w: runs must be at least 1, got %d", models.ErrInvalidParameter, cfg.Runs)
	}
	if err := seeds.Validate(); err != nil {
		return nil, err
	}
	for _, team := range seeds.Teams() {
		if _, err := ratings.Get(team); err != nil {
			return nil, err
		}
	}
	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = DefaultProgressInterval
	}

	seed, drawn := a.resolveSeed(cfg.Seed)
	workers := cfg.Workers
	if workers < 1 || cfg.Runs == 1 {
		workers = 1
	}
	if workers > cfg.Runs {
		workers = cfg.Runs
	}

	mode := ModeSequential
	switch {
	case cfg.Runs == 1:
		mode = ModeTrace
	case workers > 1:
		mode = ModeSubstream
	}

	a.log.LogAggregationStarted(cfg.Runs, seed, drawn, workers, cfg.HFA)
	start := a.now()

	var (
		tally *Tally
		trace *bracket.Result
		err   error
	)
	if workers == 1 {
		tally, trace, err = a.runSequential(ctx, seeds, ratings, cfg, seed)
	} else {
		tally, err = a.runSubstreams(ctx, seeds, ratings, cfg, seed, workers)
	}
	duration := a.now().Sub(start)
	if err != nil {
		status := "failure"
		if ctx.Err() != nil {
			status = "cancelled"
		}
		metrics.RecordSimulationRun(mode, status, 0, duration.Seconds())
		return nil, err
	}

	outcome := &Outcome{
		Odds:      tally.Odds(seeds, ratings),
		Tally:     tally,
		Runs:      cfg.Runs,
		Seed:      seed,
		SeedDrawn: drawn,
		Workers:   workers,
		HFA:       cfg.HFA,
		Mode:      mode,
		Duration:  duration,
		Trace:     trace,
	}

	metrics.RecordSimulationRun(mode, "success", cfg.Runs, duration.Seconds())
	for _, o := range outcome.Odds {
		metrics.UpdateChampionOdds(o.Team, string(o.Conference), o.Champion)
	}

	if fav, ok := outcome.Favourite(); ok {
		a.log.LogAggregationCompleted(cfg.Runs, seed, duration, fav.Team, fav.Champion)
	}
	if trace != nil {
		a.log.LogTraceEmitted(seed, trace.Champion)
	}
	return outcome, nil
}

func (a *Aggregator) resolveSeed(seed *int64) (int64, bool) {
	if seed != nil {
		return *seed, false
	}
	return a.now().UnixNano(), true
}

func (a *Aggregator) runSequential(ctx context.Context, seeds models.SeedTable, ratings models.Ratings, cfg Config, seed int64) (*Tally, *bracket.Result, error) {
	rng := rand.New(rand.NewSource(seed))
	tally := NewTally()
	var trace *bracket.Result

	for i := 0; i < cfg.Runs; i++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		result, err := bracket.Simulate(seeds, ratings, rng.Float64, cfg.HFA)
		if err != nil {
			return nil, nil, err
		}
		tally.Record(result)
		if cfg.Runs == 1 {
			trace = result
		}
		if cfg.Runs > 1 && (i+1)%cfg.ProgressInterval == 0 {
			a.log.LogProgress(i+1, cfg.Runs, 0)
		}
	}
	return tally, trace, nil
}

func (a *Aggregator) runSubstreams(ctx context.Context, seeds models.SeedTable, ratings models.Ratings, cfg Config, seed int64, workers int) (*Tally, error) {
	master := rand.New(rand.NewSource(seed))
	workerSeeds := make([]int64, workers)
	for w := range workerSeeds {
		workerSeeds[w] = master.Int63()
	}

	tallies := make([]*Tally, workers)
	errs := make([]error, workers)
	base, extra := cfg.Runs/workers, cfg.Runs%workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		n := base
		if w < extra {
			n++
		}
		wg.Add(1)
		go func(w, n int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(workerSeeds[w]))
			tally := NewTally()
			for i := 0; i < n; i++ {
				if err := ctx.Err(); err != nil {
					errs[w] = err
					return
				}
				result, err := bracket.Simulate(seeds, ratings, rng.Float64, cfg.HFA)
				if err != nil {
					errs[w] = err
					return
				}
				tally.Record(result)
				if (i+1)%cfg.ProgressInterval == 0 {
					a.log.LogProgress(i+1, n, w)
				}
			}
			tallies[w] = tally
		}(w, n)
	}
	wg.Wait()

	merged := NewTally()
	for w := 0; w < workers; w++ {
		if errs[w] != nil {
			return nil, fmt.Errorf("worker %d: %w", w, errs[w])
		}
		merged.Merge(tallies[w])
	}
	return merged, nil
}
