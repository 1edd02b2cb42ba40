package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// SimulationLogger provides dedicated logging for Monte Carlo aggregation.
type SimulationLogger struct {
	*logrus.Entry
}

// NewSimulationLogger creates a new simulation logger.
func NewSimulationLogger(baseLogger *logrus.Logger) *SimulationLogger {
	return &SimulationLogger{
		Entry: baseLogger.WithField("component", "simulation"),
	}
}

// LogAggregationStarted logs the start of a simulation batch.
func (sl *SimulationLogger) LogAggregationStarted(runs int, seed int64, seedDrawn bool, workers int, hfa float64) {
	sl.WithFields(logrus.Fields{
		"runs":                 runs,
		"random_seed":          seed,
		"seed_drawn":           seedDrawn,
		"workers":              workers,
		"home_field_advantage": hfa,
	}).Info("Simulation started")
}

// LogProgress logs periodic progress.
func (sl *SimulationLogger) LogProgress(completed, total int, worker int) {
	sl.WithFields(logrus.Fields{
		"completed": completed,
		"total":     total,
		"worker":    worker,
	}).Info("Simulation progress")
}

// LogAggregationCompleted logs the end of a simulation batch.
func (sl *SimulationLogger) LogAggregationCompleted(runs int, seed int64, duration time.Duration, favourite string, favouriteOdds float64) {
	sl.WithFields(logrus.Fields{
		"runs":           runs,
		"random_seed":    seed,
		"duration_ms":    duration.Milliseconds(),
		"favourite":      favourite,
		"favourite_odds": favouriteOdds,
	}).Info("Simulation completed")
}

// LogTraceEmitted logs a single-tournament debug run.
func (sl *SimulationLogger) LogTraceEmitted(seed int64, champion string) {
	sl.WithFields(logrus.Fields{
		"random_seed": seed,
		"champion":    champion,
		"event_type":  "trace",
	}).Debug("Single tournament trace emitted")
}

// LogRatingsBuilt logs a completed rating build.
func (sl *SimulationLogger) LogRatingsBuilt(season, gamesProcessed, teams int, source string, duration time.Duration) {
	sl.WithFields(logrus.Fields{
		"season":          season,
		"games_processed": gamesProcessed,
		"teams":           teams,
		"source":          source,
		"duration_ms":     duration.Milliseconds(),
	}).Info("Ratings built")
}
