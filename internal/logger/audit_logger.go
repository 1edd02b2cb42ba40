package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger records persistence and infrastructure events.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogRunPersisted logs a stored simulation run.
func (al *AuditLogger) LogRunPersisted(runID string, season, runs int, seed int64, storage string, createdAt time.Time) {
	al.WithFields(logrus.Fields{
		"run_id":      runID,
		"season":      season,
		"runs":        runs,
		"random_seed": seed,
		"storage":     storage,
		"timestamp":   createdAt.Unix(),
	}).Info("Simulation run persisted")
}

// LogRatingsPersisted logs stored season ratings.
func (al *AuditLogger) LogRatingsPersisted(season, teams int, storage string) {
	al.WithFields(logrus.Fields{
		"season":  season,
		"teams":   teams,
		"storage": storage,
	}).Info("Ratings persisted")
}

// LogOutputWritten logs a report file written to disk.
func (al *AuditLogger) LogOutputWritten(kind, path string) {
	al.WithFields(logrus.Fields{
		"output_kind": kind,
		"path":        path,
	}).Info("Output written")
}

// LogCircuitBreakerEvent logs circuit breaker state transitions.
func (al *AuditLogger) LogCircuitBreakerEvent(name, from, to string) {
	al.WithFields(logrus.Fields{
		"breaker":    name,
		"from_state": from,
		"to_state":   to,
	}).Warn("Circuit breaker state changed")
}
