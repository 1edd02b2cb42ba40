// Package metrics provides the centralized Prometheus metrics registry.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "playoff_odds"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RatingBuildsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rating_builds_total",
		Help:      "Total number of rating builds by status",
	}, []string{"status"})
	GamesProcessedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "games_processed_total",
		Help:      "Total number of games applied to ratings",
	})
	DataFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "data_fetches_total",
		Help:      "Total number of schedule fetches by source and status",
	}, []string{"source", "status"})
	CircuitBreakerTripsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of circuit breaker trips",
	}, []string{"breaker"})
	RatingCacheRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rating_cache_requests_total",
		Help:      "Total number of rating cache lookups by result",
	}, []string{"result"})
	StorageOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_operations_total",
		Help:      "Total number of repository operations by driver, operation and status",
	}, []string{"driver", "operation", "status"})
)

// Gauge metrics
var (
	TeamRating = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "team_rating",
		Help:      "Latest Elo rating for each team",
	}, []string{"team"})
	LastRefreshTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_refresh_timestamp_seconds",
		Help:      "Unix time of the last successful refresh job",
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register rating metrics
		registry.MustRegister(RatingBuildsTotal)
		registry.MustRegister(GamesProcessedTotal)
		registry.MustRegister(DataFetchesTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)
		registry.MustRegister(RatingCacheRequestsTotal)
		registry.MustRegister(StorageOperationsTotal)
		registry.MustRegister(TeamRating)
		registry.MustRegister(LastRefreshTimestamp)

		// Register simulation metrics
		registry.MustRegister(SimulationRunsTotal)
		registry.MustRegister(TournamentsSimulatedTotal)
		registry.MustRegister(SimulationDuration)
		registry.MustRegister(ChampionOdds)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordRatingBuild records a rating build and the games it applied.
// status should be one of: "success", "failure"
func RecordRatingBuild(status string, games int) {
	RatingBuildsTotal.WithLabelValues(status).Inc()
	GamesProcessedTotal.Add(float64(games))
}

// RecordDataFetch records a schedule fetch.
func RecordDataFetch(source, status string) {
	DataFetchesTotal.WithLabelValues(source, status).Inc()
}

// RecordCircuitBreakerTrip records a circuit breaker opening.
func RecordCircuitBreakerTrip(breaker string) {
	CircuitBreakerTripsTotal.WithLabelValues(breaker).Inc()
}

// RecordRatingCacheLookup records a rating cache hit or miss.
func RecordRatingCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	RatingCacheRequestsTotal.WithLabelValues(result).Inc()
}

// RecordStorageOperation records a repository call.
func RecordStorageOperation(driver, operation string, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	StorageOperationsTotal.WithLabelValues(driver, operation, status).Inc()
}

// UpdateTeamRatings sets the rating gauge for each team.
func UpdateTeamRatings(ratings map[string]float64) {
	for team, rating := range ratings {
		TeamRating.WithLabelValues(team).Set(rating)
	}
}

// UpdateLastRefresh sets the last refresh timestamp.
func UpdateLastRefresh(unixSeconds float64) {
	LastRefreshTimestamp.Set(unixSeconds)
}
