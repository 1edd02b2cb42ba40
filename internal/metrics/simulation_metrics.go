package metrics

import "github.com/prometheus/client_golang/prometheus"

// Simulation counters
var (
	SimulationRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulation_runs_total",
		Help:      "Total number of Monte Carlo aggregations by mode and status",
	}, []string{"mode", "status"})
	TournamentsSimulatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tournaments_simulated_total",
		Help:      "Total number of single tournaments simulated",
	})
)

// Simulation histograms
var (
	SimulationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "simulation_duration_seconds",
		Help:      "Duration of Monte Carlo aggregations in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
	}, []string{"mode"})
)

// Simulation gauges
var (
	ChampionOdds = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "champion_odds",
		Help:      "Latest simulated probability of winning the championship",
	}, []string{"team", "conference"})
)

// RecordSimulationRun records a finished aggregation.
// mode should be one of: "sequential", "substream", "trace"
// status should be one of: "success", "failure", "cancelled"
func RecordSimulationRun(mode, status string, tournaments int, durationSeconds float64) {
	SimulationRunsTotal.WithLabelValues(mode, status).Inc()
	TournamentsSimulatedTotal.Add(float64(tournaments))
	SimulationDuration.WithLabelValues(mode).Observe(durationSeconds)
}

// UpdateChampionOdds sets the latest champion probability for a team.
func UpdateChampionOdds(team, conference string, odds float64) {
	ChampionOdds.WithLabelValues(team, conference).Set(odds)
}
