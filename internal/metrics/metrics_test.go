package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegistry(t *testing.T) {
	// Initialize the registry
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordRatingBuild(t *testing.T) {
	InitRegistry()
	before := testutil.ToFloat64(GamesProcessedTotal)

	assert.NotPanics(t, func() {
		RecordRatingBuild("success", 272)
	})
	assert.Equal(t, before+272, testutil.ToFloat64(GamesProcessedTotal))
}

func TestRecordSimulationRun(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name        string
		mode        string
		status      string
		tournaments int
	}{
		{name: "sequential", mode: "sequential", status: "success", tournaments: 5000},
		{name: "substream", mode: "substream", status: "success", tournaments: 10000},
		{name: "trace", mode: "trace", status: "success", tournaments: 1},
		{name: "cancelled", mode: "sequential", status: "cancelled", tournaments: 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(SimulationRunsTotal.WithLabelValues(tt.mode, tt.status))
			assert.NotPanics(t, func() {
				RecordSimulationRun(tt.mode, tt.status, tt.tournaments, 0.25)
			})
			assert.Equal(t, before+1, testutil.ToFloat64(SimulationRunsTotal.WithLabelValues(tt.mode, tt.status)))
		})
	}
}

func TestUpdateGauges(t *testing.T) {
	InitRegistry()

	UpdateChampionOdds("SEA", "NFC", 0.2134)
	assert.Equal(t, 0.2134, testutil.ToFloat64(ChampionOdds.WithLabelValues("SEA", "NFC")))

	UpdateTeamRatings(map[string]float64{"DEN": 1612.5, "GB": 1490})
	assert.Equal(t, 1612.5, testutil.ToFloat64(TeamRating.WithLabelValues("DEN")))

	UpdateLastRefresh(1767225600)
	assert.Equal(t, float64(1767225600), testutil.ToFloat64(LastRefreshTimestamp))
}

func TestRecordDataFetchAndBreaker(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordDataFetch("nflverse", "success")
		RecordCircuitBreakerTrip("nflverse")
	})
}

func TestRecordCacheAndStorage(t *testing.T) {
	InitRegistry()

	hits := testutil.ToFloat64(RatingCacheRequestsTotal.WithLabelValues("hit"))
	RecordRatingCacheLookup(true)
	RecordRatingCacheLookup(false)
	assert.Equal(t, hits+1, testutil.ToFloat64(RatingCacheRequestsTotal.WithLabelValues("hit")))

	failures := testutil.ToFloat64(StorageOperationsTotal.WithLabelValues("sqlite", "save_run", "failure"))
	RecordStorageOperation("sqlite", "save_run", errors.New("disk full"))
	assert.Equal(t, failures+1, testutil.ToFloat64(StorageOperationsTotal.WithLabelValues("sqlite", "save_run", "failure")))
}

func TestHandlerServesMetrics(t *testing.T) {
	InitRegistry()
	RecordSimulationRun("sequential", "success", 1, 0.01)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "playoff_odds_simulation_runs_total"))
}
