package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/playoff-odds/internal/metrics"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeRefresh struct {
	at  time.Time
	err error
}

func (f fakeRefresh) LastRefresh() (time.Time, error) { return f.at, f.err }

func serve(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	at := time.Date(2026, time.January, 10, 6, 0, 0, 0, time.UTC)
	s := NewServer(Config{ServiceName: "playoff-odds", Version: "1.0.0", Refresh: fakeRefresh{at: at}})

	rec := serve(t, s, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Equal(t, "2026-01-10T06:00:00Z", resp.LastRefresh)

	assert.Equal(t, http.StatusOK, serve(t, s, "/live").Code)
}

func TestReadyEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		ready    bool
		db       DatabasePinger
		refresh  RefreshReporter
		wantCode int
	}{
		{name: "not marked ready", ready: false, wantCode: http.StatusServiceUnavailable},
		{name: "ready", ready: true, db: fakePinger{}, refresh: fakeRefresh{at: time.Now()}, wantCode: http.StatusOK},
		{name: "database down", ready: true, db: fakePinger{err: errors.New("down")}, wantCode: http.StatusServiceUnavailable},
		{name: "refresh failed", ready: true, refresh: fakeRefresh{err: errors.New("fetch failed")}, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer(Config{ServiceName: "playoff-odds", DB: tt.db, Refresh: tt.refresh})
			s.SetReady(tt.ready)
			assert.Equal(t, tt.wantCode, serve(t, s, "/ready").Code)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.InitRegistry()
	metrics.RecordDataFetch("nflverse", "success")

	s := NewServer(Config{ServiceName: "playoff-odds", MetricsPath: "/metrics"})
	rec := serve(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "playoff_odds_data_fetches_total"))

	without := NewServer(Config{ServiceName: "playoff-odds"})
	assert.Equal(t, http.StatusNotFound, serve(t, without, "/metrics").Code)
}
