package datasource

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/yourusername/playoff-odds/internal/metrics"
	"github.com/yourusername/playoff-odds/internal/models"
)

// DefaultNFLVerseURL is the published nflverse schedule file
const DefaultNFLVerseURL = "https://github.com/nflverse/nfldata/raw/master/data/games.csv"

// NFLVerseSource downloads the nflverse games file over HTTP
type NFLVerseSource struct {
	httpClient *RateLimitedHTTPClient
	url        string
	logger     *logrus.Entry
}

// NewNFLVerseSource creates a new nflverse schedule source
func NewNFLVerseSource(httpClient *RateLimitedHTTPClient, url string, log *logrus.Logger) *NFLVerseSource {
	if url == "" {
		url = DefaultNFLVerseURL
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &NFLVerseSource{
		httpClient: httpClient,
		url:        url,
		logger:     log.WithField("component", "datasource"),
	}
}

// Name returns the name of the data source
func (s *NFLVerseSource) Name() string {
	return "nflverse"
}

// FetchGames retrieves the completed regular-season games of a season
func (s *NFLVerseSource) FetchGames(ctx context.Context, season int) ([]models.Game, error) {
	games, err := s.fetch(ctx, season)
	if err != nil {
		metrics.RecordDataFetch(s.Name(), "failure")
		return nil, err
	}
	metrics.RecordDataFetch(s.Name(), "success")
	return games, nil
}

func (s *NFLVerseSource) fetch(ctx context.Context, season int) ([]models.Game, error) {
	s.logger.WithFields(logrus.Fields{"url": s.url, "season": season}).Info("Fetching schedule")

	resp, err := s.httpClient.Get(ctx, s.url)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, NewDataSourceError(s.Name(), ErrCodeCircuitOpen, "circuit breaker open", err)
		}
		return nil, NewDataSourceError(s.Name(), ErrCodeNetworkError, "request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, NewDataSourceError(s.Name(), ErrCodeNotFound, s.url, nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, NewDataSourceError(s.Name(), ErrCodeRateLimitExceeded, s.url, nil)
	case resp.StatusCode >= 500:
		return nil, NewDataSourceError(s.Name(), ErrCodeServerError, fmt.Sprintf("status %d", resp.StatusCode), nil)
	case resp.StatusCode != http.StatusOK:
		return nil, NewDataSourceError(s.Name(), ErrCodeNetworkError, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	games, err := ParseSchedule(s.Name(), resp.Body, season)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, NewDataSourceError(s.Name(), ErrCodeNoGames, fmt.Sprintf("season %d", season), ErrNoGames)
	}

	s.logger.WithFields(logrus.Fields{
		"season": season,
		"games":  len(games),
		"first":  games[0].GameDay.Format("2006-01-02"),
		"last":   games[len(games)-1].GameDay.Format("2006-01-02"),
	}).Info("Schedule loaded")
	return games, nil
}
