package datasource

import (
	"context"
	"fmt"
	"os"

	"github.com/yourusername/playoff-odds/internal/metrics"
	"github.com/yourusername/playoff-odds/internal/models"
)

// FileSource reads a games CSV from local disk
type FileSource struct {
	path string
}

// NewFileSource creates a source reading path
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the name of the data source
func (s *FileSource) Name() string {
	return "file"
}

// FetchGames reads the completed regular-season games of a season
func (s *FileSource) FetchGames(ctx context.Context, season int) ([]models.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		metrics.RecordDataFetch(s.Name(), "failure")
		return nil, NewDataSourceError(s.Name(), ErrCodeNotFound, s.path, err)
	}
	defer f.Close()

	games, err := ParseSchedule(s.Name(), f, season)
	if err != nil {
		metrics.RecordDataFetch(s.Name(), "failure")
		return nil, err
	}
	if len(games) == 0 {
		metrics.RecordDataFetch(s.Name(), "failure")
		return nil, NewDataSourceError(s.Name(), ErrCodeNoGames, fmt.Sprintf("season %d in %s", season, s.path), ErrNoGames)
	}
	metrics.RecordDataFetch(s.Name(), "success")
	return games, nil
}
