package datasource

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/playoff-odds/internal/config"
)

// SourceType represents the type of data source
type SourceType string

const (
	// NFLVerseSourceType downloads the published nflverse games file
	NFLVerseSourceType SourceType = "nflverse"
	// FileSourceType reads a games CSV from disk
	FileSourceType SourceType = "file"
)

// Factory creates GameSource implementations based on configuration
type Factory struct {
	logger *logrus.Logger
	config config.DataSourceConfig
}

// NewFactory creates a new data source factory
func NewFactory(cfg config.DataSourceConfig, logger *logrus.Logger) *Factory {
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// HTTPClientConfig derives client settings from the data source configuration,
// falling back to defaults for unset values.
func (f *Factory) HTTPClientConfig() HTTPClientConfig {
	cfg := DefaultHTTPClientConfig()
	cfg.Name = string(NFLVerseSourceType)
	if f.config.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(f.config.TimeoutSeconds) * time.Second
	}
	if f.config.MaxRetries > 0 {
		cfg.MaxRetries = f.config.MaxRetries
	}
	if f.config.RateLimit > 0 {
		cfg.RateLimit = f.config.RateLimit
	}
	if f.config.CircuitBreakerMax > 0 {
		cfg.CircuitBreakerMax = f.config.CircuitBreakerMax
	}
	return cfg
}

// Create builds the configured GameSource
func (f *Factory) Create() (GameSource, error) {
	switch SourceType(f.config.Type) {
	case NFLVerseSourceType:
		client := NewRateLimitedHTTPClient(f.HTTPClientConfig(), f.logger)
		return NewNFLVerseSource(client, f.config.URL, f.logger), nil
	case FileSourceType:
		if f.config.Path == "" {
			return nil, fmt.Errorf("file data source requires a path")
		}
		return NewFileSource(f.config.Path), nil
	default:
		return nil, fmt.Errorf("unknown data source type: %s", f.config.Type)
	}
}
