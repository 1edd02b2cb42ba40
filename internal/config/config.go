// Package config provides configuration management for the playoff odds tools.
package config

import (
	"fmt"
	"time"

	"github.com/yourusername/playoff-odds/internal/elo"
	"github.com/yourusername/playoff-odds/internal/models"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Elo        EloConfig        `mapstructure:"elo" validate:"required"`
	Simulation SimulationConfig `mapstructure:"simulation" validate:"required"`
	Playoffs   PlayoffsConfig   `mapstructure:"playoffs" validate:"required"`
	DataSource DataSourceConfig `mapstructure:"data_source" validate:"required"`
	Storage    StorageConfig    `mapstructure:"storage" validate:"required"`
	Output     OutputConfig     `mapstructure:"output"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Schedule   ScheduleConfig   `mapstructure:"schedule"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
	LogFormat   string `mapstructure:"log_format" validate:"omitempty,oneof=text json"`
}

// EloConfig represents rating engine parameters
type EloConfig struct {
	InitialRating      float64 `mapstructure:"initial_rating" validate:"required,gt=0"`
	KFactor            float64 `mapstructure:"k_factor" validate:"required,gt=0"`
	HomeFieldAdvantage float64 `mapstructure:"home_field_advantage" validate:"gte=0"`
}

// SimulationConfig represents Monte Carlo parameters
type SimulationConfig struct {
	Runs             int    `mapstructure:"runs" validate:"required,gte=1"`
	Seed             *int64 `mapstructure:"seed"`
	Workers          int    `mapstructure:"workers" validate:"gte=0,lte=256"`
	ProgressInterval int    `mapstructure:"progress_interval" validate:"gte=0"`
	Top              int    `mapstructure:"top" validate:"gte=0"`
}

// PlayoffsConfig holds the fixed playoff field
type PlayoffsConfig struct {
	Season int         `mapstructure:"season" validate:"required,gte=1920"`
	Seeds  SeedsConfig `mapstructure:"seeds" validate:"required"`
}

// SeedsConfig lists each conference's teams from seed 1 to seed 7
type SeedsConfig struct {
	AFC []string `mapstructure:"afc" validate:"len=7,dive,required"`
	NFC []string `mapstructure:"nfc" validate:"len=7,dive,required"`
}

// DataSourceConfig represents the schedule source
type DataSourceConfig struct {
	Type              string  `mapstructure:"type" validate:"required,oneof=nflverse file"`
	URL               string  `mapstructure:"url" validate:"omitempty,url"`
	Path              string  `mapstructure:"path"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"gte=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit         float64 `mapstructure:"rate_limit" validate:"gte=0"`
	CircuitBreakerMax int     `mapstructure:"circuit_breaker_max" validate:"gte=0"`
}

// StorageConfig selects where ratings and runs are persisted
type StorageConfig struct {
	Driver          string         `mapstructure:"driver" validate:"required,oneof=none sqlite postgres"`
	SQLitePath      string         `mapstructure:"sqlite_path"`
	CacheTTLSeconds int            `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
	Database        DatabaseConfig `mapstructure:"database"`
}

// DatabaseConfig represents PostgreSQL connection configuration
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"gte=0"`
}

// OutputConfig holds output file locations; empty paths are skipped
type OutputConfig struct {
	RatingsPath  string `mapstructure:"ratings_path"`
	GameLogPath  string `mapstructure:"game_log_path"`
	OddsCSVPath  string `mapstructure:"odds_csv_path"`
	OddsJSONPath string `mapstructure:"odds_json_path"`
	TracePath    string `mapstructure:"trace_path"`
}

// MetricsConfig represents metrics and health endpoint configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Path    string `mapstructure:"path"`
}

// ScheduleConfig represents the refresh job schedule
type ScheduleConfig struct {
	Refresh string `mapstructure:"refresh" validate:"omitempty,cronspec"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// SeedTable converts the configured seeds into a models.SeedTable
func (c *Config) SeedTable() models.SeedTable {
	return models.SeedTable{
		models.ConferenceAFC: models.NewConferenceSeeds(c.Playoffs.Seeds.AFC),
		models.ConferenceNFC: models.NewConferenceSeeds(c.Playoffs.Seeds.NFC),
	}
}

// EloParams returns the rating engine parameters
func (c *Config) EloParams() elo.Params {
	return elo.Params{
		Initial: c.Elo.InitialRating,
		K:       c.Elo.KFactor,
		HFA:     c.Elo.HomeFieldAdvantage,
	}
}

// SimulationSeed returns the configured random seed, nil when unset
func (c *Config) SimulationSeed() *int64 {
	if c.Simulation.Seed == nil {
		return nil
	}
	seed := *c.Simulation.Seed
	return &seed
}

// HTTPTimeout returns the schedule download timeout
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.DataSource.TimeoutSeconds) * time.Second
}

// CacheTTL returns the rating cache lifetime
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Storage.CacheTTLSeconds) * time.Second
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	db := c.Storage.Database
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		db.User,
		db.Password,
		db.Host,
		db.Port,
		db.Name,
		db.SSLMode,
	)
}
