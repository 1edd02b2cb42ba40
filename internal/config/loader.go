package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. PLAYOFF_ODDS_SIMULATION_RUNS
const EnvPrefix = "PLAYOFF_ODDS"

// DefaultConfigPath is used when no path is given
const DefaultConfigPath = "config/config.yaml"

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	loadDotEnv()

	// Read the configuration file
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error; defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	loadDotEnv()

	v := newViper()
	setDefaults(v)

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	// Set environment variable prefix
	v.SetEnvPrefix(EnvPrefix)

	// Enable automatic binding of environment variables
	v.AutomaticEnv()

	// Replace dots with underscores in environment variable names
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "playoff-odds")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "text")

	v.SetDefault("elo.initial_rating", 1500.0)
	v.SetDefault("elo.k_factor", 30.0)
	v.SetDefault("elo.home_field_advantage", 55.0)

	v.SetDefault("simulation.runs", 1)
	v.SetDefault("simulation.workers", 1)
	v.SetDefault("simulation.progress_interval", 1000)
	v.SetDefault("simulation.top", 0)

	v.SetDefault("playoffs.season", 2025)
	v.SetDefault("playoffs.seeds.afc", []string{"DEN", "NE", "JAX", "PIT", "HOU", "BUF", "LAC"})
	v.SetDefault("playoffs.seeds.nfc", []string{"SEA", "CHI", "PHI", "CAR", "LA", "SF", "GB"})

	v.SetDefault("data_source.type", "nflverse")
	v.SetDefault("data_source.url", "https://github.com/nflverse/nfldata/raw/master/data/games.csv")
	v.SetDefault("data_source.timeout_seconds", 30)
	v.SetDefault("data_source.max_retries", 3)
	v.SetDefault("data_source.rate_limit", 2.0)
	v.SetDefault("data_source.circuit_breaker_max", 5)

	v.SetDefault("storage.driver", "none")
	v.SetDefault("storage.sqlite_path", "data/playoff_odds.db")
	v.SetDefault("storage.cache_ttl_seconds", 300)
	v.SetDefault("storage.database.port", 5432)
	v.SetDefault("storage.database.ssl_mode", "disable")
	v.SetDefault("storage.database.max_connections", 5)

	v.SetDefault("output.ratings_path", "data/elo_ratings.csv")
	v.SetDefault("output.odds_csv_path", "results/playoff_odds.csv")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("schedule.refresh", "0 */6 * * *")
}

// loadDotEnv loads a .env file from the working directory when present
func loadDotEnv() {
	_ = godotenv.Load()
}
