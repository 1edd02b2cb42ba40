// Package main provides the entry point for the ratings builder.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/playoff-odds/internal/config"
	"github.com/yourusername/playoff-odds/internal/datasource"
	"github.com/yourusername/playoff-odds/internal/elo"
	"github.com/yourusername/playoff-odds/internal/logger"
	"github.com/yourusername/playoff-odds/internal/repository"
	"github.com/yourusername/playoff-odds/internal/service"
	"github.com/yourusername/playoff-odds/internal/simulation"
)

func main() {
	var (
		configPath = flag.String("config", config.DefaultConfigPath, "Path to config file")
		season     = flag.Int("season", 0, "Override the season to rate")
		sourcePath = flag.String("schedule", "", "Read games from this CSV file instead of the configured source")
		output     = flag.String("output", "", "Override the ratings CSV path")
		gameLog    = flag.String("log", "", "Write the per-game rating log to this CSV path")
		persist    = flag.Bool("persist", true, "Persist ratings when storage is configured")
		quiet      = flag.Bool("quiet", false, "Do not print the ratings table")
	)
	flag.Parse()

	bootstrap := newLogger()
	cfg := loadConfigWithSecrets(*configPath, bootstrap)
	applyOverrides(cfg, *season, *sourcePath, *output, *gameLog)

	log := logger.NewLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	audit := logger.NewAuditLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := datasource.NewFactory(cfg.DataSource, log).Create()
	if err != nil {
		log.Fatalf("Failed to create schedule source: %v", err)
	}

	store := openStore(ctx, cfg, *persist, log)
	defer store.Close()

	svc, err := service.NewPlayoffService(service.Options{
		Source:      source,
		Ratings:     store.RatingRepository(),
		StorageName: store.Driver,
		Params:      cfg.EloParams(),
		Seeds:       cfg.SeedTable(),
		Season:      cfg.Playoffs.Season,
		Logger:      log,
	})
	if err != nil {
		log.Fatalf("Failed to create playoff service: %v", err)
	}

	build, err := svc.BuildRatings(ctx)
	if err != nil {
		log.Fatalf("Failed to build ratings: %v", err)
	}

	if err := elo.SaveRatingsFile(cfg.Output.RatingsPath, build.Ratings); err != nil {
		log.Fatalf("Failed to write ratings: %v", err)
	}
	audit.LogOutputWritten("ratings", cfg.Output.RatingsPath)

	if cfg.Output.GameLogPath != "" {
		if err := elo.SaveGameLogFile(cfg.Output.GameLogPath, build.Log); err != nil {
			log.Fatalf("Failed to write game log: %v", err)
		}
		audit.LogOutputWritten("game_log", cfg.Output.GameLogPath)
	}

	if !*quiet {
		if err := simulation.WriteRatingsTable(os.Stdout, build.Ratings); err != nil {
			log.Fatalf("Failed to print ratings: %v", err)
		}
	}

	log.WithFields(logrus.Fields{
		"season": build.Season,
		"games":  build.Games,
		"teams":  len(build.Ratings),
		"output": cfg.Output.RatingsPath,
	}).Info("Ratings built")
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	return log
}

func loadConfigWithSecrets(path string, log *logrus.Logger) *config.Config {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(context.Background(), cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func applyOverrides(cfg *config.Config, season int, schedulePath, output, gameLog string) {
	if season > 0 {
		cfg.Playoffs.Season = season
	}
	if schedulePath != "" {
		cfg.DataSource.Type = string(datasource.FileSourceType)
		cfg.DataSource.Path = schedulePath
	}
	if output != "" {
		cfg.Output.RatingsPath = output
	}
	if cfg.Output.RatingsPath == "" {
		cfg.Output.RatingsPath = "elo_ratings.csv"
	}
	if gameLog != "" {
		cfg.Output.GameLogPath = gameLog
	}
}

func openStore(ctx context.Context, cfg *config.Config, persist bool, log *logrus.Logger) *repository.Store {
	storageCfg := cfg.Storage
	if !persist {
		storageCfg.Driver = repository.DriverNone
	}
	store, err := repository.Open(ctx, storageCfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", storageCfg.Driver, err)
	}
	return store
}
