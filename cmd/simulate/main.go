// Package main provides the playoff odds simulator CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/playoff-odds/internal/config"
	"github.com/yourusername/playoff-odds/internal/datasource"
	"github.com/yourusername/playoff-odds/internal/logger"
	"github.com/yourusername/playoff-odds/internal/metrics"
	"github.com/yourusername/playoff-odds/internal/repository"
	"github.com/yourusername/playoff-odds/internal/service"
	"github.com/yourusername/playoff-odds/internal/simulation"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	log        *logrus.Logger
	cfg        *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultConfigPath, "Path to configuration file")
	rootCmd.PersistentFlags().Int("season", 0, "Override the playoff season")

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Estimate playoff advancement odds by Monte Carlo simulation",
	Long: `Simulates the 14-team playoff bracket many times from Elo ratings and the
configured seeds, and reports how often each team reaches each round.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		if err := loadConfig(cmd); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		log = logger.NewLogger(cfg.App.LogLevel, cfg.App.LogFormat)
		metrics.InitRegistry()
		return nil
	},
	RunE: runSimulate,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("simulate %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cmd.Context(), cfg, region, secretName); err != nil {
			return err
		}
	}

	if season, _ := cmd.Flags().GetInt("season"); season > 0 {
		cfg.Playoffs.Season = season
	}
	return config.Validate(cfg)
}

// dependencies are the components shared by every subcommand
type dependencies struct {
	store   *repository.Store
	service *service.PlayoffService
}

func (d *dependencies) Close() {
	if d.store != nil {
		d.store.Close()
	}
}

// setupDependencies opens storage and builds the playoff service. The schedule
// source is only created when withSource is set.
func setupDependencies(ctx context.Context, simCfg simulation.Config, withSource bool) (*dependencies, error) {
	store, err := repository.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Driver, err)
	}

	var source datasource.GameSource
	if withSource {
		source, err = datasource.NewFactory(cfg.DataSource, log).Create()
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to create schedule source: %w", err)
		}
	}

	svc, err := service.NewPlayoffService(service.Options{
		Source:      source,
		Ratings:     store.RatingRepository(),
		Runs:        store.SimulationRepository(),
		StorageName: store.Driver,
		Params:      cfg.EloParams(),
		Seeds:       cfg.SeedTable(),
		Season:      cfg.Playoffs.Season,
		Simulation:  simCfg,
		Logger:      log,
	})
	if err != nil {
		store.Close()
		return nil, err
	}
	return &dependencies{store: store, service: svc}, nil
}

// simulationConfig builds the aggregation settings from the configuration file
func simulationConfig() simulation.Config {
	return simulation.Config{
		Runs:             cfg.Simulation.Runs,
		Seed:             cfg.SimulationSeed(),
		HFA:              cfg.Elo.HomeFieldAdvantage,
		Workers:          cfg.Simulation.Workers,
		ProgressInterval: cfg.Simulation.ProgressInterval,
	}
}
