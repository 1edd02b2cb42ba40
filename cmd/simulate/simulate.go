package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/playoff-odds/internal/elo"
	"github.com/yourusername/playoff-odds/internal/logger"
	"github.com/yourusername/playoff-odds/internal/models"
	"github.com/yourusername/playoff-odds/internal/service"
	"github.com/yourusername/playoff-odds/internal/simulation"
)

func init() {
	flags := rootCmd.Flags()
	flags.StringP("ratings", "r", "", "Ratings CSV (defaults to output.ratings_path)")
	flags.Bool("from-storage", false, "Load the season's ratings from storage instead of a CSV")
	flags.IntP("runs", "n", 0, "Number of tournaments to simulate (defaults to simulation.runs)")
	flags.Int64("seed", 0, "Random seed; a seed is drawn and reported when unset")
	flags.Int("workers", 0, "Parallel workers, each with its own random stream")
	flags.Float64("hfa", 0, "Home field advantage in Elo points (defaults to elo.home_field_advantage)")
	flags.Int("top", -1, "Only print the top N teams")
	flags.Bool("no-files", false, "Print the report without writing output files")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	simCfg, err := simulationFlags(cmd)
	if err != nil {
		return err
	}

	deps, err := setupDependencies(ctx, simCfg, false)
	if err != nil {
		return err
	}
	defer deps.Close()

	ratings, err := loadRatings(cmd, deps.service)
	if err != nil {
		return err
	}

	outcome, run, err := deps.service.Simulate(ctx, ratings)
	if err != nil {
		return err
	}

	top := cfg.Simulation.Top
	if cmd.Flags().Changed("top") {
		top, _ = cmd.Flags().GetInt("top")
	}
	if err := writeReport(os.Stdout, outcome, top); err != nil {
		return err
	}

	if noFiles, _ := cmd.Flags().GetBool("no-files"); !noFiles {
		if err := writeOutputs(outcome); err != nil {
			return err
		}
	}
	if deps.store.Enabled() {
		fmt.Fprintf(os.Stdout, "\nSaved run %s\n", run.ID)
	}
	return nil
}

// simulationFlags overlays command-line flags on the configured simulation settings
func simulationFlags(cmd *cobra.Command) (simulation.Config, error) {
	simCfg := simulationConfig()
	flags := cmd.Flags()

	if flags.Changed("runs") {
		simCfg.Runs, _ = flags.GetInt("runs")
	}
	if flags.Changed("seed") {
		seed, _ := flags.GetInt64("seed")
		simCfg.Seed = &seed
	}
	if flags.Changed("workers") {
		simCfg.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("hfa") {
		simCfg.HFA, _ = flags.GetFloat64("hfa")
	}

	if simCfg.Runs < 1 {
		return simCfg, fmt.Errorf("%w: runs must be at least 1, got %d", models.ErrInvalidParameter, simCfg.Runs)
	}
	if simCfg.HFA < 0 {
		return simCfg, fmt.Errorf("%w: home field advantage must not be negative, got %g", models.ErrInvalidParameter, simCfg.HFA)
	}
	if simCfg.Workers < 0 {
		return simCfg, fmt.Errorf("%w: workers must not be negative, got %d", models.ErrInvalidParameter, simCfg.Workers)
	}
	return simCfg, nil
}

func loadRatings(cmd *cobra.Command, svc *service.PlayoffService) (models.Ratings, error) {
	if fromStorage, _ := cmd.Flags().GetBool("from-storage"); fromStorage {
		ratings, err := svc.LoadRatings(cmd.Context())
		switch {
		case errors.Is(err, service.ErrStorageDisabled):
			return nil, fmt.Errorf("--from-storage needs storage.driver to be sqlite or postgres")
		case errors.Is(err, models.ErrNotFound):
			return nil, fmt.Errorf("no ratings stored for season %d; run build-ratings first", cfg.Playoffs.Season)
		}
		return ratings, err
	}

	path, _ := cmd.Flags().GetString("ratings")
	if path == "" {
		path = cfg.Output.RatingsPath
	}
	ratings, err := elo.LoadRatingsFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load ratings from %s: %w", path, err)
	}
	return ratings, nil
}

func writeReport(w io.Writer, outcome *simulation.Outcome, top int) error {
	if outcome.Trace != nil {
		if err := simulation.WriteTrace(w, outcome.Trace); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return simulation.WriteConsoleReport(w, outcome, top)
}

// writeOutputs writes every configured output file; empty paths are skipped
func writeOutputs(outcome *simulation.Outcome) error {
	audit := logger.NewAuditLogger(log)

	if path := cfg.Output.OddsCSVPath; path != "" {
		if err := simulation.SaveOddsCSV(path, outcome.Odds); err != nil {
			return fmt.Errorf("failed to write odds CSV: %w", err)
		}
		audit.LogOutputWritten("odds_csv", path)
	}
	if path := cfg.Output.OddsJSONPath; path != "" {
		if err := simulation.SaveOddsJSON(path, outcome); err != nil {
			return fmt.Errorf("failed to write odds JSON: %w", err)
		}
		audit.LogOutputWritten("odds_json", path)
	}
	if path := cfg.Output.TracePath; path != "" && outcome.Trace != nil {
		if err := simulation.SaveTrace(path, outcome.Trace); err != nil {
			return fmt.Errorf("failed to write bracket trace: %w", err)
		}
		audit.LogOutputWritten("trace", path)
	}
	return nil
}
