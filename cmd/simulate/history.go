package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/yourusername/playoff-odds/internal/models"
	"github.com/yourusername/playoff-odds/internal/repository"
	"github.com/yourusername/playoff-odds/internal/service"
	"github.com/yourusername/playoff-odds/internal/simulation"
)

func init() {
	historyCmd.Flags().IntP("limit", "l", repository.DefaultListLimit, "Number of runs to list")
	historyCmd.Flags().String("id", "", "Show the odds of a single run")
	historyCmd.Flags().Int("top", 0, "With --id, only print the top N teams")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List persisted simulation runs",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	deps, err := setupDependencies(ctx, simulationConfig(), false)
	if err != nil {
		return err
	}
	defer deps.Close()

	if idFlag, _ := cmd.Flags().GetString("id"); idFlag != "" {
		id, err := uuid.Parse(idFlag)
		if err != nil {
			return fmt.Errorf("invalid run id %q: %w", idFlag, err)
		}
		run, err := deps.service.GetRun(ctx, id)
		if err != nil {
			return historyError(err)
		}
		top, _ := cmd.Flags().GetInt("top")
		return simulation.WriteConsoleReport(os.Stdout, outcomeFromRun(run), top)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := deps.service.History(ctx, limit)
	if err != nil {
		return historyError(err)
	}
	if len(runs) == 0 {
		fmt.Println("No simulation runs stored")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("ID", "Created", "Season", "Runs", "Seed", "HFA", "Workers", "Favourite")
	for _, run := range runs {
		if err := table.Append(
			run.ID.String(),
			run.CreatedAt.Format(time.RFC3339),
			strconv.Itoa(run.Season),
			strconv.Itoa(run.Runs),
			strconv.FormatInt(run.RandomSeed, 10),
			strconv.FormatFloat(run.HomeFieldAdvantage, 'f', 1, 64),
			strconv.Itoa(run.Workers),
			run.Champion,
		); err != nil {
			return err
		}
	}
	return table.Render()
}

func historyError(err error) error {
	switch {
	case errors.Is(err, service.ErrStorageDisabled):
		return fmt.Errorf("history needs storage.driver to be sqlite or postgres")
	case errors.Is(err, models.ErrNotFound):
		return fmt.Errorf("simulation run not found")
	}
	return err
}

// outcomeFromRun rebuilds a printable outcome from a stored run
func outcomeFromRun(run *models.SimulationRun) *simulation.Outcome {
	return &simulation.Outcome{
		Odds:    run.Odds,
		Runs:    run.Runs,
		Seed:    run.RandomSeed,
		Workers: run.Workers,
		HFA:     run.HomeFieldAdvantage,
		Mode:    "stored",
	}
}
