package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/playoff-odds/internal/elo"
	"github.com/yourusername/playoff-odds/internal/health"
	"github.com/yourusername/playoff-odds/internal/logger"
	"github.com/yourusername/playoff-odds/internal/scheduler"
	"github.com/yourusername/playoff-odds/internal/service"
)

func init() {
	flags := watchCmd.Flags()
	flags.String("schedule", "", "Cron expression for the refresh job (defaults to schedule.refresh)")
	flags.Bool("run-now", true, "Run a refresh immediately on start")
	flags.Duration("job-timeout", scheduler.DefaultJobTimeout, "Timeout for a single refresh")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild ratings and re-simulate on a schedule",
	Long: `Runs the refresh job (fetch schedule, rebuild ratings, simulate, persist) on a
cron schedule and serves health and Prometheus endpoints until interrupted.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	expr := cfg.Schedule.Refresh
	if flags.Changed("schedule") {
		expr, _ = flags.GetString("schedule")
	}
	if expr == "" {
		return fmt.Errorf("no refresh schedule configured")
	}

	deps, err := setupDependencies(ctx, simulationConfig(), true)
	if err != nil {
		return err
	}
	defer deps.Close()

	var healthServer *health.Server
	if cfg.Metrics.Enabled {
		healthServer = health.NewServer(health.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Commit:      GitCommit,
			Port:        strconv.Itoa(cfg.Metrics.Port),
			Logger:      log,
			DB:          deps.store,
			Refresh:     deps.service,
			MetricsPath: cfg.Metrics.Path,
		})
		if err := healthServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start health server: %w", err)
		}
	}

	refresh := refreshJob(deps.service)

	sched := scheduler.NewScheduler(log)
	timeout, _ := flags.GetDuration("job-timeout")
	sched.SetJobTimeout(timeout)
	if _, err := sched.Schedule("refresh", expr, refresh); err != nil {
		return err
	}

	if runNow, _ := flags.GetBool("run-now"); runNow {
		runCtx, cancel := context.WithTimeout(ctx, timeout)
		if err := refresh.Run(runCtx); err != nil {
			log.WithError(err).Warn("Initial refresh failed")
		}
		cancel()
	}

	if err := sched.Start(); err != nil {
		return err
	}
	if healthServer != nil {
		healthServer.SetReady(true)
	}
	log.WithFields(logrus.Fields{
		"schedule": expr,
		"next_run": sched.GetNextRun().Format(time.RFC3339),
		"storage":  deps.store.Driver,
	}).Info("Watching for schedule updates")

	<-ctx.Done()
	log.Info("Shutting down")

	if healthServer != nil {
		healthServer.SetReady(false)
	}
	return sched.Stop()
}

// refreshJob rebuilds ratings, re-simulates and writes the configured outputs
func refreshJob(svc *service.PlayoffService) scheduler.Job {
	audit := logger.NewAuditLogger(log)

	return scheduler.JobFunc(func(ctx context.Context) error {
		result, err := svc.Refresh(ctx)
		if err != nil {
			return err
		}
		if path := cfg.Output.RatingsPath; path != "" {
			if err := elo.SaveRatingsFile(path, result.Build.Ratings); err != nil {
				return fmt.Errorf("failed to write ratings: %w", err)
			}
			audit.LogOutputWritten("ratings", path)
		}
		return writeOutputs(result.Outcome)
	})
}
