package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/digest-agent/internal/scheduler"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Fetch and render on a cron schedule",
	Long: `Runs in the foreground, fetching a digest and rendering the page at every tick
of a standard five-field cron expression (default "0 */6 * * *"). A failed run is
logged and the schedule continues. Ticks are skipped while a run is in progress.

Stops on SIGINT or SIGTERM after the current run finishes.`,
	RunE: runSchedule,
}

var (
	scheduleSpec       string
	scheduleRunOnStart bool
)

func init() {
	scheduleCmd.Flags().StringVar(&scheduleSpec, "schedule", "", "Cron expression (default from config)")
	scheduleCmd.Flags().BoolVar(&scheduleRunOnStart, "run-on-start", false, "Run once immediately before waiting for the first tick")

	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("schedule") {
		cfg.Schedule = scheduleSpec
	}
	if cmd.Flags().Changed("run-on-start") {
		cfg.RunOnStart = scheduleRunOnStart
	}
	if err := cfg.ValidatePromptFile(); err != nil {
		return err
	}

	ctx := commandContext(cmd)

	client, err := newClient(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	p, err := newProducer(client, nil)
	if err != nil {
		return err
	}
	r := newRenderer()

	job := func(ctx context.Context) error {
		_, fetchErr := p.Run(ctx)
		if fetchErr != nil {
			fetchErr = fmt.Errorf("fetch: %w", fetchErr)
		}
		// The page is refreshed even after a failed fetch so it reflects the stored state.
		_, renderErr := r.Render()
		if renderErr != nil {
			renderErr = fmt.Errorf("render: %w", renderErr)
		}
		return errors.Join(fetchErr, renderErr)
	}

	s, err := scheduler.New(cfg.Schedule, job, scheduler.Options{
		RunOnStart: cfg.RunOnStart,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	logger.Info("starting schedule",
		zap.String("provider", cfg.Provider),
		zap.String("model", client.GetModel()),
		zap.String("output", r.OutputPath()))
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %q, writing %s (Ctrl+C to stop)\n", cfg.Schedule, r.OutputPath())
	return s.Run(ctx)
}
