// Package scheduler implements the scheduler command, which re-runs the
// scrape pass at the configured interval until interrupted.
package scheduler

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/FelipeCostaAraujo/olx-webscraping/cmd/common"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/scheduler"
)

// Command returns the scheduler command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run scrape passes periodically",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps(true)
			if err != nil {
				return err
			}
			app, err := common.NewApp(cmd.Context(), deps)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := app.Close(); closeErr != nil {
					deps.Logger.Warn("Failed to release resources", logger.Error(closeErr))
				}
			}()

			s, err := NewFromApp(app)
			if err != nil {
				return err
			}
			if err = s.Start(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			deps.Logger.Info("Shutdown signal received")
			s.Stop()
			return nil
		},
	}
}

// NewFromApp builds a scheduler running app's full pass.
func NewFromApp(app *common.App) (*scheduler.Scheduler, error) {
	cfg := app.Deps.Config.Schedule
	return scheduler.New(func(ctx context.Context) {
		app.RunPass(ctx)
	}, cfg.Interval, cfg.RunOnStart, app.Deps.Logger)
}
