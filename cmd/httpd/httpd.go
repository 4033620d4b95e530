// Package httpd implements the httpd command: the HTTP API plus the
// periodic scheduler.
package httpd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/FelipeCostaAraujo/olx-webscraping/cmd/common"
	cmdscheduler "github.com/FelipeCostaAraujo/olx-webscraping/cmd/scheduler"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/api"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
)

// Command returns the httpd command.
func Command() *cobra.Command {
	var noScheduler bool

	cmd := &cobra.Command{
		Use:   "httpd",
		Short: "Serve the HTTP API and run the scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), !noScheduler)
		},
	}
	cmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "serve the API without periodic passes")
	return cmd
}

func run(ctx context.Context, withScheduler bool) error {
	deps, err := common.NewCommandDeps(true)
	if err != nil {
		return err
	}
	log := deps.Logger

	app, err := common.NewApp(ctx, deps)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			log.Warn("Failed to release resources", logger.Error(closeErr))
		}
	}()

	s, err := cmdscheduler.NewFromApp(app)
	if err != nil {
		return err
	}
	if withScheduler {
		if err = s.Start(); err != nil {
			return err
		}
	}

	server := api.NewServer(deps.Config.Server, api.Dependencies{
		Ads:           app.Ads,
		Notifications: app.Notifications,
		Notifier:      app.Dispatcher,
		Scrape:        s,
		Metrics:       app.Metrics,
	}, deps.Config.App.Debug, log)

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := server.StartAsync()
	select {
	case err = <-errCh:
	case <-sigCtx.Done():
		log.Info("Shutdown signal received")
		//nolint:contextcheck // the signal context is already cancelled
		err = server.Shutdown(context.Background())
	}

	s.Stop()
	return err
}
