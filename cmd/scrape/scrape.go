// Package scrape implements the one-shot scrape command.
package scrape

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/FelipeCostaAraujo/olx-webscraping/cmd/common"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/config"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
)

// Command returns the scrape command.
func Command() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Run one scrape pass over the configured searches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := parseCategoryFlag(category)
			if err != nil {
				return err
			}

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

			searches := config.FilterByCategory(app.Searches, filter)
			summary := app.Runner.RunAll(cmd.Context(), searches)

			fmt.Fprintf(cmd.OutOrStdout(),
				"run %s: %d searches, %d pages (%d failed), %d candidates, %d created, %d updated, %d unchanged, %d ignored, %d failed in %s\n",
				summary.RunID, summary.Searches, summary.Pages, summary.PagesFailed, summary.Candidates,
				summary.Created, summary.Updated, summary.Unchanged, summary.Ignored, summary.Failed,
				summary.Duration.Round(time.Millisecond),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only run searches of this category (standard or vehicle)")
	return cmd
}

func parseCategoryFlag(raw string) (domain.Category, error) {
	if raw == "" {
		return "", nil
	}
	category, err := domain.ParseCategory(raw)
	if err != nil {
		return "", fmt.Errorf("invalid --category: %w", err)
	}
	return category, nil
}
