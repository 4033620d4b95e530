// Package migrate implements the migrate command.
package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/FelipeCostaAraujo/olx-webscraping/cmd/common"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/database"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/logger"
)

// Command returns the migrate command.
func Command() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{database.MigrateUp, database.MigrateDown},
		RunE: func(_ *cobra.Command, args []string) error {
			deps, err := common.NewCommandDeps(false)
			if err != nil {
				return err
			}
			direction := args[0]

			changed, err := database.Migrate(dir, deps.Config.Database.URL(), direction)
			if err != nil {
				return fmt.Errorf("failed to migrate: %w", err)
			}
			deps.Logger.Info("Migrations applied",
				logger.String("direction", direction),
				logger.Bool("changed", changed),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "migrations", "directory holding the migration files")
	return cmd
}
