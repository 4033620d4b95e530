// Package trends implements the trends command, which prints the price trend
// of every stored ad.
package trends

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/FelipeCostaAraujo/olx-webscraping/cmd/common"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/database"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/trend"
)

// Command returns the trends command.
func Command() *cobra.Command {
	var (
		category string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Show the price trend of stored ads",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := database.ListQuery{Limit: limit}
			if category != "" {
				c, err := domain.ParseCategory(category)
				if err != nil {
					return fmt.Errorf("invalid --category: %w", err)
				}
				q.Category = c
			}

			deps, err := common.NewCommandDeps(false)
			if err != nil {
				return err
			}
			db, err := database.NewPostgresConnection(cmd.Context(), deps.Config.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := database.NewAdRepository(db)
			var ads []domain.StoredAd
			if limit > 0 {
				ads, err = repo.List(cmd.Context(), q)
			} else {
				ads, err = repo.ListAll(cmd.Context(), q)
			}
			if err != nil {
				return err
			}
			Render(cmd.OutOrStdout(), trend.ForAds(ads))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only show ads of this category")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of ads (default all)")
	return cmd
}

// Render writes trends as a table.
func Render(w io.Writer, trends []trend.AdTrend) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Title", "Price", "Trend", "Delta"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Price", Align: text.AlignRight},
		{Name: "Delta", Align: text.AlignRight},
	})

	for _, at := range trends {
		t.AppendRow(table.Row{
			at.ID,
			at.Title,
			fmt.Sprintf("%.2f", at.Price),
			string(at.Trend.Direction),
			fmt.Sprintf("%+.2f", at.Trend.Delta),
		})
	}
	t.AppendFooter(table.Row{"", "Total", len(trends)})
	t.Render()
}
