// Package searches implements the searches command, which lists the
// configured searches.
package searches

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/FelipeCostaAraujo/olx-webscraping/cmd/common"
	"github.com/FelipeCostaAraujo/olx-webscraping/internal/domain"
)

// Command returns the searches command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "searches",
		Short: "List the configured searches",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := common.NewCommandDeps(true)
			if err != nil {
				return err
			}
			defs, err := deps.Config.SearchDefinitions()
			if err != nil {
				return err
			}
			Render(cmd.OutOrStdout(), defs)
			return nil
		},
	}
}

// Render writes the search definitions as a table.
func Render(w io.Writer, defs []domain.SearchDefinition) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Query", "Category", "Max Price", "Super Price", "Pages", "Pattern", "URL"})

	for _, d := range defs {
		t.AppendRow(table.Row{
			d.Query,
			d.Category.String(),
			d.MaxPrice,
			d.SuperPriceThreshold,
			d.MaxPages,
			d.Pattern.String(),
			d.BaseURL,
		})
	}
	t.Render()
}
