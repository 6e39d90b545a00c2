package cli

import (
	"fmt"

	"github.com/alexanderramin/coursedraft/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the marketplace categories a course can be filed under",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Categories == nil {
				return fmt.Errorf("course service is not configured")
			}
			cats, err := app.Categories.ListCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing categories: %w", err)
			}
			fmt.Fprint(app.stdout(), formatter.FormatCategories(cats))
			return nil
		},
	}
}
