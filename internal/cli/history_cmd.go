package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/coursedraft/internal/cli/formatter"
	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/alexanderramin/coursedraft/internal/repository"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const defaultHistoryLimit = 20

// addLimitFlag registers the shared --limit/-n flag.
func addLimitFlag(fs *pflag.FlagSet, p *int, def int) {
	fs.IntVarP(p, "limit", "n", def, fmt.Sprintf("maximum rows to show (up to %d)", repository.MaxListLimit))
}

func newHistoryCmd(app *App) *cobra.Command {
	var (
		limit    int
		courseID string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent save attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return fmt.Errorf("save history is not available")
			}
			ctx := cmd.Context()

			var (
				records []*domain.SaveRecord
				err     error
			)
			if courseID != "" {
				records, err = app.History.ListByCourse(ctx, courseID, limit)
			} else {
				records, err = app.History.ListRecent(ctx, limit)
			}
			if err != nil {
				return fmt.Errorf("reading save history: %w", err)
			}
			counts, err := app.History.CountByOutcome(ctx)
			if err != nil {
				return fmt.Errorf("counting save history: %w", err)
			}

			out := app.stdout()
			fmt.Fprintln(out, formatter.Header("Save history"))
			fmt.Fprint(out, formatter.FormatHistory(records, time.Now()))
			fmt.Fprintln(out, "\n"+formatter.FormatOutcomeCounts(counts))
			return nil
		},
	}

	addLimitFlag(cmd.Flags(), &limit, defaultHistoryLimit)
	cmd.Flags().StringVar(&courseID, "course", "", "only show saves for this course ID")
	cmd.AddCommand(newHistoryPruneCmd(app))
	return cmd
}

func newHistoryPruneCmd(app *App) *cobra.Command {
	var (
		keep int
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the most recent save records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return fmt.Errorf("save history is not available")
			}
			if keep < 0 {
				return fmt.Errorf("--keep must not be negative")
			}
			if !yes {
				msg := fmt.Sprintf("Keep only the %d most recent save records? [y/N] ", keep)
				if !confirm(app.stdin(), app.stdout(), msg, false) {
					fmt.Fprintln(app.stdout(), "Nothing deleted.")
					return nil
				}
			}
			n, err := app.History.Prune(cmd.Context(), keep)
			if err != nil {
				return fmt.Errorf("pruning save history: %w", err)
			}
			fmt.Fprintln(app.stdout(), formatter.StyleGreen.Render(fmt.Sprintf("Deleted %d record(s).", n)))
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", repository.DefaultHistoryKeep, "number of records to keep")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
