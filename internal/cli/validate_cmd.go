package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/coursedraft/internal/cli/formatter"
	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/alexanderramin/coursedraft/internal/validate"
	"github.com/spf13/cobra"
)

// errDraftInvalid is returned after the invalid fields have been printed.
var errDraftInvalid = errors.New("draft has invalid fields")

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <draft.json>",
		Short: "Check a JSON draft against every step's rules without saving",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadDraftFile(args[0])
			if err != nil {
				return err
			}
			if err := app.applyDraftFile(f); err != nil {
				return err
			}
			return app.validateDraft(app.Store.Snapshot())
		},
	}
}

// validateDraft runs every saveable step's validator and prints each failure.
func (a *App) validateDraft(d domain.CourseDraft) error {
	failed := false
	for st := domain.StepBasicInfo; st.Saveable(); st = st.Next() {
		_, err := a.Validator.Step(st, d)
		var verr *validate.ValidationError
		switch {
		case err == nil:
			fmt.Fprintln(a.stdout(), formatter.StyleGreen.Render("✔ "+st.Title()))
		case errors.As(err, &verr):
			failed = true
			fmt.Fprint(a.stdout(), formatter.FormatValidationError(verr))
		default:
			return err
		}
	}
	if failed {
		return errDraftInvalid
	}
	return nil
}
