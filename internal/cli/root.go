package cli

import (
	"context"
	"io"
	"os"

	"github.com/alexanderramin/coursedraft/internal/curriculum"
	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/alexanderramin/coursedraft/internal/draft"
	"github.com/alexanderramin/coursedraft/internal/persist"
	"github.com/alexanderramin/coursedraft/internal/repository"
	"github.com/alexanderramin/coursedraft/internal/validate"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CategoryLister reads the marketplace categories.
type CategoryLister interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// AssetUploader stores a local media file and returns its hosted reference.
type AssetUploader interface {
	Upload(ctx context.Context, courseID string, kind domain.AssetKind, localPath string) (domain.FileRef, error)
}

// App holds everything the commands need. Uploader is nil when media
// uploads are not configured.
type App struct {
	Store       *draft.Store
	Editor      *curriculum.Editor
	Validator   *validate.Validator
	Coordinator *persist.Coordinator
	Categories  CategoryLister
	Uploader    AssetUploader
	History     repository.SaveLogRepo
	Log         zerolog.Logger

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func (a *App) stdin() io.Reader {
	if a.In != nil {
		return a.In
	}
	return os.Stdin
}

func (a *App) stdout() io.Writer {
	if a.Out != nil {
		return a.Out
	}
	return os.Stdout
}

func (a *App) stderr() io.Writer {
	if a.Err != nil {
		return a.Err
	}
	return os.Stderr
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "coursedraft" command and registers all
// subcommands against app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "coursedraft",
		Short:         "Author a course step by step and save it to the course service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(app.stdin())
	root.SetOut(app.stdout())
	root.SetErr(app.stderr())

	root.AddCommand(
		newDraftCmd(app),
		newValidateCmd(app),
		newCategoriesCmd(app),
		newHistoryCmd(app),
	)

	return root
}
