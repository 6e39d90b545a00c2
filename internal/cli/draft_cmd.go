package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/coursedraft/internal/cli/formatter"
	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/alexanderramin/coursedraft/internal/persist"
	"github.com/spf13/cobra"
)

func newDraftCmd(app *App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Create a course with the step-by-step wizard",
		Long: `Create a course through the authoring wizard.

Each step is validated and saved before the next one opens:
  1. Basic information (title, category, level, duration)
  2. Advanced information (description, learning goals, media)
  3. Curriculum (sections and lectures)
  4. Review

Pass --file to save a JSON draft without prompts.

Examples:
  coursedraft draft
  coursedraft draft --file course.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if file != "" {
				return runDraftFile(ctx, app, file)
			}
			if !app.interactive() {
				return fmt.Errorf("the wizard needs a terminal; use --file to save a JSON draft")
			}
			err := runWizard(ctx, app)
			if errors.Is(err, errWizardAborted) {
				fmt.Fprintln(app.stdout(), formatter.Dim("Wizard closed. Unsaved changes were discarded."))
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "save a JSON draft without prompts")
	return cmd
}

// runDraftFile saves every step of a JSON draft in order and stops at the
// first step that fails.
func runDraftFile(ctx context.Context, app *App, path string) error {
	f, err := loadDraftFile(path)
	if err != nil {
		return err
	}
	if err := app.applyDraftFile(f); err != nil {
		return err
	}

	out := app.stdout()
	for app.Store.ActiveStep().Saveable() {
		step := app.Store.ActiveStep()
		if step == domain.StepAdvancedInfo {
			app.uploadPendingAssets(ctx)
		}
		if step == domain.StepCurriculum {
			app.uploadLectureVideos(ctx)
		}
		if _, err := app.saveStep(ctx, step); err != nil {
			return fmt.Errorf("saving %s: %w", step.Title(), err)
		}
	}
	fmt.Fprintln(out, formatter.FormatReview(app.Store.Snapshot()))
	return nil
}

// saveStep runs one save with a spinner on interactive terminals and prints
// the outcome. The returned error is the coordinator's error unchanged.
func (a *App) saveStep(ctx context.Context, step domain.Step) (persist.Result, error) {
	stop := func() {}
	if a.interactive() {
		stop = formatter.StartSpinner(a.stdout(), fmt.Sprintf("Saving %s...", step.Title()))
	}
	res, err := a.Coordinator.SaveStep(ctx, step)
	stop()

	if err != nil {
		fmt.Fprint(a.stderr(), formatter.FormatSaveError(err))
		return res, err
	}
	fmt.Fprint(a.stdout(), formatter.FormatSaveResult(res))
	return res, nil
}

// uploadPendingAssets uploads course media that is still only on disk. A
// failed upload keeps the local reference so the save still goes through
// without the media URL.
func (a *App) uploadPendingAssets(ctx context.Context) {
	snap := a.Store.Snapshot()
	pending := map[domain.AssetKind]*domain.FileRef{
		domain.AssetThumbnail: snap.AdvancedInfo.Thumbnail,
		domain.AssetTrailer:   snap.AdvancedInfo.Trailer,
	}
	for _, kind := range []domain.AssetKind{domain.AssetThumbnail, domain.AssetTrailer} {
		ref := pending[kind]
		if ref == nil || ref.Uploaded() || ref.LocalPath == "" {
			continue
		}
		uploaded, ok := a.upload(ctx, snap.CourseID, kind, ref.LocalPath)
		if !ok {
			continue
		}
		if err := a.Store.AttachAsset(kind, uploaded); err != nil {
			a.Log.Error().Err(err).Str("kind", string(kind)).Msg("attach_asset")
		}
	}
}

// uploadLectureVideos uploads lecture videos that are still only on disk.
func (a *App) uploadLectureVideos(ctx context.Context) {
	snap := a.Store.Snapshot()
	c := snap.Curriculum
	changed := false
	for _, s := range c.Sections {
		for _, l := range s.Lectures {
			if l.Video == nil || l.Video.Uploaded() || l.Video.LocalPath == "" {
				continue
			}
			ref, ok := a.upload(ctx, snap.CourseID, domain.AssetLectureVideo, l.Video.LocalPath)
			if !ok {
				continue
			}
			c = updateLectureVideo(c, s.ClientID, l.ClientID, ref)
			changed = true
		}
	}
	if changed {
		a.Store.SetCurriculum(c)
	}
}

func (a *App) upload(ctx context.Context, courseID string, kind domain.AssetKind, path string) (domain.FileRef, bool) {
	if a.Uploader == nil {
		fmt.Fprintln(a.stderr(), formatter.StyleYellow.Render(
			fmt.Sprintf("Media uploads are not configured; %s %s stays local.", kind, path)))
		return domain.FileRef{}, false
	}
	stop := func() {}
	if a.interactive() {
		stop = formatter.StartSpinner(a.stdout(), fmt.Sprintf("Uploading %s...", kind))
	}
	ref, err := a.Uploader.Upload(ctx, courseID, kind, path)
	stop()
	if err != nil {
		a.Log.Warn().Err(err).Str("kind", string(kind)).Str("path", path).Msg("upload_asset")
		fmt.Fprintln(a.stderr(), formatter.StyleRed.Render(fmt.Sprintf("✖ Upload of %s failed: %v", kind, err)))
		return domain.FileRef{}, false
	}
	fmt.Fprintln(a.stdout(), formatter.StyleGreen.Render("✔ Uploaded "+string(kind))+formatter.Dim(" "+ref.RemoteURL))
	return ref, true
}
