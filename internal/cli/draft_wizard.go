package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/coursedraft/internal/cli/formatter"
	"github.com/alexanderramin/coursedraft/internal/curriculum"
	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/alexanderramin/coursedraft/internal/persist"
	"github.com/alexanderramin/coursedraft/internal/validate"
	"github.com/charmbracelet/huh"
)

const categoryTimeout = 5 * time.Second

// runWizard walks the author through every step until the review is accepted.
func runWizard(ctx context.Context, app *App) error {
	out := app.stdout()
	fmt.Fprintln(out, formatter.RenderBox("New course",
		"Fill in each step and save it before moving on.\n"+formatter.Dim("Press esc at any prompt to quit.")))

	for {
		step := app.Store.ActiveStep()
		fmt.Fprintln(out, "\n"+formatter.FormatStepProgress(step)+"\n")

		var err error
		switch step {
		case domain.StepBasicInfo:
			err = app.basicInfoStep(ctx)
		case domain.StepAdvancedInfo:
			err = app.advancedInfoStep(ctx)
		case domain.StepCurriculum:
			err = app.curriculumStep(ctx)
		default:
			return app.reviewStep(ctx)
		}
		if err != nil {
			return err
		}
	}
}

// basicInfoValues holds the string form of the basic-info fields while a form edits them.
type basicInfoValues struct {
	Title, Subtitle, Category, SubCategory, Topic string
	PrimaryLanguage, SubtitleLanguage             string
	Level, Duration, DurationUnit                 string
}

func newBasicInfoValues(b domain.BasicInfo) *basicInfoValues {
	v := &basicInfoValues{
		Title:            b.Title,
		Subtitle:         b.Subtitle,
		Category:         b.Category,
		SubCategory:      b.SubCategory,
		Topic:            b.Topic,
		PrimaryLanguage:  b.PrimaryLanguage,
		SubtitleLanguage: b.SubtitleLanguage,
		Level:            string(b.Level),
		Duration:         formatOptionalInt(b.DurationValue),
		DurationUnit:     string(b.DurationUnit),
	}
	if v.PrimaryLanguage == "" {
		v.PrimaryLanguage = domain.LanguageOptions[0].Value
	}
	if v.Level == "" {
		v.Level = string(domain.LevelBeginner)
	}
	if v.DurationUnit == "" {
		v.DurationUnit = string(domain.UnitWeek)
	}
	return v
}

func (v *basicInfoValues) patch() domain.BasicInfoPatch {
	return domain.BasicInfoPatchFrom(domain.BasicInfo{
		Title:            v.Title,
		Subtitle:         v.Subtitle,
		Category:         v.Category,
		SubCategory:      v.SubCategory,
		Topic:            v.Topic,
		PrimaryLanguage:  v.PrimaryLanguage,
		SubtitleLanguage: v.SubtitleLanguage,
		Level:            domain.Level(v.Level),
		DurationValue:    parseOptionalInt(v.Duration),
		DurationUnit:     domain.DurationUnit(v.DurationUnit),
	})
}

func (a *App) loadCategories(ctx context.Context) []domain.Category {
	if a.Categories == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, categoryTimeout)
	defer cancel()
	stop := formatter.StartSpinner(a.stdout(), "Loading categories...")
	cats, err := a.Categories.ListCategories(ctx)
	stop()
	if err != nil {
		a.Log.Warn().Err(err).Msg("list_categories")
		return nil
	}
	return cats
}

func basicInfoGroups(v *basicInfoValues, cats []domain.Category) []*huh.Group {
	var category huh.Field
	if opts := categoryOptions(cats); len(opts) > 0 {
		category = huh.NewSelect[string]().Title("Category").Options(opts...).Value(&v.Category)
	} else {
		category = huh.NewInput().Title("Category").
			Description("Categories could not be loaded, type one.").
			Value(&v.Category)
	}

	subtitleLangs := append([]huh.Option[string]{huh.NewOption("None", "")}, toHuhOptions(domain.LanguageOptions)...)

	return []*huh.Group{
		huh.NewGroup(
			huh.NewInput().Title("Course title").Placeholder("Intro to Go Services").Value(&v.Title),
			huh.NewInput().Title("Subtitle").Value(&v.Subtitle),
			huh.NewInput().Title("Topic").Description("What is primarily taught in the course").Value(&v.Topic),
		),
		huh.NewGroup(
			category,
			huh.NewInput().Title("Sub-category").Description("Optional").Value(&v.SubCategory),
			huh.NewSelect[string]().Title("Course language").Options(toHuhOptions(domain.LanguageOptions)...).Value(&v.PrimaryLanguage),
			huh.NewSelect[string]().Title("Subtitle language").Options(subtitleLangs...).Value(&v.SubtitleLanguage),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Level").Options(toHuhOptions(domain.LevelOptions)...).Value(&v.Level),
			huh.NewInput().Title("Duration").Description("Optional").Validate(validateOptionalPositiveInt).Value(&v.Duration),
			huh.NewSelect[string]().Title("Duration unit").Options(toHuhOptions(domain.DurationUnitOptions)...).Value(&v.DurationUnit),
		),
	}
}

func (a *App) basicInfoStep(ctx context.Context) error {
	v := newBasicInfoValues(a.Store.Snapshot().BasicInfo)
	cats := a.loadCategories(ctx)
	if err := runForm(ctx, a.newForm(basicInfoGroups(v, cats)...)); err != nil {
		return err
	}
	a.Store.UpdateBasicInfo(v.patch())
	return a.saveWithRetryPrompt(ctx, domain.StepBasicInfo)
}

// advancedInfoValues mirrors the advanced-info form.
type advancedInfoValues struct {
	Description   string
	Learn         []string
	Audience      []string
	Requirements  []string
	ThumbnailPath string
	TrailerPath   string
}

func newAdvancedInfoValues(ai domain.AdvancedInfo) *advancedInfoValues {
	v := &advancedInfoValues{
		Description:  ai.Description,
		Learn:        validate.EnsureFour(ai.WhatYouWillLearn),
		Audience:     validate.EnsureFour(ai.TargetAudience),
		Requirements: validate.EnsureFour(ai.Requirements),
	}
	if ai.Thumbnail != nil {
		v.ThumbnailPath = ai.Thumbnail.LocalPath
	}
	if ai.Trailer != nil {
		v.TrailerPath = ai.Trailer.LocalPath
	}
	return v
}

func (v *advancedInfoValues) patch() domain.AdvancedInfoPatch {
	return domain.AdvancedInfoPatch{
		Description:      domain.StrPtr(v.Description),
		WhatYouWillLearn: v.Learn,
		TargetAudience:   v.Audience,
		Requirements:     v.Requirements,
	}
}

func validateOptionalFile(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file not found")
	}
	if info.IsDir() {
		return fmt.Errorf("pick a file, not a directory")
	}
	return nil
}

func listGroup(title, description string, items []string) *huh.Group {
	fields := make([]huh.Field, 0, len(items))
	for i := range items {
		in := huh.NewInput().Title(fmt.Sprintf("%s %d", title, i+1)).Value(&items[i])
		if i == 0 {
			in = in.Description(description)
		}
		fields = append(fields, in)
	}
	return huh.NewGroup(fields...)
}

func advancedInfoGroups(v *advancedInfoValues) []*huh.Group {
	return []*huh.Group{
		huh.NewGroup(
			huh.NewText().Title("Course description").CharLimit(5000).Value(&v.Description),
		),
		listGroup("What you will learn", "Four outcomes, at least 5 characters each", v.Learn),
		listGroup("Target audience", "Who this course is for", v.Audience),
		listGroup("Requirement", "What students need before starting", v.Requirements),
		huh.NewGroup(
			huh.NewInput().Title("Thumbnail image").Description("Path to a jpg, png or webp file (optional)").
				Validate(validateOptionalFile).Value(&v.ThumbnailPath),
			huh.NewInput().Title("Trailer video").Description("Path to an mp4, mov or webm file (optional)").
				Validate(validateOptionalFile).Value(&v.TrailerPath),
		),
	}
}

func (a *App) advancedInfoStep(ctx context.Context) error {
	snap := a.Store.Snapshot().AdvancedInfo
	v := newAdvancedInfoValues(snap)
	if err := runForm(ctx, a.newForm(advancedInfoGroups(v)...)); err != nil {
		return err
	}
	a.Store.UpdateAdvancedInfo(v.patch())
	a.attachPicked(domain.AssetThumbnail, snap.Thumbnail, v.ThumbnailPath)
	a.attachPicked(domain.AssetTrailer, snap.Trailer, v.TrailerPath)
	a.uploadPendingAssets(ctx)
	return a.saveWithRetryPrompt(ctx, domain.StepAdvancedInfo)
}

// attachPicked records a newly picked local file. Re-picking the same path
// keeps the existing reference and its upload; an emptied path clears it.
func (a *App) attachPicked(kind domain.AssetKind, current *domain.FileRef, path string) {
	path = strings.TrimSpace(path)
	if path == "" {
		if current != nil {
			if err := a.Store.DetachAsset(kind); err != nil {
				a.Log.Error().Err(err).Str("kind", string(kind)).Msg("detach_asset")
			}
		}
		return
	}
	if current != nil && current.LocalPath == path {
		return
	}
	if err := a.Store.AttachAsset(kind, domain.FileRef{LocalPath: path}); err != nil {
		a.Log.Error().Err(err).Str("kind", string(kind)).Msg("attach_asset")
	}
}

func (a *App) curriculumStep(ctx context.Context) error {
	out := a.stdout()
	for {
		fmt.Fprint(out, formatter.FormatCurriculumTree(a.Store.Snapshot().Curriculum))

		var action string
		opts := make([]huh.Option[string], 0, len(curriculumMenu))
		for _, m := range curriculumMenu {
			opts = append(opts, huh.NewOption(m.label, string(m.action)))
		}
		menu := a.newForm(huh.NewGroup(
			huh.NewSelect[string]().Title("Curriculum").Options(opts...).Value(&action),
		))
		if err := runForm(ctx, menu); err != nil {
			return err
		}

		act := curriculumAction(action)
		if act == actionSaveCurriculum {
			a.uploadLectureVideos(ctx)
			return a.saveWithRetryPrompt(ctx, domain.StepCurriculum)
		}

		edit, err := a.promptCurriculumEdit(ctx, act)
		if err != nil {
			return err
		}
		outcome, err := a.applyCurriculumEdit(edit)
		if err != nil {
			return err
		}
		if outcome != curriculum.Applied {
			fmt.Fprintln(out, formatter.StyleYellow.Render(refusalMessage(act, outcome)))
		}
	}
}

// promptCurriculumEdit asks for the target and details an action needs.
func (a *App) promptCurriculumEdit(ctx context.Context, act curriculumAction) (curriculumEdit, error) {
	edit := curriculumEdit{Action: act}
	c := a.Store.Snapshot().Curriculum

	if act.needsSection() {
		opts := make([]huh.Option[string], 0, len(c.Sections))
		for i, s := range c.Sections {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%d. %s", i+1, s.Title), s.ClientID))
		}
		f := a.newForm(huh.NewGroup(huh.NewSelect[string]().Title("Section").Options(opts...).Value(&edit.SectionID)))
		if err := runForm(ctx, f); err != nil {
			return edit, err
		}
	}

	var section domain.Section
	if idx := c.FindSection(edit.SectionID); idx >= 0 {
		section = c.Sections[idx]
	}

	if act.needsLecture() {
		opts := make([]huh.Option[string], 0, len(section.Lectures))
		for i, l := range section.Lectures {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%d. %s", i+1, l.Title), l.ClientID))
		}
		f := a.newForm(huh.NewGroup(huh.NewSelect[string]().Title("Lecture").Options(opts...).Value(&edit.LectureID)))
		if err := runForm(ctx, f); err != nil {
			return edit, err
		}
	}

	switch act {
	case actionRenameSection:
		edit.Title = section.Title
		f := a.newForm(huh.NewGroup(huh.NewInput().Title("Section title").Value(&edit.Title)))
		if err := runForm(ctx, f); err != nil {
			return edit, err
		}
	case actionEditLecture:
		idx := section.FindLecture(edit.LectureID)
		if idx < 0 {
			return edit, nil
		}
		lec := section.Lectures[idx]
		title, desc, notes := lec.Title, lec.Description, lec.Notes
		video := ""
		if lec.Video != nil {
			video = lec.Video.LocalPath
		}
		f := a.newForm(huh.NewGroup(
			huh.NewInput().Title("Lecture title").Value(&title),
			huh.NewText().Title("Description").Value(&desc),
			huh.NewText().Title("Notes").Value(&notes),
			huh.NewInput().Title("Video file").Description("Optional").Validate(validateOptionalFile).Value(&video),
		))
		if err := runForm(ctx, f); err != nil {
			return edit, err
		}
		edit.Patch = domain.LecturePatch{Title: &title, Description: &desc, Notes: &notes}
		if video = strings.TrimSpace(video); video != "" && (lec.Video == nil || lec.Video.LocalPath != video) {
			edit.Patch.Video = &domain.FileRef{LocalPath: video}
		}
	}
	return edit, nil
}

func (a *App) reviewStep(ctx context.Context) error {
	fmt.Fprintln(a.stdout(), formatter.FormatReview(a.Store.Snapshot()))
	done := true
	f := a.newForm(huh.NewGroup(
		huh.NewConfirm().Title("Finish the draft?").
			Description("All steps are saved. Choose No to start a new draft.").
			Affirmative("Finish").Negative("New draft").Value(&done),
	))
	if err := runForm(ctx, f); err != nil {
		return err
	}
	if !done {
		a.Store.Reset()
		return runWizard(ctx, a)
	}
	fmt.Fprintln(a.stdout(), formatter.StyleGreen.Render("Course draft complete."))
	return nil
}

// saveWithRetryPrompt saves step. Validation and service failures are shown
// and the author decides whether to edit the step again. Any other error
// ends the wizard.
func (a *App) saveWithRetryPrompt(ctx context.Context, step domain.Step) error {
	_, err := a.saveStep(ctx, step)
	if err == nil {
		return nil
	}

	var (
		verr *validate.ValidationError
		perr *persist.PersistenceError
	)
	if !errors.As(err, &verr) && !errors.As(err, &perr) && !errors.Is(err, persist.ErrSaveInFlight) {
		return err
	}

	again := true
	f := a.newForm(huh.NewGroup(
		huh.NewConfirm().Title("Edit and try again?").Value(&again),
	))
	if ferr := runForm(ctx, f); ferr != nil {
		return ferr
	}
	if !again {
		return errWizardAborted
	}
	return nil
}
