package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/coursedraft/internal/courseapi"
	"github.com/alexanderramin/coursedraft/internal/curriculum"
	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/alexanderramin/coursedraft/internal/draft"
	"github.com/alexanderramin/coursedraft/internal/persist"
	"github.com/alexanderramin/coursedraft/internal/repository"
	"github.com/alexanderramin/coursedraft/internal/testutil"
	"github.com/alexanderramin/coursedraft/internal/validate"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	app     *App
	api     *testutil.FakeCourseAPI
	history *repository.SQLiteSaveLogRepo
	in      *bytes.Buffer
	out     *bytes.Buffer
	errOut  *bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteSaveLogRepo(database)
	recorder := repository.NewHistoryRecorder(testutil.NewTestUoW(database), repository.DefaultHistoryKeep)

	api := testutil.NewFakeCourseAPI()
	editor := curriculum.NewEditor(nil)
	store := draft.NewStore(editor)
	v := validate.New()

	env := &testEnv{
		api:     api,
		history: repo,
		in:      &bytes.Buffer{},
		out:     &bytes.Buffer{},
		errOut:  &bytes.Buffer{},
	}
	env.app = &App{
		Store:         store,
		Editor:        editor,
		Validator:     v,
		Coordinator:   persist.New(store, v, api, persist.NewHistoryObserver(recorder, zerolog.Nop())),
		Categories:    api,
		History:       repo,
		Log:           zerolog.Nop(),
		IsInteractive: func() bool { return false },
		In:            env.in,
		Out:           env.out,
		Err:           env.errOut,
	}
	return env
}

func (e *testEnv) run(args ...string) error {
	cmd := NewRootCmd(e.app)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

func validDraftFile() map[string]any {
	b := testutil.NewBasicInfo()
	a := testutil.NewAdvancedInfo()
	return map[string]any{
		"basicInfo": map[string]any{
			"title":           b.Title,
			"subtitle":        b.Subtitle,
			"category":        b.Category,
			"topic":           b.Topic,
			"primaryLanguage": b.PrimaryLanguage,
			"level":           string(b.Level),
			"durationValue":   *b.DurationValue,
			"durationUnit":    string(b.DurationUnit),
		},
		"advancedInfo": map[string]any{
			"description":      a.Description,
			"whatYouWillLearn": a.WhatYouWillLearn,
			"targetAudience":   a.TargetAudience,
			"requirements":     a.Requirements,
		},
		"curriculum": []map[string]any{
			{"title": "Getting started", "lectures": []map[string]any{
				{"title": "Install Go", "notes": "use 1.25"},
				{"title": "Hello HTTP"},
			}},
			{"title": "Storage", "lectures": []map[string]any{
				{"title": "SQLite basics"},
			}},
		},
	}
}

func writeDraftFile(t *testing.T, content map[string]any) string {
	t.Helper()
	data, err := json.Marshal(content)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "draft.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func methods(calls []testutil.APICall) []string {
	out := make([]string, 0, len(calls))
	for _, c := range calls {
		out = append(out, c.Method)
	}
	return out
}

func TestDraftFile_SavesEveryStepInOrder(t *testing.T) {
	env := newTestEnv(t)
	path := writeDraftFile(t, validDraftFile())

	require.NoError(t, env.run("draft", "--file", path))

	assert.Equal(t, []string{"CreateCourseDraft", "UpdateCourseAdvancedInfo", "UpdateCourseCurriculum"}, methods(env.api.Calls()))
	for _, c := range env.api.Calls()[1:] {
		assert.Equal(t, "course-1", c.CourseID)
	}

	sent := env.api.Calls()[2].Payload.(curriculum.Serialized)
	require.Len(t, sent.Sections, 2)
	assert.Equal(t, "Getting started", sent.Sections[0].Title)
	assert.Equal(t, "Hello HTTP", sent.Sections[0].Lectures[1].Title)
	assert.Equal(t, 1, sent.Sections[0].Lectures[1].Order)
	assert.Equal(t, "use 1.25", sent.Sections[0].Lectures[0].Notes)

	snap := env.app.Store.Snapshot()
	assert.Equal(t, domain.StepReview, snap.ActiveStep)
	assert.Equal(t, "course-1", snap.CourseID)

	out := env.out.String()
	assert.Contains(t, out, "Basic Information created")
	assert.Contains(t, out, "Curriculum saved")
	assert.Contains(t, out, "COURSE REVIEW")

	records, err := env.history.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, domain.StepCurriculum, records[0].Step)
	assert.Equal(t, domain.OutcomeSaved, records[0].Outcome)
}

func TestDraftFile_InvalidTitleStopsBeforeNetwork(t *testing.T) {
	env := newTestEnv(t)
	content := validDraftFile()
	content["basicInfo"].(map[string]any)["title"] = "CSS"
	path := writeDraftFile(t, content)

	err := env.run("draft", "--file", path)

	var verr *validate.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")
	assert.Zero(t, env.api.CallCount())
	assert.Contains(t, env.errOut.String(), "title")
	assert.Equal(t, domain.StepBasicInfo, env.app.Store.ActiveStep())

	records, err := env.history.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.OutcomeRejected, records[0].Outcome)
}

func TestDraftFile_ServiceFailureIsReported(t *testing.T) {
	env := newTestEnv(t)
	env.api.Err = &courseapi.HTTPError{Method: "POST", URL: "/courses", StatusCode: 409, Message: "a course with this title exists"}
	path := writeDraftFile(t, validDraftFile())

	err := env.run("draft", "--file", path)

	var perr *persist.PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, env.api.CallCount())
	assert.Contains(t, env.errOut.String(), "a course with this title exists")
	assert.Empty(t, env.app.Store.CourseID())
}

func TestDraftFile_UnknownFieldRejected(t *testing.T) {
	env := newTestEnv(t)
	content := validDraftFile()
	content["pricing"] = "free"
	path := writeDraftFile(t, content)

	err := env.run("draft", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pricing")
	assert.Zero(t, env.api.CallCount())
}

func TestDraft_RequiresTerminalWithoutFile(t *testing.T) {
	env := newTestEnv(t)
	err := env.run("draft")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--file")
}

type fakeUploader struct {
	calls []domain.AssetKind
	err   error
}

func (f *fakeUploader) Upload(_ context.Context, courseID string, kind domain.AssetKind, localPath string) (domain.FileRef, error) {
	f.calls = append(f.calls, kind)
	if f.err != nil {
		return domain.FileRef{}, f.err
	}
	return domain.FileRef{
		LocalPath: localPath,
		RemoteURL: "https://cdn.example.com/courses/" + courseID + "/" + string(kind) + "/" + filepath.Base(localPath),
	}, nil
}

func TestDraftFile_UploadsMediaBeforeAdvancedSave(t *testing.T) {
	env := newTestEnv(t)
	up := &fakeUploader{}
	env.app.Uploader = up

	content := validDraftFile()
	content["advancedInfo"].(map[string]any)["thumbnail"] = "/media/cover.png"
	content["curriculum"].([]map[string]any)[1]["lectures"] = []map[string]any{{"title": "SQLite basics", "video": "/media/sqlite.mp4"}}
	path := writeDraftFile(t, content)

	require.NoError(t, env.run("draft", "--file", path))

	assert.Equal(t, []domain.AssetKind{domain.AssetThumbnail, domain.AssetLectureVideo}, up.calls)
	adv := env.api.Calls()[1].Payload.(courseapi.AdvancedInfoPayload)
	assert.Equal(t, "https://cdn.example.com/courses/course-1/thumbnail/cover.png", adv.ThumbnailURL)
	assert.Empty(t, adv.TrailerURL)

	cur := env.api.Calls()[2].Payload.(curriculum.Serialized)
	assert.Equal(t, "https://cdn.example.com/courses/course-1/lecture-video/sqlite.mp4", cur.Sections[1].Lectures[0].VideoURL)
}

func TestDraftFile_MediaStaysLocalWithoutUploader(t *testing.T) {
	env := newTestEnv(t)
	content := validDraftFile()
	content["advancedInfo"].(map[string]any)["trailer"] = "/media/promo.mp4"
	path := writeDraftFile(t, content)

	require.NoError(t, env.run("draft", "--file", path))

	adv := env.api.Calls()[1].Payload.(courseapi.AdvancedInfoPayload)
	assert.Empty(t, adv.TrailerURL)
	assert.Contains(t, env.errOut.String(), "not configured")
	assert.Equal(t, "/media/promo.mp4", env.app.Store.Snapshot().AdvancedInfo.Trailer.LocalPath)
}

func TestDraftFile_FailedUploadStillSaves(t *testing.T) {
	env := newTestEnv(t)
	env.app.Uploader = &fakeUploader{err: errors.New("bucket unreachable")}
	content := validDraftFile()
	content["advancedInfo"].(map[string]any)["thumbnail"] = "/media/cover.png"
	path := writeDraftFile(t, content)

	require.NoError(t, env.run("draft", "--file", path))
	assert.Contains(t, env.errOut.String(), "bucket unreachable")
	assert.Equal(t, 3, env.api.CallCount())
}

func TestValidateCmd(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.run("validate", writeDraftFile(t, validDraftFile())))
		out := env.out.String()
		assert.Contains(t, out, "✔ Basic Information")
		assert.Contains(t, out, "✔ Advanced Information")
		assert.Contains(t, out, "✔ Curriculum")
		assert.Zero(t, env.api.CallCount())
	})

	t.Run("invalid", func(t *testing.T) {
		env := newTestEnv(t)
		content := validDraftFile()
		content["advancedInfo"].(map[string]any)["whatYouWillLearn"] = []string{"tiny"}
		content["curriculum"].([]map[string]any)[0]["title"] = "Go"

		err := env.run("validate", writeDraftFile(t, content))

		require.ErrorIs(t, err, errDraftInvalid)
		out := env.out.String()
		assert.Contains(t, out, "✔ Basic Information")
		assert.Contains(t, out, "whatYouWillLearn[0]")
		assert.Contains(t, out, "sections[0].title")
		assert.Zero(t, env.api.CallCount())
	})
}

func TestCategoriesCmd(t *testing.T) {
	env := newTestEnv(t)
	env.api.Categories = []domain.Category{
		{Name: "Development", Slug: "development", CourseCount: 4, IsActive: true},
		{Name: "Design", Slug: "design", CourseCount: 2, IsActive: true},
	}

	require.NoError(t, env.run("categories"))
	out := env.out.String()
	assert.Contains(t, out, "Development")
	assert.Contains(t, out, "design")
}

func TestCategoriesCmd_Unavailable(t *testing.T) {
	env := newTestEnv(t)
	env.api.Err = courseapi.ErrUnavailable

	err := env.run("categories")
	require.ErrorIs(t, err, courseapi.ErrUnavailable)
}

func seedHistory(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()
	for _, rec := range []*domain.SaveRecord{
		testutil.NewSaveRecord(domain.StepBasicInfo, "course-a"),
		testutil.NewSaveRecord(domain.StepAdvancedInfo, "course-a"),
		testutil.NewSaveRecord(domain.StepBasicInfo, "course-b"),
	} {
		require.NoError(t, env.history.Record(ctx, rec))
	}
}

func TestHistoryCmd(t *testing.T) {
	env := newTestEnv(t)
	seedHistory(t, env)

	require.NoError(t, env.run("history"))
	out := env.out.String()
	assert.Contains(t, out, "SAVE HISTORY")
	assert.Contains(t, out, "course-a")
	assert.Contains(t, out, "course-b")
	assert.Contains(t, out, "3 saved")
}

func TestHistoryCmd_FilterAndLimit(t *testing.T) {
	env := newTestEnv(t)
	seedHistory(t, env)

	require.NoError(t, env.run("history", "--course", "course-a", "-n", "1"))
	out := env.out.String()
	assert.Contains(t, out, "Advanced Information")
	assert.NotContains(t, out, "course-b")
	assert.Equal(t, 1, strings.Count(out, "● SAVED"))
}

func TestHistoryPrune(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		env := newTestEnv(t)
		seedHistory(t, env)
		env.in.WriteString("y\n")

		require.NoError(t, env.run("history", "prune", "--keep", "1"))
		assert.Contains(t, env.out.String(), "Deleted 2 record(s).")

		left, err := env.history.ListRecent(context.Background(), 10)
		require.NoError(t, err)
		assert.Len(t, left, 1)
	})

	t.Run("declined", func(t *testing.T) {
		env := newTestEnv(t)
		seedHistory(t, env)
		env.in.WriteString("\n")

		require.NoError(t, env.run("history", "prune", "--keep", "0"))
		assert.Contains(t, env.out.String(), "Nothing deleted.")

		left, err := env.history.ListRecent(context.Background(), 10)
		require.NoError(t, err)
		assert.Len(t, left, 3)
	})

	t.Run("skip prompt", func(t *testing.T) {
		env := newTestEnv(t)
		seedHistory(t, env)

		require.NoError(t, env.run("history", "prune", "--keep", "0", "--yes"))
		left, err := env.history.ListRecent(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, left)
	})
}
