package courseapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexanderramin/coursedraft/internal/curriculum"
	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/", Token: "secret"}, zerolog.Nop())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestCreateCourseDraft_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/courses", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var body BasicInfoPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Intro to Go", body.Title)
		assert.Equal(t, "beginner", body.Level)
		require.NotNil(t, body.DurationValue)
		assert.Equal(t, 3, *body.DurationValue)

		writeJSON(w, http.StatusCreated, map[string]any{
			"status": "success",
			"data":   map[string]any{"_id": "c-42", "title": body.Title},
		})
	})

	created, err := client.CreateCourseDraft(context.Background(), domain.BasicInfo{
		Title:         "Intro to Go",
		Level:         domain.LevelBeginner,
		DurationValue: domain.IntPtr(3),
		DurationUnit:  domain.UnitWeek,
	})

	require.NoError(t, err)
	assert.Equal(t, "c-42", created.ID)
}

func TestCreateCourseDraft_MissingID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]any{"status": "success", "data": map[string]any{}})
	})

	_, err := client.CreateCourseDraft(context.Background(), domain.BasicInfo{})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestUpdateCourseBasicInfo_Path(t *testing.T) {
	var gotPath, gotMethod string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotMethod = r.URL.Path, r.Method
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.UpdateCourseBasicInfo(context.Background(), "c-1", domain.BasicInfo{Title: "New title"}))
	assert.Equal(t, "/courses/c-1/basic-info", gotPath)
	assert.Equal(t, http.MethodPatch, gotMethod)
}

func TestUpdateCourseAdvancedInfo_SendsListsAndUploadedMedia(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courses/c-1/advanced-info", r.URL.Path)
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Len(t, raw["whatYouWillLearn"], 4)
		assert.Equal(t, "https://cdn/t.png", raw["thumbnail"])
		assert.NotContains(t, raw, "trailer")
		writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
	})

	payload := NewAdvancedInfoPayload(domain.AdvancedInfo{
		Description:      "desc",
		WhatYouWillLearn: []string{"a", "b", "c", "d"},
		Thumbnail:        &domain.FileRef{LocalPath: "t.png", RemoteURL: "https://cdn/t.png"},
		Trailer:          &domain.FileRef{LocalPath: "trailer.mp4"},
	})
	require.NoError(t, client.UpdateCourseAdvancedInfo(context.Background(), "c-1", payload))
}

func TestUpdateCourseCurriculum_ReturnsIDMapping(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/courses/c-1/curriculum", r.URL.Path)

		var body curriculum.Serialized
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Sections, 1)
		assert.Equal(t, "s1", body.Sections[0].ClientID)

		writeJSON(w, http.StatusOK, map[string]any{
			"status": "success",
			"data": map[string]any{"sections": []map[string]any{{
				"clientId": "s1", "_id": "srv-s1",
				"lectures": []map[string]any{{"clientId": "l1", "id": "srv-l1"}},
			}}},
		})
	})

	c := domain.Curriculum{Sections: []domain.Section{{
		ClientID: "s1", Title: "Intro",
		Lectures: []domain.Lecture{{ClientID: "l1", Title: "Welcome"}},
	}}}
	ack, err := client.UpdateCourseCurriculum(context.Background(), "c-1", curriculum.Serialize(c))

	require.NoError(t, err)
	assert.Equal(t, curriculum.IDMapping{"s1": "srv-s1", "l1": "srv-l1"}, ack.IDMapping())
}

func TestUpdateCourseCurriculum_EmptyAck(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	ack, err := client.UpdateCourseCurriculum(context.Background(), "c-1", curriculum.Serialized{})
	require.NoError(t, err)
	assert.Empty(t, ack.IDMapping())
}

func TestListCategories(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/categories", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "success",
			"data": []map[string]any{
				{"_id": "1", "name": "Development", "slug": "development", "courseCount": 12, "isActive": true, "order": 1},
				{"_id": "2", "name": "Design", "slug": "design", "isActive": false, "order": 2},
			},
		})
	})

	cats, err := client.ListCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "development", cats[0].Slug)
	assert.Equal(t, 12, cats[0].CourseCount)
	assert.False(t, cats[1].IsActive)
}

func TestClient_HTTPErrorCarriesServerMessage(t *testing.T) {
	calls := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"status":  "fail",
			"message": "A course with this title already exists",
		})
	})

	_, err := client.CreateCourseDraft(context.Background(), domain.BasicInfo{Title: "Dup"})

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.StatusCode)
	assert.Equal(t, http.MethodPost, httpErr.Method)
	assert.Equal(t, "A course with this title already exists", httpErr.UserMessage())
	assert.Equal(t, 1, calls, "no retries")
}

func TestClient_HTTPErrorWithoutBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.UpdateCourseBasicInfo(context.Background(), "c-1", domain.BasicInfo{})

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Empty(t, httpErr.Message)
	assert.Contains(t, httpErr.UserMessage(), "500")
	assert.Contains(t, httpErr.Error(), "Internal Server Error")
}

func TestClient_Unavailable(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1"}, zerolog.Nop())

	_, err := client.ListCategories(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_ContextCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListCategories(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_OmitsAuthorizationWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": []any{}})
	}))
	defer srv.Close()

	cats, err := NewClient(Config{BaseURL: srv.URL}, zerolog.Nop()).ListCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cats)
}
