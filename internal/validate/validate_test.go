package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBasicInfo() domain.BasicInfo {
	return domain.BasicInfo{
		Title:           "Go for Web Developers",
		Subtitle:        "From zero to production services",
		Category:        "development",
		Topic:           "Go",
		PrimaryLanguage: "English",
		Level:           domain.LevelBeginner,
		DurationValue:   domain.IntPtr(6),
		DurationUnit:    domain.UnitWeek,
	}
}

func validAdvancedInfo() domain.AdvancedInfo {
	return domain.AdvancedInfo{
		Description:      "A practical course that builds three real services in Go.",
		WhatYouWillLearn: []string{"Write idiomatic Go", "Build HTTP APIs", "Test with testify", "Ship containers"},
		TargetAudience:   []string{"Backend developers", "Students of CS", "Node developers", "Python developers"},
		Requirements:     []string{"Basic programming", "A laptop with Go", "Terminal basics", "Curiosity to learn"},
	}
}

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	return verr
}

func TestBasicInfo_Valid(t *testing.T) {
	in := validBasicInfo()
	in.Title = "  Go for Web Developers  "

	out, err := New().BasicInfo(in)

	require.NoError(t, err)
	assert.Equal(t, "Go for Web Developers", out.Title)
	assert.Equal(t, 6, *out.DurationValue)
}

func TestBasicInfo_Rules(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(b *domain.BasicInfo)
		field   string
		wantMsg string
	}{
		{"title too short", func(b *domain.BasicInfo) { b.Title = "CSS" }, "title", "at least 5 characters"},
		{"padded title counts trimmed length", func(b *domain.BasicInfo) { b.Title = "  Abcd  " }, "title", "at least 5 characters"},
		{"title too long", func(b *domain.BasicInfo) { b.Title = strings.Repeat("x", 81) }, "title", "at most 80 characters"},
		{"subtitle too long", func(b *domain.BasicInfo) { b.Subtitle = strings.Repeat("s", 121) }, "subtitle", "at most 120 characters"},
		{"missing category", func(b *domain.BasicInfo) { b.Category = " " }, "category", "is required"},
		{"missing topic", func(b *domain.BasicInfo) { b.Topic = "" }, "topic", "is required"},
		{"missing language", func(b *domain.BasicInfo) { b.PrimaryLanguage = "" }, "primaryLanguage", "is required"},
		{"unknown level", func(b *domain.BasicInfo) { b.Level = "expert" }, "level", "must be one of: beginner, intermediate, advanced, all-levels"},
		{"empty level", func(b *domain.BasicInfo) { b.Level = "" }, "level", "must be one of"},
		{"unknown unit", func(b *domain.BasicInfo) { b.DurationUnit = "Year" }, "durationUnit", "must be one of: Day, Week, Month, Hour"},
		{"zero duration", func(b *domain.BasicInfo) { b.DurationValue = domain.IntPtr(0) }, "durationValue", "at least 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validBasicInfo()
			tt.mutate(&in)

			out, err := New().BasicInfo(in)

			verr := requireValidationError(t, err)
			assert.Equal(t, domain.StepBasicInfo, verr.Step)
			assert.Contains(t, verr.Message(tt.field), tt.wantMsg)
			assert.Len(t, verr.Fields, 1, "only %s should fail: %v", tt.field, verr.Fields)
			assert.Equal(t, in, out, "rejected input is returned unchanged")
		})
	}
}

func TestBasicInfo_OptionalFields(t *testing.T) {
	in := validBasicInfo()
	in.Subtitle = ""
	in.SubCategory = ""
	in.SubtitleLanguage = ""
	in.DurationValue = nil

	_, err := New().BasicInfo(in)
	assert.NoError(t, err)
}

func TestEnsureFour(t *testing.T) {
	assert.Equal(t, []string{"a", "", "", ""}, EnsureFour([]string{"a"}))
	assert.Equal(t, []string{"", "", "", ""}, EnsureFour(nil))
	assert.Equal(t, []string{"1", "2", "3", "4"}, EnsureFour([]string{"1", "2", "3", "4", "5", "6"}))
}

func TestAdvancedInfo_Valid(t *testing.T) {
	in := validAdvancedInfo()
	in.Requirements = append(in.Requirements, "a fifth entry that gets dropped")

	out, err := New().AdvancedInfo(in)

	require.NoError(t, err)
	assert.Len(t, out.Requirements, 4)
	assert.Len(t, in.Requirements, 5, "input must not change")
}

func TestAdvancedInfo_PadsBeforeValidating(t *testing.T) {
	in := validAdvancedInfo()
	in.WhatYouWillLearn = []string{"tiny"}

	_, err := New().AdvancedInfo(in)

	verr := requireValidationError(t, err)
	assert.Equal(t, "must be at least 5 characters", verr.Message("whatYouWillLearn[0]"))
	assert.Contains(t, verr.Fields, "whatYouWillLearn[1]")
	assert.Contains(t, verr.Fields, "whatYouWillLearn[3]")
	assert.NotContains(t, verr.Fields, "whatYouWillLearn", "count can never be the failure")
}

func TestAdvancedInfo_SingleEntryFailsOnSlotsNotCount(t *testing.T) {
	in := validAdvancedInfo()
	in.WhatYouWillLearn = []string{"short"}

	_, err := New().AdvancedInfo(in)

	verr := requireValidationError(t, err)
	for _, k := range verr.Keys() {
		assert.True(t, strings.HasPrefix(k, "whatYouWillLearn["), "unexpected field %s", k)
	}
	assert.NotContains(t, verr.Fields, "whatYouWillLearn")
}

func TestAdvancedInfo_WhitespaceSlotRejected(t *testing.T) {
	in := validAdvancedInfo()
	in.TargetAudience[2] = "        "

	_, err := New().AdvancedInfo(in)

	verr := requireValidationError(t, err)
	assert.Equal(t, "must be at least 5 characters", verr.Message("targetAudience[2]"))
	assert.Len(t, verr.Fields, 1)
}

func TestAdvancedInfo_DescriptionTooShort(t *testing.T) {
	in := validAdvancedInfo()
	in.Description = "Too short to describe"

	_, err := New().AdvancedInfo(in)

	verr := requireValidationError(t, err)
	assert.Equal(t, "must be at least 30 characters", verr.Message("description"))
}

func TestCurriculum_Rules(t *testing.T) {
	valid := domain.Curriculum{Sections: []domain.Section{
		{ClientID: "s1", Title: "Intro", Lectures: []domain.Lecture{{ClientID: "l1", Title: "Welcome"}}},
		{ClientID: "s2", Title: "Core", Lectures: []domain.Lecture{{ClientID: "l2", Title: "Types"}, {ClientID: "l3", Title: "Goroutines"}}},
	}}

	t.Run("valid with trimmed titles", func(t *testing.T) {
		in := valid.Clone()
		in.Sections[0].Title = "  Intro  "
		out, err := New().Curriculum(in)
		require.NoError(t, err)
		assert.Equal(t, "Intro", out.Sections[0].Title)
		assert.Equal(t, "  Intro  ", in.Sections[0].Title)
	})

	t.Run("short titles", func(t *testing.T) {
		in := valid.Clone()
		in.Sections[1].Title = "ab"
		in.Sections[1].Lectures[1].Title = "x"

		_, err := New().Curriculum(in)

		verr := requireValidationError(t, err)
		assert.Equal(t, domain.StepCurriculum, verr.Step)
		assert.Equal(t, []string{"sections[1].lectures[1].title", "sections[1].title"}, verr.Keys())
	})

	t.Run("no sections", func(t *testing.T) {
		_, err := New().Curriculum(domain.Curriculum{})
		verr := requireValidationError(t, err)
		assert.Contains(t, verr.Message("sections"), "at least 1")
	})

	t.Run("section without lectures", func(t *testing.T) {
		in := valid.Clone()
		in.Sections[0].Lectures = nil
		_, err := New().Curriculum(in)
		verr := requireValidationError(t, err)
		assert.Contains(t, verr.Message("sections[0].lectures"), "at least 1")
	})
}

func TestStep_DispatchesAndNormalizes(t *testing.T) {
	d := domain.CourseDraft{
		BasicInfo:    validBasicInfo(),
		AdvancedInfo: validAdvancedInfo(),
	}
	d.AdvancedInfo.TargetAudience = d.AdvancedInfo.TargetAudience[:4]

	out, err := New().Step(domain.StepAdvancedInfo, d)
	require.NoError(t, err)
	assert.Len(t, out.AdvancedInfo.WhatYouWillLearn, 4)

	d.BasicInfo.Title = "CSS"
	_, err = New().Step(domain.StepBasicInfo, d)
	verr := requireValidationError(t, err)
	assert.Contains(t, verr.Fields, "title")

	_, err = New().Step(domain.StepReview, d)
	assert.NoError(t, err)

	_, err = New().Step(domain.Step(9), d)
	assert.Error(t, err)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Step: domain.StepBasicInfo, Fields: map[string]string{
		"topic": "is required",
		"title": "must be at least 5 characters",
	}}
	assert.Equal(t, "basic_info: invalid fields: title: must be at least 5 characters; topic: is required", err.Error())
}
