package testutil

import (
	"time"

	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/google/uuid"
)

// BasicInfo options
type BasicInfoOption func(*domain.BasicInfo)

func WithTitle(title string) BasicInfoOption {
	return func(b *domain.BasicInfo) {
		b.Title = title
	}
}

func WithLevel(l domain.Level) BasicInfoOption {
	return func(b *domain.BasicInfo) {
		b.Level = l
	}
}

func WithDuration(v int, unit domain.DurationUnit) BasicInfoOption {
	return func(b *domain.BasicInfo) {
		b.DurationValue = &v
		b.DurationUnit = unit
	}
}

// NewBasicInfo returns basic info that passes validation.
func NewBasicInfo(opts ...BasicInfoOption) domain.BasicInfo {
	b := domain.BasicInfo{
		Title:           "Intro to Go Services",
		Subtitle:        "Build and ship small HTTP services",
		Category:        "development",
		Topic:           "Go",
		PrimaryLanguage: "English",
		Level:           domain.LevelBeginner,
		DurationValue:   domain.IntPtr(4),
		DurationUnit:    domain.UnitWeek,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// NewAdvancedInfo returns advanced info that passes validation.
func NewAdvancedInfo() domain.AdvancedInfo {
	return domain.AdvancedInfo{
		Description:      "Hands-on course covering routing, storage and testing in Go.",
		WhatYouWillLearn: []string{"Structure a Go module", "Serve JSON over HTTP", "Persist to SQLite", "Test with testify"},
		TargetAudience:   []string{"Backend developers", "Bootcamp graduates", "Students of CS", "Career switchers"},
		Requirements:     []string{"Basic programming", "A recent Go install", "Terminal basics", "A text editor"},
	}
}

// NewCurriculum returns a curriculum with the given lecture count per
// section. Client IDs are random.
func NewCurriculum(lecturesPerSection ...int) domain.Curriculum {
	if len(lecturesPerSection) == 0 {
		lecturesPerSection = []int{1}
	}
	c := domain.Curriculum{}
	for i, n := range lecturesPerSection {
		s := domain.Section{
			ClientID: uuid.NewString(),
			Title:    "Section " + string(rune('A'+i)),
		}
		for j := 0; j < n; j++ {
			s.Lectures = append(s.Lectures, domain.Lecture{
				ClientID: uuid.NewString(),
				Title:    "Lecture " + string(rune('1'+j)),
			})
		}
		c.Sections = append(c.Sections, s)
	}
	return c
}

// NewSaveRecord returns a saved-outcome history record.
func NewSaveRecord(step domain.Step, courseID string) *domain.SaveRecord {
	return &domain.SaveRecord{
		ID:        uuid.NewString(),
		Step:      step,
		CourseID:  courseID,
		Title:     "Intro to Go Services",
		Outcome:   domain.OutcomeSaved,
		LatencyMs: 12,
		CreatedAt: time.Now().UTC(),
	}
}
