package validate

// Step schemas. Field names follow the JSON names the course API uses so
// error keys line up with the payload the user is fixing.

type basicInfoSchema struct {
	Title            string `json:"title" validate:"min=5,max=80"`
	Subtitle         string `json:"subtitle" validate:"max=120"`
	Category         string `json:"category" validate:"required"`
	SubCategory      string `json:"subCategory"`
	Topic            string `json:"topic" validate:"required"`
	PrimaryLanguage  string `json:"primaryLanguage" validate:"required"`
	SubtitleLanguage string `json:"subtitleLanguage"`
	Level            string `json:"level" validate:"oneof=beginner intermediate advanced all-levels"`
	DurationValue    *int   `json:"durationValue" validate:"omitnil,min=1"`
	DurationUnit     string `json:"durationUnit" validate:"oneof=Day Week Month Hour"`
}

type advancedInfoSchema struct {
	Description      string   `json:"description" validate:"min=30"`
	WhatYouWillLearn []string `json:"whatYouWillLearn" validate:"len=4,dive,min=5"`
	TargetAudience   []string `json:"targetAudience" validate:"len=4,dive,min=5"`
	Requirements     []string `json:"requirements" validate:"len=4,dive,min=5"`
}

type curriculumSchema struct {
	Sections []sectionSchema `json:"sections" validate:"min=1,dive"`
}

type sectionSchema struct {
	Title    string          `json:"title" validate:"min=3"`
	Lectures []lectureSchema `json:"lectures" validate:"min=1,dive"`
}

type lectureSchema struct {
	Title string `json:"title" validate:"min=3"`
}
