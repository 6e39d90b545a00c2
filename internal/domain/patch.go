package domain

// BasicInfoPatch carries a partial basic-info update. Nil fields are left unchanged.
type BasicInfoPatch struct {
	Title            *string
	Subtitle         *string
	Category         *string
	SubCategory      *string
	Topic            *string
	PrimaryLanguage  *string
	SubtitleLanguage *string
	Level            *Level
	DurationValue    **int
	DurationUnit     *DurationUnit
}

// Apply returns b with every non-nil patch field replaced.
func (p BasicInfoPatch) Apply(b BasicInfo) BasicInfo {
	out := b.Clone()
	setStr(&out.Title, p.Title)
	setStr(&out.Subtitle, p.Subtitle)
	setStr(&out.Category, p.Category)
	setStr(&out.SubCategory, p.SubCategory)
	setStr(&out.Topic, p.Topic)
	setStr(&out.PrimaryLanguage, p.PrimaryLanguage)
	setStr(&out.SubtitleLanguage, p.SubtitleLanguage)
	if p.Level != nil {
		out.Level = *p.Level
	}
	if p.DurationValue != nil {
		if *p.DurationValue == nil {
			out.DurationValue = nil
		} else {
			v := **p.DurationValue
			out.DurationValue = &v
		}
	}
	if p.DurationUnit != nil {
		out.DurationUnit = *p.DurationUnit
	}
	return out
}

// BasicInfoPatchFrom builds a patch that sets every field of b.
func BasicInfoPatchFrom(b BasicInfo) BasicInfoPatch {
	dv := b.DurationValue
	return BasicInfoPatch{
		Title:            &b.Title,
		Subtitle:         &b.Subtitle,
		Category:         &b.Category,
		SubCategory:      &b.SubCategory,
		Topic:            &b.Topic,
		PrimaryLanguage:  &b.PrimaryLanguage,
		SubtitleLanguage: &b.SubtitleLanguage,
		Level:            &b.Level,
		DurationValue:    &dv,
		DurationUnit:     &b.DurationUnit,
	}
}

// AdvancedInfoPatch carries a partial advanced-info update. Nil fields are left unchanged.
type AdvancedInfoPatch struct {
	Description      *string
	WhatYouWillLearn []string
	TargetAudience   []string
	Requirements     []string
	Thumbnail        *FileRef
	Trailer          *FileRef
}

func (p AdvancedInfoPatch) Apply(a AdvancedInfo) AdvancedInfo {
	out := a.Clone()
	setStr(&out.Description, p.Description)
	if p.WhatYouWillLearn != nil {
		out.WhatYouWillLearn = cloneStrings(p.WhatYouWillLearn)
	}
	if p.TargetAudience != nil {
		out.TargetAudience = cloneStrings(p.TargetAudience)
	}
	if p.Requirements != nil {
		out.Requirements = cloneStrings(p.Requirements)
	}
	if p.Thumbnail != nil {
		out.Thumbnail = cloneFileRef(p.Thumbnail)
	}
	if p.Trailer != nil {
		out.Trailer = cloneFileRef(p.Trailer)
	}
	return out
}

// LecturePatch carries a partial lecture update. Nil fields are left unchanged.
type LecturePatch struct {
	Title       *string
	Description *string
	Notes       *string
	Video       *FileRef
}

func (p LecturePatch) Apply(l Lecture) Lecture {
	out := l.Clone()
	setStr(&out.Title, p.Title)
	setStr(&out.Description, p.Description)
	setStr(&out.Notes, p.Notes)
	if p.Video != nil {
		out.Video = cloneFileRef(p.Video)
	}
	return out
}

func setStr(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// StrPtr returns a pointer to s. Handy when building patches.
func StrPtr(s string) *string { return &s }

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
