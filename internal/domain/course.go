package domain

// CourseDraft is the in-progress course being authored across the wizard steps.
// CourseID stays empty until the basic-info step has been saved once.
type CourseDraft struct {
	CourseID     string
	BasicInfo    BasicInfo
	AdvancedInfo AdvancedInfo
	Curriculum   Curriculum
	ActiveStep   Step
	IsSaving     bool
}

type BasicInfo struct {
	Title            string
	Subtitle         string
	Category         string
	SubCategory      string
	Topic            string
	PrimaryLanguage  string
	SubtitleLanguage string
	Level            Level
	DurationValue    *int
	DurationUnit     DurationUnit
}

// ListSlots is the fixed number of entries in each advanced-info list.
const ListSlots = 4

type AdvancedInfo struct {
	Description      string
	WhatYouWillLearn []string
	TargetAudience   []string
	Requirements     []string
	Thumbnail        *FileRef
	Trailer          *FileRef
}

// FileRef points at a media file. LocalPath is set when the user picks a file;
// RemoteURL is filled in once the file has been uploaded.
type FileRef struct {
	LocalPath string
	RemoteURL string
}

// Uploaded reports whether the file already lives on the asset host.
func (f *FileRef) Uploaded() bool {
	return f != nil && f.RemoteURL != ""
}

// AssetKind names a course-level media slot.
type AssetKind string

const (
	AssetThumbnail AssetKind = "thumbnail"
	AssetTrailer   AssetKind = "trailer"

	// AssetLectureVideo is stored on a lecture, not on the course.
	AssetLectureVideo AssetKind = "lecture-video"
)

// Clone returns a deep copy so callers can hold a draft without sharing slices.
func (d CourseDraft) Clone() CourseDraft {
	out := d
	out.BasicInfo = d.BasicInfo.Clone()
	out.AdvancedInfo = d.AdvancedInfo.Clone()
	out.Curriculum = d.Curriculum.Clone()
	return out
}

func (b BasicInfo) Clone() BasicInfo {
	out := b
	if b.DurationValue != nil {
		v := *b.DurationValue
		out.DurationValue = &v
	}
	return out
}

func (a AdvancedInfo) Clone() AdvancedInfo {
	out := a
	out.WhatYouWillLearn = cloneStrings(a.WhatYouWillLearn)
	out.TargetAudience = cloneStrings(a.TargetAudience)
	out.Requirements = cloneStrings(a.Requirements)
	out.Thumbnail = cloneFileRef(a.Thumbnail)
	out.Trailer = cloneFileRef(a.Trailer)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneFileRef(f *FileRef) *FileRef {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
