package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alexanderramin/coursedraft/internal/curriculum"
	"github.com/alexanderramin/coursedraft/internal/domain"
)

// draftFile is the JSON shape accepted by "draft --file" and "validate".
type draftFile struct {
	BasicInfo    basicInfoFile    `json:"basicInfo"`
	AdvancedInfo advancedInfoFile `json:"advancedInfo"`
	Curriculum   []sectionFile    `json:"curriculum"`
}

type basicInfoFile struct {
	Title            string `json:"title"`
	Subtitle         string `json:"subtitle"`
	Category         string `json:"category"`
	SubCategory      string `json:"subCategory"`
	Topic            string `json:"topic"`
	PrimaryLanguage  string `json:"primaryLanguage"`
	SubtitleLanguage string `json:"subtitleLanguage"`
	Level            string `json:"level"`
	DurationValue    *int   `json:"durationValue"`
	DurationUnit     string `json:"durationUnit"`
}

type advancedInfoFile struct {
	Description      string   `json:"description"`
	WhatYouWillLearn []string `json:"whatYouWillLearn"`
	TargetAudience   []string `json:"targetAudience"`
	Requirements     []string `json:"requirements"`
	Thumbnail        string   `json:"thumbnail"`
	Trailer          string   `json:"trailer"`
}

type sectionFile struct {
	Title    string        `json:"title"`
	Lectures []lectureFile `json:"lectures"`
}

type lectureFile struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	Video       string `json:"video"`
}

func loadDraftFile(path string) (*draftFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading draft file: %w", err)
	}
	var f draftFile
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing draft file %s: %w", path, err)
	}
	return &f, nil
}

func (f *draftFile) basicInfo() domain.BasicInfo {
	b := f.BasicInfo
	return domain.BasicInfo{
		Title:            b.Title,
		Subtitle:         b.Subtitle,
		Category:         b.Category,
		SubCategory:      b.SubCategory,
		Topic:            b.Topic,
		PrimaryLanguage:  b.PrimaryLanguage,
		SubtitleLanguage: b.SubtitleLanguage,
		Level:            domain.Level(b.Level),
		DurationValue:    b.DurationValue,
		DurationUnit:     domain.DurationUnit(b.DurationUnit),
	}
}

func (f *draftFile) advancedInfoPatch() domain.AdvancedInfoPatch {
	a := f.AdvancedInfo
	return domain.AdvancedInfoPatch{
		Description:      &a.Description,
		WhatYouWillLearn: nonNil(a.WhatYouWillLearn),
		TargetAudience:   nonNil(a.TargetAudience),
		Requirements:     nonNil(a.Requirements),
	}
}

// buildCurriculum replays the file's sections through the editor so every
// section and lecture gets a fresh client ID. An empty list keeps base, and a
// section listed without lectures keeps its default lecture.
func (f *draftFile) buildCurriculum(ed *curriculum.Editor, base domain.Curriculum) (domain.Curriculum, error) {
	if len(f.Curriculum) == 0 {
		return base, nil
	}
	c := domain.Curriculum{}
	for si, sf := range f.Curriculum {
		c = ed.AddSection(c)
		sec := c.Sections[si]
		var outcome curriculum.Outcome
		if c, outcome = curriculum.RenameSection(c, sec.ClientID, sf.Title); outcome != curriculum.Applied {
			return c, fmt.Errorf("section %d: rename %s", si+1, outcome)
		}
		for li, lf := range sf.Lectures {
			if li > 0 {
				if c, outcome = ed.AddLecture(c, sec.ClientID); outcome != curriculum.Applied {
					return c, fmt.Errorf("section %d: add lecture %s", si+1, outcome)
				}
			}
			lec := c.Sections[si].Lectures[li]
			patch := domain.LecturePatch{
				Title:       domain.StrPtr(lf.Title),
				Description: domain.StrPtr(lf.Description),
				Notes:       domain.StrPtr(lf.Notes),
			}
			if lf.Video != "" {
				patch.Video = &domain.FileRef{LocalPath: lf.Video}
			}
			if c, outcome = curriculum.UpdateLecture(c, sec.ClientID, lec.ClientID, patch); outcome != curriculum.Applied {
				return c, fmt.Errorf("section %d lecture %d: update %s", si+1, li+1, outcome)
			}
		}
	}
	return c, nil
}

// applyDraftFile loads f into the app's store. Media paths are kept local
// until the advanced-info step uploads them.
func (a *App) applyDraftFile(f *draftFile) error {
	a.Store.UpdateBasicInfo(domain.BasicInfoPatchFrom(f.basicInfo()))
	a.Store.UpdateAdvancedInfo(f.advancedInfoPatch())
	for kind, path := range map[domain.AssetKind]string{
		domain.AssetThumbnail: f.AdvancedInfo.Thumbnail,
		domain.AssetTrailer:   f.AdvancedInfo.Trailer,
	} {
		if path == "" {
			continue
		}
		if err := a.Store.AttachAsset(kind, domain.FileRef{LocalPath: path}); err != nil {
			return err
		}
	}

	c, err := f.buildCurriculum(a.Editor, a.Store.Snapshot().Curriculum)
	if err != nil {
		return fmt.Errorf("building curriculum: %w", err)
	}
	a.Store.SetCurriculum(c)
	return nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
