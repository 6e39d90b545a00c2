package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/alexanderramin/coursedraft/internal/persist"
	"github.com/alexanderramin/coursedraft/internal/validate"
)

// FormatStepProgress renders the wizard breadcrumb with the active step highlighted.
func FormatStepProgress(active domain.Step) string {
	parts := make([]string, 0, domain.StepCount)
	for st := domain.StepBasicInfo; st < domain.StepCount; st++ {
		label := fmt.Sprintf("%d. %s", int(st)+1, st.Title())
		switch {
		case st == active:
			parts = append(parts, StyleHeader.Render("● "+label))
		case st < active:
			parts = append(parts, StyleGreen.Render("✔ "+label))
		default:
			parts = append(parts, Dim("○ "+label))
		}
	}
	return strings.Join(parts, Dim("  ›  "))
}

// FormatBasicInfo renders the basic-info slice as label/value lines.
func FormatBasicInfo(b domain.BasicInfo) string {
	duration := "--"
	if b.DurationValue != nil {
		duration = fmt.Sprintf("%d %s", *b.DurationValue, b.DurationUnit)
	}
	rows := [][2]string{
		{"Title", b.Title},
		{"Subtitle", b.Subtitle},
		{"Category", joinNonEmpty(" / ", b.Category, b.SubCategory)},
		{"Topic", b.Topic},
		{"Language", joinNonEmpty(" · subtitles: ", b.PrimaryLanguage, b.SubtitleLanguage)},
		{"Level", string(b.Level)},
		{"Duration", duration},
	}
	return labelLines(rows)
}

// FormatAdvancedInfo renders the advanced-info slice including its lists.
func FormatAdvancedInfo(a domain.AdvancedInfo) string {
	var b strings.Builder
	b.WriteString(labelLines([][2]string{
		{"Thumbnail", fileRefLabel(a.Thumbnail)},
		{"Trailer", fileRefLabel(a.Trailer)},
	}))
	b.WriteString("\n" + StyleDim.Render("DESCRIPTION") + "\n")
	b.WriteString("  " + orDash(Truncate(a.Description, 240)) + "\n")
	writeList(&b, "WHAT YOU WILL LEARN", a.WhatYouWillLearn)
	writeList(&b, "TARGET AUDIENCE", a.TargetAudience)
	writeList(&b, "REQUIREMENTS", a.Requirements)
	return b.String()
}

// FormatCurriculumTree renders sections and their lectures as a tree. Server
// IDs are shown once the curriculum has been saved.
func FormatCurriculumTree(c domain.Curriculum) string {
	if len(c.Sections) == 0 {
		return Dim("No sections yet.") + "\n"
	}
	var b strings.Builder
	for si, s := range c.Sections {
		fmt.Fprintf(&b, "%s %s%s\n",
			StyleBlue.Render(fmt.Sprintf("Section %d:", si+1)),
			Bold(s.Title), serverTag(s.ServerID))
		for li, l := range s.Lectures {
			branch := "├─"
			if li == len(s.Lectures)-1 {
				branch = "└─"
			}
			line := fmt.Sprintf("  %s %d.%d %s", Dim(branch), si+1, li+1, l.Title)
			if l.Video != nil {
				line += " " + StylePurple.Render("▶")
			}
			b.WriteString(line + serverTag(l.ServerID) + "\n")
		}
	}
	fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("%d sections, %d lectures", len(c.Sections), c.LectureCount())))
	return b.String()
}

// FormatReview renders the whole draft for the final review step.
func FormatReview(d domain.CourseDraft) string {
	var b strings.Builder
	if d.CourseID != "" {
		b.WriteString(labelLines([][2]string{{"Course ID", d.CourseID}}) + "\n")
	}
	b.WriteString(Header(domain.StepBasicInfo.Title()) + "\n")
	b.WriteString(FormatBasicInfo(d.BasicInfo) + "\n")
	b.WriteString(Header(domain.StepAdvancedInfo.Title()) + "\n")
	b.WriteString(FormatAdvancedInfo(d.AdvancedInfo) + "\n")
	b.WriteString(Header(domain.StepCurriculum.Title()) + "\n")
	b.WriteString(FormatCurriculumTree(d.Curriculum))
	return RenderBox("Course Review", strings.TrimRight(b.String(), "\n"))
}

// FormatValidationError lists every invalid field of a rejected step.
func FormatValidationError(verr *validate.ValidationError) string {
	var b strings.Builder
	b.WriteString(StyleRed.Render(fmt.Sprintf("%s has %d invalid field(s):", verr.Step.Title(), len(verr.Fields))))
	b.WriteString("\n")
	for _, k := range verr.Keys() {
		fmt.Fprintf(&b, "%s%s %s\n", StyleRed.Render("  - "), Bold(k), verr.Fields[k])
	}
	return b.String()
}

// FormatSaveResult confirms a successful step save.
func FormatSaveResult(r persist.Result) string {
	verb := "saved"
	if r.Created {
		verb = "created"
	}
	msg := StyleGreen.Render(fmt.Sprintf("✔ %s %s", r.Step.Title(), verb))
	if r.CourseID != "" {
		msg += Dim(" (course " + r.CourseID + ")")
	}
	return msg + "\n"
}

// FormatSaveError renders a save failure in the form the author should see.
func FormatSaveError(err error) string {
	var (
		verr *validate.ValidationError
		perr *persist.PersistenceError
	)
	switch {
	case errors.As(err, &verr):
		return FormatValidationError(verr)
	case errors.As(err, &perr):
		return StyleRed.Render("✖ "+perr.Message) + "\n" + Dim("Your changes are kept. Try saving again.") + "\n"
	case errors.Is(err, persist.ErrSaveInFlight):
		return StyleYellow.Render("A save is already running. Wait for it to finish.") + "\n"
	case errors.Is(err, persist.ErrDraftReset):
		return StyleYellow.Render("The draft was discarded while saving.") + "\n"
	default:
		return StyleRed.Render("✖ "+err.Error()) + "\n"
	}
}

func labelLines(rows [][2]string) string {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	var b strings.Builder
	for _, r := range rows {
		label := strings.ToUpper(r[0])
		fmt.Fprintf(&b, "  %s%s  %s\n", StyleDim.Render(label), strings.Repeat(" ", width-len(label)), orDash(r[1]))
	}
	return b.String()
}

func writeList(b *strings.Builder, title string, items []string) {
	b.WriteString("\n" + StyleDim.Render(title) + "\n")
	n := 0
	for _, it := range items {
		if strings.TrimSpace(it) == "" {
			continue
		}
		n++
		fmt.Fprintf(b, "  %s %s\n", StyleGreen.Render("•"), it)
	}
	if n == 0 {
		b.WriteString("  " + Dim("--") + "\n")
	}
}

func fileRefLabel(f *domain.FileRef) string {
	switch {
	case f == nil:
		return ""
	case f.Uploaded():
		return f.RemoteURL
	default:
		return f.LocalPath + " " + StyleYellow.Render("(not uploaded)")
	}
}

func serverTag(id string) string {
	if id == "" {
		return ""
	}
	return " " + Dim("#"+id)
}

func joinNonEmpty(sep string, vals ...string) string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}
