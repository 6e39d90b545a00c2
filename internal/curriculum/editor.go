// Package curriculum implements structural edits over a course's section and
// lecture tree. Every command takes the current curriculum and returns a new
// one; the input is never mutated.
package curriculum

import (
	"fmt"
	"sync"

	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/google/uuid"
)

// IDSource generates client-local identifiers.
type IDSource func() string

// Outcome reports what a command did. Refusals are values, not errors: the
// caller receives the unchanged curriculum alongside Rejected or NotFound.
type Outcome int

const (
	Applied Outcome = iota
	Rejected
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Rejected:
		return "rejected"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Editor hands out client-local IDs for new sections and lectures. IDs are
// unique for the lifetime of the editor and never reused, even after removal.
type Editor struct {
	mu     sync.Mutex
	newID  IDSource
	issued map[string]bool
}

// NewEditor returns an Editor using ids, or random UUIDs when ids is nil.
func NewEditor(ids IDSource) *Editor {
	if ids == nil {
		ids = uuid.NewString
	}
	return &Editor{newID: ids, issued: make(map[string]bool)}
}

// maxIDAttempts bounds how many empty or repeated IDs the source may return
// before nextID gives up.
const maxIDAttempts = 100

func (e *Editor) nextID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	for range maxIDAttempts {
		id := e.newID()
		if id != "" && !e.issued[id] {
			e.issued[id] = true
			return id
		}
	}
	panic(fmt.Sprintf("curriculum: id source returned no fresh id in %d attempts", maxIDAttempts))
}

// NewLecture returns a lecture with default content and a fresh client ID.
func (e *Editor) NewLecture() domain.Lecture {
	return domain.Lecture{
		ClientID: e.nextID(),
		Title:    domain.DefaultLectureTitle,
	}
}

// NewSection returns a section holding one default lecture.
func (e *Editor) NewSection() domain.Section {
	return domain.Section{
		ClientID: e.nextID(),
		Title:    domain.DefaultSectionTitle,
		Lectures: []domain.Lecture{e.NewLecture()},
	}
}

// NewCurriculum returns the starting curriculum of a new draft.
func (e *Editor) NewCurriculum() domain.Curriculum {
	return domain.Curriculum{Sections: []domain.Section{e.NewSection()}}
}

// AddSection appends a default section.
func (e *Editor) AddSection(c domain.Curriculum) domain.Curriculum {
	out := c.Clone()
	out.Sections = append(out.Sections, e.NewSection())
	return out
}

// AddLecture appends a default lecture to the section.
func (e *Editor) AddLecture(c domain.Curriculum, sectionID string) (domain.Curriculum, Outcome) {
	idx := c.FindSection(sectionID)
	if idx < 0 {
		return c, NotFound
	}
	out := c.Clone()
	out.Sections[idx].Lectures = append(out.Sections[idx].Lectures, e.NewLecture())
	return out, Applied
}

// RemoveSection drops the section unless it is the only one left.
func RemoveSection(c domain.Curriculum, sectionID string) (domain.Curriculum, Outcome) {
	idx := c.FindSection(sectionID)
	if idx < 0 {
		return c, NotFound
	}
	if len(c.Sections) <= 1 {
		return c, Rejected
	}
	out := c.Clone()
	out.Sections = append(out.Sections[:idx], out.Sections[idx+1:]...)
	return out, Applied
}

// RemoveLecture drops the lecture unless it is the last one in its section.
func RemoveLecture(c domain.Curriculum, sectionID, lectureID string) (domain.Curriculum, Outcome) {
	sIdx := c.FindSection(sectionID)
	if sIdx < 0 {
		return c, NotFound
	}
	lIdx := c.Sections[sIdx].FindLecture(lectureID)
	if lIdx < 0 {
		return c, NotFound
	}
	if len(c.Sections[sIdx].Lectures) <= 1 {
		return c, Rejected
	}
	out := c.Clone()
	lectures := out.Sections[sIdx].Lectures
	out.Sections[sIdx].Lectures = append(lectures[:lIdx], lectures[lIdx+1:]...)
	return out, Applied
}

// RenameSection sets the section title.
func RenameSection(c domain.Curriculum, sectionID, title string) (domain.Curriculum, Outcome) {
	idx := c.FindSection(sectionID)
	if idx < 0 {
		return c, NotFound
	}
	out := c.Clone()
	out.Sections[idx].Title = title
	return out, Applied
}

// UpdateLecture applies patch to a single lecture.
func UpdateLecture(c domain.Curriculum, sectionID, lectureID string, patch domain.LecturePatch) (domain.Curriculum, Outcome) {
	sIdx := c.FindSection(sectionID)
	if sIdx < 0 {
		return c, NotFound
	}
	lIdx := c.Sections[sIdx].FindLecture(lectureID)
	if lIdx < 0 {
		return c, NotFound
	}
	out := c.Clone()
	out.Sections[sIdx].Lectures[lIdx] = patch.Apply(out.Sections[sIdx].Lectures[lIdx])
	return out, Applied
}

// MoveSection shifts a section by delta positions. Moves past either end are rejected.
func MoveSection(c domain.Curriculum, sectionID string, delta int) (domain.Curriculum, Outcome) {
	idx := c.FindSection(sectionID)
	if idx < 0 {
		return c, NotFound
	}
	target := idx + delta
	if delta == 0 || target < 0 || target >= len(c.Sections) {
		return c, Rejected
	}
	out := c.Clone()
	moveItem(out.Sections, idx, target)
	return out, Applied
}

// MoveLecture shifts a lecture by delta positions within its section.
func MoveLecture(c domain.Curriculum, sectionID, lectureID string, delta int) (domain.Curriculum, Outcome) {
	sIdx := c.FindSection(sectionID)
	if sIdx < 0 {
		return c, NotFound
	}
	lIdx := c.Sections[sIdx].FindLecture(lectureID)
	if lIdx < 0 {
		return c, NotFound
	}
	target := lIdx + delta
	if delta == 0 || target < 0 || target >= len(c.Sections[sIdx].Lectures) {
		return c, Rejected
	}
	out := c.Clone()
	moveItem(out.Sections[sIdx].Lectures, lIdx, target)
	return out, Applied
}

func moveItem[T any](items []T, from, to int) {
	item := items[from]
	if from < to {
		copy(items[from:to], items[from+1:to+1])
	} else {
		copy(items[to+1:from+1], items[to:from])
	}
	items[to] = item
}
