// Package draft holds the in-memory course draft for one authoring session.
//
// A Store is created per session and handed to every consumer explicitly.
// It performs no validation; callers gate mutations through the validate
// package and the persist coordinator.
package draft

import (
	"errors"
	"fmt"
	"sync"

	"github.com/alexanderramin/coursedraft/internal/curriculum"
	"github.com/alexanderramin/coursedraft/internal/domain"
)

// ErrStepOutOfRange is returned by SetActiveStep for steps outside the wizard.
var ErrStepOutOfRange = errors.New("step out of range")

// Store is the mutex-guarded draft for one session.
type Store struct {
	mu         sync.Mutex
	editor     *curriculum.Editor
	draft      domain.CourseDraft
	generation uint64
}

// NewStore returns a store holding a blank draft whose curriculum already
// contains one section with one lecture.
func NewStore(editor *curriculum.Editor) *Store {
	if editor == nil {
		editor = curriculum.NewEditor(nil)
	}
	s := &Store{editor: editor}
	s.draft = s.blank()
	return s
}

func (s *Store) blank() domain.CourseDraft {
	return domain.CourseDraft{
		ActiveStep: domain.StepBasicInfo,
		Curriculum: s.editor.NewCurriculum(),
	}
}

// Snapshot returns a deep copy of the current draft.
func (s *Store) Snapshot() domain.CourseDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

func (s *Store) UpdateBasicInfo(patch domain.BasicInfoPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.BasicInfo = patch.Apply(s.draft.BasicInfo)
}

func (s *Store) UpdateAdvancedInfo(patch domain.AdvancedInfoPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.AdvancedInfo = patch.Apply(s.draft.AdvancedInfo)
}

// SetCurriculum replaces the curriculum wholesale.
func (s *Store) SetCurriculum(c domain.Curriculum) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Curriculum = c.Clone()
}

// AttachAsset records an uploaded course-level media file.
func (s *Store) AttachAsset(kind domain.AssetKind, ref domain.FileRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case domain.AssetThumbnail:
		s.draft.AdvancedInfo.Thumbnail = &ref
	case domain.AssetTrailer:
		s.draft.AdvancedInfo.Trailer = &ref
	default:
		return fmt.Errorf("unknown asset kind %q", kind)
	}
	return nil
}

// DetachAsset clears the reference for kind.
func (s *Store) DetachAsset(kind domain.AssetKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case domain.AssetThumbnail:
		s.draft.AdvancedInfo.Thumbnail = nil
	case domain.AssetTrailer:
		s.draft.AdvancedInfo.Trailer = nil
	default:
		return fmt.Errorf("unknown asset kind %q", kind)
	}
	return nil
}

func (s *Store) SetActiveStep(step domain.Step) error {
	if !step.Valid() {
		return fmt.Errorf("set active step %d: %w", int(step), ErrStepOutOfRange)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.ActiveStep = step
	return nil
}

func (s *Store) ActiveStep() domain.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.ActiveStep
}

func (s *Store) SetIsSaving(saving bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.IsSaving = saving
}

func (s *Store) IsSaving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.IsSaving
}

func (s *Store) SetCourseID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.CourseID = id
}

func (s *Store) CourseID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.CourseID
}

// Reset discards the draft and starts a new generation. Saves begun under
// an older generation can no longer write into the store.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.draft = s.blank()
}

// Generation identifies the current draft lifetime.
func (s *Store) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// TryBeginSave sets IsSaving if it was clear. ok is false when another save
// already holds the flag.
func (s *Store) TryBeginSave() (generation uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft.IsSaving {
		return s.generation, false
	}
	s.draft.IsSaving = true
	return s.generation, true
}

// EndSave clears IsSaving unless the draft was reset since TryBeginSave.
func (s *Store) EndSave(generation uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation == s.generation {
		s.draft.IsSaving = false
	}
}

// Commit applies fn to the draft if it still belongs to generation. It
// reports false, leaving the draft untouched, for a stale generation.
func (s *Store) Commit(generation uint64, fn func(d *domain.CourseDraft)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if generation != s.generation {
		return false
	}
	fn(&s.draft)
	return true
}
