package cli

import (
	"fmt"

	"github.com/alexanderramin/coursedraft/internal/curriculum"
	"github.com/alexanderramin/coursedraft/internal/domain"
)

// curriculumAction is one entry of the curriculum menu.
type curriculumAction string

const (
	actionAddSection     curriculumAction = "add-section"
	actionAddLecture     curriculumAction = "add-lecture"
	actionRenameSection  curriculumAction = "rename-section"
	actionEditLecture    curriculumAction = "edit-lecture"
	actionRemoveSection  curriculumAction = "remove-section"
	actionRemoveLecture  curriculumAction = "remove-lecture"
	actionMoveSectionUp  curriculumAction = "move-section-up"
	actionMoveSectionDn  curriculumAction = "move-section-down"
	actionMoveLectureUp  curriculumAction = "move-lecture-up"
	actionMoveLectureDn  curriculumAction = "move-lecture-down"
	actionSaveCurriculum curriculumAction = "save"
)

var curriculumMenu = []struct {
	action curriculumAction
	label  string
}{
	{actionAddSection, "Add section"},
	{actionAddLecture, "Add lecture"},
	{actionRenameSection, "Rename section"},
	{actionEditLecture, "Edit lecture"},
	{actionMoveSectionUp, "Move section up"},
	{actionMoveSectionDn, "Move section down"},
	{actionMoveLectureUp, "Move lecture up"},
	{actionMoveLectureDn, "Move lecture down"},
	{actionRemoveSection, "Remove section"},
	{actionRemoveLecture, "Remove lecture"},
	{actionSaveCurriculum, "Save curriculum and continue"},
}

func (a curriculumAction) needsSection() bool {
	return a != actionAddSection && a != actionSaveCurriculum
}

func (a curriculumAction) needsLecture() bool {
	switch a {
	case actionEditLecture, actionRemoveLecture, actionMoveLectureUp, actionMoveLectureDn:
		return true
	}
	return false
}

// curriculumEdit is a fully specified menu action.
type curriculumEdit struct {
	Action    curriculumAction
	SectionID string
	LectureID string
	Title     string
	Patch     domain.LecturePatch
}

// applyCurriculumEdit runs edit against the store's curriculum and writes the
// result back only when the editor applied it.
func (a *App) applyCurriculumEdit(edit curriculumEdit) (curriculum.Outcome, error) {
	c := a.Store.Snapshot().Curriculum
	var (
		next    domain.Curriculum
		outcome = curriculum.Applied
	)
	switch edit.Action {
	case actionAddSection:
		next = a.Editor.AddSection(c)
	case actionAddLecture:
		next, outcome = a.Editor.AddLecture(c, edit.SectionID)
	case actionRenameSection:
		next, outcome = curriculum.RenameSection(c, edit.SectionID, edit.Title)
	case actionEditLecture:
		next, outcome = curriculum.UpdateLecture(c, edit.SectionID, edit.LectureID, edit.Patch)
	case actionRemoveSection:
		next, outcome = curriculum.RemoveSection(c, edit.SectionID)
	case actionRemoveLecture:
		next, outcome = curriculum.RemoveLecture(c, edit.SectionID, edit.LectureID)
	case actionMoveSectionUp:
		next, outcome = curriculum.MoveSection(c, edit.SectionID, -1)
	case actionMoveSectionDn:
		next, outcome = curriculum.MoveSection(c, edit.SectionID, 1)
	case actionMoveLectureUp:
		next, outcome = curriculum.MoveLecture(c, edit.SectionID, edit.LectureID, -1)
	case actionMoveLectureDn:
		next, outcome = curriculum.MoveLecture(c, edit.SectionID, edit.LectureID, 1)
	default:
		return curriculum.Rejected, fmt.Errorf("unknown curriculum action %q", edit.Action)
	}
	if outcome == curriculum.Applied {
		a.Store.SetCurriculum(next)
	}
	return outcome, nil
}

// refusalMessage explains a refused edit to the author.
func refusalMessage(action curriculumAction, outcome curriculum.Outcome) string {
	if outcome == curriculum.NotFound {
		return "That item no longer exists."
	}
	switch action {
	case actionRemoveSection:
		return "A course needs at least one section."
	case actionRemoveLecture:
		return "Each section needs at least one lecture."
	case actionMoveSectionUp, actionMoveSectionDn, actionMoveLectureUp, actionMoveLectureDn:
		return "Already at the edge, nothing to move."
	default:
		return "Change was not applied."
	}
}

func updateLectureVideo(c domain.Curriculum, sectionID, lectureID string, ref domain.FileRef) domain.Curriculum {
	next, outcome := curriculum.UpdateLecture(c, sectionID, lectureID, domain.LecturePatch{Video: &ref})
	if outcome != curriculum.Applied {
		return c
	}
	return next
}
