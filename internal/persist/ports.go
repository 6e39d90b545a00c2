package persist

import (
	"context"

	"github.com/alexanderramin/coursedraft/internal/courseapi"
	"github.com/alexanderramin/coursedraft/internal/curriculum"
	"github.com/alexanderramin/coursedraft/internal/domain"
)

// CourseAPI is the slice of the course service the coordinator calls.
// *courseapi.Client satisfies it.
type CourseAPI interface {
	CreateCourseDraft(ctx context.Context, info domain.BasicInfo) (courseapi.CreatedCourse, error)
	UpdateCourseBasicInfo(ctx context.Context, courseID string, info domain.BasicInfo) error
	UpdateCourseAdvancedInfo(ctx context.Context, courseID string, payload courseapi.AdvancedInfoPayload) error
	UpdateCourseCurriculum(ctx context.Context, courseID string, payload curriculum.Serialized) (courseapi.CurriculumAck, error)
}

// SaveRecorder persists save attempts. The sqlite save-log repository implements it.
type SaveRecorder interface {
	Record(ctx context.Context, rec *domain.SaveRecord) error
}
