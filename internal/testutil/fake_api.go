package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/coursedraft/internal/courseapi"
	"github.com/alexanderramin/coursedraft/internal/curriculum"
	"github.com/alexanderramin/coursedraft/internal/domain"
)

// APICall records one invocation on FakeCourseAPI.
type APICall struct {
	Method   string
	CourseID string
	Payload  any
}

// FakeCourseAPI is an in-memory course API. Set Err to fail every call, or
// Gate to hold calls until the channel is closed. Entered receives one value
// per call as it starts.
type FakeCourseAPI struct {
	mu    sync.Mutex
	calls []APICall

	CreatedID  string
	Ack        courseapi.CurriculumAck
	Categories []domain.Category
	Err        error

	Gate    chan struct{}
	Entered chan struct{}
}

func NewFakeCourseAPI() *FakeCourseAPI {
	return &FakeCourseAPI{CreatedID: "course-1"}
}

func (f *FakeCourseAPI) record(ctx context.Context, method, courseID string, payload any) error {
	f.mu.Lock()
	f.calls = append(f.calls, APICall{Method: method, CourseID: courseID, Payload: payload})
	gate, entered, err := f.Gate, f.Entered, f.Err
	f.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// Calls returns a copy of the recorded calls.
func (f *FakeCourseAPI) Calls() []APICall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]APICall, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *FakeCourseAPI) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *FakeCourseAPI) CreateCourseDraft(ctx context.Context, info domain.BasicInfo) (courseapi.CreatedCourse, error) {
	if err := f.record(ctx, "CreateCourseDraft", "", info); err != nil {
		return courseapi.CreatedCourse{}, err
	}
	return courseapi.CreatedCourse{ID: f.CreatedID}, nil
}

func (f *FakeCourseAPI) UpdateCourseBasicInfo(ctx context.Context, courseID string, info domain.BasicInfo) error {
	return f.record(ctx, "UpdateCourseBasicInfo", courseID, info)
}

func (f *FakeCourseAPI) UpdateCourseAdvancedInfo(ctx context.Context, courseID string, payload courseapi.AdvancedInfoPayload) error {
	return f.record(ctx, "UpdateCourseAdvancedInfo", courseID, payload)
}

func (f *FakeCourseAPI) UpdateCourseCurriculum(ctx context.Context, courseID string, payload curriculum.Serialized) (courseapi.CurriculumAck, error) {
	if err := f.record(ctx, "UpdateCourseCurriculum", courseID, payload); err != nil {
		return courseapi.CurriculumAck{}, err
	}
	return f.Ack, nil
}

func (f *FakeCourseAPI) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := f.record(ctx, "ListCategories", "", nil); err != nil {
		return nil, err
	}
	return f.Categories, nil
}
