// Package persist drives one wizard step at a time to the course API and
// reconciles the server's answer into the draft.
package persist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/coursedraft/internal/courseapi"
	"github.com/alexanderramin/coursedraft/internal/curriculum"
	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/alexanderramin/coursedraft/internal/draft"
	"github.com/alexanderramin/coursedraft/internal/validate"
)

// Result reports a successful save.
type Result struct {
	Step     domain.Step
	CourseID string
	Created  bool // this save created the course
	NextStep domain.Step
	Draft    domain.CourseDraft
}

// Coordinator saves wizard steps for a single draft.
type Coordinator struct {
	store     *draft.Store
	validator *validate.Validator
	api       CourseAPI
	observer  Observer
	now       func() time.Time
}

func New(store *draft.Store, v *validate.Validator, api CourseAPI, observer Observer) *Coordinator {
	if observer == nil {
		observer = NoopObserver{}
	}
	if v == nil {
		v = validate.New()
	}
	return &Coordinator{
		store:     store,
		validator: v,
		api:       api,
		observer:  observer,
		now:       time.Now,
	}
}

// SaveStep validates and persists the slice of the draft owned by step, then
// advances the active step by one. At most one save runs per draft; a
// concurrent call gets ErrSaveInFlight without touching the network.
//
// Errors are one of ErrSaveInFlight, *PreconditionError,
// *validate.ValidationError, *PersistenceError or ErrDraftReset. Failed saves
// leave the draft and active step as they were and are never retried.
func (c *Coordinator) SaveStep(ctx context.Context, step domain.Step) (Result, error) {
	gen, ok := c.store.TryBeginSave()
	if !ok {
		return Result{}, ErrSaveInFlight
	}
	defer c.store.EndSave(gen)

	snap := c.store.Snapshot()
	if err := checkPreconditions(step, snap); err != nil {
		return Result{}, err
	}

	normalized, err := c.validator.Step(step, snap)
	if err != nil {
		c.observer.OnSaveComplete(SaveEvent{
			Step:     step,
			CourseID: snap.CourseID,
			Title:    snap.BasicInfo.Title,
			Outcome:  domain.OutcomeRejected,
			Message:  err.Error(),
			Err:      err,
			At:       c.now(),
		})
		return Result{}, err
	}

	start := c.now()
	courseID, ids, err := c.send(ctx, step, normalized)
	latency := c.now().Sub(start).Milliseconds()
	if err != nil {
		perr := newPersistenceError(step, err)
		c.observer.OnSaveComplete(SaveEvent{
			Step:      step,
			CourseID:  snap.CourseID,
			Title:     normalized.BasicInfo.Title,
			Outcome:   domain.OutcomeFailed,
			Message:   perr.Message,
			LatencyMs: latency,
			Err:       err,
			At:        c.now(),
		})
		return Result{}, perr
	}

	next := step.Next()
	var out domain.CourseDraft
	committed := c.store.Commit(gen, func(d *domain.CourseDraft) {
		d.CourseID = courseID
		switch step {
		case domain.StepBasicInfo:
			d.BasicInfo = normalized.BasicInfo
		case domain.StepAdvancedInfo:
			d.AdvancedInfo = normalized.AdvancedInfo
		case domain.StepCurriculum:
			d.Curriculum = curriculum.ApplyServerIDs(normalized.Curriculum, ids)
		}
		d.ActiveStep = next
		out = d.Clone()
	})
	if !committed {
		return Result{}, fmt.Errorf("saving %s: %w", step, ErrDraftReset)
	}

	c.observer.OnSaveComplete(SaveEvent{
		Step:      step,
		CourseID:  courseID,
		Title:     out.BasicInfo.Title,
		Outcome:   domain.OutcomeSaved,
		LatencyMs: latency,
		At:        c.now(),
	})
	return Result{
		Step:     step,
		CourseID: courseID,
		Created:  snap.CourseID == "" && courseID != "",
		NextStep: next,
		Draft:    out,
	}, nil
}

func checkPreconditions(step domain.Step, d domain.CourseDraft) error {
	switch {
	case !step.Saveable():
		return &PreconditionError{Step: step, Reason: "step has nothing to save"}
	case step != d.ActiveStep:
		return &PreconditionError{Step: step, Reason: fmt.Sprintf("active step is %s", d.ActiveStep)}
	case step != domain.StepBasicInfo && d.CourseID == "":
		return &PreconditionError{Step: step, Reason: "course ID is missing, save basic information first"}
	}
	return nil
}

// send makes exactly one API call for the step and returns the course ID the
// draft should carry afterwards plus any server IDs for curriculum nodes.
func (c *Coordinator) send(ctx context.Context, step domain.Step, d domain.CourseDraft) (string, curriculum.IDMapping, error) {
	switch step {
	case domain.StepBasicInfo:
		if d.CourseID != "" {
			if err := c.api.UpdateCourseBasicInfo(ctx, d.CourseID, d.BasicInfo); err != nil {
				return "", nil, err
			}
			return d.CourseID, nil, nil
		}
		created, err := c.api.CreateCourseDraft(ctx, d.BasicInfo)
		if err != nil {
			return "", nil, err
		}
		if created.ID == "" {
			return "", nil, fmt.Errorf("create course: %w", courseapi.ErrMalformedResponse)
		}
		return created.ID, nil, nil
	case domain.StepAdvancedInfo:
		err := c.api.UpdateCourseAdvancedInfo(ctx, d.CourseID, courseapi.NewAdvancedInfoPayload(d.AdvancedInfo))
		return d.CourseID, nil, err
	case domain.StepCurriculum:
		ack, err := c.api.UpdateCourseCurriculum(ctx, d.CourseID, curriculum.Serialize(d.Curriculum))
		if err != nil {
			return "", nil, err
		}
		return d.CourseID, ack.IDMapping(), nil
	}
	return "", nil, errors.New("unreachable: step checked by preconditions")
}
