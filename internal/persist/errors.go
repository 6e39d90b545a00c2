package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/coursedraft/internal/courseapi"
	"github.com/alexanderramin/coursedraft/internal/domain"
)

var (
	// ErrSaveInFlight rejects a save while another one for the same draft is running.
	ErrSaveInFlight = errors.New("a save is already in progress")

	// ErrDraftReset means the draft was discarded while its save was in flight.
	// The server result was not applied.
	ErrDraftReset = errors.New("draft was reset during save")
)

// PreconditionError is a sequencing bug in the caller: saving a step that is
// not active, saving the review step, or saving before a course exists.
type PreconditionError struct {
	Step   domain.Step
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("cannot save %s: %s", e.Step, e.Reason)
}

// PersistenceError is a failed round trip to the course API. Message is safe
// to show to the author; Err keeps the transport error for errors.As.
type PersistenceError struct {
	Step    domain.Step
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("saving %s: %s", e.Step, e.Message)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func newPersistenceError(step domain.Step, err error) *PersistenceError {
	return &PersistenceError{Step: step, Message: userMessage(step, err), Err: err}
}

func userMessage(step domain.Step, err error) string {
	var httpErr *courseapi.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.UserMessage()
	case errors.Is(err, courseapi.ErrUnavailable):
		return "could not reach the course service, check your connection and try again"
	case errors.Is(err, context.Canceled):
		return "save canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "the course service took too long to answer"
	default:
		return fmt.Sprintf("failed to save %s", step.Title())
	}
}
