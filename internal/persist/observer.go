package persist

import (
	"context"
	"time"

	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/rs/zerolog"
)

// SaveEvent describes one finished save attempt.
type SaveEvent struct {
	Step      domain.Step
	CourseID  string
	Title     string
	Outcome   domain.SaveOutcome
	Message   string
	LatencyMs int64
	Err       error
	At        time.Time
}

// Observer receives save events for logging and history.
type Observer interface {
	OnSaveComplete(event SaveEvent)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnSaveComplete(SaveEvent) {}

// LogObserver writes save events to a zerolog logger.
type LogObserver struct {
	log zerolog.Logger
}

func NewLogObserver(log zerolog.Logger) *LogObserver {
	return &LogObserver{log: log.With().Str("component", "persist").Logger()}
}

func (o *LogObserver) OnSaveComplete(event SaveEvent) {
	var e *zerolog.Event
	switch event.Outcome {
	case domain.OutcomeSaved:
		e = o.log.Info()
	case domain.OutcomeRejected:
		e = o.log.Debug()
	default:
		e = o.log.Warn().Err(event.Err)
	}
	e.Str("step", event.Step.String()).
		Str("course_id", event.CourseID).
		Str("outcome", string(event.Outcome)).
		Int64("latency_ms", event.LatencyMs).
		Msg("save_step")
}

// HistoryObserver records every save attempt through a SaveRecorder.
// Recording failures are logged and never reach the author.
type HistoryObserver struct {
	rec SaveRecorder
	log zerolog.Logger
}

func NewHistoryObserver(rec SaveRecorder, log zerolog.Logger) *HistoryObserver {
	return &HistoryObserver{rec: rec, log: log}
}

func (o *HistoryObserver) OnSaveComplete(event SaveEvent) {
	rec := &domain.SaveRecord{
		Step:      event.Step,
		CourseID:  event.CourseID,
		Title:     event.Title,
		Outcome:   event.Outcome,
		Message:   event.Message,
		LatencyMs: event.LatencyMs,
		CreatedAt: event.At,
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := o.rec.Record(ctx, rec); err != nil {
		o.log.Error().Err(err).Str("step", event.Step.String()).Msg("recording save history")
	}
}

// MultiObserver fans an event out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OnSaveComplete(event SaveEvent) {
	for _, o := range m {
		o.OnSaveComplete(event)
	}
}
