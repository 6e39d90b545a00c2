package domain

import "time"

// SaveRecord is one persisted entry of the local save history.
type SaveRecord struct {
	ID        string
	Step      Step
	CourseID  string
	Title     string
	Outcome   SaveOutcome
	Message   string
	LatencyMs int64
	CreatedAt time.Time
}

// SaveOutcome classifies a recorded save attempt.
type SaveOutcome string

const (
	OutcomeSaved    SaveOutcome = "saved"
	OutcomeFailed   SaveOutcome = "failed"
	OutcomeRejected SaveOutcome = "rejected"
)
