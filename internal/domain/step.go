package domain

import "fmt"

// Step is one stage of the authoring wizard.
type Step int

const (
	StepBasicInfo Step = iota
	StepAdvancedInfo
	StepCurriculum
	StepReview
)

// StepCount is the number of wizard steps.
const StepCount = 4

func (s Step) Valid() bool {
	return s >= StepBasicInfo && s < StepCount
}

// Next returns the following step. The review step is terminal.
func (s Step) Next() Step {
	if s >= StepReview {
		return StepReview
	}
	return s + 1
}

// Saveable reports whether the step has a slice to persist.
func (s Step) Saveable() bool {
	return s == StepBasicInfo || s == StepAdvancedInfo || s == StepCurriculum
}

func (s Step) String() string {
	switch s {
	case StepBasicInfo:
		return "basic_info"
	case StepAdvancedInfo:
		return "advanced_info"
	case StepCurriculum:
		return "curriculum"
	case StepReview:
		return "review"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Title is the human label shown in progress output.
func (s Step) Title() string {
	switch s {
	case StepBasicInfo:
		return "Basic Information"
	case StepAdvancedInfo:
		return "Advanced Information"
	case StepCurriculum:
		return "Curriculum"
	case StepReview:
		return "Review"
	default:
		return s.String()
	}
}

// ParseStep converts the String form back into a Step.
func ParseStep(s string) (Step, error) {
	for st := StepBasicInfo; st < StepCount; st++ {
		if st.String() == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown step %q", s)
}
