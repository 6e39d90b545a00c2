package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_NextStopsAtReview(t *testing.T) {
	assert.Equal(t, StepAdvancedInfo, StepBasicInfo.Next())
	assert.Equal(t, StepCurriculum, StepAdvancedInfo.Next())
	assert.Equal(t, StepReview, StepCurriculum.Next())
	assert.Equal(t, StepReview, StepReview.Next())
}

func TestStep_Saveable(t *testing.T) {
	tests := []struct {
		step Step
		want bool
	}{
		{StepBasicInfo, true},
		{StepAdvancedInfo, true},
		{StepCurriculum, true},
		{StepReview, false},
		{Step(-1), false},
		{Step(7), false},
	}
	for _, tt := range tests {
		t.Run(tt.step.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.step.Saveable())
		})
	}
}

func TestStep_Valid(t *testing.T) {
	assert.True(t, StepBasicInfo.Valid())
	assert.True(t, StepReview.Valid())
	assert.False(t, Step(StepCount).Valid())
	assert.False(t, Step(-1).Valid())
}

func TestParseStep_RoundTrip(t *testing.T) {
	for st := StepBasicInfo; st < StepCount; st++ {
		got, err := ParseStep(st.String())
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	_, err := ParseStep("pricing")
	assert.Error(t, err)
}

func TestStep_TitleAndString(t *testing.T) {
	assert.Equal(t, "Curriculum", StepCurriculum.Title())
	assert.Equal(t, "advanced_info", StepAdvancedInfo.String())
	assert.Equal(t, "step(9)", Step(9).String())
	assert.Equal(t, "step(9)", Step(9).Title())
}
