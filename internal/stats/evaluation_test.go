package stats

import (
	"mock_interview_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluationBreakdown(t *testing.T) {
	evals := []model.Evaluation{
		{CommunicationScore: 85, ContentScore: 78, BehavioralScore: 82, NonverbalScore: 80, OverallScore: 81},
		{CommunicationScore: 90, ContentScore: 70, BehavioralScore: 80, NonverbalScore: 75, OverallScore: 78},
	}

	got := EvaluationBreakdown(evals)
	assert.Equal(t, []CategoryScore{
		{Name: "Communication", Score: 88, Target: 90},
		{Name: "Content Quality", Score: 74, Target: 85},
		{Name: "Behavioral", Score: 81, Target: 85},
		{Name: "Non-Verbal", Score: 78, Target: 80},
	}, got)
	assert.Equal(t, 80, OverallFromEvaluations(evals))
}

func TestEvaluationBreakdown_Empty(t *testing.T) {
	got := EvaluationBreakdown(nil)
	assert.Len(t, got, 4)
	for _, c := range got {
		assert.Equal(t, 0, c.Score)
	}
	assert.Equal(t, 0, OverallFromEvaluations(nil))
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 3, roundHalfUp(2.5))
	assert.Equal(t, 2, roundHalfUp(2.49))
	assert.Equal(t, -2, roundHalfUp(-2.5))
}
