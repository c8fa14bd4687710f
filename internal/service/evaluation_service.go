package service

import (
	"context"
	"mock_interview_backend/internal/model"
)

type EvaluationRequest struct {
	Transcript string `json:"transcript"`
	Question   string `json:"question"`
	JobRole    string `json:"jobRole"`
}

// EvaluationService 回答评估。目前返回固定的示例评估结果，不调用模型打分。
type EvaluationService struct{}

func NewEvaluationService() *EvaluationService {
	return &EvaluationService{}
}

func (s *EvaluationService) Evaluate(ctx context.Context, req EvaluationRequest) *model.Evaluation {
	return &model.Evaluation{
		CommunicationScore: 85,
		ContentScore:       78,
		BehavioralScore:    82,
		NonverbalScore:     80,
		OverallScore:       81,
		Strengths: []string{
			"Clear and articulate communication",
			"Provided specific examples from experience",
			"Demonstrated confidence in delivery",
		},
		Improvements: []string{
			"Could reduce filler words (um, uh)",
			"Add more technical depth to responses",
			"Improve eye contact consistency",
		},
		Feedback: map[string]string{
			"communication": "Your communication was clear and well-structured. Try to minimize filler words for even better impact.",
			"content":       "Good use of examples, but could go deeper into technical specifics relevant to the role.",
			"behavioral":    "Strong demonstration of teamwork and problem-solving. Consider using the STAR method more consistently.",
		},
		Recommendations: []string{
			"Practice technical deep-dives on common interview topics",
			"Work on eliminating filler words",
			"Prepare more STAR method examples",
		},
	}
}
