package stats

import "mock_interview_backend/internal/model"

// EvaluationBreakdown 面试详情页的维度平均分，维度与目标分同进度页
func EvaluationBreakdown(evaluations []model.Evaluation) []CategoryScore {
	sums := make([]int, len(categories))
	for _, e := range evaluations {
		sums[0] += e.CommunicationScore
		sums[1] += e.ContentScore
		sums[2] += e.BehavioralScore
		sums[3] += e.NonverbalScore
	}

	breakdown := make([]CategoryScore, len(categories))
	for i, c := range categories {
		score := 0
		if len(evaluations) > 0 {
			score = roundHalfUp(float64(sums[i]) / float64(len(evaluations)))
		}
		breakdown[i] = CategoryScore{Name: c.name, Score: score, Target: c.target}
	}
	return breakdown
}

// OverallFromEvaluations 各题总分的平均值，没有评估时返回 0
func OverallFromEvaluations(evaluations []model.Evaluation) int {
	if len(evaluations) == 0 {
		return 0
	}
	sum := 0
	for _, e := range evaluations {
		sum += e.OverallScore
	}
	return roundHalfUp(float64(sum) / float64(len(evaluations)))
}
