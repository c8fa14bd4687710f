package repository

import (
	"context"
	"fmt"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/util"
	"time"
)

// FixtureInterviewRepository 未配置数据库时使用的只读示例数据。
// 所有用户看到同一组面试记录，写操作返回 util.ErrNotConfigured（Create 除外）。
type FixtureInterviewRepository struct {
	interviews []model.Interview
	questions  map[string][]model.Question
	now        func() time.Time
}

func NewFixtureInterviewRepository() *FixtureInterviewRepository {
	return &FixtureInterviewRepository{
		interviews: fixtureInterviews(),
		questions:  fixtureQuestions(),
		now:        time.Now,
	}
}

func fixtureInterviews() []model.Interview {
	mk := func(id, role string, status model.InterviewStatus, score *int, created string) model.Interview {
		ts, _ := time.Parse(time.RFC3339, created)
		iv := model.Interview{
			JobRole:        role,
			Status:         status,
			OverallScore:   score,
			TotalQuestions: 5,
		}
		iv.ID = id
		iv.CreatedAt = ts
		iv.UpdatedAt = ts
		if status == model.InterviewCompleted {
			iv.CompletedAt = &ts
		}
		return iv
	}
	intPtr := func(v int) *int { return &v }

	return []model.Interview{
		mk("1", "Software Engineer", model.InterviewCompleted, intPtr(85), "2024-01-15T10:00:00Z"),
		mk("2", "Product Manager", model.InterviewCompleted, intPtr(76), "2024-01-10T10:00:00Z"),
		mk("3", "Data Scientist", model.InterviewInProgress, nil, "2024-01-05T10:00:00Z"),
	}
}

func fixtureQuestions() map[string][]model.Question {
	mk := func(id uint, text string, qType model.QuestionType, score int, feedback string) model.Question {
		q := model.Question{
			InterviewID:      "1",
			Position:         int(id),
			Text:             text,
			Type:             qType,
			Difficulty:       "medium",
			ExpectedDuration: 120,
		}
		q.ID = id
		q.Response = &model.Response{
			QuestionID:  id,
			InterviewID: "1",
			Evaluation: &model.Evaluation{
				ResponseID:         id,
				CommunicationScore: score,
				ContentScore:       score,
				BehavioralScore:    score,
				NonverbalScore:     score,
				OverallScore:       score,
				Feedback:           map[string]string{"overall": feedback},
			},
		}
		q.Response.ID = id
		q.Response.Evaluation.ID = id
		return q
	}

	return map[string][]model.Question{
		"1": {
			mk(1, "Tell me about yourself and why you're interested in this position.", model.QuestionBehavioral, 88,
				"Excellent communication and clear structure. Used specific examples effectively."),
			mk(2, "Describe a challenging technical problem you solved.", model.QuestionTechnical, 85,
				"Good technical depth. Could elaborate more on the problem-solving process."),
		},
	}
}

func (r *FixtureInterviewRepository) Configured() bool {
	return false
}

func (r *FixtureInterviewRepository) Ping(ctx context.Context) error {
	return nil
}

func (r *FixtureInterviewRepository) ListByUser(ctx context.Context, userID string, q InterviewQuery) ([]model.Interview, error) {
	result := make([]model.Interview, 0, len(r.interviews))
	for _, iv := range r.interviews {
		if q.Status != "" && iv.Status != q.Status {
			continue
		}
		iv.UserID = userID
		result = append(result, iv)
	}

	// 示例数据本身按创建时间倒序排列
	if !q.NewestFirst {
		for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
			result[i], result[j] = result[j], result[i]
		}
	}
	if q.Limit > 0 && len(result) > q.Limit {
		result = result[:q.Limit]
	}
	return result, nil
}

func (r *FixtureInterviewRepository) FindByID(ctx context.Context, id string) (*model.Interview, error) {
	for _, iv := range r.interviews {
		if iv.ID == id {
			iv.UserID = util.DemoUserID
			return &iv, nil
		}
	}
	return nil, util.ErrInterviewNotFound
}

// Create 返回未持久化的草稿，ID 形如 mock-<毫秒时间戳>
func (r *FixtureInterviewRepository) Create(ctx context.Context, interview *model.Interview) error {
	now := r.now()
	interview.ID = fmt.Sprintf("mock-%d", now.UnixMilli())
	interview.Status = model.InterviewDraft
	interview.CreatedAt = now
	interview.UpdatedAt = now
	return nil
}

func (r *FixtureInterviewRepository) Update(ctx context.Context, interview *model.Interview) error {
	return util.ErrNotConfigured
}

func (r *FixtureInterviewRepository) StartInterview(ctx context.Context, interviewID string, questions []model.Question) error {
	return util.ErrNotConfigured
}

func (r *FixtureInterviewRepository) ListQuestions(ctx context.Context, interviewID string) ([]model.Question, error) {
	questions := r.questions[interviewID]
	out := make([]model.Question, len(questions))
	copy(out, questions)
	return out, nil
}

func (r *FixtureInterviewRepository) SaveResponse(ctx context.Context, response *model.Response) error {
	return util.ErrNotConfigured
}

func (r *FixtureInterviewRepository) SaveEvaluation(ctx context.Context, evaluation *model.Evaluation) error {
	return util.ErrNotConfigured
}
