package repository

import (
	"context"
	"mock_interview_backend/internal/model"
)

// InterviewQuery 面试列表查询条件，零值表示不过滤、不排序、不限制条数
type InterviewQuery struct {
	Status      model.InterviewStatus
	NewestFirst bool
	Limit       int
}

// InterviewStore 面试数据访问接口。
// 启动时根据数据库配置二选一：InterviewRepository 或 FixtureInterviewRepository。
type InterviewStore interface {
	// Configured 是否连接了真实数据库
	Configured() bool
	Ping(ctx context.Context) error

	ListByUser(ctx context.Context, userID string, q InterviewQuery) ([]model.Interview, error)
	FindByID(ctx context.Context, id string) (*model.Interview, error)
	Create(ctx context.Context, interview *model.Interview) error
	Update(ctx context.Context, interview *model.Interview) error

	// StartInterview 原子地完成 draft -> in_progress 并保存题目
	StartInterview(ctx context.Context, interviewID string, questions []model.Question) error
	// ListQuestions 按 position 升序返回，附带回答与评估
	ListQuestions(ctx context.Context, interviewID string) ([]model.Question, error)
	SaveResponse(ctx context.Context, response *model.Response) error
	SaveEvaluation(ctx context.Context, evaluation *model.Evaluation) error
}

var (
	_ InterviewStore = (*InterviewRepository)(nil)
	_ InterviewStore = (*FixtureInterviewRepository)(nil)
)
