package service

import (
	"context"
	"errors"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/internal/stats"
	"mock_interview_backend/internal/util"
	"mock_interview_backend/pkg/logger"
	"mock_interview_backend/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type CreateInterviewRequest struct {
	JobRole         string `json:"jobRole" binding:"required"`
	ExperienceLevel string `json:"experienceLevel"`
	JobDescription  string `json:"jobDescription"`
	ResumeURL       string `json:"resumeUrl"`
}

type InterviewDetail struct {
	Interview        *model.Interview      `json:"interview"`
	Questions        []model.Question      `json:"questions"`
	CategoryProgress []stats.CategoryScore `json:"categoryProgress"`
}

type InterviewService struct {
	Store     repository.InterviewStore
	Questions *QuestionService
	Evaluator *EvaluationService
	Now       func() time.Time
}

func NewInterviewService(store repository.InterviewStore, questions *QuestionService, evaluator *EvaluationService) *InterviewService {
	return &InterviewService{
		Store:     store,
		Questions: questions,
		Evaluator: evaluator,
		Now:       time.Now,
	}
}

// storeError 业务错误原样返回，其余视为存储查询失败
func storeError(message string, err error) error {
	switch {
	case errors.Is(err, util.ErrInterviewNotFound),
		errors.Is(err, util.ErrNotConfigured),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrInvalidTransition):
		return err
	}
	logger.Log.Error(message, zap.Error(err))
	return util.NewQueryError(message, err)
}

func (s *InterviewService) List(ctx context.Context, userID string) ([]model.Interview, error) {
	interviews, err := s.Store.ListByUser(ctx, userID, repository.InterviewQuery{NewestFirst: true})
	if err != nil {
		return nil, storeError("Failed to fetch interviews", err)
	}
	return stats.NewestFirst(interviews), nil
}

// Create 未配置数据库时返回未保存的草稿
func (s *InterviewService) Create(ctx context.Context, userID string, req CreateInterviewRequest) (*model.Interview, error) {
	interview := &model.Interview{
		UserID:          userID,
		JobRole:         req.JobRole,
		ExperienceLevel: req.ExperienceLevel,
		JobDescription:  req.JobDescription,
		ResumeURL:       req.ResumeURL,
		Status:          model.InterviewDraft,
	}
	if err := s.Store.Create(ctx, interview); err != nil {
		return nil, storeError("Failed to create interview", err)
	}

	logger.Log.Info("Interview created",
		zap.String("interviewID", interview.ID),
		zap.String("userID", userID),
		zap.Bool("persisted", s.Store.Configured()),
	)
	return interview, nil
}

// load 按 ID 取面试并校验归属；示例数据不区分用户
func (s *InterviewService) load(ctx context.Context, userID, interviewID string) (*model.Interview, error) {
	interview, err := s.Store.FindByID(ctx, interviewID)
	if err != nil {
		return nil, storeError("Failed to fetch interview", err)
	}
	if s.Store.Configured() && interview.UserID != userID {
		return nil, util.ErrInterviewNotFound
	}
	return interview, nil
}

func (s *InterviewService) GetDetail(ctx context.Context, userID, interviewID string) (*InterviewDetail, error) {
	ctx, span := tracing.StartSpan(ctx, "InterviewService.GetDetail", attribute.String("interview.id", interviewID))
	defer span.End()

	interview, err := s.load(ctx, userID, interviewID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	questions, err := s.Store.ListQuestions(ctx, interviewID)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, storeError("Failed to fetch interview questions", err)
	}

	return &InterviewDetail{
		Interview:        interview,
		Questions:        questions,
		CategoryProgress: stats.EvaluationBreakdown(evaluationsOf(questions)),
	}, nil
}

// GenerateQuestions 生成题目；带 interviewId 时先校验面试归属再缓存。
// 示例数据下无法开始面试，不写缓存。
func (s *InterviewService) GenerateQuestions(ctx context.Context, userID string, req GenerateQuestionsRequest) ([]model.Question, string, error) {
	if req.InterviewID != "" {
		if !s.Store.Configured() {
			req.InterviewID = ""
		} else if _, err := s.load(ctx, userID, req.InterviewID); err != nil {
			return nil, "", err
		}
	}
	return s.Questions.Generate(ctx, req)
}

// Start draft -> in_progress，并保存本场面试的题目
func (s *InterviewService) Start(ctx context.Context, userID, interviewID string) (*InterviewDetail, error) {
	if !s.Store.Configured() {
		return nil, util.ErrNotConfigured
	}

	interview, err := s.load(ctx, userID, interviewID)
	if err != nil {
		return nil, err
	}
	if !interview.Status.CanTransitionTo(model.InterviewInProgress) {
		return nil, util.ErrInvalidTransition
	}

	questions, source := s.Questions.ForInterview(ctx, interview)
	if err := s.Store.StartInterview(ctx, interview.ID, questions); err != nil {
		return nil, storeError("Failed to start interview", err)
	}

	interview.Status = model.InterviewInProgress
	interview.TotalQuestions = len(questions)

	if err := s.Questions.Cache.Delete(ctx, interview.ID); err != nil {
		logger.Log.Warn("Failed to clear question cache", zap.String("interviewID", interview.ID), zap.Error(err))
	}

	logger.Log.Info("Interview started",
		zap.String("interviewID", interview.ID),
		zap.String("questionSource", source),
		zap.Int("questions", len(questions)),
	)

	saved, err := s.Store.ListQuestions(ctx, interview.ID)
	if err != nil {
		return nil, storeError("Failed to fetch interview questions", err)
	}
	return &InterviewDetail{
		Interview:        interview,
		Questions:        saved,
		CategoryProgress: stats.EvaluationBreakdown(nil),
	}, nil
}

// activeQuestion 校验面试进行中并返回指定题目
func (s *InterviewService) activeQuestion(ctx context.Context, userID, interviewID string, questionID uint) (*model.Interview, *model.Question, error) {
	if !s.Store.Configured() {
		return nil, nil, util.ErrNotConfigured
	}

	interview, err := s.load(ctx, userID, interviewID)
	if err != nil {
		return nil, nil, err
	}
	if interview.Status != model.InterviewInProgress {
		return nil, nil, util.ErrNotInProgress
	}

	questions, err := s.Store.ListQuestions(ctx, interviewID)
	if err != nil {
		return nil, nil, storeError("Failed to fetch interview questions", err)
	}
	for i := range questions {
		if questions[i].ID == questionID {
			return interview, &questions[i], nil
		}
	}
	return nil, nil, util.ErrQuestionNotFound
}

// Answer 保存文字回答并生成评估
func (s *InterviewService) Answer(ctx context.Context, userID, interviewID string, questionID uint, transcript string) (*model.Response, error) {
	interview, question, err := s.activeQuestion(ctx, userID, interviewID, questionID)
	if err != nil {
		return nil, err
	}

	response := &model.Response{
		QuestionID:  question.ID,
		InterviewID: interview.ID,
		Transcript:  transcript,
	}
	if err := s.Store.SaveResponse(ctx, response); err != nil {
		return nil, storeError("Failed to save response", err)
	}

	evaluation := s.Evaluator.Evaluate(ctx, EvaluationRequest{
		Transcript: transcript,
		Question:   question.Text,
		JobRole:    interview.JobRole,
	})
	evaluation.ResponseID = response.ID
	if err := s.Store.SaveEvaluation(ctx, evaluation); err != nil {
		return nil, storeError("Failed to save evaluation", err)
	}

	response.Evaluation = evaluation
	return response, nil
}

// AttachRecording 记录回答录像的地址与时长
func (s *InterviewService) AttachRecording(ctx context.Context, userID, interviewID string, questionID uint, recordingURL, thumbnailURL string, duration float64) (*model.Response, error) {
	interview, question, err := s.activeQuestion(ctx, userID, interviewID, questionID)
	if err != nil {
		return nil, err
	}

	response := &model.Response{
		QuestionID:      question.ID,
		InterviewID:     interview.ID,
		RecordingURL:    recordingURL,
		ThumbnailURL:    thumbnailURL,
		DurationSeconds: duration,
	}
	if err := s.Store.SaveResponse(ctx, response); err != nil {
		return nil, storeError("Failed to save recording", err)
	}
	return response, nil
}

// Complete in_progress -> completed，总分为已评估题目总分的平均值
func (s *InterviewService) Complete(ctx context.Context, userID, interviewID string) (*model.Interview, error) {
	if !s.Store.Configured() {
		return nil, util.ErrNotConfigured
	}

	interview, err := s.load(ctx, userID, interviewID)
	if err != nil {
		return nil, err
	}
	if !interview.Status.CanTransitionTo(model.InterviewCompleted) {
		return nil, util.ErrInvalidTransition
	}

	questions, err := s.Store.ListQuestions(ctx, interviewID)
	if err != nil {
		return nil, storeError("Failed to fetch interview questions", err)
	}
	if len(questions) == 0 {
		return nil, util.ErrNoQuestions
	}

	score := stats.OverallFromEvaluations(evaluationsOf(questions))
	now := s.Now()
	interview.Status = model.InterviewCompleted
	interview.OverallScore = &score
	interview.CompletedAt = &now
	if err := s.Store.Update(ctx, interview); err != nil {
		return nil, storeError("Failed to complete interview", err)
	}

	logger.Log.Info("Interview completed",
		zap.String("interviewID", interview.ID),
		zap.Int("overallScore", score),
	)
	return interview, nil
}

func evaluationsOf(questions []model.Question) []model.Evaluation {
	var evaluations []model.Evaluation
	for _, q := range questions {
		if q.Response != nil && q.Response.Evaluation != nil {
			evaluations = append(evaluations, *q.Response.Evaluation)
		}
	}
	return evaluations
}
