package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/pkg/logger"
	"strings"

	"go.uber.org/zap"
)

const (
	QuestionSourceTemplate = "template"
	QuestionSourceAI       = "ai"
	QuestionSourceCache    = "cache"
)

type GenerateQuestionsRequest struct {
	JobRole         string   `json:"jobRole" binding:"required"`
	ExperienceLevel string   `json:"experienceLevel"`
	JobDescription  string   `json:"jobDescription"`
	ResumeKeywords  []string `json:"resumeKeywords"`
	// InterviewID 非空时缓存生成结果，开始面试时直接使用
	InterviewID string `json:"interviewId"`
}

// GeneratedQuestion 返回给前端的题目，ID 为题目序号
type GeneratedQuestion struct {
	ID               int                `json:"id"`
	Text             string             `json:"text"`
	Type             model.QuestionType `json:"type"`
	Difficulty       string             `json:"difficulty"`
	ExpectedDuration int                `json:"expectedDuration"`
}

func ToGeneratedQuestions(questions []model.Question) []GeneratedQuestion {
	out := make([]GeneratedQuestion, len(questions))
	for i, q := range questions {
		out[i] = GeneratedQuestion{
			ID:               q.Position,
			Text:             q.Text,
			Type:             q.Type,
			Difficulty:       q.Difficulty,
			ExpectedDuration: q.ExpectedDuration,
		}
	}
	return out
}

type QuestionService struct {
	AI    *AIService
	Cache *repository.QuestionCache
}

func NewQuestionService(ai *AIService, cache *repository.QuestionCache) *QuestionService {
	return &QuestionService{AI: ai, Cache: cache}
}

// Generate 配置了 AI 时调用模型出题，失败或未配置时使用内置模板。
// 不校验 InterviewID 归属，对外请走 InterviewService.GenerateQuestions。
func (s *QuestionService) Generate(ctx context.Context, req GenerateQuestionsRequest) ([]model.Question, string, error) {
	questions, source := s.generate(ctx, req)

	if req.InterviewID != "" {
		if err := s.Cache.Set(ctx, req.InterviewID, questions); err != nil {
			logger.Log.Warn("Failed to cache generated questions",
				zap.String("interviewID", req.InterviewID),
				zap.Error(err),
			)
		}
	}

	return questions, source, nil
}

// ForInterview 开始面试时使用：优先取缓存中预先生成的题目
func (s *QuestionService) ForInterview(ctx context.Context, interview *model.Interview) ([]model.Question, string) {
	cached, ok, err := s.Cache.Get(ctx, interview.ID)
	if err != nil {
		logger.Log.Warn("Failed to read question cache", zap.String("interviewID", interview.ID), zap.Error(err))
	}
	if ok && len(cached) > 0 {
		return cached, QuestionSourceCache
	}

	return s.generate(ctx, GenerateQuestionsRequest{
		JobRole:         interview.JobRole,
		ExperienceLevel: interview.ExperienceLevel,
		JobDescription:  interview.JobDescription,
	})
}

func (s *QuestionService) generate(ctx context.Context, req GenerateQuestionsRequest) ([]model.Question, string) {
	if s.AI.Enabled() {
		questions, err := s.generateWithAI(ctx, req)
		if err == nil && len(questions) > 0 {
			return questions, QuestionSourceAI
		}
		logger.Log.Warn("AI question generation failed, using templates", zap.Error(err))
	}
	return TemplateQuestions(req.JobRole, req.ExperienceLevel), QuestionSourceTemplate
}

// TemplateQuestions 内置的五道通用面试题
func TemplateQuestions(jobRole, experienceLevel string) []model.Question {
	experience := "career"
	if experienceLevel != "" {
		experience = experienceLevel + " years of experience"
	}

	return []model.Question{
		{
			Position:         1,
			Text:             fmt.Sprintf("Tell me about yourself and why you're interested in this %s position.", jobRole),
			Type:             model.QuestionBehavioral,
			Difficulty:       "medium",
			ExpectedDuration: 120,
		},
		{
			Position:         2,
			Text:             fmt.Sprintf("Describe a challenging problem you've solved in your %s and the approach you took.", experience),
			Type:             model.QuestionTechnical,
			Difficulty:       "medium",
			ExpectedDuration: 180,
		},
		{
			Position:         3,
			Text:             "How do you handle working under pressure and tight deadlines?",
			Type:             model.QuestionBehavioral,
			Difficulty:       "easy",
			ExpectedDuration: 120,
		},
		{
			Position:         4,
			Text:             fmt.Sprintf("What attracted you to apply for this %s role?", jobRole),
			Type:             model.QuestionBehavioral,
			Difficulty:       "easy",
			ExpectedDuration: 120,
		},
		{
			Position:         5,
			Text:             "Describe a time when you had to collaborate with a difficult team member.",
			Type:             model.QuestionBehavioral,
			Difficulty:       "medium",
			ExpectedDuration: 120,
		},
	}
}

const questionPromptTemplate = `Generate 5 interview questions for the following candidate.
Job role: %s
Experience level: %s
Job description: %s
Resume keywords: %s

Respond with a JSON object of the form:
{"questions":[{"text":"...","type":"behavioral|technical","difficulty":"easy|medium|hard","expectedDuration":120}]}`

func (s *QuestionService) generateWithAI(ctx context.Context, req GenerateQuestionsRequest) ([]model.Question, error) {
	prompt := fmt.Sprintf(questionPromptTemplate,
		req.JobRole,
		orDefault(req.ExperienceLevel, "unspecified"),
		orDefault(req.JobDescription, "none"),
		orDefault(strings.Join(req.ResumeKeywords, ", "), "none"),
	)

	content, err := s.AI.Chat(ctx, "", prompt, true)
	if err != nil {
		return nil, err
	}
	return parseAIQuestions(content)
}

func parseAIQuestions(content string) ([]model.Question, error) {
	// 部分模型会包一层 ```json 代码块
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var payload struct {
		Questions []struct {
			Text             string `json:"text"`
			Type             string `json:"type"`
			Difficulty       string `json:"difficulty"`
			ExpectedDuration int    `json:"expectedDuration"`
		} `json:"questions"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("parse AI questions: %w", err)
	}

	questions := make([]model.Question, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		qType := model.QuestionBehavioral
		if q.Type == string(model.QuestionTechnical) {
			qType = model.QuestionTechnical
		}
		duration := q.ExpectedDuration
		if duration <= 0 {
			duration = 120
		}
		questions = append(questions, model.Question{
			Position:         len(questions) + 1,
			Text:             strings.TrimSpace(q.Text),
			Type:             qType,
			Difficulty:       orDefault(q.Difficulty, "medium"),
			ExpectedDuration: duration,
		})
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("AI returned no questions")
	}
	return questions, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
