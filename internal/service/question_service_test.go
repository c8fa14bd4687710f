package service

import (
	"context"
	"encoding/json"
	"mock_interview_backend/internal/config"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/repository"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateQuestions(t *testing.T) {
	questions := TemplateQuestions("Software Engineer", "5")
	require.Len(t, questions, 5)

	assert.Equal(t, "Tell me about yourself and why you're interested in this Software Engineer position.", questions[0].Text)
	assert.Equal(t, "Describe a challenging problem you've solved in your 5 years of experience and the approach you took.", questions[1].Text)
	assert.Equal(t, model.QuestionTechnical, questions[1].Type)
	assert.Equal(t, 180, questions[1].ExpectedDuration)
	assert.Equal(t, "What attracted you to apply for this Software Engineer role?", questions[3].Text)

	for i, q := range questions {
		assert.Equal(t, i+1, q.Position)
	}

	generic := TemplateQuestions("Designer", "")
	assert.Contains(t, generic[1].Text, "in your career")
}

func newAIServer(t *testing.T, handler http.HandlerFunc) *AIService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewAIService(config.AIConfig{BaseURL: server.URL, APIKey: "k", Model: "test-model", Timeout: 5})
}

func TestQuestionService_AI(t *testing.T) {
	ai := newAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))

		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Contains(t, req.Messages[1].Content, "Job role: ML Engineer")

		content := "```json\n{\"questions\":[{\"text\":\"Explain overfitting.\",\"type\":\"technical\",\"difficulty\":\"hard\"},{\"text\":\" \"}]}\n```"
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	})

	svc := NewQuestionService(ai, nil)
	questions, source, err := svc.Generate(context.Background(), GenerateQuestionsRequest{JobRole: "ML Engineer"})
	require.NoError(t, err)
	assert.Equal(t, QuestionSourceAI, source)
	require.Len(t, questions, 1)
	assert.Equal(t, "Explain overfitting.", questions[0].Text)
	assert.Equal(t, model.QuestionTechnical, questions[0].Type)
	assert.Equal(t, 120, questions[0].ExpectedDuration)
}

func TestQuestionService_AIFailureFallsBack(t *testing.T) {
	ai := newAIServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	svc := NewQuestionService(ai, nil)
	questions, source, err := svc.Generate(context.Background(), GenerateQuestionsRequest{JobRole: "ML Engineer"})
	require.NoError(t, err)
	assert.Equal(t, QuestionSourceTemplate, source)
	assert.Len(t, questions, 5)
}

func TestQuestionService_CachedForInterview(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := NewQuestionService(nil, repository.NewQuestionCache(client, time.Hour))
	ctx := context.Background()

	generated, _, err := svc.Generate(ctx, GenerateQuestionsRequest{JobRole: "Analyst", InterviewID: "iv-9"})
	require.NoError(t, err)

	iv := &model.Interview{JobRole: "Somebody Else"}
	iv.ID = "iv-9"
	questions, source := svc.ForInterview(ctx, iv)
	assert.Equal(t, QuestionSourceCache, source)
	assert.Equal(t, generated[0].Text, questions[0].Text)

	other := &model.Interview{JobRole: "Analyst"}
	other.ID = "iv-10"
	_, source = svc.ForInterview(ctx, other)
	assert.Equal(t, QuestionSourceTemplate, source)
}

func TestToGeneratedQuestions(t *testing.T) {
	out := ToGeneratedQuestions(TemplateQuestions("Dev", "2"))
	require.Len(t, out, 5)
	assert.Equal(t, 1, out[0].ID)
	assert.Equal(t, 5, out[4].ID)
}
