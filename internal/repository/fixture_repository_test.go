package repository

import (
	"context"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureRepository_ListByUser(t *testing.T) {
	repo := NewFixtureInterviewRepository()
	ctx := context.Background()

	all, err := repo.ListByUser(ctx, "someone", InterviewQuery{NewestFirst: true})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, "someone", all[0].UserID)
	assert.Nil(t, all[2].OverallScore)

	oldest, err := repo.ListByUser(ctx, "someone", InterviewQuery{Limit: 1})
	require.NoError(t, err)
	require.Len(t, oldest, 1)
	assert.Equal(t, "3", oldest[0].ID)

	completed, err := repo.ListByUser(ctx, "someone", InterviewQuery{Status: model.InterviewCompleted})
	require.NoError(t, err)
	assert.Len(t, completed, 2)
}

func TestFixtureRepository_Create(t *testing.T) {
	repo := NewFixtureInterviewRepository()
	fixed := time.UnixMilli(1700000000123)
	repo.now = func() time.Time { return fixed }

	iv := &model.Interview{UserID: "u1", JobRole: "SRE"}
	require.NoError(t, repo.Create(context.Background(), iv))
	assert.Equal(t, "mock-1700000000123", iv.ID)
	assert.Equal(t, model.InterviewDraft, iv.Status)

	// 未持久化
	_, err := repo.FindByID(context.Background(), iv.ID)
	assert.ErrorIs(t, err, util.ErrInterviewNotFound)
}

func TestFixtureRepository_WritesNotConfigured(t *testing.T) {
	repo := NewFixtureInterviewRepository()
	ctx := context.Background()

	assert.False(t, repo.Configured())
	assert.NoError(t, repo.Ping(ctx))
	assert.ErrorIs(t, repo.Update(ctx, &model.Interview{}), util.ErrNotConfigured)
	assert.ErrorIs(t, repo.StartInterview(ctx, "1", nil), util.ErrNotConfigured)
	assert.ErrorIs(t, repo.SaveResponse(ctx, &model.Response{}), util.ErrNotConfigured)
	assert.ErrorIs(t, repo.SaveEvaluation(ctx, &model.Evaluation{}), util.ErrNotConfigured)
}

func TestFixtureRepository_Questions(t *testing.T) {
	repo := NewFixtureInterviewRepository()

	questions, err := repo.ListQuestions(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, 88, questions[0].Response.Evaluation.OverallScore)
	assert.Equal(t, 85, questions[1].Response.Evaluation.OverallScore)

	empty, err := repo.ListQuestions(context.Background(), "3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
