package service

import (
	"context"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/internal/util"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInterviewService(store repository.InterviewStore) *InterviewService {
	return NewInterviewService(store, NewQuestionService(nil, nil), NewEvaluationService())
}

func TestInterviewService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newInterviewService(newSQLStore(t))
	completedAt := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return completedAt }

	iv, err := svc.Create(ctx, "u1", CreateInterviewRequest{JobRole: "Data Engineer", ExperienceLevel: "3-5"})
	require.NoError(t, err)
	assert.Equal(t, model.InterviewDraft, iv.Status)

	detail, err := svc.Start(ctx, "u1", iv.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InterviewInProgress, detail.Interview.Status)
	require.Len(t, detail.Questions, 5)
	assert.Equal(t, 5, detail.Interview.TotalQuestions)
	assert.Contains(t, detail.Questions[0].Text, "Data Engineer")
	assert.Contains(t, detail.Questions[1].Text, "3-5 years of experience")

	_, err = svc.Start(ctx, "u1", iv.ID)
	assert.ErrorIs(t, err, util.ErrInvalidTransition)

	resp, err := svc.Answer(ctx, "u1", iv.ID, detail.Questions[0].ID, "I build pipelines")
	require.NoError(t, err)
	require.NotNil(t, resp.Evaluation)
	assert.Equal(t, 81, resp.Evaluation.OverallScore)

	_, err = svc.Answer(ctx, "u1", iv.ID, 9999, "nope")
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)

	done, err := svc.Complete(ctx, "u1", iv.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InterviewCompleted, done.Status)
	assert.Equal(t, 81, done.Score())
	require.NotNil(t, done.CompletedAt)
	assert.True(t, done.CompletedAt.Equal(completedAt))

	_, err = svc.Answer(ctx, "u1", iv.ID, detail.Questions[1].ID, "late")
	assert.ErrorIs(t, err, util.ErrNotInProgress)

	full, err := svc.GetDetail(ctx, "u1", iv.ID)
	require.NoError(t, err)
	assert.Equal(t, 85, full.CategoryProgress[0].Score)
	assert.Equal(t, 78, full.CategoryProgress[1].Score)
}

func TestInterviewService_CompleteWithoutAnswers(t *testing.T) {
	ctx := context.Background()
	svc := newInterviewService(newSQLStore(t))

	iv, err := svc.Create(ctx, "u1", CreateInterviewRequest{JobRole: "PM"})
	require.NoError(t, err)

	_, err = svc.Complete(ctx, "u1", iv.ID)
	assert.ErrorIs(t, err, util.ErrInvalidTransition)

	_, err = svc.Start(ctx, "u1", iv.ID)
	require.NoError(t, err)

	done, err := svc.Complete(ctx, "u1", iv.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, done.Score())
}

// staleStore 模拟并发开始：读到的仍是草稿，库里已被另一请求改为进行中
type staleStore struct {
	*repository.InterviewRepository
}

func (s staleStore) FindByID(ctx context.Context, id string) (*model.Interview, error) {
	iv, err := s.InterviewRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	iv.Status = model.InterviewDraft
	return iv, nil
}

func TestInterviewService_StartLosesRace(t *testing.T) {
	ctx := context.Background()
	sqlStore := newSQLStore(t)
	iv := seed(t, sqlStore, "u1", model.InterviewDraft, nil, time.Now())

	first := newInterviewService(sqlStore)
	started, err := first.Start(ctx, "u1", iv.ID)
	require.NoError(t, err)

	second := newInterviewService(staleStore{sqlStore})
	_, err = second.Start(ctx, "u1", iv.ID)
	assert.ErrorIs(t, err, util.ErrInvalidTransition)

	questions, err := sqlStore.ListQuestions(ctx, iv.ID)
	require.NoError(t, err)
	require.Len(t, questions, len(started.Questions))
	assert.Equal(t, started.Questions[0].ID, questions[0].ID)
}

func TestInterviewService_OwnershipAndNotFound(t *testing.T) {
	ctx := context.Background()
	svc := newInterviewService(newSQLStore(t))

	iv, err := svc.Create(ctx, "owner", CreateInterviewRequest{JobRole: "QA"})
	require.NoError(t, err)

	_, err = svc.GetDetail(ctx, "intruder", iv.ID)
	assert.ErrorIs(t, err, util.ErrInterviewNotFound)

	_, err = svc.Start(ctx, "intruder", iv.ID)
	assert.ErrorIs(t, err, util.ErrInterviewNotFound)

	_, err = svc.GetDetail(ctx, "owner", "missing")
	assert.ErrorIs(t, err, util.ErrInterviewNotFound)
}

func TestInterviewService_List(t *testing.T) {
	ctx := context.Background()
	store := newSQLStore(t)
	svc := newInterviewService(store)
	base := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

	seed(t, store, "u1", model.InterviewCompleted, intPtr(70), base)
	seed(t, store, "u1", model.InterviewDraft, nil, base.Add(time.Hour))

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, model.InterviewDraft, list[0].Status)
}

func TestInterviewService_FixtureMode(t *testing.T) {
	ctx := context.Background()
	svc := newInterviewService(repository.NewFixtureInterviewRepository())

	iv, err := svc.Create(ctx, "u1", CreateInterviewRequest{JobRole: "SRE"})
	require.NoError(t, err)
	assert.Contains(t, iv.ID, "mock-")
	assert.Equal(t, "SRE", iv.JobRole)

	detail, err := svc.GetDetail(ctx, "anyone", "1")
	require.NoError(t, err)
	assert.Equal(t, 85, detail.Interview.Score())
	require.Len(t, detail.Questions, 2)
	assert.Equal(t, 87, detail.CategoryProgress[0].Score)

	_, err = svc.Start(ctx, "u1", "3")
	assert.ErrorIs(t, err, util.ErrNotConfigured)
	_, err = svc.Answer(ctx, "u1", "3", 1, "x")
	assert.ErrorIs(t, err, util.ErrNotConfigured)
	_, err = svc.Complete(ctx, "u1", "3")
	assert.ErrorIs(t, err, util.ErrNotConfigured)
}

func TestInterviewService_ListQueryError(t *testing.T) {
	svc := newInterviewService(&failingStore{failOn: 1})

	_, err := svc.List(context.Background(), "u1")
	var qe *util.QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, "Failed to fetch interviews", qe.Message)
}

func TestInterviewService_GenerateQuestionsChecksOwnership(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	questions := NewQuestionService(nil, repository.NewQuestionCache(client, time.Hour))
	svc := NewInterviewService(newSQLStore(t), questions, NewEvaluationService())

	iv, err := svc.Create(ctx, "alice", CreateInterviewRequest{JobRole: "Backend Engineer"})
	require.NoError(t, err)

	_, _, err = svc.GenerateQuestions(ctx, "mallory", GenerateQuestionsRequest{JobRole: "Injected Role", InterviewID: iv.ID})
	assert.ErrorIs(t, err, util.ErrInterviewNotFound)

	detail, err := svc.Start(ctx, "alice", iv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tell me about yourself and why you're interested in this Backend Engineer position.", detail.Questions[0].Text)
}

func TestInterviewService_GenerateQuestionsCachesForOwner(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ctx := context.Background()
	questions := NewQuestionService(nil, repository.NewQuestionCache(client, time.Hour))
	svc := NewInterviewService(newSQLStore(t), questions, NewEvaluationService())

	iv, err := svc.Create(ctx, "alice", CreateInterviewRequest{JobRole: "Backend Engineer"})
	require.NoError(t, err)

	generated, source, err := svc.GenerateQuestions(ctx, "alice", GenerateQuestionsRequest{JobRole: "Staff Engineer", InterviewID: iv.ID})
	require.NoError(t, err)
	assert.Equal(t, QuestionSourceTemplate, source)

	detail, err := svc.Start(ctx, "alice", iv.ID)
	require.NoError(t, err)
	assert.Equal(t, generated[0].Text, detail.Questions[0].Text)
}
