package service

import (
	"context"
	"errors"
	"mock_interview_backend/internal/model"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/internal/testhelpers"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("connection refused")

// failingStore 第 failOn 次 ListByUser 调用返回错误（从 1 开始计数）
type failingStore struct {
	repository.FixtureInterviewRepository
	calls  int
	failOn int
}

func (s *failingStore) Configured() bool { return true }

func (s *failingStore) ListByUser(ctx context.Context, userID string, q repository.InterviewQuery) ([]model.Interview, error) {
	s.calls++
	if s.calls == s.failOn {
		return nil, errStoreDown
	}
	return nil, nil
}

func newSQLStore(t *testing.T) *repository.InterviewRepository {
	t.Helper()
	return repository.NewInterviewRepository(testhelpers.NewTestDB(t))
}

func seed(t *testing.T, store repository.InterviewStore, userID string, status model.InterviewStatus, score *int, created time.Time) *model.Interview {
	t.Helper()
	iv := &model.Interview{UserID: userID, JobRole: "Backend Engineer", Status: status, OverallScore: score}
	iv.CreatedAt = created
	require.NoError(t, store.Create(context.Background(), iv))
	return iv
}

func intPtr(v int) *int { return &v }
