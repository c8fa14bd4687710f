package service

import (
	"context"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/internal/stats"
	"mock_interview_backend/internal/util"
	"mock_interview_backend/pkg/logger"
	"mock_interview_backend/pkg/monitoring"
	"mock_interview_backend/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type ProgressService struct {
	Store repository.InterviewStore
	Now   func() time.Time
	// Jitter 为空时按用户与当天日期生成
	Jitter func(userID string, now time.Time) stats.Jitter
}

func NewProgressService(store repository.InterviewStore) *ProgressService {
	return &ProgressService{
		Store:  store,
		Now:    time.Now,
		Jitter: stats.NewDailyJitter,
	}
}

func (s *ProgressService) GetProgress(ctx context.Context, userID string) (*stats.ProgressReport, error) {
	ctx, span := tracing.StartSpan(ctx, "ProgressService.GetProgress", attribute.String("user.id", userID))
	defer span.End()

	interviews, err := s.Store.ListByUser(ctx, userID, repository.InterviewQuery{NewestFirst: true})
	if err != nil {
		tracing.RecordError(span, err)
		logger.Log.Error("Failed to fetch progress data", zap.String("userID", userID), zap.Error(err))
		return nil, util.NewQueryError("Failed to fetch progress data", err)
	}

	now := s.Now()
	var jitter stats.Jitter
	if s.Jitter != nil {
		jitter = s.Jitter(userID, now)
	} else {
		jitter = stats.NewDailyJitter(userID, now)
	}

	report := stats.ComputeProgressReport(interviews, now, jitter)
	monitoring.ObserveStats("progress", s.Store.Configured())

	return &report, nil
}
