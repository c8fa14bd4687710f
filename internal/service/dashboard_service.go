package service

import (
	"context"
	"mock_interview_backend/internal/model"
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

type DashboardService struct {
	Store repository.InterviewStore
	Now   func() time.Time
}

func NewDashboardService(store repository.InterviewStore) *DashboardService {
	return &DashboardService{
		Store: store,
		Now:   time.Now,
	}
}

type DashboardDebug struct {
	DatabaseConfigured bool   `json:"databaseConfigured"`
	UserID             string `json:"userId"`
}

type Dashboard struct {
	Stats            stats.DashboardStats `json:"stats"`
	RecentInterviews []model.Interview    `json:"recentInterviews"`
	Debug            *DashboardDebug      `json:"debug,omitempty"`
}

func (s *DashboardService) GetDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	ctx, span := tracing.StartSpan(ctx, "DashboardService.GetDashboard", attribute.String("user.id", userID))
	defer span.End()

	interviews, err := s.Store.ListByUser(ctx, userID, repository.InterviewQuery{})
	if err != nil {
		tracing.RecordError(span, err)
		logger.Log.Error("Failed to fetch interviews", zap.String("userID", userID), zap.Error(err))
		return nil, util.NewQueryError("Failed to fetch interviews", err)
	}

	recent, err := s.Store.ListByUser(ctx, userID, repository.InterviewQuery{
		NewestFirst: true,
		Limit:       util.RecentInterviewLimit,
	})
	if err != nil {
		tracing.RecordError(span, err)
		logger.Log.Error("Failed to fetch recent interviews", zap.String("userID", userID), zap.Error(err))
		return nil, util.NewQueryError("Failed to fetch recent interviews", err)
	}

	dashboard := &Dashboard{
		Stats:            stats.ComputeDashboardStats(interviews, s.Now()),
		RecentInterviews: stats.NewestFirst(recent),
	}
	if !s.Store.Configured() {
		dashboard.Debug = &DashboardDebug{DatabaseConfigured: false, UserID: userID}
	}

	monitoring.ObserveStats("dashboard", s.Store.Configured())
	logger.Log.Debug("Dashboard stats computed",
		zap.String("userID", userID),
		zap.Int("interviews", len(interviews)),
		zap.Int("averageScore", dashboard.Stats.AverageScore),
	)

	return dashboard, nil
}
