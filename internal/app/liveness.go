package app

import (
	"context"
	"mock_interview_backend/internal/repository"
	"mock_interview_backend/pkg/logger"
	"mock_interview_backend/pkg/monitoring"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	livenessSchedule = "@every 30s"
	livenessTimeout  = 3 * time.Second
)

// livenessProbe 定时探测数据库与 Redis，结果写入 datastore_up 指标
type livenessProbe struct {
	store repository.InterviewStore
	cache *repository.QuestionCache
}

func (p *livenessProbe) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), livenessTimeout)
	defer cancel()
	p.probe(ctx)
}

func (p *livenessProbe) probe(ctx context.Context) {
	if p.store.Configured() {
		err := p.store.Ping(ctx)
		if err != nil {
			logger.Log.Warn("Database liveness probe failed", zap.Error(err))
		}
		monitoring.SetDatastoreUp("database", err == nil)
	}

	if p.cache.Enabled() {
		err := p.cache.Ping(ctx)
		if err != nil {
			logger.Log.Warn("Redis liveness probe failed", zap.Error(err))
		}
		monitoring.SetDatastoreUp("redis", err == nil)
	}
}

func (a *App) startBackgroundTasks(repos *repositories) error {
	probe := &livenessProbe{store: repos.interviews, cache: repos.cache}
	// 启动时先探测一次
	probe.Run()

	c := cron.New()
	if _, err := c.AddJob(livenessSchedule, probe); err != nil {
		return err
	}
	c.Start()
	a.cron = c
	return nil
}
