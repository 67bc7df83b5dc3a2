package app

import (
	"context"
	"lingua_backend/pkg/logger"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

const jobTimeout = 2 * time.Minute

// startBackgroundTasks 统计刷新、每日报表归档、孤立记录巡检、限流表清理
func (a *App) startBackgroundTasks(ctx context.Context) error {
	cfg := a.Config.Analytics
	s := gocron.NewScheduler(cfg.Location())
	s.SingletonModeAll()

	if cfg.RefreshInterval > 0 {
		if _, err := s.Every(cfg.RefreshInterval).Do(a.runJob(ctx, "refresh-gauges", a.services.analytics.RefreshGauges)); err != nil {
			return err
		}
	}

	if _, err := s.Every(1).Day().At(cfg.ReportArchiveAt).Do(a.runJob(ctx, "archive-report", func(ctx context.Context) error {
		_, err := a.services.report.Archive(ctx)
		return err
	})); err != nil {
		return err
	}

	if _, err := s.Every(1).Day().At(cfg.OrphanScanAt).Do(a.runJob(ctx, "orphan-scan", func(ctx context.Context) error {
		report, err := a.services.analytics.OrphanReport(ctx)
		if err != nil {
			return err
		}
		if report.Total > 0 {
			logger.Log.Warn("Orphan progress records found", zap.Int("total", report.Total))
		}
		return nil
	})); err != nil {
		return err
	}

	if _, err := s.Every(time.Minute).Do(func() {
		if removed := a.limiter.Sweep(time.Now()); removed > 0 {
			logger.Log.Debug("rate limiter entries swept", zap.Int("removed", removed))
		}
	}); err != nil {
		return err
	}

	s.StartAsync()
	a.Scheduler = s
	return nil
}

func (a *App) runJob(parent context.Context, name string, job func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(parent, jobTimeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			logger.Log.Error("background job failed", zap.String("job", name), zap.Error(err))
			return
		}
		logger.Log.Debug("background job done", zap.String("job", name), zap.Duration("took", time.Since(start)))
	}
}
