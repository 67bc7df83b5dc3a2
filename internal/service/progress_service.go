package service

import (
	"context"
	"errors"
	"lingua_backend/internal/model"
	"lingua_backend/internal/repository"
	"lingua_backend/internal/util"
	"lingua_backend/pkg/logger"
	"lingua_backend/pkg/monitoring"
	"lingua_backend/pkg/tracing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// VocabularyUpdate 绝对计数。Total 为空时沿用记录里的总数
type VocabularyUpdate struct {
	Studied int  `json:"studied"`
	Known   int  `json:"known"`
	Total   *int `json:"total,omitempty"`
}

type ExerciseUpdate struct {
	Completed int  `json:"completed"`
	Total     *int `json:"total,omitempty"`
}

type StudySession struct {
	Minutes int `json:"minutes" binding:"min=0,max=1440"`
}

type ProgressService struct {
	Resolver   *ProgressResolver
	Repo       *repository.ProgressRepository
	MaxRetries int
	Location   *time.Location
	Now        func() time.Time
}

func NewProgressService(resolver *ProgressResolver, repo *repository.ProgressRepository, maxRetries int, loc *time.Location) *ProgressService {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ProgressService{
		Resolver:   resolver,
		Repo:       repo,
		MaxRetries: maxRetries,
		Location:   loc,
		Now:        utcNow,
	}
}

func startSpan(ctx context.Context, name, learnerID, courseID string) (context.Context, trace.Span) {
	return tracing.Tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("learner.id", learnerID),
		attribute.String("course.id", courseID),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// GetProgress 不存在则创建
func (s *ProgressService) GetProgress(ctx context.Context, learnerID, courseID string) (rec *model.ProgressRecord, err error) {
	ctx, span := startSpan(ctx, "ProgressService.GetProgress", learnerID, courseID)
	defer func() { endSpan(span, err) }()

	return s.Resolver.Resolve(ctx, learnerID, courseID)
}

func (s *ProgressService) UpdateVocabularyProgress(ctx context.Context, learnerID, courseID string, in VocabularyUpdate) (rec *model.ProgressRecord, err error) {
	ctx, span := startSpan(ctx, "ProgressService.UpdateVocabularyProgress", learnerID, courseID)
	defer func() { endSpan(span, err) }()

	if in.Total != nil && *in.Total < 0 {
		return nil, util.InvalidInput("vocabulary total must not be negative, got %d", *in.Total)
	}
	return s.mutate(ctx, "vocabulary", learnerID, courseID, func(rec *model.ProgressRecord, now time.Time) error {
		total := rec.Progress.Vocabulary.Total
		if in.Total != nil {
			total = *in.Total
		}
		return ApplyVocabularyProgress(rec, in.Studied, in.Known, total, now)
	})
}

func (s *ProgressService) UpdateExerciseProgress(ctx context.Context, learnerID, courseID string, in ExerciseUpdate) (rec *model.ProgressRecord, err error) {
	ctx, span := startSpan(ctx, "ProgressService.UpdateExerciseProgress", learnerID, courseID)
	defer func() { endSpan(span, err) }()

	if in.Total != nil && *in.Total < 0 {
		return nil, util.InvalidInput("exercise total must not be negative, got %d", *in.Total)
	}
	return s.mutate(ctx, "exercises", learnerID, courseID, func(rec *model.ProgressRecord, now time.Time) error {
		total := rec.Progress.Exercises.Total
		if in.Total != nil {
			total = *in.Total
		}
		return ApplyExerciseProgress(rec, in.Completed, total, now)
	})
}

// mutate 读-改-写，版本冲突时重新读取再试，超过次数返回 TransientStoreFailure
func (s *ProgressService) mutate(ctx context.Context, op, learnerID, courseID string, apply func(*model.ProgressRecord, time.Time) error) (*model.ProgressRecord, error) {
	var lastErr error
	for attempt := 1; attempt <= s.MaxRetries; attempt++ {
		rec, err := s.Resolver.Resolve(ctx, learnerID, courseID)
		if err != nil {
			return nil, err
		}

		now := s.Now()
		before := rec.Status
		// 先于 apply 计算，apply 会刷新 lastStudied
		streak := nextStreak(rec.Stats.LastStudied, rec.Stats.StreakDays, now, s.Location)
		if err := apply(rec, now); err != nil {
			return nil, err
		}
		rec.Stats.StreakDays = streak

		err = s.Repo.SaveDerived(ctx, rec)
		if err == nil {
			monitoring.ProgressWrites.WithLabelValues(op, "ok").Inc()
			recordTransition(before, rec.Status)
			return rec, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			monitoring.ProgressWrites.WithLabelValues(op, "error").Inc()
			return nil, util.TransientFailure("progress save", err)
		}

		monitoring.ProgressWrites.WithLabelValues(op, "conflict").Inc()
		logger.Log.Debug("progress version conflict, retrying",
			zap.String("operation", op),
			zap.Uint("progressId", rec.ID),
			zap.Int("attempt", attempt))
		lastErr = err
	}
	return nil, util.TransientFailure("progress save", lastErr)
}

func recordTransition(from, to model.ProgressStatus) {
	if from != to {
		monitoring.StatusTransitions.WithLabelValues(string(from), string(to)).Inc()
	}
}

// RecordStudySession 只累加学习统计，不影响进度与状态
func (s *ProgressService) RecordStudySession(ctx context.Context, learnerID, courseID string, in StudySession) (rec *model.ProgressRecord, err error) {
	ctx, span := startSpan(ctx, "ProgressService.RecordStudySession", learnerID, courseID)
	defer func() { endSpan(span, err) }()

	if in.Minutes < 0 {
		return nil, util.InvalidInput("minutes must not be negative, got %d", in.Minutes)
	}

	rec, err = s.Resolver.Resolve(ctx, learnerID, courseID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	streak := nextStreak(rec.Stats.LastStudied, rec.Stats.StreakDays, now, s.Location)
	if err := s.Repo.RecordSession(ctx, rec.ID, in.Minutes, now, streak); err != nil {
		monitoring.ProgressWrites.WithLabelValues("session", "error").Inc()
		return nil, util.TransientFailure("record session", err)
	}
	monitoring.ProgressWrites.WithLabelValues("session", "ok").Inc()

	rec, err = s.Repo.FindByID(ctx, rec.ID)
	if err != nil {
		return nil, util.TransientFailure("progress lookup", err)
	}
	return rec, nil
}
