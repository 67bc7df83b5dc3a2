package service

import (
	"context"
	"errors"
	"lingua_backend/internal/model"
	"lingua_backend/internal/repository"
	"lingua_backend/internal/util"
	"lingua_backend/pkg/logger"
	"lingua_backend/pkg/monitoring"
	"strings"
	"time"

	"go.uber.org/zap"
)

type MatchTier string

const (
	TierCanonical MatchTier = "canonical"
	TierRaw       MatchTier = "raw"
	TierVariants  MatchTier = "variants"
	TierCreated   MatchTier = "created"
)

// ProgressResolver 把各种写法的 (learnerId, courseId) 定位到唯一一条进度记录
type ProgressResolver struct {
	Repo    *repository.ProgressRepository
	Courses CourseDirectory
	Users   UserDirectory
	Now     func() time.Time
}

func NewProgressResolver(repo *repository.ProgressRepository, courses CourseDirectory, users UserDirectory) *ProgressResolver {
	return &ProgressResolver{
		Repo:    repo,
		Courses: courses,
		Users:   users,
		Now:     utcNow,
	}
}

func checkIDs(learnerID, courseID string) error {
	if strings.TrimSpace(learnerID) == "" {
		return util.InvalidInput("learnerId is required")
	}
	if strings.TrimSpace(courseID) == "" {
		return util.InvalidInput("courseId is required")
	}
	return nil
}

// Find 只查不建。依次尝试：规范 id，原始字符串，所有已知写法。
// 通过后两级找到的记录会被改写为规范 id
func (r *ProgressResolver) Find(ctx context.Context, learnerID, courseID string) (*model.ProgressRecord, MatchTier, error) {
	if err := checkIDs(learnerID, courseID); err != nil {
		return nil, "", err
	}
	learner := util.CanonicalID(learnerID)
	course := util.CanonicalID(courseID)

	rec, err := r.Repo.FindByKey(ctx, learner, course)
	if err == nil {
		monitoring.ResolverMatches.WithLabelValues(string(TierCanonical)).Inc()
		return rec, TierCanonical, nil
	}
	if !errors.Is(err, repository.ErrProgressNotFound) {
		return nil, "", util.TransientFailure("progress lookup", err)
	}

	tier := TierRaw
	if learnerID != learner {
		rec, err = r.Repo.FindByKey(ctx, learnerID, course)
	}
	if learnerID == learner || errors.Is(err, repository.ErrProgressNotFound) {
		tier = TierVariants
		rec, err = r.Repo.FindByLearnerIn(ctx, util.IDVariants(learnerID), course)
	}
	if err != nil {
		if errors.Is(err, repository.ErrProgressNotFound) {
			return nil, "", err
		}
		return nil, "", util.TransientFailure("progress lookup", err)
	}

	monitoring.ResolverMatches.WithLabelValues(string(tier)).Inc()
	r.rekey(ctx, rec, learner, course, tier)
	return rec, tier, nil
}

// rekey 失败不影响本次请求，下次访问还会走旧写法匹配
func (r *ProgressResolver) rekey(ctx context.Context, rec *model.ProgressRecord, learner, course string, tier MatchTier) {
	if rec.LearnerID == learner && rec.CourseID == course {
		return
	}
	if err := r.Repo.Rekey(ctx, rec.ID, learner, course); err != nil {
		logger.Log.Warn("rekey progress record failed",
			zap.Uint("progressId", rec.ID),
			zap.String("learnerId", rec.LearnerID),
			zap.String("canonicalLearnerId", learner),
			zap.String("tier", string(tier)),
			zap.Error(err))
		return
	}
	logger.Log.Info("progress record rekeyed",
		zap.Uint("progressId", rec.ID),
		zap.String("from", rec.LearnerID),
		zap.String("to", learner),
		zap.String("tier", string(tier)))
	rec.LearnerID = learner
	rec.CourseID = course
}

// Resolve 查不到就创建。总数从课程复制，计数为 0，并计算一次进度
func (r *ProgressResolver) Resolve(ctx context.Context, learnerID, courseID string) (*model.ProgressRecord, error) {
	rec, _, err := r.Find(ctx, learnerID, courseID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, repository.ErrProgressNotFound) {
		return nil, err
	}

	learner := util.CanonicalID(learnerID)
	course := util.CanonicalID(courseID)

	exists, err := r.Users.Exists(ctx, learner)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ReferenceNotFound("learner %s not found", learnerID)
	}
	totals, err := r.Courses.Totals(ctx, course)
	if err != nil {
		return nil, err
	}

	rec = &model.ProgressRecord{
		LearnerID: learner,
		CourseID:  course,
	}
	rec.Progress.Vocabulary.Total = totals.VocabularyTotal
	rec.Progress.Exercises.Total = totals.ExerciseTotal
	Recompute(rec, r.Now())

	err = r.Repo.Create(ctx, rec)
	if err == nil {
		rec.ExamAttempts = []model.ExamAttempt{}
		monitoring.ResolverMatches.WithLabelValues(string(TierCreated)).Inc()
		return rec, nil
	}
	if !errors.Is(err, repository.ErrProgressExists) {
		return nil, util.TransientFailure("progress create", err)
	}

	// 并发创建，另一方已经写入
	rec, err = r.Repo.FindByKey(ctx, learner, course)
	if err != nil {
		return nil, util.TransientFailure("progress lookup", err)
	}
	monitoring.ResolverMatches.WithLabelValues(string(TierCanonical)).Inc()
	return rec, nil
}
