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

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ExamService struct {
	Resolver   *ProgressResolver
	Repo       *repository.ProgressRepository
	MaxRetries int
	Location   *time.Location
	Now        func() time.Time
}

func NewExamService(resolver *ProgressResolver, repo *repository.ProgressRepository, maxRetries int, loc *time.Location) *ExamService {
	if maxRetries < 1 {
		maxRetries = 1
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ExamService{
		Resolver:   resolver,
		Repo:       repo,
		MaxRetries: maxRetries,
		Location:   loc,
		Now:        utcNow,
	}
}

func validateSubmission(sub *model.ExamSubmission) error {
	if err := util.ValidateStruct(sub); err != nil {
		return err
	}
	if sub.CorrectAnswers != nil && *sub.CorrectAnswers > sub.TotalQuestions {
		return util.InvalidInput("correctAnswers %d exceeds totalQuestions %d", *sub.CorrectAnswers, sub.TotalQuestions)
	}
	return nil
}

// SubmitExam 追加一次考试记录。进度记录必须已存在，考试不会创建记录。
// 带 submissionKey 的重复提交直接返回当前记录
func (s *ExamService) SubmitExam(ctx context.Context, learnerID, courseID string, sub model.ExamSubmission) (rec *model.ProgressRecord, err error) {
	ctx, span := startSpan(ctx, "ExamService.SubmitExam", learnerID, courseID)
	defer func() { endSpan(span, err) }()

	sub.SubmissionKey = strings.TrimSpace(sub.SubmissionKey)
	if err := validateSubmission(&sub); err != nil {
		monitoring.ExamSubmissions.WithLabelValues("invalid").Inc()
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= s.MaxRetries; attempt++ {
		rec, _, err = s.Resolver.Find(ctx, learnerID, courseID)
		if err != nil {
			if errors.Is(err, repository.ErrProgressNotFound) {
				monitoring.ExamSubmissions.WithLabelValues("precursor_missing").Inc()
				return nil, util.PrecursorMissing("no progress record for learner %s in course %s", learnerID, courseID)
			}
			return nil, err
		}

		if sub.SubmissionKey != "" {
			if _, err := s.Repo.FindAttemptBySubmissionKey(ctx, rec.ID, sub.SubmissionKey); err == nil {
				monitoring.ExamSubmissions.WithLabelValues("duplicate").Inc()
				return rec, nil
			} else if !errors.Is(err, repository.ErrAttemptNotFound) {
				return nil, util.TransientFailure("exam lookup", err)
			}
		}

		now := s.Now()
		exam := newAttempt(sub, now)
		before := rec.Status
		streak := nextStreak(rec.Stats.LastStudied, rec.Stats.StreakDays, now, s.Location)
		applyExamResult(rec, sub.Score, now)
		rec.Stats.StreakDays = streak

		err = s.Repo.AppendAttempt(ctx, rec, exam)
		if err == nil {
			result := "recorded"
			if sub.Score >= model.ForceCompleteScore {
				result = "force_completed"
			}
			monitoring.ExamSubmissions.WithLabelValues(result).Inc()
			recordTransition(before, rec.Status)
			return rec, nil
		}

		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			// 同一个 key 的并发提交，另一方已经写入
			monitoring.ExamSubmissions.WithLabelValues("duplicate").Inc()
			rec, err = s.Repo.FindByID(ctx, rec.ID)
			if err != nil {
				return nil, util.TransientFailure("progress lookup", err)
			}
			return rec, nil
		case errors.Is(err, repository.ErrVersionConflict):
			logger.Log.Debug("exam append conflict, retrying",
				zap.Uint("progressId", rec.ID),
				zap.Int("attempt", attempt))
			lastErr = err
		default:
			monitoring.ExamSubmissions.WithLabelValues("error").Inc()
			return nil, util.TransientFailure("exam append", err)
		}
	}
	monitoring.ExamSubmissions.WithLabelValues("error").Inc()
	return nil, util.TransientFailure("exam append", lastErr)
}

func newAttempt(sub model.ExamSubmission, now time.Time) *model.ExamAttempt {
	examID := sub.ExamID
	if examID == "" {
		examID = primitive.NewObjectID().Hex()
	}
	correct := sub.Score
	if sub.CorrectAnswers != nil {
		correct = *sub.CorrectAnswers
	}
	questions := sub.Questions
	if questions == nil {
		questions = []model.QuestionResult{}
	}

	exam := &model.ExamAttempt{
		ExamID:         examID,
		Score:          sub.Score,
		TotalQuestions: sub.TotalQuestions,
		CorrectAnswers: correct,
		Percentage:     examPercentage(sub.Score, sub.TotalQuestions),
		CompletedAt:    now,
		Questions:      questions,
	}
	if sub.SubmissionKey != "" {
		key := sub.SubmissionKey
		exam.SubmissionKey = &key
	}
	return exam
}
