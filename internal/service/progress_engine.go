package service

import (
	"lingua_backend/internal/model"
	"lingua_backend/internal/util"
	"math"
	"time"
)

// 评分规则，全部为纯函数，持久化由 ProgressService 负责

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// dimensionPercent count 为 0 时即使 total 非 0 也返回 0；结果封顶 100
func dimensionPercent(count, total int) int {
	if count <= 0 || total <= 0 {
		return 0
	}
	// 整数运算避免 x.5 被浮点误差舍错方向
	pct := (count*200 + total) / (2 * total)
	if pct > 100 {
		return 100
	}
	return pct
}

func overallPercent(vocabulary, exercises int) int {
	return roundHalfUp(float64(vocabulary)*model.VocabularyWeight + float64(exercises)*model.ExerciseWeight)
}

// DeriveStatus 由总进度推导状态
func DeriveStatus(overall int) model.ProgressStatus {
	switch {
	case overall >= model.CompletedThreshold:
		return model.StatusCompleted
	case overall >= model.ExamReadyThreshold:
		return model.StatusExamReady
	case overall > 0:
		return model.StatusInProgress
	default:
		return model.StatusNotStarted
	}
}

func floorZero(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Recompute 根据当前计数重新计算百分比与状态。completedAt 只设置一次
func Recompute(rec *model.ProgressRecord, now time.Time) {
	vocab := &rec.Progress.Vocabulary
	vocab.Percentage = dimensionPercent(vocab.Known, vocab.Total)

	exercises := &rec.Progress.Exercises
	exercises.Percentage = dimensionPercent(exercises.Completed, exercises.Total)

	rec.Progress.Overall.Percentage = overallPercent(vocab.Percentage, exercises.Percentage)
	rec.Status = DeriveStatus(rec.Progress.Overall.Percentage)
	if rec.Status == model.StatusCompleted && rec.CompletedAt == nil {
		completedAt := now
		rec.CompletedAt = &completedAt
	}
	rec.LastUpdated = now
}

func markStudied(rec *model.ProgressRecord, now time.Time) {
	if rec.StartedAt == nil {
		startedAt := now
		rec.StartedAt = &startedAt
	}
	lastStudied := now
	rec.Stats.LastStudied = &lastStudied
}

// ApplyVocabularyProgress 写入绝对计数（不是增量），重复提交结果相同
func ApplyVocabularyProgress(rec *model.ProgressRecord, studied, known, total int, now time.Time) error {
	if total < 0 {
		return util.InvalidInput("vocabulary total must not be negative, got %d", total)
	}
	rec.Progress.Vocabulary.Studied = floorZero(studied)
	rec.Progress.Vocabulary.Known = floorZero(known)
	rec.Progress.Vocabulary.Total = total
	markStudied(rec, now)
	Recompute(rec, now)
	return nil
}

func ApplyExerciseProgress(rec *model.ProgressRecord, completed, total int, now time.Time) error {
	if total < 0 {
		return util.InvalidInput("exercise total must not be negative, got %d", total)
	}
	rec.Progress.Exercises.Completed = floorZero(completed)
	rec.Progress.Exercises.Total = total
	markStudied(rec, now)
	Recompute(rec, now)
	return nil
}

// applyExamResult 考试只影响状态；答对题数达到阈值时强制完成
func applyExamResult(rec *model.ProgressRecord, score int, now time.Time) {
	markStudied(rec, now)
	rec.LastUpdated = now
	if score >= model.ForceCompleteScore {
		rec.Status = model.StatusCompleted
		rec.Progress.Overall.Percentage = 100
		if rec.CompletedAt == nil {
			completedAt := now
			rec.CompletedAt = &completedAt
		}
	}
}

func examPercentage(score, totalQuestions int) int {
	if totalQuestions <= 0 {
		return 0
	}
	return (score*200 + totalQuestions) / (2 * totalQuestions)
}

// nextStreak 同一天保持，相隔一天加一，其余重置为 1
func nextStreak(lastStudied *time.Time, streak int, now time.Time, loc *time.Location) int {
	if lastStudied == nil || streak <= 0 {
		return 1
	}
	last := dayStart(lastStudied.In(loc))
	today := dayStart(now.In(loc))
	switch {
	case today.Equal(last):
		return streak
	case today.Equal(last.AddDate(0, 0, 1)):
		return streak + 1
	case today.Before(last):
		// 时钟回拨，不动
		return streak
	default:
		return 1
	}
}

// utcNow 写库的时间统一用 UTC，sqlite 按文本比较时间
func utcNow() time.Time {
	return time.Now().UTC()
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
