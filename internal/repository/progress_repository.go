package repository

import (
	"context"
	"errors"
	"fmt"
	"lingua_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

var (
	ErrProgressNotFound  = errors.New("progress not found")
	ErrProgressExists    = errors.New("progress already exists")
	ErrVersionConflict   = errors.New("progress modified concurrently")
	ErrDuplicateKey      = errors.New("duplicate submission key")
	ErrAttemptNotFound   = errors.New("exam attempt not found")
	errUnsupportedOrder  = errors.New("unsupported order column")
	progressOrderColumns = map[string]string{
		"progress":    "overall_percentage",
		"lastUpdated": "last_updated",
		"startedAt":   "started_at",
	}
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) first(ctx context.Context, query *gorm.DB) (*model.ProgressRecord, error) {
	var rec model.ProgressRecord
	err := query.WithContext(ctx).
		Preload("ExamAttempts", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq ASC")
		}).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("find progress: %w", err)
	}
	return &rec, nil
}

// FindByKey 精确匹配 (learner_id, course_id)
func (r *ProgressRepository) FindByKey(ctx context.Context, learnerID, courseID string) (*model.ProgressRecord, error) {
	return r.first(ctx, r.DB.Where("learner_id = ? AND course_id = ?", learnerID, courseID))
}

// FindByLearnerIn learner_id 取任意一种写法，course_id 精确匹配
func (r *ProgressRepository) FindByLearnerIn(ctx context.Context, learnerIDs []string, courseID string) (*model.ProgressRecord, error) {
	if len(learnerIDs) == 0 {
		return nil, ErrProgressNotFound
	}
	return r.first(ctx, r.DB.Where("learner_id IN ? AND course_id = ?", learnerIDs, courseID).Order("id ASC"))
}

func (r *ProgressRepository) FindByID(ctx context.Context, id uint) (*model.ProgressRecord, error) {
	return r.first(ctx, r.DB.Where("id = ?", id))
}

// Create 依赖 (learner_id, course_id) 唯一索引，并发创建时输的一方得到 ErrProgressExists
func (r *ProgressRepository) Create(ctx context.Context, rec *model.ProgressRecord) error {
	if rec.Version == 0 {
		rec.Version = 1
	}
	rec.LastUpdated = rec.LastUpdated.UTC()
	rec.StartedAt = utcPtr(rec.StartedAt)
	rec.CompletedAt = utcPtr(rec.CompletedAt)
	rec.Stats.LastStudied = utcPtr(rec.Stats.LastStudied)
	err := r.DB.WithContext(ctx).Omit("ExamAttempts").Create(rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrProgressExists
		}
		return fmt.Errorf("create progress: %w", err)
	}
	return nil
}

// Rekey 把旧写法的标识改成规范形式，不动进度字段
func (r *ProgressRepository) Rekey(ctx context.Context, id uint, learnerID, courseID string) error {
	err := r.DB.WithContext(ctx).
		Model(&model.ProgressRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"learner_id": learnerID,
			"course_id":  courseID,
		}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrProgressExists
		}
		return fmt.Errorf("rekey progress: %w", err)
	}
	return nil
}

// utcPtr sqlite 以文本保存时间，偏移不一致时比较会出错，入库前统一转成 UTC
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func derivedColumns(rec *model.ProgressRecord) map[string]interface{} {
	return map[string]interface{}{
		"vocab_studied":       rec.Progress.Vocabulary.Studied,
		"vocab_known":         rec.Progress.Vocabulary.Known,
		"vocab_total":         rec.Progress.Vocabulary.Total,
		"vocab_percentage":    rec.Progress.Vocabulary.Percentage,
		"exercise_completed":  rec.Progress.Exercises.Completed,
		"exercise_total":      rec.Progress.Exercises.Total,
		"exercise_percentage": rec.Progress.Exercises.Percentage,
		"overall_percentage":  rec.Progress.Overall.Percentage,
		"status":              rec.Status,
		"started_at":          utcPtr(rec.StartedAt),
		"completed_at":        utcPtr(rec.CompletedAt),
		"last_updated":        rec.LastUpdated.UTC(),
		"stats_last_studied":  utcPtr(rec.Stats.LastStudied),
		"stats_streak_days":   rec.Stats.StreakDays,
		"version":             gorm.Expr("version + 1"),
	}
}

func saveDerived(tx *gorm.DB, rec *model.ProgressRecord) error {
	result := tx.Model(&model.ProgressRecord{}).
		Where("id = ? AND version = ?", rec.ID, rec.Version).
		Updates(derivedColumns(rec))
	if result.Error != nil {
		return fmt.Errorf("save progress: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}
	rec.Version++
	return nil
}

// SaveDerived 乐观锁写回进度与状态，版本不一致返回 ErrVersionConflict
func (r *ProgressRepository) SaveDerived(ctx context.Context, rec *model.ProgressRecord) error {
	return saveDerived(r.DB.WithContext(ctx), rec)
}

// AppendAttempt 在同一事务里写回记录并追加一次考试
func (r *ProgressRepository) AppendAttempt(ctx context.Context, rec *model.ProgressRecord, attempt *model.ExamAttempt) error {
	version := rec.Version
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveDerived(tx, rec); err != nil {
			return err
		}

		var maxSeq int
		if err := tx.Model(&model.ExamAttempt{}).
			Where("progress_id = ?", rec.ID).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&maxSeq).Error; err != nil {
			return fmt.Errorf("next attempt seq: %w", err)
		}

		attempt.ProgressID = rec.ID
		attempt.Seq = maxSeq + 1
		if err := tx.Create(attempt).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				if attempt.SubmissionKey != nil {
					return ErrDuplicateKey
				}
				return ErrVersionConflict
			}
			return fmt.Errorf("append attempt: %w", err)
		}
		return nil
	})
	if err != nil {
		// 事务回滚，版本号没有真正增加
		rec.Version = version
		return err
	}
	rec.ExamAttempts = append(rec.ExamAttempts, *attempt)
	return nil
}

func (r *ProgressRepository) FindAttemptBySubmissionKey(ctx context.Context, progressID uint, key string) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	err := r.DB.WithContext(ctx).
		Where("progress_id = ? AND submission_key = ?", progressID, key).
		First(&attempt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("find attempt: %w", err)
	}
	return &attempt, nil
}

// RecordSession 原子累加学习时长与次数，只写 stats_* 字段
func (r *ProgressRepository) RecordSession(ctx context.Context, id uint, minutes int, studiedAt time.Time, streakDays int) error {
	studiedAt = studiedAt.UTC()
	err := r.DB.WithContext(ctx).
		Model(&model.ProgressRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stats_total_study_time": gorm.Expr("stats_total_study_time + ?", minutes),
			"stats_total_sessions":   gorm.Expr("stats_total_sessions + 1"),
			"stats_last_studied":     studiedAt,
			"stats_streak_days":      streakDays,
			"started_at":             gorm.Expr("COALESCE(started_at, ?)", studiedAt),
		}).Error
	if err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// 以下为统计查询，只读

func (r *ProgressRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.ProgressRecord{}).Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountByStatus(ctx context.Context, status model.ProgressStatus) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.ProgressRecord{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *ProgressRepository) CountOverallAtLeast(ctx context.Context, percentage int) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.ProgressRecord{}).Where("overall_percentage >= ?", percentage).Count(&count).Error
	return count, err
}

func (r *ProgressRepository) StatusCounts(ctx context.Context) (map[model.ProgressStatus]int64, error) {
	var rows []struct {
		Status model.ProgressStatus
		Total  int64
	}
	err := r.DB.WithContext(ctx).Model(&model.ProgressRecord{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[model.ProgressStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *ProgressRepository) CountAttempts(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.ExamAttempt{}).Count(&count).Error
	return count, err
}

// AttemptCounts progress_id -> 考试次数
func (r *ProgressRepository) AttemptCounts(ctx context.Context, progressIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(progressIDs))
	if len(progressIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		ProgressID uint
		Total      int64
	}
	err := r.DB.WithContext(ctx).Model(&model.ExamAttempt{}).
		Select("progress_id, COUNT(*) AS total").
		Where("progress_id IN ?", progressIDs).
		Group("progress_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ProgressID] = row.Total
	}
	return counts, nil
}

// ListPage 不加载考试记录；同分按 id 排序保证分页稳定
func (r *ProgressRepository) ListPage(ctx context.Context, offset, limit int, sortBy string, desc bool) ([]model.ProgressRecord, error) {
	column, ok := progressOrderColumns[sortBy]
	if !ok {
		return nil, errUnsupportedOrder
	}
	direction := "ASC"
	if desc {
		direction = "DESC"
	}

	var records []model.ProgressRecord
	err := r.DB.WithContext(ctx).
		Order(column + " " + direction).
		Order("id " + direction).
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	return records, err
}

func IsSortable(sortBy string) bool {
	_, ok := progressOrderColumns[sortBy]
	return ok
}

func (r *ProgressRepository) ListByLearnerIn(ctx context.Context, learnerIDs []string) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	err := r.DB.WithContext(ctx).
		Where("learner_id IN ?", learnerIDs).
		Order("last_updated DESC").
		Find(&records).Error
	return records, err
}

func (r *ProgressRepository) AggregateByCourse(ctx context.Context) ([]model.CourseProgressAggregate, error) {
	var aggregates []model.CourseProgressAggregate
	err := r.DB.WithContext(ctx).Model(&model.ProgressRecord{}).
		Select(`course_id,
			COUNT(*) AS total_learners,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS completed_learners,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS in_progress_learners,
			AVG(overall_percentage) AS average_progress`,
			model.StatusCompleted, model.StatusInProgress).
		Group("course_id").
		Scan(&aggregates).Error
	if err != nil {
		return nil, err
	}

	var attempts []struct {
		CourseID string
		Total    int64
	}
	err = r.DB.WithContext(ctx).Table("exam_attempts").
		Select("learner_progress.course_id AS course_id, COUNT(exam_attempts.id) AS total").
		Joins("JOIN learner_progress ON learner_progress.id = exam_attempts.progress_id").
		Group("learner_progress.course_id").
		Scan(&attempts).Error
	if err != nil {
		return nil, err
	}

	byCourse := make(map[string]int64, len(attempts))
	for _, a := range attempts {
		byCourse[a.CourseID] = a.Total
	}
	for i := range aggregates {
		aggregates[i].TotalExamAttempts = byCourse[aggregates[i].CourseID]
	}
	return aggregates, nil
}

func (r *ProgressRepository) RecentCompletions(ctx context.Context, limit int) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	err := r.DB.WithContext(ctx).
		Where("status = ? AND completed_at IS NOT NULL", model.StatusCompleted).
		Order("completed_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (r *ProgressRepository) CompletionTimesSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.DB.WithContext(ctx).Model(&model.ProgressRecord{}).
		Where("status = ? AND completed_at >= ?", model.StatusCompleted, since.UTC()).
		Pluck("completed_at", &times).Error
	return times, err
}

// FindOrphans 课程已不存在（或已被软删除）的记录
func (r *ProgressRepository) FindOrphans(ctx context.Context) ([]model.OrphanEntry, error) {
	var entries []model.OrphanEntry
	err := r.DB.WithContext(ctx).Model(&model.ProgressRecord{}).
		Select("learner_progress.id AS progress_id, learner_progress.learner_id, learner_progress.course_id").
		Joins("LEFT JOIN courses ON courses.id = learner_progress.course_id AND courses.deleted_at IS NULL").
		Where("courses.id IS NULL").
		Order("learner_progress.id ASC").
		Scan(&entries).Error
	return entries, err
}
