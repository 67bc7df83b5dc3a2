package repository

import (
	"context"
	"errors"
	"lingua_backend/internal/config"
	"lingua_backend/internal/model"
	"lingua_backend/pkg/database"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.InitDB(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "repo.db"),
	}, true)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func createRecord(t *testing.T, repo *ProgressRepository, learnerID, courseID string) *model.ProgressRecord {
	t.Helper()
	rec := &model.ProgressRecord{
		LearnerID:   learnerID,
		CourseID:    courseID,
		Status:      model.StatusNotStarted,
		LastUpdated: time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), rec))
	return rec
}

func TestCreateRejectsDuplicateKey(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))
	rec := createRecord(t, repo, "l1", "c1")
	assert.Equal(t, 1, rec.Version)

	err := repo.Create(context.Background(), &model.ProgressRecord{LearnerID: "l1", CourseID: "c1", Status: model.StatusNotStarted})
	assert.True(t, errors.Is(err, ErrProgressExists))
}

func TestSaveDerivedDetectsStaleVersion(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))
	ctx := context.Background()
	rec := createRecord(t, repo, "l1", "c1")

	a, err := repo.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	b, err := repo.FindByID(ctx, rec.ID)
	require.NoError(t, err)

	a.Progress.Exercises.Completed = 3
	require.NoError(t, repo.SaveDerived(ctx, a))
	assert.Equal(t, 2, a.Version)

	b.Progress.Exercises.Completed = 7
	assert.True(t, errors.Is(repo.SaveDerived(ctx, b), ErrVersionConflict))

	stored, err := repo.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Progress.Exercises.Completed)
	assert.Equal(t, 2, stored.Version)
}

func TestAppendAttemptSequencing(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))
	ctx := context.Background()
	rec := createRecord(t, repo, "l1", "c1")

	key := "k1"
	first := &model.ExamAttempt{Score: 4, TotalQuestions: 10, SubmissionKey: &key, CompletedAt: time.Now()}
	require.NoError(t, repo.AppendAttempt(ctx, rec, first))
	assert.Equal(t, 1, first.Seq)
	assert.Equal(t, 2, rec.Version)

	second := &model.ExamAttempt{Score: 9, TotalQuestions: 10, CompletedAt: time.Now()}
	require.NoError(t, repo.AppendAttempt(ctx, rec, second))
	assert.Equal(t, 2, second.Seq)
	assert.Len(t, rec.ExamAttempts, 2)

	dup := &model.ExamAttempt{Score: 1, TotalQuestions: 10, SubmissionKey: &key, CompletedAt: time.Now()}
	err := repo.AppendAttempt(ctx, rec, dup)
	assert.True(t, errors.Is(err, ErrDuplicateKey))
	assert.Equal(t, 3, rec.Version)

	found, err := repo.FindAttemptBySubmissionKey(ctx, rec.ID, key)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Seq)

	_, err = repo.FindAttemptBySubmissionKey(ctx, rec.ID, "other")
	assert.True(t, errors.Is(err, ErrAttemptNotFound))

	stored, err := repo.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	require.Len(t, stored.ExamAttempts, 2)
	assert.Equal(t, 1, stored.ExamAttempts[0].Seq)
	assert.Equal(t, 2, stored.ExamAttempts[1].Seq)
	assert.Equal(t, 3, stored.Version)
}

func TestRecordSessionAccumulates(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))
	ctx := context.Background()
	rec := createRecord(t, repo, "l1", "c1")
	first := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.RecordSession(ctx, rec.ID, 20, first, 1))
	require.NoError(t, repo.RecordSession(ctx, rec.ID, 25, first.Add(time.Hour), 1))

	stored, err := repo.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, stored.Stats.TotalStudyTime)
	assert.Equal(t, 2, stored.Stats.TotalSessions)
	require.NotNil(t, stored.StartedAt)
	assert.True(t, stored.StartedAt.Equal(first))
	require.NotNil(t, stored.Stats.LastStudied)
	assert.True(t, stored.Stats.LastStudied.Equal(first.Add(time.Hour)))
	assert.Equal(t, 1, stored.Version)
}

func TestFindByLearnerIn(t *testing.T) {
	repo := NewProgressRepository(newTestDB(t))
	ctx := context.Background()
	rec := createRecord(t, repo, "ABC", "c1")

	found, err := repo.FindByLearnerIn(ctx, []string{"abc", "ABC"}, "c1")
	require.NoError(t, err)
	assert.Equal(t, rec.ID, found.ID)

	_, err = repo.FindByLearnerIn(ctx, nil, "c1")
	assert.True(t, errors.Is(err, ErrProgressNotFound))

	require.NoError(t, repo.Rekey(ctx, rec.ID, "abc", "c1"))
	_, err = repo.FindByKey(ctx, "abc", "c1")
	assert.NoError(t, err)
}

func TestListPageOrdering(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()
	for i, pct := range []int{30, 90, 30, 60} {
		rec := createRecord(t, repo, "l"+string(rune('a'+i)), "c1")
		require.NoError(t, db.Model(rec).Update("overall_percentage", pct).Error)
	}

	records, err := repo.ListPage(ctx, 0, 10, "progress", true)
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "lb", records[0].LearnerID)
	assert.Equal(t, "ld", records[1].LearnerID)
	// 同分按 id 降序
	assert.Equal(t, "lc", records[2].LearnerID)
	assert.Equal(t, "la", records[3].LearnerID)

	_, err = repo.ListPage(ctx, 0, 10, "username", true)
	assert.Error(t, err)
	assert.False(t, IsSortable("username"))
}

func TestFindOrphans(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()

	live := &model.Course{UUIDBase: model.UUIDBase{ID: "live"}, Name: "Live"}
	gone := &model.Course{UUIDBase: model.UUIDBase{ID: "gone"}, Name: "Gone"}
	require.NoError(t, db.Create(live).Error)
	require.NoError(t, db.Create(gone).Error)
	require.NoError(t, db.Delete(gone).Error)

	createRecord(t, repo, "l1", "live")
	orphanA := createRecord(t, repo, "l1", "gone")
	orphanB := createRecord(t, repo, "l2", "never-existed")

	entries, err := repo.FindOrphans(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, orphanA.ID, entries[0].ProgressID)
	assert.Equal(t, "gone", entries[0].CourseID)
	assert.Equal(t, orphanB.ID, entries[1].ProgressID)
	assert.Equal(t, "l2", entries[1].LearnerID)
}

func TestAggregateByCourse(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)
	ctx := context.Background()

	a := createRecord(t, repo, "l1", "c1")
	b := createRecord(t, repo, "l2", "c1")
	createRecord(t, repo, "l3", "c2")
	require.NoError(t, repo.AppendAttempt(ctx, a, &model.ExamAttempt{Score: 8, TotalQuestions: 10, CompletedAt: time.Now()}))
	require.NoError(t, db.Model(&model.ProgressRecord{}).Where("id = ?", a.ID).Updates(map[string]interface{}{"status": model.StatusCompleted, "overall_percentage": 100}).Error)
	require.NoError(t, db.Model(&model.ProgressRecord{}).Where("id = ?", b.ID).Updates(map[string]interface{}{"status": model.StatusInProgress, "overall_percentage": 40}).Error)

	aggregates, err := repo.AggregateByCourse(ctx)
	require.NoError(t, err)
	byCourse := map[string]model.CourseProgressAggregate{}
	for _, agg := range aggregates {
		byCourse[agg.CourseID] = agg
	}

	c1 := byCourse["c1"]
	assert.EqualValues(t, 2, c1.TotalLearners)
	assert.EqualValues(t, 1, c1.CompletedLearners)
	assert.EqualValues(t, 1, c1.InProgressLearners)
	assert.InDelta(t, 70.0, c1.AverageProgress, 0.001)
	assert.EqualValues(t, 1, c1.TotalExamAttempts)
	assert.EqualValues(t, 1, byCourse["c2"].TotalLearners)
	assert.Zero(t, byCourse["c2"].TotalExamAttempts)
}
