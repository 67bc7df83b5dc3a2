package service

import (
	"context"
	"lingua_backend/internal/config"
	"lingua_backend/internal/model"
	"lingua_backend/internal/repository"
	"lingua_backend/pkg/database"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testEnv 每个测试一个独立的 sqlite 库，时钟固定为 now
type testEnv struct {
	db        *gorm.DB
	progress  *repository.ProgressRepository
	courses   *repository.CourseRepository
	users     *repository.UserRepository
	resolver  *ProgressResolver
	svc       *ProgressService
	exams     *ExamService
	analytics *AnalyticsService
	now       time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.InitDB(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "lingua.db"),
	}, true)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	env := &testEnv{
		db:       db,
		progress: repository.NewProgressRepository(db),
		courses:  repository.NewCourseRepository(db),
		users:    repository.NewUserRepository(db),
		now:      time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return env.now }

	timeout := NewCollaboratorTimeout(time.Second)
	courseDir := NewGormCourseDirectory(env.courses, timeout)
	userDir := NewGormUserDirectory(env.users, timeout)

	env.resolver = NewProgressResolver(env.progress, courseDir, userDir)
	env.resolver.Now = clock
	env.svc = NewProgressService(env.resolver, env.progress, 3, time.UTC)
	env.svc.Now = clock
	env.exams = NewExamService(env.resolver, env.progress, 3, time.UTC)
	env.exams.Now = clock
	env.analytics = NewAnalyticsService(env.progress, env.courses, env.users, courseDir, userDir, 5, time.UTC)
	env.analytics.Now = clock
	return env
}

func (e *testEnv) seedUser(t *testing.T, id, username string, role model.UserRole, createdAt time.Time) {
	t.Helper()
	user := &model.User{
		UUIDBase: model.UUIDBase{ID: id, CreatedAt: createdAt, UpdatedAt: createdAt},
		Username: username,
		Email:    id + "@example.com",
		Role:     role,
	}
	require.NoError(t, e.db.Create(user).Error)
}

func (e *testEnv) seedLearner(t *testing.T, id string) {
	t.Helper()
	e.seedUser(t, id, "learner "+id, model.Learner, e.now.AddDate(0, -2, 0))
}

func (e *testEnv) seedCourse(t *testing.T, id, name string, vocabulary, exercises int, createdAt time.Time) {
	t.Helper()
	course := &model.Course{
		UUIDBase:        model.UUIDBase{ID: id, CreatedAt: createdAt, UpdatedAt: createdAt},
		Name:            name,
		Level:           model.Beginner,
		VocabularyTotal: vocabulary,
		ExerciseTotal:   exercises,
	}
	require.NoError(t, e.db.Create(course).Error)
}

// insertProgress 绕过解析器直接写入一条记录，用来模拟历史数据
func (e *testEnv) insertProgress(t *testing.T, learnerID, courseID string, known, vocabTotal, completed, exerciseTotal int, at time.Time) *model.ProgressRecord {
	t.Helper()
	rec := &model.ProgressRecord{LearnerID: learnerID, CourseID: courseID}
	rec.Progress.Vocabulary.Known = known
	rec.Progress.Vocabulary.Studied = known
	rec.Progress.Vocabulary.Total = vocabTotal
	rec.Progress.Exercises.Completed = completed
	rec.Progress.Exercises.Total = exerciseTotal
	Recompute(rec, at)
	require.NoError(t, e.progress.Create(context.Background(), rec))
	return rec
}
