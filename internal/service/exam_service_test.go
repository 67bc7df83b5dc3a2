package service

import (
	"context"
	"errors"
	"lingua_backend/internal/model"
	"lingua_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitExamRequiresExistingRecord(t *testing.T) {
	env := newProgressEnv(t)
	ctx := context.Background()

	_, err := env.exams.SubmitExam(ctx, objectLearner, testCourse, model.ExamSubmission{Score: 9, TotalQuestions: 10})
	assert.True(t, errors.Is(err, util.ErrPrecursorMissing))

	count, err := env.progress.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSubmitExamAppendsAttempts(t *testing.T) {
	env := newProgressEnv(t)
	ctx := context.Background()

	_, err := env.svc.UpdateExerciseProgress(ctx, objectLearner, testCourse, ExerciseUpdate{Completed: 10})
	require.NoError(t, err)

	rec, err := env.exams.SubmitExam(ctx, objectLearner, testCourse, model.ExamSubmission{
		Score:          5,
		TotalQuestions: 10,
		Questions: []model.QuestionResult{
			{QuestionID: "q1", SelectedAnswer: "a", CorrectAnswer: "a", IsCorrect: true},
			{QuestionID: "q2", SelectedAnswer: "b", CorrectAnswer: "c"},
		},
	})
	require.NoError(t, err)
	require.Len(t, rec.ExamAttempts, 1)
	first := rec.ExamAttempts[0]
	assert.Equal(t, 1, first.Seq)
	assert.Equal(t, 50, first.Percentage)
	assert.Equal(t, 5, first.CorrectAnswers)
	assert.Len(t, first.ExamID, 24)
	assert.Equal(t, model.StatusInProgress, rec.Status)
	assert.Equal(t, 20, rec.Progress.Overall.Percentage)

	rec, err = env.exams.SubmitExam(ctx, objectLearner, testCourse, model.ExamSubmission{ExamID: "final", Score: 6, TotalQuestions: 10})
	require.NoError(t, err)
	require.Len(t, rec.ExamAttempts, 2)
	assert.Equal(t, 2, rec.ExamAttempts[1].Seq)
	assert.Equal(t, "final", rec.ExamAttempts[1].ExamID)

	stored, err := env.svc.GetProgress(ctx, objectLearner, testCourse)
	require.NoError(t, err)
	require.Len(t, stored.ExamAttempts, 2)
	assert.Equal(t, 1, stored.ExamAttempts[0].Seq)
	assert.Len(t, stored.ExamAttempts[0].Questions, 2)
	assert.Equal(t, "q1", stored.ExamAttempts[0].Questions[0].QuestionID)
}

func TestSubmitExamForceCompletes(t *testing.T) {
	env := newProgressEnv(t)
	ctx := context.Background()

	_, err := env.svc.GetProgress(ctx, objectLearner, testCourse)
	require.NoError(t, err)

	// 阈值是答对题数，与题目总数无关
	rec, err := env.exams.SubmitExam(ctx, objectLearner, testCourse, model.ExamSubmission{Score: 8, TotalQuestions: 20})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, rec.Status)
	assert.Equal(t, 100, rec.Progress.Overall.Percentage)
	require.NotNil(t, rec.CompletedAt)
	assert.Equal(t, 40, rec.ExamAttempts[0].Percentage)

	stored, err := env.svc.GetProgress(ctx, objectLearner, testCourse)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, stored.Status)
	assert.Equal(t, 100, stored.Progress.Overall.Percentage)
	require.NotNil(t, stored.StartedAt)
}

func TestSubmitExamDeduplicatesBySubmissionKey(t *testing.T) {
	env := newProgressEnv(t)
	ctx := context.Background()

	_, err := env.svc.GetProgress(ctx, objectLearner, testCourse)
	require.NoError(t, err)

	sub := model.ExamSubmission{Score: 3, TotalQuestions: 10, SubmissionKey: "attempt-1"}
	_, err = env.exams.SubmitExam(ctx, objectLearner, testCourse, sub)
	require.NoError(t, err)
	rec, err := env.exams.SubmitExam(ctx, objectLearner, testCourse, sub)
	require.NoError(t, err)
	assert.Len(t, rec.ExamAttempts, 1)

	sub.SubmissionKey = ""
	rec, err = env.exams.SubmitExam(ctx, objectLearner, testCourse, sub)
	require.NoError(t, err)
	assert.Len(t, rec.ExamAttempts, 2)
}

func TestSubmitExamValidation(t *testing.T) {
	env := newProgressEnv(t)
	ctx := context.Background()

	_, err := env.svc.GetProgress(ctx, objectLearner, testCourse)
	require.NoError(t, err)

	invalid := []model.ExamSubmission{
		{Score: 1, TotalQuestions: 0},
		{Score: 11, TotalQuestions: 10},
		{Score: -1, TotalQuestions: 10},
		{Score: 5, TotalQuestions: 10, CorrectAnswers: intPtr(12)},
		{Score: 5, TotalQuestions: 10, Questions: []model.QuestionResult{{SelectedAnswer: "a"}}},
	}
	for _, sub := range invalid {
		_, err := env.exams.SubmitExam(ctx, objectLearner, testCourse, sub)
		assert.True(t, errors.Is(err, util.ErrInvalidInput), "submission %+v", sub)
	}

	stored, err := env.svc.GetProgress(ctx, objectLearner, testCourse)
	require.NoError(t, err)
	assert.Empty(t, stored.ExamAttempts)
}

func TestSubmitExamFindsLegacyRecord(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	legacy := env.insertProgress(t, "507F1F77BCF86CD799439011", testCourse, 0, 10, 0, 10, env.now)

	rec, err := env.exams.SubmitExam(ctx, objectLearner, testCourse, model.ExamSubmission{Score: 2, TotalQuestions: 10})
	require.NoError(t, err)
	assert.Equal(t, legacy.ID, rec.ID)
	assert.Equal(t, objectLearner, rec.LearnerID)
	assert.Len(t, rec.ExamAttempts, 1)
}

func TestNewLearnerWalkthrough(t *testing.T) {
	env := newTestEnv(t)
	env.seedLearner(t, uuidLearner)
	env.seedCourse(t, "course-walk", "Walkthrough", 50, 20, env.now)
	ctx := context.Background()

	rec, err := env.svc.GetProgress(ctx, uuidLearner, "course-walk")
	require.NoError(t, err)
	assert.Equal(t, model.StatusNotStarted, rec.Status)
	assert.Zero(t, rec.Progress.Vocabulary.Percentage)
	assert.Zero(t, rec.Progress.Exercises.Percentage)
	assert.Zero(t, rec.Progress.Overall.Percentage)

	rec, err = env.svc.UpdateVocabularyProgress(ctx, uuidLearner, "course-walk", VocabularyUpdate{Studied: 30, Known: 30, Total: intPtr(50)})
	require.NoError(t, err)
	assert.Equal(t, 60, rec.Progress.Vocabulary.Percentage)
	assert.Equal(t, 36, rec.Progress.Overall.Percentage)
	assert.Equal(t, model.StatusInProgress, rec.Status)

	rec, err = env.svc.UpdateExerciseProgress(ctx, uuidLearner, "course-walk", ExerciseUpdate{Completed: 20, Total: intPtr(20)})
	require.NoError(t, err)
	assert.Equal(t, 100, rec.Progress.Exercises.Percentage)
	assert.Equal(t, 76, rec.Progress.Overall.Percentage)
	assert.Equal(t, model.StatusInProgress, rec.Status)

	// 低分考试只追加记录
	rec, err = env.exams.SubmitExam(ctx, uuidLearner, "course-walk", model.ExamSubmission{Score: 5, TotalQuestions: 10})
	require.NoError(t, err)
	require.Len(t, rec.ExamAttempts, 1)
	assert.Equal(t, 50, rec.ExamAttempts[0].Percentage)
	assert.Equal(t, 76, rec.Progress.Overall.Percentage)
	assert.Equal(t, model.StatusInProgress, rec.Status)
	assert.Nil(t, rec.CompletedAt)

	rec, err = env.exams.SubmitExam(ctx, uuidLearner, "course-walk", model.ExamSubmission{Score: 9, TotalQuestions: 10})
	require.NoError(t, err)
	require.Len(t, rec.ExamAttempts, 2)
	assert.Equal(t, 90, rec.ExamAttempts[1].Percentage)
	assert.Equal(t, 50, rec.ExamAttempts[0].Percentage)
	assert.Equal(t, 100, rec.Progress.Overall.Percentage)
	assert.Equal(t, model.StatusCompleted, rec.Status)
	require.NotNil(t, rec.CompletedAt)
}
