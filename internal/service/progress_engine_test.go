package service

import (
	"errors"
	"lingua_backend/internal/model"
	"lingua_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var engineNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

func TestDimensionPercent(t *testing.T) {
	cases := []struct {
		count, total, want int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{0, 10, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 8, 13},
		{50, 100, 50},
		{15, 10, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, dimensionPercent(tc.count, tc.total), "count=%d total=%d", tc.count, tc.total)
	}
}

func TestOverallPercent(t *testing.T) {
	assert.Equal(t, 50, overallPercent(50, 50))
	assert.Equal(t, 60, overallPercent(100, 0))
	assert.Equal(t, 40, overallPercent(0, 100))
	assert.Equal(t, 47, overallPercent(33, 67))
	assert.Equal(t, 100, overallPercent(100, 100))
}

func TestDeriveStatus(t *testing.T) {
	assert.Equal(t, model.StatusNotStarted, DeriveStatus(0))
	assert.Equal(t, model.StatusInProgress, DeriveStatus(1))
	assert.Equal(t, model.StatusInProgress, DeriveStatus(79))
	assert.Equal(t, model.StatusExamReady, DeriveStatus(80))
	assert.Equal(t, model.StatusExamReady, DeriveStatus(99))
	assert.Equal(t, model.StatusCompleted, DeriveStatus(100))
}

func TestRecomputeFreshRecord(t *testing.T) {
	rec := &model.ProgressRecord{}
	rec.Progress.Vocabulary.Total = 100
	rec.Progress.Exercises.Total = 20

	Recompute(rec, engineNow)

	assert.Equal(t, 0, rec.Progress.Overall.Percentage)
	assert.Equal(t, model.StatusNotStarted, rec.Status)
	assert.Nil(t, rec.CompletedAt)
	assert.Equal(t, engineNow, rec.LastUpdated)
}

func TestApplyVocabularyProgress(t *testing.T) {
	rec := &model.ProgressRecord{}
	rec.Progress.Exercises.Total = 20

	require.NoError(t, ApplyVocabularyProgress(rec, 60, 50, 100, engineNow))

	assert.Equal(t, 60, rec.Progress.Vocabulary.Studied)
	assert.Equal(t, 50, rec.Progress.Vocabulary.Percentage)
	assert.Equal(t, 30, rec.Progress.Overall.Percentage)
	assert.Equal(t, model.StatusInProgress, rec.Status)
	require.NotNil(t, rec.StartedAt)
	assert.Equal(t, engineNow, *rec.StartedAt)
	require.NotNil(t, rec.Stats.LastStudied)

	// 第二次提交不改 startedAt
	later := engineNow.Add(time.Hour)
	require.NoError(t, ApplyVocabularyProgress(rec, 60, 50, 100, later))
	assert.Equal(t, engineNow, *rec.StartedAt)
	assert.Equal(t, later, *rec.Stats.LastStudied)
	assert.Equal(t, 30, rec.Progress.Overall.Percentage)
}

func TestApplyProgressRejectsNegativeTotal(t *testing.T) {
	rec := &model.ProgressRecord{}

	err := ApplyVocabularyProgress(rec, 1, 1, -1, engineNow)
	assert.True(t, errors.Is(err, util.ErrInvalidInput))

	err = ApplyExerciseProgress(rec, 1, -5, engineNow)
	assert.True(t, errors.Is(err, util.ErrInvalidInput))
	assert.Nil(t, rec.StartedAt)
}

func TestApplyProgressClampsNegativeCounts(t *testing.T) {
	rec := &model.ProgressRecord{}

	require.NoError(t, ApplyExerciseProgress(rec, -3, 10, engineNow))
	assert.Equal(t, 0, rec.Progress.Exercises.Completed)
	assert.Equal(t, 0, rec.Progress.Exercises.Percentage)
}

func TestCompletionIsStampedOnce(t *testing.T) {
	rec := &model.ProgressRecord{}
	require.NoError(t, ApplyVocabularyProgress(rec, 100, 100, 100, engineNow))
	require.NoError(t, ApplyExerciseProgress(rec, 20, 20, engineNow))

	assert.Equal(t, 100, rec.Progress.Overall.Percentage)
	assert.Equal(t, model.StatusCompleted, rec.Status)
	require.NotNil(t, rec.CompletedAt)
	assert.Equal(t, engineNow, *rec.CompletedAt)

	later := engineNow.Add(24 * time.Hour)
	require.NoError(t, ApplyExerciseProgress(rec, 20, 20, later))
	assert.Equal(t, engineNow, *rec.CompletedAt)

	// 计数回退后状态跟着变，完成时间保留
	require.NoError(t, ApplyVocabularyProgress(rec, 90, 90, 100, later))
	assert.Equal(t, 94, rec.Progress.Overall.Percentage)
	assert.Equal(t, model.StatusExamReady, rec.Status)
	assert.Equal(t, engineNow, *rec.CompletedAt)
}

func TestApplyExamResult(t *testing.T) {
	rec := &model.ProgressRecord{Status: model.StatusInProgress}
	rec.Progress.Overall.Percentage = 40

	applyExamResult(rec, 7, engineNow)
	assert.Equal(t, model.StatusInProgress, rec.Status)
	assert.Equal(t, 40, rec.Progress.Overall.Percentage)
	assert.Nil(t, rec.CompletedAt)
	require.NotNil(t, rec.StartedAt)

	applyExamResult(rec, 8, engineNow)
	assert.Equal(t, model.StatusCompleted, rec.Status)
	assert.Equal(t, 100, rec.Progress.Overall.Percentage)
	require.NotNil(t, rec.CompletedAt)
	assert.Equal(t, engineNow, *rec.CompletedAt)

	applyExamResult(rec, 10, engineNow.Add(time.Hour))
	assert.Equal(t, engineNow, *rec.CompletedAt)
}

func TestExamPercentage(t *testing.T) {
	assert.Equal(t, 70, examPercentage(7, 10))
	assert.Equal(t, 33, examPercentage(1, 3))
	assert.Equal(t, 100, examPercentage(10, 10))
	assert.Equal(t, 0, examPercentage(0, 0))
}

func TestNextStreak(t *testing.T) {
	day := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 1, nextStreak(nil, 0, day, time.UTC))

	sameDay := day.Add(5 * time.Hour)
	assert.Equal(t, 3, nextStreak(&day, 3, sameDay, time.UTC))

	nextDay := day.Add(20 * time.Hour)
	assert.Equal(t, 4, nextStreak(&day, 3, nextDay, time.UTC))

	gap := day.AddDate(0, 0, 3)
	assert.Equal(t, 1, nextStreak(&day, 3, gap, time.UTC))

	earlier := day.AddDate(0, 0, -2)
	assert.Equal(t, 3, nextStreak(&day, 3, earlier, time.UTC))
}

func TestNextStreakUsesLocation(t *testing.T) {
	plus8 := time.FixedZone("UTC+8", 8*3600)
	last := time.Date(2026, 10, 15, 15, 30, 0, 0, time.UTC) // 东八区 23:30
	now := time.Date(2026, 10, 15, 16, 30, 0, 0, time.UTC)  // 东八区次日 00:30

	assert.Equal(t, 2, nextStreak(&last, 2, now, time.UTC))
	assert.Equal(t, 3, nextStreak(&last, 2, now, plus8))
}
