package service

import (
	"context"
	"errors"
	"lingua_backend/internal/model"
	"lingua_backend/internal/util"
	"lingua_backend/pkg/monitoring"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCache 内存版 Redis，err 非空时所有命令都返回它
type fakeCache struct {
	data map[string]string
	ttl  map[string]time.Duration
	err  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeCache) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeCache) MGet(_ context.Context, keys ...string) *redis.SliceCmd {
	if f.err != nil {
		return redis.NewSliceResult(nil, f.err)
	}
	vals := make([]interface{}, len(keys))
	for i, k := range keys {
		if v, ok := f.data[k]; ok {
			vals[i] = v
		}
	}
	return redis.NewSliceResult(vals, nil)
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

// countingCourses 记录回源次数
type countingCourses struct {
	totals   map[string]model.CourseTotals
	display  map[string]model.CourseDisplay
	calls    int
	lastAsk  []string
	failWith error
}

func (c *countingCourses) Totals(_ context.Context, courseID string) (model.CourseTotals, error) {
	c.calls++
	if c.failWith != nil {
		return model.CourseTotals{}, c.failWith
	}
	t, ok := c.totals[courseID]
	if !ok {
		return model.CourseTotals{}, util.ReferenceNotFound("course %s not found", courseID)
	}
	return t, nil
}

func (c *countingCourses) DisplayInfo(_ context.Context, courseIDs []string) (map[string]model.CourseDisplay, error) {
	c.calls++
	c.lastAsk = append([]string(nil), courseIDs...)
	if c.failWith != nil {
		return nil, c.failWith
	}
	out := map[string]model.CourseDisplay{}
	for _, id := range courseIDs {
		if d, ok := c.display[id]; ok {
			out[id] = d
		}
	}
	return out, nil
}

func newCountingCourses() *countingCourses {
	return &countingCourses{
		totals: map[string]model.CourseTotals{
			"c1": {VocabularyTotal: 100, ExerciseTotal: 20},
		},
		display: map[string]model.CourseDisplay{
			"c1": {ID: "c1", Name: "Basics"},
			"c2": {ID: "c2", Name: "Travel"},
			"c3": {ID: "c3", Name: "Business"},
		},
	}
}

func TestCachedTotalsMissThenHit(t *testing.T) {
	next := newCountingCourses()
	cache := newFakeCache()
	dir := NewCachedCourseDirectory(next, cache, time.Minute)
	ctx := context.Background()

	hits := testutil.ToFloat64(monitoring.CourseCacheResults.WithLabelValues("hit"))
	misses := testutil.ToFloat64(monitoring.CourseCacheResults.WithLabelValues("miss"))

	got, err := dir.Totals(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 100, got.VocabularyTotal)
	assert.Equal(t, 1, next.calls)
	assert.Contains(t, cache.data, courseTotalsKeyPrefix+"c1")
	assert.Equal(t, time.Minute, cache.ttl[courseTotalsKeyPrefix+"c1"])

	// 第二次直接命中缓存
	got, err = dir.Totals(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 20, got.ExerciseTotal)
	assert.Equal(t, 1, next.calls)

	assert.Equal(t, hits+1, testutil.ToFloat64(monitoring.CourseCacheResults.WithLabelValues("hit")))
	assert.Equal(t, misses+1, testutil.ToFloat64(monitoring.CourseCacheResults.WithLabelValues("miss")))
}

func TestCachedTotalsRedisErrorFallsBack(t *testing.T) {
	next := newCountingCourses()
	cache := newFakeCache()
	cache.err = errors.New("connection refused")
	dir := NewCachedCourseDirectory(next, cache, time.Minute)

	errs := testutil.ToFloat64(monitoring.CourseCacheResults.WithLabelValues("error"))

	got, err := dir.Totals(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 100, got.VocabularyTotal)
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, errs+1, testutil.ToFloat64(monitoring.CourseCacheResults.WithLabelValues("error")))
}

func TestCachedTotalsUnknownCourseNotCached(t *testing.T) {
	next := newCountingCourses()
	cache := newFakeCache()
	dir := NewCachedCourseDirectory(next, cache, time.Minute)

	_, err := dir.Totals(context.Background(), "nope")
	assert.ErrorIs(t, err, util.ErrReferenceNotFound)
	assert.Empty(t, cache.data)
}

func TestCachedTotalsCorruptEntryRefetched(t *testing.T) {
	next := newCountingCourses()
	cache := newFakeCache()
	cache.data[courseTotalsKeyPrefix+"c1"] = "{not json"
	dir := NewCachedCourseDirectory(next, cache, time.Minute)

	got, err := dir.Totals(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, 100, got.VocabularyTotal)
	assert.Equal(t, 1, next.calls)
	assert.JSONEq(t, `{"vocabularyTotal":100,"exerciseTotal":20}`, cache.data[courseTotalsKeyPrefix+"c1"])
}

func TestCachedDisplayInfoPartialHit(t *testing.T) {
	next := newCountingCourses()
	cache := newFakeCache()
	cache.data[courseDisplayKeyPrefix+"c1"] = `{"id":"c1","name":"Basics (cached)"}`
	dir := NewCachedCourseDirectory(next, cache, time.Minute)

	got, err := dir.DisplayInfo(context.Background(), []string{"c1", "c2", "missing"})
	require.NoError(t, err)

	assert.Equal(t, "Basics (cached)", got["c1"].Name)
	assert.Equal(t, "Travel", got["c2"].Name)
	assert.NotContains(t, got, "missing")
	// 只有未命中的 id 回源
	assert.ElementsMatch(t, []string{"c2", "missing"}, next.lastAsk)
	assert.Contains(t, cache.data, courseDisplayKeyPrefix+"c2")
	assert.NotContains(t, cache.data, courseDisplayKeyPrefix+"missing")

	// 全部命中时不再回源
	calls := next.calls
	got, err = dir.DisplayInfo(context.Background(), []string{"c1", "c2"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, calls, next.calls)
}

func TestCachedDisplayInfoRedisErrorFallsBack(t *testing.T) {
	next := newCountingCourses()
	cache := newFakeCache()
	cache.err = errors.New("timeout")
	dir := NewCachedCourseDirectory(next, cache, time.Minute)

	got, err := dir.DisplayInfo(context.Background(), []string{"c2", "c3"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.ElementsMatch(t, []string{"c2", "c3"}, next.lastAsk)
}

func TestCachedDisplayInfoSourceError(t *testing.T) {
	next := newCountingCourses()
	next.failWith = util.TransientFailure("course lookup", errors.New("db down"))
	dir := NewCachedCourseDirectory(next, newFakeCache(), time.Minute)

	_, err := dir.DisplayInfo(context.Background(), []string{"c1"})
	assert.Error(t, err)

	got, err := dir.DisplayInfo(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
