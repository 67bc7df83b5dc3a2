package service

import (
	"context"
	"encoding/json"
	"errors"
	"lingua_backend/internal/model"
	"lingua_backend/internal/repository"
	"lingua_backend/internal/util"
	"lingua_backend/pkg/logger"
	"lingua_backend/pkg/monitoring"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CourseDirectory 课程服务提供的只读数据
type CourseDirectory interface {
	Totals(ctx context.Context, courseID string) (model.CourseTotals, error)
	// DisplayInfo 返回值按规范化后的课程 id 索引，不存在的课程不出现在结果里
	DisplayInfo(ctx context.Context, courseIDs []string) (map[string]model.CourseDisplay, error)
}

// UserDirectory 认证服务提供的只读数据
type UserDirectory interface {
	Exists(ctx context.Context, learnerID string) (bool, error)
	Profile(ctx context.Context, learnerID string) (*model.User, error)
	Profiles(ctx context.Context, learnerIDs []string) (map[string]model.User, error)
}

// CollaboratorTimeout 外部数据读取的超时，可随配置热更新
type CollaboratorTimeout struct {
	nanos atomic.Int64
}

func NewCollaboratorTimeout(d time.Duration) *CollaboratorTimeout {
	t := &CollaboratorTimeout{}
	t.Set(d)
	return t
}

func (t *CollaboratorTimeout) Set(d time.Duration) {
	t.nanos.Store(int64(d))
}

func (t *CollaboratorTimeout) Get() time.Duration {
	return time.Duration(t.nanos.Load())
}

func (t *CollaboratorTimeout) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if t == nil || t.Get() <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, t.Get())
}

func allVariants(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		for _, v := range util.IDVariants(id) {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

type GormCourseDirectory struct {
	Repo    *repository.CourseRepository
	Timeout *CollaboratorTimeout
}

func NewGormCourseDirectory(repo *repository.CourseRepository, timeout *CollaboratorTimeout) *GormCourseDirectory {
	return &GormCourseDirectory{Repo: repo, Timeout: timeout}
}

func (d *GormCourseDirectory) Totals(ctx context.Context, courseID string) (model.CourseTotals, error) {
	ctx, cancel := d.Timeout.bound(ctx)
	defer cancel()

	course, err := d.Repo.FindByIDIn(ctx, util.IDVariants(courseID))
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return model.CourseTotals{}, util.ReferenceNotFound("course %s not found", courseID)
		}
		return model.CourseTotals{}, util.TransientFailure("course lookup", err)
	}
	return model.CourseTotals{
		VocabularyTotal: course.VocabularyTotal,
		ExerciseTotal:   course.ExerciseTotal,
	}, nil
}

func (d *GormCourseDirectory) DisplayInfo(ctx context.Context, courseIDs []string) (map[string]model.CourseDisplay, error) {
	ctx, cancel := d.Timeout.bound(ctx)
	defer cancel()

	courses, err := d.Repo.FindByIDs(ctx, allVariants(courseIDs))
	if err != nil {
		return nil, util.TransientFailure("course lookup", err)
	}
	out := make(map[string]model.CourseDisplay, len(courses))
	for i := range courses {
		id := util.CanonicalID(courses[i].ID)
		out[id] = model.CourseDisplay{
			ID:    id,
			Name:  courses[i].DisplayName(),
			Level: courses[i].Level,
		}
	}
	return out, nil
}

const (
	courseTotalsKeyPrefix  = "lingua:course:totals:"
	courseDisplayKeyPrefix = "lingua:course:display:"
)

// CacheClient 缓存用到的 Redis 命令，*redis.Client 直接满足
type CacheClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedCourseDirectory Redis 读穿缓存。Redis 出错时直接回源，不影响主流程
type CachedCourseDirectory struct {
	Next  CourseDirectory
	Redis CacheClient
	TTL   time.Duration
}

func NewCachedCourseDirectory(next CourseDirectory, rdb CacheClient, ttl time.Duration) *CachedCourseDirectory {
	return &CachedCourseDirectory{Next: next, Redis: rdb, TTL: ttl}
}

func (d *CachedCourseDirectory) Totals(ctx context.Context, courseID string) (model.CourseTotals, error) {
	key := courseTotalsKeyPrefix + util.CanonicalID(courseID)

	val, err := d.Redis.Get(ctx, key).Result()
	if err == nil {
		var totals model.CourseTotals
		if jsonErr := json.Unmarshal([]byte(val), &totals); jsonErr == nil {
			monitoring.CourseCacheResults.WithLabelValues("hit").Inc()
			return totals, nil
		}
	} else if err != redis.Nil {
		monitoring.CourseCacheResults.WithLabelValues("error").Inc()
		logger.Log.Warn("course cache read failed", zap.String("key", key), zap.Error(err))
	} else {
		monitoring.CourseCacheResults.WithLabelValues("miss").Inc()
	}

	totals, err := d.Next.Totals(ctx, courseID)
	if err != nil {
		return totals, err
	}
	d.store(ctx, key, totals)
	return totals, nil
}

func (d *CachedCourseDirectory) DisplayInfo(ctx context.Context, courseIDs []string) (map[string]model.CourseDisplay, error) {
	out := make(map[string]model.CourseDisplay, len(courseIDs))
	if len(courseIDs) == 0 {
		return out, nil
	}

	keys := make([]string, len(courseIDs))
	for i, id := range courseIDs {
		keys[i] = courseDisplayKeyPrefix + util.CanonicalID(id)
	}

	var missing []string
	vals, err := d.Redis.MGet(ctx, keys...).Result()
	if err != nil {
		monitoring.CourseCacheResults.WithLabelValues("error").Inc()
		logger.Log.Warn("course cache read failed", zap.Error(err))
		missing = courseIDs
	} else {
		for i, v := range vals {
			s, ok := v.(string)
			var display model.CourseDisplay
			if !ok || json.Unmarshal([]byte(s), &display) != nil {
				missing = append(missing, courseIDs[i])
				continue
			}
			out[display.ID] = display
		}
		monitoring.CourseCacheResults.WithLabelValues("hit").Add(float64(len(courseIDs) - len(missing)))
		monitoring.CourseCacheResults.WithLabelValues("miss").Add(float64(len(missing)))
	}

	if len(missing) == 0 {
		return out, nil
	}
	fetched, err := d.Next.DisplayInfo(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, display := range fetched {
		out[id] = display
		d.store(ctx, courseDisplayKeyPrefix+id, display)
	}
	return out, nil
}

func (d *CachedCourseDirectory) store(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := d.Redis.Set(ctx, key, data, d.TTL).Err(); err != nil {
		logger.Log.Warn("course cache write failed", zap.String("key", key), zap.Error(err))
	}
}

type GormUserDirectory struct {
	Repo    *repository.UserRepository
	Timeout *CollaboratorTimeout
}

func NewGormUserDirectory(repo *repository.UserRepository, timeout *CollaboratorTimeout) *GormUserDirectory {
	return &GormUserDirectory{Repo: repo, Timeout: timeout}
}

func (d *GormUserDirectory) Exists(ctx context.Context, learnerID string) (bool, error) {
	_, err := d.Profile(ctx, learnerID)
	if err != nil {
		if errors.Is(err, util.ErrReferenceNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (d *GormUserDirectory) Profile(ctx context.Context, learnerID string) (*model.User, error) {
	ctx, cancel := d.Timeout.bound(ctx)
	defer cancel()

	user, err := d.Repo.FindByIDIn(ctx, util.IDVariants(learnerID))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, util.ReferenceNotFound("learner %s not found", learnerID)
		}
		return nil, util.TransientFailure("user lookup", err)
	}
	return user, nil
}

func (d *GormUserDirectory) Profiles(ctx context.Context, learnerIDs []string) (map[string]model.User, error) {
	ctx, cancel := d.Timeout.bound(ctx)
	defer cancel()

	users, err := d.Repo.FindByIDs(ctx, allVariants(learnerIDs))
	if err != nil {
		return nil, util.TransientFailure("user lookup", err)
	}
	out := make(map[string]model.User, len(users))
	for _, u := range users {
		out[util.CanonicalID(u.ID)] = u
	}
	return out, nil
}
