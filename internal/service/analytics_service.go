package service

import (
	"context"
	"fmt"
	"lingua_backend/internal/model"
	"lingua_backend/internal/repository"
	"lingua_backend/internal/util"
	"lingua_backend/pkg/monitoring"
	"sort"
	"time"
)

const (
	UnknownCourse  = "Unknown Course"
	UnknownLearner = "Unknown User"
)

// AnalyticsService 管理后台统计，只读，不加锁
type AnalyticsService struct {
	Progress        *repository.ProgressRepository
	Courses         *repository.CourseRepository
	Users           *repository.UserRepository
	CourseDir       CourseDirectory
	UserDir         UserDirectory
	RecentPerSource int
	Location        *time.Location
	Now             func() time.Time
}

func NewAnalyticsService(
	progress *repository.ProgressRepository,
	courses *repository.CourseRepository,
	users *repository.UserRepository,
	courseDir CourseDirectory,
	userDir UserDirectory,
	recentPerSource int,
	loc *time.Location,
) *AnalyticsService {
	if recentPerSource < 1 {
		recentPerSource = 5
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsService{
		Progress:        progress,
		Courses:         courses,
		Users:           users,
		CourseDir:       courseDir,
		UserDir:         userDir,
		RecentPerSource: recentPerSource,
		Location:        loc,
		Now:             utcNow,
	}
}

// growthPercent 上月为 0 时定义为 100
func growthPercent(current, monthAgo int64) int {
	if monthAgo == 0 {
		return 100
	}
	return roundHalfUp(float64(current-monthAgo) / float64(monthAgo) * 100)
}

func (s *AnalyticsService) Overview(ctx context.Context) (*model.OverviewStats, error) {
	now := s.Now()
	stats := &model.OverviewStats{}
	var err error

	if stats.Learners.Total, err = s.Users.CountLearners(ctx); err != nil {
		return nil, util.TransientFailure("count learners", err)
	}
	if stats.Learners.LastMonth, err = s.Users.CountLearnersBefore(ctx, now.AddDate(0, -1, 0)); err != nil {
		return nil, util.TransientFailure("count learners", err)
	}
	stats.Learners.Growth = growthPercent(stats.Learners.Total, stats.Learners.LastMonth)

	if stats.Courses.Total, err = s.Courses.Count(ctx); err != nil {
		return nil, util.TransientFailure("count courses", err)
	}
	if stats.Courses.NewThisMonth, err = s.Courses.CountCreatedSince(ctx, now.AddDate(0, 0, -30)); err != nil {
		return nil, util.TransientFailure("count courses", err)
	}

	if stats.Exercises.Total, err = s.Courses.SumExerciseTotals(ctx); err != nil {
		return nil, util.TransientFailure("sum exercises", err)
	}
	if stats.Exercises.Attempts, err = s.Progress.CountAttempts(ctx); err != nil {
		return nil, util.TransientFailure("count attempts", err)
	}

	if stats.Achievements.Total, err = s.Progress.CountByStatus(ctx, model.StatusCompleted); err != nil {
		return nil, util.TransientFailure("count completions", err)
	}
	if stats.Achievements.TotalUnlocked, err = s.Progress.CountOverallAtLeast(ctx, model.ExamReadyThreshold); err != nil {
		return nil, util.TransientFailure("count achievements", err)
	}
	return stats, nil
}

type LearnerRollupQuery struct {
	Page     int
	PageSize int
	SortBy   string // progress | lastUpdated | startedAt
	Order    string // asc | desc
}

func (q *LearnerRollupQuery) normalize() error {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = util.DefaultPageSize
	}
	if q.PageSize > util.MaxPageSize {
		q.PageSize = util.MaxPageSize
	}
	if q.SortBy == "" {
		q.SortBy = "progress"
	}
	if !repository.IsSortable(q.SortBy) {
		return util.InvalidInput("unsupported sortBy %q", q.SortBy)
	}
	switch q.Order {
	case "":
		q.Order = "desc"
	case "asc", "desc":
	default:
		return util.InvalidInput("order must be asc or desc, got %q", q.Order)
	}
	return nil
}

func (s *AnalyticsService) LearnerRollup(ctx context.Context, q LearnerRollupQuery) (*model.LearnerRollupPage, error) {
	if err := q.normalize(); err != nil {
		return nil, err
	}

	total, err := s.Progress.Count(ctx)
	if err != nil {
		return nil, util.TransientFailure("count progress", err)
	}
	records, err := s.Progress.ListPage(ctx, (q.Page-1)*q.PageSize, q.PageSize, q.SortBy, q.Order == "desc")
	if err != nil {
		return nil, util.TransientFailure("list progress", err)
	}

	rows, err := s.rollupRows(ctx, records)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	return &model.LearnerRollupPage{
		List: rows,
		Pagination: model.Pagination{
			Total:      total,
			Page:       q.Page,
			Limit:      q.PageSize,
			TotalPages: totalPages,
		},
	}, nil
}

func (s *AnalyticsService) rollupRows(ctx context.Context, records []model.ProgressRecord) ([]model.LearnerRollupRow, error) {
	rows := make([]model.LearnerRollupRow, 0, len(records))
	if len(records) == 0 {
		return rows, nil
	}

	learnerIDs := make([]string, 0, len(records))
	courseIDs := make([]string, 0, len(records))
	progressIDs := make([]uint, 0, len(records))
	for _, rec := range records {
		learnerIDs = append(learnerIDs, rec.LearnerID)
		courseIDs = append(courseIDs, rec.CourseID)
		progressIDs = append(progressIDs, rec.ID)
	}

	profiles, err := s.UserDir.Profiles(ctx, learnerIDs)
	if err != nil {
		return nil, err
	}
	courses, err := s.CourseDir.DisplayInfo(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	attempts, err := s.Progress.AttemptCounts(ctx, progressIDs)
	if err != nil {
		return nil, util.TransientFailure("count attempts", err)
	}

	for _, rec := range records {
		row := model.LearnerRollupRow{
			LearnerID:  rec.LearnerID,
			Username:   UnknownLearner,
			CourseID:   rec.CourseID,
			CourseName: UnknownCourse,
			Progress: model.RollupProgress{
				Overall:    rec.Progress.Overall.Percentage,
				Vocabulary: rec.Progress.Vocabulary.Percentage,
				Exercises:  rec.Progress.Exercises.Percentage,
			},
			Stats:        rec.Stats,
			ExamAttempts: attempts[rec.ID],
			Status:       rec.Status,
			StartedAt:    rec.StartedAt,
			CompletedAt:  rec.CompletedAt,
		}
		if u, ok := profiles[util.CanonicalID(rec.LearnerID)]; ok {
			row.Username = u.Username
			row.Email = u.Email
		}
		if c, ok := courses[util.CanonicalID(rec.CourseID)]; ok {
			row.CourseName = c.Name
			row.CourseLevel = c.Level
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type courseTally struct {
	total, completed, inProgress, attempts int64
	progressSum                            float64
}

// CourseRollup 每门课一行（包括还没有学习者的课程），按学习者数降序
func (s *AnalyticsService) CourseRollup(ctx context.Context) ([]model.CourseRollupRow, error) {
	aggregates, err := s.Progress.AggregateByCourse(ctx)
	if err != nil {
		return nil, util.TransientFailure("aggregate progress", err)
	}
	courses, err := s.Courses.ListAll(ctx)
	if err != nil {
		return nil, util.TransientFailure("list courses", err)
	}

	// 旧写法的 course_id 合并到同一门课
	tallies := make(map[string]*courseTally, len(aggregates))
	var order []string
	for _, agg := range aggregates {
		id := util.CanonicalID(agg.CourseID)
		t, ok := tallies[id]
		if !ok {
			t = &courseTally{}
			tallies[id] = t
			order = append(order, id)
		}
		t.total += agg.TotalLearners
		t.completed += agg.CompletedLearners
		t.inProgress += agg.InProgressLearners
		t.attempts += agg.TotalExamAttempts
		t.progressSum += agg.AverageProgress * float64(agg.TotalLearners)
	}

	rows := make([]model.CourseRollupRow, 0, len(courses)+len(order))
	seen := make(map[string]bool, len(courses))
	for i := range courses {
		id := util.CanonicalID(courses[i].ID)
		if seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, courseRow(id, courses[i].DisplayName(), courses[i].Level, tallies[id]))
	}
	for _, id := range order {
		if !seen[id] {
			rows = append(rows, courseRow(id, UnknownCourse, "", tallies[id]))
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalLearners > rows[j].TotalLearners
	})
	return rows, nil
}

func courseRow(id, name string, level model.CourseLevel, t *courseTally) model.CourseRollupRow {
	row := model.CourseRollupRow{
		CourseID:    id,
		CourseName:  name,
		CourseLevel: level,
	}
	if t == nil || t.total == 0 {
		return row
	}
	row.TotalLearners = t.total
	row.CompletedLearners = t.completed
	row.InProgressLearners = t.inProgress
	row.TotalExamAttempts = t.attempts
	row.AverageProgress = roundHalfUp(t.progressSum / float64(t.total))
	row.CompletionRate = float64(t.completed) / float64(t.total)
	return row
}

// RecentActivity 新学习者、新课程、完成记录各取 N 条，合并后按时间倒序截断
func (s *AnalyticsService) RecentActivity(ctx context.Context, limit int) ([]model.Activity, error) {
	if limit < 1 {
		limit = util.DefaultRecentSize
	}
	if limit > util.MaxRecentSize {
		limit = util.MaxRecentSize
	}
	n := s.RecentPerSource

	learners, err := s.Users.RecentLearners(ctx, n)
	if err != nil {
		return nil, util.TransientFailure("recent learners", err)
	}
	courses, err := s.Courses.Recent(ctx, n)
	if err != nil {
		return nil, util.TransientFailure("recent courses", err)
	}
	completions, err := s.Progress.RecentCompletions(ctx, n)
	if err != nil {
		return nil, util.TransientFailure("recent completions", err)
	}

	activities := make([]model.Activity, 0, len(learners)+len(courses)+len(completions))
	for _, u := range learners {
		activities = append(activities, model.Activity{
			Type:        model.ActivityNewLearner,
			Title:       "New learner registered",
			Description: u.Username,
			Timestamp:   u.CreatedAt,
			Icon:        "user",
		})
	}
	for i := range courses {
		activities = append(activities, model.Activity{
			Type:        model.ActivityNewCourse,
			Title:       "New course published",
			Description: courses[i].DisplayName(),
			Timestamp:   courses[i].CreatedAt,
			Icon:        "book",
		})
	}

	if len(completions) > 0 {
		learnerIDs := make([]string, 0, len(completions))
		courseIDs := make([]string, 0, len(completions))
		for _, rec := range completions {
			learnerIDs = append(learnerIDs, rec.LearnerID)
			courseIDs = append(courseIDs, rec.CourseID)
		}
		profiles, err := s.UserDir.Profiles(ctx, learnerIDs)
		if err != nil {
			return nil, err
		}
		display, err := s.CourseDir.DisplayInfo(ctx, courseIDs)
		if err != nil {
			return nil, err
		}
		for _, rec := range completions {
			username := UnknownLearner
			if u, ok := profiles[util.CanonicalID(rec.LearnerID)]; ok {
				username = u.Username
			}
			courseName := UnknownCourse
			if c, ok := display[util.CanonicalID(rec.CourseID)]; ok {
				courseName = c.Name
			}
			activities = append(activities, model.Activity{
				Type:        model.ActivityCompletion,
				Title:       "Course completed",
				Description: fmt.Sprintf("%s completed %s", username, courseName),
				Timestamp:   *rec.CompletedAt,
				Icon:        "trophy",
			})
		}
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

// TimeSeries 最近 days 天（含今天），日期轴独立生成，没有数据的日子补 0
func (s *AnalyticsService) TimeSeries(ctx context.Context, days int) ([]model.TimeSeriesPoint, error) {
	if days < 1 || days > util.MaxSeriesDays {
		return nil, util.InvalidInput("days must be between 1 and %d, got %d", util.MaxSeriesDays, days)
	}

	today := dayStart(s.Now().In(s.Location))
	start := today.AddDate(0, 0, -(days - 1))

	points := make([]model.TimeSeriesPoint, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format(util.DateFormat)
		points[i] = model.TimeSeriesPoint{Date: date}
		index[date] = i
	}

	learners, err := s.Users.LearnerCreatedSince(ctx, start)
	if err != nil {
		return nil, util.TransientFailure("learner series", err)
	}
	for _, t := range learners {
		if i, ok := index[t.In(s.Location).Format(util.DateFormat)]; ok {
			points[i].NewLearners++
		}
	}

	completions, err := s.Progress.CompletionTimesSince(ctx, start)
	if err != nil {
		return nil, util.TransientFailure("completion series", err)
	}
	for _, t := range completions {
		if i, ok := index[t.In(s.Location).Format(util.DateFormat)]; ok {
			points[i].Completions++
		}
	}
	return points, nil
}

// LearnerDetail 单个学习者所有课程的汇总
func (s *AnalyticsService) LearnerDetail(ctx context.Context, learnerID string) (*model.LearnerDetail, error) {
	user, err := s.UserDir.Profile(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	records, err := s.Progress.ListByLearnerIn(ctx, util.IDVariants(learnerID))
	if err != nil {
		return nil, util.TransientFailure("list progress", err)
	}

	detail := &model.LearnerDetail{
		Learner: model.LearnerProfile{
			ID:        util.CanonicalID(user.ID),
			Username:  user.Username,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		},
		Courses: make([]model.LearnerCourseDetail, 0, len(records)),
	}
	if len(records) == 0 {
		return detail, nil
	}

	courseIDs := make([]string, 0, len(records))
	progressIDs := make([]uint, 0, len(records))
	for _, rec := range records {
		courseIDs = append(courseIDs, rec.CourseID)
		progressIDs = append(progressIDs, rec.ID)
	}
	display, err := s.CourseDir.DisplayInfo(ctx, courseIDs)
	if err != nil {
		return nil, err
	}
	attempts, err := s.Progress.AttemptCounts(ctx, progressIDs)
	if err != nil {
		return nil, util.TransientFailure("count attempts", err)
	}

	summary := &detail.Summary
	progressSum := 0
	for _, rec := range records {
		course := model.LearnerCourseDetail{
			CourseID:     rec.CourseID,
			CourseName:   UnknownCourse,
			Progress:     rec.Progress.Overall.Percentage,
			Status:       rec.Status,
			StudyTime:    rec.Stats.TotalStudyTime,
			ExamAttempts: attempts[rec.ID],
			LastStudied:  rec.Stats.LastStudied,
			StartedAt:    rec.StartedAt,
			CompletedAt:  rec.CompletedAt,
		}
		if c, ok := display[util.CanonicalID(rec.CourseID)]; ok {
			course.CourseName = c.Name
			course.CourseLevel = c.Level
		}
		detail.Courses = append(detail.Courses, course)

		summary.TotalCourses++
		switch rec.Status {
		case model.StatusCompleted:
			summary.CompletedCourses++
		case model.StatusInProgress:
			summary.InProgressCourses++
		}
		summary.TotalStudyTime += rec.Stats.TotalStudyTime
		summary.TotalExamAttempts += attempts[rec.ID]
		if rec.Stats.StreakDays > summary.MaxStreak {
			summary.MaxStreak = rec.Stats.StreakDays
		}
		progressSum += rec.Progress.Overall.Percentage
	}
	summary.AverageProgress = roundHalfUp(float64(progressSum) / float64(summary.TotalCourses))
	return detail, nil
}

// OrphanReport 只报告，不修改记录
func (s *AnalyticsService) OrphanReport(ctx context.Context) (*model.OrphanReport, error) {
	entries, err := s.Progress.FindOrphans(ctx)
	if err != nil {
		return nil, util.TransientFailure("find orphans", err)
	}
	if entries == nil {
		entries = []model.OrphanEntry{}
	}
	monitoring.OrphanRecords.Set(float64(len(entries)))
	return &model.OrphanReport{Total: len(entries), Records: entries}, nil
}

var trackedStatuses = []model.ProgressStatus{
	model.StatusNotStarted,
	model.StatusInProgress,
	model.StatusExamReady,
	model.StatusCompleted,
}

// RefreshGauges 定时任务调用，结果只写入 Prometheus
func (s *AnalyticsService) RefreshGauges(ctx context.Context) error {
	overview, err := s.Overview(ctx)
	if err != nil {
		return err
	}
	monitoring.OverviewGauge.WithLabelValues("learners").Set(float64(overview.Learners.Total))
	monitoring.OverviewGauge.WithLabelValues("learner_growth").Set(float64(overview.Learners.Growth))
	monitoring.OverviewGauge.WithLabelValues("courses").Set(float64(overview.Courses.Total))
	monitoring.OverviewGauge.WithLabelValues("exercises").Set(float64(overview.Exercises.Total))
	monitoring.OverviewGauge.WithLabelValues("exam_attempts").Set(float64(overview.Exercises.Attempts))
	monitoring.OverviewGauge.WithLabelValues("completions").Set(float64(overview.Achievements.Total))
	monitoring.OverviewGauge.WithLabelValues("achievements").Set(float64(overview.Achievements.TotalUnlocked))

	counts, err := s.Progress.StatusCounts(ctx)
	if err != nil {
		return util.TransientFailure("status counts", err)
	}
	for _, status := range trackedStatuses {
		monitoring.RecordsByStatus.WithLabelValues(string(status)).Set(float64(counts[status]))
	}
	return nil
}
