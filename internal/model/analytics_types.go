package model

import "time"

// OverviewStats 管理后台概览
type OverviewStats struct {
	Learners     LearnerOverview     `json:"users"`
	Courses      CourseOverview      `json:"courses"`
	Exercises    ExerciseOverview    `json:"exercises"`
	Achievements AchievementOverview `json:"achievements"`
}

type LearnerOverview struct {
	Total     int64 `json:"total"`
	Growth    int   `json:"growth"` // 环比上月百分比
	LastMonth int64 `json:"lastMonth"`
}

type CourseOverview struct {
	Total        int64 `json:"total"`
	NewThisMonth int64 `json:"newThisMonth"`
}

type ExerciseOverview struct {
	Total    int64 `json:"total"`
	Attempts int64 `json:"attempts"`
}

type AchievementOverview struct {
	Total         int64 `json:"total"`         // status = completed 的记录数
	TotalUnlocked int64 `json:"totalUnlocked"` // 总进度 >= 80 的记录数
}

// LearnerRollupRow 学习者统计列表的一行（一条进度记录）
type LearnerRollupRow struct {
	LearnerID    string         `json:"userId"`
	Username     string         `json:"username"`
	Email        string         `json:"email"`
	CourseID     string         `json:"courseId"`
	CourseName   string         `json:"courseName"`
	CourseLevel  CourseLevel    `json:"courseLevel"`
	Progress     RollupProgress `json:"progress"`
	Stats        StudyStats     `json:"stats"`
	ExamAttempts int64          `json:"examResults"`
	Status       ProgressStatus `json:"status"`
	StartedAt    *time.Time     `json:"startedAt,omitempty"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty"`
}

type RollupProgress struct {
	Overall    int `json:"overall"`
	Vocabulary int `json:"vocabulary"`
	Exercises  int `json:"exercises"`
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type LearnerRollupPage struct {
	List       []LearnerRollupRow `json:"list"`
	Pagination Pagination         `json:"pagination"`
}

// CourseRollupRow 按课程汇总
type CourseRollupRow struct {
	CourseID           string      `json:"courseId"`
	CourseName         string      `json:"courseName"`
	CourseLevel        CourseLevel `json:"courseLevel"`
	TotalLearners      int64       `json:"totalLearners"`
	CompletedLearners  int64       `json:"completedLearners"`
	InProgressLearners int64       `json:"inProgressLearners"`
	AverageProgress    int         `json:"averageProgress"`
	TotalExamAttempts  int64       `json:"totalExamAttempts"`
	CompletionRate     float64     `json:"completionRate"` // 0..1
}

// CourseProgressAggregate 仓储层按 course_id 分组的原始聚合结果
type CourseProgressAggregate struct {
	CourseID           string
	TotalLearners      int64
	CompletedLearners  int64
	InProgressLearners int64
	AverageProgress    float64
	TotalExamAttempts  int64
}

type ActivityType string

const (
	ActivityNewLearner ActivityType = "new_user"
	ActivityNewCourse  ActivityType = "new_course"
	ActivityCompletion ActivityType = "completion"
)

type Activity struct {
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
	Icon        string       `json:"icon"`
}

type TimeSeriesPoint struct {
	Date        string `json:"date"`
	NewLearners int    `json:"newUsers"`
	Completions int    `json:"completions"`
}

// LearnerDetail 单个学习者的全部课程汇总
type LearnerDetail struct {
	Learner LearnerProfile        `json:"user"`
	Summary LearnerSummary        `json:"summary"`
	Courses []LearnerCourseDetail `json:"courses"`
}

type LearnerProfile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type LearnerSummary struct {
	TotalCourses      int   `json:"totalCourses"`
	CompletedCourses  int   `json:"completedCourses"`
	InProgressCourses int   `json:"inProgressCourses"`
	TotalStudyTime    int   `json:"totalStudyTime"`
	TotalExamAttempts int64 `json:"totalExamAttempts"`
	AverageProgress   int   `json:"averageProgress"`
	MaxStreak         int   `json:"maxStreak"`
}

type LearnerCourseDetail struct {
	CourseID     string         `json:"courseId"`
	CourseName   string         `json:"courseName"`
	CourseLevel  CourseLevel    `json:"courseLevel"`
	Progress     int            `json:"progress"`
	Status       ProgressStatus `json:"status"`
	StudyTime    int            `json:"studyTime"`
	ExamAttempts int64          `json:"examAttempts"`
	LastStudied  *time.Time     `json:"lastStudied,omitempty"`
	StartedAt    *time.Time     `json:"startedAt,omitempty"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty"`
}

// OrphanReport 课程已不存在的进度记录
type OrphanReport struct {
	Total   int           `json:"total"`
	Records []OrphanEntry `json:"records"`
}

type OrphanEntry struct {
	ProgressID uint   `json:"progressId"`
	LearnerID  string `json:"learnerId"`
	CourseID   string `json:"courseId"`
}
