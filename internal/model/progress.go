package model

import (
	"time"
)

type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "not_started"
	StatusInProgress ProgressStatus = "in_progress"
	StatusExamReady  ProgressStatus = "exam_ready"
	StatusCompleted  ProgressStatus = "completed"
)

// 总进度权重：词汇 60%，练习 40%
const (
	VocabularyWeight = 0.6
	ExerciseWeight   = 0.4

	ExamReadyThreshold = 80
	CompletedThreshold = 100

	// ForceCompleteScore 考试答对题数达到该值直接完成课程，与题目总数无关
	ForceCompleteScore = 8
)

type VocabularyProgress struct {
	Studied    int `gorm:"not null;default:0" json:"studied"`
	Known      int `gorm:"not null;default:0" json:"known"`
	Total      int `gorm:"not null;default:0" json:"total"`
	Percentage int `gorm:"not null;default:0" json:"percentage"`
}

type ExerciseProgress struct {
	Completed  int `gorm:"not null;default:0" json:"completed"`
	Total      int `gorm:"not null;default:0" json:"total"`
	Percentage int `gorm:"not null;default:0" json:"percentage"`
}

type OverallProgress struct {
	Percentage int `gorm:"not null;default:0;index" json:"percentage"`
}

type ProgressDetail struct {
	Vocabulary VocabularyProgress `gorm:"embedded;embeddedPrefix:vocab_" json:"vocabulary"`
	Exercises  ExerciseProgress   `gorm:"embedded;embeddedPrefix:exercise_" json:"exercises"`
	Overall    OverallProgress    `gorm:"embedded;embeddedPrefix:overall_" json:"overall"`
}

// StudyStats 仅供展示，不参与评分
type StudyStats struct {
	TotalStudyTime int        `gorm:"not null;default:0" json:"totalStudyTime"` // 分钟
	LastStudied    *time.Time `json:"lastStudied,omitempty"`
	StreakDays     int        `gorm:"not null;default:0" json:"streakDays"`
	TotalSessions  int        `gorm:"not null;default:0" json:"totalSessions"`
}

// ProgressRecord 一个学习者在一门课程上的进度，(learner_id, course_id) 唯一
// swagger:model ProgressRecord
type ProgressRecord struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	LearnerID   string         `gorm:"size:64;not null;uniqueIndex:idx_learner_course,priority:1;index:idx_progress_learner" json:"learnerId"`
	CourseID    string         `gorm:"size:64;not null;uniqueIndex:idx_learner_course,priority:2;index:idx_progress_course" json:"courseId"`
	Progress    ProgressDetail `gorm:"embedded" json:"progress"`
	Stats       StudyStats     `gorm:"embedded;embeddedPrefix:stats_" json:"stats"`
	Status      ProgressStatus `gorm:"size:20;not null;default:'not_started';index" json:"status"`
	StartedAt   *time.Time     `json:"startedAt,omitempty"`
	CompletedAt *time.Time     `gorm:"index" json:"completedAt,omitempty"`
	LastUpdated time.Time      `json:"lastUpdated"`
	Version     int            `gorm:"not null;default:1" json:"-"`
	CreatedAt   time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	ExamAttempts []ExamAttempt `gorm:"foreignKey:ProgressID" json:"examAttempts"`
}

func (ProgressRecord) TableName() string {
	return "learner_progress"
}
