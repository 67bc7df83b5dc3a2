package model

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionResult struct {
	QuestionID     string `json:"questionId" binding:"required,max=100"`
	SelectedAnswer string `json:"selectedAnswer"`
	CorrectAnswer  string `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
}

// ExamAttempt 追加后不再修改。Seq 从 1 开始记录提交顺序
// swagger:model ExamAttempt
type ExamAttempt struct {
	ID             uint                                `gorm:"primaryKey;autoIncrement" json:"-"`
	ProgressID     uint                                `gorm:"not null;uniqueIndex:idx_attempt_seq,priority:1;uniqueIndex:idx_attempt_submission,priority:1" json:"-"`
	Seq            int                                 `gorm:"not null;uniqueIndex:idx_attempt_seq,priority:2" json:"seq"`
	SubmissionKey  *string                             `gorm:"size:100;uniqueIndex:idx_attempt_submission,priority:2" json:"submissionKey,omitempty"`
	ExamID         string                              `gorm:"size:100" json:"examId"`
	Score          int                                 `gorm:"not null" json:"score"`
	TotalQuestions int                                 `gorm:"not null" json:"totalQuestions"`
	CorrectAnswers int                                 `gorm:"not null" json:"correctAnswers"`
	Percentage     int                                 `gorm:"not null" json:"percentage"`
	CompletedAt    time.Time                           `gorm:"index" json:"completedAt"`
	Questions      datatypes.JSONSlice[QuestionResult] `json:"questions"`
	CreatedAt      time.Time                           `json:"-"`
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}

// ExamSubmission 客户端提交的考试结果，score 为答对题数
type ExamSubmission struct {
	ExamID         string           `json:"examId" binding:"max=100"`
	Score          int              `json:"score" binding:"min=0,ltefield=TotalQuestions"`
	TotalQuestions int              `json:"totalQuestions" binding:"required,min=1"`
	CorrectAnswers *int             `json:"correctAnswers,omitempty" binding:"omitempty,min=0"`
	Questions      []QuestionResult `json:"questions" binding:"omitempty,dive"`
	SubmissionKey  string           `json:"submissionKey,omitempty" binding:"max=100"`
}
