package service

import (
	"bytes"
	"context"
	"fmt"
	"lingua_backend/internal/util"
	"lingua_backend/pkg/logger"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	learnerSheet = "Learners"
	courseSheet  = "Courses"
)

var learnerHeader = []interface{}{
	"Learner ID", "Username", "Email", "Course ID", "Course", "Level",
	"Overall %", "Vocabulary %", "Exercises %", "Status", "Exam Attempts",
	"Study Minutes", "Streak Days", "Started At", "Completed At",
}

var courseHeader = []interface{}{
	"Course ID", "Course", "Level", "Learners", "Completed", "In Progress",
	"Average %", "Exam Attempts", "Completion Rate",
}

// ReportService 统计报表导出（xlsx）与归档
type ReportService struct {
	Analytics *AnalyticsService
	Storage   *StorageService
	Now       func() time.Time
}

func NewReportService(analytics *AnalyticsService, storage *StorageService) *ReportService {
	return &ReportService{
		Analytics: analytics,
		Storage:   storage,
		Now:       time.Now,
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(util.TimeFormat)
}

// BuildWorkbook 生成包含学习者和课程两张表的工作簿，调用方负责 Close
func (s *ReportService) BuildWorkbook(ctx context.Context) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", learnerSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(courseSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := s.writeLearners(ctx, f); err != nil {
		f.Close()
		return nil, err
	}
	if err := s.writeCourses(ctx, f); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func (s *ReportService) writeLearners(ctx context.Context, f *excelize.File) error {
	if err := f.SetSheetRow(learnerSheet, "A1", &learnerHeader); err != nil {
		return err
	}

	row := 2
	query := LearnerRollupQuery{Page: 1, PageSize: util.MaxPageSize, SortBy: "lastUpdated", Order: "desc"}
	for {
		page, err := s.Analytics.LearnerRollup(ctx, query)
		if err != nil {
			return err
		}
		for _, r := range page.List {
			cells := []interface{}{
				r.LearnerID, r.Username, r.Email, r.CourseID, r.CourseName, string(r.CourseLevel),
				r.Progress.Overall, r.Progress.Vocabulary, r.Progress.Exercises, string(r.Status), r.ExamAttempts,
				r.Stats.TotalStudyTime, r.Stats.StreakDays, formatTime(r.StartedAt), formatTime(r.CompletedAt),
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(learnerSheet, cell, &cells); err != nil {
				return err
			}
			row++
		}
		if query.Page >= page.Pagination.TotalPages {
			return nil
		}
		query.Page++
	}
}

func (s *ReportService) writeCourses(ctx context.Context, f *excelize.File) error {
	if err := f.SetSheetRow(courseSheet, "A1", &courseHeader); err != nil {
		return err
	}

	rows, err := s.Analytics.CourseRollup(ctx)
	if err != nil {
		return err
	}
	for i, r := range rows {
		cells := []interface{}{
			r.CourseID, r.CourseName, string(r.CourseLevel), r.TotalLearners, r.CompletedLearners,
			r.InProgressLearners, r.AverageProgress, r.TotalExamAttempts, r.CompletionRate,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(courseSheet, cell, &cells); err != nil {
			return err
		}
	}
	return nil
}

func (s *ReportService) Filename() string {
	return fmt.Sprintf("lingua-report-%s.xlsx", s.Now().Format("20060102"))
}

// Archive 生成当天报表并上传到存储，返回访问地址
func (s *ReportService) Archive(ctx context.Context) (string, error) {
	f, err := s.BuildWorkbook(ctx)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", err
	}

	name := "archive/" + s.Filename()
	url, err := s.Storage.Upload(ctx, name, bytes.NewReader(buf.Bytes()), int64(buf.Len()), util.MimeXLSX)
	if err != nil {
		return "", util.TransientFailure("report archive", err)
	}
	logger.Log.Info("report archived", zap.String("url", url), zap.Int("bytes", buf.Len()))
	return url, nil
}
