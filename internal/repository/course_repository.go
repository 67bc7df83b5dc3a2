package repository

import (
	"context"
	"errors"
	"lingua_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

var ErrCourseNotFound = errors.New("course not found")

// CourseRepository courses 表由内容服务维护，这里只读
type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) FindByIDIn(ctx context.Context, ids []string) (*model.Course, error) {
	var course model.Course
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).First(&course).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Course, error) {
	var courses []model.Course
	if len(ids) == 0 {
		return courses, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Course{}).Count(&count).Error
	return count, err
}

func (r *CourseRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Course{}).Where("created_at >= ?", since.UTC()).Count(&count).Error
	return count, err
}

// SumExerciseTotals 所有课程练习题总数
func (r *CourseRepository) SumExerciseTotals(ctx context.Context) (int64, error) {
	var total int64
	err := r.DB.WithContext(ctx).Model(&model.Course{}).
		Select("COALESCE(SUM(exercise_total), 0)").
		Scan(&total).Error
	return total, err
}

func (r *CourseRepository) Recent(ctx context.Context, limit int) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) ListAll(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&courses).Error
	return courses, err
}
