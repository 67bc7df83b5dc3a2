package repository

import (
	"context"
	"errors"
	"lingua_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository users 表由认证服务写入，这里只读
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// FindByIDIn 任意一种写法命中即可
func (r *UserRepository) FindByIDIn(ctx context.Context, ids []string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	var users []model.User
	if len(ids) == 0 {
		return users, nil
	}
	err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error
	return users, err
}

func (r *UserRepository) CountLearners(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).Where("role = ?", model.Learner).Count(&count).Error
	return count, err
}

func (r *UserRepository) CountLearnersBefore(ctx context.Context, before time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("role = ? AND created_at < ?", model.Learner, before.UTC()).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) RecentLearners(ctx context.Context, limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).
		Where("role = ?", model.Learner).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) LearnerCreatedSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var times []time.Time
	err := r.DB.WithContext(ctx).Model(&model.User{}).
		Where("role = ? AND created_at >= ?", model.Learner, since.UTC()).
		Pluck("created_at", &times).Error
	return times, err
}
