package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"trackzen.io/backend/internal/entity"
	"trackzen.io/backend/pkg/apperror"
)

type UpdateRepository interface {
	Create(ctx context.Context, update *entity.DailyUpdate) error
	ExistsForDay(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error)
	FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.DailyUpdate, error)
	FindDatesByUser(ctx context.Context, userID uuid.UUID) ([]time.Time, error)
	FindUserIDsForDay(ctx context.Context, day time.Time) ([]uuid.UUID, error)
	CountActiveByRoleForDay(ctx context.Context, day time.Time, role string) (int64, error)
}

type updateRepository struct {
	db *gorm.DB
}

func NewUpdateRepository(db *gorm.DB) UpdateRepository {
	return &updateRepository{db: db}
}

func (r *updateRepository) Create(ctx context.Context, update *entity.DailyUpdate) error {
	err := r.db.WithContext(ctx).Create(update).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("update already submitted for %s: %w", update.Date.Format(time.DateOnly), apperror.ErrConflict)
	}
	return err
}

func (r *updateRepository) ExistsForDay(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.DailyUpdate{}).
		Where("user_id = ? AND date = ?", userID, day.Format(time.DateOnly)).
		Count(&count).Error
	return count > 0, err
}

// FindRecentByUser returns up to limit updates, newest first. limit <= 0
// means no limit.
func (r *updateRepository) FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.DailyUpdate, error) {
	var updates []*entity.DailyUpdate
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&updates).Error; err != nil {
		return nil, err
	}
	return updates, nil
}

func (r *updateRepository) FindDatesByUser(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&entity.DailyUpdate{}).
		Where("user_id = ?", userID).
		Order("date desc").
		Pluck("date", &dates).Error
	return dates, err
}

func (r *updateRepository) FindUserIDsForDay(ctx context.Context, day time.Time) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&entity.DailyUpdate{}).
		Where("date = ?", day.Format(time.DateOnly)).
		Pluck("user_id", &ids).Error
	return ids, err
}

// CountActiveByRoleForDay counts the day's updates written by users that are
// currently active and hold role.
func (r *updateRepository) CountActiveByRoleForDay(ctx context.Context, day time.Time, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.DailyUpdate{}).
		Joins("JOIN users ON users.id = daily_updates.user_id").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("daily_updates.date = ? AND users.is_active = ? AND roles.name = ?", day.Format(time.DateOnly), true, role).
		Count(&count).Error
	return count, err
}
