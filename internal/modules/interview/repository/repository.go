package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"trackzen.io/backend/internal/entity"
	"trackzen.io/backend/pkg/apperror"
)

type InterviewRepository interface {
	Create(ctx context.Context, interview *entity.Interview) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Interview, error)
	FindForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Interview, error)
	FindByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*entity.Interview, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	CountByStatus(ctx context.Context, status string) (int64, error)

	CreateFeedback(ctx context.Context, feedback *entity.Feedback) error
	FindFeedbackByInterview(ctx context.Context, interviewID uuid.UUID) (*entity.Feedback, error)
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(ctx context.Context, interview *entity.Interview) error {
	return r.db.WithContext(ctx).Omit("Candidate", "Interviewer", "Feedback").Create(interview).Error
}

func (r *interviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Interview, error) {
	var interview entity.Interview
	err := r.db.WithContext(ctx).
		Preload("Candidate").
		Preload("Interviewer").
		Preload("Feedback").
		Where("id = ?", id).
		First(&interview).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("interview not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return &interview, nil
}

// FindForUser returns interviews where userID is the candidate or the
// interviewer, soonest first.
func (r *interviewRepository) FindForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Interview, error) {
	var interviews []*entity.Interview
	err := r.db.WithContext(ctx).
		Preload("Candidate").
		Preload("Interviewer").
		Preload("Feedback").
		Where("candidate_id = ? OR interviewer_id = ?", userID, userID).
		Order("scheduled_at asc").
		Find(&interviews).Error
	return interviews, err
}

func (r *interviewRepository) FindByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*entity.Interview, error) {
	var interviews []*entity.Interview
	err := r.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("scheduled_at asc").
		Find(&interviews).Error
	return interviews, err
}

func (r *interviewRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Interview{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("interview not found: %w", apperror.ErrNotFound)
	}
	return nil
}

func (r *interviewRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Interview{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

func (r *interviewRepository) CreateFeedback(ctx context.Context, feedback *entity.Feedback) error {
	err := r.db.WithContext(ctx).Create(feedback).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("feedback already submitted: %w", apperror.ErrConflict)
	}
	return err
}

// FindFeedbackByInterview returns nil, nil when no feedback exists yet.
func (r *interviewRepository) FindFeedbackByInterview(ctx context.Context, interviewID uuid.UUID) (*entity.Feedback, error) {
	var feedback entity.Feedback
	err := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}
