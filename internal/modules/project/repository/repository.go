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

type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)
	FindAll(ctx context.Context) ([]*entity.Project, error)
	FindByMember(ctx context.Context, userID uuid.UUID) ([]*entity.Project, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	CountByStatus(ctx context.Context, status string) (int64, error)

	AddMember(ctx context.Context, member *entity.ProjectMember) error
	RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error
	IsMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	FindMembers(ctx context.Context, projectID uuid.UUID) ([]*entity.ProjectMember, error)
	CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	CreateTicket(ctx context.Context, ticket *entity.Ticket) error
	FindTicketByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error)
	FindTicketsByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.Ticket, error)
	UpdateTicketStatus(ctx context.Context, id uuid.UUID, status string) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var project entity.Project
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("project not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindAll(ctx context.Context) ([]*entity.Project, error) {
	var projects []*entity.Project
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) FindByMember(ctx context.Context, userID uuid.UUID) ([]*entity.Project, error) {
	var projects []*entity.Project
	err := r.db.WithContext(ctx).
		Joins("JOIN project_members pm ON pm.project_id = projects.id").
		Where("pm.user_id = ?", userID).
		Order("projects.created_at desc").
		Find(&projects).Error
	return projects, err
}

func (r *projectRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).Model(&entity.Project{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("project not found: %w", apperror.ErrNotFound)
	}
	return nil
}

func (r *projectRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Project{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *projectRepository) AddMember(ctx context.Context, member *entity.ProjectMember) error {
	err := r.db.WithContext(ctx).Omit("Project", "User").Create(member).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("user is already a member: %w", apperror.ErrConflict)
	}
	return err
}

func (r *projectRepository) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&entity.ProjectMember{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("membership not found: %w", apperror.ErrNotFound)
	}
	return nil
}

func (r *projectRepository) IsMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *projectRepository) FindMembers(ctx context.Context, projectID uuid.UUID) ([]*entity.ProjectMember, error) {
	var members []*entity.ProjectMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("joined_at").
		Find(&members).Error
	return members, err
}

// CountActiveByUser counts the active projects userID belongs to.
func (r *projectRepository) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.ProjectMember{}).
		Joins("JOIN projects ON projects.id = project_members.project_id").
		Where("project_members.user_id = ? AND projects.status = ?", userID, entity.ProjectActive).
		Count(&count).Error
	return count, err
}

func (r *projectRepository) CreateTicket(ctx context.Context, ticket *entity.Ticket) error {
	return r.db.WithContext(ctx).Create(ticket).Error
}

func (r *projectRepository) FindTicketByID(ctx context.Context, id uuid.UUID) (*entity.Ticket, error) {
	var ticket entity.Ticket
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ticket not found: %w", apperror.ErrNotFound)
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *projectRepository) FindTicketsByProject(ctx context.Context, projectID uuid.UUID) ([]*entity.Ticket, error) {
	var tickets []*entity.Ticket
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at desc").
		Find(&tickets).Error
	return tickets, err
}

func (r *projectRepository) UpdateTicketStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).Model(&entity.Ticket{}).Where("id = ?", id).Update("status", status).Error
}
