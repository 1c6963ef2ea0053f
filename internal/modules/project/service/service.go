package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"trackzen.io/backend/internal/entity"
	"trackzen.io/backend/internal/modules/project/dto"
	"trackzen.io/backend/internal/modules/project/repository"
	"trackzen.io/backend/pkg/apperror"
)

type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

type Notifier interface {
	CreateNotification(ctx context.Context, notification *entity.Notification) error
}

// Actor is the authenticated caller.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) isStaff() bool {
	return a.Role == entity.RoleAdmin || a.Role == entity.RoleManager
}

type ProjectService interface {
	Create(ctx context.Context, actor Actor, input dto.CreateProjectInput) (*entity.Project, error)
	List(ctx context.Context) ([]*entity.Project, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*entity.Project, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	AddMember(ctx context.Context, actor Actor, projectID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error
	ListMembers(ctx context.Context, actor Actor, projectID uuid.UUID) ([]*entity.ProjectMember, error)

	CreateTicket(ctx context.Context, actor Actor, projectID uuid.UUID, input dto.CreateTicketInput) (*entity.Ticket, error)
	ListTickets(ctx context.Context, actor Actor, projectID uuid.UUID) ([]*entity.Ticket, error)
	UpdateTicketStatus(ctx context.Context, actor Actor, ticketID uuid.UUID, status string) (*entity.Ticket, error)
}

type projectService struct {
	repo      repository.ProjectRepository
	users     UserFinder
	notifier  Notifier
	sanitizer *bluemonday.Policy
}

func NewProjectService(repo repository.ProjectRepository, users UserFinder, notifier Notifier) ProjectService {
	return &projectService{
		repo:      repo,
		users:     users,
		notifier:  notifier,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *projectService) Create(ctx context.Context, actor Actor, input dto.CreateProjectInput) (*entity.Project, error) {
	name := s.clean(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", apperror.ErrInvalidInput)
	}

	project := &entity.Project{
		Name:        name,
		Description: s.clean(input.Description),
		Status:      entity.ProjectActive,
		OwnerID:     actor.ID,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context) ([]*entity.Project, error) {
	return s.repo.FindAll(ctx)
}

func (s *projectService) ListMine(ctx context.Context, userID uuid.UUID) ([]*entity.Project, error) {
	return s.repo.FindByMember(ctx, userID)
}

func (s *projectService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	switch status {
	case entity.ProjectActive, entity.ProjectOnHold, entity.ProjectCompleted:
	default:
		return fmt.Errorf("unknown project status %q: %w", status, apperror.ErrInvalidInput)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *projectService) AddMember(ctx context.Context, actor Actor, projectID, userID uuid.UUID) error {
	project, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsActive {
		return fmt.Errorf("cannot assign an inactive user: %w", apperror.ErrInvalidInput)
	}

	if err := s.repo.AddMember(ctx, &entity.ProjectMember{ProjectID: projectID, UserID: userID}); err != nil {
		return err
	}

	s.notify(ctx, userID, actor.ID, projectID, "project", entity.NotificationProjectAssigned,
		fmt.Sprintf("You were added to project %s", project.Name))
	return nil
}

func (s *projectService) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	return s.repo.RemoveMember(ctx, projectID, userID)
}

func (s *projectService) ListMembers(ctx context.Context, actor Actor, projectID uuid.UUID) ([]*entity.ProjectMember, error) {
	if _, err := s.repo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	if err := s.requireAccess(ctx, actor, projectID); err != nil {
		return nil, err
	}
	return s.repo.FindMembers(ctx, projectID)
}

func (s *projectService) CreateTicket(ctx context.Context, actor Actor, projectID uuid.UUID, input dto.CreateTicketInput) (*entity.Ticket, error) {
	if _, err := s.repo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	if err := s.requireAccess(ctx, actor, projectID); err != nil {
		return nil, err
	}

	title := s.clean(input.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", apperror.ErrInvalidInput)
	}

	if input.AssigneeID != nil {
		member, err := s.repo.IsMember(ctx, projectID, *input.AssigneeID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, fmt.Errorf("assignee must be a project member: %w", apperror.ErrInvalidInput)
		}
	}

	priority := input.Priority
	if priority == "" {
		priority = "medium"
	}

	ticket := &entity.Ticket{
		ProjectID:   projectID,
		Title:       title,
		Description: s.clean(input.Description),
		AssigneeID:  input.AssigneeID,
		ReporterID:  actor.ID,
		Priority:    priority,
		Status:      entity.TicketOpen,
	}
	if err := s.repo.CreateTicket(ctx, ticket); err != nil {
		return nil, err
	}

	if ticket.AssigneeID != nil && *ticket.AssigneeID != actor.ID {
		s.notify(ctx, *ticket.AssigneeID, actor.ID, ticket.ID, "ticket", entity.NotificationTicketAssigned,
			fmt.Sprintf("Ticket assigned to you: %s", ticket.Title))
	}

	return ticket, nil
}

func (s *projectService) ListTickets(ctx context.Context, actor Actor, projectID uuid.UUID) ([]*entity.Ticket, error) {
	if _, err := s.repo.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	if err := s.requireAccess(ctx, actor, projectID); err != nil {
		return nil, err
	}
	return s.repo.FindTicketsByProject(ctx, projectID)
}

func (s *projectService) UpdateTicketStatus(ctx context.Context, actor Actor, ticketID uuid.UUID, status string) (*entity.Ticket, error) {
	switch status {
	case entity.TicketOpen, entity.TicketInProgress, entity.TicketDone:
	default:
		return nil, fmt.Errorf("unknown ticket status %q: %w", status, apperror.ErrInvalidInput)
	}

	ticket, err := s.repo.FindTicketByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	isAssignee := ticket.AssigneeID != nil && *ticket.AssigneeID == actor.ID
	if !isAssignee && !actor.isStaff() {
		return nil, apperror.New(http.StatusForbidden, "only the assignee can update this ticket", apperror.ErrForbidden)
	}

	if err := s.repo.UpdateTicketStatus(ctx, ticketID, status); err != nil {
		return nil, err
	}
	ticket.Status = status

	return ticket, nil
}

// requireAccess lets staff through and limits everyone else to projects they
// belong to.
func (s *projectService) requireAccess(ctx context.Context, actor Actor, projectID uuid.UUID) error {
	if actor.isStaff() {
		return nil
	}
	member, err := s.repo.IsMember(ctx, projectID, actor.ID)
	if err != nil {
		return err
	}
	if !member {
		return apperror.New(http.StatusForbidden, "not a member of this project", apperror.ErrForbidden)
	}
	return nil
}

func (s *projectService) notify(ctx context.Context, userID, actorID, entityID uuid.UUID, entityType, kind, message string) {
	if s.notifier == nil {
		return
	}
	n := &entity.Notification{
		UserID:     userID,
		ActorID:    &actorID,
		EntityID:   &entityID,
		EntityType: entityType,
		Type:       kind,
		Message:    message,
	}
	if err := s.notifier.CreateNotification(ctx, n); err != nil {
		log.Printf("⚠️ failed to notify %s: %v", userID, err)
	}
}

func (s *projectService) clean(text string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(text))
}
