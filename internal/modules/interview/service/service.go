package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"trackzen.io/backend/internal/entity"
	"trackzen.io/backend/internal/modules/interview/dto"
	"trackzen.io/backend/internal/modules/interview/repository"
	"trackzen.io/backend/pkg/apperror"
)

// UserFinder looks up interview participants.
type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}

// Notifier delivers in-app notifications.
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

var transitions = map[string][]string{
	entity.InterviewScheduled:  {entity.InterviewInProgress, entity.InterviewCancelled},
	entity.InterviewInProgress: {entity.InterviewCompleted, entity.InterviewCancelled},
}

// CanTransition reports whether an interview may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type InterviewService interface {
	Schedule(ctx context.Context, actor Actor, input dto.ScheduleInput) (*entity.Interview, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]*entity.Interview, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Interview, error)
	UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (*entity.Interview, error)
	SubmitFeedback(ctx context.Context, actor Actor, id uuid.UUID, input dto.FeedbackInput) (*entity.Feedback, error)
}

type interviewService struct {
	repo      repository.InterviewRepository
	users     UserFinder
	notifier  Notifier
	sanitizer *bluemonday.Policy
	now       func() time.Time
}

func NewInterviewService(repo repository.InterviewRepository, users UserFinder, notifier Notifier) InterviewService {
	return &interviewService{
		repo:      repo,
		users:     users,
		notifier:  notifier,
		sanitizer: bluemonday.StrictPolicy(),
		now:       time.Now,
	}
}

func (s *interviewService) Schedule(ctx context.Context, actor Actor, input dto.ScheduleInput) (*entity.Interview, error) {
	if input.CandidateID == actor.ID {
		return nil, fmt.Errorf("cannot interview yourself: %w", apperror.ErrInvalidInput)
	}
	if !input.ScheduledAt.After(s.now()) {
		return nil, fmt.Errorf("scheduledAt must be in the future: %w", apperror.ErrInvalidInput)
	}

	candidate, err := s.users.FindByID(ctx, input.CandidateID)
	if err != nil {
		return nil, err
	}
	if !candidate.IsActive || candidate.Role.Name != entity.RoleEmployee {
		return nil, fmt.Errorf("candidate must be an active employee: %w", apperror.ErrInvalidInput)
	}

	interview := &entity.Interview{
		CandidateID:   candidate.ID,
		InterviewerID: actor.ID,
		ScheduledAt:   input.ScheduledAt,
		Topic:         s.clean(input.Topic),
		Status:        entity.InterviewScheduled,
	}
	if err := s.repo.Create(ctx, interview); err != nil {
		return nil, err
	}

	s.notify(ctx, candidate.ID, actor.ID, interview.ID, entity.NotificationInterviewScheduled,
		fmt.Sprintf("Mock interview scheduled for %s", interview.ScheduledAt.Format("Mon 02 Jan 15:04")))

	return interview, nil
}

func (s *interviewService) ListMine(ctx context.Context, userID uuid.UUID) ([]*entity.Interview, error) {
	return s.repo.FindForUser(ctx, userID)
}

func (s *interviewService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Interview, error) {
	interview, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.isStaff() && interview.CandidateID != actor.ID && interview.InterviewerID != actor.ID {
		return nil, fmt.Errorf("interview not found: %w", apperror.ErrNotFound)
	}
	return interview, nil
}

func (s *interviewService) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (*entity.Interview, error) {
	interview, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if interview.InterviewerID != actor.ID && actor.Role != entity.RoleAdmin {
		return nil, apperror.New(http.StatusForbidden, "only the interviewer can change the status", apperror.ErrForbidden)
	}
	if !CanTransition(interview.Status, status) {
		return nil, apperror.New(http.StatusBadRequest,
			fmt.Sprintf("cannot move interview from %s to %s", interview.Status, status), apperror.ErrBadRequest)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	interview.Status = status

	return interview, nil
}

func (s *interviewService) SubmitFeedback(ctx context.Context, actor Actor, id uuid.UUID, input dto.FeedbackInput) (*entity.Feedback, error) {
	if input.OverallRating < 1 || input.OverallRating > 10 {
		return nil, fmt.Errorf("overallRating must be between 1 and 10: %w", apperror.ErrInvalidInput)
	}

	interview, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if interview.InterviewerID != actor.ID && actor.Role != entity.RoleAdmin {
		return nil, apperror.New(http.StatusForbidden, "only the interviewer can submit feedback", apperror.ErrForbidden)
	}
	if interview.Status != entity.InterviewCompleted {
		return nil, apperror.New(http.StatusBadRequest, "feedback requires a completed interview", apperror.ErrBadRequest)
	}

	existing, err := s.repo.FindFeedbackByInterview(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.New(http.StatusConflict, "feedback already submitted", apperror.ErrConflict)
	}

	feedback := &entity.Feedback{
		InterviewID:         id,
		SubmittedByID:       actor.ID,
		OverallRating:       input.OverallRating,
		TechnicalRating:     input.TechnicalRating,
		CommunicationRating: input.CommunicationRating,
		Comments:            s.clean(input.Comments),
	}
	if err := s.repo.CreateFeedback(ctx, feedback); err != nil {
		return nil, err
	}

	s.notify(ctx, interview.CandidateID, actor.ID, interview.ID, entity.NotificationFeedbackReceived,
		fmt.Sprintf("You received interview feedback: %.1f/10", feedback.OverallRating))

	return feedback, nil
}

func (s *interviewService) notify(ctx context.Context, userID, actorID, interviewID uuid.UUID, kind, message string) {
	if s.notifier == nil {
		return
	}
	n := &entity.Notification{
		UserID:     userID,
		ActorID:    &actorID,
		EntityID:   &interviewID,
		EntityType: "interview",
		Type:       kind,
		Message:    message,
	}
	if err := s.notifier.CreateNotification(ctx, n); err != nil {
		log.Printf("⚠️ failed to notify %s about interview %s: %v", userID, interviewID, err)
	}
}

func (s *interviewService) clean(text string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(text))
}
