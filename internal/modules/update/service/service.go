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
	"github.com/redis/go-redis/v9"
	"trackzen.io/backend/internal/entity"
	"trackzen.io/backend/internal/modules/leaderboard/scoring"
	"trackzen.io/backend/internal/modules/update/dto"
	"trackzen.io/backend/internal/modules/update/repository"
	"trackzen.io/backend/pkg/apperror"
	"trackzen.io/backend/pkg/ratelimit"
)

const (
	submitLockTTL = 10 * time.Second
	defaultLimit  = 30
	maxLimit      = 200
)

type UpdateService interface {
	Submit(ctx context.Context, userID uuid.UUID, input dto.CreateUpdateInput) (*entity.DailyUpdate, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.DailyUpdate, error)
	Streak(ctx context.Context, userID uuid.UUID) (scoring.Streak, error)
}

type updateService struct {
	repo      repository.UpdateRepository
	redis     *redis.Client
	sanitizer *bluemonday.Policy
	loc       *time.Location
	now       func() time.Time
}

func NewUpdateService(repo repository.UpdateRepository, redisClient *redis.Client, loc *time.Location, now func() time.Time) UpdateService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &updateService{
		repo:      repo,
		redis:     redisClient,
		sanitizer: bluemonday.StrictPolicy(),
		loc:       loc,
		now:       now,
	}
}

func (s *updateService) today() time.Time {
	return scoring.CivilDate(s.now().In(s.loc))
}

func (s *updateService) Submit(ctx context.Context, userID uuid.UUID, input dto.CreateUpdateInput) (*entity.DailyUpdate, error) {
	if input.ProgressScore < 1 || input.ProgressScore > 10 {
		return nil, fmt.Errorf("progress score must be between 1 and 10: %w", apperror.ErrInvalidInput)
	}

	accomplishments := s.clean(input.Accomplishments)
	if accomplishments == "" {
		return nil, fmt.Errorf("accomplishments is required: %w", apperror.ErrInvalidInput)
	}

	day := s.today()
	action := "update_submit:" + day.Format(time.DateOnly)

	acquired, err := ratelimit.Acquire(ctx, s.redis, userID.String(), action, submitLockTTL)
	if err != nil {
		log.Printf("⚠️ update submit lock unavailable: %v", err)
	} else if !acquired {
		return nil, fmt.Errorf("update submission already in progress: %w", apperror.ErrConflict)
	}
	if acquired {
		defer func() {
			if err := ratelimit.Release(ctx, s.redis, userID.String(), action); err != nil {
				log.Printf("⚠️ failed to release update lock for %s: %v", userID, err)
			}
		}()
	}

	exists, err := s.repo.ExistsForDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.New(http.StatusConflict, "daily update already submitted for today", apperror.ErrConflict)
	}

	update := &entity.DailyUpdate{
		UserID:          userID,
		Date:            day,
		ProgressScore:   input.ProgressScore,
		Accomplishments: accomplishments,
		Blockers:        s.clean(input.Blockers),
		Plans:           s.clean(input.Plans),
	}
	if err := s.repo.Create(ctx, update); err != nil {
		return nil, err
	}

	return update, nil
}

func (s *updateService) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.DailyUpdate, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return s.repo.FindRecentByUser(ctx, userID, limit)
}

func (s *updateService) Streak(ctx context.Context, userID uuid.UUID) (scoring.Streak, error) {
	dates, err := s.repo.FindDatesByUser(ctx, userID)
	if err != nil {
		return scoring.Streak{}, err
	}
	return scoring.CalculateStreak(dates, s.today()), nil
}

func (s *updateService) clean(text string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(text))
}
