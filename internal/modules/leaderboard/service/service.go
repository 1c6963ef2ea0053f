package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"trackzen.io/backend/internal/entity"
	"trackzen.io/backend/internal/modules/leaderboard/dto"
	"trackzen.io/backend/internal/modules/leaderboard/scoring"
	"trackzen.io/backend/pkg/apperror"
)

const MsgNotInLeaderboard = "User not found in leaderboard"

type UserDirectory interface {
	FindActiveByRole(ctx context.Context, role string) ([]*entity.User, error)
}

type UpdateReader interface {
	FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.DailyUpdate, error)
}

type InterviewReader interface {
	FindByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*entity.Interview, error)
}

// FeedbackReader returns nil, nil for an interview without feedback.
type FeedbackReader interface {
	FindFeedbackByInterview(ctx context.Context, interviewID uuid.UUID) (*entity.Feedback, error)
}

type ProjectReader interface {
	CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

type Options struct {
	Concurrency int // parallel per-user fetches
	UpdateLimit int // most recent updates read per user
	Location    *time.Location
	Now         func() time.Time
}

type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, period scoring.Period) (*dto.LeaderboardResponse, error)
	GetUserRank(ctx context.Context, userID uuid.UUID, period scoring.Period) (*dto.LeaderboardEntry, error)
}

type leaderboardService struct {
	users      UserDirectory
	updates    UpdateReader
	interviews InterviewReader
	feedback   FeedbackReader
	projects   ProjectReader
	opts       Options
}

func NewLeaderboardService(
	users UserDirectory,
	updates UpdateReader,
	interviews InterviewReader,
	feedback FeedbackReader,
	projects ProjectReader,
	opts Options,
) LeaderboardService {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}
	if opts.UpdateLimit <= 0 {
		opts.UpdateLimit = 120
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &leaderboardService{
		users:      users,
		updates:    updates,
		interviews: interviews,
		feedback:   feedback,
		projects:   projects,
		opts:       opts,
	}
}

// collected is what one user's fetch produced.
type collected struct {
	activity    scoring.Activity
	dates       []time.Time
	lastUpdated *time.Time
}

func (s *leaderboardService) GetLeaderboard(ctx context.Context, period scoring.Period) (*dto.LeaderboardResponse, error) {
	now := s.opts.Now().In(s.opts.Location)

	users, err := s.users.FindActiveByRole(ctx, entity.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	results := make([]collected, len(users))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)
	for i, u := range users {
		i, u := i, u
		g.Go(func() error {
			c, err := s.collect(gctx, u.ID)
			if err != nil {
				return fmt.Errorf("collect activity for %s: %w", u.ID, err)
			}
			results[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	window := scoring.WindowFor(period, now)
	entries := make([]dto.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		m := scoring.Evaluate(results[i].activity, window)
		entries = append(entries, dto.LeaderboardEntry{
			UserID: u.ID,
			User: dto.EntryUser{
				ID:         u.ID,
				FirstName:  u.FirstName,
				LastName:   u.LastName,
				Department: u.Department,
			},
			TotalScore:           m.TotalScore,
			UpdateConsistency:    m.UpdateConsistency,
			AverageProgressScore: m.AverageProgressScore,
			InterviewPerformance: m.InterviewPerformance,
			ProjectContributions: m.ProjectContributions,
			CurrentStreak:        scoring.CalculateStreak(results[i].dates, window.End).Current,
			LastUpdated:          results[i].lastUpdated,
		})
	}

	rankEntries(entries)

	return &dto.LeaderboardResponse{
		Entries:     entries,
		Period:      string(period),
		GeneratedAt: now,
	}, nil
}

// GetUserRank recomputes the whole board and picks userID out of it.
func (s *leaderboardService) GetUserRank(ctx context.Context, userID uuid.UUID, period scoring.Period) (*dto.LeaderboardEntry, error) {
	board, err := s.GetLeaderboard(ctx, period)
	if err != nil {
		return nil, err
	}

	for i := range board.Entries {
		if board.Entries[i].UserID == userID {
			return &board.Entries[i], nil
		}
	}

	return nil, apperror.NotFound(MsgNotInLeaderboard)
}

func (s *leaderboardService) collect(ctx context.Context, userID uuid.UUID) (collected, error) {
	var c collected

	updates, err := s.updates.FindRecentByUser(ctx, userID, s.opts.UpdateLimit)
	if err != nil {
		return c, err
	}
	c.activity.Updates = make([]scoring.UpdatePoint, 0, len(updates))
	c.dates = make([]time.Time, 0, len(updates))
	for _, u := range updates {
		c.activity.Updates = append(c.activity.Updates, scoring.UpdatePoint{Date: u.Date, Score: u.ProgressScore})
		c.dates = append(c.dates, u.Date)
		if c.lastUpdated == nil || u.Date.After(*c.lastUpdated) {
			d := u.Date
			c.lastUpdated = &d
		}
	}

	interviews, err := s.interviews.FindByCandidate(ctx, userID)
	if err != nil {
		return c, err
	}
	for _, iv := range interviews {
		if iv.Status != entity.InterviewCompleted {
			continue
		}
		fb, err := s.feedback.FindFeedbackByInterview(ctx, iv.ID)
		if err != nil {
			return c, err
		}
		if fb != nil {
			c.activity.InterviewRatings = append(c.activity.InterviewRatings, fb.OverallRating)
		}
	}

	active, err := s.projects.CountActiveByUser(ctx, userID)
	if err != nil {
		return c, err
	}
	c.activity.ActiveProjects = int(active)

	return c, nil
}
