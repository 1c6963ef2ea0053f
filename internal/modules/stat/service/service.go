package service

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
	"trackzen.io/backend/internal/entity"
	"trackzen.io/backend/internal/modules/leaderboard/scoring"
	"trackzen.io/backend/internal/modules/stat/dto"
)

type UserCounter interface {
	CountActiveByRole(ctx context.Context, role string) (int64, error)
}

type UpdateCounter interface {
	CountActiveByRoleForDay(ctx context.Context, day time.Time, role string) (int64, error)
}

type StatusCounter interface {
	CountByStatus(ctx context.Context, status string) (int64, error)
}

type StatService interface {
	Overview(ctx context.Context) (*dto.Overview, error)
}

type statService struct {
	users      UserCounter
	updates    UpdateCounter
	interviews StatusCounter
	projects   StatusCounter
	loc        *time.Location
	now        func() time.Time
}

func NewStatService(users UserCounter, updates UpdateCounter, interviews, projects StatusCounter, loc *time.Location) StatService {
	if loc == nil {
		loc = time.Local
	}
	return &statService{
		users:      users,
		updates:    updates,
		interviews: interviews,
		projects:   projects,
		loc:        loc,
		now:        time.Now,
	}
}

func (s *statService) Overview(ctx context.Context) (*dto.Overview, error) {
	today := scoring.CivilDate(s.now().In(s.loc))
	out := &dto.Overview{Date: today}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.ActiveEmployees, err = s.users.CountActiveByRole(gctx, entity.RoleEmployee)
		return err
	})
	g.Go(func() (err error) {
		out.UpdatesToday, err = s.updates.CountActiveByRoleForDay(gctx, today, entity.RoleEmployee)
		return err
	})
	g.Go(func() (err error) {
		out.ScheduledInterviews, err = s.interviews.CountByStatus(gctx, entity.InterviewScheduled)
		return err
	})
	g.Go(func() (err error) {
		out.ActiveProjects, err = s.projects.CountByStatus(gctx, entity.ProjectActive)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if out.ActiveEmployees > 0 {
		rate := float64(out.UpdatesToday) / float64(out.ActiveEmployees) * 100
		out.SubmissionRate = scoring.Round1(math.Min(rate, 100))
	}

	return out, nil
}
