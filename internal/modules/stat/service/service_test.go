package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trackzen.io/backend/internal/entity"
)

type counts struct {
	employees int64
	updates   int64
	err       error
	day       time.Time
	role      string
}

func (c *counts) CountActiveByRole(context.Context, string) (int64, error) { return c.employees, c.err }
func (c *counts) CountActiveByRoleForDay(_ context.Context, day time.Time, role string) (int64, error) {
	c.day = day
	c.role = role
	return c.updates, nil
}

type statusCount int64

func (s statusCount) CountByStatus(context.Context, string) (int64, error) { return int64(s), nil }

func TestOverview(t *testing.T) {
	c := &counts{employees: 3, updates: 2}
	svc := NewStatService(c, c, statusCount(4), statusCount(1), time.UTC).(*statService)
	svc.now = func() time.Time { return time.Date(2026, 10, 14, 23, 59, 0, 0, time.UTC) }

	out, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.ActiveEmployees)
	assert.Equal(t, int64(2), out.UpdatesToday)
	assert.Equal(t, 66.7, out.SubmissionRate)
	assert.Equal(t, int64(4), out.ScheduledInterviews)
	assert.Equal(t, int64(1), out.ActiveProjects)
	assert.Equal(t, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC), c.day)
	assert.Equal(t, entity.RoleEmployee, c.role, "only active employees' updates count toward the rate")
}

func TestOverviewRateCappedAtHundred(t *testing.T) {
	c := &counts{employees: 3, updates: 4}
	out, err := NewStatService(c, c, statusCount(0), statusCount(0), time.UTC).Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 100.0, out.SubmissionRate)
}

func TestOverviewNoEmployees(t *testing.T) {
	out, err := NewStatService(&counts{}, &counts{}, statusCount(0), statusCount(0), nil).Overview(context.Background())
	require.NoError(t, err)
	assert.Zero(t, out.SubmissionRate)
}

func TestOverviewError(t *testing.T) {
	c := &counts{err: errors.New("boom")}
	_, err := NewStatService(c, c, statusCount(0), statusCount(0), time.UTC).Overview(context.Background())
	assert.EqualError(t, err, "boom")
}
