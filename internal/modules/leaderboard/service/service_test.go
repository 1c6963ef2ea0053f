package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trackzen.io/backend/internal/entity"
	"trackzen.io/backend/internal/modules/leaderboard/dto"
	"trackzen.io/backend/internal/modules/leaderboard/scoring"
	"trackzen.io/backend/pkg/apperror"
)

var (
	now   = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)
	today = scoring.CivilDate(now)

	userA = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	userB = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	userC = uuid.MustParse("00000000-0000-0000-0000-00000000000c")
	userD = uuid.MustParse("00000000-0000-0000-0000-000000000001")
)

type fakeStore struct {
	users      []*entity.User
	updates    map[uuid.UUID][]*entity.DailyUpdate
	interviews map[uuid.UUID][]*entity.Interview
	feedback   map[uuid.UUID]*entity.Feedback
	projects   map[uuid.UUID]int64

	usersErr    error
	projectsErr map[uuid.UUID]error
}

func (f *fakeStore) FindActiveByRole(_ context.Context, role string) ([]*entity.User, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	var out []*entity.User
	for _, u := range f.users {
		if u.IsActive && u.Role.Name == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) FindRecentByUser(_ context.Context, userID uuid.UUID, limit int) ([]*entity.DailyUpdate, error) {
	all := f.updates[userID]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeStore) FindByCandidate(_ context.Context, candidateID uuid.UUID) ([]*entity.Interview, error) {
	return f.interviews[candidateID], nil
}

func (f *fakeStore) FindFeedbackByInterview(_ context.Context, interviewID uuid.UUID) (*entity.Feedback, error) {
	return f.feedback[interviewID], nil
}

func (f *fakeStore) CountActiveByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	if err := f.projectsErr[userID]; err != nil {
		return 0, err
	}
	return f.projects[userID], nil
}

func employee(id uuid.UUID, name string) *entity.User {
	return &entity.User{ID: id, FirstName: name, Department: "Engineering", IsActive: true, Role: entity.Role{Name: entity.RoleEmployee}}
}

func interview(candidate uuid.UUID, status string) *entity.Interview {
	return &entity.Interview{ID: uuid.New(), CandidateID: candidate, Status: status}
}

func seed() *fakeStore {
	done1 := interview(userC, entity.InterviewCompleted)
	done2 := interview(userC, entity.InterviewCompleted)
	doneNoFeedback := interview(userC, entity.InterviewCompleted)
	cancelled := interview(userC, entity.InterviewCancelled)

	manager := &entity.User{ID: uuid.New(), IsActive: true, Role: entity.Role{Name: entity.RoleManager}}
	inactive := employee(uuid.New(), "Gone")
	inactive.IsActive = false

	return &fakeStore{
		users: []*entity.User{
			employee(userB, "Bea"),
			employee(userA, "Ari"),
			employee(userC, "Cam"),
			employee(userD, "Dee"),
			manager,
			inactive,
		},
		updates: map[uuid.UUID][]*entity.DailyUpdate{
			userA: {
				{UserID: userA, Date: today, ProgressScore: 8},
				{UserID: userA, Date: today.AddDate(0, 0, -1), ProgressScore: 6},
				{UserID: userA, Date: today.AddDate(0, 0, -40), ProgressScore: 1},
			},
		},
		interviews: map[uuid.UUID][]*entity.Interview{
			userC: {done1, done2, doneNoFeedback, cancelled},
		},
		feedback: map[uuid.UUID]*entity.Feedback{
			done1.ID:     {InterviewID: done1.ID, OverallRating: 9},
			done2.ID:     {InterviewID: done2.ID, OverallRating: 7},
			cancelled.ID: {InterviewID: cancelled.ID, OverallRating: 1},
		},
		projects:    map[uuid.UUID]int64{userA: 1},
		projectsErr: map[uuid.UUID]error{},
	}
}

func newService(store *fakeStore) LeaderboardService {
	return NewLeaderboardService(store, store, store, store, store, Options{
		Concurrency: 2,
		UpdateLimit: 120,
		Location:    time.UTC,
		Now:         func() time.Time { return now },
	})
}

func TestGetLeaderboard(t *testing.T) {
	board, err := newService(seed()).GetLeaderboard(context.Background(), scoring.Weekly)
	require.NoError(t, err)

	assert.Equal(t, "weekly", board.Period)
	assert.Equal(t, now, board.GeneratedAt)
	require.Len(t, board.Entries, 4, "only active employees are ranked")

	order := make([]uuid.UUID, 0, len(board.Entries))
	for i, e := range board.Entries {
		assert.Equal(t, i+1, e.Rank)
		order = append(order, e.UserID)
	}
	// zero scores tie; the lower user ID ranks first
	assert.Equal(t, []uuid.UUID{userA, userC, userD, userB}, order)

	a := board.Entries[0]
	assert.Equal(t, 7.0, a.AverageProgressScore)
	assert.Equal(t, 33.3, a.UpdateConsistency, "two of six work days between Oct 7 and Oct 14")
	assert.Equal(t, 2.0, a.ProjectContributions)
	assert.InDelta(t, 4.0, a.TotalScore, 1e-9)
	assert.Equal(t, 2, a.CurrentStreak)
	require.NotNil(t, a.LastUpdated)
	assert.Equal(t, today, *a.LastUpdated)
	assert.Equal(t, "Ari", a.User.FirstName)
	assert.Equal(t, "Engineering", a.User.Department)

	c := board.Entries[1]
	assert.Equal(t, 8.0, c.InterviewPerformance, "mean of completed interviews with feedback")
	assert.InDelta(t, 1.6, c.TotalScore, 1e-9)
	assert.Nil(t, c.LastUpdated)

	for _, e := range board.Entries[2:] {
		assert.Equal(t, 0.0, e.TotalScore)
		assert.Zero(t, e.CurrentStreak)
	}
}

func TestGetLeaderboardIsDeterministic(t *testing.T) {
	svc := newService(seed())
	first, err := svc.GetLeaderboard(context.Background(), scoring.Monthly)
	require.NoError(t, err)
	second, err := svc.GetLeaderboard(context.Background(), scoring.Monthly)
	require.NoError(t, err)

	assert.Equal(t, first.Entries, second.Entries)
}

func TestGetLeaderboardFailsWhenAnyFetchFails(t *testing.T) {
	store := seed()
	store.projectsErr[userC] = errors.New("connection reset")

	board, err := newService(store).GetLeaderboard(context.Background(), scoring.Weekly)
	assert.Nil(t, board)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, http.StatusInternalServerError, apperror.MapErrorToStatus(err))

	store = seed()
	store.usersErr = errors.New("db down")
	_, err = newService(store).GetLeaderboard(context.Background(), scoring.Weekly)
	assert.Error(t, err)
}

func TestGetLeaderboardEmpty(t *testing.T) {
	board, err := newService(&fakeStore{}).GetLeaderboard(context.Background(), scoring.Quarterly)
	require.NoError(t, err)
	assert.Empty(t, board.Entries)
	assert.NotNil(t, board.Entries)
}

func TestGetUserRank(t *testing.T) {
	svc := newService(seed())

	entry, err := svc.GetUserRank(context.Background(), userC, scoring.Weekly)
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Rank)
	assert.Equal(t, userC, entry.UserID)

	_, err = svc.GetUserRank(context.Background(), uuid.New(), scoring.Weekly)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, MsgNotInLeaderboard, err.Error())
}

func TestRankEntries(t *testing.T) {
	entries := []dto.LeaderboardEntry{
		{UserID: userB, TotalScore: 5},
		{UserID: userA, TotalScore: 5},
		{UserID: userC, TotalScore: 9.1},
		{UserID: userD, TotalScore: 0},
	}

	rankEntries(entries)

	assert.Equal(t, userC, entries[0].UserID)
	assert.Equal(t, userA, entries[1].UserID)
	assert.Equal(t, userB, entries[2].UserID)
	assert.Equal(t, userD, entries[3].UserID)
	for i, e := range entries {
		assert.Equal(t, i+1, e.Rank)
	}
}
