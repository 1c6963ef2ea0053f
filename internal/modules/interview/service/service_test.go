package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"trackzen.io/backend/internal/entity"
	"trackzen.io/backend/internal/modules/interview/dto"
	"trackzen.io/backend/pkg/apperror"
)

type fakeInterviewRepo struct {
	interviews map[uuid.UUID]*entity.Interview
	feedback   map[uuid.UUID]*entity.Feedback
}

func newFakeRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{
		interviews: map[uuid.UUID]*entity.Interview{},
		feedback:   map[uuid.UUID]*entity.Feedback{},
	}
}

func (f *fakeInterviewRepo) Create(_ context.Context, i *entity.Interview) error {
	i.ID = uuid.New()
	f.interviews[i.ID] = i
	return nil
}

func (f *fakeInterviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Interview, error) {
	i, ok := f.interviews[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	cp := *i
	return &cp, nil
}

func (f *fakeInterviewRepo) FindForUser(_ context.Context, userID uuid.UUID) ([]*entity.Interview, error) {
	var out []*entity.Interview
	for _, i := range f.interviews {
		if i.CandidateID == userID || i.InterviewerID == userID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeInterviewRepo) FindByCandidate(_ context.Context, candidateID uuid.UUID) ([]*entity.Interview, error) {
	var out []*entity.Interview
	for _, i := range f.interviews {
		if i.CandidateID == candidateID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeInterviewRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	f.interviews[id].Status = status
	return nil
}

func (f *fakeInterviewRepo) CountByStatus(context.Context, string) (int64, error) { return 0, nil }

func (f *fakeInterviewRepo) CreateFeedback(_ context.Context, fb *entity.Feedback) error {
	f.feedback[fb.InterviewID] = fb
	return nil
}

func (f *fakeInterviewRepo) FindFeedbackByInterview(_ context.Context, id uuid.UUID) (*entity.Feedback, error) {
	return f.feedback[id], nil
}

type fakeUsers map[uuid.UUID]*entity.User

func (f fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, apperror.ErrNotFound
}

type recordingNotifier struct {
	sent []*entity.Notification
}

func (r *recordingNotifier) CreateNotification(_ context.Context, n *entity.Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

type fixture struct {
	svc       InterviewService
	repo      *fakeInterviewRepo
	notifier  *recordingNotifier
	manager   Actor
	candidate *entity.User
}

func newFixture() *fixture {
	candidate := &entity.User{ID: uuid.New(), IsActive: true, Role: entity.Role{Name: entity.RoleEmployee}}
	repo := newFakeRepo()
	notifier := &recordingNotifier{}
	return &fixture{
		svc:       NewInterviewService(repo, fakeUsers{candidate.ID: candidate}, notifier),
		repo:      repo,
		notifier:  notifier,
		manager:   Actor{ID: uuid.New(), Role: entity.RoleManager},
		candidate: candidate,
	}
}

func (f *fixture) schedule(t *testing.T) *entity.Interview {
	t.Helper()
	i, err := f.svc.Schedule(context.Background(), f.manager, dto.ScheduleInput{
		CandidateID: f.candidate.ID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
		Topic:       "System design",
	})
	require.NoError(t, err)
	return i
}

func TestSchedule(t *testing.T) {
	f := newFixture()
	i := f.schedule(t)

	assert.Equal(t, entity.InterviewScheduled, i.Status)
	assert.Equal(t, f.manager.ID, i.InterviewerID)
	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, f.candidate.ID, f.notifier.sent[0].UserID)
	assert.Equal(t, entity.NotificationInterviewScheduled, f.notifier.sent[0].Type)

	t.Run("past date", func(t *testing.T) {
		_, err := f.svc.Schedule(context.Background(), f.manager, dto.ScheduleInput{
			CandidateID: f.candidate.ID,
			ScheduledAt: time.Now().Add(-time.Hour),
		})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})

	t.Run("unknown candidate", func(t *testing.T) {
		_, err := f.svc.Schedule(context.Background(), f.manager, dto.ScheduleInput{
			CandidateID: uuid.New(),
			ScheduledAt: time.Now().Add(time.Hour),
		})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		ok       bool
	}{
		{entity.InterviewScheduled, entity.InterviewInProgress, true},
		{entity.InterviewScheduled, entity.InterviewCancelled, true},
		{entity.InterviewScheduled, entity.InterviewCompleted, false},
		{entity.InterviewInProgress, entity.InterviewCompleted, true},
		{entity.InterviewInProgress, entity.InterviewCancelled, true},
		{entity.InterviewCompleted, entity.InterviewScheduled, false},
		{entity.InterviewCancelled, entity.InterviewInProgress, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture()
	i := f.schedule(t)
	ctx := context.Background()

	_, err := f.svc.UpdateStatus(ctx, Actor{ID: f.candidate.ID, Role: entity.RoleEmployee}, i.ID, entity.InterviewInProgress)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = f.svc.UpdateStatus(ctx, f.manager, i.ID, entity.InterviewCompleted)
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	updated, err := f.svc.UpdateStatus(ctx, f.manager, i.ID, entity.InterviewInProgress)
	require.NoError(t, err)
	assert.Equal(t, entity.InterviewInProgress, updated.Status)
}

func TestSubmitFeedback(t *testing.T) {
	f := newFixture()
	i := f.schedule(t)
	ctx := context.Background()
	input := dto.FeedbackInput{OverallRating: 8.5, Comments: "<i>Solid</i> answers"}

	_, err := f.svc.SubmitFeedback(ctx, f.manager, i.ID, input)
	assert.ErrorIs(t, err, apperror.ErrBadRequest, "interview not completed yet")

	_, err = f.svc.UpdateStatus(ctx, f.manager, i.ID, entity.InterviewInProgress)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, f.manager, i.ID, entity.InterviewCompleted)
	require.NoError(t, err)

	_, err = f.svc.SubmitFeedback(ctx, Actor{ID: uuid.New(), Role: entity.RoleManager}, i.ID, input)
	assert.ErrorIs(t, err, apperror.ErrForbidden)

	fb, err := f.svc.SubmitFeedback(ctx, f.manager, i.ID, input)
	require.NoError(t, err)
	assert.Equal(t, 8.5, fb.OverallRating)
	assert.Equal(t, "Solid answers", fb.Comments)
	assert.Equal(t, entity.NotificationFeedbackReceived, f.notifier.sent[len(f.notifier.sent)-1].Type)

	_, err = f.svc.SubmitFeedback(ctx, f.manager, i.ID, input)
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = f.svc.SubmitFeedback(ctx, f.manager, i.ID, dto.FeedbackInput{OverallRating: 0})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestGetHidesOtherUsersInterviews(t *testing.T) {
	f := newFixture()
	i := f.schedule(t)
	ctx := context.Background()

	_, err := f.svc.Get(ctx, Actor{ID: f.candidate.ID, Role: entity.RoleEmployee}, i.ID)
	assert.NoError(t, err)

	_, err = f.svc.Get(ctx, Actor{ID: uuid.New(), Role: entity.RoleEmployee}, i.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = f.svc.Get(ctx, Actor{ID: uuid.New(), Role: entity.RoleAdmin}, i.ID)
	assert.NoError(t, err)
}
