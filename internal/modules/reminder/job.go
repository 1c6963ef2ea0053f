package reminder

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"trackzen.io/backend/internal/entity"
	"trackzen.io/backend/internal/modules/leaderboard/scoring"
)

const JobName = "update_reminder"

type EmployeeLister interface {
	FindActiveByRole(ctx context.Context, role string) ([]*entity.User, error)
}

type SubmissionLister interface {
	FindUserIDsForDay(ctx context.Context, day time.Time) ([]uuid.UUID, error)
}

type Notifier interface {
	CreateNotification(ctx context.Context, notification *entity.Notification) error
}

// Job notifies every active employee who has not submitted today's update.
type Job struct {
	users    EmployeeLister
	updates  SubmissionLister
	notifier Notifier
	spec     string
	loc      *time.Location
	now      func() time.Time
}

func NewJob(users EmployeeLister, updates SubmissionLister, notifier Notifier, spec string, loc *time.Location) *Job {
	if loc == nil {
		loc = time.Local
	}
	return &Job{
		users:    users,
		updates:  updates,
		notifier: notifier,
		spec:     spec,
		loc:      loc,
		now:      time.Now,
	}
}

func (j *Job) Name() string     { return JobName }
func (j *Job) Schedule() string { return j.spec }

// Run sends reminders. A failed notification is logged and skipped; Run
// only fails when the recipients cannot be determined.
func (j *Job) Run(ctx context.Context) error {
	today := scoring.CivilDate(j.now().In(j.loc))
	if wd := today.Weekday(); wd == time.Saturday || wd == time.Sunday {
		log.Printf("⏭️ [%s] Skipping weekend", JobName)
		return nil
	}

	employees, err := j.users.FindActiveByRole(ctx, entity.RoleEmployee)
	if err != nil {
		return fmt.Errorf("list employees: %w", err)
	}

	submitted, err := j.updates.FindUserIDsForDay(ctx, today)
	if err != nil {
		return fmt.Errorf("list submissions: %w", err)
	}
	done := make(map[uuid.UUID]struct{}, len(submitted))
	for _, id := range submitted {
		done[id] = struct{}{}
	}

	sent := 0
	for _, u := range employees {
		if _, ok := done[u.ID]; ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		n := &entity.Notification{
			UserID:     u.ID,
			EntityType: "update",
			Type:       entity.NotificationUpdateReminder,
			Message:    fmt.Sprintf("Hi %s, you have not submitted your daily update for %s yet.", u.FirstName, today.Format("Mon 02 Jan")),
		}
		if err := j.notifier.CreateNotification(ctx, n); err != nil {
			log.Printf("⚠️ [%s] Failed to remind %s: %v", JobName, u.ID, err)
			continue
		}
		sent++
	}

	log.Printf("📨 [%s] Sent %d reminders (%d employees, %d already submitted)", JobName, sent, len(employees), len(done))
	return nil
}
