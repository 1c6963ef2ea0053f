package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a unit of background work. An empty Schedule registers the job for
// on-demand runs only.
type Job interface {
	Name() string
	Schedule() string
	Run(ctx context.Context) error
}

var ErrUnknownJob = errors.New("unknown job")

// Scheduler runs registered jobs on their cron schedules.
type Scheduler struct {
	cron    *cron.Cron
	jobs    []Job
	timeout time.Duration
}

func New(loc *time.Location, timeout time.Duration) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		jobs:    make([]Job, 0),
		timeout: timeout,
	}
}

// Register adds job and schedules it when it has a cron spec. An invalid spec
// is returned and the job is not registered.
func (s *Scheduler) Register(job Job) error {
	spec := job.Schedule()
	if spec == "" {
		s.jobs = append(s.jobs, job)
		log.Printf("📝 [%s] Registered as on-demand job (no schedule)", job.Name())
		return nil
	}

	if _, err := s.cron.AddFunc(spec, func() { s.execute(job) }); err != nil {
		return fmt.Errorf("schedule %s: %w", job.Name(), err)
	}
	s.jobs = append(s.jobs, job)
	log.Printf("📅 [%s] Scheduled with cron: %s", job.Name(), spec)
	return nil
}

func (s *Scheduler) execute(job Job) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log.Printf("🤖 [%s] Starting scheduled job...", job.Name())
	if err := job.Run(ctx); err != nil {
		log.Printf("❌ [%s] Job failed: %v", job.Name(), err)
		return
	}
	log.Printf("✅ [%s] Job completed successfully", job.Name())
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("🚀 Scheduler started with %d registered jobs", len(s.jobs))
}

// Stop halts the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 Scheduler stopped")
}

// RunByName runs a registered job immediately.
func (s *Scheduler) RunByName(ctx context.Context, name string) error {
	for _, job := range s.jobs {
		if job.Name() == name {
			log.Printf("🎯 [%s] Running on-demand execution...", name)
			return job.Run(ctx)
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownJob, name)
}

func (s *Scheduler) Jobs() []string {
	names := make([]string, len(s.jobs))
	for i, job := range s.jobs {
		names[i] = job.Name()
	}
	return names
}
