package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	robfig "github.com/robfig/cron/v3"
)

// Job represents a scheduled job
type Job struct {
	Name    string
	Spec    string
	Timeout time.Duration
	Fn      func(ctx context.Context) error
}

// Scheduler runs jobs on standard five-field cron specs in one location.
type Scheduler struct {
	cron   *robfig.Cron
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewScheduler creates a new cron scheduler evaluating specs in loc.
func NewScheduler(loc *time.Location) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	c := robfig.New(
		robfig.WithLocation(loc),
		robfig.WithChain(robfig.Recover(robfig.DefaultLogger), robfig.SkipIfStillRunning(robfig.DefaultLogger)),
	)
	return &Scheduler{
		cron:   c,
		jobs:   make([]Job, 0),
		ctx:    ctx,
		cancel: cancel,
	}
}

// ValidateSpec reports whether spec is a valid five-field cron expression.
func ValidateSpec(spec string) error {
	if _, err := robfig.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return nil
}

// AddJob adds a job to the scheduler
func (s *Scheduler) AddJob(name, spec string, timeout time.Duration, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job := Job{Name: name, Spec: spec, Timeout: timeout, Fn: fn}
	if _, err := s.cron.AddFunc(spec, func() { s.executeJob(job) }); err != nil {
		return fmt.Errorf("failed to register cron job %s: %w", name, err)
	}

	s.jobs = append(s.jobs, job)
	slog.Info("Cron job registered", "name", name, "spec", spec)
	return nil
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cron.Start()
	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop gracefully stops all scheduled jobs and waits for running ones.
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	<-s.cron.Stop().Done()
	slog.Info("Cron scheduler stopped")
}

// executeJob executes a job and logs results
func (s *Scheduler) executeJob(job Job) {
	ctx := s.ctx
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	if err := job.Fn(ctx); err != nil {
		slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
	} else {
		slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
	}
}

// RunOnce runs all jobs once (useful for testing)
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if err := job.Fn(ctx); err != nil {
			slog.Error("Cron job failed", "name", job.Name, "error", err)
		}
	}
}
