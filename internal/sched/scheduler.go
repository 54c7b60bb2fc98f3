// Package sched provides the recurring one-second driver that advances the
// timer collection. It wraps gocron so the tick loop has an explicit
// start/stop lifecycle independent of any rendering concern.
package sched

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// DefaultInterval is the tick cadence: one whole second.
const DefaultInterval = time.Second

type Scheduler struct {
	scheduler gocron.Scheduler
}

// New creates a scheduler firing task every interval once started.
func New(interval time.Duration, task func()) (*Scheduler, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create gocron scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName("tick"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("create tick job: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// Start begins ticking.
func (s *Scheduler) Start() {
	slog.Info("starting tick scheduler")
	s.scheduler.Start()
}

// Stop cancels the tick loop and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() error {
	slog.Info("stopping tick scheduler")
	return s.scheduler.Shutdown()
}
