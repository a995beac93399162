// Package cron drives the periodic schedule and scoreboard runs in-process,
// mirroring the hosted cron triggers so the service self-heals without an
// external scheduler.
package cron

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"chainlink-service/internal/app/schedule"
	"chainlink-service/internal/app/scoreboard"
	"chainlink-service/internal/domain"
	"chainlink-service/internal/logging"
)

// readyFailureThreshold is how many consecutive failed cycles mark the
// scheduler not ready.
const readyFailureThreshold = 3

// Status describes the recent health of the scheduled runs.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the scheduler has had a recent success and is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailureThreshold
}

// Scheduler registers the per-league schedule and scoreboard jobs on cron
// expressions and tracks their health.
type Scheduler struct {
	schedule   *schedule.Service
	scoreboard *scoreboard.Service
	leagues    []domain.League
	logger     *slog.Logger

	scheduleSpec   string
	scoreboardSpec string

	cron     *cron.Cron
	startMu  sync.Mutex
	started  bool
	stopOnce sync.Once

	statusMu sync.RWMutex
	status   Status
}

// Config holds the cron expressions driving each job.
type Config struct {
	ScheduleSpec   string
	ScoreboardSpec string
}

func New(scheduleSvc *schedule.Service, scoreboardSvc *scoreboard.Service, leagues []domain.League, cfg Config, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		schedule:       scheduleSvc,
		scoreboard:     scoreboardSvc,
		leagues:        leagues,
		logger:         logger,
		scheduleSpec:   cfg.ScheduleSpec,
		scoreboardSpec: cfg.ScoreboardSpec,
		cron:           cron.New(),
	}
}

// Start registers the jobs and begins the cron loop. An initial schedule
// pass runs immediately so the day cache is warm before the first
// scoreboard tick.
func (s *Scheduler) Start(ctx context.Context) error {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return nil
	}
	s.started = true
	s.startMu.Unlock()

	if _, err := s.cron.AddFunc(s.scheduleSpec, func() { s.runSchedule(ctx) }); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.scoreboardSpec, func() { s.runScoreboard(ctx) }); err != nil {
		return err
	}

	go s.runSchedule(ctx)
	s.cron.Start()
	logging.Info(s.logger, "scheduler started",
		"schedule_spec", s.scheduleSpec,
		"scoreboard_spec", s.scoreboardSpec,
		logging.FieldCount, len(s.leagues))
	return nil
}

// Stop halts the cron loop and waits for in-flight jobs to finish.
func (s *Scheduler) Stop(ctx context.Context) error {
	var err error
	s.stopOnce.Do(func() {
		done := s.cron.Stop().Done()
		select {
		case <-done:
		case <-ctx.Done():
			err = ctx.Err()
		}
		logging.Info(s.logger, "scheduler stopped")
	})
	return err
}

func (s *Scheduler) runSchedule(ctx context.Context) {
	s.recordAttempt()
	var failed error
	for _, league := range s.leagues {
		if _, err := s.schedule.Run(ctx, league); err != nil {
			failed = err
		}
	}
	s.recordOutcome(failed)
}

func (s *Scheduler) runScoreboard(ctx context.Context) {
	s.recordAttempt()
	var failed error
	for _, league := range s.leagues {
		_, err := s.scoreboard.Run(ctx, league)
		if errors.Is(err, scoreboard.ErrNoCachedDay) {
			// No slate yet for this league today; the next schedule run
			// will seed one.
			continue
		}
		if err != nil {
			failed = err
		}
	}
	s.recordOutcome(failed)
}

func (s *Scheduler) recordAttempt() {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status.LastAttempt = time.Now()
}

func (s *Scheduler) recordOutcome(err error) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	if err != nil {
		s.status.ConsecutiveFailures++
		s.status.LastError = err.Error()
		return
	}
	s.status.ConsecutiveFailures = 0
	s.status.LastError = ""
	s.status.LastSuccess = time.Now()
}

// Status returns a snapshot of the scheduler's recent health.
func (s *Scheduler) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}
