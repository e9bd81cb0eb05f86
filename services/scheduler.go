package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cppla/dailychallenge/models"
)

// Locker provides a lock shared between processes. Acquire reports ok=false
// when somebody else holds key.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

// SchedulerConfig tunes DailyScheduler.
type SchedulerConfig struct {
	LockTTL     time.Duration
	RetryDelay  time.Duration
	MaxAttempts int
}

// DailyScheduler triggers rotation at startup and at every UTC midnight.
// Runs never overlap within the process, and with a Locker not across processes either.
type DailyScheduler struct {
	rotation *RotationService
	clock    Clock
	locker   Locker
	cfg      SchedulerConfig
	log      *zap.Logger

	mu sync.Mutex
}

// NewDailyScheduler creates a scheduler. locker may be nil for single-instance deployments.
func NewDailyScheduler(rotation *RotationService, clock Clock, locker Locker, cfg SchedulerConfig, log *zap.Logger) *DailyScheduler {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 2 * time.Minute
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 30 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DailyScheduler{rotation: rotation, clock: clock, locker: locker, cfg: cfg, log: log}
}

// RunOnce rotates for the clock's current day unless a rotation is already running.
func (s *DailyScheduler) RunOnce(ctx context.Context) (*models.Challenge, error) {
	if !s.mu.TryLock() {
		return nil, ErrRotationInProgress
	}
	defer s.mu.Unlock()

	today := Today(s.clock)
	if s.locker != nil {
		release, ok, err := s.locker.Acquire(ctx, "rotation:lock:"+today.Format("2006-01-02"), s.cfg.LockTTL)
		switch {
		case err != nil:
			// Lock backend down: fall back to the in-process guard only.
			s.log.Warn("rotation lock unavailable", zap.Error(err))
		case !ok:
			return nil, ErrRotationInProgress
		default:
			defer release()
		}
	}
	return s.rotation.ActivateToday(ctx, today)
}

// Run performs the startup rotation and then one rotation per UTC day until ctx is done.
func (s *DailyScheduler) Run(ctx context.Context) error {
	s.runWithRetry(ctx)
	for {
		now := s.clock.Now()
		timer := time.NewTimer(NextMidnight(now).Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		s.runWithRetry(ctx)
	}
}

// Start runs the scheduler in a background goroutine.
func (s *DailyScheduler) Start(ctx context.Context) {
	go func() {
		if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.log.Error("rotation scheduler stopped", zap.Error(err))
		}
	}()
}

func (s *DailyScheduler) runWithRetry(ctx context.Context) {
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		_, err := s.RunOnce(ctx)
		if err == nil || errors.Is(err, ErrRotationInProgress) {
			return
		}
		s.log.Warn("rotation attempt failed", zap.Int("attempt", attempt), zap.Error(err))
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.cfg.RetryDelay):
		}
	}
	s.log.Error("rotation gave up; next attempt at the following day boundary or restart")
}
