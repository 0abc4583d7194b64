// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"haircare-match-service/internal/app/service"
	"haircare-match-service/pkg/locker"
)

// RescoreScheduler periodically recomputes every user's published match
// scores, with distributed locking so only one instance runs a pass at a
// time. Periodic passes pick up catalog changes and interactions recorded
// by users whose profiles differ from the entity's own viewers.
type RescoreScheduler struct {
	matchService *service.MatchService
	interval     time.Duration
	timeout      time.Duration
	logger       *zap.Logger
	locker       locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// RescoreConfig holds rescore scheduler configuration.
type RescoreConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewRescoreScheduler creates a new RescoreScheduler with distributed
// locking support.
func NewRescoreScheduler(
	matchSvc *service.MatchService,
	cfg RescoreConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *RescoreScheduler {
	return &RescoreScheduler{
		matchService: matchSvc,
		interval:     cfg.Interval,
		timeout:      cfg.Timeout,
		logger:       logger,
		locker:       locker,
	}
}

// Start begins the background rescore job.
func (s *RescoreScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting rescore scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (s *RescoreScheduler) Stop() {
	s.logger.Info("stopping rescore scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("rescore scheduler stopped")
}

// run is the main loop of the scheduler.
func (s *RescoreScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	// Run immediately if configured
	if runOnStartup {
		s.executeRescore()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeRescore()
		}
	}
}

// executeRescore performs a full rescore pass with distributed locking and
// timeout.
//
// Locking behavior:
//   - Lock TTL = interval duration (cooldown model, not timeout)
//   - Success: Lock held for full interval to prevent duplicate passes
//   - Failure: Lock released immediately to allow retry by another instance
func (s *RescoreScheduler) executeRescore() {
	const lockKey = "rescore:scheduler:lock"

	// Try to acquire lock with interval-based TTL (cooldown model)
	acquired, err := s.locker.Acquire(s.ctx, lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire distributed lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("another instance is running a rescore pass, skipping execution")

		return
	}

	// Lock acquired - run rescore with timeout
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	results, err := s.matchService.RescoreAll(ctx)
	if err != nil {
		// Release lock immediately on error (allow immediate retry)
		if relErr := s.locker.Release(s.ctx, lockKey); relErr != nil {
			s.logger.Error("failed to release lock after rescore error", zap.Error(relErr))
		}
		s.logger.Error("rescore pass failed, lock released for retry", zap.Error(err))

		return
	}

	// Analyze results
	usersRescored := 0
	usersFailed := 0

	for _, r := range results {
		if r.Error != nil {
			usersFailed++
			s.logger.Warn("user rescore failed",
				zap.String("user_id", r.UserID),
				zap.Error(r.Error),
			)
		} else {
			usersRescored++
		}
	}

	if usersFailed > 0 {
		// Release lock immediately on partial failure (allow immediate retry)
		if err := s.locker.Release(s.ctx, lockKey); err != nil {
			s.logger.Error("failed to release lock after rescore errors", zap.Error(err))
		}
		s.logger.Info("rescore pass completed with errors, lock released for retry",
			zap.Int("users_rescored", usersRescored),
			zap.Int("users_failed", usersFailed),
		)
	} else {
		// Lock will expire naturally after interval (cooldown period)
		s.logger.Info("rescore pass completed successfully, lock held for cooldown",
			zap.Int("users_rescored", usersRescored),
			zap.Duration("cooldown", s.interval),
		)
	}
}
