// Package scheduler runs the periodic housekeeping jobs: closing lobbies
// nobody ever joined and flagging players whose heartbeat went quiet.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/vocduel/internal/repository"
)

// Sweeper intervals. Liveness uses a tighter cutoff than room staleness
// because a stuck lobby is harmless while a ghost seat blocks a round.
const (
	sweepInterval    = 1 * time.Minute
	disconnectCutoff = 30 * time.Second
	DefaultStaleMins = 30
)

// Sweeper owns the background jobs.
type Sweeper struct {
	versus  repository.VersusRoomRepository
	reverse repository.ReverseRoomRepository
	logger  *logrus.Logger

	staleAfter time.Duration
	cron       *gocron.Scheduler
}

// NewSweeper builds the sweeper; staleMinutes <= 0 falls back to the
// default.
func NewSweeper(versus repository.VersusRoomRepository, reverse repository.ReverseRoomRepository, logger *logrus.Logger, staleMinutes int) *Sweeper {
	if staleMinutes <= 0 {
		staleMinutes = DefaultStaleMins
	}
	return &Sweeper{
		versus:     versus,
		reverse:    reverse,
		logger:     logger,
		staleAfter: time.Duration(staleMinutes) * time.Minute,
		cron:       gocron.NewScheduler(time.UTC),
	}
}

// Start schedules the jobs and runs them asynchronously.
func (s *Sweeper) Start() error {
	if _, err := s.cron.Every(sweepInterval).Do(s.sweepRooms); err != nil {
		return err
	}
	if _, err := s.cron.Every(disconnectCutoff).Do(s.sweepLiveness); err != nil {
		return err
	}
	s.cron.StartAsync()
	s.logger.Info("room sweeper started")
	return nil
}

// Stop halts the jobs and waits for running ones to finish.
func (s *Sweeper) Stop() {
	s.cron.Stop()
	s.logger.Info("room sweeper stopped")
}

func (s *Sweeper) sweepRooms() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-s.staleAfter)
	if n, err := s.versus.FinishStaleWaiting(ctx, cutoff); err != nil {
		s.logger.WithError(err).Warn("versus stale sweep failed")
	} else if n > 0 {
		s.logger.WithField("rooms", n).Info("closed stale versus lobbies")
	}
	if n, err := s.reverse.FinishStaleWaiting(ctx, cutoff); err != nil {
		s.logger.WithError(err).Warn("reverse stale sweep failed")
	} else if n > 0 {
		s.logger.WithField("rooms", n).Info("closed stale reverse lobbies")
	}
}

func (s *Sweeper) sweepLiveness() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-disconnectCutoff)
	if n, err := s.reverse.MarkDisconnected(ctx, cutoff); err != nil {
		s.logger.WithError(err).Warn("liveness sweep failed")
	} else if n > 0 {
		s.logger.WithField("players", n).Info("flagged silent players")
	}
}
