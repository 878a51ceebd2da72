package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DelaySweeper drives the delay evaluator on a wall-clock timer: one sweep
// after a short warm-up, then one per interval. A single goroutine runs the
// sweeps serially, so they cannot overlap, and cancelling the context stops
// the timer cleanly.
type DelaySweeper struct {
	delays   DelayService
	warmup   time.Duration
	interval time.Duration
	logger   zerolog.Logger
}

// NewDelaySweeper builds the sweep scheduler.
func NewDelaySweeper(delays DelayService, warmup, interval time.Duration, logger zerolog.Logger) *DelaySweeper {
	return &DelaySweeper{
		delays:   delays,
		warmup:   warmup,
		interval: interval,
		logger:   logger.With().Str("component", "delay_sweeper").Logger(),
	}
}

// Start launches the sweep loop in its own goroutine and returns immediately.
func (s *DelaySweeper) Start(ctx context.Context) {
	go s.run(ctx)
}

func (s *DelaySweeper) run(ctx context.Context) {
	s.logger.Info().
		Dur("warmup", s.warmup).
		Dur("interval", s.interval).
		Msg("delay sweeper scheduled")

	select {
	case <-time.After(s.warmup):
	case <-ctx.Done():
		s.logger.Info().Msg("delay sweeper stopped before first sweep")
		return
	}

	s.delays.SweepAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.delays.SweepAll(ctx)
		case <-ctx.Done():
			s.logger.Info().Msg("delay sweeper stopped")
			return
		}
	}
}
