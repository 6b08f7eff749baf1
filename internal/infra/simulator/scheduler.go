// Package simulator feeds synthetic readings into the monitor when no field
// stations are connected.
package simulator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/yanqian/salinity-watch/internal/domain/water"
	"github.com/yanqian/salinity-watch/pkg/util"
)

// Ingester is the slice of the monitor the simulator drives.
type Ingester interface {
	Ingest(ctx context.Context, reading water.Reading) (water.Reading, error)
	History(ctx context.Context) ([]water.Reading, error)
}

// Scheduler ticks the walker on a cron schedule.
type Scheduler struct {
	cfg      Config
	walker   *Walker
	ingester Ingester
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

// NewScheduler builds a scheduler; nothing runs until Start.
func NewScheduler(cfg Config, ingester Ingester, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		walker:   NewWalker(cfg),
		ingester: ingester,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "simulator.scheduler"),
		now:      util.NowUTC,
	}
}

// Enabled reports whether Start will schedule anything.
func (s *Scheduler) Enabled() bool {
	return s.cfg.Enabled
}

// Start seeds an empty window and schedules the walk. Jobs run with ctx.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.cfg.Enabled {
		s.logger.Info("simulator disabled")
		return nil
	}
	if s.cfg.SeedHistory {
		if err := s.seed(ctx); err != nil {
			return err
		}
	}
	if _, err := s.cron.AddFunc(s.cfg.Schedule, func() { s.Tick(ctx) }); err != nil {
		return fmt.Errorf("schedule simulator %q: %w", s.cfg.Schedule, err)
	}
	s.cron.Start()
	s.logger.Info("simulator scheduled", "schedule", s.cfg.Schedule, "seed", s.cfg.Seed)
	return nil
}

// Stop halts the schedule and waits for a running tick to finish.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Tick ingests one synthetic reading.
func (s *Scheduler) Tick(ctx context.Context) {
	reading := s.walker.Next(s.now())
	if _, err := s.ingester.Ingest(ctx, reading); err != nil {
		s.logger.Error("simulated reading rejected", "error", err)
	}
}

func (s *Scheduler) seed(ctx context.Context) error {
	history, err := s.ingester.History(ctx)
	if err != nil {
		return fmt.Errorf("inspect window: %w", err)
	}
	if len(history) > 0 {
		return nil
	}
	for _, r := range DashboardHistory() {
		if _, err := s.ingester.Ingest(ctx, r); err != nil {
			return fmt.Errorf("seed window: %w", err)
		}
	}
	s.logger.Info("window seeded with dashboard history")
	return nil
}
