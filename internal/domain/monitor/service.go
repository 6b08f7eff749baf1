// Package monitor is the application layer over the river window: it ingests
// readings, answers species checks against the latest reading and narrates
// the recent history.
package monitor

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/yanqian/salinity-watch/internal/domain/compat"
	"github.com/yanqian/salinity-watch/internal/domain/conditions"
	"github.com/yanqian/salinity-watch/internal/domain/species"
	"github.com/yanqian/salinity-watch/internal/domain/water"
	apperrors "github.com/yanqian/salinity-watch/pkg/errors"
	"github.com/yanqian/salinity-watch/pkg/util"
)

// Service exposes the monitoring use cases to transports and feeders.
type Service interface {
	Ingest(ctx context.Context, reading water.Reading) (water.Reading, error)
	Current(ctx context.Context) (water.Reading, error)
	History(ctx context.Context) ([]water.Reading, error)
	CheckSpecies(ctx context.Context, req CheckRequest) (compat.Verdict, error)
	Analyze(ctx context.Context, req AnalyzeRequest) (conditions.Report, error)
	Species(ctx context.Context) []species.Listing
	Subscribe(ctx context.Context) (<-chan water.Reading, func())
	Status(ctx context.Context) (StatusSummary, error)
}

type service struct {
	table      *species.Table
	classifier *compat.Classifier
	analyzer   *conditions.Analyzer
	store      ReadingStore
	hub        *hub
	logger     *slog.Logger
	now        func() time.Time
}

// NewService wires the monitor domain.
func NewService(table *species.Table, classifier *compat.Classifier, analyzer *conditions.Analyzer, store ReadingStore, logger *slog.Logger) Service {
	return &service{
		table:      table,
		classifier: classifier,
		analyzer:   analyzer,
		store:      store,
		hub:        newHub(),
		logger:     logger.With("component", "monitor.service"),
		now:        util.NowUTC,
	}
}

// Ingest stamps readings that arrive without a label.
func (s *service) Ingest(ctx context.Context, reading water.Reading) (water.Reading, error) {
	reading.Time = strings.TrimSpace(reading.Time)
	if reading.Time == "" {
		reading.Time = util.ClockLabel(s.now())
	}
	if err := reading.Validate(); err != nil {
		return water.Reading{}, err
	}
	if err := s.store.Append(ctx, reading); err != nil {
		return water.Reading{}, apperrors.Wrap(apperrors.CodeStore, "failed to store reading", err)
	}
	if dropped := s.hub.publish(reading); dropped > 0 {
		s.logger.Warn("slow subscribers skipped reading", "dropped", dropped)
	}
	s.logger.Debug("reading ingested", "time", reading.Time, "salinity", reading.Salinity, "temperature", reading.Temperature)
	return reading, nil
}

func (s *service) Current(ctx context.Context) (water.Reading, error) {
	latest, ok, err := s.store.Latest(ctx)
	if err != nil {
		return water.Reading{}, apperrors.Wrap(apperrors.CodeStore, "failed to load latest reading", err)
	}
	if !ok {
		return water.Reading{}, apperrors.Wrap(apperrors.CodeNoData, "no readings recorded yet", nil)
	}
	return latest, nil
}

func (s *service) History(ctx context.Context) ([]water.Reading, error) {
	history, err := s.store.Recent(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStore, "failed to load reading history", err)
	}
	if history == nil {
		history = []water.Reading{}
	}
	return history, nil
}

func (s *service) CheckSpecies(ctx context.Context, req CheckRequest) (compat.Verdict, error) {
	query := strings.TrimSpace(req.Species)
	if query == "" {
		return compat.Verdict{}, apperrors.Wrap(apperrors.CodeInvalidInput, "species is required", nil)
	}
	reading := req.Reading
	if reading == nil {
		current, err := s.Current(ctx)
		if err != nil {
			return compat.Verdict{}, err
		}
		reading = &current
	}
	verdict, err := s.classifier.Check(query, reading)
	if err != nil {
		return compat.Verdict{}, err
	}
	s.logger.Info("species checked", "query", query, "species", verdict.Species, "status", verdict.Status)
	return verdict, nil
}

func (s *service) Analyze(ctx context.Context, req AnalyzeRequest) (conditions.Report, error) {
	history := req.History
	if history == nil {
		stored, err := s.History(ctx)
		if err != nil {
			return conditions.Report{}, err
		}
		history = stored
	}
	return s.analyzer.Analyze(history)
}

func (s *service) Species(_ context.Context) []species.Listing {
	return s.table.Listings()
}

// Subscribe streams readings ingested after the call. The subscription ends
// when ctx is done or the returned cancel is called.
func (s *service) Subscribe(ctx context.Context) (<-chan water.Reading, func()) {
	ch, unsubscribe := s.hub.subscribe()
	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(done)
			unsubscribe()
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()
	return ch, cancel
}

func (s *service) Status(ctx context.Context) (StatusSummary, error) {
	history, err := s.History(ctx)
	if err != nil {
		return StatusSummary{}, err
	}
	summary := StatusSummary{
		WaterClass: WaterUnknown,
		Headline:   headline(WaterUnknown),
		Summary:    conditions.SummaryInsufficient,
		Readings:   len(history),
	}
	if len(history) == 0 {
		return summary, nil
	}
	latest := history[len(history)-1]
	summary.Latest = &latest
	summary.WaterClass = ClassifyWater(latest.Salinity)
	summary.Headline = headline(summary.WaterClass)

	report, err := s.analyzer.Analyze(history)
	if err != nil {
		return StatusSummary{}, err
	}
	summary.Summary = report.Summary
	return summary, nil
}
