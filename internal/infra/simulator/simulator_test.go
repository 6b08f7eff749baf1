package simulator

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/salinity-watch/internal/domain/water"
)

func TestWalkerIsDeterministic(t *testing.T) {
	at := time.Date(2026, 5, 1, 6, 0, 0, 0, time.UTC)
	a, b := NewWalker(testConfig()), NewWalker(testConfig())
	for i := 0; i < 50; i++ {
		require.Equal(t, a.Next(at), b.Next(at))
	}
}

func TestWalkerStaysInBounds(t *testing.T) {
	cfg := testConfig()
	cfg.SalinityStep = 5
	cfg.TemperatureStep = 5
	w := NewWalker(cfg)
	for i := 0; i < 500; i++ {
		r := w.Next(time.Now())
		require.GreaterOrEqual(t, r.Salinity, cfg.MinSalinity)
		require.LessOrEqual(t, r.Salinity, cfg.MaxSalinity)
		require.GreaterOrEqual(t, r.Temperature, cfg.MinTemperature)
		require.LessOrEqual(t, r.Temperature, cfg.MaxTemperature)
		require.NoError(t, r.Validate())
	}
}

func TestWalkerLabelsReadings(t *testing.T) {
	r := NewWalker(testConfig()).Next(time.Date(2026, 5, 1, 18, 5, 0, 0, time.UTC))
	require.Equal(t, "18:05", r.Time)
}

func TestStartSeedsEmptyWindow(t *testing.T) {
	ing := &fakeIngester{}
	s := NewScheduler(testConfig(), ing, newTestLogger())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Start(ctx))
	require.NoError(t, s.Stop(context.Background()))
	require.Equal(t, DashboardHistory(), ing.snapshot())
}

func TestStartKeepsExistingWindow(t *testing.T) {
	existing := water.Reading{Time: "07:00", Salinity: 3, Temperature: 27}
	ing := &fakeIngester{readings: []water.Reading{existing}}
	s := NewScheduler(testConfig(), ing, newTestLogger())

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))
	require.Equal(t, []water.Reading{existing}, ing.snapshot())
}

func TestStartDisabledDoesNothing(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	ing := &fakeIngester{}
	s := NewScheduler(cfg, ing, newTestLogger())

	require.False(t, s.Enabled())
	require.NoError(t, s.Start(context.Background()))
	require.Empty(t, ing.snapshot())
}

func TestStartRejectsBadSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Schedule = "every so often"
	s := NewScheduler(cfg, &fakeIngester{}, newTestLogger())
	require.Error(t, s.Start(context.Background()))
}

func TestTickIngestsNextReading(t *testing.T) {
	ing := &fakeIngester{}
	s := NewScheduler(testConfig(), ing, newTestLogger())
	s.now = func() time.Time { return time.Date(2026, 5, 1, 9, 15, 0, 0, time.UTC) }

	s.Tick(context.Background())
	got := ing.snapshot()
	require.Len(t, got, 1)
	require.Equal(t, "09:15", got[0].Time)
}

type fakeIngester struct {
	mu       sync.Mutex
	readings []water.Reading
}

func (f *fakeIngester) Ingest(_ context.Context, r water.Reading) (water.Reading, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.readings = append(f.readings, r)
	return r, nil
}

func (f *fakeIngester) History(_ context.Context) ([]water.Reading, error) {
	return f.snapshot(), nil
}

func (f *fakeIngester) snapshot() []water.Reading {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]water.Reading(nil), f.readings...)
}

func testConfig() Config {
	return Config{
		Enabled:          true,
		Schedule:         "@every 1h",
		Seed:             42,
		SeedHistory:      true,
		StartSalinity:    1.7,
		StartTemperature: 29.2,
		SalinityStep:     0.3,
		TemperatureStep:  0.4,
		MinSalinity:      0,
		MaxSalinity:      40,
		MinTemperature:   15,
		MaxTemperature:   36,
	}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
