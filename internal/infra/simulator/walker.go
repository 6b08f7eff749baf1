package simulator

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/yanqian/salinity-watch/internal/domain/water"
	"github.com/yanqian/salinity-watch/pkg/util"
)

// Config shapes the synthetic river.
type Config struct {
	Enabled          bool
	Schedule         string
	Seed             int64
	SeedHistory      bool
	StartSalinity    float64
	StartTemperature float64
	SalinityStep     float64
	TemperatureStep  float64
	MinSalinity      float64
	MaxSalinity      float64
	MinTemperature   float64
	MaxTemperature   float64
}

// Walker is a bounded random walk over salinity and temperature. Values carry
// one decimal, like the field sensors.
type Walker struct {
	mu          sync.Mutex
	cfg         Config
	rng         *rand.Rand
	salinity    float64
	temperature float64
}

// NewWalker starts a walk at the configured values. The same seed always
// produces the same sequence.
func NewWalker(cfg Config) *Walker {
	return &Walker{
		cfg:         cfg,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		salinity:    clamp(cfg.StartSalinity, cfg.MinSalinity, cfg.MaxSalinity),
		temperature: clamp(cfg.StartTemperature, cfg.MinTemperature, cfg.MaxTemperature),
	}
}

// Next advances the walk one step and labels the reading with at.
func (w *Walker) Next(at time.Time) water.Reading {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.salinity = w.step(w.salinity, w.cfg.SalinityStep, w.cfg.MinSalinity, w.cfg.MaxSalinity)
	w.temperature = w.step(w.temperature, w.cfg.TemperatureStep, w.cfg.MinTemperature, w.cfg.MaxTemperature)
	return water.Reading{
		Time:        util.ClockLabel(at),
		Salinity:    w.salinity,
		Temperature: w.temperature,
	}
}

func (w *Walker) step(v, maxStep, lo, hi float64) float64 {
	delta := (w.rng.Float64()*2 - 1) * maxStep
	return util.RoundTo(clamp(v+delta, lo, hi), 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// DashboardHistory is the ten-point reading history the dashboard shipped
// with, oldest first.
func DashboardHistory() []water.Reading {
	return []water.Reading{
		{Time: "20:00", Salinity: 1.2, Temperature: 29.0},
		{Time: "22:00", Salinity: 1.1, Temperature: 28.8},
		{Time: "24:00", Salinity: 1.0, Temperature: 28.5},
		{Time: "02:00", Salinity: 1.3, Temperature: 28.2},
		{Time: "04:00", Salinity: 1.6, Temperature: 28.0},
		{Time: "06:00", Salinity: 1.6, Temperature: 28.5},
		{Time: "08:00", Salinity: 1.7, Temperature: 29.1},
		{Time: "10:00", Salinity: 1.7, Temperature: 29.4},
		{Time: "12:00", Salinity: 1.8, Temperature: 29.8},
		{Time: "14:00", Salinity: 1.7, Temperature: 29.2},
	}
}
