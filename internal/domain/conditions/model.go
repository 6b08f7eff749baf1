package conditions

import "github.com/yanqian/salinity-watch/internal/domain/water"

// Summaries emitted by the analyzer, lowest priority first.
const (
	SummaryInsufficient = "Insufficient data."
	SummaryStable       = "Water conditions are stable."
	SummaryElevated     = "Elevated salinity levels detected."
	SummaryRising       = "Rising salinity trend detected."
	SummarySpike        = "Warning: Salinity spike detected."
)

// Config tunes the analyzer.
type Config struct {
	// MinReadings is the shortest history that gets analyzed.
	MinReadings int
}

// Stats are the salinity statistics of one window.
type Stats struct {
	Count  int           `json:"count"`
	Latest water.Reading `json:"latest"`
	Mean   float64       `json:"mean"`
	Min    float64       `json:"min"`
	Max    float64       `json:"max"`
	Trend  float64       `json:"trend"`
}

// Report is the narrative produced for a window of readings.
type Report struct {
	Summary  string   `json:"summary"`
	Insights []string `json:"insights"`
	Stats    *Stats   `json:"stats,omitempty"`
}
