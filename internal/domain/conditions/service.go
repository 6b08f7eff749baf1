// Package conditions turns a window of readings into summary statistics and
// a short narrative about trend, spikes and temperature risk.
package conditions

import (
	"math"

	"github.com/yanqian/salinity-watch/internal/domain/water"
	"github.com/yanqian/salinity-watch/pkg/util"
)

// trendPlaces absorbs float noise so one-decimal sensor values subtract exactly.
const trendPlaces = 6

// Analyzer is stateless; Analyze is a pure function of its argument.
type Analyzer struct {
	minReadings int
	rules       []rule
}

// NewAnalyzer builds an analyzer. MinReadings below 1 is treated as 1.
func NewAnalyzer(cfg Config) *Analyzer {
	minReadings := cfg.MinReadings
	if minReadings < 1 {
		minReadings = 1
	}
	return &Analyzer{minReadings: minReadings, rules: defaultRules}
}

// Analyze evaluates history, ordered oldest to newest. A short history yields
// the insufficient-data report; only invalid readings are an error.
func (a *Analyzer) Analyze(history []water.Reading) (Report, error) {
	if len(history) < a.minReadings {
		return Report{Summary: SummaryInsufficient, Insights: []string{}}, nil
	}
	if err := water.ValidateAll(history); err != nil {
		return Report{}, err
	}

	stats := summarize(history)
	report := Report{
		Summary:  SummaryStable,
		Insights: make([]string, 0, len(a.rules)),
		Stats:    &stats,
	}
	priority := priorityDefault
	for _, r := range a.rules {
		f, fired := r.eval(stats)
		if !fired {
			continue
		}
		report.Insights = append(report.Insights, f.insight)
		if f.summary != "" && f.priority >= priority {
			report.Summary = f.summary
			priority = f.priority
		}
	}
	return report, nil
}

func summarize(history []water.Reading) Stats {
	latest := history[len(history)-1]
	minVal, maxVal := math.Inf(1), math.Inf(-1)
	sum := 0.0
	for _, r := range history {
		sum += r.Salinity
		minVal = math.Min(minVal, r.Salinity)
		maxVal = math.Max(maxVal, r.Salinity)
	}
	return Stats{
		Count:  len(history),
		Latest: latest,
		Mean:   sum / float64(len(history)),
		Min:    minVal,
		Max:    maxVal,
		Trend:  util.RoundTo(latest.Salinity-history[0].Salinity, trendPlaces),
	}
}
