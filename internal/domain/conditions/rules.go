package conditions

import (
	"fmt"
	"math"

	"github.com/yanqian/salinity-watch/pkg/util"
)

const (
	pureFreshwaterBelow = 0.5
	freshwaterCeiling   = 5.0
	stableTrendBelow    = 0.5
	spikeFactor         = 1.5
	heatRiskAbove       = 32.0
	coldBelow           = 20.0
)

// Summary override priorities. A later finding replaces the summary only when
// its priority is at least the current one.
const (
	priorityDefault = iota
	priorityElevated
	priorityRising
	prioritySpike
)

// finding is one insight line and an optional summary override.
type finding struct {
	insight  string
	summary  string
	priority int
}

type rule struct {
	name string
	eval func(s Stats) (finding, bool)
}

// defaultRules run in this order and every one that fires adds a line.
var defaultRules = []rule{
	{name: "salinity_level", eval: levelRule},
	{name: "salinity_trend", eval: trendRule},
	{name: "salinity_spike", eval: spikeRule},
	{name: "temperature_context", eval: temperatureRule},
}

func levelRule(s Stats) (finding, bool) {
	latest := s.Latest.Salinity
	switch {
	case latest < pureFreshwaterBelow:
		return finding{insight: "Salinity is extremely low (Pure Freshwater). Ideal for sensitive freshwater species."}, true
	case latest <= freshwaterCeiling:
		return finding{insight: "Salinity is within standard Freshwater range. Optimal for Tilapia and Hito."}, true
	default:
		return finding{
			insight:  fmt.Sprintf("Salinity is elevated (%s ppt). Brackish conditions detected.", util.FormatNumber(latest)),
			summary:  SummaryElevated,
			priority: priorityElevated,
		}, true
	}
}

// trendRule treats a delta of exactly 0.5 as rising.
func trendRule(s Stats) (finding, bool) {
	switch {
	case math.Abs(s.Trend) < stableTrendBelow:
		return finding{insight: "Conditions are stable with minimal fluctuation over 24h."}, true
	case s.Trend > 0:
		return finding{
			insight:  fmt.Sprintf("Salinity is rising (+%s ppt). Monitoring recommended.", oneDecimal(s.Trend)),
			summary:  SummaryRising,
			priority: priorityRising,
		}, true
	default:
		return finding{insight: fmt.Sprintf("Salinity is dropping (%s ppt). Influx of freshwater likely.", oneDecimal(s.Trend))}, true
	}
}

func spikeRule(s Stats) (finding, bool) {
	if s.Latest.Salinity <= s.Mean*spikeFactor {
		return finding{}, false
	}
	return finding{
		insight:  "Sudden spike detected in recent readings.",
		summary:  SummarySpike,
		priority: prioritySpike,
	}, true
}

func temperatureRule(s Stats) (finding, bool) {
	temp := util.FormatNumber(s.Latest.Temperature)
	switch {
	case s.Latest.Temperature > heatRiskAbove:
		return finding{insight: fmt.Sprintf("Water temperature is high (%s°C). Risk of oxygen depletion.", temp)}, true
	case s.Latest.Temperature < coldBelow:
		return finding{insight: fmt.Sprintf("Water temperature is low (%s°C). Feeding activity may decrease.", temp)}, true
	default:
		return finding{insight: fmt.Sprintf("Temperature (%s°C) is optimal for biological activity.", temp)}, true
	}
}

func oneDecimal(v float64) string {
	return fmt.Sprintf("%.1f", util.RoundTo(v, 1))
}
