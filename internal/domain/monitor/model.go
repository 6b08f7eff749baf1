package monitor

import (
	"github.com/yanqian/salinity-watch/internal/domain/water"
)

// Water classes reported on the status card.
const (
	WaterFreshwater = "freshwater"
	WaterBrackish   = "brackish"
	WaterSaline     = "saline"
	WaterUnknown    = "unknown"
)

const (
	freshwaterCeiling = 5.0
	brackishCeiling   = 30.0
)

// CheckRequest asks for a compatibility verdict. A nil Reading means the
// latest stored reading.
type CheckRequest struct {
	Species string         `json:"species"`
	Reading *water.Reading `json:"reading,omitempty"`
}

// AnalyzeRequest asks for a condition report. A nil History means the stored window.
type AnalyzeRequest struct {
	History []water.Reading `json:"history,omitempty"`
}

// StatusSummary is the headline view of the river right now.
type StatusSummary struct {
	Latest     *water.Reading `json:"latest,omitempty"`
	WaterClass string         `json:"waterClass"`
	Headline   string         `json:"headline"`
	Summary    string         `json:"summary"`
	Readings   int            `json:"readings"`
}

// ClassifyWater bands a salinity value in ppt.
func ClassifyWater(salinity float64) string {
	switch {
	case salinity <= freshwaterCeiling:
		return WaterFreshwater
	case salinity <= brackishCeiling:
		return WaterBrackish
	default:
		return WaterSaline
	}
}

func headline(class string) string {
	switch class {
	case WaterFreshwater:
		return "Freshwater"
	case WaterBrackish:
		return "Brackish Water"
	case WaterSaline:
		return "Saltwater Intrusion"
	default:
		return "Awaiting Data"
	}
}
