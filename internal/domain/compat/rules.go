package compat

import (
	"fmt"
	"math"

	"github.com/yanqian/salinity-watch/internal/domain/species"
	"github.com/yanqian/salinity-watch/internal/domain/water"
	"github.com/yanqian/salinity-watch/pkg/util"
)

const (
	saltwaterLethalBelow  = 15.0
	freshwaterLethalAbove = 10.0
	extremeDeviation      = 10.0
)

// finding is what a rule contributes when it fires.
type finding struct {
	reason   string
	floor    Status
	terminal bool
}

// rule inspects one aspect of a profile/reading pair.
type rule struct {
	name string
	eval func(p species.Profile, r water.Reading) (finding, bool)
}

// defaultRules is evaluated in order. The water-type gates come first and
// stop evaluation, so a lethal verdict never collects range reasons.
var defaultRules = []rule{
	{name: "saltwater_gate", eval: saltwaterGate},
	{name: "freshwater_gate", eval: freshwaterGate},
	{name: "salinity_range", eval: salinityRange},
	{name: "temperature_range", eval: temperatureRange},
}

func saltwaterGate(p species.Profile, r water.Reading) (finding, bool) {
	if p.WaterType != species.Saltwater || r.Salinity >= saltwaterLethalBelow {
		return finding{}, false
	}
	return finding{
		reason:   fmt.Sprintf("Fatal: %s is a Saltwater species. Current freshwater (%s ppt) is lethal.", p.Name, util.FormatNumber(r.Salinity)),
		floor:    StatusDanger,
		terminal: true,
	}, true
}

func freshwaterGate(p species.Profile, r water.Reading) (finding, bool) {
	if p.WaterType != species.Freshwater || r.Salinity <= freshwaterLethalAbove {
		return finding{}, false
	}
	return finding{
		reason:   fmt.Sprintf("Fatal: %s is a Freshwater species. High salinity is lethal.", p.Name),
		floor:    StatusDanger,
		terminal: true,
	}, true
}

func salinityRange(p species.Profile, r water.Reading) (finding, bool) {
	if r.Salinity >= p.MinSalinity && r.Salinity <= p.MaxSalinity {
		return finding{}, false
	}
	floor := StatusWarning
	if math.Abs(r.Salinity-p.SalinityMidpoint()) > extremeDeviation {
		floor = StatusDanger
	}
	return finding{
		reason: fmt.Sprintf("Salinity (%s ppt) is outside ideal range (%s-%s ppt).",
			util.FormatNumber(r.Salinity), util.FormatNumber(p.MinSalinity), util.FormatNumber(p.MaxSalinity)),
		floor: floor,
	}, true
}

func temperatureRange(p species.Profile, r water.Reading) (finding, bool) {
	if r.Temperature >= p.MinTemp && r.Temperature <= p.MaxTemp {
		return finding{}, false
	}
	return finding{
		reason: fmt.Sprintf("Temp (%s°C) is outside optimal range (%s-%s°C).",
			util.FormatNumber(r.Temperature), util.FormatNumber(p.MinTemp), util.FormatNumber(p.MaxTemp)),
		floor: StatusWarning,
	}, true
}

func idealSalinity(p species.Profile) string {
	return fmt.Sprintf("%s–%s ppt", util.FormatNumber(p.MinSalinity), util.FormatNumber(p.MaxSalinity))
}

func idealTemp(p species.Profile) string {
	return fmt.Sprintf("%s–%s°C", util.FormatNumber(p.MinTemp), util.FormatNumber(p.MaxTemp))
}
