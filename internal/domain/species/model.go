// Package species holds the static tolerance table used to judge whether a
// fish can live in the monitored water.
package species

import "strings"

// WaterType classifies the salinity class a species naturally lives in.
type WaterType string

const (
	Freshwater WaterType = "Freshwater"
	Saltwater  WaterType = "Saltwater"
	Brackish   WaterType = "Brackish"
	Euryhaline WaterType = "Euryhaline"
)

// Valid reports whether the water type is one of the known classes.
func (w WaterType) Valid() bool {
	switch w {
	case Freshwater, Saltwater, Brackish, Euryhaline:
		return true
	default:
		return false
	}
}

// MatchMode selects how a free-text query is resolved to an alias.
type MatchMode string

const (
	// MatchFirst picks the first alias, in declaration order, contained in the query.
	MatchFirst MatchMode = "first"
	// MatchPriority prefers an exact alias, then the longest contained alias.
	MatchPriority MatchMode = "priority"
)

// ParseMatchMode maps a config string to a MatchMode, defaulting to MatchPriority.
func ParseMatchMode(raw string) (MatchMode, bool) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", MatchPriority:
		return MatchPriority, true
	case MatchFirst:
		return MatchFirst, true
	default:
		return "", false
	}
}

// Profile is the tolerance envelope of one species.
type Profile struct {
	Name        string    `json:"name"`
	WaterType   WaterType `json:"waterType"`
	MinSalinity float64   `json:"minSalinity"`
	MaxSalinity float64   `json:"maxSalinity"`
	MinTemp     float64   `json:"minTemp"`
	MaxTemp     float64   `json:"maxTemp"`
}

// SalinityMidpoint is the centre of the ideal salinity range.
func (p Profile) SalinityMidpoint() float64 {
	return (p.MinSalinity + p.MaxSalinity) / 2
}

// Entry declares one profile and the aliases that resolve to it.
type Entry struct {
	Profile Profile
	Aliases []string
}

// Listing is the public view of an entry served by the species endpoint.
type Listing struct {
	Profile
	Aliases []string `json:"aliases"`
}

// Match is the outcome of a successful lookup.
type Match struct {
	Alias   string
	Profile Profile
}
