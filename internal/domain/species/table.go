package species

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var defaultProfiles []byte

// Table is the immutable alias -> profile reference table. Build it once at
// startup and share the pointer; nothing mutates it afterwards.
type Table struct {
	mode     MatchMode
	aliases  []aliasEntry
	listings []Listing
}

type aliasEntry struct {
	alias   string
	profile int
}

// Default parses the embedded reference table.
func Default(mode MatchMode) (*Table, error) {
	return Parse(defaultProfiles, mode)
}

// Load reads a reference table from a YAML file.
func Load(path string, mode MatchMode) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read species table: %w", err)
	}
	return Parse(data, mode)
}

type tableFile struct {
	Species []struct {
		Name        string    `yaml:"name"`
		WaterType   WaterType `yaml:"waterType"`
		Salinity    []float64 `yaml:"salinity"`
		Temperature []float64 `yaml:"temperature"`
		Aliases     []string  `yaml:"aliases"`
	} `yaml:"species"`
}

// Parse decodes a YAML reference table.
func Parse(data []byte, mode MatchMode) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse species table: %w", err)
	}
	entries := make([]Entry, 0, len(file.Species))
	for i, raw := range file.Species {
		if len(raw.Salinity) != 2 {
			return nil, fmt.Errorf("species[%d] %q: salinity must be [min, max]", i, raw.Name)
		}
		if len(raw.Temperature) != 2 {
			return nil, fmt.Errorf("species[%d] %q: temperature must be [min, max]", i, raw.Name)
		}
		entries = append(entries, Entry{
			Profile: Profile{
				Name:        raw.Name,
				WaterType:   raw.WaterType,
				MinSalinity: raw.Salinity[0],
				MaxSalinity: raw.Salinity[1],
				MinTemp:     raw.Temperature[0],
				MaxTemp:     raw.Temperature[1],
			},
			Aliases: raw.Aliases,
		})
	}
	return New(entries, mode)
}

// New builds a table from entries, validating every profile.
func New(entries []Entry, mode MatchMode) (*Table, error) {
	if len(entries) == 0 {
		return nil, errors.New("species table is empty")
	}
	if mode == "" {
		mode = MatchPriority
	}
	if mode != MatchFirst && mode != MatchPriority {
		return nil, fmt.Errorf("unknown match mode %q", mode)
	}

	t := &Table{mode: mode}
	seen := make(map[string]string)
	for i, entry := range entries {
		if err := validateProfile(entry.Profile); err != nil {
			return nil, fmt.Errorf("species[%d]: %w", i, err)
		}
		if len(entry.Aliases) == 0 {
			return nil, fmt.Errorf("species[%d] %q: at least one alias is required", i, entry.Profile.Name)
		}
		aliases := make([]string, 0, len(entry.Aliases))
		for _, raw := range entry.Aliases {
			alias := normalize(raw)
			if alias == "" {
				return nil, fmt.Errorf("species[%d] %q: alias cannot be blank", i, entry.Profile.Name)
			}
			if owner, dup := seen[alias]; dup {
				return nil, fmt.Errorf("alias %q declared by both %q and %q", alias, owner, entry.Profile.Name)
			}
			seen[alias] = entry.Profile.Name
			aliases = append(aliases, alias)
			t.aliases = append(t.aliases, aliasEntry{alias: alias, profile: len(t.listings)})
		}
		t.listings = append(t.listings, Listing{Profile: entry.Profile, Aliases: aliases})
	}
	return t, nil
}

func validateProfile(p Profile) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return errors.New("name cannot be empty")
	case !p.WaterType.Valid():
		return fmt.Errorf("%q: unknown water type %q", p.Name, p.WaterType)
	case p.MinSalinity < 0:
		return fmt.Errorf("%q: minimum salinity cannot be negative", p.Name)
	case p.MinSalinity > p.MaxSalinity:
		return fmt.Errorf("%q: salinity range %v-%v is inverted", p.Name, p.MinSalinity, p.MaxSalinity)
	case p.MinTemp > p.MaxTemp:
		return fmt.Errorf("%q: temperature range %v-%v is inverted", p.Name, p.MinTemp, p.MaxTemp)
	}
	return nil
}

// Mode reports the resolution strategy of the table.
func (t *Table) Mode() MatchMode { return t.mode }

// Lookup resolves a free-text query to a profile. A miss is not an error.
func (t *Table) Lookup(query string) (Profile, bool) {
	m, ok := t.Resolve(query)
	return m.Profile, ok
}

// Resolve is Lookup that also reports which alias matched.
func (t *Table) Resolve(query string) (Match, bool) {
	q := normalize(query)
	if q == "" {
		return Match{}, false
	}
	var idx int
	if t.mode == MatchFirst {
		idx = t.firstContained(q)
	} else {
		idx = t.prioritized(q)
	}
	if idx < 0 {
		return Match{}, false
	}
	entry := t.aliases[idx]
	return Match{Alias: entry.alias, Profile: t.listings[entry.profile].Profile}, true
}

func (t *Table) firstContained(q string) int {
	for i, entry := range t.aliases {
		if strings.Contains(q, entry.alias) {
			return i
		}
	}
	return -1
}

func (t *Table) prioritized(q string) int {
	best := -1
	for i, entry := range t.aliases {
		if entry.alias == q {
			return i
		}
		if !strings.Contains(q, entry.alias) {
			continue
		}
		if best < 0 || len(entry.alias) > len(t.aliases[best].alias) {
			best = i
		}
	}
	return best
}

// Listings returns every profile with its aliases, in declaration order.
func (t *Table) Listings() []Listing {
	out := make([]Listing, len(t.listings))
	for i, l := range t.listings {
		out[i] = Listing{Profile: l.Profile, Aliases: append([]string(nil), l.Aliases...)}
	}
	return out
}

// Aliases returns all aliases in matching order.
func (t *Table) Aliases() []string {
	out := make([]string, len(t.aliases))
	for i, entry := range t.aliases {
		out[i] = entry.alias
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
