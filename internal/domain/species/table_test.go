package species

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultTableInvariants(t *testing.T) {
	table, err := Default(MatchPriority)
	require.NoError(t, err)

	require.Equal(t, []string{
		"tilapia", "nile tilapia", "hito", "catfish", "dalag", "mudfish", "bangus", "milkfish",
		"carp", "goldfish", "tuna", "grouper", "lapu-lapu", "clownfish", "salmon", "guppy", "maya-maya",
	}, table.Aliases())

	for _, listing := range table.Listings() {
		p := listing.Profile
		require.LessOrEqual(t, p.MinSalinity, p.MaxSalinity, p.Name)
		require.LessOrEqual(t, p.MinTemp, p.MaxTemp, p.Name)
		require.True(t, p.WaterType.Valid(), p.Name)
		require.NotEmpty(t, listing.Aliases, p.Name)
	}
}

func TestLookupSharedAliases(t *testing.T) {
	table, err := Default(MatchPriority)
	require.NoError(t, err)

	dalag, ok := table.Lookup("Dalag")
	require.True(t, ok)
	mudfish, ok := table.Lookup("mudfish")
	require.True(t, ok)
	require.Equal(t, dalag, mudfish)
	require.Equal(t, "Dalag (Mudfish)", dalag.Name)
}

func TestLookupModes(t *testing.T) {
	first, err := Default(MatchFirst)
	require.NoError(t, err)
	priority, err := Default(MatchPriority)
	require.NoError(t, err)

	cases := []struct {
		query     string
		firstName string
		prioName  string
	}{
		{query: "tilapia", firstName: "Tilapia", prioName: "Tilapia"},
		{query: "  TILAPIA  ", firstName: "Tilapia", prioName: "Tilapia"},
		{query: "freshwater tilapia fry", firstName: "Tilapia", prioName: "Tilapia"},
		{query: "nile tilapia", firstName: "Tilapia", prioName: "Nile Tilapia"},
		{query: "nile tilapia fingerlings", firstName: "Tilapia", prioName: "Nile Tilapia"},
		{query: "carp or catfish", firstName: "Catfish", prioName: "Catfish"},
		{query: "lapu-lapu", firstName: "Grouper (Lapu-Lapu)", prioName: "Grouper (Lapu-Lapu)"},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			p, ok := first.Lookup(tc.query)
			require.True(t, ok)
			require.Equal(t, tc.firstName, p.Name)

			p, ok = priority.Lookup(tc.query)
			require.True(t, ok)
			require.Equal(t, tc.prioName, p.Name)
		})
	}
}

func TestLookupPriorityPrefersExactOverLonger(t *testing.T) {
	table, err := New([]Entry{
		{Profile: profile("Perch"), Aliases: []string{"perch"}},
		{Profile: profile("Climbing Perch"), Aliases: []string{"climbing perch"}},
	}, MatchPriority)
	require.NoError(t, err)

	m, ok := table.Resolve("perch")
	require.True(t, ok)
	require.Equal(t, "perch", m.Alias)

	m, ok = table.Resolve("young climbing perch")
	require.True(t, ok)
	require.Equal(t, "climbing perch", m.Alias)
}

func TestLookupMisses(t *testing.T) {
	table, err := Default(MatchPriority)
	require.NoError(t, err)

	for _, q := range []string{"", "   ", "unicornfish", "tun"} {
		_, ok := table.Lookup(q)
		require.False(t, ok, q)
	}
}

func TestNewRejectsBadProfiles(t *testing.T) {
	cases := []struct {
		name    string
		entries []Entry
	}{
		{name: "empty", entries: nil},
		{name: "inverted salinity", entries: []Entry{{Profile: Profile{Name: "X", WaterType: Freshwater, MinSalinity: 5, MaxSalinity: 1}, Aliases: []string{"x"}}}},
		{name: "inverted temperature", entries: []Entry{{Profile: Profile{Name: "X", WaterType: Freshwater, MinTemp: 30, MaxTemp: 20}, Aliases: []string{"x"}}}},
		{name: "unknown water type", entries: []Entry{{Profile: Profile{Name: "X", WaterType: "Swamp"}, Aliases: []string{"x"}}}},
		{name: "no aliases", entries: []Entry{{Profile: profile("X")}}},
		{name: "blank alias", entries: []Entry{{Profile: profile("X"), Aliases: []string{" "}}}},
		{name: "duplicate alias", entries: []Entry{
			{Profile: profile("X"), Aliases: []string{"fish"}},
			{Profile: profile("Y"), Aliases: []string{"FISH"}},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.entries, MatchPriority)
			require.Error(t, err)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species.yaml")
	body := `species:
  - name: Barramundi
    waterType: Euryhaline
    salinity: [0, 35]
    temperature: [22, 32]
    aliases: [barramundi, Apahap]
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	table, err := Load(path, MatchFirst)
	require.NoError(t, err)
	require.Equal(t, MatchFirst, table.Mode())

	p, ok := table.Lookup("apahap")
	require.True(t, ok)
	require.Equal(t, "Barramundi", p.Name)
	require.Equal(t, 17.5, p.SalinityMidpoint())
}

func TestParseRejectsMalformedRanges(t *testing.T) {
	_, err := Parse([]byte("species:\n  - name: X\n    waterType: Freshwater\n    salinity: [1]\n    temperature: [1, 2]\n    aliases: [x]\n"), MatchPriority)
	require.Error(t, err)

	_, err = Parse([]byte("species: {"), MatchPriority)
	require.Error(t, err)
}

func TestParseMatchMode(t *testing.T) {
	mode, ok := ParseMatchMode("")
	require.True(t, ok)
	require.Equal(t, MatchPriority, mode)

	mode, ok = ParseMatchMode(" First ")
	require.True(t, ok)
	require.Equal(t, MatchFirst, mode)

	_, ok = ParseMatchMode("fuzzy")
	require.False(t, ok)
}

func profile(name string) Profile {
	return Profile{Name: name, WaterType: Freshwater, MaxSalinity: 1, MinTemp: 20, MaxTemp: 30}
}
