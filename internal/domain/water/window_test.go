package water

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/salinity-watch/pkg/errors"
)

func TestWindowEvictsOldest(t *testing.T) {
	w := NewWindow(3)
	for i := 0; i < 5; i++ {
		w.Push(Reading{Salinity: float64(i)})
	}

	require.Equal(t, 3, w.Len())
	snap := w.Snapshot()
	require.Equal(t, []float64{2, 3, 4}, salinities(snap))

	latest, ok := w.Latest()
	require.True(t, ok)
	require.Equal(t, 4.0, latest.Salinity)
}

func TestWindowSnapshotIsCopy(t *testing.T) {
	w := NewWindow(2)
	w.Push(Reading{Salinity: 1})

	snap := w.Snapshot()
	snap[0].Salinity = 99

	latest, _ := w.Latest()
	require.Equal(t, 1.0, latest.Salinity)
}

func TestWindowEmpty(t *testing.T) {
	w := NewWindow(0)
	_, ok := w.Latest()
	require.False(t, ok)
	require.Equal(t, DefaultWindowSize, w.Cap())
	require.Empty(t, w.Snapshot())
}

func TestReadingValidate(t *testing.T) {
	cases := []struct {
		name    string
		reading Reading
		valid   bool
	}{
		{name: "fresh", reading: Reading{Salinity: 0, Temperature: 28}, valid: true},
		{name: "cold water is fine", reading: Reading{Salinity: 30, Temperature: -1.5}, valid: true},
		{name: "negative salinity", reading: Reading{Salinity: -0.1, Temperature: 28}},
		{name: "nan salinity", reading: Reading{Salinity: math.NaN(), Temperature: 28}},
		{name: "inf temperature", reading: Reading{Salinity: 1, Temperature: math.Inf(1)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.reading.Validate()
			if tc.valid {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
		})
	}
}

func TestValidateAllReportsIndex(t *testing.T) {
	err := ValidateAll([]Reading{{Salinity: 1}, {Salinity: -1}})
	require.Error(t, err)
	require.Contains(t, err.Error(), "reading 1")
}

func salinities(rs []Reading) []float64 {
	out := make([]float64, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Salinity)
	}
	return out
}
