package preset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	want := map[string]time.Duration{
		"5 minutes":  300 * time.Second,
		"15 minutes": 900 * time.Second,
		"30 minutes": 1800 * time.Second,
		"45 minutes": 2700 * time.Second,
	}
	got := Defaults()
	require.Len(t, got, len(want))
	for _, p := range got {
		require.Equal(t, want[p.Name], p.Duration, p.Name)
	}

	got[0].Duration = 0
	require.Equal(t, 300*time.Second, Defaults()[0].Duration, "Defaults must return a copy")
}

func TestLookup(t *testing.T) {
	p, err := Lookup("15m")
	require.NoError(t, err)
	require.Equal(t, 900*time.Second, p.Duration)

	p, err = Lookup(" 45 Minutes ")
	require.NoError(t, err)
	require.Equal(t, "45m", p.Key)

	_, err = Lookup("25m")
	require.ErrorIs(t, err, ErrUnknownPreset)

	_, err = Lookup(DefaultKey)
	require.NoError(t, err)
}

func TestCustomBounds(t *testing.T) {
	p, err := Custom(MinCustomMinutes)
	require.NoError(t, err)
	require.Equal(t, time.Minute, p.Duration)

	p, err = Custom(MaxCustomMinutes)
	require.NoError(t, err)
	require.Equal(t, 7200*time.Second, p.Duration)

	for _, bad := range []int{0, -1, MaxCustomMinutes + 1} {
		_, err := Custom(bad)
		require.ErrorIs(t, err, ErrMinutesOutOfRange, "minutes=%d", bad)
	}
}
