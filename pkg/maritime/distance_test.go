package maritime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name          string
		from, to      string
		wantNM        float64
		wantDays      float64
		wantFuel      float64
		wantSource    string
		wantLowConfid bool
	}{
		{"table row", "Hamburg", "Singapore", 8345, 24.84, 417.25, SourceTable, false},
		{"table reverse direction", "Singapore", "Rotterdam", 8277, 24.63, 413.85, SourceTable, false},
		{"normalized multiword name", " new  YORK ", "Rotterdam", 3654, 10.88, 182.7, SourceTable, false},
		{"great circle fallback", "Dubai", "Tokyo", 4282, 12.74, 214.1, SourceGreatCircle, false},
		{"great circle multiword", "New York", "Shanghai", 6403, 19.06, 320.15, SourceGreatCircle, false},
		{"unknown port", "Atlantis", "Hamburg", DefaultDistanceNM, 14.88, 250, SourceDefault, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Distance(tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantNM, got.DistanceNM, 1e-9)
			assert.InDelta(t, tt.wantDays, got.EstimatedDays, 1e-9)
			assert.InDelta(t, tt.wantFuel, got.FuelConsumptionMT, 1e-9)
			assert.Equal(t, tt.wantSource, got.Source)
			assert.Equal(t, tt.wantLowConfid, got.LowConfidence)
			assert.Greater(t, got.DistanceNM, 0.0)
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"hamburg", "rotterdam"},
		{"rotterdam", "singapore"},
		{"singapore", "dubai"},
		{"dubai", "tokyo"},
		{"new york", "santos"},
		{"felixstowe", "busan"},
		{"atlantis", "lemuria"},
	}
	for _, p := range pairs {
		ab, err := Distance(p[0], p[1])
		require.NoError(t, err)
		ba, err := Distance(p[1], p[0])
		require.NoError(t, err)
		assert.Equal(t, ab.DistanceNM, ba.DistanceNM, "%s <-> %s", p[0], p[1])
		assert.Equal(t, ab.Source, ba.Source)
	}
}

func TestDistanceRejectsBadInput(t *testing.T) {
	_, err := Distance("", "Hamburg")
	assert.ErrorIs(t, err, ErrEmptyPort)

	_, err = Distance("Hamburg", "  ")
	assert.ErrorIs(t, err, ErrEmptyPort)

	_, err = Distance("Hamburg", "HAMBURG")
	assert.ErrorIs(t, err, ErrSamePort)
}

func TestHaversineSymmetric(t *testing.T) {
	a := LatLng{Lat: 51.9244, Lng: 4.4777}
	b := LatLng{Lat: 1.3521, Lng: 103.8198}
	assert.InDelta(t, Haversine(a, b), Haversine(b, a), 1e-9)
	assert.InDelta(t, 0, Haversine(a, a), 1e-9)
}

// The great circle from Rotterdam to Singapore crosses Eurasia at about 5684 NM;
// the 8277 NM sailing figure is what the named-port lookup reports.
func TestRotterdamSingapore(t *testing.T) {
	gc := Haversine(LatLng{Lat: 51.9244, Lng: 4.4777}, LatLng{Lat: 1.3521, Lng: 103.8198})
	assert.InDelta(t, 5684.34, gc, 0.01)

	named, err := Distance("Rotterdam", "Singapore")
	require.NoError(t, err)
	assert.Equal(t, SourceTable, named.Source)
	assert.InDelta(t, 8277, named.DistanceNM, 1e-9)
}

func TestLookupPort(t *testing.T) {
	p, ok := LookupPort("Hong Kong")
	require.True(t, ok)
	assert.Equal(t, "hong_kong", p.Key)
	assert.Equal(t, RegionAsia, p.Region)

	_, ok = LookupPort("Atlantis")
	assert.False(t, ok)

	regions := CoveredRegions()
	assert.Contains(t, regions[RegionEurope], "Rotterdam")
	assert.Contains(t, regions[RegionMiddleEast], "Dubai")
}
