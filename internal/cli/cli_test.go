package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"maritime-assistant-be/pkg/maritime"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLaytimeCommand(t *testing.T) {
	out, err := run(t, "laytime", "2024-01-15T08:00:00Z", "2024-01-16T08:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "24.00 hours (1.00 days)")

	out, err = run(t, "laytime", "--json", "--exclude-weekends", "2024-03-15 12:00", "2024-03-18 12:00")
	require.NoError(t, err)
	var res maritime.LaytimeResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 72.0, res.TotalHours)
	assert.Equal(t, 48.0, res.ExcludedHours)

	_, err = run(t, "laytime", "2024-01-16T08:00:00Z", "2024-01-15T08:00:00Z")
	assert.ErrorIs(t, err, maritime.ErrInvalidInterval)

	_, err = run(t, "laytime", "2024-01-15T08:00:00Z", "2024-01-16T08:00:00Z", "--holiday", "15/01/2024")
	assert.Error(t, err)
}

func TestDistanceCommand(t *testing.T) {
	out, err := run(t, "distance", "--json", "Rotterdam", "Singapore")
	require.NoError(t, err)
	var res maritime.DistanceResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 8277.0, res.DistanceNM)
	assert.False(t, res.LowConfidence)

	out, err = run(t, "distance", "Rotterdam", "Atlantis")
	require.NoError(t, err)
	assert.Contains(t, out, "default distance used")

	_, err = run(t, "distance", "Rotterdam")
	assert.Error(t, err)
}

func TestRouteCommand(t *testing.T) {
	out, err := run(t, "route", "Rotterdam", "1.29,103.85")
	require.NoError(t, err)
	assert.Contains(t, out, "Distance:")

	_, err = run(t, "route", "Rotterdam", "95,0")
	assert.ErrorIs(t, err, maritime.ErrInvalidCoordinate)

	_, err = run(t, "route", "Rotterdam", "nowhere")
	assert.Error(t, err)
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("hamburg")
	require.NoError(t, err)
	assert.InDelta(t, 53.5511, p.Lat, 1e-9)

	p, err = parsePoint(" -33.86 , 151.21 ")
	require.NoError(t, err)
	assert.Equal(t, maritime.LatLng{Lat: -33.86, Lng: 151.21}, p)
}

func TestClauseAndClassifyCommands(t *testing.T) {
	out, err := run(t, "clause", "Laytime", "to", "count", "in", "weather", "working", "days")
	require.NoError(t, err)
	assert.Contains(t, out, maritime.ClauseWeatherWorkingDays)

	out, err = run(t, "classify", "how", "is", "laytime", "counted?")
	require.NoError(t, err)
	assert.Contains(t, out, "Category:   laytime")
}

func TestPortsCommand(t *testing.T) {
	out, err := run(t, "ports", "--json")
	require.NoError(t, err)
	var ports []maritime.Port
	require.NoError(t, json.Unmarshal([]byte(out), &ports))
	assert.Len(t, ports, len(maritime.Ports()))
	assert.Equal(t, "antwerp", ports[0].Key)
}
