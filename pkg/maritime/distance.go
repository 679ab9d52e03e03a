package maritime

import (
	"errors"
	"math"
	"strings"
)

const (
	EarthRadiusNM     = 3440.065
	ServiceSpeedKnots = 14.0
	FuelRatePerNM     = 0.05
	// DefaultDistanceNM is a placeholder for unknown port pairs, never a measurement.
	DefaultDistanceNM = 5000.0
	BunkerThresholdNM = 6000.0
)

const (
	SourceTable       = "table"
	SourceGreatCircle = "great_circle"
	SourceDefault     = "default"
)

var (
	ErrEmptyPort = errors.New("both ports are required")
	ErrSamePort  = errors.New("origin and destination are the same port")
)

type DistanceResult struct {
	FromPort          string  `json:"fromPort"`
	ToPort            string  `json:"toPort"`
	DistanceNM        float64 `json:"distanceNM"`
	EstimatedDays     float64 `json:"estimatedDays"`
	FuelConsumptionMT float64 `json:"fuelConsumption"`
	Source            string  `json:"source"`
	LowConfidence     bool    `json:"lowConfidence"`
}

// sailing distances, keyed one way; lookups check both directions.
var portDistances = map[string]map[string]float64{
	"hamburg": {
		"rotterdam":  237,
		"antwerp":    288,
		"felixstowe": 391,
		"santos":     5967,
		"singapore":  8345,
	},
	"rotterdam": {
		"hamburg":    237,
		"antwerp":    68,
		"felixstowe": 187,
		"new_york":   3654,
		"singapore":  8277,
	},
	"singapore": {
		"shanghai": 1436,
		"tokyo":    2885,
		"mumbai":   2889,
		"dubai":    3277,
		"hamburg":  8345,
	},
}

func tableDistance(from, to string) (float64, bool) {
	if row, ok := portDistances[from]; ok {
		if d, ok := row[to]; ok {
			return d, true
		}
	}
	if row, ok := portDistances[to]; ok {
		if d, ok := row[from]; ok {
			return d, true
		}
	}
	return 0, false
}

// Haversine returns the great-circle distance in nautical miles.
func Haversine(a, b LatLng) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusNM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// EstimatedDays assumes the vessel holds service speed around the clock.
func EstimatedDays(nm float64) float64 {
	return Round2(nm / (ServiceSpeedKnots * 24))
}

func FuelConsumption(nm float64) float64 {
	return Round2(nm * FuelRatePerNM)
}

// Distance resolves a named port pair. The sailing table wins, then the great
// circle over known coordinates, then DefaultDistanceNM flagged LowConfidence.
func Distance(from, to string) (DistanceResult, error) {
	fromKey := NormalizePortName(from)
	toKey := NormalizePortName(to)
	if fromKey == "" || toKey == "" {
		return DistanceResult{}, ErrEmptyPort
	}
	if fromKey == toKey {
		return DistanceResult{}, ErrSamePort
	}

	result := DistanceResult{FromPort: displayName(fromKey, from), ToPort: displayName(toKey, to)}

	switch nm, ok := tableDistance(fromKey, toKey); {
	case ok:
		result.DistanceNM = nm
		result.Source = SourceTable
	default:
		a, okA := ports[fromKey]
		b, okB := ports[toKey]
		if okA && okB {
			result.DistanceNM = math.Round(Haversine(a.Coord, b.Coord))
			result.Source = SourceGreatCircle
		} else {
			result.DistanceNM = DefaultDistanceNM
			result.Source = SourceDefault
			result.LowConfidence = true
		}
	}

	result.EstimatedDays = EstimatedDays(result.DistanceNM)
	result.FuelConsumptionMT = FuelConsumption(result.DistanceNM)
	return result, nil
}

func displayName(key, raw string) string {
	if p, ok := ports[key]; ok {
		return p.Name
	}
	return strings.TrimSpace(raw)
}
