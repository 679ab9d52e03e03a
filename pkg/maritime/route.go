package maritime

import (
	"errors"
	"math"
)

var ErrInvalidCoordinate = errors.New("coordinates out of range")

type Waypoint struct {
	Name string  `json:"name,omitempty"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type RouteResult struct {
	Distance        float64    `json:"distance"`
	EstimatedDays   float64    `json:"estimatedDays"`
	FuelConsumption float64    `json:"fuelConsumption"`
	BunkerStops     []Waypoint `json:"bunkerStops"`
	Waypoints       []Waypoint `json:"waypoints"`
}

var (
	gibraltarStop = Waypoint{Name: "Gibraltar", Lat: 36.1408, Lng: -5.3536}
	suezStop      = Waypoint{Name: "Suez Canal", Lat: 30.0444, Lng: 32.2357}
)

// RouteBetween plans a coordinate-to-coordinate passage. Days and fuel derive
// from the unrounded great-circle distance; the reported distance is whole NM.
func RouteBetween(src, dst LatLng) (RouteResult, error) {
	if !src.Valid() || !dst.Valid() {
		return RouteResult{}, ErrInvalidCoordinate
	}

	nm := Haversine(src, dst)
	stops := bunkerStops(src, dst, nm)

	waypoints := make([]Waypoint, 0, len(stops)+2)
	waypoints = append(waypoints, Waypoint{Lat: src.Lat, Lng: src.Lng})
	waypoints = append(waypoints, stops...)
	waypoints = append(waypoints, Waypoint{Lat: dst.Lat, Lng: dst.Lng})

	return RouteResult{
		Distance:        math.Round(nm),
		EstimatedDays:   EstimatedDays(nm),
		FuelConsumption: FuelConsumption(nm),
		BunkerStops:     stops,
		Waypoints:       waypoints,
	}, nil
}

// bunkerStops is illustrative: long Atlantic/Asia passages go via the Med.
func bunkerStops(src, dst LatLng, nm float64) []Waypoint {
	if nm <= BunkerThresholdNM {
		return []Waypoint{}
	}
	switch {
	case src.Lng < 0 && dst.Lng > 50:
		return []Waypoint{gibraltarStop, suezStop}
	case src.Lng > 50 && dst.Lng < 0:
		return []Waypoint{suezStop, gibraltarStop}
	default:
		return []Waypoint{}
	}
}
