package maritime

import (
	"sort"
	"strings"
)

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (c LatLng) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

type Port struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Region string `json:"region"`
	Coord  LatLng `json:"coordinates"`
}

const (
	RegionEurope     = "Europe"
	RegionAsia       = "Asia"
	RegionAmericas   = "Americas"
	RegionMiddleEast = "Middle East"
	RegionAfrica     = "Africa"
)

var ports = map[string]Port{
	"hamburg":     {Key: "hamburg", Name: "Hamburg", Region: RegionEurope, Coord: LatLng{53.5511, 9.9937}},
	"rotterdam":   {Key: "rotterdam", Name: "Rotterdam", Region: RegionEurope, Coord: LatLng{51.9244, 4.4777}},
	"antwerp":     {Key: "antwerp", Name: "Antwerp", Region: RegionEurope, Coord: LatLng{51.2194, 4.4025}},
	"felixstowe":  {Key: "felixstowe", Name: "Felixstowe", Region: RegionEurope, Coord: LatLng{51.9615, 1.3509}},
	"gibraltar":   {Key: "gibraltar", Name: "Gibraltar", Region: RegionEurope, Coord: LatLng{36.1408, -5.3536}},
	"singapore":   {Key: "singapore", Name: "Singapore", Region: RegionAsia, Coord: LatLng{1.3521, 103.8198}},
	"shanghai":    {Key: "shanghai", Name: "Shanghai", Region: RegionAsia, Coord: LatLng{31.2304, 121.4737}},
	"tokyo":       {Key: "tokyo", Name: "Tokyo", Region: RegionAsia, Coord: LatLng{35.6762, 139.6503}},
	"mumbai":      {Key: "mumbai", Name: "Mumbai", Region: RegionAsia, Coord: LatLng{19.0760, 72.8777}},
	"busan":       {Key: "busan", Name: "Busan", Region: RegionAsia, Coord: LatLng{35.1796, 129.0756}},
	"hong_kong":   {Key: "hong_kong", Name: "Hong Kong", Region: RegionAsia, Coord: LatLng{22.3193, 114.1694}},
	"new_york":    {Key: "new_york", Name: "New York", Region: RegionAmericas, Coord: LatLng{40.7128, -74.0060}},
	"santos":      {Key: "santos", Name: "Santos", Region: RegionAmericas, Coord: LatLng{-23.9608, -46.3336}},
	"los_angeles": {Key: "los_angeles", Name: "Los Angeles", Region: RegionAmericas, Coord: LatLng{33.7405, -118.2720}},
	"houston":     {Key: "houston", Name: "Houston", Region: RegionAmericas, Coord: LatLng{29.7604, -95.3698}},
	"dubai":       {Key: "dubai", Name: "Dubai", Region: RegionMiddleEast, Coord: LatLng{25.2048, 55.2708}},
	"suez":        {Key: "suez", Name: "Suez Canal", Region: RegionAfrica, Coord: LatLng{30.0444, 32.2357}},
}

// NormalizePortName maps "New York" and " new  york " to "new_york".
func NormalizePortName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "_")
}

func LookupPort(name string) (Port, bool) {
	p, ok := ports[NormalizePortName(name)]
	return p, ok
}

// Ports returns the known ports ordered by region then name.
func Ports() []Port {
	out := make([]Port, 0, len(ports))
	for _, p := range ports {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Region != out[j].Region {
			return out[i].Region < out[j].Region
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// CoveredRegions renders the region → port names summary used in clarification replies.
func CoveredRegions() map[string][]string {
	out := make(map[string][]string)
	for _, p := range Ports() {
		out[p.Region] = append(out[p.Region], p.Name)
	}
	return out
}
