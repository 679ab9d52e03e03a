// Package weather looks up current conditions for a port and derives an
// operational recommendation for cargo work.
package weather

import (
	"context"
	"errors"
	"strings"
)

const (
	ContainerWindLimitKt = 25.0
	PilotVisibilityMinNM = 2.0
)

const (
	SourceSimulated = "simulated"
	SourceOpenMeteo = "open-meteo"
)

var (
	ErrEmptyLocation   = errors.New("location is required")
	ErrUnknownLocation = errors.New("unknown location")
)

type Result struct {
	Location       string  `json:"location"`
	Condition      string  `json:"condition"`
	TemperatureC   float64 `json:"temperature"`
	WindSpeedKt    float64 `json:"windSpeed"`
	VisibilityNM   float64 `json:"visibility"`
	Recommendation string  `json:"recommendation"`
	Source         string  `json:"source"`
}

type Provider interface {
	Lookup(ctx context.Context, location string) (Result, error)
}

var advisories = map[string]string{
	"Clear":         "Good conditions for cargo operations",
	"Partly Cloudy": "Suitable for operations with caution",
	"Overcast":      "Monitor weather conditions closely",
	"Light Rain":    "Consider delays for sensitive cargo",
	"Rain":          "Consider delays for sensitive cargo",
	"Fog":           "Monitor visibility before pilotage",
}

// Recommend applies the operational limits. Breaches are listed first; when
// none apply the condition's advisory, if any, follows the normal-operations note.
func Recommend(r Result) string {
	var notes []string
	if r.WindSpeedKt > ContainerWindLimitKt {
		notes = append(notes, "Suspend container operations: wind exceeds 25 knots")
	}
	if r.VisibilityNM < PilotVisibilityMinNM {
		notes = append(notes, "Delay pilot boarding: visibility below 2 NM")
	}
	if len(notes) > 0 {
		return strings.Join(notes, ". ")
	}
	if adv, ok := advisories[r.Condition]; ok {
		return "Operations normal. " + adv
	}
	return "Operations normal"
}

// ContainerOpsStatus, BulkCargoStatus and PilotBoardingStatus drive the chat reply.
func ContainerOpsStatus(r Result) string {
	if r.WindSpeedKt > ContainerWindLimitKt {
		return "Suspended"
	}
	return "Normal"
}

func BulkCargoStatus(r Result) string {
	if strings.Contains(strings.ToLower(r.Condition), "rain") {
		return "Weather hold advised"
	}
	return "Proceeding normally"
}

func PilotBoardingStatus(r Result) string {
	if r.VisibilityNM < PilotVisibilityMinNM {
		return "Delayed"
	}
	return "Normal"
}
