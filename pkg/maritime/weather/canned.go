package weather

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"
)

type profile struct {
	condition   string
	temperature float64
	wind        float64
	visibility  float64
}

var cannedProfiles = []profile{
	{"Clear", 18, 12, 10},
	{"Partly Cloudy", 16, 15, 8},
	{"Overcast", 14, 20, 6},
	{"Light Rain", 12, 18, 4},
}

// CannedProvider returns one of a few fixed profiles at random. It never fails
// for a non-empty location and serves as the last-resort fallback.
type CannedProvider struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

var _ Provider = (*CannedProvider)(nil)

func NewCannedProvider(rnd *rand.Rand) *CannedProvider {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &CannedProvider{rnd: rnd}
}

func (p *CannedProvider) Lookup(_ context.Context, location string) (Result, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return Result{}, ErrEmptyLocation
	}

	p.mu.Lock()
	pick := cannedProfiles[p.rnd.Intn(len(cannedProfiles))]
	p.mu.Unlock()

	r := Result{
		Location:     location,
		Condition:    pick.condition,
		TemperatureC: pick.temperature,
		WindSpeedKt:  pick.wind,
		VisibilityNM: pick.visibility,
		Source:       SourceSimulated,
	}
	r.Recommendation = Recommend(r)
	return r, nil
}
