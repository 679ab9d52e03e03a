package weather

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maritime-assistant-be/pkg/cache"
)

func TestRecommend(t *testing.T) {
	tests := []struct {
		name string
		in   Result
		want string
	}{
		{"calm clear", Result{Condition: "Clear", WindSpeedKt: 12, VisibilityNM: 10}, "Operations normal. Good conditions for cargo operations"},
		{"unknown condition", Result{Condition: "Hail", WindSpeedKt: 5, VisibilityNM: 5}, "Operations normal"},
		{"wind at the limit is allowed", Result{Condition: "Clear", WindSpeedKt: 25, VisibilityNM: 5}, "Operations normal. Good conditions for cargo operations"},
		{"gale", Result{WindSpeedKt: 30, VisibilityNM: 5}, "Suspend container operations: wind exceeds 25 knots"},
		{"fog bank", Result{WindSpeedKt: 5, VisibilityNM: 1.5}, "Delay pilot boarding: visibility below 2 NM"},
		{"both", Result{WindSpeedKt: 40, VisibilityNM: 0.5}, "Suspend container operations: wind exceeds 25 knots. Delay pilot boarding: visibility below 2 NM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommend(tt.in))
		})
	}
}

func TestOperationalStatus(t *testing.T) {
	r := Result{Condition: "Light Rain", WindSpeedKt: 26, VisibilityNM: 1}
	assert.Equal(t, "Suspended", ContainerOpsStatus(r))
	assert.Equal(t, "Weather hold advised", BulkCargoStatus(r))
	assert.Equal(t, "Delayed", PilotBoardingStatus(r))

	r = Result{Condition: "Clear", WindSpeedKt: 10, VisibilityNM: 10}
	assert.Equal(t, "Normal", ContainerOpsStatus(r))
	assert.Equal(t, "Proceeding normally", BulkCargoStatus(r))
	assert.Equal(t, "Normal", PilotBoardingStatus(r))
}

func TestCannedProvider(t *testing.T) {
	p := NewCannedProvider(rand.New(rand.NewSource(1)))

	for i := 0; i < 20; i++ {
		r, err := p.Lookup(context.Background(), " Hamburg ")
		require.NoError(t, err)
		assert.Equal(t, "Hamburg", r.Location)
		assert.Equal(t, SourceSimulated, r.Source)
		assert.GreaterOrEqual(t, r.WindSpeedKt, 0.0)
		assert.GreaterOrEqual(t, r.VisibilityNM, 0.0)
		assert.NotEmpty(t, r.Recommendation)
	}

	_, err := p.Lookup(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyLocation)
}

func TestOpenMeteoProvider(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":9.46,"wind_speed_10m":27.3,"weather_code":63,"visibility":2778}}`))
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.URL, time.Second)
	r, err := p.Lookup(context.Background(), "rotterdam")
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "wind_speed_unit=kn")
	assert.Contains(t, gotQuery, "latitude=51.9244")
	assert.Equal(t, "Rotterdam", r.Location)
	assert.Equal(t, "Rain", r.Condition)
	assert.InDelta(t, 9.5, r.TemperatureC, 1e-9)
	assert.InDelta(t, 27.3, r.WindSpeedKt, 1e-9)
	assert.InDelta(t, 1.5, r.VisibilityNM, 1e-9)
	assert.Equal(t, SourceOpenMeteo, r.Source)
	assert.Equal(t, "Suspend container operations: wind exceeds 25 knots. Delay pilot boarding: visibility below 2 NM", r.Recommendation)
}

func TestOpenMeteoProviderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewOpenMeteoProvider(srv.URL, time.Second)

	_, err := p.Lookup(context.Background(), "Atlantis")
	assert.ErrorIs(t, err, ErrUnknownLocation)

	_, err = p.Lookup(context.Background(), "Hamburg")
	assert.Error(t, err)
}

type stubProvider struct {
	calls  atomic.Int32
	result Result
	err    error
}

func (s *stubProvider) Lookup(_ context.Context, location string) (Result, error) {
	s.calls.Add(1)
	if s.err != nil {
		return Result{}, s.err
	}
	r := s.result
	r.Location = location
	return r, nil
}

func TestFallbackProvider(t *testing.T) {
	primary := &stubProvider{err: errors.New("down")}
	secondary := &stubProvider{result: Result{Condition: "Clear", Source: SourceSimulated}}
	p := &FallbackProvider{Primary: primary, Secondary: secondary}

	r, err := p.Lookup(context.Background(), "Dubai")
	require.NoError(t, err)
	assert.Equal(t, SourceSimulated, r.Source)
	assert.Equal(t, int32(1), primary.calls.Load())
	assert.Equal(t, int32(1), secondary.calls.Load())
}

func TestCachedProvider(t *testing.T) {
	next := &stubProvider{result: Result{Condition: "Overcast", Source: SourceOpenMeteo}}
	p := &CachedProvider{Next: next, Cache: cache.NewMemoryCache(time.Minute, time.Minute), TTL: time.Minute}

	first, err := p.Lookup(context.Background(), "New York")
	require.NoError(t, err)
	second, err := p.Lookup(context.Background(), "new york")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), next.calls.Load())
}
