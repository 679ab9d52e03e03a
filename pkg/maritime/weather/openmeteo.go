package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"maritime-assistant-be/pkg/maritime"
)

const DefaultOpenMeteoURL = "https://api.open-meteo.com"

const metresPerNM = 1852.0

// OpenMeteoProvider fetches current conditions for known ports. Locations are
// resolved through the port table; anything else is ErrUnknownLocation.
type OpenMeteoProvider struct {
	BaseURL string
	Client  *http.Client
}

var _ Provider = (*OpenMeteoProvider)(nil)

func NewOpenMeteoProvider(baseURL string, timeout time.Duration) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultOpenMeteoURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &OpenMeteoProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

type openMeteoResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		WeatherCode int     `json:"weather_code"`
		Visibility  float64 `json:"visibility"`
	} `json:"current"`
}

func (p *OpenMeteoProvider) Lookup(ctx context.Context, location string) (Result, error) {
	if strings.TrimSpace(location) == "" {
		return Result{}, ErrEmptyLocation
	}
	port, ok := maritime.LookupPort(location)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownLocation, location)
	}

	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(port.Coord.Lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(port.Coord.Lng, 'f', 4, 64))
	params.Set("current", "temperature_2m,wind_speed_10m,weather_code,visibility")
	params.Set("wind_speed_unit", "kn")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/v1/forecast?"+params.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("open-meteo request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("open-meteo error: status %d", resp.StatusCode)
	}

	var parsed openMeteoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Result{}, fmt.Errorf("unmarshal response: %w", err)
	}

	r := Result{
		Location:     port.Name,
		Condition:    conditionFromCode(parsed.Current.WeatherCode),
		TemperatureC: round1(parsed.Current.Temperature),
		WindSpeedKt:  math.Max(round1(parsed.Current.WindSpeed), 0),
		VisibilityNM: math.Max(round1(parsed.Current.Visibility/metresPerNM), 0),
		Source:       SourceOpenMeteo,
	}
	r.Recommendation = Recommend(r)
	return r, nil
}

// conditionFromCode maps WMO weather interpretation codes.
func conditionFromCode(code int) string {
	switch {
	case code == 0:
		return "Clear"
	case code == 1 || code == 2:
		return "Partly Cloudy"
	case code == 3:
		return "Overcast"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code == 61 || code == 80:
		return "Light Rain"
	case code == 63 || code == 66 || code == 81:
		return "Rain"
	case code == 65 || code == 67 || code == 82:
		return "Heavy Rain"
	case code >= 71 && code <= 77, code == 85, code == 86:
		return "Snow"
	case code >= 95 && code <= 99:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
