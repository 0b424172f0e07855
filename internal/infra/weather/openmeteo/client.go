package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PMQ9/ai-attire/internal/domain/stylist"
)

const (
	defaultGeocodeBaseURL  = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastBaseURL = "https://api.open-meteo.com/v1/forecast"
)

// Client resolves location names to current weather via Open-Meteo's
// free geocoding and forecast APIs.
type Client struct {
	geocodeURL  string
	forecastURL string
	httpClient  *http.Client
}

// NewClient builds an API client. Empty base URLs fall back to the
// public Open-Meteo endpoints.
func NewClient(geocodeURL, forecastURL string) *Client {
	geocode := strings.TrimSpace(geocodeURL)
	if geocode == "" {
		geocode = defaultGeocodeBaseURL
	}
	forecast := strings.TrimSpace(forecastURL)
	if forecast == "" {
		forecast = defaultForecastBaseURL
	}
	return &Client{
		geocodeURL:  strings.TrimRight(geocode, "/"),
		forecastURL: strings.TrimRight(forecast, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// CurrentWeather geocodes the location and fetches current conditions.
// It fails when the location cannot be geocoded.
func (c *Client) CurrentWeather(ctx context.Context, location string) (stylist.WeatherSnapshot, error) {
	place, err := c.geocode(ctx, location)
	if err != nil {
		return stylist.WeatherSnapshot{}, err
	}

	current, err := c.fetchCurrent(ctx, place.Latitude, place.Longitude)
	if err != nil {
		return stylist.WeatherSnapshot{}, err
	}

	description := describeWeatherCode(current.WeatherCode)
	snapshot := stylist.WeatherSnapshot{
		Location:        place.DisplayName(),
		Latitude:        place.Latitude,
		Longitude:       place.Longitude,
		TemperatureC:    current.Temperature,
		TemperatureF:    current.Temperature*9/5 + 32,
		Description:     description,
		Humidity:        current.Humidity,
		WindSpeedKmh:    current.WindSpeed,
		PrecipitationMm: current.Precipitation,
	}
	snapshot.Summary = summarize(snapshot)
	return snapshot, nil
}

type geocodeResult struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (g geocodeResult) DisplayName() string {
	if g.Country != "" && g.Country != g.Name {
		return g.Name + ", " + g.Country
	}
	return g.Name
}

func (c *Client) geocode(ctx context.Context, location string) (geocodeResult, error) {
	endpoint := fmt.Sprintf("%s?name=%s&count=1", c.geocodeURL, url.QueryEscape(location))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return geocodeResult{}, fmt.Errorf("geocode request: %w", err)
	}

	var raw struct {
		Results []geocodeResult `json:"results"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return geocodeResult{}, fmt.Errorf("decode geocode response: %w", err)
	}
	if len(raw.Results) == 0 {
		return geocodeResult{}, fmt.Errorf("location %q could not be geocoded", location)
	}
	return raw.Results[0], nil
}

type currentConditions struct {
	Temperature   float64 `json:"temperature_2m"`
	Humidity      int     `json:"relative_humidity_2m"`
	Precipitation float64 `json:"precipitation"`
	WeatherCode   int     `json:"weather_code"`
	WindSpeed     float64 `json:"wind_speed_10m"`
}

func (c *Client) fetchCurrent(ctx context.Context, lat, lon float64) (currentConditions, error) {
	endpoint := fmt.Sprintf(
		"%s?latitude=%.4f&longitude=%.4f&current=temperature_2m,relative_humidity_2m,precipitation,weather_code,wind_speed_10m",
		c.forecastURL, lat, lon,
	)

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return currentConditions{}, fmt.Errorf("weather request: %w", err)
	}

	var raw struct {
		Current currentConditions `json:"current"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return currentConditions{}, fmt.Errorf("decode weather response: %w", err)
	}
	return raw.Current, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("status=%d body=%s", resp.StatusCode, string(payload))
	}
	return io.ReadAll(resp.Body)
}

// describeWeatherCode translates WMO weather interpretation codes into
// short human descriptions.
func describeWeatherCode(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code <= 2:
		return "Partly cloudy"
	case code == 3:
		return "Overcast"
	case code <= 48:
		return "Foggy"
	case code <= 57:
		return "Drizzle"
	case code <= 67:
		return "Rain"
	case code <= 77:
		return "Snow"
	case code <= 82:
		return "Rain showers"
	case code <= 86:
		return "Snow showers"
	case code >= 95:
		return "Thunderstorm"
	default:
		return "Mixed conditions"
	}
}

func summarize(s stylist.WeatherSnapshot) string {
	summary := fmt.Sprintf("%s in %s, %.0f°C (%.0f°F) with %d%% humidity and %.0f km/h wind",
		s.Description, s.Location, s.TemperatureC, s.TemperatureF, s.Humidity, s.WindSpeedKmh)
	if s.PrecipitationMm > 0 {
		summary += fmt.Sprintf(", %.1f mm precipitation", s.PrecipitationMm)
	}
	return summary + "."
}
