package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"weather-notify/internal/domain/model"
	"weather-notify/internal/domain/ports"
)

const (
	// DefaultBaseURL is the public Open-Meteo API.
	DefaultBaseURL = "https://api.open-meteo.com"
	forecastPath   = "/v1/forecast"
	forecastDays   = 3
	timeLayout     = "2006-01-02T15:04"
	dayLayout      = "2006-01-02"
)

// Client implements WeatherProvider using the Open-Meteo forecast API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	location   model.Location
	units      model.UnitSystem
	logger     ports.Logger
	now        func() time.Time
}

var _ ports.WeatherProvider = (*Client)(nil)

// New creates a new Open-Meteo client for a fixed location.
func New(baseURL string, location model.Location, units model.UnitSystem, timeout time.Duration, logger ports.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if units == "" {
		units = model.Metric
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		location:   location,
		units:      units,
		logger:     logger,
		now:        time.Now,
	}
}

type forecastResponse struct {
	Current struct {
		Time          string  `json:"time"`
		Temperature   float64 `json:"temperature_2m"`
		Humidity      float64 `json:"relative_humidity_2m"`
		WeatherCode   int     `json:"weather_code"`
		WindSpeed     float64 `json:"wind_speed_10m"`
		WindDirection float64 `json:"wind_direction_10m"`
	} `json:"current"`
	Daily struct {
		Time        []string  `json:"time"`
		WeatherCode []int     `json:"weather_code"`
		TempMax     []float64 `json:"temperature_2m_max"`
		TempMin     []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

// CurrentWeather retrieves current conditions and a short daily forecast.
func (c *Client) CurrentWeather(ctx context.Context) (model.Weather, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.forecastURL(), http.NoBody)
	if err != nil {
		return model.Weather{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	queryTime := c.now().UTC()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Weather{}, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return model.Weather{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.Weather{}, fmt.Errorf("decode response: %w", err)
	}

	weather, err := c.toWeather(payload, queryTime)
	if err != nil {
		return model.Weather{}, err
	}

	if c.logger != nil {
		c.logger.Info(ctx, "weather fetched from open-meteo",
			"location", weather.Location.Text,
			"conditions", len(weather.Conditions))
	}
	return weather, nil
}

func (c *Client) forecastURL() string {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(c.location.Latitude, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(c.location.Longitude, 'f', 4, 64))
	q.Set("current", "temperature_2m,relative_humidity_2m,weather_code,wind_speed_10m,wind_direction_10m")
	q.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min")
	q.Set("timezone", "UTC")
	q.Set("forecast_days", strconv.Itoa(forecastDays))
	if c.units == model.Imperial {
		q.Set("temperature_unit", "fahrenheit")
		q.Set("wind_speed_unit", "mph")
	}
	return c.baseURL + forecastPath + "?" + q.Encode()
}

func (c *Client) toWeather(payload forecastResponse, queryTime time.Time) (model.Weather, error) {
	if payload.Current.Time == "" {
		return model.Weather{}, fmt.Errorf("empty current weather data")
	}

	observed, err := time.Parse(timeLayout, payload.Current.Time)
	if err != nil {
		return model.Weather{}, fmt.Errorf("parse observation time %q: %w", payload.Current.Time, err)
	}

	current := model.Condition{
		Text: conditionText(payload.Current.WeatherCode),
		Temperature: model.Temperature{
			Current: round(payload.Current.Temperature),
			Low:     round(payload.Current.Temperature),
			High:    round(payload.Current.Temperature),
		},
		Humidity: round(payload.Current.Humidity),
		Wind: model.Wind{
			Speed:     round(payload.Current.WindSpeed),
			Direction: compassDirection(payload.Current.WindDirection),
		},
	}

	daily := payload.Daily
	days := min(len(daily.Time), len(daily.WeatherCode), len(daily.TempMax), len(daily.TempMin))
	if days > 0 {
		current.Temperature.Low = round(daily.TempMin[0])
		current.Temperature.High = round(daily.TempMax[0])
	}

	conditions := make([]model.Condition, 0, max(days, 1))
	conditions = append(conditions, current)
	for i := 1; i < days; i++ {
		if _, err := time.Parse(dayLayout, daily.Time[i]); err != nil {
			continue
		}
		conditions = append(conditions, model.Condition{
			Text: conditionText(daily.WeatherCode[i]),
			Temperature: model.Temperature{
				Current: round((daily.TempMax[i] + daily.TempMin[i]) / 2),
				Low:     round(daily.TempMin[i]),
				High:    round(daily.TempMax[i]),
			},
		})
	}

	return model.Weather{
		Location:   c.location,
		Time:       observed.UTC(),
		QueryTime:  queryTime,
		Units:      c.units,
		Conditions: conditions,
	}, nil
}

func round(v float64) int {
	return int(math.Round(v))
}

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func compassDirection(degrees float64) string {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	idx := int(math.Round(d/45)) % len(compassPoints)
	return compassPoints[idx]
}

// conditionText maps WMO weather interpretation codes to text.
func conditionText(code int) string {
	switch code {
	case 0:
		return "Clear sky"
	case 1:
		return "Mainly clear"
	case 2:
		return "Partly cloudy"
	case 3:
		return "Overcast"
	case 45, 48:
		return "Fog"
	case 51, 53, 55:
		return "Drizzle"
	case 56, 57:
		return "Freezing drizzle"
	case 61, 63, 65:
		return "Rain"
	case 66, 67:
		return "Freezing rain"
	case 71, 73, 75:
		return "Snow"
	case 77:
		return "Snow grains"
	case 80, 81, 82:
		return "Rain showers"
	case 85, 86:
		return "Snow showers"
	case 95:
		return "Thunderstorm"
	case 96, 99:
		return "Thunderstorm with hail"
	default:
		return "Unknown"
	}
}
