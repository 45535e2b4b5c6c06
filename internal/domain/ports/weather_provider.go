package ports

import (
	"context"

	"weather-notify/internal/domain/model"
)

// WeatherProvider fetches the current weather.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context) (model.Weather, error)
}
