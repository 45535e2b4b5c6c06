package ports

import (
	"context"

	"weather-notify/internal/domain/model"
)

// WeatherSkin presents the weather notification. Skins are the collaborators a
// weather receiver dispatches to.
type WeatherSkin interface {
	// Notify shows or updates the notification for the given weather.
	Notify(ctx context.Context, weather model.Weather) error
	// Cancel removes any currently shown notification.
	Cancel(ctx context.Context) error
}
