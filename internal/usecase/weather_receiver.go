package usecase

import (
	"context"

	"weather-notify/internal/domain/model"
	"weather-notify/internal/domain/ports"
)

// WeatherReceiver receives weather update broadcasts and dispatches them to a
// skin.
//
// An envelope with action model.ActionWeatherUpdate carries the extras:
//   - model.ExtraWeather holds the updated weather;
//   - model.ExtraEnableNotification holds the notification state; when false
//     the notification should be hidden. A missing flag means true.
//
// Envelopes are sent each time the notification should be updated or cleared,
// which also happens when a skin is enabled or disabled.
type WeatherReceiver struct {
	skin ports.WeatherSkin
}

var _ ports.Receiver = (*WeatherReceiver)(nil)

// NewWeatherReceiver constructs a receiver dispatching to skin.
func NewWeatherReceiver(skin ports.WeatherSkin) *WeatherReceiver {
	return &WeatherReceiver{skin: skin}
}

// Actions returns the single action the receiver accepts.
func (r *WeatherReceiver) Actions() []string {
	return []string{model.ActionWeatherUpdate}
}

// Receive verifies the envelope, extracts the extras and calls Notify or
// Cancel on the skin. Envelopes that are nil, carry another action or lack a
// weather payload are ignored. Skin errors are returned as is.
func (r *WeatherReceiver) Receive(ctx context.Context, env *model.Envelope) error {
	if env == nil {
		return nil
	}
	if env.Action != model.ActionWeatherUpdate {
		return nil
	}

	if !env.Bool(model.ExtraEnableNotification, true) {
		return r.skin.Cancel(ctx)
	}

	weather, ok := env.Weather(model.ExtraWeather)
	if !ok {
		return nil
	}
	return r.skin.Notify(ctx, weather)
}
