package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"weather-notify/internal/domain/model"
	"weather-notify/internal/domain/ports"
)

// WeatherBroadcast fetches the weather and broadcasts it to the skins.
type WeatherBroadcast struct {
	provider    ports.WeatherProvider
	broadcaster ports.Broadcaster
	logger      ports.Logger

	mu      sync.Mutex
	enabled bool
}

// WeatherBroadcastConfig controls optional behaviours for the broadcast.
type WeatherBroadcastConfig struct {
	Enabled bool
}

// NewWeatherBroadcast constructs a WeatherBroadcast use case.
func NewWeatherBroadcast(
	provider ports.WeatherProvider,
	broadcaster ports.Broadcaster,
	logger ports.Logger,
	cfg WeatherBroadcastConfig,
) *WeatherBroadcast {
	return &WeatherBroadcast{
		provider:    provider,
		broadcaster: broadcaster,
		logger:      logger,
		enabled:     cfg.Enabled,
	}
}

// Enabled reports whether the notification is currently shown.
func (b *WeatherBroadcast) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

// SetEnabled switches the notification on or off and rebroadcasts right away.
func (b *WeatherBroadcast) SetEnabled(ctx context.Context, enabled bool) error {
	b.mu.Lock()
	b.enabled = enabled
	b.mu.Unlock()

	b.logger.Info(ctx, "weather notification toggled", "enabled", enabled)
	return b.Run(ctx)
}

// Run executes one broadcast: a fresh weather update when the notification is
// enabled, a cancel otherwise.
func (b *WeatherBroadcast) Run(ctx context.Context) error {
	if !b.Enabled() {
		b.logger.Info(ctx, "broadcasting weather cancel")
		if err := b.broadcaster.Send(ctx, model.NewWeatherCancel()); err != nil {
			return fmt.Errorf("broadcast cancel: %w", err)
		}
		return nil
	}

	start := time.Now()
	weather, err := b.provider.CurrentWeather(ctx)
	if err != nil {
		b.logger.Error(ctx, "failed to fetch weather", "error", err)
		return fmt.Errorf("fetch weather: %w", err)
	}

	if err := b.broadcaster.Send(ctx, model.NewWeatherUpdate(weather)); err != nil {
		b.logger.Error(ctx, "failed to broadcast weather", "error", err)
		return fmt.Errorf("broadcast weather: %w", err)
	}

	b.logger.Info(ctx, "weather broadcast completed",
		"location", weather.Location.Text,
		"conditions", len(weather.Conditions),
		"duration", time.Since(start))
	return nil
}
