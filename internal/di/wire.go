//go:build wireinject

package di

import (
	"github.com/google/wire"

	"weather-notify/internal/adapter/broadcast"
	"weather-notify/internal/adapter/logging"
	"weather-notify/internal/app"
	"weather-notify/internal/config"
	"weather-notify/internal/domain/ports"
	"weather-notify/internal/usecase"
)

// InitializeApp wires the application components together.
func InitializeApp() (*app.App, error) {
	wire.Build(
		config.Load,
		provideSlogLogger,
		logging.New,
		wire.Bind(new(ports.Logger), new(*logging.SLogger)),
		provideRegistry,
		provideCollectors,
		provideWeatherProvider,
		provideSkins,
		provideBus,
		wire.Bind(new(ports.Broadcaster), new(*broadcast.Bus)),
		provideBroadcastConfig,
		usecase.NewWeatherBroadcast,
		provideOptions,
		app.New,
	)
	return nil, nil
}
