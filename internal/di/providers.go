package di

import (
	"context"
	"log/slog"
	"maps"
	"os"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"weather-notify/internal/adapter/broadcast"
	"weather-notify/internal/adapter/discord"
	"weather-notify/internal/adapter/htmlwidget"
	"weather-notify/internal/adapter/logging"
	"weather-notify/internal/adapter/metrics"
	"weather-notify/internal/adapter/openmeteo"
	"weather-notify/internal/app"
	"weather-notify/internal/config"
	"weather-notify/internal/domain/model"
	"weather-notify/internal/domain/ports"
	"weather-notify/internal/usecase"
)

// Skins is the set of configured weather skins, keyed by name.
type Skins map[string]ports.WeatherSkin

func provideSlogLogger(cfg *config.Config) *slog.Logger {
	return logging.NewJSON(os.Stdout, cfg.LogLevel)
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideCollectors(reg *prometheus.Registry) (*metrics.Collectors, error) {
	return metrics.NewCollectors(reg)
}

func provideWeatherProvider(cfg *config.Config, logger ports.Logger) ports.WeatherProvider {
	location := model.Location{
		Text:      cfg.Weather.Location,
		Latitude:  cfg.Weather.Latitude,
		Longitude: cfg.Weather.Longitude,
	}
	return openmeteo.New(cfg.Weather.BaseURL, location, model.UnitSystem(cfg.Weather.Units), cfg.RequestTimeout, logger)
}

func provideSkins(cfg *config.Config, logger *logging.SLogger, mc *metrics.Collectors) Skins {
	skins := Skins{}
	if cfg.DiscordWebhookURL != "" {
		skins["discord"] = mc.Instrument("discord", discord.NewWebhook(cfg.DiscordWebhookURL, cfg.RequestTimeout, logger.With("skin", "discord")))
	}
	if cfg.WidgetPath != "" {
		skins["widget"] = mc.Instrument("widget", htmlwidget.New(cfg.WidgetPath, logger.With("skin", "widget")))
	}
	return skins
}

// provideBus registers one weather receiver per skin, in name order.
func provideBus(logger ports.Logger, skins Skins) *broadcast.Bus {
	bus := broadcast.NewBus(logger)
	for _, name := range slices.Sorted(maps.Keys(skins)) {
		bus.Register(usecase.NewWeatherReceiver(skins[name]))
	}
	logger.Info(context.Background(), "weather skins registered", "count", bus.Len(), "skins", slices.Sorted(maps.Keys(skins)))
	return bus
}

func provideBroadcastConfig(cfg *config.Config) usecase.WeatherBroadcastConfig {
	return usecase.WeatherBroadcastConfig{
		Enabled: cfg.NotificationEnabled,
	}
}

func provideOptions(cfg *config.Config, reg *prometheus.Registry) app.Options {
	return app.Options{
		Schedule:       cfg.ScheduleCron,
		MetricsAddr:    cfg.MetricsAddr,
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	}
}
