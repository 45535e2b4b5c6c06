package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config contains runtime configuration values.
type Config struct {
	ScheduleCron        string        `yaml:"schedule_cron"`
	RequestTimeout      time.Duration `yaml:"request_timeout"`
	NotificationEnabled bool          `yaml:"notification_enabled"`
	Weather             WeatherConfig `yaml:"weather"`
	DiscordWebhookURL   string        `yaml:"discord_webhook_url"`
	WidgetPath          string        `yaml:"widget_path"`
	MetricsAddr         string        `yaml:"metrics_addr"`
	LogLevel            string        `yaml:"log_level"`
}

// WeatherConfig selects where and how the weather is fetched.
type WeatherConfig struct {
	// BaseURL overrides the weather API endpoint; empty uses the provider default.
	BaseURL   string  `yaml:"base_url"`
	Location  string  `yaml:"location"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Units     string  `yaml:"units"`
}

const (
	defaultCron      = "*/30 * * * *" // every 30 minutes
	defaultTimeout   = 15 * time.Second
	defaultLocation  = "Novosibirsk"
	defaultLatitude  = 55.0415
	defaultLongitude = 82.9346
	defaultUnits     = "metric"
	defaultLogLevel  = "info"
)

// Load builds a Config from an optional YAML file named by WEATHER_CONFIG,
// then environment variables, then defaults.
func Load() (*Config, error) {
	cfg := &Config{
		ScheduleCron:        defaultCron,
		RequestTimeout:      defaultTimeout,
		NotificationEnabled: true,
		LogLevel:            defaultLogLevel,
		Weather: WeatherConfig{
			Location:  defaultLocation,
			Latitude:  defaultLatitude,
			Longitude: defaultLongitude,
			Units:     defaultUnits,
		},
	}

	if path := os.Getenv("WEATHER_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.ScheduleCron = getenvDefault("SCHEDULE_CRON", cfg.ScheduleCron)
	cfg.RequestTimeout = parseDurationDefault("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.NotificationEnabled = parseBoolDefault("NOTIFICATION_ENABLED", cfg.NotificationEnabled)
	cfg.Weather.BaseURL = getenvDefault("OPEN_METEO_URL", cfg.Weather.BaseURL)
	cfg.Weather.Location = getenvDefault("WEATHER_LOCATION", cfg.Weather.Location)
	cfg.Weather.Latitude = parseFloatDefault("WEATHER_LATITUDE", cfg.Weather.Latitude)
	cfg.Weather.Longitude = parseFloatDefault("WEATHER_LONGITUDE", cfg.Weather.Longitude)
	cfg.Weather.Units = getenvDefault("WEATHER_UNITS", cfg.Weather.Units)
	cfg.DiscordWebhookURL = getenvDefault("DISCORD_WEBHOOK_URL", cfg.DiscordWebhookURL)
	cfg.WidgetPath = getenvDefault("WIDGET_PATH", cfg.WidgetPath)
	cfg.MetricsAddr = getenvDefault("METRICS_ADDR", cfg.MetricsAddr)
	cfg.LogLevel = getenvDefault("LOG_LEVEL", cfg.LogLevel)

	if cfg.DiscordWebhookURL == "" && cfg.WidgetPath == "" {
		return nil, fmt.Errorf("DISCORD_WEBHOOK_URL or WIDGET_PATH is required")
	}

	if cfg.Weather.Units != "metric" && cfg.Weather.Units != "imperial" {
		return nil, fmt.Errorf("WEATHER_UNITS must be metric or imperial, got %q", cfg.Weather.Units)
	}

	if cfg.Weather.Latitude < -90 || cfg.Weather.Latitude > 90 || cfg.Weather.Longitude < -180 || cfg.Weather.Longitude > 180 {
		return nil, fmt.Errorf("weather coordinates out of range: %v,%v", cfg.Weather.Latitude, cfg.Weather.Longitude)
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultTimeout
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseFloatDefault(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func parseBoolDefault(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func parseDurationDefault(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
