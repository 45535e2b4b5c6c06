package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"weather-notify/internal/domain/model"
	"weather-notify/internal/domain/ports"
)

const (
	metricPrefix = "weather_notify_"

	resultSuccess = "success"
	resultError   = "error"

	opNotify = "notify"
	opCancel = "cancel"
)

// Collectors holds the skin metrics. One set is shared by all instrumented
// skins, distinguished by the skin label.
type Collectors struct {
	calls   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// NewCollectors creates the collectors and registers them with reg.
func NewCollectors(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		calls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "skin_calls_total",
				Help: "Total skin notify/cancel calls by result",
			},
			[]string{"skin", "op", "result"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "skin_latency_seconds",
				Help:    "Skin call latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"skin", "op"},
		),
	}
	for _, collector := range []prometheus.Collector{c.calls, c.latency} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Skin decorates a weather skin with call metrics.
type Skin struct {
	name       string
	next       ports.WeatherSkin
	collectors *Collectors
}

var _ ports.WeatherSkin = (*Skin)(nil)

// Instrument wraps next. A nil Collectors returns next unchanged.
func (c *Collectors) Instrument(name string, next ports.WeatherSkin) ports.WeatherSkin {
	if c == nil || next == nil {
		return next
	}
	return &Skin{name: name, next: next, collectors: c}
}

// Notify forwards to the wrapped skin.
func (s *Skin) Notify(ctx context.Context, weather model.Weather) error {
	start := time.Now()
	err := s.next.Notify(ctx, weather)
	s.observe(opNotify, start, err)
	return err
}

// Cancel forwards to the wrapped skin.
func (s *Skin) Cancel(ctx context.Context) error {
	start := time.Now()
	err := s.next.Cancel(ctx)
	s.observe(opCancel, start, err)
	return err
}

func (s *Skin) observe(op string, start time.Time, err error) {
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	s.collectors.calls.WithLabelValues(s.name, op, result).Inc()
	s.collectors.latency.WithLabelValues(s.name, op).Observe(time.Since(start).Seconds())
}
