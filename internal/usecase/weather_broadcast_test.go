package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-notify/internal/domain/model"
)

type stubProvider struct {
	weather model.Weather
	err     error
	calls   int
}

func (p *stubProvider) CurrentWeather(context.Context) (model.Weather, error) {
	p.calls++
	return p.weather, p.err
}

type captureBroadcaster struct {
	sent []*model.Envelope
	err  error
}

func (b *captureBroadcaster) Send(_ context.Context, env *model.Envelope) error {
	b.sent = append(b.sent, env)
	return b.err
}

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

func TestWeatherBroadcastRunSendsUpdate(t *testing.T) {
	provider := &stubProvider{weather: sampleWeather()}
	bus := &captureBroadcaster{}
	b := NewWeatherBroadcast(provider, bus, nopLogger{}, WeatherBroadcastConfig{Enabled: true})

	require.NoError(t, b.Run(context.Background()))
	require.Len(t, bus.sent, 1)

	env := bus.sent[0]
	assert.Equal(t, model.ActionWeatherUpdate, env.Action)
	assert.True(t, env.Bool(model.ExtraEnableNotification, false))
	w, ok := env.Weather(model.ExtraWeather)
	require.True(t, ok)
	assert.Equal(t, sampleWeather(), w)
}

func TestWeatherBroadcastRunSendsCancelWhenDisabled(t *testing.T) {
	provider := &stubProvider{weather: sampleWeather()}
	bus := &captureBroadcaster{}
	b := NewWeatherBroadcast(provider, bus, nopLogger{}, WeatherBroadcastConfig{Enabled: false})

	require.NoError(t, b.Run(context.Background()))
	require.Len(t, bus.sent, 1)
	assert.False(t, bus.sent[0].Bool(model.ExtraEnableNotification, true))
	assert.Zero(t, provider.calls)
}

func TestWeatherBroadcastProviderError(t *testing.T) {
	boom := errors.New("offline")
	bus := &captureBroadcaster{}
	b := NewWeatherBroadcast(&stubProvider{err: boom}, bus, nopLogger{}, WeatherBroadcastConfig{Enabled: true})

	err := b.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, bus.sent)
}

func TestWeatherBroadcastSetEnabledRebroadcasts(t *testing.T) {
	provider := &stubProvider{weather: sampleWeather()}
	bus := &captureBroadcaster{}
	b := NewWeatherBroadcast(provider, bus, nopLogger{}, WeatherBroadcastConfig{Enabled: true})

	require.NoError(t, b.SetEnabled(context.Background(), false))
	assert.False(t, b.Enabled())
	require.NoError(t, b.SetEnabled(context.Background(), true))
	assert.True(t, b.Enabled())

	require.Len(t, bus.sent, 2)
	assert.False(t, bus.sent[0].Bool(model.ExtraEnableNotification, true))
	assert.True(t, bus.sent[1].Bool(model.ExtraEnableNotification, false))
	assert.Equal(t, 1, provider.calls)
}

func TestWeatherBroadcastEndToEndThroughReceiver(t *testing.T) {
	skin := &recordingSkin{}
	receiver := NewWeatherReceiver(skin)
	bus := broadcasterFunc(receiver.Receive)
	b := NewWeatherBroadcast(&stubProvider{weather: sampleWeather()}, bus, nopLogger{}, WeatherBroadcastConfig{Enabled: true})

	require.NoError(t, b.Run(context.Background()))
	require.NoError(t, b.SetEnabled(context.Background(), false))

	require.Len(t, skin.notified, 1)
	assert.Equal(t, 1, skin.canceled)
}

type broadcasterFunc func(ctx context.Context, env *model.Envelope) error

func (f broadcasterFunc) Send(ctx context.Context, env *model.Envelope) error {
	return f(ctx, env)
}
