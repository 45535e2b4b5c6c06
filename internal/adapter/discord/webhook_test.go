package discord

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-notify/internal/domain/model"
)

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

type call struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

type fakeDiscord struct {
	mu      sync.Mutex
	calls   []call
	patchFn func() int
}

func (f *fakeDiscord) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, _ := io.ReadAll(r.Body)
	c := call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &c.Body)
	}

	f.mu.Lock()
	f.calls = append(f.calls, c)
	n := len(f.calls)
	f.mu.Unlock()

	switch r.Method {
	case http.MethodPost:
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "msg-" + string(rune('0'+n))})
	case http.MethodPatch:
		status := http.StatusOK
		if f.patchFn != nil {
			status = f.patchFn()
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte("{}"))
	case http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	}
}

func weather() model.Weather {
	return model.Weather{
		Location: model.Location{Text: "Novosibirsk"},
		Time:     time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		Units:    model.Metric,
		Conditions: []model.Condition{
			{Text: "Clear sky", Temperature: model.Temperature{Current: -21, Low: -25, High: -18}, Humidity: 70, Wind: model.Wind{Speed: 4, Direction: "SW"}},
			{Text: "Snow", Temperature: model.Temperature{Current: -18, Low: -21, High: -15}},
		},
	}
}

func TestWebhookNotifyPostsThenEdits(t *testing.T) {
	fake := &fakeDiscord{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	hook := NewWebhook(srv.URL+"/api/webhooks/1/token", time.Second, nopLogger{})
	require.NoError(t, hook.Notify(context.Background(), weather()))
	require.NoError(t, hook.Notify(context.Background(), weather()))

	require.Len(t, fake.calls, 2)
	assert.Equal(t, http.MethodPost, fake.calls[0].Method)
	assert.Equal(t, "/api/webhooks/1/token", fake.calls[0].Path)
	assert.Equal(t, "wait=true", fake.calls[0].Query)
	assert.Equal(t, http.MethodPatch, fake.calls[1].Method)
	assert.Equal(t, "/api/webhooks/1/token/messages/msg-1", fake.calls[1].Path)

	embeds := fake.calls[0].Body["embeds"].([]any)
	embed := embeds[0].(map[string]any)
	assert.Equal(t, "Weather in Novosibirsk", embed["title"])
	assert.Equal(t, "**Clear sky**, -21°C", embed["description"])
	assert.Equal(t, "2024-01-15T12:00:00Z", embed["timestamp"])
	fields := embed["fields"].([]any)
	require.Len(t, fields, 4)
	assert.Equal(t, "-21°C (-25..-18)", fields[0].(map[string]any)["value"])
	assert.Equal(t, "SW 4 km/h", fields[2].(map[string]any)["value"])
	assert.Equal(t, "Tue 16 Jan", fields[3].(map[string]any)["name"])
}

func TestWebhookNotifyRepostsWhenMessageGone(t *testing.T) {
	fake := &fakeDiscord{patchFn: func() int { return http.StatusNotFound }}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	hook := NewWebhook(srv.URL, time.Second, nopLogger{})
	require.NoError(t, hook.Notify(context.Background(), weather()))
	require.NoError(t, hook.Notify(context.Background(), weather()))

	require.Len(t, fake.calls, 3)
	assert.Equal(t, http.MethodPost, fake.calls[2].Method)
	assert.Equal(t, "msg-3", hook.messageID)
}

func TestWebhookNotifyFailsOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	hook := NewWebhook(srv.URL, time.Second, nopLogger{})
	err := hook.Notify(context.Background(), weather())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestWebhookCancel(t *testing.T) {
	fake := &fakeDiscord{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	hook := NewWebhook(srv.URL+"?thread_id=42", time.Second, nopLogger{})

	require.NoError(t, hook.Cancel(context.Background()))
	assert.Empty(t, fake.calls)

	require.NoError(t, hook.Notify(context.Background(), weather()))
	require.NoError(t, hook.Cancel(context.Background()))
	require.NoError(t, hook.Cancel(context.Background()))

	require.Len(t, fake.calls, 2)
	assert.Equal(t, "thread_id=42&wait=true", fake.calls[0].Query)
	assert.Equal(t, http.MethodDelete, fake.calls[1].Method)
	assert.Equal(t, "/messages/msg-1", fake.calls[1].Path)
	assert.Equal(t, "thread_id=42", fake.calls[1].Query)
	assert.Empty(t, hook.messageID)
}

func TestWebhookRequiresURL(t *testing.T) {
	hook := NewWebhook("", time.Second, nopLogger{})
	assert.Error(t, hook.Notify(context.Background(), weather()))
}
