package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"weather-notify/internal/domain/model"
	"weather-notify/internal/domain/ports"
)

// Webhook is a weather skin that keeps a single Discord webhook message in sync
// with the latest weather. Notify posts the message once and edits it
// afterwards; Cancel deletes it.
type Webhook struct {
	webhookURL string
	httpClient *http.Client
	logger     ports.Logger

	mu        sync.Mutex
	messageID string
}

var _ ports.WeatherSkin = (*Webhook)(nil)

// NewWebhook creates a new Discord webhook skin.
func NewWebhook(webhookURL string, timeout time.Duration, logger ports.Logger) *Webhook {
	return &Webhook{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Notify shows the weather, editing the previously posted message if any.
func (w *Webhook) Notify(ctx context.Context, weather model.Weather) error {
	if w.webhookURL == "" {
		return fmt.Errorf("webhook URL is empty")
	}

	body, err := json.Marshal(buildPayload(weather))
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.messageID != "" {
		status, err := w.do(ctx, http.MethodPatch, w.messageURL(w.messageID), body, nil)
		if err == nil {
			w.logger.Info(ctx, "weather notification updated on discord", "message_id", w.messageID)
			return nil
		}
		if status != http.StatusNotFound {
			return err
		}
		// Removed on the Discord side; post a fresh one.
		w.messageID = ""
	}

	var created struct {
		ID string `json:"id"`
	}
	if _, err := w.do(ctx, http.MethodPost, w.endpoint("", url.Values{"wait": {"true"}}), body, &created); err != nil {
		return err
	}
	w.messageID = created.ID

	w.logger.Info(ctx, "weather notification sent to discord", "message_id", created.ID)
	return nil
}

// Cancel deletes the posted message. It is a no-op when nothing is shown.
func (w *Webhook) Cancel(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.messageID == "" {
		return nil
	}

	status, err := w.do(ctx, http.MethodDelete, w.messageURL(w.messageID), nil, nil)
	if err != nil && status != http.StatusNotFound {
		return err
	}

	w.logger.Info(ctx, "weather notification removed from discord", "message_id", w.messageID)
	w.messageID = ""
	return nil
}

func (w *Webhook) messageURL(id string) string {
	return w.endpoint("/messages/"+id, nil)
}

func (w *Webhook) endpoint(suffix string, extra url.Values) string {
	base, query, _ := strings.Cut(w.webhookURL, "?")
	values, _ := url.ParseQuery(query)
	for k, v := range extra {
		values[k] = v
	}
	target := strings.TrimRight(base, "/") + suffix
	if len(values) > 0 {
		target += "?" + values.Encode()
	}
	return target
}

func (w *Webhook) do(ctx context.Context, method, target string, body []byte, out any) (int, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func buildPayload(weather model.Weather) map[string]any {
	title := "Weather"
	if weather.Location.Text != "" {
		title = "Weather in " + weather.Location.Text
	}

	description := "No weather data"
	if current, ok := weather.Current(); ok {
		description = fmt.Sprintf("**%s**, %d%s", current.Text, current.Temperature.Current, weather.Units.TemperatureUnit())
	}

	embed := map[string]any{
		"title":       truncate(title, 256),
		"description": truncate(description, 4096),
		"fields":      convertFields(weather),
		"color":       0x5865F2,
		"footer": map[string]string{
			"text": "Weather Notification",
		},
	}
	if !weather.Time.IsZero() {
		embed["timestamp"] = weather.Time.UTC().Format(time.RFC3339)
	}

	return map[string]any{
		"content": "",
		"embeds":  []map[string]any{embed},
	}
}

func convertFields(weather model.Weather) []map[string]any {
	if weather.IsEmpty() {
		return nil
	}

	units := weather.Units
	current := weather.Conditions[0]
	fields := []map[string]any{
		{
			"name":   "Temperature",
			"value":  fmt.Sprintf("%d%s (%d..%d)", current.Temperature.Current, units.TemperatureUnit(), current.Temperature.Low, current.Temperature.High),
			"inline": true,
		},
		{
			"name":   "Humidity",
			"value":  fmt.Sprintf("%d%%", current.Humidity),
			"inline": true,
		},
		{
			"name":   "Wind",
			"value":  strings.TrimSpace(fmt.Sprintf("%s %d %s", current.Wind.Direction, current.Wind.Speed, units.SpeedUnit())),
			"inline": true,
		},
	}

	for i, forecast := range weather.Conditions[1:] {
		name := fmt.Sprintf("Day +%d", i+1)
		if !weather.Time.IsZero() {
			name = weather.Time.AddDate(0, 0, i+1).Format("Mon 02 Jan")
		}
		fields = append(fields, map[string]any{
			"name":   truncate(name, 256),
			"value":  truncate(fmt.Sprintf("%s, %d..%d%s", forecast.Text, forecast.Temperature.Low, forecast.Temperature.High, units.TemperatureUnit()), 1024),
			"inline": false,
		})
	}

	return fields
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return strings.TrimSpace(value[:limit-3]) + "..."
}
