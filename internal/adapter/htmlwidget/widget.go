package htmlwidget

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"weather-notify/internal/domain/model"
	"weather-notify/internal/domain/ports"
)

// Widget is a weather skin that renders the notification as an HTML fragment
// on disk, for status pages and dashboards that embed it. Cancel removes the
// file.
type Widget struct {
	path   string
	logger ports.Logger
}

var _ ports.WeatherSkin = (*Widget)(nil)

// New creates a widget skin writing to path.
func New(path string, logger ports.Logger) *Widget {
	return &Widget{path: path, logger: logger}
}

// Notify renders the weather and replaces the widget file atomically.
func (w *Widget) Notify(ctx context.Context, weather model.Weather) error {
	var buf bytes.Buffer
	if err := html.Render(&buf, Render(weather)); err != nil {
		return fmt.Errorf("render widget: %w", err)
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create widget dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".weather-*.html")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write widget: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close widget: %w", err)
	}
	if err := os.Rename(tmp.Name(), w.path); err != nil {
		return fmt.Errorf("replace widget: %w", err)
	}

	if w.logger != nil {
		w.logger.Info(ctx, "weather widget written", "path", w.path)
	}
	return nil
}

// Cancel removes the widget file. A missing file is not an error.
func (w *Widget) Cancel(ctx context.Context) error {
	if err := os.Remove(w.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove widget: %w", err)
	}
	if w.logger != nil {
		w.logger.Info(ctx, "weather widget removed", "path", w.path)
	}
	return nil
}

// Render builds the widget node tree for weather.
func Render(weather model.Weather) *html.Node {
	root := element(atom.Div, "weather")

	title := "Weather"
	if weather.Location.Text != "" {
		title = weather.Location.Text
	}
	root.AppendChild(textElement(atom.H3, "weather-location", title))

	current, ok := weather.Current()
	if !ok {
		root.AppendChild(textElement(atom.P, "weather-empty", "No weather data"))
		return root
	}

	units := weather.Units
	root.AppendChild(textElement(atom.P, "weather-condition", current.Text))
	root.AppendChild(textElement(atom.P, "weather-temperature",
		fmt.Sprintf("%d%s", current.Temperature.Current, units.TemperatureUnit())))

	details := element(atom.Ul, "weather-details")
	details.AppendChild(textElement(atom.Li, "",
		fmt.Sprintf("Low %d%s, high %d%s", current.Temperature.Low, units.TemperatureUnit(), current.Temperature.High, units.TemperatureUnit())))
	details.AppendChild(textElement(atom.Li, "", fmt.Sprintf("Humidity %d%%", current.Humidity)))
	if current.Wind.Direction != "" || current.Wind.Speed != 0 {
		details.AppendChild(textElement(atom.Li, "",
			fmt.Sprintf("Wind %s %d %s", current.Wind.Direction, current.Wind.Speed, units.SpeedUnit())))
	}
	root.AppendChild(details)

	if len(weather.Conditions) > 1 {
		forecast := element(atom.Ol, "weather-forecast")
		for _, c := range weather.Conditions[1:] {
			forecast.AppendChild(textElement(atom.Li, "",
				fmt.Sprintf("%s, %d..%d%s", c.Text, c.Temperature.Low, c.Temperature.High, units.TemperatureUnit())))
		}
		root.AppendChild(forecast)
	}

	if !weather.Time.IsZero() {
		updated := textElement(atom.Time, "weather-updated", weather.Time.UTC().Format("2006-01-02 15:04 MST"))
		updated.Attr = append(updated.Attr, html.Attribute{Key: "datetime", Val: weather.Time.UTC().Format("2006-01-02T15:04:05Z07:00")})
		root.AppendChild(updated)
	}
	return root
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}

func textElement(a atom.Atom, class, text string) *html.Node {
	n := element(a, class)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
