package model

import "time"

// UnitSystem selects the units temperatures and wind speeds are expressed in.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

// TemperatureUnit returns the display suffix for temperatures.
func (u UnitSystem) TemperatureUnit() string {
	if u == Imperial {
		return "°F"
	}
	return "°C"
}

// SpeedUnit returns the display suffix for wind speeds.
func (u UnitSystem) SpeedUnit() string {
	if u == Imperial {
		return "mph"
	}
	return "km/h"
}

// Location identifies where the weather was observed.
type Location struct {
	Text      string
	Latitude  float64
	Longitude float64
}

// Temperature holds the current value and the expected range for a period.
type Temperature struct {
	Current int
	Low     int
	High    int
}

// Wind describes wind speed and the compass direction it blows from.
type Wind struct {
	Speed     int
	Direction string
}

// Condition is the weather for a single period. The first condition of a
// Weather is the current one, the rest are forecasts.
type Condition struct {
	Text        string
	Temperature Temperature
	Humidity    int
	Wind        Wind
}

// Weather is a snapshot of current conditions and a short forecast.
type Weather struct {
	Location   Location
	Time       time.Time
	QueryTime  time.Time
	Units      UnitSystem
	Conditions []Condition
}

// IsEmpty reports whether the weather carries no conditions.
func (w Weather) IsEmpty() bool {
	return len(w.Conditions) == 0
}

// Current returns the first condition, or false if there is none.
func (w Weather) Current() (Condition, bool) {
	if w.IsEmpty() {
		return Condition{}, false
	}
	return w.Conditions[0], true
}
