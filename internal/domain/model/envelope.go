package model

// Namespace prefixes every action and extra key of the weather update contract.
// Senders and skins match on these strings verbatim.
const Namespace = "ru.gelin.android.weather.notification.skin"

const (
	// ActionWeatherUpdate is the action a weather skin accepts.
	ActionWeatherUpdate = Namespace + ".ACTION_WEATHER_UPDATE"
	// ExtraWeather holds the updated Weather.
	ExtraWeather = Namespace + ".EXTRA_WEATHER"
	// ExtraEnableNotification holds the notification state. When false the
	// notification should be hidden.
	ExtraEnableNotification = Namespace + ".EXTRA_ENABLE_NOTIFICATION"
)

// Extra is a typed value carried in an envelope. The set of variants is
// closed: BoolExtra, StringExtra and WeatherExtra.
type Extra interface {
	isExtra()
}

// BoolExtra is a boolean extra.
type BoolExtra bool

// StringExtra is a string extra.
type StringExtra string

// WeatherExtra carries a Weather value.
type WeatherExtra struct {
	Weather Weather
}

func (BoolExtra) isExtra()    {}
func (StringExtra) isExtra()  {}
func (WeatherExtra) isExtra() {}

// Extras maps extra keys to their values.
type Extras map[string]Extra

// Envelope is a broadcast message: an action discriminator plus extras.
type Envelope struct {
	Action string
	Extras Extras
}

// NewEnvelope creates an envelope with the given action and no extras.
func NewEnvelope(action string) *Envelope {
	return &Envelope{Action: action, Extras: Extras{}}
}

// NewWeatherUpdate builds an envelope asking skins to show the given weather.
func NewWeatherUpdate(w Weather) *Envelope {
	return NewEnvelope(ActionWeatherUpdate).
		Put(ExtraEnableNotification, BoolExtra(true)).
		Put(ExtraWeather, WeatherExtra{Weather: w})
}

// NewWeatherCancel builds an envelope asking skins to hide the notification.
func NewWeatherCancel() *Envelope {
	return NewEnvelope(ActionWeatherUpdate).
		Put(ExtraEnableNotification, BoolExtra(false))
}

// Put sets an extra and returns the envelope for chaining.
func (e *Envelope) Put(key string, value Extra) *Envelope {
	if e.Extras == nil {
		e.Extras = Extras{}
	}
	e.Extras[key] = value
	return e
}

// Bool returns the boolean extra under key, or fallback when it is missing or
// holds another type.
func (e *Envelope) Bool(key string, fallback bool) bool {
	if e == nil {
		return fallback
	}
	if v, ok := e.Extras[key].(BoolExtra); ok {
		return bool(v)
	}
	return fallback
}

// Weather returns the weather extra under key. It reports false when the key
// is missing or holds another type.
func (e *Envelope) Weather(key string) (Weather, bool) {
	if e == nil {
		return Weather{}, false
	}
	switch v := e.Extras[key].(type) {
	case WeatherExtra:
		return v.Weather, true
	case *WeatherExtra:
		if v != nil {
			return v.Weather, true
		}
	}
	return Weather{}, false
}
