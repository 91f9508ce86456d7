package weather

import (
	"fmt"
	"time"
)

// Alert types.
const (
	AlertSevere      = "severe"
	AlertRain        = "rain"
	AlertTemperature = "temperature"
	AlertWind        = "wind"
)

// Alert severities.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
)

// alertHorizon is how many days ahead alerts are raised for.
const alertHorizon = 3

// AlertPreferences toggles which kinds of alerts a user receives.
type AlertPreferences struct {
	SevereWeather bool `json:"severeWeather"`
	Rain          bool `json:"rain"`
	Temperature   bool `json:"temperature"`
	Wind          bool `json:"wind"`
}

// DefaultAlertPreferences enables severe weather and rain alerts only.
func DefaultAlertPreferences() AlertPreferences {
	return AlertPreferences{SevereWeather: true, Rain: true}
}

// AlertEvent is a notable forecast condition for one location and day.
type AlertEvent struct {
	Location string    `json:"location"`
	Type     string    `json:"type"`
	Severity string    `json:"severity"`
	Day      string    `json:"day"`
	Message  string    `json:"message"`
	Date     time.Time `json:"date"`
}

// RelativeDay labels a day by its offset from today.
func RelativeDay(offset int) string {
	switch offset {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return fmt.Sprintf("In %d days", offset)
	}
}

// EvaluateAlerts checks the first three days of a forecast against the
// enabled preferences.
func EvaluateAlerts(location string, days []DailyForecast, prefs AlertPreferences) []AlertEvent {
	var events []AlertEvent
	for i := 0; i < min(alertHorizon, len(days)); i++ {
		day := days[i]
		emit := func(typ, severity, msg string) {
			events = append(events, AlertEvent{
				Location: location,
				Type:     typ,
				Severity: severity,
				Day:      RelativeDay(i),
				Message:  msg,
				Date:     day.Date,
			})
		}

		if prefs.SevereWeather && IsSevere(day.WeatherCode) {
			emit(AlertSevere, SeverityHigh, fmt.Sprintf("⚠️ Severe weather alert: %s expected", day.conditionLabel()))
		}
		if prefs.Rain && day.RainChance > 70 {
			emit(AlertRain, SeverityMedium, fmt.Sprintf("🌧️ Heavy rain likely (%d%% chance)", day.RainChance))
		}
		if prefs.Temperature {
			switch {
			case day.HighTemp > 35:
				emit(AlertTemperature, SeverityMedium, fmt.Sprintf("🌡️ Heat wave: %s°C expected", formatNumber(day.HighTemp)))
			case day.LowTemp < 0:
				emit(AlertTemperature, SeverityMedium, fmt.Sprintf("❄️ Freezing temperatures: %s°C", formatNumber(day.LowTemp)))
			}
		}
		if prefs.Wind && day.WindSpeed > 40 {
			emit(AlertWind, SeverityMedium, fmt.Sprintf("💨 Strong winds: %s km/h expected", formatNumber(day.WindSpeed)))
		}
	}
	return events
}
