package weather

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Location represents a geographic point for which forecasts are fetched.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Key returns a canonical string for logging this location.
func (l Location) Key() string {
	return fmt.Sprintf("%.4f,%.4f", l.Latitude, l.Longitude)
}

// NamedLocation is a location with the display name the caller searched for.
type NamedLocation struct {
	Name string `json:"name"`
	Location
}

// Place is a geocoding search result.
type Place struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
	Admin1      string  `json:"admin1,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Timezone    string  `json:"timezone,omitempty"`
	Population  int     `json:"population,omitempty"`
}

// CurrentConditions is the observation at fetch time.
type CurrentConditions struct {
	Temp        float64 `json:"temp"`
	WindSpeed   float64 `json:"windSpeed"`
	WeatherCode int     `json:"weatherCode"`
	Condition   string  `json:"condition"`
	Time        string  `json:"time"`
}

// HourlyForecast is one hour of a forecast. Time is the display label ("3 PM").
type HourlyForecast struct {
	Time        string    `json:"time"`
	Timestamp   time.Time `json:"timestamp"`
	Temp        float64   `json:"temp"`
	RainChance  int       `json:"rainChance"`
	WindSpeed   float64   `json:"windSpeed"`
	WeatherCode int       `json:"weatherCode"`
	Condition   string    `json:"condition"`
	Humidity    int       `json:"humidity"`
}

// DailyForecast is one calendar day of a forecast. Temperatures are in °C and
// wind speeds in km/h.
type DailyForecast struct {
	Date         time.Time `json:"date"`
	HighTemp     float64   `json:"high"`
	LowTemp      float64   `json:"low"`
	RainChance   int       `json:"rainChance"`
	WeatherCode  int       `json:"weatherCode"`
	Condition    string    `json:"condition"`
	WindSpeed    float64   `json:"windSpeed"`
	UVIndex      float64   `json:"uv"`
	Sunrise      string    `json:"sunrise"`
	Sunset       string    `json:"sunset"`
	QualityScore int       `json:"score"`
}

// NewDailyForecast builds a day record, deriving its condition label and
// quality score from the supplied metrics.
func NewDailyForecast(date time.Time, high, low float64, rainChance int, windSpeed float64, code int, uv float64, sunrise, sunset string) DailyForecast {
	return DailyForecast{
		Date:         date,
		HighTemp:     high,
		LowTemp:      low,
		RainChance:   rainChance,
		WeatherCode:  code,
		Condition:    ConditionLabel(code),
		WindSpeed:    windSpeed,
		UVIndex:      uv,
		Sunrise:      sunrise,
		Sunset:       sunset,
		QualityScore: DayScore(rainChance, windSpeed, high, code),
	}
}

func (d DailyForecast) conditionLabel() string {
	if d.Condition != "" {
		return d.Condition
	}
	return ConditionLabel(d.WeatherCode)
}

// Forecast is a normalized multi-day/hourly forecast for one location.
type Forecast struct {
	Current  CurrentConditions `json:"current"`
	Hourly   []HourlyForecast  `json:"hourly"`
	Daily    []DailyForecast   `json:"daily"`
	Timezone string            `json:"timezone"`
}

// Round rounds half-way values towards positive infinity, so -2.5 becomes -2
// and 2.5 becomes 3. Every displayed forecast value goes through it.
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// formatNumber renders a value the way it is embedded in user-facing text:
// integral values without a decimal point, others with their shortest form.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
