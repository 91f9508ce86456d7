package weather

import (
	"fmt"
	"time"
)

// activityDays is how many leading days get activity scores in a report.
const activityDays = 3

// DayActivities holds the activity scores for one forecast day.
type DayActivities struct {
	Date       time.Time       `json:"date"`
	Label      string          `json:"label"`
	Activities []ActivityScore `json:"activities"`
}

// Report is a forecast together with every recommendation derived from it.
type Report struct {
	Forecast
	ClimateSummary string          `json:"climateSummary"`
	PackingList    []PackingItem   `json:"packingList"`
	BestTimeWindow TimeWindow      `json:"bestTimeWindow"`
	ActivityScores []DayActivities `json:"activityScores"`
}

// BuildReport derives all recommendations for f. name is used in the
// climate summary.
func BuildReport(name string, f Forecast) (Report, error) {
	summary, err := ClimateSummary(name, f.Daily)
	if err != nil {
		return Report{}, fmt.Errorf("climate summary: %w", err)
	}
	packing, err := PackingList(f.Daily)
	if err != nil {
		return Report{}, fmt.Errorf("packing list: %w", err)
	}
	window, err := BestTimeWindow(f.Hourly)
	if err != nil {
		return Report{}, fmt.Errorf("best time window: %w", err)
	}

	n := min(activityDays, len(f.Daily))
	activities := make([]DayActivities, 0, n)
	for _, day := range f.Daily[:n] {
		activities = append(activities, DayActivities{
			Date:       day.Date,
			Label:      DayLabel(day.QualityScore),
			Activities: ActivityScores(day),
		})
	}

	return Report{
		Forecast:       f,
		ClimateSummary: summary,
		PackingList:    packing,
		BestTimeWindow: window,
		ActivityScores: activities,
	}, nil
}

// CityReport is the per-city block of comparisons and trips.
type CityReport struct {
	Name           string        `json:"name"`
	Weather        Forecast      `json:"weather"`
	ClimateSummary string        `json:"climateSummary"`
	PackingList    []PackingItem `json:"packingList"`
}

// BuildCityReport summarizes f for the city called name.
func BuildCityReport(name string, f Forecast) (CityReport, error) {
	summary, err := ClimateSummary(name, f.Daily)
	if err != nil {
		return CityReport{}, fmt.Errorf("climate summary for %s: %w", name, err)
	}
	packing, err := PackingList(f.Daily)
	if err != nil {
		return CityReport{}, fmt.Errorf("packing list for %s: %w", name, err)
	}
	return CityReport{
		Name:           name,
		Weather:        f,
		ClimateSummary: summary,
		PackingList:    packing,
	}, nil
}

// CityComparison is the result of comparing two cities.
type CityComparison struct {
	City1      CityReport `json:"city1"`
	City2      CityReport `json:"city2"`
	Comparison Comparison `json:"comparison"`
}

// TripWeather is the weather for every city of a trip plus a packing list
// covering all of them.
type TripWeather struct {
	Cities              []CityReport  `json:"cities"`
	CombinedPackingList []PackingItem `json:"combinedPackingList"`
}

// AlertTarget is a location alerts are checked for, with the label alerts
// are reported under.
type AlertTarget struct {
	Label string
	Location
}
