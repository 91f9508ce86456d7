package weather

import (
	"fmt"
)

// Category groups packing items.
type Category string

const (
	CategoryClothing Category = "clothing"
	CategoryRain     Category = "rain"
	CategorySun      Category = "sun"
	CategoryWind     Category = "wind"
)

// Icon returns the emoji shown next to items of this category.
func (c Category) Icon() string {
	switch c {
	case CategoryClothing:
		return "👕"
	case CategoryRain:
		return "☔"
	case CategorySun:
		return "🕶️"
	case CategoryWind:
		return "🧥"
	default:
		return ""
	}
}

// Priority ranks how important a packing item is.
type Priority string

const (
	PriorityEssential   Priority = "essential"
	PriorityRecommended Priority = "recommended"
	PriorityOptional    Priority = "optional"
)

// Rank orders priorities: essential > recommended > optional. Unknown values
// rank lowest.
func (p Priority) Rank() int {
	switch p {
	case PriorityEssential:
		return 3
	case PriorityRecommended:
		return 2
	case PriorityOptional:
		return 1
	default:
		return 0
	}
}

// PackingItem is one suggestion of a packing list. Item is the identity used
// when lists are merged.
type PackingItem struct {
	Item     string   `json:"item"`
	Category Category `json:"category"`
	Reason   string   `json:"reason"`
	Priority Priority `json:"priority"`
}

// windowStats are the aggregates the packing list and climate summary are
// derived from.
type windowStats struct {
	avgHigh   float64
	avgLow    float64
	rainyDays int
	coldDays  int
	maxUV     float64
	maxWind   float64
}

func summarize(days []DailyForecast) (windowStats, error) {
	if len(days) == 0 {
		return windowStats{}, ErrEmptyForecast
	}

	st := windowStats{
		maxUV:   days[0].UVIndex,
		maxWind: days[0].WindSpeed,
	}
	var sumHigh, sumLow float64
	for _, d := range days {
		sumHigh += d.HighTemp
		sumLow += d.LowTemp
		if d.RainChance > 50 {
			st.rainyDays++
		}
		if d.LowTemp < 10 {
			st.coldDays++
		}
		st.maxUV = max(st.maxUV, d.UVIndex)
		st.maxWind = max(st.maxWind, d.WindSpeed)
	}

	n := float64(len(days))
	st.avgHigh = sumHigh / n
	st.avgLow = sumLow / n
	return st, nil
}

// PackingList suggests what to pack for the given days. Items are grouped in
// emission order (clothing, rain, sun, wind, cold-weather extras), not
// sorted by priority.
func PackingList(days []DailyForecast) ([]PackingItem, error) {
	st, err := summarize(days)
	if err != nil {
		return nil, err
	}

	var items []PackingItem
	add := func(item string, cat Category, reason string, prio Priority) {
		items = append(items, PackingItem{Item: item, Category: cat, Reason: reason, Priority: prio})
	}

	avg := formatNumber(Round(st.avgHigh))
	switch {
	case st.avgHigh > 28:
		add("Shorts & light clothing", CategoryClothing, "Hot weather expected", PriorityEssential)
		add("Breathable fabrics", CategoryClothing, fmt.Sprintf("Average high %s°C", avg), PriorityRecommended)
	case st.avgHigh > 22:
		add("Light layers", CategoryClothing, "Warm days, cooler evenings", PriorityEssential)
		add("T-shirts & light pants", CategoryClothing, "Comfortable for mild weather", PriorityRecommended)
	case st.avgHigh > 15:
		add("Medium layers", CategoryClothing, "Variable temperatures", PriorityEssential)
		add("Light jacket", CategoryClothing, "Cool mornings and evenings", PriorityRecommended)
	default:
		add("Warm jacket", CategoryClothing, "Cold temperatures", PriorityEssential)
		add("Multiple layers", CategoryClothing, fmt.Sprintf("Average %s°C", avg), PriorityEssential)
	}

	switch {
	case st.rainyDays >= 3:
		add("Waterproof jacket", CategoryRain, fmt.Sprintf("Rain expected on %d days", st.rainyDays), PriorityEssential)
		add("Waterproof shoes", CategoryRain, "Frequent rain", PriorityEssential)
		add("Umbrella", CategoryRain, "Multiple rainy days", PriorityRecommended)
	case st.rainyDays > 0:
		add("Umbrella", CategoryRain, fmt.Sprintf("%d rainy %s expected", st.rainyDays, plural(st.rainyDays, "day", "days")), PriorityRecommended)
		add("Light rain jacket", CategoryRain, "Occasional showers", PriorityOptional)
	}

	switch {
	case st.maxUV > 8:
		add("Sunscreen SPF 50+", CategorySun, fmt.Sprintf("Very high UV index (%s)", formatNumber(st.maxUV)), PriorityEssential)
		add("Hat & sunglasses", CategorySun, "Strong sun exposure", PriorityEssential)
	case st.maxUV > 5:
		add("Sunscreen SPF 30+", CategorySun, fmt.Sprintf("Moderate UV index (%s)", formatNumber(st.maxUV)), PriorityRecommended)
		add("Sunglasses", CategorySun, "Sun protection", PriorityRecommended)
	}

	if st.maxWind > 35 {
		add("Windproof jacket", CategoryWind, fmt.Sprintf("Strong winds up to %s km/h", formatNumber(st.maxWind)), PriorityRecommended)
	}

	if st.coldDays > 2 {
		add("Warm scarf & gloves", CategoryClothing, fmt.Sprintf("%d cold nights expected", st.coldDays), PriorityRecommended)
	}

	return items, nil
}

// MergePackingLists concatenates lists, dropping any item whose name was
// already seen. The first occurrence wins and order is preserved.
func MergePackingLists(lists ...[]PackingItem) []PackingItem {
	seen := make(map[string]struct{})
	merged := []PackingItem{}
	for _, list := range lists {
		for _, item := range list {
			if _, ok := seen[item.Item]; ok {
				continue
			}
			seen[item.Item] = struct{}{}
			merged = append(merged, item)
		}
	}
	return merged
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
