package weather

// conditionLabels maps WMO weather interpretation codes to display labels.
var conditionLabels = map[int]string{
	0:  "Clear",
	1:  "Mostly Clear",
	2:  "Partly Cloudy",
	3:  "Cloudy",
	45: "Foggy",
	48: "Foggy",
	51: "Light Drizzle",
	53: "Drizzle",
	55: "Heavy Drizzle",
	61: "Light Rain",
	63: "Rain",
	65: "Heavy Rain",
	71: "Light Snow",
	73: "Snow",
	75: "Heavy Snow",
	77: "Snow Grains",
	80: "Light Showers",
	81: "Showers",
	82: "Heavy Showers",
	85: "Light Snow Showers",
	86: "Snow Showers",
	95: "Thunderstorm",
	96: "Thunderstorm with Hail",
	99: "Severe Thunderstorm",
}

// ConditionLabel returns the human-readable label for a weather code, or
// "Unknown" when the code is not mapped.
func ConditionLabel(code int) string {
	if label, ok := conditionLabels[code]; ok {
		return label
	}
	return "Unknown"
}

// IsSevere reports whether code is heavy rain, heavy snow, heavy (snow)
// showers or a thunderstorm variant.
func IsSevere(code int) bool {
	switch code {
	case 65, 75, 82, 86, 95, 96, 99:
		return true
	default:
		return false
	}
}
