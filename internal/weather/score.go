package weather

// DayScore rates a day from 0 (avoid) to 10 (ideal). Each category deducts
// at most once, using the single bracket the value falls into.
func DayScore(rainChance int, windSpeed, highTemp float64, weatherCode int) int {
	score := 10

	switch {
	case rainChance > 70:
		score -= 4
	case rainChance > 50:
		score -= 3
	case rainChance > 30:
		score -= 2
	case rainChance > 10:
		score -= 1
	}

	switch {
	case windSpeed > 40:
		score -= 3
	case windSpeed > 30:
		score -= 2
	case windSpeed > 20:
		score -= 1
	}

	switch {
	case highTemp > 35 || highTemp < 5:
		score -= 2
	case highTemp > 32 || highTemp < 8:
		score -= 1
	}

	if IsSevere(weatherCode) {
		score -= 3
	}

	return clampScore(score)
}

// Day quality labels.
const (
	LabelGreat = "Great"
	LabelOkay  = "Okay"
	LabelAvoid = "Avoid"
)

// DayLabel buckets a day score into Great (>=8), Okay (>=5) or Avoid.
func DayLabel(score int) string {
	switch {
	case score >= 8:
		return LabelGreat
	case score >= 5:
		return LabelOkay
	default:
		return LabelAvoid
	}
}

func clampScore(score int) int {
	return max(0, min(10, score))
}
