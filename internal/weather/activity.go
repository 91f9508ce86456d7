package weather

import "github.com/i474232898/travel-weather/internal/common"

// Activity names, in the order ActivityScores reports them.
const (
	ActivityBeach       = "Beach"
	ActivitySightseeing = "Sightseeing"
	ActivityHiking      = "Hiking"
	ActivityIndoor      = "Cafés & Indoor"
	ActivityPhotography = "Photography"
)

// ActivityScore is how suitable a day is for one activity, from 0 to 10.
type ActivityScore struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Icon  string `json:"icon"`
}

// ActivityScores rates day for each activity in the fixed catalog order.
func ActivityScores(day DailyForecast) []ActivityScore {
	return []ActivityScore{
		{Name: ActivityBeach, Score: clampScore(beachScore(day)), Icon: "waves"},
		{Name: ActivitySightseeing, Score: clampScore(sightseeingScore(day)), Icon: "camera"},
		{Name: ActivityHiking, Score: clampScore(hikingScore(day)), Icon: "mountain"},
		{Name: ActivityIndoor, Score: clampScore(indoorScore(day)), Icon: "coffee"},
		{Name: ActivityPhotography, Score: clampScore(photographyScore(day)), Icon: "camera"},
	}
}

func beachScore(d DailyForecast) int {
	score := 5
	switch {
	case d.HighTemp > 25 && d.RainChance < 20:
		score = 9
	case d.HighTemp > 22 && d.RainChance < 30:
		score = 7
	case d.RainChance > 50:
		score = 2
	}
	if d.WindSpeed > 25 {
		score -= 2
	}
	return score
}

func sightseeingScore(d DailyForecast) int {
	score := 7
	switch {
	case d.RainChance > 60:
		score = 3
	case d.RainChance > 40:
		score = 5
	}
	if d.HighTemp > 32 || d.HighTemp < 5 {
		score -= 2
	}
	if d.WindSpeed > 30 {
		score--
	}
	return score
}

func hikingScore(d DailyForecast) int {
	score := 6
	switch {
	case d.RainChance < 20 && d.HighTemp > 12 && d.HighTemp < 28:
		score = 9
	case d.RainChance < 30 && d.WindSpeed < 20:
		score = 7
	}
	// Heavy rain overrides the fair-weather cases above.
	if d.RainChance > 50 {
		score = 2
	}
	if d.HighTemp > 30 || d.HighTemp < 8 {
		score -= 2
	}
	return score
}

func indoorScore(d DailyForecast) int {
	switch {
	case d.RainChance > 50:
		return 9
	case d.HighTemp < 15 || d.HighTemp > 30:
		return 8
	default:
		return 6
	}
}

func photographyScore(d DailyForecast) int {
	score := 7
	switch {
	case common.ContainsAny(d.conditionLabel(), "Clear", "Partly"):
		score = 9
	case d.RainChance > 60:
		score = 4
	}
	if d.WindSpeed > 30 {
		score--
	}
	return score
}
