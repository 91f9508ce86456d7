package weather

import "fmt"

// Recommendation values of a Comparison.
const (
	RecommendCity1   = "city1"
	RecommendCity2   = "city2"
	RecommendSimilar = "similar"
)

const (
	overallBetter  = "significantly better weather conditions"
	overallSimilar = "similar weather conditions"
	labelSimilar   = "similar"
)

// metricDeadZone is the absolute difference below which two values are
// reported as similar.
const metricDeadZone = 3

// overallMargin is how much higher one city's mean day score must be to be
// recommended over the other.
const overallMargin = 1

// Comparison describes the first city relative to the second.
type Comparison struct {
	Temperature    string `json:"temperature"`
	Rain           string `json:"rain"`
	Wind           string `json:"wind"`
	Overall        string `json:"overall"`
	Recommendation string `json:"recommendation"`
}

// CompareCities compares today's temperature, rain and wind of a against b
// and recommends the city with the better mean day score over its window.
func CompareCities(a, b Forecast) (Comparison, error) {
	if len(a.Daily) == 0 || len(b.Daily) == 0 {
		return Comparison{}, fmt.Errorf("compare cities: %w", ErrEmptyForecast)
	}
	ta, tb := a.Daily[0], b.Daily[0]

	cmp := Comparison{
		Temperature: compareMetric(ta.HighTemp, tb.HighTemp, "warmer", "cooler"),
		// Less rain and less wind are better, so the operands are swapped.
		Rain: compareMetric(float64(tb.RainChance), float64(ta.RainChance), "drier", "wetter"),
		Wind: compareMetric(tb.WindSpeed, ta.WindSpeed, "calmer", "windier"),
	}

	scoreA, scoreB := meanScore(a.Daily), meanScore(b.Daily)
	switch {
	case scoreA > scoreB+overallMargin:
		cmp.Recommendation = RecommendCity1
		cmp.Overall = overallBetter
	case scoreB > scoreA+overallMargin:
		cmp.Recommendation = RecommendCity2
		cmp.Overall = overallBetter
	default:
		cmp.Recommendation = RecommendSimilar
		cmp.Overall = overallSimilar
	}
	return cmp, nil
}

func compareMetric(v1, v2 float64, higher, lower string) string {
	diff := v1 - v2
	if diff < 0 {
		diff = -diff
	}
	if diff < metricDeadZone {
		return labelSimilar
	}
	if v1 > v2 {
		return higher
	}
	return lower
}

func meanScore(days []DailyForecast) float64 {
	var sum int
	for _, d := range days {
		sum += d.QualityScore
	}
	return float64(sum) / float64(len(days))
}
