package weather

import (
	"strconv"
	"time"
)

var testStart = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

// day builds the i-th day of a test window.
func day(i int, high, low float64, rain int, wind float64, code int, uv float64) DailyForecast {
	return NewDailyForecast(testStart.AddDate(0, 0, i), high, low, rain, wind, code, uv, "", "")
}

// uniformDays returns n identical days.
func uniformDays(n int, high, low float64, rain int, wind float64, code int, uv float64) []DailyForecast {
	days := make([]DailyForecast, n)
	for i := range days {
		days[i] = day(i, high, low, rain, wind, code, uv)
	}
	return days
}

// hoursWithRain returns an hourly series labelled h0, h1, ... with the given
// rain chances and no wind.
func hoursWithRain(rain ...int) []HourlyForecast {
	hours := make([]HourlyForecast, len(rain))
	for i, r := range rain {
		hours[i] = HourlyForecast{Time: hourLabel(i), RainChance: r}
	}
	return hours
}

func hourLabel(i int) string {
	return "h" + strconv.Itoa(i)
}
