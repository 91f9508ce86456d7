package weather

import (
	"errors"
	"testing"
)

func TestBestTimeWindow(t *testing.T) {
	rainExcept := func(n, rain int, dry ...int) []HourlyForecast {
		chances := make([]int, n)
		for i := range chances {
			chances[i] = rain
		}
		for _, i := range dry {
			chances[i] = 0
		}
		return hoursWithRain(chances...)
	}

	windyFirstHour := hoursWithRain(make([]int, 24)...)
	windyFirstHour[0].WindSpeed = 10

	stormy := rainExcept(24, 100)
	for i := range stormy {
		stormy[i].WindSpeed = 10
	}

	tests := []struct {
		name      string
		hours     []HourlyForecast
		wantStart string
		wantEnd   string
	}{
		{"all dry keeps earliest", hoursWithRain(make([]int, 24)...), "h0", "h2"},
		{"dry stretch wins", rainExcept(24, 50, 5, 6, 7), "h5", "h7"},
		{"wind at start penalizes first window", windyFirstHour, "h1", "h3"},
		{"late dry hours outside search range", rainExcept(24, 100, 17, 18, 19), "h15", "h17"},
		{"two hours", hoursWithRain(0, 0), "h0", "h1"},
		{"single hour", hoursWithRain(0), "h0", "h0"},
		{"every window scores below zero", stormy, "h0", "h2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BestTimeWindow(tt.hours)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Start != tt.wantStart || got.End != tt.wantEnd {
				t.Fatalf("window = %s-%s, want %s-%s", got.Start, got.End, tt.wantStart, tt.wantEnd)
			}
			if got.Conditions != "dry and mild" {
				t.Fatalf("conditions = %q", got.Conditions)
			}
		})
	}
}

func TestBestTimeWindowEmpty(t *testing.T) {
	if _, err := BestTimeWindow(nil); !errors.Is(err, ErrEmptyForecast) {
		t.Fatalf("expected ErrEmptyForecast, got %v", err)
	}
}
