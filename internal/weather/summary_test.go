package weather

import (
	"errors"
	"testing"
)

func TestClimateSummary(t *testing.T) {
	tests := []struct {
		name string
		city string
		days []DailyForecast
		want string
	}{
		{
			name: "hot and dry",
			city: "Lisbon",
			days: uniformDays(3, 30, 20, 0, 10, 0, 9),
			want: "This week in Lisbon: hot afternoons, warm evenings, mostly dry conditions. Pack light clothing, sunscreen, and hat and sunglasses.",
		},
		{
			name: "cool wet and windy",
			city: "Oslo",
			days: []DailyForecast{
				day(0, 12, 5, 60, 35, 61, 2),
				day(1, 12, 5, 60, 20, 61, 2),
				day(2, 12, 5, 10, 20, 3, 2),
			},
			want: "This week in Oslo: cool days, chilly evenings, rain likely midweek (2 days). Pack warm jacket, layers, umbrella, waterproof shoes, and windproof jacket.",
		},
		{
			name: "mild with a single shower",
			city: "Paris",
			days: []DailyForecast{
				day(0, 20, 14, 60, 10, 61, 4),
				day(1, 20, 14, 10, 10, 2, 4),
			},
			want: "This week in Paris: mild days, cool evenings, occasional showers possible. Pack light layers and umbrella.",
		},
		{
			name: "frequent rain",
			city: "Bergen",
			days: uniformDays(5, 8, 3, 90, 10, 63, 1),
			want: "This week in Bergen: cold days, chilly evenings, frequent rain expected (5 days). Pack warm jacket, layers, umbrella, and waterproof shoes.",
		},
		{
			name: "warm with mild evenings",
			city: "Rome",
			days: uniformDays(2, 24, 16, 0, 10, 1, 5),
			want: "This week in Rome: warm afternoons, mild evenings, mostly dry conditions. Pack light layers.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClimateSummary(tt.city, tt.days)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("summary mismatch:\n got: %s\nwant: %s", got, tt.want)
			}
		})
	}
}

func TestClimateSummaryEmpty(t *testing.T) {
	if _, err := ClimateSummary("Nowhere", nil); !errors.Is(err, ErrEmptyForecast) {
		t.Fatalf("expected ErrEmptyForecast, got %v", err)
	}
}

func TestFormatList(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"umbrella"}, "umbrella"},
		{[]string{"umbrella", "hat"}, "umbrella and hat"},
		{[]string{"umbrella", "hat", "scarf"}, "umbrella, hat, and scarf"},
	}
	for _, tt := range tests {
		if got := FormatList(tt.in); got != tt.want {
			t.Errorf("FormatList(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
