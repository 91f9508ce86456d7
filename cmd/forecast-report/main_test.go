package main

import (
	"bytes"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/i474232898/travel-weather/internal/weather"
)

func TestPrintReport(t *testing.T) {
	color.NoColor = true

	start := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	f := weather.Forecast{Current: weather.CurrentConditions{Temp: 24, Condition: "Clear", WindSpeed: 8}}
	for i := range 3 {
		f.Daily = append(f.Daily, weather.NewDailyForecast(start.AddDate(0, 0, i), 30, 20, 0, 10, 0, 9, "", ""))
	}
	for i := range 24 {
		f.Hourly = append(f.Hourly, weather.HourlyForecast{Time: start.Add(time.Duration(i) * time.Hour).Format("3 PM")})
	}
	report, err := weather.BuildReport("Lisbon", f)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}

	var buf bytes.Buffer
	printReport(&buf, "Lisbon, Portugal", report)
	out := buf.String()

	for _, want := range []string{
		"Lisbon, Portugal",
		"Now: 24°C, Clear, wind 8 km/h",
		"Mon Jun 2",
		"10 Great",
		"Best time today: 12 AM - 2 AM (dry and mild)",
		"Sunscreen SPF 50+ [essential] Very high UV index (9)",
		"This week in Lisbon: hot afternoons",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExplicitLocation(t *testing.T) {
	tests := []struct {
		args     []string
		want     bool
		wantsErr bool
	}{
		{[]string{"Lisbon"}, false, false},
		{[]string{"-lat", "0", "-lon", "0"}, true, false},
		{[]string{"-lat", "38.7", "-lon", "-9.1", "Lisbon"}, true, false},
		{[]string{"-lat", "12"}, false, true},
		{[]string{"-lon", "12", "Paris"}, false, true},
	}
	for _, tt := range tests {
		fs := flag.NewFlagSet("forecast-report", flag.ContinueOnError)
		fs.Float64("lat", 0, "")
		fs.Float64("lon", 0, "")
		if err := fs.Parse(tt.args); err != nil {
			t.Fatalf("%v: parse: %v", tt.args, err)
		}
		got, err := explicitLocation(fs)
		if (err != nil) != tt.wantsErr || got != tt.want {
			t.Errorf("%v: got %v, %v; want %v, error %v", tt.args, got, err, tt.want, tt.wantsErr)
		}
	}
}
