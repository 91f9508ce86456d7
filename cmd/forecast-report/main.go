// Command forecast-report prints the week's forecast for a city together
// with day scores, activity scores, packing list and climate summary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"github.com/i474232898/travel-weather/internal/weather"
	"github.com/i474232898/travel-weather/internal/weather/providers"
)

var (
	lat     = flag.Float64("lat", 0, "Latitude (skips the city search when set together with -lon)")
	lon     = flag.Float64("lon", 0, "Longitude")
	timeout = flag.Duration("timeout", 15*time.Second, "Timeout for provider calls")
	noColor = flag.Bool("no-color", false, "Disable colored output")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <city>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *noColor {
		color.NoColor = true
	}

	explicit, err := explicitLocation(flag.CommandLine)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	name := strings.Join(flag.Args(), " ")
	if name == "" && !explicit {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	httpCfg := providers.NewHTTPClientConfig(&http.Client{Timeout: *timeout}, 0)
	svc := weather.NewService(providers.NewOpenMeteoProvider(httpCfg), providers.NewOpenMeteoGeocoder(httpCfg), nil)

	loc := weather.Location{Latitude: *lat, Longitude: *lon}
	if !explicit {
		places, err := svc.Search(ctx, name)
		if err != nil {
			log.Fatalf("search failed: %v", err)
		}
		if len(places) == 0 {
			log.Fatalf("no place found for %q", name)
		}
		p := places[0]
		loc = weather.Location{Latitude: p.Latitude, Longitude: p.Longitude}
		name = p.Name
		if p.Country != "" {
			name += ", " + p.Country
		}
	} else if name == "" {
		name = loc.Key()
	}

	report, err := svc.Report(ctx, name, loc)
	if err != nil {
		log.Fatalf("forecast failed: %v", err)
	}
	printReport(os.Stdout, name, report)
}

// explicitLocation reports whether coordinates were given on the command
// line. -lat and -lon must be set together.
func explicitLocation(fs *flag.FlagSet) (bool, error) {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["lat"] != set["lon"] {
		return false, errors.New("-lat and -lon must be given together")
	}
	return set["lat"], nil
}

func labelColor(label string) *color.Color {
	switch label {
	case weather.LabelGreat:
		return color.New(color.FgGreen)
	case weather.LabelOkay:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= 7:
		return color.New(color.FgGreen)
	case score >= 5:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func printReport(w io.Writer, name string, r weather.Report) {
	bold := color.New(color.Bold)

	bold.Fprintf(w, "%s\n", name)
	fmt.Fprintf(w, "Now: %.0f°C, %s, wind %.0f km/h\n\n", r.Current.Temp, r.Current.Condition, r.Current.WindSpeed)

	bold.Fprintln(w, "Next 7 days")
	for _, d := range r.Daily {
		label := weather.DayLabel(d.QualityScore)
		fmt.Fprintf(w, "  %s  %3.0f° / %3.0f°  %3d%% rain  %3.0f km/h  %-22s ",
			d.Date.Format("Mon Jan 2"), d.HighTemp, d.LowTemp, d.RainChance, d.WindSpeed, d.Condition)
		labelColor(label).Fprintf(w, "%2d %s\n", d.QualityScore, label)
	}

	fmt.Fprintf(w, "\nBest time today: %s - %s (%s)\n\n", r.BestTimeWindow.Start, r.BestTimeWindow.End, r.BestTimeWindow.Conditions)

	bold.Fprintln(w, "Activities")
	for _, day := range r.ActivityScores {
		fmt.Fprintf(w, "  %s:", day.Date.Format("Mon"))
		for _, a := range day.Activities {
			fmt.Fprintf(w, " %s ", a.Name)
			scoreColor(a.Score).Fprintf(w, "%d", a.Score)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w)
	bold.Fprintln(w, "Packing list")
	for _, item := range r.PackingList {
		prio := color.New(color.FgHiBlack)
		if item.Priority == weather.PriorityEssential {
			prio = color.New(color.FgRed)
		}
		fmt.Fprintf(w, "  %s %s ", item.Category.Icon(), item.Item)
		prio.Fprintf(w, "[%s]", item.Priority)
		fmt.Fprintf(w, " %s\n", item.Reason)
	}

	fmt.Fprintf(w, "\n%s\n", r.ClimateSummary)
}
