package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/travel-weather/internal/weather"
)

const (
	openMeteoForecastURL  = "https://api.open-meteo.com/v1/forecast"
	openMeteoGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

	openMeteoTimeLayout = "2006-01-02T15:04"
	openMeteoDateLayout = "2006-01-02"

	forecastDays = 7
	hourlySpan   = 24
)

// OpenMeteoProvider implements weather.Provider for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoProvider creates a provider against the public Open-Meteo API.
func NewOpenMeteoProvider(cfg HTTPClientConfig) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: openMeteoForecastURL,
		httpCfg: cfg,
		circuit: newCircuitBreaker("openmeteo-forecast"),
	}
}

// WithBaseURL points the provider at another endpoint.
func (p *OpenMeteoProvider) WithBaseURL(u string) *OpenMeteoProvider {
	p.baseURL = u
	return p
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

type openMeteoForecast struct {
	Timezone       string `json:"timezone"`
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
		Time        string  `json:"time"`
	} `json:"current_weather"`
	Hourly struct {
		Time                     []string   `json:"time"`
		Temperature              []float64  `json:"temperature_2m"`
		PrecipitationProbability []*float64 `json:"precipitation_probability"`
		WeatherCode              []int      `json:"weathercode"`
		WindSpeed                []float64  `json:"windspeed_10m"`
		RelativeHumidity         []float64  `json:"relativehumidity_2m"`
	} `json:"hourly"`
	Daily struct {
		Time                        []string   `json:"time"`
		WeatherCode                 []int      `json:"weathercode"`
		TemperatureMax              []float64  `json:"temperature_2m_max"`
		TemperatureMin              []float64  `json:"temperature_2m_min"`
		PrecipitationProbabilityMax []*float64 `json:"precipitation_probability_max"`
		WindSpeedMax                []float64  `json:"windspeed_10m_max"`
		UVIndexMax                  []*float64 `json:"uv_index_max"`
		Sunrise                     []string   `json:"sunrise"`
		Sunset                      []string   `json:"sunset"`
	} `json:"daily"`
}

func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, loc weather.Location) (weather.Forecast, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", loc.Latitude))
		values.Set("longitude", fmt.Sprintf("%f", loc.Longitude))
		values.Set("hourly", "temperature_2m,precipitation_probability,weathercode,windspeed_10m,relativehumidity_2m")
		values.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min,precipitation_probability_max,windspeed_10m_max,uv_index_max,sunrise,sunset")
		values.Set("current_weather", "true")
		values.Set("temperature_unit", "celsius")
		values.Set("windspeed_unit", "kmh")
		values.Set("precipitation_unit", "mm")
		values.Set("timezone", "auto")
		values.Set("forecast_days", fmt.Sprintf("%d", forecastDays))

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Forecast{}, err
	}
	defer resp.Body.Close()

	var payload openMeteoForecast
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Forecast{}, fmt.Errorf("%w: decoding openmeteo response: %v", weather.ErrFetchFailed, err)
	}

	f := normalizeOpenMeteo(payload)
	if len(f.Daily) == 0 {
		return weather.Forecast{}, weather.ErrNoForecastData
	}
	return f, nil
}

func normalizeOpenMeteo(payload openMeteoForecast) weather.Forecast {
	cur := payload.CurrentWeather
	return weather.Forecast{
		Current: weather.CurrentConditions{
			Temp:        weather.Round(cur.Temperature),
			WindSpeed:   weather.Round(cur.WindSpeed),
			WeatherCode: cur.WeatherCode,
			Condition:   weather.ConditionLabel(cur.WeatherCode),
			Time:        cur.Time,
		},
		Hourly:   normalizeHourly(payload, cur.Time),
		Daily:    normalizeDaily(payload),
		Timezone: payload.Timezone,
	}
}

// normalizeHourly returns up to 24 hours starting at the hour of now, which
// is the current observation time in the location's own clock.
func normalizeHourly(payload openMeteoForecast, now string) []weather.HourlyForecast {
	h := payload.Hourly
	start := 0
	if ts, err := time.Parse(openMeteoTimeLayout, now); err == nil {
		current := ts.Truncate(time.Hour).Format(openMeteoTimeLayout)
		for i, t := range h.Time {
			if t >= current {
				start = i
				break
			}
		}
	}

	end := min(start+hourlySpan, len(h.Time))
	hours := make([]weather.HourlyForecast, 0, max(0, end-start))
	for i := start; i < end; i++ {
		ts, err := time.Parse(openMeteoTimeLayout, h.Time[i])
		label := h.Time[i]
		if err == nil {
			label = ts.Format("3 PM")
		}
		code := intAt(h.WeatherCode, i)
		hours = append(hours, weather.HourlyForecast{
			Time:        label,
			Timestamp:   ts,
			Temp:        weather.Round(floatAt(h.Temperature, i)),
			RainChance:  int(optionalAt(h.PrecipitationProbability, i)),
			WindSpeed:   weather.Round(floatAt(h.WindSpeed, i)),
			WeatherCode: code,
			Condition:   weather.ConditionLabel(code),
			Humidity:    int(floatAt(h.RelativeHumidity, i)),
		})
	}
	return hours
}

func normalizeDaily(payload openMeteoForecast) []weather.DailyForecast {
	d := payload.Daily
	days := make([]weather.DailyForecast, 0, len(d.Time))
	for i, date := range d.Time {
		ts, err := time.Parse(openMeteoDateLayout, date)
		if err != nil {
			continue
		}
		days = append(days, weather.NewDailyForecast(
			ts,
			weather.Round(floatAt(d.TemperatureMax, i)),
			weather.Round(floatAt(d.TemperatureMin, i)),
			int(optionalAt(d.PrecipitationProbabilityMax, i)),
			weather.Round(floatAt(d.WindSpeedMax, i)),
			intAt(d.WeatherCode, i),
			weather.Round(optionalAt(d.UVIndexMax, i)),
			stringAt(d.Sunrise, i),
			stringAt(d.Sunset, i),
		))
	}
	return days
}

func floatAt(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// optionalAt treats missing and null values as zero.
func optionalAt(s []*float64, i int) float64 {
	if i < len(s) && s[i] != nil {
		return *s[i]
	}
	return 0
}

func intAt(s []int, i int) int {
	if i < len(s) {
		return s[i]
	}
	return 0
}

func stringAt(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

// OpenMeteoGeocoder implements weather.Geocoder with the Open-Meteo
// geocoding API.
type OpenMeteoGeocoder struct {
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoGeocoder creates a geocoder against the public Open-Meteo API.
func NewOpenMeteoGeocoder(cfg HTTPClientConfig) *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{
		baseURL: openMeteoGeocodingURL,
		httpCfg: cfg,
		circuit: newCircuitBreaker("openmeteo-geocoding"),
	}
}

// WithBaseURL points the geocoder at another endpoint.
func (g *OpenMeteoGeocoder) WithBaseURL(u string) *OpenMeteoGeocoder {
	g.baseURL = u
	return g
}

func (g *OpenMeteoGeocoder) Search(ctx context.Context, query string) ([]weather.Place, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("name", query)
		values.Set("count", "5")
		values.Set("language", "en")
		values.Set("format", "json")

		u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, g.httpCfg, g.circuit, buildRequest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	var payload struct {
		Results []weather.Place `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding geocoding response: %v", weather.ErrSearchFailed, err)
	}
	if payload.Results == nil {
		return []weather.Place{}, nil
	}
	return payload.Results, nil
}
