package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/travel-weather/internal/account"
	"github.com/i474232898/travel-weather/internal/auth"
	"github.com/i474232898/travel-weather/internal/store"
	"github.com/i474232898/travel-weather/internal/weather"
)

type stubProvider struct {
	fail bool
}

func (stubProvider) Name() string { return "stub" }

// FetchForecast returns a hot dry week south of 45° and a cold wet one north
// of it.
func (p stubProvider) FetchForecast(_ context.Context, loc weather.Location) (weather.Forecast, error) {
	if p.fail {
		return weather.Forecast{}, errors.New("upstream unavailable")
	}
	start := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	high, low, rain, wind, code := 30.0, 20.0, 0, 10.0, 0
	if loc.Latitude > 45 {
		high, low, rain, wind, code = 8, 2, 80, 45, 95
	}
	f := weather.Forecast{Timezone: "UTC"}
	for i := range 7 {
		f.Daily = append(f.Daily, weather.NewDailyForecast(start.AddDate(0, 0, i), high, low, rain, wind, code, 5, "", ""))
	}
	for i := range 24 {
		f.Hourly = append(f.Hourly, weather.HourlyForecast{Time: start.Add(time.Duration(i) * time.Hour).Format("3 PM"), RainChance: rain})
	}
	return f, nil
}

type stubGeocoder struct{}

func (stubGeocoder) Search(_ context.Context, query string) ([]weather.Place, error) {
	return []weather.Place{{Name: query, Country: "Portugal", Latitude: 38.72, Longitude: -9.14}}, nil
}

func newTestApp(t *testing.T, provider weather.Provider) *fiber.App {
	t.Helper()
	tokens, err := auth.NewTokens("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app,
		weather.NewService(provider, stubGeocoder{}, nil),
		account.NewService(store.NewMemoryStore()),
		tokens,
	)
	return app
}

// call performs a request and decodes the JSON response into out when out
// is not nil.
func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding body: %v", err)
		}
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decoding response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

type errorBody struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

func register(t *testing.T, app *fiber.App) string {
	t.Helper()
	var out struct {
		Token string       `json:"token"`
		User  account.User `json:"user"`
	}
	status := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "ana@example.com", "password": "secret123", "name": "Ana",
	}, &out)
	if status != http.StatusCreated || out.Token == "" {
		t.Fatalf("register: status %d, token %q", status, out.Token)
	}
	return out.Token
}

func TestAuthRoutes(t *testing.T) {
	app := newTestApp(t, stubProvider{})
	register(t, app)

	var e errorBody
	if status := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "ANA@example.com", "password": "secret123", "name": "Other",
	}, &e); status != http.StatusConflict || !e.Error {
		t.Fatalf("duplicate register: status %d, body %+v", status, e)
	}

	if status := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "not-an-email", "password": "secret123", "name": "Bad",
	}, nil); status != http.StatusBadRequest {
		t.Fatalf("invalid register: status %d", status)
	}

	if status := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ana@example.com", "password": "wrong-pass",
	}, nil); status != http.StatusUnauthorized {
		t.Fatalf("bad login: status %d", status)
	}

	var login struct {
		Token string `json:"token"`
	}
	if status := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ana@example.com", "password": "secret123",
	}, &login); status != http.StatusOK || login.Token == "" {
		t.Fatalf("login: status %d", status)
	}

	var profile map[string]interface{}
	if status := call(t, app, http.MethodGet, "/api/user/profile", login.Token, nil, &profile); status != http.StatusOK {
		t.Fatalf("profile: status %d", status)
	}
	if _, leaked := profile["passwordHash"]; leaked {
		t.Fatal("profile exposes the password hash")
	}
	if profile["email"] != "ana@example.com" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestUserRoutesRequireToken(t *testing.T) {
	app := newTestApp(t, stubProvider{})
	for _, path := range []string{"/api/user/profile", "/api/user/trips", "/api/alerts/check"} {
		var e errorBody
		status := call(t, app, http.MethodGet, path, "", nil, &e)
		if status != http.StatusUnauthorized || e.Message != "please authenticate" {
			t.Errorf("%s: status %d, body %+v", path, status, e)
		}
	}
}

func TestForecastRoute(t *testing.T) {
	app := newTestApp(t, stubProvider{})

	var e errorBody
	if status := call(t, app, http.MethodGet, "/api/weather/forecast?lat=38.7", "", nil, &e); status != http.StatusBadRequest {
		t.Fatalf("missing lon: status %d", status)
	}
	if e.Message != "latitude and longitude required" {
		t.Fatalf("unexpected message %q", e.Message)
	}
	if status := call(t, app, http.MethodGet, "/api/weather/forecast?lat=abc&lon=1", "", nil, nil); status != http.StatusBadRequest {
		t.Fatalf("bad lat: status %d", status)
	}
	if status := call(t, app, http.MethodGet, "/api/weather/forecast?lat=120&lon=1", "", nil, nil); status != http.StatusBadRequest {
		t.Fatalf("out of range lat: status %d", status)
	}

	token := register(t, app)
	var report weather.Report
	if status := call(t, app, http.MethodGet, "/api/weather/forecast?lat=38.7&lon=-9.1&city=Lisbon", token, nil, &report); status != http.StatusOK {
		t.Fatalf("forecast: status %d", status)
	}
	if len(report.Daily) != 7 || len(report.ActivityScores) != 3 || len(report.PackingList) == 0 {
		t.Fatalf("incomplete report %+v", report)
	}
	wantSummary := "This week in Lisbon: hot afternoons, warm evenings, mostly dry conditions. Pack light clothing and sunscreen."
	if report.ClimateSummary != wantSummary {
		t.Fatalf("summary = %q", report.ClimateSummary)
	}

	var searches []account.RecentSearch
	if status := call(t, app, http.MethodGet, "/api/user/recent-searches", token, nil, &searches); status != http.StatusOK {
		t.Fatalf("recent searches: status %d", status)
	}
	if len(searches) != 1 || searches[0].Name != "Lisbon" {
		t.Fatalf("unexpected searches %+v", searches)
	}
}

func TestForecastUpstreamFailure(t *testing.T) {
	app := newTestApp(t, stubProvider{fail: true})
	var e errorBody
	status := call(t, app, http.MethodGet, "/api/weather/forecast?lat=38.7&lon=-9.1", "", nil, &e)
	if status != http.StatusBadGateway || e.Message != "failed to fetch weather data" {
		t.Fatalf("status %d, body %+v", status, e)
	}
}

func TestSearchRoute(t *testing.T) {
	app := newTestApp(t, stubProvider{})

	var e errorBody
	if status := call(t, app, http.MethodGet, "/api/weather/search", "", nil, &e); status != http.StatusBadRequest || e.Message != "query parameter required" {
		t.Fatalf("missing q: status %d, body %+v", status, e)
	}

	var places []weather.Place
	if status := call(t, app, http.MethodGet, "/api/weather/search?q=Lisbon", "", nil, &places); status != http.StatusOK {
		t.Fatalf("search: status %d", status)
	}
	if len(places) != 1 || places[0].Name != "Lisbon" {
		t.Fatalf("unexpected places %+v", places)
	}
}

func TestCompareRoute(t *testing.T) {
	app := newTestApp(t, stubProvider{})

	var e errorBody
	if status := call(t, app, http.MethodGet, "/api/weather/compare?lat1=38.7&lon1=-9.1", "", nil, &e); status != http.StatusBadRequest {
		t.Fatalf("missing city2: status %d", status)
	}
	if e.Message != "coordinates for both cities required" {
		t.Fatalf("unexpected message %q", e.Message)
	}

	var out weather.CityComparison
	status := call(t, app, http.MethodGet, "/api/weather/compare?lat1=38.7&lon1=-9.1&city1=Lisbon&lat2=59.9&lon2=10.7&city2=Oslo", "", nil, &out)
	if status != http.StatusOK {
		t.Fatalf("compare: status %d", status)
	}
	if out.City1.Name != "Lisbon" || out.City2.Name != "Oslo" {
		t.Fatalf("unexpected cities %q, %q", out.City1.Name, out.City2.Name)
	}
	if out.Comparison.Recommendation != weather.RecommendCity1 || out.Comparison.Temperature != "warmer" {
		t.Fatalf("unexpected comparison %+v", out.Comparison)
	}
}

func TestFavoritesAndAlerts(t *testing.T) {
	app := newTestApp(t, stubProvider{})
	token := register(t, app)

	oslo := map[string]interface{}{"name": "Oslo", "country": "Norway", "latitude": 59.9, "longitude": 10.7}
	var favs []account.Favorite
	if status := call(t, app, http.MethodPost, "/api/user/favorites", token, oslo, &favs); status != http.StatusOK || len(favs) != 1 {
		t.Fatalf("add favorite: status %d, %+v", status, favs)
	}
	if status := call(t, app, http.MethodPost, "/api/user/favorites", token, oslo, nil); status != http.StatusBadRequest {
		t.Fatalf("duplicate favorite: status %d", status)
	}
	if status := call(t, app, http.MethodPost, "/api/user/favorites", token, map[string]interface{}{"latitude": 1}, nil); status != http.StatusBadRequest {
		t.Fatalf("favorite without name: status %d", status)
	}

	var events []weather.AlertEvent
	if status := call(t, app, http.MethodGet, "/api/alerts/check", token, nil, &events); status != http.StatusOK {
		t.Fatalf("check alerts: status %d", status)
	}
	// Severe and rain alerts for each of the first three days.
	if len(events) != 6 {
		t.Fatalf("got %d events, want 6: %+v", len(events), events)
	}

	var prefs weather.AlertPreferences
	patch := map[string]bool{"severeWeather": false, "wind": true}
	if status := call(t, app, http.MethodPut, "/api/user/alert-preferences", token, patch, &prefs); status != http.StatusOK {
		t.Fatalf("update preferences: status %d", status)
	}
	if prefs != (weather.AlertPreferences{Rain: true, Wind: true}) {
		t.Fatalf("unexpected preferences %+v", prefs)
	}

	events = nil
	call(t, app, http.MethodGet, "/api/alerts/check", token, nil, &events)
	for _, e := range events {
		if e.Type == weather.AlertSevere {
			t.Fatalf("severe alert raised after opting out: %+v", e)
		}
	}
	if len(events) != 6 {
		t.Fatalf("got %d events, want rain and wind for three days", len(events))
	}

	if status := call(t, app, http.MethodDelete, "/api/user/favorites/"+favs[0].ID, token, nil, &favs); status != http.StatusOK || len(favs) != 0 {
		t.Fatalf("remove favorite: status %d, %+v", status, favs)
	}
}

func TestTripRoutes(t *testing.T) {
	app := newTestApp(t, stubProvider{})
	token := register(t, app)

	trip := map[string]interface{}{
		"name": "Lisbon to Oslo",
		"cities": []map[string]interface{}{
			{"name": "Lisbon", "latitude": 38.7, "longitude": -9.1},
			{"name": "Oslo", "latitude": 59.9, "longitude": 10.7},
		},
	}
	var trips []account.Trip
	if status := call(t, app, http.MethodPost, "/api/user/trips", token, trip, &trips); status != http.StatusOK || len(trips) != 1 {
		t.Fatalf("create trip: status %d, %+v", status, trips)
	}
	id := trips[0].ID

	var tw tripWeatherResponse
	if status := call(t, app, http.MethodGet, "/api/user/trips/"+id, token, nil, &tw); status != http.StatusOK {
		t.Fatalf("trip weather: status %d", status)
	}
	if len(tw.Cities) != 2 || tw.Cities[0].Name != "Lisbon" || tw.Cities[1].ClimateSummary == "" {
		t.Fatalf("unexpected trip weather %+v", tw)
	}
	seen := map[string]bool{}
	for _, it := range tw.CombinedPackingList {
		if seen[it.Item] {
			t.Fatalf("duplicate %q in combined packing list", it.Item)
		}
		seen[it.Item] = true
	}
	if !seen["Shorts & light clothing"] || !seen["Warm jacket"] {
		t.Fatalf("combined list misses a city's items: %+v", tw.CombinedPackingList)
	}

	var updated account.Trip
	if status := call(t, app, http.MethodPut, "/api/user/trips/"+id, token, map[string]string{"name": "Nordic"}, &updated); status != http.StatusOK {
		t.Fatalf("update trip: status %d", status)
	}
	if updated.Name != "Nordic" || len(updated.Cities) != 2 {
		t.Fatalf("unexpected trip %+v", updated)
	}

	if status := call(t, app, http.MethodGet, "/api/user/trips/unknown", token, nil, nil); status != http.StatusNotFound {
		t.Fatalf("unknown trip: status %d", status)
	}

	var msg map[string]string
	if status := call(t, app, http.MethodDelete, "/api/user/trips/"+id, token, nil, &msg); status != http.StatusOK || msg["message"] != "Trip deleted" {
		t.Fatalf("delete trip: status %d, %+v", status, msg)
	}
	trips = nil
	call(t, app, http.MethodGet, "/api/user/trips", token, nil, &trips)
	if len(trips) != 0 {
		t.Fatalf("trip still listed: %+v", trips)
	}
}

func TestCoordinate(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		v, err := coordinate(c, "lat")
		switch {
		case err != nil:
			return c.SendString("error")
		case v == nil:
			return c.SendString("missing")
		default:
			return c.SendString(strconv.FormatFloat(*v, 'f', -1, 64))
		}
	})

	for query, want := range map[string]string{
		"":           "missing",
		"?lat=":      "missing",
		"?lat=0":     "0",
		"?lat=-9.5":  "-9.5",
		"?lat=north": "error",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+query, nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		if string(body) != want {
			t.Errorf("%q: got %q, want %q", query, body, want)
		}
	}
}

func TestCompareRouteValidatesRanges(t *testing.T) {
	app := newTestApp(t, stubProvider{})
	status := call(t, app, http.MethodGet, "/api/weather/compare?lat1=38.7&lon1=-9.1&lat2=95&lon2=10.7", "", nil, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("out of range latitude: status %d", status)
	}
}
