package providers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/i474232898/travel-weather/internal/weather"
)

// geocoderMu guards the package-level API key of the geocoder library.
var geocoderMu sync.Mutex

// GoogleGeocoder implements weather.Geocoder with the Google Geocoding API.
// It resolves a query to its single best match.
//
// The geocoder library always uses http.DefaultClient, so callers should
// give that client a timeout as well; lookups here are bounded by the
// client timeout of httpCfg.
type GoogleGeocoder struct {
	apiKey  string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
	lookup  func(geocoder.Address) (geocoder.Location, error)
}

// NewGoogleGeocoder creates a geocoder using the given Google API key.
func NewGoogleGeocoder(apiKey string, cfg HTTPClientConfig) *GoogleGeocoder {
	return &GoogleGeocoder{
		apiKey:  apiKey,
		httpCfg: cfg,
		circuit: newCircuitBreaker("google-geocoding"),
		lookup:  geocoder.Geocoding,
	}
}

// Search accepts "City" or "City, Country".
func (g *GoogleGeocoder) Search(ctx context.Context, query string) ([]weather.Place, error) {
	if g.apiKey == "" {
		return nil, fmt.Errorf("%w: google geocoding api key is not configured", weather.ErrSearchFailed)
	}
	addr := parseAddress(query)

	if g.httpCfg.Limiter != nil {
		if err := g.httpCfg.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limit wait canceled: %v", weather.ErrSearchFailed, err)
		}
	}
	if c := g.httpCfg.Client; c != nil && c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	result, err := g.circuit.Execute(func() (interface{}, error) {
		return g.resolve(ctx, addr)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrSearchFailed, err)
	}

	loc := result.(geocoder.Location)
	return []weather.Place{{
		Name:      addr.City,
		Country:   addr.Country,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}}, nil
}

// resolve runs the blocking lookup and gives up when ctx is done.
func (g *GoogleGeocoder) resolve(ctx context.Context, addr geocoder.Address) (geocoder.Location, error) {
	type result struct {
		loc geocoder.Location
		err error
	}
	done := make(chan result, 1)
	go func() {
		geocoderMu.Lock()
		defer geocoderMu.Unlock()
		geocoder.ApiKey = g.apiKey
		loc, err := g.lookup(addr)
		done <- result{loc: loc, err: err}
	}()

	select {
	case <-ctx.Done():
		return geocoder.Location{}, ctx.Err()
	case r := <-done:
		return r.loc, r.err
	}
}

func parseAddress(query string) geocoder.Address {
	city, country, _ := strings.Cut(query, ",")
	return geocoder.Address{
		City:    strings.TrimSpace(city),
		Country: strings.TrimSpace(country),
	}
}
