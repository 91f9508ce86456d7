package cache

import (
	"context"
	"time"

	"github.com/maypok86/otter/v2"
	"github.com/mmcloughlin/geohash"

	"github.com/i474232898/travel-weather/internal/weather"
)

// keyPrecision is the geohash length used for cache keys. Seven characters
// is a cell of roughly 150m, well inside one forecast grid point.
const keyPrecision = 7

// Key returns the cache key for loc.
func Key(loc weather.Location) string {
	return "forecast:" + geohash.EncodeWithPrecision(loc.Latitude, loc.Longitude, keyPrecision)
}

// Memory is an in-process forecast cache with write expiry.
type Memory struct {
	cache *otter.Cache[string, weather.Forecast]
}

// NewMemory creates a cache holding up to size forecasts for ttl each.
func NewMemory(size int, ttl time.Duration) *Memory {
	return &Memory{
		cache: otter.Must(&otter.Options[string, weather.Forecast]{
			MaximumSize:      size,
			ExpiryCalculator: otter.ExpiryWriting[string, weather.Forecast](ttl),
		}),
	}
}

func (m *Memory) Get(_ context.Context, loc weather.Location) (weather.Forecast, bool) {
	return m.cache.GetIfPresent(Key(loc))
}

func (m *Memory) Set(_ context.Context, loc weather.Location, f weather.Forecast) {
	m.cache.Set(Key(loc), f)
}

var _ weather.ForecastCache = (*Memory)(nil)
