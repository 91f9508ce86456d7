package weather

import (
	"context"
)

// Provider abstracts a forecast source (e.g. Open-Meteo).
type Provider interface {
	Name() string
	FetchForecast(ctx context.Context, loc Location) (Forecast, error)
}

// Geocoder resolves free-text place names to coordinates.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

// ForecastCache is the contract the in-process and shared forecast caches
// satisfy. Implementations decide how a Location maps to a cache key.
type ForecastCache interface {
	Get(ctx context.Context, loc Location) (Forecast, bool)
	Set(ctx context.Context, loc Location, f Forecast)
}
