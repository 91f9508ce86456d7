package weather

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Service fetches forecasts and derives recommendations from them.
type Service struct {
	provider Provider
	geocoder Geocoder
	cache    ForecastCache
}

// NewService creates a new Service. cache may be nil to disable caching.
func NewService(provider Provider, geocoder Geocoder, cache ForecastCache) *Service {
	return &Service{
		provider: provider,
		geocoder: geocoder,
		cache:    cache,
	}
}

// Search looks up places matching query.
func (s *Service) Search(ctx context.Context, query string) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", ErrSearchFailed)
	}
	if s.geocoder == nil {
		return nil, fmt.Errorf("%w: no geocoder configured", ErrSearchFailed)
	}

	places, err := s.geocoder.Search(ctx, query)
	if err != nil {
		log.WithFields(log.Fields{"query": query, "error": err}).Warn("city search failed")
		if errors.Is(err, ErrSearchFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	return places, nil
}

// Forecast returns the forecast for loc, from cache when available.
func (s *Service) Forecast(ctx context.Context, loc Location) (Forecast, error) {
	if s.cache != nil {
		if f, ok := s.cache.Get(ctx, loc); ok {
			log.WithField("location", loc.Key()).Debug("forecast cache hit")
			return f, nil
		}
	}
	if s.provider == nil {
		return Forecast{}, fmt.Errorf("%w: no weather provider configured", ErrFetchFailed)
	}

	f, err := s.provider.FetchForecast(ctx, loc)
	if err != nil {
		log.WithFields(log.Fields{
			"provider": s.provider.Name(),
			"location": loc.Key(),
			"error":    err,
		}).Warn("forecast fetch failed")
		if errors.Is(err, ErrFetchFailed) || errors.Is(err, ErrNoForecastData) {
			return Forecast{}, err
		}
		return Forecast{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if len(f.Daily) == 0 {
		return Forecast{}, ErrNoForecastData
	}

	if s.cache != nil {
		s.cache.Set(ctx, loc, f)
	}
	return f, nil
}

// Forecasts fetches all locations concurrently. The first failure fails the
// whole call; on success results are in input order.
func (s *Service) Forecasts(ctx context.Context, locs []Location) ([]Forecast, error) {
	results := make([]Forecast, len(locs))

	g, gctx := errgroup.WithContext(ctx)
	for i, loc := range locs {
		g.Go(func() error {
			f, err := s.Forecast(gctx, loc)
			if err != nil {
				return err
			}
			results[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Report fetches the forecast for loc and derives every recommendation.
func (s *Service) Report(ctx context.Context, name string, loc Location) (Report, error) {
	f, err := s.Forecast(ctx, loc)
	if err != nil {
		return Report{}, err
	}
	return BuildReport(name, f)
}

// Compare fetches both cities concurrently and compares them.
func (s *Service) Compare(ctx context.Context, city1, city2 NamedLocation) (CityComparison, error) {
	forecasts, err := s.Forecasts(ctx, []Location{city1.Location, city2.Location})
	if err != nil {
		return CityComparison{}, err
	}

	cmp, err := CompareCities(forecasts[0], forecasts[1])
	if err != nil {
		return CityComparison{}, err
	}
	r1, err := BuildCityReport(city1.Name, forecasts[0])
	if err != nil {
		return CityComparison{}, err
	}
	r2, err := BuildCityReport(city2.Name, forecasts[1])
	if err != nil {
		return CityComparison{}, err
	}

	return CityComparison{City1: r1, City2: r2, Comparison: cmp}, nil
}

// TripWeather fetches every city of a trip concurrently and merges their
// packing lists.
func (s *Service) TripWeather(ctx context.Context, cities []NamedLocation) (TripWeather, error) {
	locs := make([]Location, len(cities))
	for i, c := range cities {
		locs[i] = c.Location
	}
	forecasts, err := s.Forecasts(ctx, locs)
	if err != nil {
		return TripWeather{}, err
	}

	trip := TripWeather{Cities: make([]CityReport, 0, len(cities))}
	lists := make([][]PackingItem, 0, len(cities))
	for i, c := range cities {
		r, err := BuildCityReport(c.Name, forecasts[i])
		if err != nil {
			return TripWeather{}, err
		}
		trip.Cities = append(trip.Cities, r)
		lists = append(lists, r.PackingList)
	}
	trip.CombinedPackingList = MergePackingLists(lists...)
	return trip, nil
}

// CheckAlerts evaluates prefs against the forecast of every target.
func (s *Service) CheckAlerts(ctx context.Context, targets []AlertTarget, prefs AlertPreferences) ([]AlertEvent, error) {
	locs := make([]Location, len(targets))
	for i, t := range targets {
		locs[i] = t.Location
	}
	forecasts, err := s.Forecasts(ctx, locs)
	if err != nil {
		return nil, err
	}

	events := []AlertEvent{}
	for i, t := range targets {
		events = append(events, EvaluateAlerts(t.Label, forecasts[i].Daily, prefs)...)
	}
	return events, nil
}
