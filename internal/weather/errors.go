package weather

import "errors"

var (
	// ErrEmptyForecast is returned by the aggregate recommendation functions
	// when they are given no days (or hours) to work with.
	ErrEmptyForecast = errors.New("forecast window is empty")

	// ErrFetchFailed is returned when a provider could not be reached or
	// answered with an error.
	ErrFetchFailed = errors.New("failed to fetch weather data")

	// ErrNoForecastData is returned when a provider answered successfully but
	// without any daily data.
	ErrNoForecastData = errors.New("no forecast data available")

	// ErrSearchFailed is returned when a geocoding lookup fails.
	ErrSearchFailed = errors.New("failed to search city")
)
