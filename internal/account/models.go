package account

import (
	"slices"
	"time"

	"github.com/i474232898/travel-weather/internal/weather"
)

// User is an account together with everything it owns.
type User struct {
	ID               string                   `json:"id"`
	Email            string                   `json:"email"`
	PasswordHash     string                   `json:"-"`
	Name             string                   `json:"name"`
	Favorites        []Favorite               `json:"favorites"`
	Trips            []Trip                   `json:"trips"`
	RecentSearches   []RecentSearch           `json:"recentSearches"`
	AlertPreferences weather.AlertPreferences `json:"alertPreferences"`
	CreatedAt        time.Time                `json:"createdAt"`
}

// Favorite is a saved location.
type Favorite struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	AddedAt   time.Time `json:"addedAt"`
}

// Location returns the coordinates of the favorite.
func (f Favorite) Location() weather.Location {
	return weather.Location{Latitude: f.Latitude, Longitude: f.Longitude}
}

// Trip is a named, ordered list of cities.
type Trip struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Cities    []TripCity `json:"cities"`
	CreatedAt time.Time  `json:"createdAt"`
}

// TripCity is one stop of a trip.
type TripCity struct {
	Name      string     `json:"name" validate:"required"`
	Country   string     `json:"country"`
	Latitude  float64    `json:"latitude" validate:"latitude"`
	Longitude float64    `json:"longitude" validate:"longitude"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// NamedLocation returns the city as a forecast target.
func (c TripCity) NamedLocation() weather.NamedLocation {
	return weather.NamedLocation{
		Name:     c.Name,
		Location: weather.Location{Latitude: c.Latitude, Longitude: c.Longitude},
	}
}

// RecentSearch is a location the user looked up.
type RecentSearch struct {
	Name       string    `json:"name"`
	Country    string    `json:"country,omitempty"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	SearchedAt time.Time `json:"searchedAt"`
}

// AlertPreferencesPatch is a partial update; nil fields are left unchanged.
type AlertPreferencesPatch struct {
	SevereWeather *bool `json:"severeWeather"`
	Rain          *bool `json:"rain"`
	Temperature   *bool `json:"temperature"`
	Wind          *bool `json:"wind"`
}

// Apply returns prefs with the set fields of p overridden.
func (p AlertPreferencesPatch) Apply(prefs weather.AlertPreferences) weather.AlertPreferences {
	if p.SevereWeather != nil {
		prefs.SevereWeather = *p.SevereWeather
	}
	if p.Rain != nil {
		prefs.Rain = *p.Rain
	}
	if p.Temperature != nil {
		prefs.Temperature = *p.Temperature
	}
	if p.Wind != nil {
		prefs.Wind = *p.Wind
	}
	return prefs
}

// AlertTargets lists every favorite and trip city of u, labelled the way
// alerts report them.
func (u User) AlertTargets() []weather.AlertTarget {
	var targets []weather.AlertTarget
	for _, f := range u.Favorites {
		targets = append(targets, weather.AlertTarget{Label: f.Name, Location: f.Location()})
	}
	for _, t := range u.Trips {
		for _, c := range t.Cities {
			targets = append(targets, weather.AlertTarget{
				Label:    c.Name + " (" + t.Name + ")",
				Location: c.NamedLocation().Location,
			})
		}
	}
	return targets
}

// Clone returns a deep copy of u, so callers never share slices with a store.
// Empty slices stay empty rather than becoming nil.
func (u User) Clone() User {
	c := u
	c.Favorites = slices.Clone(u.Favorites)
	c.RecentSearches = slices.Clone(u.RecentSearches)
	c.Trips = slices.Clone(u.Trips)
	for i := range c.Trips {
		c.Trips[i].Cities = slices.Clone(c.Trips[i].Cities)
	}
	return c
}
