package account

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/i474232898/travel-weather/internal/auth"
	"github.com/i474232898/travel-weather/internal/common"
	"github.com/i474232898/travel-weather/internal/weather"
)

// maxRecentSearches is how many searches are remembered per user.
const maxRecentSearches = 10

// Service manages users and what they own.
type Service struct {
	store Store
	now   func() time.Time

	// mu serializes read-modify-write cycles on user documents.
	mu sync.Mutex
}

// NewService creates a new Service.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Register creates an account with default alert preferences.
func (s *Service) Register(ctx context.Context, email, password, name string) (User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, fmt.Errorf("hashing password: %w", err)
	}

	u := User{
		ID:               uuid.NewString(),
		Email:            common.NormalizeEmail(email),
		PasswordHash:     hash,
		Name:             name,
		Favorites:        []Favorite{},
		Trips:            []Trip{},
		RecentSearches:   []RecentSearch{},
		AlertPreferences: weather.DefaultAlertPreferences(),
		CreatedAt:        s.now().UTC(),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return User{}, err
	}

	log.WithFields(log.Fields{"user": u.ID}).Info("user registered")
	return u, nil
}

// Authenticate returns the user owning email if password matches.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.store.GetUserByEmail(ctx, common.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Profile returns the user with the given ID.
func (s *Service) Profile(ctx context.Context, userID string) (User, error) {
	return s.store.GetUser(ctx, userID)
}

// update loads a user, applies fn and saves the result unless fn fails.
func (s *Service) update(ctx context.Context, userID string, fn func(*User) error) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return User{}, err
	}
	if err := fn(&u); err != nil {
		return User{}, err
	}
	if err := s.store.UpdateUser(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

// FavoriteInput is a location to add to favorites.
type FavoriteInput struct {
	Name      string  `json:"name" validate:"required"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// AddFavorite saves a location. Names are unique per user.
func (s *Service) AddFavorite(ctx context.Context, userID string, in FavoriteInput) ([]Favorite, error) {
	u, err := s.update(ctx, userID, func(u *User) error {
		for _, f := range u.Favorites {
			if f.Name == in.Name {
				return ErrAlreadyFavorite
			}
		}
		u.Favorites = append(u.Favorites, Favorite{
			ID:        uuid.NewString(),
			Name:      in.Name,
			Country:   in.Country,
			Latitude:  in.Latitude,
			Longitude: in.Longitude,
			AddedAt:   s.now().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u.Favorites, nil
}

// RemoveFavorite deletes a favorite. Unknown IDs are ignored.
func (s *Service) RemoveFavorite(ctx context.Context, userID, favoriteID string) ([]Favorite, error) {
	u, err := s.update(ctx, userID, func(u *User) error {
		kept := make([]Favorite, 0, len(u.Favorites))
		for _, f := range u.Favorites {
			if f.ID != favoriteID {
				kept = append(kept, f)
			}
		}
		u.Favorites = kept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u.Favorites, nil
}

// Trips lists the user's trips.
func (s *Service) Trips(ctx context.Context, userID string) ([]Trip, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Trips, nil
}

// CreateTrip adds a trip and returns all trips.
func (s *Service) CreateTrip(ctx context.Context, userID, name string, cities []TripCity) ([]Trip, error) {
	u, err := s.update(ctx, userID, func(u *User) error {
		u.Trips = append(u.Trips, Trip{
			ID:        uuid.NewString(),
			Name:      name,
			Cities:    append([]TripCity{}, cities...),
			CreatedAt: s.now().UTC(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return u.Trips, nil
}

// Trip returns one trip, or ErrNotFound.
func (s *Service) Trip(ctx context.Context, userID, tripID string) (Trip, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return Trip{}, err
	}
	i := findTrip(u.Trips, tripID)
	if i < 0 {
		return Trip{}, fmt.Errorf("trip %s: %w", tripID, ErrNotFound)
	}
	return u.Trips[i], nil
}

// TripUpdate is a partial trip update; empty fields are left unchanged.
type TripUpdate struct {
	Name   string     `json:"name"`
	Cities []TripCity `json:"cities" validate:"omitempty,dive"`
}

// UpdateTrip renames a trip and/or replaces its cities.
func (s *Service) UpdateTrip(ctx context.Context, userID, tripID string, upd TripUpdate) (Trip, error) {
	var trip Trip
	_, err := s.update(ctx, userID, func(u *User) error {
		i := findTrip(u.Trips, tripID)
		if i < 0 {
			return fmt.Errorf("trip %s: %w", tripID, ErrNotFound)
		}
		if upd.Name != "" {
			u.Trips[i].Name = upd.Name
		}
		if upd.Cities != nil {
			u.Trips[i].Cities = append([]TripCity{}, upd.Cities...)
		}
		trip = u.Trips[i]
		return nil
	})
	if err != nil {
		return Trip{}, err
	}
	return trip, nil
}

// DeleteTrip removes a trip. Unknown IDs are ignored.
func (s *Service) DeleteTrip(ctx context.Context, userID, tripID string) error {
	_, err := s.update(ctx, userID, func(u *User) error {
		kept := make([]Trip, 0, len(u.Trips))
		for _, t := range u.Trips {
			if t.ID != tripID {
				kept = append(kept, t)
			}
		}
		u.Trips = kept
		return nil
	})
	return err
}

// RecentSearches lists the user's searches, newest first.
func (s *Service) RecentSearches(ctx context.Context, userID string) ([]RecentSearch, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.RecentSearches, nil
}

// RecordSearch moves search to the front of the user's recent searches,
// dropping an older entry with the same name and keeping the newest ten.
func (s *Service) RecordSearch(ctx context.Context, userID string, search RecentSearch) error {
	if search.SearchedAt.IsZero() {
		search.SearchedAt = s.now().UTC()
	}
	_, err := s.update(ctx, userID, func(u *User) error {
		searches := []RecentSearch{search}
		for _, r := range u.RecentSearches {
			if r.Name != search.Name {
				searches = append(searches, r)
			}
		}
		if len(searches) > maxRecentSearches {
			searches = searches[:maxRecentSearches]
		}
		u.RecentSearches = searches
		return nil
	})
	return err
}

// UpdateAlertPreferences merges patch into the user's preferences.
func (s *Service) UpdateAlertPreferences(ctx context.Context, userID string, patch AlertPreferencesPatch) (weather.AlertPreferences, error) {
	u, err := s.update(ctx, userID, func(u *User) error {
		u.AlertPreferences = patch.Apply(u.AlertPreferences)
		return nil
	})
	if err != nil {
		return weather.AlertPreferences{}, err
	}
	return u.AlertPreferences, nil
}

// Users lists every account; used by the alert scheduler.
func (s *Service) Users(ctx context.Context) ([]User, error) {
	return s.store.ListUsers(ctx)
}

func findTrip(trips []Trip, id string) int {
	for i, t := range trips {
		if t.ID == id {
			return i
		}
	}
	return -1
}
