package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/travel-weather/internal/account"
	"github.com/i474232898/travel-weather/internal/weather"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  account.User `json:"user"`
}

func (h *handlers) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	u, err := h.accounts.Register(c.UserContext(), req.Email, req.Password, req.Name)
	if err != nil {
		return accountError(err)
	}
	return h.respondWithToken(c, fiber.StatusCreated, u)
}

func (h *handlers) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	u, err := h.accounts.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return accountError(err)
	}
	return h.respondWithToken(c, fiber.StatusOK, u)
}

func (h *handlers) respondWithToken(c *fiber.Ctx, status int, u account.User) error {
	token, err := h.tokens.Issue(u.ID)
	if err != nil {
		return err
	}
	return c.Status(status).JSON(authResponse{Token: token, User: u})
}

func (h *handlers) profile(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	u, err := h.accounts.Profile(c.UserContext(), userID)
	if err != nil {
		return accountError(err)
	}
	return c.JSON(u)
}

func (h *handlers) addFavorite(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var in account.FavoriteInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}

	favs, err := h.accounts.AddFavorite(c.UserContext(), userID, in)
	if err != nil {
		return accountError(err)
	}
	return c.JSON(favs)
}

func (h *handlers) removeFavorite(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	favs, err := h.accounts.RemoveFavorite(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return accountError(err)
	}
	return c.JSON(favs)
}

type createTripRequest struct {
	Name   string             `json:"name" validate:"required"`
	Cities []account.TripCity `json:"cities" validate:"dive"`
}

func (h *handlers) listTrips(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	trips, err := h.accounts.Trips(c.UserContext(), userID)
	if err != nil {
		return accountError(err)
	}
	return c.JSON(trips)
}

func (h *handlers) createTrip(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createTripRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	trips, err := h.accounts.CreateTrip(c.UserContext(), userID, req.Name, req.Cities)
	if err != nil {
		return accountError(err)
	}
	return c.JSON(trips)
}

// tripCityWeather is a trip stop together with its weather.
type tripCityWeather struct {
	account.TripCity
	Weather        weather.Forecast      `json:"weather"`
	ClimateSummary string                `json:"climateSummary"`
	PackingList    []weather.PackingItem `json:"packingList"`
}

type tripWeatherResponse struct {
	ID                  string                `json:"id"`
	Name                string                `json:"name"`
	CreatedAt           time.Time             `json:"createdAt"`
	Cities              []tripCityWeather     `json:"cities"`
	CombinedPackingList []weather.PackingItem `json:"combinedPackingList"`
}

func (h *handlers) tripWeather(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	trip, err := h.accounts.Trip(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return accountError(err)
	}

	stops := make([]weather.NamedLocation, len(trip.Cities))
	for i, city := range trip.Cities {
		stops[i] = city.NamedLocation()
	}
	tw, err := h.weather.TripWeather(c.UserContext(), stops)
	if err != nil {
		return weatherError(err)
	}

	resp := tripWeatherResponse{
		ID:                  trip.ID,
		Name:                trip.Name,
		CreatedAt:           trip.CreatedAt,
		Cities:              make([]tripCityWeather, len(trip.Cities)),
		CombinedPackingList: tw.CombinedPackingList,
	}
	for i, city := range trip.Cities {
		resp.Cities[i] = tripCityWeather{
			TripCity:       city,
			Weather:        tw.Cities[i].Weather,
			ClimateSummary: tw.Cities[i].ClimateSummary,
			PackingList:    tw.Cities[i].PackingList,
		}
	}
	return c.JSON(resp)
}

func (h *handlers) updateTrip(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var upd account.TripUpdate
	if err := bindJSON(c, &upd); err != nil {
		return err
	}

	trip, err := h.accounts.UpdateTrip(c.UserContext(), userID, c.Params("id"), upd)
	if err != nil {
		return accountError(err)
	}
	return c.JSON(trip)
}

func (h *handlers) deleteTrip(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.accounts.DeleteTrip(c.UserContext(), userID, c.Params("id")); err != nil {
		return accountError(err)
	}
	return c.JSON(fiber.Map{"message": "Trip deleted"})
}

func (h *handlers) recentSearches(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	searches, err := h.accounts.RecentSearches(c.UserContext(), userID)
	if err != nil {
		return accountError(err)
	}
	return c.JSON(searches)
}

func (h *handlers) updateAlertPreferences(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var patch account.AlertPreferencesPatch
	if err := c.BodyParser(&patch); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	prefs, err := h.accounts.UpdateAlertPreferences(c.UserContext(), userID, patch)
	if err != nil {
		return accountError(err)
	}
	return c.JSON(prefs)
}
