package httpapi

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/i474232898/travel-weather/internal/account"
	"github.com/i474232898/travel-weather/internal/auth"
	"github.com/i474232898/travel-weather/internal/weather"
)

var validate = validator.New()

type handlers struct {
	weather  *weather.Service
	accounts *account.Service
	tokens   *auth.Tokens
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, weatherSvc *weather.Service, accounts *account.Service, tokens *auth.Tokens) {
	h := &handlers{weather: weatherSvc, accounts: accounts, tokens: tokens}
	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.register)
	authGroup.Post("/login", h.login)

	w := api.Group("/weather")
	w.Get("/search", h.search)
	w.Get("/forecast", auth.OptionalUser(tokens), h.forecast)
	w.Get("/compare", h.compare)

	u := api.Group("/user", auth.RequireUser(tokens))
	u.Get("/profile", h.profile)
	u.Post("/favorites", h.addFavorite)
	u.Delete("/favorites/:id", h.removeFavorite)
	u.Get("/trips", h.listTrips)
	u.Post("/trips", h.createTrip)
	u.Get("/trips/:id", h.tripWeather)
	u.Put("/trips/:id", h.updateTrip)
	u.Delete("/trips/:id", h.deleteTrip)
	u.Get("/recent-searches", h.recentSearches)
	u.Put("/alert-preferences", h.updateAlertPreferences)

	api.Get("/alerts/check", auth.RequireUser(tokens), h.checkAlerts)
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	msg := err.Error()
	if code == fiber.StatusInternalServerError {
		log.WithFields(log.Fields{"path": c.Path(), "error": err}).Error("request failed")
		msg = "server error"
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": msg,
	})
}

// weatherError maps weather service errors to HTTP errors.
func weatherError(err error) error {
	switch {
	case errors.Is(err, weather.ErrNoForecastData):
		return fiber.NewError(fiber.StatusNotFound, "no weather data for requested location")
	case errors.Is(err, weather.ErrEmptyForecast):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, weather.ErrSearchFailed):
		return fiber.NewError(fiber.StatusBadGateway, weather.ErrSearchFailed.Error())
	case errors.Is(err, weather.ErrFetchFailed):
		return fiber.NewError(fiber.StatusBadGateway, weather.ErrFetchFailed.Error())
	default:
		return err
	}
}

// accountError maps account service errors to HTTP errors.
func accountError(err error) error {
	switch {
	case errors.Is(err, account.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, account.ErrDuplicateEmail):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, account.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, account.ErrAlreadyFavorite):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}

// bindJSON decodes and validates a request body.
func bindJSON(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// coordinate parses an optional latitude/longitude query parameter. A
// missing parameter yields nil; callers decide whether it is required.
func coordinate(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.New("invalid " + key + ": not a number")
	}
	return &v, nil
}

// currentUser returns the authenticated user ID; routes behind RequireUser
// always have one.
func currentUser(c *fiber.Ctx) (string, error) {
	id, ok := auth.UserID(c)
	if !ok {
		return "", fiber.NewError(fiber.StatusUnauthorized, "please authenticate")
	}
	return id, nil
}
