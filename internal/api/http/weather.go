package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/i474232898/travel-weather/internal/account"
	"github.com/i474232898/travel-weather/internal/auth"
	"github.com/i474232898/travel-weather/internal/weather"
)

// locationQuery holds query parameters identifying one city.
type locationQuery struct {
	Lat  *float64 `validate:"required,latitude"`
	Lon  *float64 `validate:"required,longitude"`
	City string
}

func (q locationQuery) toNamedLocation(fallback string) weather.NamedLocation {
	name := q.City
	if name == "" {
		name = fallback
	}
	return weather.NamedLocation{
		Name:     name,
		Location: weather.Location{Latitude: *q.Lat, Longitude: *q.Lon},
	}
}

func parseLocationQuery(c *fiber.Ctx, latKey, lonKey, cityKey string) (locationQuery, error) {
	var q locationQuery
	var err error
	if q.Lat, err = coordinate(c, latKey); err != nil {
		return q, err
	}
	if q.Lon, err = coordinate(c, lonKey); err != nil {
		return q, err
	}
	q.City = c.Query(cityKey)

	if q.Lat == nil || q.Lon == nil {
		return q, errors.New("latitude and longitude required")
	}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func (h *handlers) search(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query parameter required")
	}

	places, err := h.weather.Search(c.UserContext(), q)
	if err != nil {
		return weatherError(err)
	}
	return c.JSON(places)
}

func (h *handlers) forecast(c *fiber.Ctx) error {
	q, err := parseLocationQuery(c, "lat", "lon", "city")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	loc := q.toNamedLocation("this location")

	report, err := h.weather.Report(c.UserContext(), loc.Name, loc.Location)
	if err != nil {
		return weatherError(err)
	}

	if userID, ok := auth.UserID(c); ok && q.City != "" {
		err := h.accounts.RecordSearch(c.UserContext(), userID, account.RecentSearch{
			Name:      q.City,
			Latitude:  loc.Latitude,
			Longitude: loc.Longitude,
		})
		if err != nil {
			log.WithFields(log.Fields{"user": userID, "error": err}).Warn("could not record recent search")
		}
	}

	return c.JSON(report)
}

func (h *handlers) compare(c *fiber.Ctx) error {
	q1, err1 := parseLocationQuery(c, "lat1", "lon1", "city1")
	q2, err2 := parseLocationQuery(c, "lat2", "lon2", "city2")
	if err1 != nil || err2 != nil {
		return fiber.NewError(fiber.StatusBadRequest, "coordinates for both cities required")
	}

	cmp, err := h.weather.Compare(c.UserContext(), q1.toNamedLocation("City 1"), q2.toNamedLocation("City 2"))
	if err != nil {
		return weatherError(err)
	}
	return c.JSON(cmp)
}

func (h *handlers) checkAlerts(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	u, err := h.accounts.Profile(c.UserContext(), userID)
	if err != nil {
		return accountError(err)
	}

	events, err := h.weather.CheckAlerts(c.UserContext(), u.AlertTargets(), u.AlertPreferences)
	if err != nil {
		return weatherError(err)
	}
	return c.JSON(events)
}
