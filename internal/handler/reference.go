package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/fakeflight/internal/models"
)

// ListAirports accepts optional region and country query filters.
func (h *Handler) ListAirports(c echo.Context) error {
	region := strings.TrimSpace(c.QueryParam("region"))
	country := strings.TrimSpace(c.QueryParam("country"))

	airports := make([]models.Airport, 0)
	for _, a := range h.data.Airports() {
		if region != "" && !strings.EqualFold(a.Region, region) {
			continue
		}
		if country != "" && !strings.EqualFold(a.Country, country) {
			continue
		}
		airports = append(airports, a)
	}

	return c.JSON(http.StatusOK, models.AirportListResponse{
		Total:    len(airports),
		Airports: airports,
	})
}

// GetAirport resolves an IATA code or a city name.
func (h *Handler) GetAirport(c echo.Context) error {
	code := c.Param("code")
	a, ok := h.data.ResolveAirport(code)
	if !ok {
		return h.fail(c, models.NewComputeError(models.ErrUnknownAirport, code))
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAirlines(c echo.Context) error {
	airlines := h.data.Airlines()
	return c.JSON(http.StatusOK, models.AirlineListResponse{
		Total:    len(airlines),
		Airlines: airlines,
	})
}
