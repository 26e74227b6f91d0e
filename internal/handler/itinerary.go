package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/fakeflight/internal/filter"
	"github.com/dharmasatrya/fakeflight/internal/models"
)

func (h *Handler) FlightTime(c echo.Context) error {
	var req models.FlightTimeRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	resp, err := h.itineraries.FlightTime(req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) PreviewItinerary(c echo.Context) error {
	var req models.ItineraryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	it, err := h.itineraries.Preview(req)
	if err != nil {
		return h.fail(c, err)
	}
	h.logWarnings(it)
	return c.JSON(http.StatusOK, it)
}

func (h *Handler) Options(c echo.Context) error {
	startTime := time.Now()

	var req models.OptionsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}
	if err := req.Validate(); err != nil {
		return h.fail(c, err)
	}

	result, err := h.options.Generate(c.Request().Context(), req.ItineraryRequest, req.Count)
	if err != nil {
		return h.fail(c, err)
	}
	if result.Failed > 0 {
		h.log.Warn("some options failed", "route", req.Origin+"-"+req.Destination, "failed", result.Failed, "errors", result.Errors)
	}

	opts := make([]models.Option, 0, len(result.Itineraries))
	for _, it := range result.Itineraries {
		opts = append(opts, models.Option{Itinerary: it})
	}
	opts = filter.Apply(opts, req.Filters, req.SortBy, req.SortOrder)

	return c.JSON(http.StatusOK, models.OptionsResponse{
		Request: req.ItineraryRequest,
		Metadata: models.OptionsMetadata{
			TotalResults:     len(opts),
			OptionsRequested: result.Requested,
			OptionsSucceeded: result.Succeeded,
			OptionsFailed:    result.Failed,
			Errors:           result.Errors,
			SearchTimeMs:     time.Since(startTime).Milliseconds(),
		},
		Options: opts,
	})
}

func (h *Handler) logWarnings(it *models.Itinerary) {
	for _, w := range it.Warnings {
		h.log.Warn("itinerary warning", "route", it.Route.String(), "warning", w)
	}
}
