package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/fakeflight/internal/booking"
	"github.com/dharmasatrya/fakeflight/internal/itinerary"
	"github.com/dharmasatrya/fakeflight/internal/logger"
	"github.com/dharmasatrya/fakeflight/internal/models"
	"github.com/dharmasatrya/fakeflight/internal/options"
	"github.com/dharmasatrya/fakeflight/internal/refdata"
	"github.com/dharmasatrya/fakeflight/internal/store"
)

type Handler struct {
	data        refdata.Provider
	itineraries *itinerary.Service
	options     *options.Generator
	tickets     *booking.Service
	log         logger.Logger
}

func New(data refdata.Provider, itineraries *itinerary.Service, opts *options.Generator, tickets *booking.Service, log logger.Logger) *Handler {
	return &Handler{
		data:        data,
		itineraries: itineraries,
		options:     opts,
		tickets:     tickets,
		log:         log,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/health", HealthHandler)

	api := e.Group("/api/v1")
	api.GET("/airports", h.ListAirports)
	api.GET("/airports/:code", h.GetAirport)
	api.GET("/airlines", h.ListAirlines)
	api.POST("/flight-time", h.FlightTime)
	api.POST("/itineraries", h.PreviewItinerary)
	api.POST("/itineraries/options", h.Options)
	api.POST("/tickets", h.IssueTicket)
	api.GET("/tickets", h.ListTickets)
	api.GET("/tickets/:id", h.GetTicket)
	api.GET("/tickets/:id/pdf", h.TicketPDF)
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

var errorStatus = map[string]int{
	"unknown_airport":       http.StatusNotFound,
	"unknown_airline":       http.StatusNotFound,
	"missing_timezone_data": http.StatusUnprocessableEntity,
	"unsupported_route":     http.StatusUnprocessableEntity,
	"invalid_datetime":      http.StatusBadRequest,
	"invalid_coordinate":    http.StatusBadRequest,
}

func (h *Handler) fail(c echo.Context, err error) error {
	var verr models.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: verr.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if errors.Is(err, store.ErrTicketNotFound) {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "ticket_not_found",
			Message: err.Error(),
			Code:    http.StatusNotFound,
		})
	}

	if code := models.ErrorCode(err); code != "" {
		status := errorStatus[code]
		return c.JSON(status, models.ErrorResponse{
			Error:   code,
			Message: err.Error(),
			Code:    status,
		})
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return c.JSON(http.StatusGatewayTimeout, models.ErrorResponse{
			Error:   "timeout",
			Message: "Request took too long",
			Code:    http.StatusGatewayTimeout,
		})
	}

	h.log.Error("request failed", "path", c.Path(), "error", err)
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: "Something went wrong",
		Code:    http.StatusInternalServerError,
	})
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: "Failed to parse request body: " + err.Error(),
		Code:    http.StatusBadRequest,
	})
}
