package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/fakeflight/internal/models"
	"github.com/dharmasatrya/fakeflight/internal/render"
)

func (h *Handler) IssueTicket(c echo.Context) error {
	var req models.TicketRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, err)
	}

	ticket, err := h.tickets.Issue(c.Request().Context(), req)
	if err != nil {
		return h.fail(c, err)
	}

	h.logWarnings(&ticket.Itinerary)
	h.log.Info("ticket issued", "id", ticket.ID, "booking_reference", ticket.BookingReference, "route", ticket.Itinerary.Route.String())
	return c.JSON(http.StatusCreated, ticket)
}

func (h *Handler) ListTickets(c echo.Context) error {
	tickets, err := h.tickets.List(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, models.TicketListResponse{
		Total:   len(tickets),
		Tickets: tickets,
	})
}

func (h *Handler) GetTicket(c echo.Context) error {
	ticket, err := h.tickets.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, ticket)
}

func (h *Handler) TicketPDF(c echo.Context) error {
	ticket, err := h.tickets.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}

	doc, err := render.TicketPDF(ticket)
	if err != nil {
		return h.fail(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", "ticket-"+ticket.BookingReference+".pdf"))
	return c.Blob(http.StatusOK, "application/pdf", doc)
}
