package render

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/fakeflight/internal/models"
)

func sampleTicket() models.Ticket {
	segment := func(number, from, fromCity, to, toCity string) models.FlightSegment {
		return models.FlightSegment{
			Airline:      models.Airline{Code: "QF", Name: "Qantas"},
			FlightNumber: number,
			Departure: models.Location{Airport: from, City: fromCity,
				Local: models.LocalTime{Date: "2025-11-02", Time: "10:00", Abbreviation: "AEDT"}},
			Arrival: models.Location{Airport: to, City: toCity,
				Local: models.LocalTime{Date: "2025-11-02", Time: "11:30", Abbreviation: "AEDT"}},
			Duration: models.NewDuration(90, "1h 30m"),
		}
	}
	return models.Ticket{
		ID:               "7d9f2c1e-0000-4000-8000-000000000001",
		BookingReference: "QX7K2P",
		Passenger:        models.Passenger{FirstName: "Ada", LastName: "Lovelace"},
		CabinClass:       "premium_economy",
		Seats:            []string{"14C", "31A"},
		Itinerary: models.Itinerary{
			Segments: []models.FlightSegment{
				segment("QF 421", "SYD", "Sydney", "MEL", "Melbourne"),
				segment("QF 9", "MEL", "Melbourne", "LHR", "London"),
			},
			Layover:         &models.Layover{Airport: "MEL", City: "Melbourne", Gap: models.NewDuration(125, "2h 5m")},
			TotalMinutes:    1480,
			TotalTravelTime: "24h 40m",
		},
		CreatedAt: time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC),
	}
}

func plainText(t *testing.T, doc []byte) (string, int) {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(doc), int64(len(doc)))
	require.NoError(t, err)
	text, err := r.GetPlainText()
	require.NoError(t, err)
	b, err := io.ReadAll(text)
	require.NoError(t, err)
	return string(b), r.NumPage()
}

func TestTicketPDF(t *testing.T) {
	doc, err := TicketPDF(sampleTicket())
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(doc, []byte("%PDF-")))

	text, pages := plainText(t, doc)
	assert.Equal(t, 1, pages)
	compact := strings.ReplaceAll(text, " ", "")
	assert.Contains(t, compact, "QX7K2P")
	assert.Contains(t, compact, "ADALOVELACE")
	assert.Contains(t, compact, "QF421")
	assert.Contains(t, compact, "14C")
	assert.Contains(t, compact, "24h40m")
}

func TestTicketPDFDirect(t *testing.T) {
	ticket := sampleTicket()
	ticket.Itinerary.Segments = ticket.Itinerary.Segments[:1]
	ticket.Itinerary.Layover = nil
	ticket.Seats = ticket.Seats[:1]

	doc, err := TicketPDF(ticket)
	require.NoError(t, err)

	text, _ := plainText(t, doc)
	assert.NotContains(t, strings.ReplaceAll(text, " ", ""), "Layover")
}

func TestCabinLabel(t *testing.T) {
	assert.Equal(t, "Premium Economy", cabinLabel("premium_economy"))
	assert.Equal(t, "First", cabinLabel("first"))
}
