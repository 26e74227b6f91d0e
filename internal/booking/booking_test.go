package booking

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/fakeflight/internal/estimate"
	"github.com/dharmasatrya/fakeflight/internal/itinerary"
	"github.com/dharmasatrya/fakeflight/internal/layover"
	"github.com/dharmasatrya/fakeflight/internal/models"
	"github.com/dharmasatrya/fakeflight/internal/random"
	"github.com/dharmasatrya/fakeflight/internal/refdata"
	"github.com/dharmasatrya/fakeflight/internal/store"
	"github.com/dharmasatrya/fakeflight/internal/timezone"
)

func newService(t *testing.T) (*Service, *store.MemoryStore) {
	t.Helper()
	data, err := refdata.Load()
	require.NoError(t, err)
	rng := random.New(99)
	registry := estimate.NewRegistry(estimate.StrategyCoordinate,
		estimate.NewCoordinateEstimator(data),
		estimate.NewTableEstimator(data, rng),
	)
	its := itinerary.NewService(data, registry, timezone.NewLocalizer(timezone.PolicyFail), layover.NewEngine(data, rng, layover.SplitDistance), rng)
	mem := store.NewMemoryStore()
	svc := NewService(its, mem)
	svc.now = func() time.Time { return time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC) }
	return svc, mem
}

func ticketRequest() models.TicketRequest {
	return models.TicketRequest{
		Passenger: models.Passenger{FirstName: " Ada ", LastName: "Lovelace", Email: "ada@example.com"},
		Flight: models.ItineraryRequest{
			Origin:        "SYD",
			Destination:   "LHR",
			Airline:       "QF",
			DepartureDate: "2025-11-02",
			DepartureTime: "10:00",
		},
		CabinClass: "Business",
	}
}

var (
	referencePattern    = regexp.MustCompile(`^[A-HJ-NP-Z2-9]{6}$`)
	businessSeatPattern = regexp.MustCompile(`^[3-9][ACDGHK]$`)
)

func TestIssue(t *testing.T) {
	svc, mem := newService(t)
	ctx := context.Background()

	ticket, err := svc.Issue(ctx, ticketRequest())
	require.NoError(t, err)

	_, err = uuid.Parse(ticket.ID)
	assert.NoError(t, err)
	assert.Regexp(t, referencePattern, ticket.BookingReference)
	assert.Equal(t, "Ada", ticket.Passenger.FirstName)
	assert.Equal(t, "business", ticket.CabinClass)
	assert.Equal(t, time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC), ticket.CreatedAt)

	require.Len(t, ticket.Itinerary.Segments, 2)
	require.Len(t, ticket.Seats, 2)
	for _, seat := range ticket.Seats {
		assert.Regexp(t, businessSeatPattern, seat)
	}

	stored, err := mem.Get(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.BookingReference, stored.BookingReference)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestIssueBooksThePreviewedItinerary(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		req := ticketRequest()
		req.Flight = models.ItineraryRequest{
			Origin:        "JFK",
			Destination:   "CDG",
			Airline:       "EK",
			DepartureDate: "2025-05-20",
			DepartureTime: "21:10",
		}

		preview, err := svc.itineraries.Preview(req.Flight)
		require.NoError(t, err)

		req.Flight = preview.Request
		ticket, err := svc.Issue(ctx, req)
		require.NoError(t, err)

		want, err := json.Marshal(preview)
		require.NoError(t, err)
		got, err := json.Marshal(ticket.Itinerary)
		require.NoError(t, err)
		assert.JSONEq(t, string(want), string(got))
		assert.Len(t, ticket.Seats, len(preview.Segments))
	}
}

func TestIssueWithoutSeedRecordsOne(t *testing.T) {
	svc, _ := newService(t)

	ticket, err := svc.Issue(context.Background(), ticketRequest())
	require.NoError(t, err)
	require.NotZero(t, ticket.Itinerary.Request.Seed)

	replay, err := svc.itineraries.Compute(ticket.Itinerary.Request)
	require.NoError(t, err)
	assert.Equal(t, ticket.Itinerary.Summary, replay.Summary)
}

func TestIssueErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*models.TicketRequest)
		want   error
	}{
		{"missing name", func(r *models.TicketRequest) { r.Passenger.LastName = "" }, models.ErrMissingPassengerName},
		{"bad email", func(r *models.TicketRequest) { r.Passenger.Email = "ada" }, models.ErrInvalidEmail},
		{"bad cabin", func(r *models.TicketRequest) { r.CabinClass = "steerage" }, models.ErrInvalidCabinClass},
		{"unknown airline", func(r *models.TicketRequest) { r.Flight.Airline = "ZZ" }, models.ErrUnknownAirline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mem := newService(t)
			req := ticketRequest()
			tt.modify(&req)

			_, err := svc.Issue(context.Background(), req)
			assert.ErrorIs(t, err, tt.want)

			list, _ := mem.List(context.Background())
			assert.Empty(t, list)
		})
	}
}

func TestGetUnknownTicket(t *testing.T) {
	svc, _ := newService(t)
	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrTicketNotFound)
}

func TestBookingReference(t *testing.T) {
	assert.Equal(t, "AAAAAA", BookingReference(&random.Script{}))
	assert.Equal(t, "BC9999", BookingReference(&random.Script{Ints: []int{1, 2, 31}}))
}

func TestSeat(t *testing.T) {
	assert.Equal(t, "1A", Seat(&random.Script{}, "first"))
	assert.Equal(t, "48K", Seat(&random.Script{Ints: []int{100}}, "economy"))
	assert.Equal(t, "20A", Seat(&random.Script{}, "cargo hold"))
}
