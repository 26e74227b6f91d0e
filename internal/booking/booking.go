// Package booking issues fake tickets for computed itineraries.
package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dharmasatrya/fakeflight/internal/itinerary"
	"github.com/dharmasatrya/fakeflight/internal/models"
	"github.com/dharmasatrya/fakeflight/internal/random"
	"github.com/dharmasatrya/fakeflight/internal/store"
)

const (
	BookingReferenceLength = 6
	// No 0/O or 1/I, they are easy to misread on a printed ticket.
	referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

type seatBlock struct {
	firstRow, lastRow int
	letters           string
}

var seatBlocks = map[string]seatBlock{
	"first":           {1, 2, "AFK"},
	"business":        {3, 9, "ACDGHK"},
	"premium_economy": {10, 15, "ACDEGHK"},
	"economy":         {20, 48, "ABCDEFGHJK"},
}

type Service struct {
	itineraries *itinerary.Service
	store       store.Store
	now         func() time.Time
}

func NewService(itineraries *itinerary.Service, s store.Store) *Service {
	return &Service{
		itineraries: itineraries,
		store:       s,
		now:         time.Now,
	}
}

func (s *Service) Issue(ctx context.Context, req models.TicketRequest) (models.Ticket, error) {
	if err := req.Validate(); err != nil {
		return models.Ticket{}, err
	}

	it, err := s.itineraries.Preview(req.Flight)
	if err != nil {
		return models.Ticket{}, err
	}

	rng := s.itineraries.Source()
	ticket := models.Ticket{
		ID:               uuid.NewString(),
		BookingReference: BookingReference(rng),
		Passenger:        req.Passenger,
		CabinClass:       req.CabinClass,
		Itinerary:        *it,
		CreatedAt:        s.now().UTC(),
	}
	for range it.Segments {
		ticket.Seats = append(ticket.Seats, Seat(rng, req.CabinClass))
	}

	if err := s.store.Save(ctx, ticket); err != nil {
		return models.Ticket{}, err
	}
	return ticket, nil
}

func (s *Service) Get(ctx context.Context, id string) (models.Ticket, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.Ticket, error) {
	return s.store.List(ctx)
}

func BookingReference(rng random.Source) string {
	var b strings.Builder
	for i := 0; i < BookingReferenceLength; i++ {
		b.WriteByte(referenceAlphabet[rng.Intn(len(referenceAlphabet))])
	}
	return b.String()
}

// Seat picks a seat in the block of rows assigned to the cabin. Unknown
// cabins sit in economy.
func Seat(rng random.Source, cabin string) string {
	block, ok := seatBlocks[cabin]
	if !ok {
		block = seatBlocks["economy"]
	}
	row := random.Between(rng, block.firstRow, block.lastRow)
	return fmt.Sprintf("%d%c", row, block.letters[rng.Intn(len(block.letters))])
}
