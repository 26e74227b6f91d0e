package models

import "time"

type Ticket struct {
	ID               string    `json:"id"`
	BookingReference string    `json:"booking_reference"`
	Passenger        Passenger `json:"passenger"`
	CabinClass       string    `json:"cabin_class"`
	Seats            []string  `json:"seats"`
	Itinerary        Itinerary `json:"itinerary"`
	CreatedAt        time.Time `json:"created_at"`
}
