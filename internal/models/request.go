package models

import "strings"

type ItineraryRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	Airline       string `json:"airline"`
	DepartureDate string `json:"departure_date"`
	DepartureTime string `json:"departure_time"`
	Strategy      string `json:"strategy,omitempty"`
	// Seed replays the random draws of an earlier computation. Zero means
	// a fresh draw.
	Seed int64 `json:"seed,omitempty"`
}

func (r *ItineraryRequest) Validate() error {
	r.Origin = strings.TrimSpace(r.Origin)
	r.Destination = strings.TrimSpace(r.Destination)
	r.Airline = strings.ToUpper(strings.TrimSpace(r.Airline))

	if r.Origin == "" {
		return ErrMissingOrigin
	}
	if r.Destination == "" {
		return ErrMissingDestination
	}
	if r.Airline == "" {
		return ErrMissingAirline
	}
	if r.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	if r.DepartureTime == "" {
		return ErrMissingDepartureTime
	}
	return nil
}

type FlightTimeRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Strategy    string `json:"strategy,omitempty"`
}

func (r *FlightTimeRequest) Validate() error {
	if strings.TrimSpace(r.Origin) == "" {
		return ErrMissingOrigin
	}
	if strings.TrimSpace(r.Destination) == "" {
		return ErrMissingDestination
	}
	return nil
}

type OptionFilters struct {
	MaxStops         *int    `json:"max_stops,omitempty"`
	MaxDuration      *int    `json:"max_duration,omitempty"`
	DepartureTimeMin *string `json:"departure_time_min,omitempty"`
	DepartureTimeMax *string `json:"departure_time_max,omitempty"`
}

type OptionsRequest struct {
	ItineraryRequest
	Count     int            `json:"count"`
	Filters   *OptionFilters `json:"filters,omitempty"`
	SortBy    string         `json:"sort_by,omitempty"`
	SortOrder string         `json:"sort_order,omitempty"`
}

const (
	DefaultOptionCount = 3
	MaxOptionCount     = 10
)

func (r *OptionsRequest) Validate() error {
	if err := r.ItineraryRequest.Validate(); err != nil {
		return err
	}
	if r.Count <= 0 {
		r.Count = DefaultOptionCount
	}
	if r.Count > MaxOptionCount {
		return ErrTooManyOptions
	}
	r.SortBy = strings.ToLower(strings.TrimSpace(r.SortBy))
	r.SortOrder = strings.ToLower(strings.TrimSpace(r.SortOrder))
	if r.SortBy == "" {
		r.SortBy = "best_value"
	}
	if r.SortOrder == "" {
		r.SortOrder = "asc"
	}
	switch r.SortBy {
	case "best_value", "duration", "stops", "departure":
	default:
		return ErrInvalidSortBy
	}
	if r.SortOrder != "asc" && r.SortOrder != "desc" {
		return ErrInvalidSortOrder
	}
	return nil
}

type Passenger struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
}

func (p Passenger) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type TicketRequest struct {
	Passenger  Passenger        `json:"passenger"`
	Flight     ItineraryRequest `json:"flight"`
	CabinClass string           `json:"cabin_class,omitempty"`
}

func (r *TicketRequest) Validate() error {
	r.Passenger.FirstName = strings.TrimSpace(r.Passenger.FirstName)
	r.Passenger.LastName = strings.TrimSpace(r.Passenger.LastName)
	if r.Passenger.FirstName == "" || r.Passenger.LastName == "" {
		return ErrMissingPassengerName
	}
	if r.Passenger.Email != "" && !strings.Contains(r.Passenger.Email, "@") {
		return ErrInvalidEmail
	}
	if r.CabinClass == "" {
		r.CabinClass = "economy"
	}
	switch strings.ToLower(r.CabinClass) {
	case "economy", "premium_economy", "business", "first":
		r.CabinClass = strings.ToLower(r.CabinClass)
	default:
		return ErrInvalidCabinClass
	}
	return r.Flight.Validate()
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin        ValidationError = "origin is required"
	ErrMissingDestination   ValidationError = "destination is required"
	ErrMissingAirline       ValidationError = "airline is required"
	ErrMissingDepartureDate ValidationError = "departure_date is required"
	ErrMissingDepartureTime ValidationError = "departure_time is required"
	ErrMissingPassengerName ValidationError = "passenger first_name and last_name are required"
	ErrInvalidEmail         ValidationError = "passenger email is invalid"
	ErrInvalidCabinClass    ValidationError = "cabin_class must be economy, premium_economy, business or first"
	ErrTooManyOptions       ValidationError = "count must not exceed 10"
	ErrUnknownStrategy      ValidationError = "strategy must be coordinate or table"
	ErrInvalidSortBy        ValidationError = "sort_by must be best_value, duration, stops or departure"
	ErrInvalidSortOrder     ValidationError = "sort_order must be asc or desc"
)
