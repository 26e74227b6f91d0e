package models

import "time"

type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

type Airport struct {
	Code     string      `json:"code" yaml:"code"`
	Name     string      `json:"name" yaml:"name"`
	City     string      `json:"city" yaml:"city"`
	Country  string      `json:"country" yaml:"country"`
	Location Coordinates `json:"location" yaml:"location"`
	Timezone string      `json:"timezone" yaml:"timezone"`
	Region   string      `json:"region" yaml:"region"`
}

type Airline struct {
	Code         string   `json:"code" yaml:"code"`
	Name         string   `json:"name" yaml:"name"`
	Hubs         []string `json:"hubs,omitempty" yaml:"hubs"`
	HubFocused   bool     `json:"hub_focused" yaml:"hub_focused"`
	DirectRoutes []string `json:"direct_routes,omitempty" yaml:"direct_routes"`
}

type Route struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

func (r Route) Reverse() Route {
	return Route{Origin: r.Destination, Destination: r.Origin}
}

func (r Route) String() string {
	return r.Origin + "-" + r.Destination
}

type LocalTime struct {
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Timezone     string    `json:"timezone"`
	Abbreviation string    `json:"abbreviation"`
	UTCOffset    string    `json:"utc_offset"`
	Instant      time.Time `json:"instant"`
}

type Location struct {
	Airport string    `json:"airport"`
	Name    string    `json:"name"`
	City    string    `json:"city"`
	Local   LocalTime `json:"local"`
}

type Duration struct {
	Hours        int    `json:"hours"`
	Minutes      int    `json:"minutes"`
	TotalMinutes int    `json:"total_minutes"`
	Formatted    string `json:"formatted"`
}

func NewDuration(totalMinutes int, formatted string) Duration {
	return Duration{
		Hours:        totalMinutes / 60,
		Minutes:      totalMinutes % 60,
		TotalMinutes: totalMinutes,
		Formatted:    formatted,
	}
}

type FlightSegment struct {
	Airline      Airline  `json:"airline"`
	FlightNumber string   `json:"flight_number"`
	Departure    Location `json:"departure"`
	Arrival      Location `json:"arrival"`
	DayOffset    int      `json:"day_offset"`
	Duration     Duration `json:"duration"`
	DistanceKm   float64  `json:"distance_km,omitempty"`
}

type Layover struct {
	Airport string `json:"airport"`
	City    string `json:"city"`
	// Dwell is the generated waiting time, Gap the one measured between
	// the local arrival and the next local departure.
	Dwell Duration `json:"dwell"`
	Gap   Duration `json:"gap"`
}

type Itinerary struct {
	// Request is the normalized request that reproduces this itinerary,
	// seed included.
	Request         ItineraryRequest `json:"request"`
	Route           Route            `json:"route"`
	Segments        []FlightSegment  `json:"segments"`
	Layover         *Layover         `json:"layover,omitempty"`
	Reason          string           `json:"reason"`
	Strategy        string           `json:"strategy"`
	TotalMinutes    int              `json:"total_minutes"`
	TotalTravelTime string           `json:"total_travel_time"`
	Summary         string           `json:"summary"`
	Warnings        []string         `json:"warnings,omitempty"`
}

func (i *Itinerary) Stops() int {
	return len(i.Segments) - 1
}

// LayoverDecision is the outcome of evaluating a route for a connection.
type LayoverDecision struct {
	RequiresLayover bool   `json:"requires_layover"`
	Reason          string `json:"reason"`
	Airport         string `json:"airport,omitempty"`
	DwellMinutes    int    `json:"dwell_minutes,omitempty"`
	LegMinutes      []int  `json:"leg_minutes"`
}
