package itinerary

import (
	"fmt"
	"strings"
	"time"

	"github.com/dharmasatrya/fakeflight/internal/models"
	"github.com/dharmasatrya/fakeflight/internal/timezone"
	"github.com/dharmasatrya/fakeflight/pkg/format"
)

// Leg is one scheduled nonstop flight before localization.
type Leg struct {
	Airline      models.Airline
	FlightNumber string
	From         models.Airport
	To           models.Airport
	FromLoc      *time.Location
	ToLoc        *time.Location
	Departure    time.Time
	Minutes      int
	DistanceKm   float64
}

func (l Leg) Arrival() time.Time {
	return l.Departure.Add(time.Duration(l.Minutes) * time.Minute)
}

type Plan struct {
	Request      models.ItineraryRequest
	Route        models.Route
	Legs         []Leg
	DwellMinutes int
	Reason       string
	Strategy     string
	Warnings     []string
}

// Compose localizes every leg and assembles the itinerary. The layover gap
// and the total are measured from the localized arrival and departure, not
// from the dwell used to schedule the connection.
func Compose(p Plan) (*models.Itinerary, error) {
	if len(p.Legs) == 0 || len(p.Legs) > 2 {
		return nil, fmt.Errorf("itinerary must have one or two legs, got %d", len(p.Legs))
	}

	it := &models.Itinerary{
		Request:  p.Request,
		Route:    p.Route,
		Segments: make([]models.FlightSegment, 0, len(p.Legs)),
		Reason:   p.Reason,
		Strategy: p.Strategy,
		Warnings: p.Warnings,
	}

	total := 0
	for _, leg := range p.Legs {
		if leg.Minutes <= 0 {
			return nil, fmt.Errorf("leg %s-%s has non-positive duration", leg.From.Code, leg.To.Code)
		}
		it.Segments = append(it.Segments, segment(leg))
		total += leg.Minutes
	}

	if len(p.Legs) == 2 {
		first, second := p.Legs[0], p.Legs[1]
		if first.To.Code != second.From.Code {
			return nil, fmt.Errorf("legs do not connect: %s then %s", first.To.Code, second.From.Code)
		}

		gap := localGap(it.Segments[0].Arrival.Local, it.Segments[1].Departure.Local)
		if gap < 0 {
			return nil, fmt.Errorf("connection at %s departs before arrival", first.To.Code)
		}

		it.Layover = &models.Layover{
			Airport: first.To.Code,
			City:    first.To.City,
			Dwell:   models.NewDuration(p.DwellMinutes, format.Minutes(p.DwellMinutes)),
			Gap:     models.NewDuration(gap, format.Minutes(gap)),
		}
		total += gap
	}

	it.TotalMinutes = total
	it.TotalTravelTime = format.Minutes(total)
	it.Summary = Summarize(it)
	return it, nil
}

func segment(leg Leg) models.FlightSegment {
	arrival := leg.Arrival()
	return models.FlightSegment{
		Airline:      leg.Airline,
		FlightNumber: leg.FlightNumber,
		Departure: models.Location{
			Airport: leg.From.Code,
			Name:    leg.From.Name,
			City:    leg.From.City,
			Local:   timezone.LocalTime(leg.Departure, leg.FromLoc),
		},
		Arrival: models.Location{
			Airport: leg.To.Code,
			Name:    leg.To.Name,
			City:    leg.To.City,
			Local:   timezone.LocalTime(arrival, leg.ToLoc),
		},
		DayOffset:  timezone.DayOffset(leg.Departure, arrival, leg.FromLoc, leg.ToLoc),
		Duration:   models.NewDuration(leg.Minutes, format.Minutes(leg.Minutes)),
		DistanceKm: leg.DistanceKm,
	}
}

// localGap measures the time on the ground between two localized events,
// which may be expressed in different zones.
func localGap(arrival, departure models.LocalTime) int {
	return int(departure.Instant.Sub(arrival.Instant).Minutes())
}

// Summarize renders the itinerary as plain text, one block per flight.
func Summarize(it *models.Itinerary) string {
	var b strings.Builder
	for i, seg := range it.Segments {
		if i > 0 && it.Layover != nil {
			fmt.Fprintf(&b, "Layover in %s (%s): %s\n", it.Layover.City, it.Layover.Airport, it.Layover.Gap.Formatted)
		}
		fmt.Fprintf(&b, "Flight %d: %s %s\n", i+1, seg.Airline.Name, seg.FlightNumber)
		fmt.Fprintf(&b, "  %s (%s) -> %s (%s)\n", seg.Departure.City, seg.Departure.Airport, seg.Arrival.City, seg.Arrival.Airport)
		fmt.Fprintf(&b, "  Departs: %s %s %s\n", seg.Departure.Local.Date, seg.Departure.Local.Time, seg.Departure.Local.Abbreviation)

		arrives := fmt.Sprintf("  Arrives: %s %s %s", seg.Arrival.Local.Date, seg.Arrival.Local.Time, seg.Arrival.Local.Abbreviation)
		if note := format.DayOffset(seg.DayOffset); note != "" {
			arrives += " (" + note + ")"
		}
		b.WriteString(arrives + "\n")
		fmt.Fprintf(&b, "  Duration: %s\n", seg.Duration.Formatted)
	}
	fmt.Fprintf(&b, "Total travel time: %s", it.TotalTravelTime)
	return b.String()
}
