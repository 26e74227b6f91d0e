// Package itinerary computes complete fake itineraries: it resolves the
// airports, estimates the nonstop duration, asks the layover engine for
// the path shape and schedules every leg in local time.
package itinerary

import (
	"fmt"
	"time"

	"github.com/dharmasatrya/fakeflight/internal/estimate"
	"github.com/dharmasatrya/fakeflight/internal/layover"
	"github.com/dharmasatrya/fakeflight/internal/models"
	"github.com/dharmasatrya/fakeflight/internal/random"
	"github.com/dharmasatrya/fakeflight/internal/refdata"
	"github.com/dharmasatrya/fakeflight/internal/timezone"
	"github.com/dharmasatrya/fakeflight/pkg/format"
)

const (
	minFlightNumber = 100
	maxFlightNumber = 9999

	// Connections leave on the next five-minute mark of the local clock.
	departureStepMinutes = 5
)

type Service struct {
	data       refdata.Provider
	estimators *estimate.Registry
	localizer  *timezone.Localizer
	engine     *layover.Engine
	rng        random.Source
}

func NewService(data refdata.Provider, estimators *estimate.Registry, localizer *timezone.Localizer, engine *layover.Engine, rng random.Source) *Service {
	return &Service{
		data:       data,
		estimators: estimators,
		localizer:  localizer,
		engine:     engine,
		rng:        rng,
	}
}

// WithSource returns a service whose random draws come from rng.
func (s *Service) WithSource(rng random.Source) *Service {
	c := *s
	c.rng = rng
	c.engine = s.engine.WithSource(rng)
	c.estimators = s.estimators.WithSource(rng)
	return &c
}

func (s *Service) Source() random.Source {
	return s.rng
}

// Preview computes a reproducible itinerary: when the request carries no
// seed one is drawn, and the returned itinerary's Request replays it.
func (s *Service) Preview(req models.ItineraryRequest) (*models.Itinerary, error) {
	if req.Seed == 0 {
		req.Seed = random.Seed(s.rng)
	}
	return s.Compute(req)
}

// Compute builds an itinerary. A seeded request draws only from its seed,
// so the same request always yields the same itinerary. Without a seed the
// service's own source is used.
func (s *Service) Compute(req models.ItineraryRequest) (*models.Itinerary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Seed != 0 {
		seeded := req
		seeded.Seed = 0
		it, err := s.WithSource(random.New(req.Seed)).Compute(seeded)
		if err != nil {
			return nil, err
		}
		it.Request.Seed = req.Seed
		return it, nil
	}

	origin, ok := s.data.ResolveAirport(req.Origin)
	if !ok {
		return nil, models.NewComputeError(models.ErrUnknownAirport, req.Origin)
	}
	dest, ok := s.data.ResolveAirport(req.Destination)
	if !ok {
		return nil, models.NewComputeError(models.ErrUnknownAirport, req.Destination)
	}
	airline, ok := s.data.Airline(req.Airline)
	if !ok {
		return nil, models.NewComputeError(models.ErrUnknownAirline, req.Airline)
	}
	route := models.Route{Origin: origin.Code, Destination: dest.Code}
	if origin.Code == dest.Code {
		return nil, models.NewComputeError(models.ErrUnsupportedRoute, route.String())
	}

	var warnings []string
	originLoc, w, err := s.localizer.Location(origin)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, w...)

	departure, err := timezone.ParseLocal(req.DepartureDate, req.DepartureTime, originLoc)
	if err != nil {
		return nil, err
	}

	estimator, err := s.estimators.Get(req.Strategy)
	if err != nil {
		return nil, err
	}
	base, err := estimator.Estimate(origin.Code, dest.Code)
	if err != nil {
		return nil, err
	}

	decision, err := s.engine.Decide(origin, dest, airline, base.Minutes)
	if err != nil {
		return nil, err
	}

	stops := []models.Airport{origin, dest}
	if decision.RequiresLayover {
		hub, ok := s.data.Airport(decision.Airport)
		if !ok {
			return nil, models.NewComputeError(models.ErrUnknownAirport, decision.Airport)
		}
		stops = []models.Airport{origin, hub, dest}
	}

	locs := []*time.Location{originLoc}
	for _, a := range stops[1:] {
		loc, w, err := s.localizer.Location(a)
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, w...)
		locs = append(locs, loc)
	}

	plan := Plan{
		Request:      req,
		Route:        route,
		DwellMinutes: decision.DwellMinutes,
		Reason:       decision.Reason,
		Strategy:     string(estimator.Strategy()),
		Warnings:     warnings,
	}

	depart := departure
	for i, minutes := range decision.LegMinutes {
		from, to := stops[i], stops[i+1]
		leg := Leg{
			Airline:      airline,
			FlightNumber: s.flightNumber(airline),
			From:         from,
			To:           to,
			FromLoc:      locs[i],
			ToLoc:        locs[i+1],
			Departure:    depart,
			Minutes:      minutes,
		}
		if d, err := estimate.BetweenAirports(from, to); err == nil {
			leg.DistanceKm = d.DistanceKm
		}
		plan.Legs = append(plan.Legs, leg)

		depart = nextDeparture(leg.Arrival().Add(time.Duration(decision.DwellMinutes)*time.Minute), locs[i+1])
	}

	return Compose(plan)
}

// FlightTime estimates a nonstop duration without building an itinerary.
func (s *Service) FlightTime(req models.FlightTimeRequest) (models.FlightTimeResponse, error) {
	if err := req.Validate(); err != nil {
		return models.FlightTimeResponse{}, err
	}
	estimator, err := s.estimators.Get(req.Strategy)
	if err != nil {
		return models.FlightTimeResponse{}, err
	}
	est, err := estimator.Estimate(req.Origin, req.Destination)
	if err != nil {
		return models.FlightTimeResponse{}, err
	}

	resp := models.FlightTimeResponse{
		Origin:      req.Origin,
		Destination: req.Destination,
		Strategy:    string(est.Strategy),
		Tier:        string(est.Tier),
		DistanceKm:  est.DistanceKm,
		Minutes:     est.Minutes,
		Formatted:   format.Minutes(est.Minutes),
	}
	if est.DistanceKm > 0 {
		resp.Distance = format.DistanceKm(est.DistanceKm)
	}
	return resp, nil
}

func (s *Service) flightNumber(airline models.Airline) string {
	return fmt.Sprintf("%s %d", airline.Code, random.Between(s.rng, minFlightNumber, maxFlightNumber))
}

// nextDeparture rounds t up to the next departure step of the local clock.
func nextDeparture(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc).Truncate(time.Minute)
	if rem := local.Minute() % departureStepMinutes; rem != 0 {
		local = local.Add(time.Duration(departureStepMinutes-rem) * time.Minute)
	}
	return local
}
