// Package estimate turns airport pairs into flight durations.
//
// Two strategies are available. The coordinate strategy derives the
// duration from the great-circle distance and works for any pair of known
// airports. The table strategy prefers a curated city-pair table and falls
// back to the coordinate formula, or to a random duration when neither end
// can be located.
package estimate

import (
	"fmt"
	"math"
	"strings"

	"github.com/dharmasatrya/fakeflight/internal/geo"
	"github.com/dharmasatrya/fakeflight/internal/models"
	"github.com/dharmasatrya/fakeflight/internal/random"
	"github.com/dharmasatrya/fakeflight/internal/refdata"
)

const (
	CruiseSpeedKmh      = 875.0
	FixedBufferMinutes  = 36.0
	ContingencyFraction = 0.08

	// ReverseAdjustment is applied when only the opposite direction is
	// listed in the city-pair table.
	ReverseAdjustment = 1.05

	MinRandomMinutes = 180
	MaxRandomMinutes = 900
)

type Strategy string

const (
	StrategyCoordinate Strategy = "coordinate"
	StrategyTable      Strategy = "table"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategyCoordinate:
		return StrategyCoordinate, nil
	case StrategyTable:
		return StrategyTable, nil
	}
	return "", models.ErrUnknownStrategy
}

type Tier string

const (
	TierFormula      Tier = "formula"
	TierTableExact   Tier = "table_exact"
	TierTableReverse Tier = "table_reverse"
	TierRandom       Tier = "random"
)

type Estimate struct {
	Minutes    int
	DistanceKm float64
	Strategy   Strategy
	Tier       Tier
}

type Estimator interface {
	Strategy() Strategy
	Estimate(from, to string) (Estimate, error)
}

// FromDistance converts a great-circle distance to block minutes:
// cruise time plus a fixed ground allowance and a proportional contingency.
func FromDistance(distanceKm float64) int {
	cruiseMinutes := distanceKm / CruiseSpeedKmh * 60
	buffer := FixedBufferMinutes + cruiseMinutes*ContingencyFraction
	return int(math.Round(cruiseMinutes + buffer))
}

// BetweenAirports estimates a nonstop leg with the coordinate formula.
func BetweenAirports(from, to models.Airport) (Estimate, error) {
	d, err := geo.AirportDistance(from, to)
	if err != nil {
		return Estimate{}, err
	}
	return Estimate{
		Minutes:    FromDistance(d),
		DistanceKm: d,
		Strategy:   StrategyCoordinate,
		Tier:       TierFormula,
	}, nil
}

type CoordinateEstimator struct {
	data refdata.Provider
}

func NewCoordinateEstimator(data refdata.Provider) *CoordinateEstimator {
	return &CoordinateEstimator{data: data}
}

func (e *CoordinateEstimator) Strategy() Strategy {
	return StrategyCoordinate
}

func (e *CoordinateEstimator) Estimate(from, to string) (Estimate, error) {
	origin, ok := e.data.ResolveAirport(from)
	if !ok {
		return Estimate{}, models.NewComputeError(models.ErrUnknownAirport, from)
	}
	dest, ok := e.data.ResolveAirport(to)
	if !ok {
		return Estimate{}, models.NewComputeError(models.ErrUnknownAirport, to)
	}
	return BetweenAirports(origin, dest)
}

type TableEstimator struct {
	data refdata.Provider
	rng  random.Source
}

func NewTableEstimator(data refdata.Provider, rng random.Source) *TableEstimator {
	return &TableEstimator{data: data, rng: rng}
}

// WithSource returns a copy whose random fallback draws from rng.
func (e *TableEstimator) WithSource(rng random.Source) Estimator {
	return &TableEstimator{data: e.data, rng: rng}
}

func (e *TableEstimator) Strategy() Strategy {
	return StrategyTable
}

func (e *TableEstimator) Estimate(from, to string) (Estimate, error) {
	origin, originOK := e.data.ResolveAirport(from)
	dest, destOK := e.data.ResolveAirport(to)

	fromCity, toCity := from, to
	if originOK {
		fromCity = origin.City
	}
	if destOK {
		toCity = dest.City
	}

	if m, ok := e.data.CityDuration(fromCity, toCity); ok {
		return Estimate{Minutes: m, Strategy: StrategyTable, Tier: TierTableExact}, nil
	}
	if m, ok := e.data.CityDuration(toCity, fromCity); ok {
		return Estimate{
			Minutes:  int(math.Round(float64(m) * ReverseAdjustment)),
			Strategy: StrategyTable,
			Tier:     TierTableReverse,
		}, nil
	}

	if originOK && destOK {
		est, err := BetweenAirports(origin, dest)
		if err != nil {
			return Estimate{}, err
		}
		est.Strategy = StrategyTable
		return est, nil
	}

	return Estimate{
		Minutes:  random.Between(e.rng, MinRandomMinutes, MaxRandomMinutes),
		Strategy: StrategyTable,
		Tier:     TierRandom,
	}, nil
}

// Registry hands out an estimator by strategy name.
type Registry struct {
	estimators map[Strategy]Estimator
	fallback   Strategy
}

func NewRegistry(fallback Strategy, estimators ...Estimator) *Registry {
	r := &Registry{
		estimators: make(map[Strategy]Estimator, len(estimators)),
		fallback:   fallback,
	}
	for _, e := range estimators {
		r.estimators[e.Strategy()] = e
	}
	return r
}

// Get returns the named estimator, or the default one for an empty name.
func (r *Registry) Get(name string) (Estimator, error) {
	strategy := r.fallback
	if name != "" {
		s, err := ParseStrategy(name)
		if err != nil {
			return nil, err
		}
		strategy = s
	}
	e, ok := r.estimators[strategy]
	if !ok {
		return nil, fmt.Errorf("estimator strategy %q is not configured", strategy)
	}
	return e, nil
}

// WithSource returns a registry whose estimators that draw random values
// use rng instead of their own source.
func (r *Registry) WithSource(rng random.Source) *Registry {
	c := &Registry{
		estimators: make(map[Strategy]Estimator, len(r.estimators)),
		fallback:   r.fallback,
	}
	for s, e := range r.estimators {
		if rs, ok := e.(interface {
			WithSource(random.Source) Estimator
		}); ok {
			e = rs.WithSource(rng)
		}
		c.estimators[s] = e
	}
	return c
}

func (r *Registry) Default() Strategy {
	return r.fallback
}
