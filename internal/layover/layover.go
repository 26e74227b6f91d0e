// Package layover decides whether a journey is flown nonstop or through a
// single connection, and where that connection happens.
//
// Decide applies its rules in order and the first match wins:
//
//  1. pairs listed as never direct connect
//  2. nonstop estimates over LongHaulThresholdMinutes connect
//  3. pairs the airline lists as direct routes fly nonstop
//  4. otherwise a draw against the hub-routing probability decides
//
// Rule 3 is an addition to the three classic rules: a listed direct route
// never takes the hub-routing draw, so it is always flown nonstop unless
// rule 1 or 2 applies.
package layover

import (
	"fmt"
	"math"
	"strings"

	"github.com/dharmasatrya/fakeflight/internal/estimate"
	"github.com/dharmasatrya/fakeflight/internal/models"
	"github.com/dharmasatrya/fakeflight/internal/random"
	"github.com/dharmasatrya/fakeflight/internal/refdata"
)

const (
	LongHaulThresholdMinutes = 840

	MinDwellMinutes = 90
	MaxDwellMinutes = 480

	MinFirstLegShare = 0.40
	MaxFirstLegShare = 0.60

	HubFocusedProbability  = 0.8
	InterRegionProbability = 0.5
	SameRegionProbability  = 0.2
)

const (
	ReasonNeverDirect = "never_direct"
	ReasonLongHaul    = "long_haul"
	ReasonDirectRoute = "direct_route"
	ReasonHubRouting  = "hub_routing"
	ReasonDirect      = "direct"
)

// SplitMode controls how the nonstop estimate is shared between two legs.
type SplitMode string

const (
	// SplitDistance estimates each leg from its own great-circle distance.
	SplitDistance SplitMode = "distance"
	// SplitRatio gives the first leg a random 40-60% share of the nonstop
	// estimate and the second leg the rest.
	SplitRatio SplitMode = "ratio"
)

func ParseSplitMode(s string) (SplitMode, error) {
	switch SplitMode(strings.ToLower(strings.TrimSpace(s))) {
	case SplitDistance:
		return SplitDistance, nil
	case SplitRatio:
		return SplitRatio, nil
	}
	return "", fmt.Errorf("unknown layover split mode %q", s)
}

type Engine struct {
	data  refdata.Provider
	rng   random.Source
	split SplitMode
}

func NewEngine(data refdata.Provider, rng random.Source, split SplitMode) *Engine {
	if split == "" {
		split = SplitDistance
	}
	return &Engine{data: data, rng: rng, split: split}
}

// WithSource returns a copy of the engine drawing from rng.
func (e *Engine) WithSource(rng random.Source) *Engine {
	c := *e
	c.rng = rng
	return &c
}

func (e *Engine) Decide(origin, dest models.Airport, airline models.Airline, baseMinutes int) (models.LayoverDecision, error) {
	if origin.Code == dest.Code {
		return models.LayoverDecision{}, models.NewComputeError(models.ErrUnsupportedRoute, origin.Code+"-"+dest.Code)
	}

	required, reason := e.requiresLayover(origin, dest, airline, baseMinutes)
	if !required {
		return models.LayoverDecision{
			Reason:     reason,
			LegMinutes: []int{baseMinutes},
		}, nil
	}

	hub, err := e.chooseAirport(origin, dest, airline)
	if err != nil {
		return models.LayoverDecision{}, err
	}

	legs, err := e.splitLegs(origin, hub, dest, baseMinutes)
	if err != nil {
		return models.LayoverDecision{}, err
	}

	return models.LayoverDecision{
		RequiresLayover: true,
		Reason:          reason,
		Airport:         hub.Code,
		DwellMinutes:    random.Between(e.rng, MinDwellMinutes, MaxDwellMinutes),
		LegMinutes:      legs,
	}, nil
}

func (e *Engine) requiresLayover(origin, dest models.Airport, airline models.Airline, baseMinutes int) (bool, string) {
	if e.data.NeverDirect(origin.Code, dest.Code) {
		return true, ReasonNeverDirect
	}
	if baseMinutes > LongHaulThresholdMinutes {
		return true, ReasonLongHaul
	}
	if e.data.HasDirectRoute(airline.Code, origin.Code, dest.Code) {
		return false, ReasonDirectRoute
	}
	if random.Chance(e.rng, hubProbability(origin, dest, airline)) {
		return true, ReasonHubRouting
	}
	return false, ReasonDirect
}

func hubProbability(origin, dest models.Airport, airline models.Airline) float64 {
	if origin.Region == dest.Region {
		return SameRegionProbability
	}
	if airline.HubFocused {
		return HubFocusedProbability
	}
	return InterRegionProbability
}

// chooseAirport prefers the airline's own hubs, then hubs of the regions
// the journey touches, then the global list.
func (e *Engine) chooseAirport(origin, dest models.Airport, airline models.Airline) (models.Airport, error) {
	exclude := func(codes []string) []string {
		out := make([]string, 0, len(codes))
		seen := make(map[string]bool, len(codes))
		for _, c := range codes {
			if c == origin.Code || c == dest.Code || seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
		return out
	}

	tiers := [][]string{
		exclude(airline.Hubs),
		exclude(e.regionalCandidates(origin.Region, dest.Region)),
		exclude(e.data.GlobalHubs()),
	}
	for _, candidates := range tiers {
		if len(candidates) == 0 {
			continue
		}
		code := random.Pick(e.rng, candidates)
		if a, ok := e.data.Airport(code); ok {
			return a, nil
		}
	}
	return models.Airport{}, models.NewComputeError(models.ErrUnsupportedRoute, origin.Code+"-"+dest.Code)
}

func (e *Engine) regionalCandidates(a, b string) []string {
	if via := e.data.BridgeRegions(a, b); len(via) > 0 {
		var out []string
		for _, region := range via {
			out = append(out, e.data.RegionHubs(region)...)
		}
		return out
	}
	out := append([]string{}, e.data.RegionHubs(a)...)
	if b != a {
		out = append(out, e.data.RegionHubs(b)...)
	}
	return out
}

func (e *Engine) splitLegs(origin, hub, dest models.Airport, baseMinutes int) ([]int, error) {
	if e.split == SplitRatio {
		share := MinFirstLegShare + e.rng.Float64()*(MaxFirstLegShare-MinFirstLegShare)
		first := int(math.Round(float64(baseMinutes) * share))
		return []int{first, baseMinutes - first}, nil
	}

	first, err := estimate.BetweenAirports(origin, hub)
	if err != nil {
		return nil, err
	}
	second, err := estimate.BetweenAirports(hub, dest)
	if err != nil {
		return nil, err
	}
	return []int{first.Minutes, second.Minutes}, nil
}
