// Package options produces the alternative itineraries shown on the
// flight selection step.
package options

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dharmasatrya/fakeflight/internal/itinerary"
	"github.com/dharmasatrya/fakeflight/internal/models"
	"github.com/dharmasatrya/fakeflight/internal/random"
	"github.com/dharmasatrya/fakeflight/internal/timezone"
)

const (
	// Alternatives leave within this many minutes of the requested clock
	// time, on the same local day.
	MaxShiftMinutes = 360
	shiftStep       = 5
)

type Config struct {
	Timeout time.Duration
}

type Generator struct {
	service *itinerary.Service
	config  Config
}

type Result struct {
	Itineraries []models.Itinerary
	Requested   int
	Succeeded   int
	Failed      int
	Errors      []string
}

func NewGenerator(service *itinerary.Service, config Config) *Generator {
	if config.Timeout <= 0 {
		config.Timeout = 2 * time.Second
	}
	return &Generator{
		service: service,
		config:  config,
	}
}

// Generate computes n itineraries concurrently. The first keeps the
// requested departure time. It fails only when no option could be built,
// returning the first error in option order.
func (g *Generator) Generate(ctx context.Context, req models.ItineraryRequest, n int) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if n <= 0 {
		n = models.DefaultOptionCount
	}

	genCtx, cancel := context.WithTimeout(ctx, g.config.Timeout)
	defer cancel()

	// Seeds are drawn up front so results do not depend on scheduling.
	// Each option carries its seed so it can be booked as shown.
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = random.Seed(g.service.Source())
	}

	type optionResult struct {
		index     int
		itinerary *models.Itinerary
		err       error
	}

	resultCh := make(chan optionResult, n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(index int, seed int64) {
			defer wg.Done()

			select {
			case <-genCtx.Done():
				resultCh <- optionResult{index: index, err: genCtx.Err()}
				return
			default:
			}

			optReq := req
			optReq.Seed = seed
			if index > 0 {
				optReq.DepartureTime = shiftClock(req.DepartureTime, random.New(seed))
			}
			it, err := g.service.Compute(optReq)
			resultCh <- optionResult{index: index, itinerary: it, err: err}
		}(i, seeds[i])
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	collected := make([]optionResult, 0, n)
	for r := range resultCh {
		collected = append(collected, r)
	}
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].index < collected[j].index
	})

	result := &Result{
		Itineraries: make([]models.Itinerary, 0, n),
		Requested:   n,
	}
	var firstErr error
	for _, r := range collected {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("option %d: %v", r.index+1, r.err))
			continue
		}
		result.Succeeded++
		result.Itineraries = append(result.Itineraries, *r.itinerary)
	}

	if result.Succeeded == 0 {
		return result, firstErr
	}
	return result, nil
}

// shiftClock moves an HH:MM clock by a random multiple of five minutes,
// staying inside the day. Unparseable input is returned unchanged so the
// service reports it.
func shiftClock(clock string, rng random.Source) string {
	t, err := time.Parse(timezone.ClockLayout, clock)
	if err != nil {
		return clock
	}
	steps := random.Between(rng, -MaxShiftMinutes/shiftStep, MaxShiftMinutes/shiftStep)
	minutes := t.Hour()*60 + t.Minute() + steps*shiftStep
	minutes = max(0, min(minutes, 24*60-shiftStep))
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
