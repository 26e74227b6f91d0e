// Package random holds the single source of randomness used by the
// itinerary generator. Production code draws from a seeded source; tests
// replay scripted values.
package random

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n).
	Intn(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a Source safe for concurrent use. A zero seed seeds from the
// clock.
func New(seed int64) Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedSource{rnd: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// Seed draws a non-zero seed from src.
func Seed(src Source) int64 {
	return int64(src.Intn(math.MaxInt32)) + 1
}


// Between returns an integer in [min, max].
func Between(src Source, min, max int) int {
	if max <= min {
		return min
	}
	return min + src.Intn(max-min+1)
}

// Chance reports whether a draw falls under probability p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}

// Script replays fixed values. Once a queue is exhausted it keeps
// returning its last value, or zero when it was empty.
type Script struct {
	mu     sync.Mutex
	Floats []float64
	Ints   []int
	fi, ii int
}

func (s *Script) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[min(s.fi, len(s.Floats)-1)]
	s.fi++
	return v
}

func (s *Script) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[min(s.ii, len(s.Ints)-1)]
	s.ii++
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}
