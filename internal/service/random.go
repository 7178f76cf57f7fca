package service

import (
	"math"
	"math/rand/v2"
	"sync"
)

// Random is the noise source of the simulation. Float64 returns a value in [0, 1).
type Random interface {
	Float64() float64
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }

// GlobalRandom returns the process-wide generator (safe for concurrent use).
func GlobalRandom() Random { return globalRandom{} }

type seededRandom struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *seededRandom) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// NewSeededRandom returns a reproducible generator for demos and tests.
func NewSeededRandom(seed uint64) Random {
	return &seededRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// uniform draws from [lo, hi).
func uniform(r Random, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
