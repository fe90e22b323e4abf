package matching

import (
	"math/rand/v2"
	"sync"
)

// RandomSource yields uniform draws in [0, 1). *rand.Rand satisfies it, but
// is not safe for concurrent use; prefer NewSeededSource for shared seeded
// sources.
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultRandom draws from the runtime's concurrency-safe global generator.
func DefaultRandom() RandomSource { return globalSource{} }

type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeededSource returns a deterministic source that may be shared between
// goroutines. The same seed always produces the same sequence.
func NewSeededSource(seed uint64) RandomSource {
	return &lockedSource{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}
