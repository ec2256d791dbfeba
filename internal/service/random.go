package service

import (
	"math/rand/v2"
	"sync"

	"github.com/homevalue/backend/internal/domain"
)

// globalRandom draws from the runtime's shared generator, which is safe for concurrent use
type globalRandom struct{}

func (globalRandom) Float64() float64 {
	return rand.Float64()
}

// DefaultRandom returns the process-wide random source used in production
func DefaultRandom() domain.RandomSource {
	return globalRandom{}
}

// SeededRandom is a deterministic random source guarded for concurrent callers
type SeededRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRandom creates a deterministic random source
func NewSeededRandom(seed uint64) *SeededRandom {
	return &SeededRandom{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (s *SeededRandom) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

// IntN returns a value in [0, n)
func (s *SeededRandom) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}
