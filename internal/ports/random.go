package ports

import (
	"math/rand/v2"
	"sync"
)

// Random is the source for every probabilistic branch in the simulation.
type Random interface {
	Float64() float64
	IntN(n int) int
}

type lockedRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRandom returns a goroutine-safe deterministic source.
func NewSeededRandom(seed uint64) Random {
	return &lockedRandom{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (r *lockedRandom) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

func (r *lockedRandom) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}
