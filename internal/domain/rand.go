package domain

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Rand is a goroutine-safe random source shared by background selection and
// component placement. A fixed seed makes a run reproducible.
type Rand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRand creates a Rand. Seed 0 seeds from the clock.
func NewRand(seed int64) *Rand {
	s := uint64(seed) //nolint:gosec // reinterpretation of the bits is intended
	if seed == 0 {
		s = uint64(time.Now().UnixNano()) //nolint:gosec // clock seeds are non-negative
	}

	return &Rand{r: rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))} //nolint:gosec // placement is not security sensitive
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.r.Float64()
}

// IntN returns a value in [0, n). It panics when n <= 0.
func (r *Rand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.r.IntN(n)
}
