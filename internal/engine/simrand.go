package engine

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Rand is a mutex-guarded source of simulated figures. Every engine in the
// fleet draws from one shared instance so a fixed seed reproduces an entire
// campaign.
type Rand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRand creates a seeded source. Seed 0 falls back to the current time.
func NewRand(seed int64) *Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Rand{rng: rand.New(rand.NewSource(seed))}
}

// Uniform returns a value drawn uniformly from [lo, hi).
func (r *Rand) Uniform(lo, hi float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return lo + r.rng.Float64()*(hi-lo)
}

// Choice returns a uniformly chosen element, or "" for an empty slice.
func (r *Rand) Choice(options []string) string {
	if len(options) == 0 {
		return ""
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return options[r.rng.Intn(len(options))]
}

// Intn returns a value in [0, n).
func (r *Rand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// Jitter blocks for a random duration in [min, max], or until the context
// is cancelled. It returns the context error on cancellation so callers can
// abort the cycle.
func (r *Rand) Jitter(ctx context.Context, min, max time.Duration) error {
	d := min
	if max > min {
		r.mu.Lock()
		d = min + time.Duration(r.rng.Int63n(int64(max-min)))
		r.mu.Unlock()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
