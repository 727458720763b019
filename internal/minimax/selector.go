package minimax

import (
	"math/rand"
	"sync"
)

// Selector picks one of n candidates and returns its index in [0, n).
// The searcher uses it for the opening move only.
type Selector interface {
	Choose(n int) int
}

// SelectorFunc adapts a plain function to Selector.
type SelectorFunc func(n int) int

func (that SelectorFunc) Choose(n int) int {
	return that(n)
}

// FirstSelector always takes the first candidate.
type FirstSelector struct{}

func (FirstSelector) Choose(int) int {
	return 0
}

type randomSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSelector returns a uniform selector seeded with seed. It is safe
// for concurrent use.
func NewRandomSelector(seed int64) Selector {
	return &randomSelector{
		rng: rand.New(rand.NewSource(seed)), //nolint: gosec // it's ok
	}
}

func (that *randomSelector) Choose(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rng.Intn(n)
}
