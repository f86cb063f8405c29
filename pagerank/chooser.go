package pagerank

import (
	"math/rand"
	"sync"
)

// Chooser should be implemented by types that provide the random choices
// made by the random surfer.
type Chooser interface {
	// Uniform returns an index in the [0, n) range where every index is
	// equally likely to be picked.
	Uniform(n int) int

	// Weighted returns an index in the [0, len(weights)) range where the
	// probability of picking index i is proportional to weights[i].
	// Weights are non-negative.
	Weighted(weights []float64) int
}

// Static and compile-time check to ensure randChooser implements
// the Chooser interface.
var _ Chooser = (*randChooser)(nil)

// randChooser is a Chooser backed by a private pseudo-random source. It is
// safe for concurrent use.
type randChooser struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandChooser returns a Chooser whose choices are fully determined by
// seed. Two choosers created with the same seed produce the same sequence of
// choices.
func NewRandChooser(seed int64) Chooser {
	return &randChooser{rng: rand.New(rand.NewSource(seed))}
}

// Uniform implements Chooser.
func (r *randChooser) Uniform(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.rng.Intn(n)
}

// Weighted implements Chooser.
func (r *randChooser) Weighted(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}

	r.mu.Lock()
	x := r.rng.Float64() * total
	r.mu.Unlock()

	for i, w := range weights {
		if x < w {
			return i
		}
		x -= w
	}

	// Rounding errors may leave x slightly above the last bucket; fall back
	// to the last index carrying any weight.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}

	return len(weights) - 1
}
