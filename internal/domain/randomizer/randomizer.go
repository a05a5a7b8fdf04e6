// Package randomizer shuffles question sequences and option orders.
package randomizer

import (
	"math/rand/v2"

	"github.com/remaimber-it/quiz/internal/domain/questionbank"
)

// Source draws a uniformly distributed int in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// New returns a source seeded from the runtime's entropy.
func New() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeeded returns a deterministic source.
func NewSeeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ShuffleSequence returns a uniformly random permutation of items.
// The input is left untouched.
func ShuffleSequence[T any](src Source, items []T) []T {
	shuffled := make([]T, len(items))
	copy(shuffled, items)

	// Fisher-Yates
	for i := len(shuffled) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}

// ShuffleOptionOrder permutes the display order of options. Every key keeps
// its text, so correct-key lookups are unaffected.
func ShuffleOptionOrder(src Source, options questionbank.OptionSet) questionbank.OptionSet {
	if options == nil {
		return nil
	}
	return ShuffleSequence(src, options)
}
