// Package selector draws a restaurant at random, weighted by how often it was
// eaten at. Every record owns Weight+1 slots of a virtual multiset and one slot
// is drawn uniformly.
package selector

import (
	"errors"
	"math/rand/v2"

	"lunchbot/internal/domain"
	"lunchbot/internal/types"
)

var ErrEmptyRegistry = errors.New("no restaurants to choose from")

// NewSource returns a source seeded from the runtime's random state.
func NewSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Choose returns the record owning the drawn slot. records is not modified.
func Choose(records []types.Restaurant, src domain.RandomSource) (types.Restaurant, error) {
	total := TotalSlots(records)
	if total == 0 {
		return types.Restaurant{}, ErrEmptyRegistry
	}

	k := src.IntN(total)
	for _, r := range records {
		k -= r.Slots()
		if k < 0 {
			return r, nil
		}
	}

	// unreachable while src honours [0, total)
	return records[len(records)-1], nil
}

func TotalSlots(records []types.Restaurant) int {
	total := 0
	for _, r := range records {
		total += r.Slots()
	}
	return total
}

// Probability is the exact chance of records[i] being drawn.
func Probability(records []types.Restaurant, i int) float64 {
	total := TotalSlots(records)
	if total == 0 || i < 0 || i >= len(records) {
		return 0
	}
	return float64(records[i].Slots()) / float64(total)
}
