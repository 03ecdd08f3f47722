package randx

import (
	"math/rand/v2"
)

// DefaultSeed is used when a caller passes seed 0.
const DefaultSeed uint64 = 42

// NewPCG returns a deterministic PCG-backed source. Seed 0 means DefaultSeed.
func NewPCG(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle permutes idx in place.
func Shuffle(idx []int, rng *rand.Rand) {
	rng.Shuffle(len(idx), func(i, j int) {
		idx[i], idx[j] = idx[j], idx[i]
	})
}
