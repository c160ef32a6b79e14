package pattern

import (
	"math/rand/v2"
)

// RandomFloatInRange returns a uniformly distributed float in [lo, hi].
// If hi <= lo it returns lo.
func RandomFloatInRange(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Float64()*(hi-lo)
}

// RandomStringFromSlice returns a random element from the slice.
// This is a pure function for easy testing.
func RandomStringFromSlice(rng *rand.Rand, strings []string) string {
	if len(strings) == 0 {
		return ""
	}
	return strings[rng.IntN(len(strings))]
}
