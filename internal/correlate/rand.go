package correlate

import (
	"math/rand"

	"github.com/google/uuid"
)

// Choice picks one element uniformly from values.
func Choice[T any](rng *rand.Rand, values []T) T {
	return values[rng.Intn(len(values))]
}

// WeightedChoice picks one element with probability proportional to its
// weight. Weights must be non-negative and not all zero; len(weights)
// must equal len(values).
func WeightedChoice[T any](rng *rand.Rand, values []T, weights []float64) T {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	cum := 0.0
	for i, w := range weights {
		cum += w
		if r < cum {
			return values[i]
		}
	}
	return values[len(values)-1]
}

// ID produces a UUIDv4 string from the generator's own random stream, so
// record identifiers reproduce with the seed.
func ID(rng *rand.Rand) string {
	b := make([]byte, 16)
	rng.Read(b)
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	u, err := uuid.FromBytes(b)
	if err != nil {
		// 16 bytes always form a valid UUID.
		panic(err)
	}
	return u.String()
}

// RoundTo1000 rounds a dollar amount to the nearest thousand.
func RoundTo1000(v int64) int64 {
	return (v + 500) / 1000 * 1000
}

// IntBetween draws uniformly from [lo, hi] inclusive.
func IntBetween(rng *rand.Rand, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + rng.Int63n(hi-lo+1)
}
