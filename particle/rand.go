package particle

import "math/rand/v2"

// Rand is the random source the engine draws from. *rand.Rand from math/rand/v2 satisfies it,
// which lets tests inject a seeded generator and replay a run exactly.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a deterministic PCG-backed generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// DefaultRand returns a randomly seeded generator. It is used wherever a caller does not inject
// a Rand.
func DefaultRand() *rand.Rand {
	return NewRand(rand.Uint64())
}

// Uniform draws a value uniformly from [min, max). A reversed range is sampled the same way
// and an empty range always returns min.
func Uniform(rng Rand, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
