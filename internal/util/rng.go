// Package util has the seeded randomness used by headless runs.
package util

import "math/rand"

// New returns a deterministic generator. Seed 0 is treated as 1.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}

// RunSeed is the seed for run i of a batch started with base.
func RunSeed(base int64, i int) int64 { return base + int64(i)*7919 }

// Pick returns a uniformly chosen element, false if xs is empty.
func Pick[T any](r *rand.Rand, xs []T) (T, bool) {
	var zero T
	if len(xs) == 0 {
		return zero, false
	}
	return xs[r.Intn(len(xs))], true
}
