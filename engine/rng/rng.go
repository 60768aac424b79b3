// Package rng provides the seeded random source used for shuffles, random
// card insertion and enemy action choice.
package rng

import "math/rand"

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position increments with every draw from the source.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// New creates a new deterministic RNG from a seed.
func New(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a uniform integer in [0, n). n must be positive.
func (r *RNG) Intn(n int) int {
	r.pos++
	return r.src.Intn(n)
}

// Shuffle permutes n elements in place with Fisher-Yates: walking down from
// the last index, each slot is swapped with a uniformly chosen slot at or
// below it. Every permutation is equally likely.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}
