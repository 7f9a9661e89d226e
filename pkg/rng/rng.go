// Package rng implements the seedable deterministic PRNG used throughout
// the AI runtime core (spec.md §4.1). It is xorshift64* with a fixed
// 64-bit odd multiplier, specified precisely enough that two independent
// instances with the same seed must produce byte-identical streams — the
// determinism contract the tree evaluator and its verifier depend on.
package rng

// multiplier is the fixed 64-bit odd constant xorshift64* scrambles its
// state with before returning the high bits.
const multiplier uint64 = 0x2545F4914F6CDD1D

// fallbackSeed substitutes for a zero seed, which would otherwise leave the
// generator stuck at zero forever.
const fallbackSeed uint64 = 0x9E3779B97F4A7C15

// RNG is a seedable xorshift64* generator.
type RNG struct {
	state uint64
}

// New constructs an RNG seeded with s.
func New(s uint64) *RNG {
	r := &RNG{}
	r.Seed(s)
	return r
}

// Seed (re)initializes the generator's state to a non-zero value derived
// from s. A zero seed is replaced by a fixed non-zero constant so the
// generator never gets stuck producing zero forever.
func (r *RNG) Seed(s uint64) {
	if s == 0 {
		s = fallbackSeed
	}
	r.state = s
}

// NextU32 advances the generator and returns the high 32 bits of the
// scrambled 64-bit state.
func (r *RNG) NextU32() uint32 {
	x := r.state
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.state = x
	return uint32((x * multiplier) >> 32)
}

// NextFloat returns a value in [0, 1) derived from NextU32.
func (r *RNG) NextFloat() float32 {
	return float32(r.NextU32()) / float32(1<<32)
}
