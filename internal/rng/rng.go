// Package rng provides the seeded pseudo-random stream shared by maze
// carving, door selection and actor placement.
//
// Every generation pass owns exactly one Source. Replaying a seed replays
// the whole draw sequence, so callers must draw in a fixed order:
// carving, door, player, enemy, collectible.
package rng

import (
	"math"
	"math/rand"
	"time"
)

// Source is a deterministic integer stream keyed by a signed seed.
// It is not safe for concurrent use.
type Source struct {
	seed  int64
	r     *rand.Rand
	draws int
}

// New creates a Source already initialised with seed.
func New(seed int64) *Source {
	s := &Source{}
	s.Init(seed)
	return s
}

// Init resets the stream to the deterministic start state for seed.
func (s *Source) Init(seed int64) {
	s.seed = seed
	s.r = rand.New(rand.NewSource(seed))
	s.draws = 0
}

// Seed returns the seed the stream was last initialised with.
func (s *Source) Seed() int64 {
	return s.seed
}

// NextInt returns a uniformly distributed integer in [min, max).
// A collapsed range (max <= min) returns min and still counts as a draw so
// that the draw order of a replay is unaffected.
func (s *Source) NextInt(min, max int) int {
	s.draws++
	if max <= min {
		return min
	}
	return min + s.r.Intn(max-min)
}

// Draws reports how many values have been drawn since the last Init.
func (s *Source) Draws() int {
	return s.draws
}

// RandomSeed draws a fresh seed from the wall clock, kept within the signed
// 32-bit range so seeds stay portable to hosts with narrower integers.
func RandomSeed() int64 {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return r.Int63n(math.MaxUint32+1) + math.MinInt32
}
