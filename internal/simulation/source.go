package simulation

import (
	"math/rand/v2"

	"github.com/nvandessel/walkheat/internal/lattice"
)

// Source picks the direction of each step.
type Source interface {
	Next() lattice.Direction
}

// RandSource draws directions uniformly from a seeded PCG generator.
type RandSource struct {
	seed uint64
	rng  *rand.Rand
}

// NewRandSource returns a source whose sequence is fixed by seed.
func NewRandSource(seed uint64) *RandSource {
	return &RandSource{
		seed: seed,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the seed the source was created with.
func (s *RandSource) Seed() uint64 {
	return s.seed
}

// Next returns one of the four directions with equal probability.
func (s *RandSource) Next() lattice.Direction {
	return lattice.Directions[s.rng.IntN(len(lattice.Directions))]
}

// Script replays a fixed list of directions, wrapping around at the end.
type Script struct {
	dirs []lattice.Direction
	pos  int
}

// NewScript returns a source that yields dirs in order, cycling forever.
// It panics if dirs is empty.
func NewScript(dirs ...lattice.Direction) *Script {
	if len(dirs) == 0 {
		panic("simulation: NewScript needs at least one direction")
	}
	return &Script{dirs: dirs}
}

// Next returns the next scripted direction.
func (s *Script) Next() lattice.Direction {
	d := s.dirs[s.pos%len(s.dirs)]
	s.pos++
	return d
}

// Drawn returns how many directions have been handed out so far.
func (s *Script) Drawn() int {
	return s.pos
}
