package session

import (
	"sync/atomic"

	"github.com/robalobadob/wordscramble/internal/game"
	"github.com/robalobadob/wordscramble/internal/scramble"
	"github.com/robalobadob/wordscramble/internal/words"
)

// NewEngine builds an engine over vocab with its own random source.
// math/rand/v2 generators are not safe for concurrent use, so every host
// gets a fresh engine. A zero seed draws one from crypto/rand.
func NewEngine(vocab []string, seed uint64) (*game.Engine, error) {
	rng := game.NewRand(seed)
	src, err := words.NewSource(vocab, rng)
	if err != nil {
		return nil, err
	}
	return game.NewEngine(src, scramble.New(rng)), nil
}

// Seeds hands out one seed per session. A zero base yields zero every
// time (crypto/rand seeding); otherwise sessions get base, base+1, ...
// so a run is reproducible while concurrent sessions differ.
type Seeds struct {
	base uint64
	n    atomic.Uint64
}

// NewSeeds starts a sequence at base.
func NewSeeds(base uint64) *Seeds { return &Seeds{base: base} }

// Next returns the seed for the next session.
func (s *Seeds) Next() uint64 {
	if s.base == 0 {
		return 0
	}
	seed := s.base + s.n.Add(1) - 1
	if seed == 0 {
		// wrapped; zero would mean crypto seeding
		seed = s.base
	}
	return seed
}
