package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// NewRand returns a PCG-backed source. A zero seed draws the seed from
// crypto/rand so production games are unpredictable; tests pass a fixed one.
func NewRand(seed uint64) *rand.Rand {
	hi := seed
	if seed == 0 {
		var b [16]byte
		_, _ = crand.Read(b[:])
		seed = binary.LittleEndian.Uint64(b[:8])
		hi = binary.LittleEndian.Uint64(b[8:])
	}
	return rand.New(rand.NewPCG(seed, hi))
}
