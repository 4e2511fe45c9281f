// Package rng provides the deterministic pseudo-random sequence used by map
// generation and booster sampling.
//
// The generator is a 32-bit multiply-xorshift mixer (the mulberry32 scheme),
// written out in full rather than delegated to a platform source. A recorded
// seed replays the exact same stream on every platform and in every port of
// the engine.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// Sequence is a deterministic pseudo-random stream over 32 bits of state.
// The zero value is a valid sequence seeded with 0.
type Sequence struct {
	state uint32
}

// New returns a sequence seeded with the given value.
func New(seed uint32) *Sequence {
	return &Sequence{state: seed}
}

// Uint32 advances the sequence and returns the next value.
func (s *Sequence) Uint32() uint32 {
	s.state += 0x6d2b79f5
	z := s.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return z ^ (z >> 14)
}

// Float64 returns the next value in [0, 1).
func (s *Sequence) Float64() float64 {
	return float64(s.Uint32()) / (1 << 32)
}

// IntN returns a uniform value in [0, n). It returns 0 when n <= 0 so that
// callers sampling from an empty range do not have to guard the call.
func (s *Sequence) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// NewSeed draws a seed from the operating system entropy source. Used when a
// caller wants a fresh, replayable run without supplying a seed of its own.
func NewSeed() (uint32, error) {
	var b [4]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}
