package domain

import (
	"math/rand/v2"
	"sync"
)

// artRerolls bounds how often a pick is redrawn to avoid repeating the
// previous one.
const artRerolls = 5

// ArtSelector picks one sprite out of a pool per art slot, avoiding the
// sprite the same slot showed last time.
type ArtSelector struct {
	mu   sync.Mutex
	rng  *rand.Rand
	last map[string]int
}

// NewArtSelector creates a selector whose choices are fully determined by seed.
func NewArtSelector(seed uint64) *ArtSelector {
	return &ArtSelector{
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		last: make(map[string]int),
	}
}

// Choose returns an index in [0,n) for slot. Pools of fewer than two entries
// always yield 0; n <= 0 yields -1.
func (s *ArtSelector) Choose(slot string, n int) int {
	if n <= 0 {
		return -1
	}

	if n == 1 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, seen := s.last[slot]
	pick := s.rng.IntN(n)

	for i := 0; seen && pick == prev && i < artRerolls; i++ {
		pick = s.rng.IntN(n)
	}

	s.last[slot] = pick

	return pick
}
