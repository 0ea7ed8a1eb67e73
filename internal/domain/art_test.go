package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtSelector_IsDeterministicForSeed(t *testing.T) {
	a := NewArtSelector(7)
	b := NewArtSelector(7)

	for range 50 {
		assert.Equal(t, a.Choose("capsule", 5), b.Choose("capsule", 5))
	}
}

func TestArtSelector_SmallPools(t *testing.T) {
	s := NewArtSelector(1)

	assert.Equal(t, -1, s.Choose("capsule", 0))
	assert.Equal(t, 0, s.Choose("capsule", 1))
	assert.Equal(t, 0, s.Choose("capsule", 1))
}

func TestArtSelector_AvoidsRepeats(t *testing.T) {
	s := NewArtSelector(99)

	repeats := 0
	prev := s.Choose("screen", 2)

	for range 200 {
		pick := s.Choose("screen", 2)
		assert.GreaterOrEqual(t, pick, 0)
		assert.Less(t, pick, 2)

		if pick == prev {
			repeats++
		}

		prev = pick
	}

	// A bare coin flip would repeat about 100 times.
	assert.Less(t, repeats, 20)
}

func TestArtSelector_SlotsAreIndependent(t *testing.T) {
	s := NewArtSelector(3)

	for range 20 {
		pick := s.Choose("a", 3)
		assert.GreaterOrEqual(t, pick, 0)
		assert.Less(t, pick, 3)
		assert.Equal(t, 0, s.Choose("b", 1))
	}
}
