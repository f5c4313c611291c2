package emu

import (
	"math/rand"
	"time"
)

// Random supplies the bytes consumed by RND.
type Random interface {
	Byte() uint8
}

// SeededRandom is a Random backed by math/rand, seeded once at creation.
type SeededRandom struct {
	src *rand.Rand
}

// NewRandom returns a source seeded with seed. Two sources with the same
// seed produce the same sequence.
func NewRandom(seed int64) *SeededRandom {
	return &SeededRandom{src: rand.New(rand.NewSource(seed))}
}

// NewTimeRandom returns a source seeded from the wall clock.
func NewTimeRandom() *SeededRandom {
	return NewRandom(time.Now().UnixNano())
}

func (r *SeededRandom) Byte() uint8 {
	return uint8(r.src.Intn(256))
}
