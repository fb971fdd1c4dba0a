package store

import (
	"sync/atomic"
	"time"
)

// idGen hands out numeric record ids. Ids are seeded from the current time
// in milliseconds, so fresh ids keep the time-derived look of existing
// data, but advance through an atomic counter so rapid calls within the
// same tick never collide.
type idGen struct {
	last atomic.Int64
}

// newIDGen returns a generator whose next id is greater than both floor
// and the current UnixMilli.
func newIDGen(floor int64) *idGen {
	g := &idGen{}
	seed := time.Now().UnixMilli()
	if floor > seed {
		seed = floor
	}
	g.last.Store(seed)
	return g
}

func (g *idGen) Next() int64 {
	return g.last.Add(1)
}

// maxID returns the largest id in the given records.
func maxID[T any](records []T, id func(T) int64) int64 {
	var max int64
	for _, r := range records {
		if v := id(r); v > max {
			max = v
		}
	}
	return max
}
