package model

import "sync"

// counts maps a candidate cell to its number of live neighbors
type counts map[Coord]int

// CountPool recycles neighbor-count maps between generations
type CountPool struct {
	pool sync.Pool
}

func NewCountPool() *CountPool {
	return &CountPool{
		pool: sync.Pool{
			New: func() interface{} {
				return make(counts)
			},
		},
	}
}

// get retrieves an empty count map, falling back to a fresh one without a pool
func (p *CountPool) get() counts {
	if p == nil {
		return make(counts)
	}
	return p.pool.Get().(counts)
}

// put clears the map and returns it to the pool
func (p *CountPool) put(m counts) {
	if p == nil || m == nil {
		return
	}
	clear(m)
	p.pool.Put(m)
}
