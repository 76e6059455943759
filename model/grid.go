package model

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/rules"
	"github.com/sheikhrachel/go-life/utils"
)

// minCellsPerWorker keeps tiny populations on the sequential path
const minCellsPerWorker = 64

// Grid holds the live cells of an unbounded Life plane.
// Dead cells are never stored: a coordinate is in live iff that cell is alive.
type Grid struct {
	live map[Coord]struct{}

	workers int
	pool    *CountPool
}

// NewGrid creates an empty grid that advances sequentially
func NewGrid() *Grid {
	return &Grid{live: make(map[Coord]struct{})}
}

// NewGridFromConfig creates an empty grid using the parallel and pooling settings of config
func NewGridFromConfig(config utils.Config) *Grid {
	g := NewGrid()
	if config.UseParallel {
		g.workers = config.WorkerCount()
	}
	if config.UseMemoryPool {
		g.pool = NewCountPool()
	}
	return g
}

// Toggle flips the liveness of a single cell
func (g *Grid) Toggle(c Coord) {
	if _, ok := g.live[c]; ok {
		delete(g.live, c)
		return
	}
	g.live[c] = struct{}{}
}

// IsAlive reports whether the cell at c is alive
func (g *Grid) IsAlive(c Coord) bool {
	_, ok := g.live[c]
	return ok
}

// Reset kills every cell
func (g *Grid) Reset() {
	clear(g.live)
}

// Load replaces the live set with cells; it never merges with existing state
func (g *Grid) Load(cells []Coord) {
	g.live = make(map[Coord]struct{}, len(cells))
	for _, c := range cells {
		g.live[c] = struct{}{}
	}
}

// Population returns the number of live cells
func (g *Grid) Population() int {
	return len(g.live)
}

// Snapshot returns a copy of the live cells in row-major order
func (g *Grid) Snapshot() []Coord {
	out := make([]Coord, 0, len(g.live))
	for c := range g.live {
		out = append(out, c)
	}
	slices.SortFunc(out, compareCoords)
	return out
}

// Bounds returns the bounding rectangle of the live cells, false when the grid is empty
func (g *Grid) Bounds() (Rect, bool) {
	var (
		r     Rect
		valid bool
	)
	for c := range g.live {
		if !valid {
			r = Rect{Min: c, Max: c}
			valid = true
			continue
		}
		r.Min.X = min(r.Min.X, c.X)
		r.Min.Y = min(r.Min.Y, c.Y)
		r.Max.X = max(r.Max.X, c.X)
		r.Max.Y = max(r.Max.Y, c.Y)
	}
	return r, valid
}

// Advance computes the next generation and installs it.
// Only live cells and their neighbors are examined, so the cost follows the
// population and never the extent of the pattern.
func (g *Grid) Advance() {
	if len(g.live) == 0 {
		return
	}

	neighbors := g.countNeighbors()

	next := make(map[Coord]struct{}, len(g.live))
	for c, n := range neighbors {
		if rules.ApplyConwayRules(n, g.IsAlive(c)) {
			next[c] = struct{}{}
		}
	}

	g.pool.put(neighbors)
	g.live = next
}

// countNeighbors maps every cell adjacent to a live cell to its live-neighbor count.
// Live cells without live neighbors are absent, which the rule treats as death.
func (g *Grid) countNeighbors() counts {
	if shards := g.shardCount(); shards > 1 {
		if out, err := g.countNeighborsParallel(shards); err == nil {
			return out
		}
	}

	out := g.pool.get()
	for c := range g.live {
		addNeighbors(out, c)
	}
	return out
}

func (g *Grid) shardCount() int {
	if g.workers < 2 {
		return 0
	}
	return min(g.workers, len(g.live)/minCellsPerWorker)
}

// countNeighborsParallel counts into per-worker maps and merges them once every worker is done.
// No worker touches the live set beyond reading it.
func (g *Grid) countNeighborsParallel(shards int) (counts, error) {
	cells := make([]Coord, 0, len(g.live))
	for c := range g.live {
		cells = append(cells, c)
	}

	var (
		eg             errgroup.Group
		partials       = make([]counts, shards)
		cellsPerWorker = (len(cells) + shards - 1) / shards // Ceiling division
	)

	for i := range shards {
		var (
			start = i * cellsPerWorker
			end   = min(start+cellsPerWorker, len(cells))
		)
		if start >= len(cells) {
			break
		}

		eg.Go(func() error {
			local := g.pool.get()
			for _, c := range cells[start:end] {
				addNeighbors(local, c)
			}
			partials[i] = local
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	merged := partials[0]
	for _, part := range partials[1:] {
		for c, n := range part {
			merged[c] += n
		}
		g.pool.put(part)
	}
	return merged, nil
}

func addNeighbors(m counts, c Coord) {
	for _, off := range neighborOffsets {
		m[c.Add(off)]++
	}
}

// Hash returns an MD5 digest of the live set, independent of map iteration order
func (g *Grid) Hash() string {
	h := md5.New()
	buf := make([]byte, 0, 2*binary.MaxVarintLen64)
	for _, c := range g.Snapshot() {
		buf = binary.AppendVarint(buf[:0], int64(c.X))
		buf = binary.AppendVarint(buf, int64(c.Y))
		h.Write(buf)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

func compareCoords(a, b Coord) int {
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	}
	return 0
}
