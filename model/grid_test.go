package model

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/sheikhrachel/go-life/utils"
)

func gridOf(cells ...Coord) *Grid {
	g := NewGrid()
	g.Load(cells)
	return g
}

func translate(cells []Coord, by Coord) []Coord {
	out := make([]Coord, len(cells))
	for i, c := range cells {
		out[i] = c.Add(by)
	}
	slices.SortFunc(out, compareCoords)
	return out
}

func expectCells(t *testing.T, g *Grid, want []Coord) {
	t.Helper()
	want = slices.Clone(want)
	slices.SortFunc(want, compareCoords)
	if got := g.Snapshot(); !slices.Equal(got, want) {
		t.Fatalf("live cells = %v, expected %v", got, want)
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	g := gridOf(Coord{1, 1})
	for _, c := range []Coord{{0, 0}, {1, 1}, {-5, 7}} {
		before := g.IsAlive(c)
		g.Toggle(c)
		if g.IsAlive(c) == before {
			t.Fatalf("toggle did not flip %v", c)
		}
		g.Toggle(c)
		if g.IsAlive(c) != before {
			t.Fatalf("double toggle of %v changed liveness to %v", c, g.IsAlive(c))
		}
	}
	expectCells(t, g, []Coord{{1, 1}})
}

func TestEmptyGridStaysEmpty(t *testing.T) {
	g := NewGrid()
	g.Advance()
	if g.Population() != 0 {
		t.Fatalf("empty grid produced %d cells", g.Population())
	}
	if _, ok := g.Bounds(); ok {
		t.Fatal("empty grid reported bounds")
	}
}

func TestResetAndLoad(t *testing.T) {
	g := gridOf(Coord{0, 0}, Coord{1, 0}, Coord{2, 0})
	g.Reset()
	if g.Population() != 0 {
		t.Fatalf("reset left %d cells", g.Population())
	}
	g.Advance()
	if g.Population() != 0 {
		t.Fatal("advance after reset created cells")
	}

	g.Toggle(Coord{9, 9})
	g.Load([]Coord{{3, 3}, {4, 4}})
	expectCells(t, g, []Coord{{3, 3}, {4, 4}})
}

func TestBlockIsStill(t *testing.T) {
	block := []Coord{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	g := gridOf(block...)
	for range 3 {
		g.Advance()
		expectCells(t, g, block)
	}
}

func TestBlinkerOscillation(t *testing.T) {
	horizontal := []Coord{{1, 2}, {2, 2}, {3, 2}}
	vertical := []Coord{{2, 1}, {2, 2}, {2, 3}}

	g := gridOf(horizontal...)
	g.Advance()
	expectCells(t, g, vertical)
	g.Advance()
	expectCells(t, g, horizontal)
}

func TestGliderTranslates(t *testing.T) {
	glider := []Coord{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
	g := gridOf(glider...)
	for range 4 {
		g.Advance()
	}
	expectCells(t, g, translate(glider, Coord{1, 1}))
}

func TestFarCoordinatesBehaveLikeOrigin(t *testing.T) {
	far := Coord{10_000_000, -10_000_000}
	blinker := []Coord{{0, 0}, {1, 0}, {2, 0}}

	near := gridOf(blinker...)
	distant := gridOf(translate(blinker, far)...)
	for range 3 {
		near.Advance()
		distant.Advance()
		expectCells(t, distant, translate(near.Snapshot(), far))
	}

	lone := gridOf(far)
	lone.Advance()
	if lone.Population() != 0 {
		t.Fatal("isolated far cell survived")
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 0))
	var soup []Coord
	for range 3000 {
		soup = append(soup, Coord{rng.IntN(120) - 60, rng.IntN(120) - 60})
	}

	sequential := gridOf(soup...)
	parallel := NewGridFromConfig(utils.Config{UseParallel: true, Workers: 4, UseMemoryPool: true})
	parallel.Load(soup)
	if parallel.shardCount() < 2 {
		t.Fatalf("soup of %d cells stays on the sequential path", parallel.Population())
	}

	for gen := range 20 {
		sequential.Advance()
		parallel.Advance()
		if sequential.Hash() != parallel.Hash() {
			t.Fatalf("generation %d differs between sequential and parallel advance", gen+1)
		}
	}
}

func TestBounds(t *testing.T) {
	g := gridOf(Coord{-2, 3}, Coord{4, -1}, Coord{0, 0})
	r, ok := g.Bounds()
	if !ok {
		t.Fatal("expected bounds for non-empty grid")
	}
	if want := (Rect{Min: Coord{-2, -1}, Max: Coord{4, 3}}); r != want {
		t.Fatalf("bounds = %+v, expected %+v", r, want)
	}
	if r.Width() != 7 || r.Height() != 5 || r.Area() != 35 {
		t.Fatalf("unexpected extents %dx%d (%d)", r.Width(), r.Height(), r.Area())
	}
}

func TestHashIgnoresInsertionOrder(t *testing.T) {
	a := gridOf(Coord{0, 0}, Coord{5, 5}, Coord{-3, 2})
	b := gridOf(Coord{-3, 2}, Coord{0, 0}, Coord{5, 5})
	if a.Hash() != b.Hash() {
		t.Fatal("hash depends on insertion order")
	}
	b.Toggle(Coord{1, 1})
	if a.Hash() == b.Hash() {
		t.Fatal("different live sets share a hash")
	}
}
