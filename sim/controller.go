// Package sim sequences grid updates in response to discrete commands and frame ticks.
package sim

import (
	"time"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/pattern"
)

// historySize is how many recent generations are kept for cycle detection
const historySize = 5

// Controller drives a Grid: single steps, a running/paused flag and a tick-rate timer.
// It owns no cells itself; the grid is shared with whatever reads snapshots for display.
type Controller struct {
	grid     *model.Grid
	interval time.Duration
	elapsed  time.Duration
	running  bool

	generation int
	history    []string
}

// NewController creates a paused controller advancing grid at most once per interval while running
func NewController(grid *model.Grid, interval time.Duration) *Controller {
	c := &Controller{grid: grid, interval: max(interval, 0)}
	c.record()
	return c
}

// Grid returns the grid under control
func (c *Controller) Grid() *model.Grid {
	return c.grid
}

// Generation returns how many generations were advanced since the last reset or load
func (c *Controller) Generation() int {
	return c.generation
}

// Running reports whether ticks advance the grid
func (c *Controller) Running() bool {
	return c.running
}

// Interval returns the time between generations while running
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// SetInterval changes the tick rate; it is safe to call from the frame loop
func (c *Controller) SetInterval(interval time.Duration) {
	c.interval = max(interval, 0)
}

// Step advances exactly one generation, whether running or not
func (c *Controller) Step() {
	c.grid.Advance()
	c.generation++
	c.record()
}

// ToggleRunning flips between running and paused without touching the grid
func (c *Controller) ToggleRunning() {
	c.running = !c.running
	c.elapsed = 0
}

/*
Tick is called once per external frame with the time since the previous frame.

While running, elapsed time accumulates until it reaches the interval, at which point the
grid advances once and the timer restarts. It reports whether a generation was produced.
*/
func (c *Controller) Tick(elapsed time.Duration) bool {
	if !c.running {
		return false
	}

	c.elapsed += elapsed
	if c.elapsed < c.interval {
		return false
	}

	c.elapsed = 0
	c.Step()
	return true
}

// Reset kills every cell and pauses the simulation
func (c *Controller) Reset() {
	c.grid.Reset()
	c.running = false
	c.rewind()
}

// Toggle flips the cell at (x, y)
func (c *Controller) Toggle(x, y int) {
	c.grid.Toggle(model.Coord{X: x, Y: y})
	c.forget()
}

// Load replaces the grid contents with p
func (c *Controller) Load(p *pattern.Pattern) {
	c.grid.Load(p.Cells)
	c.rewind()
}

// Stamp toggles every cell of p translated by origin, leaving the rest of the grid alone
func (c *Controller) Stamp(p *pattern.Pattern, origin model.Coord) {
	for _, cell := range p.Cells {
		c.grid.Toggle(cell.Add(origin))
	}
	c.forget()
}

// Snapshot returns a read-only copy of the live cells
func (c *Controller) Snapshot() []model.Coord {
	return c.grid.Snapshot()
}

// Stagnant reports whether the current generation repeats one of the last few,
// which covers still lifes and oscillators of period up to the history size
func (c *Controller) Stagnant() bool {
	if len(c.history) < 2 {
		return false
	}

	current := c.history[len(c.history)-1]
	for _, h := range c.history[:len(c.history)-1] {
		if h == current {
			return true
		}
	}
	return false
}

// record adds the current state to history and maintains size
func (c *Controller) record() {
	c.history = append(c.history, c.grid.Hash())
	if len(c.history) > historySize+1 {
		c.history = c.history[1:]
	}
}

// forget drops history made stale by an edit, keeping the edited state as its start
func (c *Controller) forget() {
	c.history = nil
	c.record()
}

func (c *Controller) rewind() {
	c.generation = 0
	c.elapsed = 0
	c.forget()
}
