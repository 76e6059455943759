package rules

import "strings"

// Name is the rulestring of the only rule the engine implements
const Name = "B3/S23"

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

A live cell with 2 or 3 live neighbors survives, a dead cell with exactly 3 is born,
every other cell is dead in the next generation.
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// IsConway reports whether a rulestring names B3/S23.
// Both the B/S notation and the legacy S/B form "23/3" are accepted.
func IsConway(rule string) bool {
	switch strings.ToUpper(strings.TrimSpace(rule)) {
	case "B3/S23", "S23/B3", "23/3":
		return true
	}
	return false
}
