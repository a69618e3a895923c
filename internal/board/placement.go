package board

import "fmt"

// Neighbors lists the offsets of the eight cells around a cell.
var Neighbors = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Placement selects how Generate chooses hazard cells.
// Every strategy picks exactly HazardCount distinct cells uniformly at random.
type Placement int

const (
	// PlacementRejection samples random cells and resamples on collision.
	PlacementRejection Placement = iota
	// PlacementShuffle runs a partial Fisher-Yates shuffle over all cells.
	PlacementShuffle
)

// String returns the placement name used in configuration.
func (p Placement) String() string {
	switch p {
	case PlacementRejection:
		return "rejection"
	case PlacementShuffle:
		return "shuffle"
	default:
		return "unknown"
	}
}

// ParsePlacement converts a configuration name into a Placement.
func ParsePlacement(s string) (Placement, error) {
	switch s {
	case "rejection", "":
		return PlacementRejection, nil
	case "shuffle":
		return PlacementShuffle, nil
	default:
		return PlacementRejection, fmt.Errorf("unknown placement %q", s)
	}
}
