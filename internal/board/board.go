// Package board provides hazard placement and neighbor counting for a grid.
package board

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/minesofdoom/internal/telemetry"
)

// Board holds the static layout of one game: dimensions, hazard positions,
// and the precomputed hazard count around every cell.
// Grids are indexed [y][x].
type Board struct {
	width       int
	height      int
	hazardCount int
	placement   Placement

	hazards   [][]bool
	counts    [][]int
	generated bool

	rng *rand.Rand
}

// New creates an ungenerated board. The hazard count is clamped into
// [0, width*height]. A nil rng means a time-seeded source is used.
func New(width, height, hazardCount int, rng *rand.Rand) *Board {
	if hazardCount < 0 {
		hazardCount = 0
	} else if hazardCount > width*height {
		hazardCount = width * height
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Board{
		width:       width,
		height:      height,
		hazardCount: hazardCount,
		placement:   PlacementRejection,
		rng:         rng,
	}
}

// FromLayout creates an already generated board from an explicit hazard
// layout indexed [y][x]. All rows must have the same length.
func FromLayout(layout [][]bool) *Board {
	height := len(layout)
	width := 0
	if height > 0 {
		width = len(layout[0])
	}

	b := &Board{width: width, height: height}
	b.hazards = newGrid[bool](width, height)
	for y := range layout {
		for x, hazard := range layout[y] {
			if hazard {
				b.hazards[y][x] = true
				b.hazardCount++
			}
		}
	}
	b.computeCounts()
	b.generated = true
	return b
}

// UsePlacement selects the hazard placement strategy used by Generate.
func (b *Board) UsePlacement(p Placement) {
	b.placement = p
}

// Generate places the hazards and computes the neighbor counts.
func (b *Board) Generate(ctx context.Context) {
	tracer := telemetry.Tracer("board")
	_, span := tracer.Start(ctx, "board.generate")
	defer span.End()

	startTime := time.Now()

	b.hazards = newGrid[bool](b.width, b.height)

	var trials int
	switch b.placement {
	case PlacementShuffle:
		trials = b.placeShuffled()
	default:
		trials = b.placeRejection()
	}

	b.computeCounts()
	b.generated = true

	span.SetAttributes(
		attribute.Int("board.width", b.width),
		attribute.Int("board.height", b.height),
		attribute.Int("board.hazards", b.hazardCount),
		attribute.String("board.placement", b.placement.String()),
		attribute.Int("board.trials", trials),
		attribute.Int64("board.generation_us", time.Since(startTime).Microseconds()),
	)
}

// placeRejection samples random cells until hazardCount distinct ones are
// marked. Returns the number of samples drawn.
func (b *Board) placeRejection() int {
	trials := 0
	placed := 0
	for placed < b.hazardCount {
		x := b.rng.Intn(b.width)
		y := b.rng.Intn(b.height)
		trials++

		if b.hazards[y][x] {
			continue
		}
		b.hazards[y][x] = true
		placed++
	}
	return trials
}

// placeShuffled picks hazardCount cells with a partial Fisher-Yates shuffle
// over the flattened cell indices. Returns the number of random draws.
func (b *Board) placeShuffled() int {
	total := b.width * b.height
	candidates := make([]int, total)
	for i := range candidates {
		candidates[i] = i
	}

	for i := 0; i < b.hazardCount; i++ {
		j := i + b.rng.Intn(total-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]

		idx := candidates[i]
		b.hazards[idx/b.width][idx%b.width] = true
	}
	return b.hazardCount
}

// computeCounts fills counts with the number of hazards among each cell's
// eight neighbors. Cells outside the grid contribute nothing.
func (b *Board) computeCounts() {
	b.counts = newGrid[int](b.width, b.height)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			count := 0
			for _, off := range Neighbors {
				nx, ny := x+off[0], y+off[1]
				if b.Inside(nx, ny) && b.hazards[ny][nx] {
					count++
				}
			}
			b.counts[y][x] = count
		}
	}
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// HazardCount returns the clamped number of hazards on the board.
func (b *Board) HazardCount() int { return b.hazardCount }

// Cells returns the total number of cells.
func (b *Board) Cells() int { return b.width * b.height }

// Generated reports whether hazards and counts have been populated.
func (b *Board) Generated() bool { return b.generated }

// Placement returns the configured placement strategy.
func (b *Board) Placement() Placement { return b.placement }

// Inside returns true if the coordinate lies on the board.
func (b *Board) Inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// IsHazard returns true if the cell holds a hazard.
// The coordinate must be inside the board.
func (b *Board) IsHazard(x, y int) bool {
	b.mustBeGenerated()
	return b.hazards[y][x]
}

// IsEmpty returns true if the cell is not a hazard and has no hazard neighbors.
// The coordinate must be inside the board.
func (b *Board) IsEmpty(x, y int) bool {
	b.mustBeGenerated()
	return b.counts[y][x] == 0 && !b.hazards[y][x]
}

// NeighborCount returns the number of hazards around the cell.
// The value is meaningless for hazard cells.
func (b *Board) NeighborCount(x, y int) int {
	b.mustBeGenerated()
	return b.counts[y][x]
}

func (b *Board) mustBeGenerated() {
	if !b.generated {
		panic("board: queried before Generate")
	}
}

func newGrid[T any](width, height int) [][]T {
	grid := make([][]T, height)
	for y := range grid {
		grid[y] = make([]T, width)
	}
	return grid
}
