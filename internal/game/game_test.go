package game

import (
	"context"
	"testing"

	"github.com/samdwyer/minesofdoom/internal/board"
)

func countRevealed(g *Game) int {
	n := 0
	b := g.Board()
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if g.Revealed(x, y) {
				n++
			}
		}
	}
	return n
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state    State
		expected string
	}{
		{StatePlaying, "playing"},
		{StateLost, "lost"},
		{StateWon, "won"},
		{State(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.expected {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.expected)
		}
	}
}

func TestStateTerminal(t *testing.T) {
	if StatePlaying.Terminal() {
		t.Error("StatePlaying should not be terminal")
	}
	if !StateLost.Terminal() || !StateWon.Terminal() {
		t.Error("StateLost and StateWon should be terminal")
	}
}

func TestStart(t *testing.T) {
	g := Start(context.Background(), Config{Width: 9, Height: 7, Hazards: 10, Seed: 12345})

	if g.State() != StatePlaying || !g.Alive() {
		t.Errorf("Start().State() = %v, want playing", g.State())
	}
	if g.Board().Width() != 9 || g.Board().Height() != 7 {
		t.Errorf("Start() board = %dx%d, want 9x7", g.Board().Width(), g.Board().Height())
	}
	if !g.Board().Generated() {
		t.Error("Start() should generate the board")
	}
	if got := countRevealed(g); got != 0 {
		t.Errorf("Start() revealed %d cells, want 0", got)
	}
	if g.Unrevealed() != 63 {
		t.Errorf("Start().Unrevealed() = %d, want 63", g.Unrevealed())
	}
	if g.Moves() != 0 {
		t.Errorf("Start().Moves() = %d, want 0", g.Moves())
	}
}

func TestStartSeedReproducible(t *testing.T) {
	ctx := context.Background()
	cfg := Config{Width: 12, Height: 12, Hazards: 20, Seed: 777, Placement: board.PlacementShuffle}
	g1 := Start(ctx, cfg)
	g2 := Start(ctx, cfg)

	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			if g1.Board().IsHazard(x, y) != g2.Board().IsHazard(x, y) {
				t.Fatalf("hazard mismatch at (%d,%d) with the same seed", x, y)
			}
		}
	}
	if g1.ID() == g2.ID() {
		t.Error("separate sessions should have distinct IDs")
	}
}

func TestMoveOnHazardLoses(t *testing.T) {
	b := board.FromLayout([][]bool{
		{false, false, false},
		{false, true, false},
		{false, false, false},
	})
	g := New(b)

	state := g.ApplyMove(context.Background(), 1, 1)

	if state != StateLost || g.Alive() {
		t.Errorf("ApplyMove on hazard = %v, want lost", state)
	}
	if got := countRevealed(g); got != 9 {
		t.Errorf("losing move revealed %d cells, want 9", got)
	}
	if g.Unrevealed() != 0 {
		t.Errorf("Unrevealed() after loss = %d, want 0", g.Unrevealed())
	}
}

func TestMoveOnNumberedCellRevealsOnlyThatCell(t *testing.T) {
	b := board.FromLayout([][]bool{
		{true, false, false, false},
		{false, false, false, false},
		{false, false, false, false},
	})
	g := New(b)

	state := g.ApplyMove(context.Background(), 1, 1)

	if state != StatePlaying {
		t.Errorf("ApplyMove on numbered cell = %v, want playing", state)
	}
	if got := countRevealed(g); got != 1 {
		t.Errorf("numbered move revealed %d cells, want 1", got)
	}
	if !g.Revealed(1, 1) {
		t.Error("target cell should be revealed")
	}
	if view := g.Cell(1, 1); !view.Revealed || view.Hazard || view.Count != 1 {
		t.Errorf("Cell(1, 1) = %+v, want revealed count 1", view)
	}
}

func TestCascadeRevealsRegionAndBorder(t *testing.T) {
	// Hazard wall in column 2 splits the board; the left region is 0s and 1s.
	//   . . H . .
	//   . . H . .
	//   . . H . .
	//   . . H . .
	layout := make([][]bool, 4)
	for y := range layout {
		layout[y] = []bool{false, false, true, false, false}
	}
	b := board.FromLayout(layout)
	g := New(b)

	state := g.ApplyMove(context.Background(), 0, 0)
	if state != StatePlaying {
		t.Fatalf("ApplyMove = %v, want playing", state)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			want := x < 2
			if got := g.Revealed(x, y); got != want {
				t.Errorf("Revealed(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
	for y := 0; y < 4; y++ {
		if g.Revealed(2, y) {
			t.Errorf("cascade revealed hazard at (2,%d)", y)
		}
	}
}

func TestCascadeStopsAtNumberedBorder(t *testing.T) {
	// Single hazard in the corner of a 6x6 board: revealing the far corner
	// opens everything except the hazard, which wins the game.
	layout := make([][]bool, 6)
	for y := range layout {
		layout[y] = make([]bool, 6)
	}
	layout[0][0] = true
	b := board.FromLayout(layout)
	g := New(b)

	state := g.ApplyMove(context.Background(), 5, 5)

	if state != StateWon {
		t.Errorf("ApplyMove = %v, want won", state)
	}
	if got := countRevealed(g); got != 36 {
		t.Errorf("winning move revealed %d cells, want 36", got)
	}
}

func TestCascadeLeavesIslandBehindNumbers(t *testing.T) {
	// A ring of hazards around (3,3) on a 7x7 board. The outer band is all
	// zeros, the band next to the ring is numbered, the center stays hidden.
	layout := make([][]bool, 7)
	for y := range layout {
		layout[y] = make([]bool, 7)
		for x := range layout[y] {
			layout[y][x] = max(abs(x-3), abs(y-3)) == 1
		}
	}
	b := board.FromLayout(layout)
	g := New(b)

	if state := g.ApplyMove(context.Background(), 0, 0); state != StatePlaying {
		t.Fatalf("ApplyMove = %v, want playing", state)
	}

	for y := 0; y < 7; y++ {
		for x := 0; x < 7; x++ {
			want := max(abs(x-3), abs(y-3)) >= 2
			if got := g.Revealed(x, y); got != want {
				t.Errorf("Revealed(%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if g.Unrevealed() != 9 {
		t.Errorf("Unrevealed() = %d, want 9", g.Unrevealed())
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func TestCascadeOnLargeBoard(t *testing.T) {
	const size = 400
	layout := make([][]bool, size)
	for y := range layout {
		layout[y] = make([]bool, size)
	}
	layout[size-1][size-1] = true
	b := board.FromLayout(layout)
	g := New(b)

	if state := g.ApplyMove(context.Background(), 0, 0); state != StateWon {
		t.Errorf("ApplyMove = %v, want won", state)
	}
}

func TestRepeatMoveIsIdempotent(t *testing.T) {
	b := board.FromLayout([][]bool{
		{true, false, false},
		{false, false, false},
	})
	g := New(b)
	ctx := context.Background()

	g.ApplyMove(ctx, 1, 0)
	before := g.Unrevealed()
	state := g.ApplyMove(ctx, 1, 0)

	if state != StatePlaying {
		t.Errorf("repeat ApplyMove = %v, want playing", state)
	}
	if g.Unrevealed() != before {
		t.Errorf("repeat move changed Unrevealed() from %d to %d", before, g.Unrevealed())
	}
}

func TestWinOnTwoByTwo(t *testing.T) {
	orders := [][][2]int{
		{{1, 1}, {0, 1}, {1, 0}},
		{{1, 0}, {1, 1}, {0, 1}},
		{{0, 1}, {1, 0}, {1, 1}},
	}

	for _, order := range orders {
		b := board.FromLayout([][]bool{
			{true, false},
			{false, false},
		})
		g := New(b)
		ctx := context.Background()

		for i, mv := range order {
			state := g.ApplyMove(ctx, mv[0], mv[1])
			last := i == len(order)-1
			if last && state != StateWon {
				t.Errorf("order %v: final move = %v, want won", order, state)
			}
			if !last && state != StatePlaying {
				t.Errorf("order %v: move %d = %v, want playing", order, i, state)
			}
			if !last && g.Unrevealed() != 3-i {
				t.Errorf("order %v: Unrevealed() after move %d = %d, want %d", order, i, g.Unrevealed(), 3-i)
			}
		}
		if got := countRevealed(g); got != 4 {
			t.Errorf("order %v: won game revealed %d cells, want 4", order, got)
		}
	}
}

func TestSingleCellNoHazardWinsImmediately(t *testing.T) {
	g := Start(context.Background(), Config{Width: 1, Height: 1, Hazards: 0, Seed: 1})

	if got := g.Board().NeighborCount(0, 0); got != 0 {
		t.Errorf("NeighborCount(0, 0) = %d, want 0", got)
	}
	if state := g.ApplyMove(context.Background(), 0, 0); state != StateWon {
		t.Errorf("ApplyMove = %v, want won", state)
	}
}

func TestSaturatedBoardLosesOnAnyMove(t *testing.T) {
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			g := Start(context.Background(), Config{Width: 3, Height: 3, Hazards: 20, Seed: 5})
			if g.Board().HazardCount() != 9 {
				t.Fatalf("HazardCount() = %d, want 9", g.Board().HazardCount())
			}

			if state := g.ApplyMove(context.Background(), x, y); state != StateLost {
				t.Errorf("ApplyMove(%d, %d) = %v, want lost", x, y, state)
			}
			if got := countRevealed(g); got != 9 {
				t.Errorf("ApplyMove(%d, %d) revealed %d cells, want 9", x, y, got)
			}
		}
	}
}

func TestTerminalStatesAreAbsorbing(t *testing.T) {
	b := board.FromLayout([][]bool{
		{true, false},
		{false, false},
	})
	g := New(b)
	ctx := context.Background()

	g.ApplyMove(ctx, 0, 0)
	moves := g.Moves()

	if state := g.ApplyMove(ctx, 1, 1); state != StateLost {
		t.Errorf("move after loss = %v, want lost", state)
	}
	if g.Moves() != moves {
		t.Errorf("move after loss was counted: Moves() = %d, want %d", g.Moves(), moves)
	}
}

func TestMoveOutsideBoardPanics(t *testing.T) {
	g := Start(context.Background(), Config{Width: 3, Height: 3, Hazards: 1, Seed: 1})

	defer func() {
		if recover() == nil {
			t.Error("ApplyMove outside the board should panic")
		}
	}()
	g.ApplyMove(context.Background(), 3, 0)
}

func TestCellHidesUnrevealedState(t *testing.T) {
	b := board.FromLayout([][]bool{{true, false}})
	g := New(b)

	if view := g.Cell(0, 0); view.Revealed || view.Hazard || view.Count != 0 {
		t.Errorf("Cell(0, 0) before reveal = %+v, want zero value", view)
	}
}
