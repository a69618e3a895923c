package game

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/minesofdoom/internal/board"
	"github.com/samdwyer/minesofdoom/internal/telemetry"
)

// Game holds the mutable state of one session.
type Game struct {
	id       uuid.UUID
	board    *board.Board
	revealed [][]bool
	hidden   int // Cells not yet revealed
	state    State
	moves    int
}

// CellView is the render-facing state of one cell.
// Hazard and Count are only meaningful when Revealed is true.
type CellView struct {
	Revealed bool
	Hazard   bool
	Count    int
}

// Start builds and generates a new board from cfg and opens a session on it.
func Start(ctx context.Context, cfg Config) *Game {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.start")
	defer span.End()

	var rng *rand.Rand
	if cfg.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	b := board.New(cfg.Width, cfg.Height, cfg.Hazards, rng)
	b.UsePlacement(cfg.Placement)
	b.Generate(ctx)

	g := New(b)
	span.SetAttributes(
		attribute.String("game.id", g.id.String()),
		attribute.Int("game.width", b.Width()),
		attribute.Int("game.height", b.Height()),
		attribute.Int("game.hazards", b.HazardCount()),
		attribute.Int("game.requested_hazards", cfg.Hazards),
		attribute.Int64("game.seed", cfg.Seed),
	)
	return g
}

// New opens a session on an already generated board.
func New(b *board.Board) *Game {
	revealed := make([][]bool, b.Height())
	for y := range revealed {
		revealed[y] = make([]bool, b.Width())
	}

	return &Game{
		id:       uuid.New(),
		board:    b,
		revealed: revealed,
		hidden:   b.Cells(),
		state:    StatePlaying,
	}
}

// ApplyMove reveals the cell at (x, y) and returns the resulting state.
// The coordinate must be inside the board; callers re-prompt otherwise.
// Moves on a finished session change nothing.
func (g *Game) ApplyMove(ctx context.Context, x, y int) State {
	if !g.board.Inside(x, y) {
		panic(fmt.Sprintf("game: move (%d,%d) outside %dx%d board",
			x, y, g.board.Width(), g.board.Height()))
	}
	if g.state.Terminal() {
		return g.state
	}

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.move")
	defer span.End()

	g.moves++
	before := g.hidden

	if g.board.IsHazard(x, y) {
		g.revealAll()
		g.state = StateLost
	} else {
		g.expandFrom(x, y)
		if g.hidden == g.board.HazardCount() {
			g.revealAll()
			g.state = StateWon
		}
	}

	span.SetAttributes(
		attribute.String("game.id", g.id.String()),
		attribute.Int("move.x", x),
		attribute.Int("move.y", y),
		attribute.Int("move.number", g.moves),
		attribute.Int("move.revealed", before-g.hidden),
		attribute.String("move.outcome", g.state.String()),
	)

	if g.state.Terminal() {
		g.end(ctx)
	}
	return g.state
}

// expandFrom reveals (x, y) and, when it has no hazard neighbors, the whole
// connected empty region plus its numbered border. Hazards are never revealed.
func (g *Game) expandFrom(x, y int) {
	stack := [][2]int{{x, y}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cx, cy := cur[0], cur[1]

		if g.revealed[cy][cx] || g.board.IsHazard(cx, cy) {
			continue
		}
		g.revealed[cy][cx] = true
		g.hidden--

		if !g.board.IsEmpty(cx, cy) {
			continue
		}
		for _, off := range board.Neighbors {
			nx, ny := cx+off[0], cy+off[1]
			if g.board.Inside(nx, ny) && !g.revealed[ny][nx] {
				stack = append(stack, [2]int{nx, ny})
			}
		}
	}
}

// revealAll uncovers every cell once the session has ended.
func (g *Game) revealAll() {
	for y := range g.revealed {
		for x := range g.revealed[y] {
			g.revealed[y][x] = true
		}
	}
	g.hidden = 0
}

// end records the session outcome.
func (g *Game) end(ctx context.Context) {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.end")
	span.SetAttributes(
		attribute.String("game.id", g.id.String()),
		attribute.String("outcome", g.state.String()),
		attribute.Int("moves_taken", g.moves),
	)
	span.End()
}

// ID returns the session identifier.
func (g *Game) ID() uuid.UUID { return g.id }

// Board returns the board this session plays on.
func (g *Game) Board() *board.Board { return g.board }

// State returns the current state.
func (g *Game) State() State { return g.state }

// Alive returns true while the session accepts moves.
func (g *Game) Alive() bool { return g.state == StatePlaying }

// Moves returns the number of moves applied while playing.
func (g *Game) Moves() int { return g.moves }

// Unrevealed returns the number of cells still covered.
func (g *Game) Unrevealed() int { return g.hidden }

// Revealed returns true if the cell at (x, y) has been uncovered.
func (g *Game) Revealed(x, y int) bool {
	return g.revealed[y][x]
}

// Cell returns the render state of the cell at (x, y).
func (g *Game) Cell(x, y int) CellView {
	if !g.revealed[y][x] {
		return CellView{}
	}
	return CellView{
		Revealed: true,
		Hazard:   g.board.IsHazard(x, y),
		Count:    g.board.NeighborCount(x, y),
	}
}
