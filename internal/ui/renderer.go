package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/minesofdoom/internal/game"
	"github.com/samdwyer/minesofdoom/internal/theme"
)

// Board placement on screen. Each cell takes cellWidth columns.
const (
	originX   = 1
	originY   = 2
	cellWidth = 2
)

const helpText = "arrows/hjkl move  space/enter/click reveal  n new game  q quit"

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
	theme  *theme.Theme
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, th *theme.Theme) *Renderer {
	return &Renderer{screen: screen, theme: th}
}

// Render draws the board, the cursor, and the status lines.
func (r *Renderer) Render(g *game.Game, cursorX, cursorY int) {
	r.screen.Clear()

	title := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	r.screen.SetString(originX, 0, "Mines of doom", title)

	b := g.Board()
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			view := g.Cell(x, y)
			style := r.theme.Style(view)
			if x == cursorX && y == cursorY && g.Alive() {
				style = style.Background(r.theme.CursorColor())
			}
			sx, sy := screenPos(x, y)
			r.screen.SetContent(sx, sy, r.theme.Glyph(view), style)
		}
	}

	statusY := originY + b.Height() + 1
	r.RenderMessage(statusLine(g), statusY)
	switch g.State() {
	case game.StateLost:
		r.renderBanner("BOOM! You hit a hazard. Press n for a new game.", statusY+1, tcell.ColorRed)
	case game.StateWon:
		r.renderBanner("Board cleared! Press n for a new game.", statusY+1, tcell.ColorGreen)
	}
	r.RenderMessage(helpText, statusY+2)

	r.screen.Show()
}

// RenderMessage displays a message on the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	r.screen.SetString(originX, y, msg, style)
}

func (r *Renderer) renderBanner(msg string, y int, color tcell.Color) {
	r.screen.SetString(originX, y, msg, tcell.StyleDefault.Foreground(color).Bold(true))
}

// statusLine summarizes the session for the status row.
func statusLine(g *game.Game) string {
	return fmt.Sprintf("%-8s hazards %d  hidden %d  moves %d",
		g.State(), g.Board().HazardCount(), g.Unrevealed(), g.Moves())
}

// screenPos maps a board cell to its screen position.
func screenPos(x, y int) (int, int) {
	return originX + x*cellWidth, originY + y
}

// boardPos maps a screen position back to a board cell. The spacer column
// between cells maps to nothing.
func boardPos(sx, sy int) (x, y int, ok bool) {
	dx := sx - originX
	if dx < 0 || dx%cellWidth != 0 || sy < originY {
		return 0, 0, false
	}
	return dx / cellWidth, sy - originY, true
}
