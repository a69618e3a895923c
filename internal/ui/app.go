package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/minesofdoom/internal/game"
	"github.com/samdwyer/minesofdoom/internal/theme"
)

// App runs sessions on a terminal screen until the player quits.
type App struct {
	screen   *Screen
	renderer *Renderer
	cfg      game.Config
	log      *logrus.Logger

	game             *game.Game
	cursorX, cursorY int
	buttons          tcell.ButtonMask // Mouse buttons held at the last event
	running          bool
}

// NewApp creates an app that starts every session with cfg.
func NewApp(screen *Screen, th *theme.Theme, cfg game.Config, log *logrus.Logger) *App {
	return &App{
		screen:   screen,
		renderer: NewRenderer(screen, th),
		cfg:      cfg,
		log:      log,
	}
}

// Run executes the main loop. The screen is closed on return.
func (a *App) Run(ctx context.Context) error {
	defer a.screen.Close()

	a.newGame(ctx)
	a.running = true
	for a.running {
		a.renderer.Render(a.game, a.cursorX, a.cursorY)

		// Blocks until the next terminal event
		a.handleEvent(ctx, a.screen.PollEvent())
	}
	return nil
}

// Game returns the current session.
func (a *App) Game() *game.Game {
	return a.game
}

// newGame replaces the current session with a fresh board.
func (a *App) newGame(ctx context.Context) {
	a.game = game.Start(ctx, a.cfg)
	a.cursorX, a.cursorY = 0, 0

	a.log.WithFields(logrus.Fields{
		"session": a.game.ID(),
		"width":   a.game.Board().Width(),
		"height":  a.game.Board().Height(),
		"hazards": a.game.Board().HazardCount(),
	}).Info("Session started")
}

// handleEvent processes a single terminal event.
func (a *App) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKeyEvent(ctx, ev)
	case *tcell.EventMouse:
		a.handleMouseEvent(ctx, ev)
	case *tcell.EventResize:
		a.screen.Sync()
	case nil:
		// PollEvent returns nil once the screen is finalized
		a.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (a *App) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.running = false

	case tcell.KeyUp:
		a.moveCursor(0, -1)
	case tcell.KeyDown:
		a.moveCursor(0, 1)
	case tcell.KeyLeft:
		a.moveCursor(-1, 0)
	case tcell.KeyRight:
		a.moveCursor(1, 0)
	case tcell.KeyEnter:
		a.reveal(ctx, a.cursorX, a.cursorY)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			a.running = false
		case 'n', 'N':
			a.newGame(ctx)
		case ' ':
			a.reveal(ctx, a.cursorX, a.cursorY)
		case 'h':
			a.moveCursor(-1, 0)
		case 'j':
			a.moveCursor(0, 1)
		case 'k':
			a.moveCursor(0, -1)
		case 'l':
			a.moveCursor(1, 0)
		}
	}
}

// handleMouseEvent reveals the clicked cell on a left-button press.
func (a *App) handleMouseEvent(ctx context.Context, ev *tcell.EventMouse) {
	pressed := ev.Buttons()&tcell.Button1 != 0 && a.buttons&tcell.Button1 == 0
	a.buttons = ev.Buttons()
	if !pressed {
		return
	}

	x, y, ok := boardPos(ev.Position())
	if !ok || !a.game.Board().Inside(x, y) {
		return
	}
	a.cursorX, a.cursorY = x, y
	a.reveal(ctx, x, y)
}

// moveCursor shifts the cursor, staying on the board.
func (a *App) moveCursor(dx, dy int) {
	x, y := a.cursorX+dx, a.cursorY+dy
	if a.game.Board().Inside(x, y) {
		a.cursorX, a.cursorY = x, y
	}
}

// reveal applies a move at an in-bounds cell while the session is live.
func (a *App) reveal(ctx context.Context, x, y int) {
	if !a.game.Alive() {
		return
	}

	state := a.game.ApplyMove(ctx, x, y)
	a.log.WithFields(logrus.Fields{
		"session": a.game.ID(),
		"x":       x,
		"y":       y,
		"state":   state,
	}).Debug("Move applied")

	if state.Terminal() {
		a.log.WithFields(logrus.Fields{
			"session": a.game.ID(),
			"outcome": state,
			"moves":   a.game.Moves(),
		}).Info("Session ended")
	}
}
