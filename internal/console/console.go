// Package console runs the game as a line-mode prompt loop over any
// reader/writer pair.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/minesofdoom/internal/game"
	"github.com/samdwyer/minesofdoom/internal/theme"
)

const separator = "####################"

// Messages printed to the player.
const (
	msgBadSetup   = "I am not as dumb as you think... insert valid values for width, height and number of hazards"
	msgBadMove    = "Don't be dumb mate, just give me a valid move"
	msgOutOfBoard = "It's out of the board mate"
	msgLost       = "Enjoy getting blown :3"
	msgWon        = "Congrats!!! You won the game, you are not so dumb as I thought..."
)

// Console drives one session from text input.
type Console struct {
	in    *bufio.Scanner
	out   io.Writer
	log   *logrus.Logger
	theme *theme.Theme
	game  *game.Game
}

// New creates a console reading from in and writing to out.
func New(in io.Reader, out io.Writer, log *logrus.Logger) *Console {
	return &Console{
		in:    bufio.NewScanner(in),
		out:   out,
		log:   log,
		theme: theme.MustLoadTheme(),
	}
}

// Game returns the current session, or nil before Setup.
func (c *Console) Game() *game.Game {
	return c.game
}

// Setup prompts for the board dimensions and hazard count until they parse,
// then starts a session. Seed and placement are taken from base.
func (c *Console) Setup(ctx context.Context, base game.Config) error {
	fmt.Fprintln(c.out, separator)
	fmt.Fprintln(c.out, "## Mines of doom v0.1")
	fmt.Fprintln(c.out)

	for {
		cfg, err := c.readSetup(base)
		if err == nil {
			c.game = game.Start(ctx, cfg)
			c.log.WithFields(logrus.Fields{
				"session": c.game.ID(),
				"width":   cfg.Width,
				"height":  cfg.Height,
				"hazards": c.game.Board().HazardCount(),
			}).Info("Session started")
			return nil
		}
		if errors.Is(err, io.EOF) {
			return err
		}
		c.log.WithError(err).Debug("Rejected setup input")
		fmt.Fprintln(c.out, msgBadSetup)
	}
}

// readSetup reads width, height and hazard count, stopping at the first bad value.
func (c *Console) readSetup(base game.Config) (game.Config, error) {
	cfg := base

	var err error
	if cfg.Width, err = c.promptInt("Width: "); err != nil {
		return cfg, err
	}
	if cfg.Width <= 0 {
		return cfg, fmt.Errorf("width must be positive, got %d", cfg.Width)
	}
	if cfg.Height, err = c.promptInt("Height: "); err != nil {
		return cfg, err
	}
	if cfg.Height <= 0 {
		return cfg, fmt.Errorf("height must be positive, got %d", cfg.Height)
	}
	// Out-of-range hazard counts are clamped by the board.
	if cfg.Hazards, err = c.promptInt("Hazards: "); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Run plays the session until it is won or lost and returns the final state.
func (c *Console) Run(ctx context.Context) (game.State, error) {
	if c.game == nil {
		return game.StatePlaying, errors.New("console: Run called before Setup")
	}

	fmt.Fprintln(c.out, separator)
	c.PrintBoard()

	for c.game.Alive() {
		x, y, err := c.readMove()
		if err != nil {
			return c.game.State(), err
		}

		state := c.game.ApplyMove(ctx, x, y)
		c.log.WithFields(logrus.Fields{
			"session": c.game.ID(),
			"x":       x,
			"y":       y,
			"state":   state,
		}).Debug("Move applied")

		fmt.Fprintln(c.out, separator)
		c.PrintBoard()
	}

	switch c.game.State() {
	case game.StateLost:
		fmt.Fprintln(c.out, msgLost)
	case game.StateWon:
		fmt.Fprintln(c.out, msgWon)
	}
	c.log.WithFields(logrus.Fields{
		"session": c.game.ID(),
		"outcome": c.game.State(),
		"moves":   c.game.Moves(),
	}).Info("Session ended")

	return c.game.State(), nil
}

// readMove prompts until the player enters two integers inside the board.
func (c *Console) readMove() (int, int, error) {
	b := c.game.Board()
	for {
		fmt.Fprint(c.out, "Your next move (format X Y): ")
		line, err := c.readLine()
		if err != nil {
			return 0, 0, err
		}

		x, y, err := parseMove(line)
		if err != nil {
			fmt.Fprintln(c.out, msgBadMove)
			continue
		}
		if !b.Inside(x, y) {
			fmt.Fprintln(c.out, msgOutOfBoard)
			continue
		}
		return x, y, nil
	}
}

// PrintBoard writes one line per row: X for covered cells, B for hazards,
// and the neighbor count otherwise.
func (c *Console) PrintBoard() {
	b := c.game.Board()
	var sb strings.Builder
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(c.theme.Glyph(c.game.Cell(x, y)))
		}
		sb.WriteByte('\n')
	}
	fmt.Fprint(c.out, sb.String())
}

func (c *Console) promptInt(label string) (int, error) {
	fmt.Fprint(c.out, label)
	line, err := c.readLine()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(line))
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", io.EOF
	}
	return c.in.Text(), nil
}

// parseMove parses "X Y" into two integers.
func parseMove(line string) (int, int, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("expected 2 values, got %d", len(fields))
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
