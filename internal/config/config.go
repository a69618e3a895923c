// Package config loads process settings from a .env file, the environment,
// and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v3"

	"github.com/samdwyer/minesofdoom/internal/board"
	"github.com/samdwyer/minesofdoom/internal/game"
)

// EnvPrefix is prepended to every flag name to form its environment variable,
// e.g. -log-level is read from MINES_LOG_LEVEL.
const EnvPrefix = "MINES"

// Config holds all process settings.
type Config struct {
	Width     int
	Height    int
	Hazards   int
	Seed      int64
	Placement board.Placement

	Plain     bool // Line-mode console instead of the full-screen UI
	LogLevel  string
	LogFile   string
	Telemetry bool
}

// Game returns the session parameters.
func (c Config) Game() game.Config {
	return game.Config{
		Width:     c.Width,
		Height:    c.Height,
		Hazards:   c.Hazards,
		Seed:      c.Seed,
		Placement: c.Placement,
	}
}

// LoadDotEnv loads variables from the named .env file into the environment.
// A missing file is not an error; variables already set are kept.
func LoadDotEnv(filename string) error {
	err := godotenv.Load(filename)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return nil
}

// Parse reads settings from args and MINES_* environment variables.
func Parse(name string, args []string) (Config, error) {
	var (
		cfg       Config
		placement string
	)

	fset := flag.NewFlagSet(name, flag.ContinueOnError)
	fset.SetOutput(io.Discard)
	fset.IntVar(&cfg.Width, "width", 10, "board width")
	fset.IntVar(&cfg.Height, "height", 10, "board height")
	fset.IntVar(&cfg.Hazards, "hazards", 10, "number of hazards (clamped to the board size)")
	fset.Int64Var(&cfg.Seed, "seed", 0, "random seed, 0 for time-based")
	fset.StringVar(&placement, "placement", "rejection", "hazard placement: rejection or shuffle")
	fset.BoolVar(&cfg.Plain, "plain", false, "use the line-mode console")
	fset.StringVar(&cfg.LogLevel, "log-level", "info", "log level")
	fset.StringVar(&cfg.LogFile, "log-file", "", "append logs to this file")
	fset.BoolVar(&cfg.Telemetry, "telemetry", false, "export traces over OTLP")

	if err := ff.Parse(fset, args, ff.WithEnvVarPrefix(EnvPrefix)); err != nil {
		return Config{}, fmt.Errorf("failed to parse flags: %w", err)
	}

	p, err := board.ParsePlacement(placement)
	if err != nil {
		return Config{}, err
	}
	cfg.Placement = p

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects board dimensions that cannot hold a cell.
// Hazard counts are left to the board, which clamps them.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("board dimensions must be positive, got %dx%d", c.Width, c.Height)
	}
	return nil
}
