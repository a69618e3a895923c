// Package main is the entry point for Mines of doom.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/minesofdoom/internal/config"
	"github.com/samdwyer/minesofdoom/internal/console"
	"github.com/samdwyer/minesofdoom/internal/logging"
	"github.com/samdwyer/minesofdoom/internal/telemetry"
	"github.com/samdwyer/minesofdoom/internal/theme"
	"github.com/samdwyer/minesofdoom/internal/ui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "minesofdoom: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// Values from .env never override variables already in the environment
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	cfg, err := config.Parse("minesofdoom", args)
	if err != nil {
		return err
	}

	// The full-screen UI owns the terminal, so logs only go to a file there
	var logOut io.Writer = os.Stderr
	if !cfg.Plain {
		logOut = io.Discard
	}
	log, closeLog, err := logging.New(cfg.LogLevel, cfg.LogFile, logOut)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()

	if cfg.Telemetry {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.WithError(err).Warn("Telemetry setup failed, continuing without traces")
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.WithError(err).Error("Error shutting down telemetry")
				}
			}()
		}
	}

	log.WithFields(logrus.Fields{
		"width":     cfg.Width,
		"height":    cfg.Height,
		"hazards":   cfg.Hazards,
		"placement": cfg.Placement,
		"plain":     cfg.Plain,
	}).Debug("Configuration loaded")

	if cfg.Plain {
		c := console.New(os.Stdin, os.Stdout, log)
		if err := c.Setup(ctx, cfg.Game()); err != nil {
			return fmt.Errorf("setup: %w", err)
		}
		if _, err := c.Run(ctx); err != nil {
			return fmt.Errorf("game: %w", err)
		}
		return nil
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	app := ui.NewApp(screen, theme.MustLoadTheme(), cfg.Game(), log)
	return app.Run(ctx)
}

// setupOTelEnv maps the Honeycomb settings onto the standard OTEL variables.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	apiKey := os.Getenv("MINES_HONEYCOMB_API_KEY")
	dataset := os.Getenv("MINES_HONEYCOMB_DATASET")
	if dataset == "" {
		dataset = "minesofdoom"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
