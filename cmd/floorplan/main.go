// Package main is the entry point for the floorplan application.
// floorplan reads patterngen rows as modules and prints a small-area slicing floorplan.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/randomizedcoder/patterngen/internal/config"
	"github.com/randomizedcoder/patterngen/internal/floorplan"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		os.Stderr.WriteString("failed to create logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	code := run(os.Args, os.Stdin, os.Stdout, logger)
	_ = logger.Sync()
	os.Exit(code)
}

func run(args []string, stdin io.Reader, stdout io.Writer, logger *zap.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := &cli.App{
		Name:            "floorplan",
		Usage:           "anneal a slicing floorplan for modules read as \"name, width, height, rotatable\" rows",
		ArgsUsage:       "[file]",
		Version:         version,
		HideHelpCommand: true,
		Writer:          os.Stderr,
		ErrWriter:       os.Stderr,
		Action: func(c *cli.Context) error {
			in := stdin
			if path := c.Args().First(); path != "" && path != "-" {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			modules, err := floorplan.ReadModules(in)
			if err != nil {
				return err
			}

			planner, err := floorplan.New(modules, config.DefaultAnneal(), logger)
			if err != nil {
				return err
			}

			res, err := planner.Anneal(c.Context)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(stdout,
				"modules: %d\ninitial area: %.1f\nexpression: %s\narea: %.1f\nwidth: %.1f\nheight: %.1f\n",
				len(modules), res.InitialArea, res.Expression.Format(modules), res.Area, res.Shape.Width, res.Shape.Height)
			return err
		},
	}

	if err := app.RunContext(ctx, args); err != nil {
		logger.Error("floorplan failed", zap.Error(err))
		return 1
	}
	return 0
}
