// Package main is the entry point for the patterngen application.
// patterngen prints numbered rows of random values and a true/false flag to stdout.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/randomizedcoder/patterngen/internal/config"
	"github.com/randomizedcoder/patterngen/internal/pattern"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	// Initialize production JSON logger (stderr)
	logger, err := zap.NewProduction()
	if err != nil {
		os.Stderr.WriteString("failed to create logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	code := run(os.Args, os.Stdout, logger)
	_ = logger.Sync()
	os.Exit(code)
}

func run(args []string, stdout io.Writer, logger *zap.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The count is the only argument, so "-3" must reach config.Parse instead of
	// the flag parser. Usage errors go to stderr so stdout only ever carries rows.
	app := &cli.App{
		Name:            "patterngen",
		Usage:           "print <count> rows of index, two random values and a true/false flag",
		ArgsUsage:       "<count>",
		Version:         version,
		SkipFlagParsing: true,
		HideHelp:        true,
		HideVersion:     true,
		Writer:          os.Stderr,
		ErrWriter:       os.Stderr,
		Action: func(c *cli.Context) error {
			cfg, err := config.Parse(c.Args().Slice())
			if err != nil {
				return err
			}

			logger.Info("patterngen starting",
				zap.String("version", version),
				zap.Int("count", cfg.Count),
			)

			return pattern.New(logger).Run(c.Context, stdout, cfg.Count)
		},
	}

	if err := app.RunContext(ctx, args); err != nil {
		logger.Error("patterngen failed", zap.Error(err))
		return 1
	}
	return 0
}
