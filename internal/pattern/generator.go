// Package pattern generates rows of random numeric data with a boolean-like flag.
package pattern

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/randomizedcoder/patterngen/internal/config"
)

// Generator writes numbered rows of random data.
type Generator struct {
	logger *zap.Logger
	rng    *rand.Rand
	flags  []string
	count  int
}

// New creates a Generator seeded from the current time.
func New(logger *zap.Logger) *Generator {
	return &Generator{
		logger: logger,
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().UnixNano()>>32))),
		flags:  config.Flags(),
	}
}

// NewWithRng creates a Generator with a custom random source (for testing).
func NewWithRng(logger *zap.Logger, rng *rand.Rand) *Generator {
	return &Generator{
		logger: logger,
		rng:    rng,
		flags:  config.Flags(),
	}
}

// Row samples a new row with the given index.
func (g *Generator) Row(index int) Row {
	return Row{
		Index:  index,
		Value1: RandomFloatInRange(g.rng, config.MinValue, config.MaxValue),
		Value2: RandomFloatInRange(g.rng, config.MinValue, config.MaxValue),
		Flag:   RandomStringFromSlice(g.rng, g.flags),
	}
}

// Run writes rows 1..n to w, one Write call per line. n <= 0 writes nothing.
// Cancellation is checked between rows.
func (g *Generator) Run(ctx context.Context, w io.Writer, n int) error {
	g.logger.Info("generation started", zap.Int("rows", n))

	var (
		buf     []byte
		written int
	)
	for i := 1; i <= n; i++ {
		select {
		case <-ctx.Done():
			g.logger.Info("generation cancelled", zap.Int("written", written))
			return ctx.Err()
		default:
		}

		row := g.Row(i)
		buf = append(row.AppendLine(buf[:0]), '\n')
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
		written++
		g.count++

		g.logger.Debug("row", zap.Int("index", i), zap.String("flag", row.Flag))
	}

	g.logger.Info("generation finished", zap.Int("written", written), zap.Int("total", g.count))
	return nil
}

// Count returns the number of rows written across all Run calls.
func (g *Generator) Count() int {
	return g.count
}
