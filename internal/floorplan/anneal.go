package floorplan

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/randomizedcoder/patterngen/internal/config"
)

// ErrInvalidSchedule is returned for annealing settings that would not terminate.
var ErrInvalidSchedule = errors.New("invalid annealing schedule")

// Result is the outcome of an annealing run.
type Result struct {
	Expression  Expression
	Shape       Shape
	Area        float64
	InitialArea float64

	Steps    int
	Moves    int
	Accepted int
}

// Floorplanner searches for a small-area slicing floorplan.
type Floorplanner struct {
	modules []Module
	cfg     config.Anneal
	logger  *zap.Logger
	rng     *rand.Rand
}

// New creates a Floorplanner seeded from the current time.
func New(modules []Module, cfg config.Anneal, logger *zap.Logger) (*Floorplanner, error) {
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().UnixNano()>>32)))
	return NewWithRng(modules, cfg, logger, rng)
}

// NewWithRng creates a Floorplanner with a custom random source (for testing).
func NewWithRng(modules []Module, cfg config.Anneal, logger *zap.Logger, rng *rand.Rand) (*Floorplanner, error) {
	if len(modules) == 0 {
		return nil, ErrNoModules
	}
	if err := validateSchedule(cfg); err != nil {
		return nil, err
	}
	return &Floorplanner{
		modules: modules,
		cfg:     cfg,
		logger:  logger,
		rng:     rng,
	}, nil
}

func validateSchedule(cfg config.Anneal) error {
	switch {
	case cfg.MovesPerModule <= 0:
		return fmt.Errorf("%w: moves per module %d", ErrInvalidSchedule, cfg.MovesPerModule)
	case !(cfg.CoolingRatio > 0 && cfg.CoolingRatio < 1):
		return fmt.Errorf("%w: cooling ratio %v", ErrInvalidSchedule, cfg.CoolingRatio)
	case !(cfg.MinTemperature > 0):
		return fmt.Errorf("%w: min temperature %v", ErrInvalidSchedule, cfg.MinTemperature)
	case !(cfg.InitialAcceptance > 0 && cfg.InitialAcceptance < 1):
		return fmt.Errorf("%w: initial acceptance %v", ErrInvalidSchedule, cfg.InitialAcceptance)
	case cfg.WarmupMoves < 0:
		return fmt.Errorf("%w: warmup moves %d", ErrInvalidSchedule, cfg.WarmupMoves)
	}
	return nil
}

// Area returns the smallest bounding area of e, or +Inf if e does not
// evaluate over the module set.
func (f *Floorplanner) Area(e Expression) float64 {
	shapes, err := Evaluate(e, f.modules)
	if err != nil {
		return math.Inf(1)
	}
	return Smallest(shapes).Area()
}

// Anneal runs simulated annealing from the all-vertical floorplan. On
// cancellation it returns the best floorplan found so far with ctx.Err().
func (f *Floorplanner) Anneal(ctx context.Context) (Result, error) {
	n := len(f.modules)
	cur := Initial(n)
	curArea := f.Area(cur)

	best, bestArea := cur, curArea
	res := Result{InitialArea: curArea}

	f.logger.Info("annealing started",
		zap.Int("modules", n),
		zap.Float64("initial_area", curArea),
	)

	finish := func() Result {
		res.Expression = best
		res.Area = bestArea
		shapes, _ := Evaluate(best, f.modules)
		res.Shape = Smallest(shapes)
		return res
	}

	if n < 2 {
		return finish(), nil
	}

	t0 := f.initialTemperature(cur)
	limit := f.cfg.MovesPerModule * n

	for t := t0; t >= f.cfg.MinTemperature; {
		if err := ctx.Err(); err != nil {
			f.logger.Info("annealing cancelled", zap.Int("steps", res.Steps), zap.Float64("area", bestArea))
			return finish(), err
		}

		var moves, uphill, rejected int
		for uphill < limit && moves <= 2*limit {
			next := cur.Perturb(f.rng)
			moves++

			nextArea := f.Area(next)
			delta := nextArea - curArea
			if delta <= 0 || f.rng.Float64() < math.Exp(-delta/t) {
				if delta > 0 {
					uphill++
				}
				cur, curArea = next, nextArea
				res.Accepted++
				if curArea < bestArea {
					best, bestArea = cur, curArea
				}
			} else {
				rejected++
			}
		}
		res.Moves += moves
		res.Steps++

		f.logger.Debug("temperature step",
			zap.Float64("temperature", t),
			zap.Int("moves", moves),
			zap.Int("rejected", rejected),
			zap.Float64("best_area", bestArea),
		)

		if float64(rejected)/float64(moves) > f.cfg.MaxRejectRatio {
			break
		}
		if t < f.cfg.FastCoolingFraction*t0 {
			t *= 0.1
		} else {
			t *= f.cfg.CoolingRatio
		}
	}

	f.logger.Info("annealing finished",
		zap.Int("steps", res.Steps),
		zap.Int("moves", res.Moves),
		zap.Float64("area", bestArea),
	)
	return finish(), nil
}

// initialTemperature walks WarmupMoves random moves from start and picks the
// temperature at which the average uphill move is accepted with probability
// InitialAcceptance.
func (f *Floorplanner) initialTemperature(start Expression) float64 {
	cur, curArea := start, f.Area(start)

	var sum float64
	uphill := 0
	for i := 0; i < f.cfg.WarmupMoves; i++ {
		next := cur.Perturb(f.rng)
		nextArea := f.Area(next)
		if d := nextArea - curArea; d > 0 {
			sum += d
			uphill++
		}
		cur, curArea = next, nextArea
	}

	if uphill == 0 {
		return f.cfg.MinTemperature
	}
	return -(sum / float64(uphill)) / math.Log(f.cfg.InitialAcceptance)
}
