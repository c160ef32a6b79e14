package floorplan

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// ErrInvalidExpression is returned for expressions that are not normalized
// Polish expressions over the module set.
var ErrInvalidExpression = errors.New("invalid polish expression")

// Op is a slicing cut.
type Op byte

const (
	// Horizontal stacks the left operand below the right one.
	Horizontal Op = '+'
	// Vertical places the left operand to the left of the right one.
	Vertical Op = '*'
)

func (o Op) complement() Op {
	if o == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Element is one symbol of a Polish expression: an operand (module index)
// when Op is zero, otherwise an operator.
type Element struct {
	Module int
	Op     Op
}

// Operand returns the element for the module at index i.
func Operand(i int) Element { return Element{Module: i} }

// Operator returns the element for a cut.
func Operator(op Op) Element { return Element{Op: op} }

// IsOperator reports whether e is a cut.
func (e Element) IsOperator() bool { return e.Op != 0 }

// Expression is a postfix slicing floorplan.
type Expression []Element

// Initial returns "0 1 * 2 * ... n-1 *": every module side by side.
func Initial(n int) Expression {
	if n <= 0 {
		return nil
	}
	e := make(Expression, 0, 2*n-1)
	e = append(e, Operand(0))
	for i := 1; i < n; i++ {
		e = append(e, Operand(i), Operator(Vertical))
	}
	return e
}

// Clone returns a copy of e.
func (e Expression) Clone() Expression {
	return append(Expression(nil), e...)
}

// Modules returns the number of operands an expression of this length holds.
func (e Expression) Modules() int {
	return (len(e) + 1) / 2
}

// Validate checks that e is a normalized Polish expression using each of the
// modules 0..n-1 exactly once.
func (e Expression) Validate(n int) error {
	if n <= 0 || len(e) != 2*n-1 {
		return fmt.Errorf("%w: length %d for %d modules", ErrInvalidExpression, len(e), n)
	}

	seen := make([]bool, n)
	operands, operators := 0, 0
	for i, el := range e {
		if el.IsOperator() {
			if el.Op != Horizontal && el.Op != Vertical {
				return fmt.Errorf("%w: unknown operator %q at %d", ErrInvalidExpression, el.Op, i)
			}
			if i > 0 && e[i-1].Op == el.Op {
				return fmt.Errorf("%w: repeated operator %q at %d", ErrInvalidExpression, el.Op, i)
			}
			operators++
		} else {
			if el.Module < 0 || el.Module >= n || seen[el.Module] {
				return fmt.Errorf("%w: operand %d at %d", ErrInvalidExpression, el.Module, i)
			}
			seen[el.Module] = true
			operands++
		}
		if operators >= operands {
			return fmt.Errorf("%w: balloting violated at %d", ErrInvalidExpression, i)
		}
	}
	return nil
}

// String renders e with module indices, space separated.
func (e Expression) String() string {
	return e.render(func(i int) string { return strconv.Itoa(i) })
}

// Format renders e with module names.
func (e Expression) Format(modules []Module) string {
	return e.render(func(i int) string { return strconv.Itoa(modules[i].Name) })
}

func (e Expression) render(operand func(int) string) string {
	var sb strings.Builder
	for i, el := range e {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if el.IsOperator() {
			sb.WriteByte(byte(el.Op))
		} else {
			sb.WriteString(operand(el.Module))
		}
	}
	return sb.String()
}

// Perturb returns a copy of e changed by one randomly chosen move. The copy
// equals e when the chosen move has no legal target.
func (e Expression) Perturb(rng *rand.Rand) Expression {
	next := e.Clone()
	switch rng.IntN(3) {
	case 0:
		next.SwapOperands(rng)
	case 1:
		next.ComplementChain(rng)
	default:
		next.SwapOperandOperator(rng)
	}
	return next
}

// SwapOperands (M1) swaps two operands that are adjacent in operand order.
func (e Expression) SwapOperands(rng *rand.Rand) bool {
	pos := e.operandPositions()
	if len(pos) < 2 {
		return false
	}
	r := rng.IntN(len(pos) - 1)
	e[pos[r]], e[pos[r+1]] = e[pos[r+1]], e[pos[r]]
	return true
}

// ComplementChain (M2) flips every cut in a randomly chosen operator chain.
func (e Expression) ComplementChain(rng *rand.Rand) bool {
	starts := e.chainStarts()
	if len(starts) == 0 {
		return false
	}
	for i := starts[rng.IntN(len(starts))]; i < len(e) && e[i].IsOperator(); i++ {
		e[i].Op = e[i].Op.complement()
	}
	return true
}

// SwapOperandOperator (M3) swaps an adjacent operand and operator, trying
// candidates in random order until the result stays normalized.
func (e Expression) SwapOperandOperator(rng *rand.Rand) bool {
	var candidates []int
	for i := 0; i+1 < len(e); i++ {
		if e[i].IsOperator() != e[i+1].IsOperator() {
			candidates = append(candidates, i)
		}
	}

	n := e.Modules()
	for _, c := range rng.Perm(len(candidates)) {
		i := candidates[c]
		e[i], e[i+1] = e[i+1], e[i]
		if e.Validate(n) == nil {
			return true
		}
		e[i], e[i+1] = e[i+1], e[i]
	}
	return false
}

func (e Expression) operandPositions() []int {
	var pos []int
	for i, el := range e {
		if !el.IsOperator() {
			pos = append(pos, i)
		}
	}
	return pos
}

// chainStarts returns the index of the first operator of each maximal operator run.
func (e Expression) chainStarts() []int {
	var starts []int
	for i := 0; i+1 < len(e); i++ {
		if !e[i].IsOperator() && e[i+1].IsOperator() {
			starts = append(starts, i+1)
		}
	}
	return starts
}
