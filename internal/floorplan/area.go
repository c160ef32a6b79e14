package floorplan

import (
	"cmp"
	"fmt"
	"slices"
)

// Shape is a bounding box a subtree can take.
type Shape struct {
	Width  float64
	Height float64
}

// Area returns the box area.
func (s Shape) Area() float64 {
	return s.Width * s.Height
}

// Evaluate returns the non-dominated bounding boxes of the floorplan e over
// modules, sorted by increasing width.
func Evaluate(e Expression, modules []Module) ([]Shape, error) {
	var stack [][]Shape
	for i, el := range e {
		if !el.IsOperator() {
			if el.Module < 0 || el.Module >= len(modules) {
				return nil, fmt.Errorf("%w: operand %d at %d", ErrInvalidExpression, el.Module, i)
			}
			stack = append(stack, prune(modules[el.Module].Shapes()))
			continue
		}

		if len(stack) < 2 {
			return nil, fmt.Errorf("%w: operator at %d lacks operands", ErrInvalidExpression, i)
		}
		a, b := stack[len(stack)-2], stack[len(stack)-1]
		stack = append(stack[:len(stack)-2], combine(a, b, el.Op))
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: %d subtrees left", ErrInvalidExpression, len(stack))
	}
	return stack[0], nil
}

// Smallest returns the shape with the least area. shapes must not be empty.
func Smallest(shapes []Shape) Shape {
	return slices.MinFunc(shapes, func(a, b Shape) int {
		return cmp.Compare(a.Area(), b.Area())
	})
}

// combine joins every shape pair of two subtrees with the cut op.
func combine(a, b []Shape, op Op) []Shape {
	out := make([]Shape, 0, len(a)*len(b))
	for _, sa := range a {
		for _, sb := range b {
			if op == Horizontal {
				out = append(out, Shape{Width: max(sa.Width, sb.Width), Height: sa.Height + sb.Height})
			} else {
				out = append(out, Shape{Width: sa.Width + sb.Width, Height: max(sa.Height, sb.Height)})
			}
		}
	}
	return prune(out)
}

// prune drops every shape that another shape fits inside.
func prune(shapes []Shape) []Shape {
	slices.SortFunc(shapes, func(a, b Shape) int {
		if c := cmp.Compare(a.Width, b.Width); c != 0 {
			return c
		}
		return cmp.Compare(a.Height, b.Height)
	})

	kept := shapes[:0]
	for _, s := range shapes {
		if len(kept) == 0 || s.Height < kept[len(kept)-1].Height {
			kept = append(kept, s)
		}
	}
	return kept
}
