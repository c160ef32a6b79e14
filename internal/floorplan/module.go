// Package floorplan places rectangular modules with slicing floorplans.
//
// A floorplan is a normalized Polish expression over module indices and the
// two cut operators. Rows produced by patterngen ("name, width, height,
// rotatable") are read back as modules, and simulated annealing searches for
// the expression with the smallest bounding area.
package floorplan

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

var (
	// ErrNoModules is returned when the input holds no module rows.
	ErrNoModules = errors.New("no modules")

	// ErrDuplicateModule is returned when two rows share a module name.
	ErrDuplicateModule = errors.New("duplicate module name")

	// ErrInvalidModule is returned when a row cannot describe a module.
	ErrInvalidModule = errors.New("invalid module")
)

// Module is a rectangle to place.
type Module struct {
	Name      int
	Width     float64
	Height    float64
	Rotatable bool
}

// Area returns the module's area.
func (m Module) Area() float64 {
	return m.Width * m.Height
}

// Shapes returns the orientations the module may take. Rotatable,
// non-square modules have two.
func (m Module) Shapes() []Shape {
	shapes := []Shape{{Width: m.Width, Height: m.Height}}
	if m.Rotatable && m.Width != m.Height {
		shapes = append(shapes, Shape{Width: m.Height, Height: m.Width})
	}
	return shapes
}

// ReadModules parses "name, width, height, rotatable" rows. Blank lines are skipped.
func ReadModules(r io.Reader) ([]Module, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var modules []Module
	seen := make(map[int]bool)
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read modules: %w", err)
		}

		m, err := parseModule(record)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if seen[m.Name] {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w %d", line, ErrDuplicateModule, m.Name)
		}
		seen[m.Name] = true
		modules = append(modules, m)
	}

	if len(modules) == 0 {
		return nil, ErrNoModules
	}
	return modules, nil
}

func parseModule(record []string) (Module, error) {
	name, err := strconv.Atoi(record[0])
	if err != nil {
		return Module{}, fmt.Errorf("%w: name %q: %w", ErrInvalidModule, record[0], err)
	}
	width, err := parseSide(record[1])
	if err != nil {
		return Module{}, fmt.Errorf("%w: width: %w", ErrInvalidModule, err)
	}
	height, err := parseSide(record[2])
	if err != nil {
		return Module{}, fmt.Errorf("%w: height: %w", ErrInvalidModule, err)
	}
	rotatable, err := strconv.ParseBool(record[3])
	if err != nil {
		return Module{}, fmt.Errorf("%w: rotatable %q: %w", ErrInvalidModule, record[3], err)
	}

	return Module{Name: name, Width: width, Height: height, Rotatable: rotatable}, nil
}

func parseSide(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if !(v > 0) || math.IsInf(v, 1) {
		return 0, fmt.Errorf("%q out of range", s)
	}
	return v, nil
}
