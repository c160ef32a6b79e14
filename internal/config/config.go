// Package config handles application configuration from positional CLI arguments.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	// Count is the number of rows to generate. Values <= 0 produce no rows.
	Count int
}

// Value range and flag labels for generated rows.
const (
	MinValue = 0.1
	MaxValue = 100.0

	// ValuePrecision is the number of fractional digits printed for values.
	ValuePrecision = 1

	FlagTrue  = "true"
	FlagFalse = "false"
)

// Flags returns the boolean-like labels a row can carry. Each call returns a
// fresh slice.
func Flags() []string {
	return []string{FlagTrue, FlagFalse}
}

var (
	// ErrMissingCount is returned when no count argument is supplied.
	ErrMissingCount = errors.New("missing row count argument")

	// ErrInvalidCount is returned when the count argument is not a base-10 integer.
	ErrInvalidCount = errors.New("invalid row count")
)

// Parse builds a Config from positional arguments (program name excluded).
// Only the first argument is read.
func Parse(args []string) (*Config, error) {
	if len(args) == 0 {
		return nil, ErrMissingCount
	}

	n, err := ParseCount(args[0])
	if err != nil {
		return nil, err
	}

	return &Config{Count: n}, nil
}

// ParseCount parses a base-10 integer. Surrounding whitespace is ignored and
// single underscores may separate digits ("1_000").
func ParseCount(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	if strings.Contains(trimmed, "_") {
		if !underscoresOK(trimmed) {
			return 0, fmt.Errorf("%w %q: misplaced underscore", ErrInvalidCount, s)
		}
		trimmed = strings.ReplaceAll(trimmed, "_", "")
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidCount, s, err)
	}
	return n, nil
}

// underscoresOK reports whether every underscore in s sits between two digits.
func underscoresOK(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
