package pattern

import (
	"strconv"

	"github.com/randomizedcoder/patterngen/internal/config"
)

const fieldSeparator = ", "

// Row is one generated output line.
type Row struct {
	Index  int
	Value1 float64
	Value2 float64
	Flag   string
}

// AppendLine appends the formatted row, without a trailing newline, to b.
func (r Row) AppendLine(b []byte) []byte {
	b = strconv.AppendInt(b, int64(r.Index), 10)
	b = append(b, fieldSeparator...)
	b = strconv.AppendFloat(b, r.Value1, 'f', config.ValuePrecision, 64)
	b = append(b, fieldSeparator...)
	b = strconv.AppendFloat(b, r.Value2, 'f', config.ValuePrecision, 64)
	b = append(b, fieldSeparator...)
	return append(b, r.Flag...)
}

// String returns the row as "index, value1, value2, flag".
func (r Row) String() string {
	return string(r.AppendLine(nil))
}
