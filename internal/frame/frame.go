// Package frame provides a small in-memory columnar table. It is the
// training and scoring surface for encoders: ordered named columns, a null
// mask per column, and an in-place "convert to categorical" operation.
package frame

import (
	"fmt"
	"strconv"

	"github.com/ShayCichocki/targetenc/internal/schema"
)

// ColumnType identifies how a column stores its cells.
type ColumnType string

const (
	// Numeric columns hold double-precision values.
	Numeric ColumnType = "numeric"
	// String columns hold free-form text.
	String ColumnType = "string"
	// Categorical columns hold values from a finite set of levels.
	Categorical ColumnType = "categorical"
)

// Column is a single named column. Cells are kept as strings alongside a
// parallel null mask; numeric columns additionally keep the parsed values.
type Column struct {
	name  string
	typ   ColumnType
	cells []string
	nums  []float64
	nulls []bool

	// levels maps categorical values to dense level indexes, in
	// first-appearance order. Populated by ToCategorical.
	levels     []string
	levelIndex map[string]int
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Type returns the column type.
func (c *Column) Type() ColumnType { return c.typ }

// Len returns the number of cells.
func (c *Column) Len() int { return len(c.cells) }

// IsNull reports whether the cell at row i is null.
func (c *Column) IsNull(i int) bool { return c.nulls[i] }

// Value returns the raw cell value at row i. Null cells return "".
func (c *Column) Value(i int) string { return c.cells[i] }

// Float returns the numeric view of the cell at row i: the parsed value for
// numeric columns, the level index for categorical columns that never held
// numbers. A numeric column converted to categorical keeps its parsed
// values as the numeric view. String columns and null cells have none.
func (c *Column) Float(i int) (float64, error) {
	if c.nulls[i] {
		return 0, fmt.Errorf("column %s: row %d is null", c.name, i)
	}
	switch {
	case c.nums != nil:
		return c.nums[i], nil
	case c.typ == Categorical:
		return float64(c.levelIndex[c.cells[i]]), nil
	default:
		return 0, fmt.Errorf("column %s: no numeric view for type %s", c.name, c.typ)
	}
}

// Levels returns the categorical levels in first-appearance order, or nil
// for non-categorical columns.
func (c *Column) Levels() []string { return c.levels }

// LevelEncoded reports whether the column's numeric view is its level
// indexes rather than parsed values.
func (c *Column) LevelEncoded() bool { return c.typ == Categorical && c.nums == nil }

// Frame is an ordered collection of equal-length columns.
type Frame struct {
	cols   []*Column
	byName map[string]int
	rows   int
}

// New returns an empty frame.
func New() *Frame {
	return &Frame{byName: make(map[string]int)}
}

// NumRows returns the row count. An empty frame has zero rows.
func (f *Frame) NumRows() int { return f.rows }

// NumCols returns the column count.
func (f *Frame) NumCols() int { return len(f.cols) }

// Column returns the named column, or false if absent.
func (f *Frame) Column(name string) (*Column, bool) {
	i, ok := f.byName[name]
	if !ok {
		return nil, false
	}
	return f.cols[i], true
}

// Columns returns the columns in order.
func (f *Frame) Columns() []*Column { return f.cols }

func (f *Frame) addColumn(c *Column) error {
	if _, exists := f.byName[c.name]; exists {
		return fmt.Errorf("column %s already exists", c.name)
	}
	if len(f.cols) > 0 && c.Len() != f.rows {
		return fmt.Errorf("column %s has %d rows, frame has %d", c.name, c.Len(), f.rows)
	}
	f.byName[c.name] = len(f.cols)
	f.cols = append(f.cols, c)
	f.rows = c.Len()
	return nil
}

// AddStringColumn appends a string column. Empty cells are treated as null.
func (f *Frame) AddStringColumn(name string, cells []string) error {
	nulls := make([]bool, len(cells))
	for i, v := range cells {
		nulls[i] = v == ""
	}
	return f.addColumn(&Column{name: name, typ: String, cells: cells, nulls: nulls})
}

// AddNumericColumn appends a numeric column. A nil null mask means no nulls.
func (f *Frame) AddNumericColumn(name string, vals []float64, nulls []bool) error {
	if nulls == nil {
		nulls = make([]bool, len(vals))
	}
	if len(nulls) != len(vals) {
		return fmt.Errorf("column %s: %d values but %d null flags", name, len(vals), len(nulls))
	}
	cells := make([]string, len(vals))
	for i, v := range vals {
		if !nulls[i] {
			cells[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
	}
	return f.addColumn(&Column{name: name, typ: Numeric, cells: cells, nums: vals, nulls: nulls})
}

// ToCategorical converts the named column to a categorical column in place,
// assigning level indexes in first-appearance order. Converting a column
// that is already categorical is a no-op, so repeated conversion of the
// same set of columns is safe in any order.
func (f *Frame) ToCategorical(name string) error {
	col, ok := f.Column(name)
	if !ok {
		return fmt.Errorf("column %s not found", name)
	}
	if col.typ == Categorical {
		return nil
	}
	col.levels = nil
	col.levelIndex = make(map[string]int)
	for i, v := range col.cells {
		if col.nulls[i] {
			continue
		}
		if _, seen := col.levelIndex[v]; !seen {
			col.levelIndex[v] = len(col.levels)
			col.levels = append(col.levels, v)
		}
	}
	col.typ = Categorical
	return nil
}

// Schema describes the frame's columns as a flat schema. A column is marked
// nullable when it contains at least one null cell.
func (f *Frame) Schema() schema.Schema {
	fields := make([]schema.Field, len(f.cols))
	for i, c := range f.cols {
		fields[i] = schema.Field{
			Name:     c.name,
			Type:     fieldType(c.typ),
			Nullable: anyNull(c.nulls),
		}
	}
	return schema.New(fields...)
}

func fieldType(t ColumnType) schema.FieldType {
	switch t {
	case Numeric:
		return schema.Numeric
	case Categorical:
		return schema.Categorical
	default:
		return schema.String
	}
}

func anyNull(nulls []bool) bool {
	for _, n := range nulls {
		if n {
			return true
		}
	}
	return false
}
