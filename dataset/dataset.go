// Package dataset normalizes the inputs of a selection run: named-column tables,
// gonum matrices and plain row slices become a mat.Matrix plus optional column names,
// and targets become a flat []float64.
package dataset

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrShapeMismatch = errors.New("dataset: shape mismatch")
	ErrTypeMismatch  = errors.New("dataset: unsupported input type")
	ErrEmptyInput    = errors.New("dataset: empty input")
	ErrFeatureNames  = errors.New("dataset: invalid feature names")
)

// Table is a matrix whose columns carry names.
type Table struct {
	Columns []string
	Data    *mat.Dense
}

func NewTable(columns []string, data *mat.Dense) (Table, error) {
	if data == nil {
		return Table{}, ErrEmptyInput
	}
	_, c := data.Dims()
	if err := CheckFeatures(columns, c); err != nil {
		return Table{}, err
	}
	return Table{Columns: slices.Clone(columns), Data: data}, nil
}

// Names returns the column names at the given indices, in that order.
func (t Table) Names(cols []int) []string {
	return SelectNames(t.Columns, cols)
}

func SelectNames(names []string, cols []int) []string {
	y := make([]string, len(cols))
	for i, c := range cols {
		y[i] = names[c]
	}
	return y
}

// Normalize converts x into a matrix. The returned names are non-nil only when x is a Table.
func Normalize(x any) (mat.Matrix, []string, error) {
	switch v := x.(type) {
	case Table:
		return normalizeTable(&v)
	case *Table:
		if v == nil {
			return nil, nil, ErrEmptyInput
		}
		return normalizeTable(v)
	case [][]float64:
		d, err := FromRows(v)
		return d, nil, err
	case *mat.Dense:
		if v == nil || v.IsEmpty() {
			return nil, nil, ErrEmptyInput
		}
		return v, nil, nil
	case mat.Matrix:
		return v, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %T is neither a table nor a numeric matrix", ErrTypeMismatch, x)
	}
}

func normalizeTable(t *Table) (mat.Matrix, []string, error) {
	if t.Data == nil || t.Data.IsEmpty() {
		return nil, nil, ErrEmptyInput
	}
	_, c := t.Data.Dims()
	if err := CheckFeatures(t.Columns, c); err != nil {
		return nil, nil, err
	}
	return t.Data, slices.Clone(t.Columns), nil
}

// FromRows builds a dense matrix from row slices. Ragged rows are rejected.
func FromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyInput
	}
	c := len(rows[0])
	data := make([]float64, 0, len(rows)*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(row), c)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), c, data), nil
}

// Ravel flattens a target into a []float64. Matrices must be a single row or column.
func Ravel(y any) ([]float64, error) {
	switch v := y.(type) {
	case []float64:
		return slices.Clone(v), nil
	case []int:
		t := make([]float64, len(v))
		for i, vi := range v {
			t[i] = float64(vi)
		}
		return t, nil
	case mat.Vector:
		if vd, ok := v.(*mat.VecDense); ok && (vd == nil || vd.IsEmpty()) {
			return nil, ErrEmptyInput
		}
		t := make([]float64, v.Len())
		for i := range t {
			t[i] = v.AtVec(i)
		}
		return t, nil
	case mat.Matrix:
		if d, ok := v.(*mat.Dense); ok && (d == nil || d.IsEmpty()) {
			return nil, ErrEmptyInput
		}
		r, c := v.Dims()
		switch {
		case c == 1:
			t := make([]float64, r)
			for i := range t {
				t[i] = v.At(i, 0)
			}
			return t, nil
		case r == 1:
			t := make([]float64, c)
			for j := range t {
				t[j] = v.At(0, j)
			}
			return t, nil
		default:
			return nil, fmt.Errorf("%w: target is %dx%d, want a single row or column", ErrShapeMismatch, r, c)
		}
	default:
		return nil, fmt.Errorf("%w: target of type %T", ErrTypeMismatch, y)
	}
}

// CheckShapes fails when x and y disagree on the number of samples.
func CheckShapes(x mat.Matrix, y []float64) error {
	r, c := x.Dims()
	if r != len(y) {
		return fmt.Errorf("%w: x is %dx%d, y has %d samples", ErrShapeMismatch, r, c, len(y))
	}
	return nil
}

// CheckFeatures validates a list of column names against the number of columns.
func CheckFeatures(names []string, size int) error {
	if len(names) != size {
		return fmt.Errorf("%w: %d names for %d columns", ErrFeatureNames, len(names), size)
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("%w: empty name", ErrFeatureNames)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: duplicate name %q", ErrFeatureNames, name)
		}
		seen[name] = struct{}{}
	}
	return nil
}

// GenerateFeatures returns the column names of a Table, or "0".."m-1" for anything else.
func GenerateFeatures(x any) ([]string, error) {
	m, names, err := Normalize(x)
	if err != nil {
		return nil, err
	}
	if names != nil {
		return names, nil
	}
	_, c := m.Dims()
	names = make([]string, c)
	for i := range names {
		names[i] = strconv.Itoa(i)
	}
	return names, nil
}
