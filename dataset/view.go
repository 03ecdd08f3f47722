package dataset

import "gonum.org/v1/gonum/mat"

// view is a read-only row/column selection over another matrix.
// Unlike *mat.Dense it may have zero columns, which is what an empty feature subset looks like.
type view struct {
	base mat.Matrix
	rows []int
	cols []int
}

func (v *view) Dims() (int, int) { return len(v.rows), len(v.cols) }

func (v *view) At(i, j int) float64 {
	return v.base.At(v.rows[i], v.cols[j])
}

func (v *view) T() mat.Matrix { return mat.Transpose{Matrix: v} }

// Select returns the rows and columns of x at the given indices, in the given order.
// Both index slices are taken literally: an empty slice selects nothing.
func Select(x mat.Matrix, rows, cols []int) mat.Matrix {
	return &view{base: x, rows: rows, cols: cols}
}

// Columns selects cols from every row of x.
func Columns(x mat.Matrix, cols []int) mat.Matrix {
	r, _ := x.Dims()
	return Select(x, Range(r), cols)
}

// Rows selects rows with every column of x.
func Rows(x mat.Matrix, rows []int) mat.Matrix {
	_, c := x.Dims()
	return Select(x, rows, Range(c))
}

// Pick returns y[idx[0]], y[idx[1]], ...
func Pick(y []float64, idx []int) []float64 {
	t := make([]float64, len(idx))
	for i, k := range idx {
		t[i] = y[k]
	}
	return t
}

func Range(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// Dense copies x into a new *mat.Dense. It returns nil when x has no rows or no columns.
func Dense(x mat.Matrix) *mat.Dense {
	r, c := x.Dims()
	if r == 0 || c == 0 {
		return nil
	}
	d := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d.Set(i, j, x.At(i, j))
		}
	}
	return d
}
