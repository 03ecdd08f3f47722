// Package linear provides linear estimators: ordinary least squares and ridge
// regression, the lasso, and binary logistic regression.
package linear

import (
	"errors"
	"fmt"

	"github.com/sw965/featsel/dataset"
	"github.com/sw965/featsel/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// rcond is the relative cutoff below which singular values count as zero.
const rcond = 1e-12

// Regression minimizes ||y - Xw - b||^2 + Alpha*||w||^2. Alpha 0 is ordinary least squares,
// solved through the SVD so that collinear columns still get the minimum-norm solution.
type Regression struct {
	Alpha float64

	Coef      []float64
	Intercept float64
	fitted    bool
}

func NewRegression(alpha float64) *Regression {
	return &Regression{Alpha: alpha}
}

func (m *Regression) Fit(x mat.Matrix, y []float64) error {
	if err := model.CheckFit(x, y); err != nil {
		return err
	}
	if m.Alpha < 0 {
		return fmt.Errorf("linear: negative alpha %v", m.Alpha)
	}

	_, c := x.Dims()
	xMean := model.ColumnMeans(x)
	yMean := stat.Mean(y, nil)
	coef := make([]float64, c)

	if c > 0 {
		xc := centered(x, xMean)
		yc := make([]float64, len(y))
		for i, yi := range y {
			yc[i] = yi - yMean
		}

		var err error
		if m.Alpha == 0 {
			err = leastSquares(coef, xc, yc)
		} else {
			err = ridge(coef, xc, yc, m.Alpha)
		}
		if err != nil {
			return err
		}
	}

	m.Coef = coef
	m.Intercept = yMean - floats.Dot(xMean, coef)
	m.fitted = true
	return nil
}

func (m *Regression) Predict(x mat.Matrix) ([]float64, error) {
	if err := model.CheckPredict(x, m.fitted, len(m.Coef)); err != nil {
		return nil, err
	}
	return affine(x, m.Coef, m.Intercept), nil
}

func (m *Regression) Clone() model.Estimator {
	return &Regression{Alpha: m.Alpha}
}

func leastSquares(dst []float64, xc *mat.Dense, yc []float64) error {
	var svd mat.SVD
	if ok := svd.Factorize(xc, mat.SVDThin); !ok {
		return model.ErrSingular
	}
	rank := svd.Rank(rcond)
	if rank == 0 {
		// every column is constant
		return nil
	}
	var w mat.VecDense
	svd.SolveVecTo(&w, mat.NewVecDense(len(yc), yc), rank)
	for j := range dst {
		dst[j] = w.AtVec(j)
	}
	return nil
}

func ridge(dst []float64, xc *mat.Dense, yc []float64, alpha float64) error {
	_, c := xc.Dims()
	var xtx mat.SymDense
	xtx.SymOuterK(1, xc.T())
	for j := 0; j < c; j++ {
		xtx.SetSym(j, j, xtx.At(j, j)+alpha)
	}

	var xty mat.VecDense
	xty.MulVec(xc.T(), mat.NewVecDense(len(yc), yc))

	var chol mat.Cholesky
	if ok := chol.Factorize(&xtx); !ok {
		return model.ErrSingular
	}
	var w mat.VecDense
	if err := chol.SolveVecTo(&w, &xty); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return err
		}
	}
	for j := range dst {
		dst[j] = w.AtVec(j)
	}
	return nil
}

func centered(x mat.Matrix, mean []float64) *mat.Dense {
	d := dataset.Dense(x)
	r, c := d.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			d.Set(i, j, d.At(i, j)-mean[j])
		}
	}
	return d
}

func affine(x mat.Matrix, w []float64, b float64) []float64 {
	r, c := x.Dims()
	y := make([]float64, r)
	for i := 0; i < r; i++ {
		v := b
		for j := 0; j < c; j++ {
			v += w[j] * x.At(i, j)
		}
		y[i] = v
	}
	return y
}
