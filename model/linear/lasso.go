package linear

import (
	"fmt"
	"math"

	"github.com/sw965/featsel/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Lasso minimizes (1/2n)||y - Xw - b||^2 + Alpha*||w||_1 by cyclic coordinate descent.
type Lasso struct {
	Alpha   float64
	MaxIter int
	Tol     float64

	Coef      []float64
	Intercept float64
	// Iterations is the number of sweeps the last Fit needed.
	Iterations int
	fitted     bool
}

func NewLasso(alpha float64) *Lasso {
	return &Lasso{Alpha: alpha, MaxIter: 1000, Tol: 1e-4}
}

func (m *Lasso) Fit(x mat.Matrix, y []float64) error {
	if err := model.CheckFit(x, y); err != nil {
		return err
	}
	if m.Alpha < 0 {
		return fmt.Errorf("linear: negative alpha %v", m.Alpha)
	}

	n, c := x.Dims()
	nf := float64(n)
	xMean := model.ColumnMeans(x)
	yMean := stat.Mean(y, nil)

	cols := make([][]float64, c)
	norms := make([]float64, c)
	for j := range cols {
		col := mat.Col(nil, j, x)
		floats.AddConst(-xMean[j], col)
		cols[j] = col
		norms[j] = floats.Dot(col, col) / nf
	}

	resid := make([]float64, n)
	for i, yi := range y {
		resid[i] = yi - yMean
	}

	w := make([]float64, c)
	iter := 0
	for iter < m.MaxIter {
		iter++
		maxDelta, maxW := 0.0, 0.0
		for j, col := range cols {
			if norms[j] == 0 {
				continue
			}
			rho := floats.Dot(col, resid)/nf + norms[j]*w[j]
			wj := softThreshold(rho, m.Alpha) / norms[j]
			if d := wj - w[j]; d != 0 {
				floats.AddScaled(resid, -d, col)
				maxDelta = math.Max(maxDelta, math.Abs(d))
			}
			w[j] = wj
			maxW = math.Max(maxW, math.Abs(wj))
		}
		if maxW == 0 || maxDelta <= m.Tol*maxW {
			break
		}
	}

	m.Coef = w
	m.Intercept = yMean - floats.Dot(xMean, w)
	m.Iterations = iter
	m.fitted = true
	return nil
}

func (m *Lasso) Predict(x mat.Matrix) ([]float64, error) {
	if err := model.CheckPredict(x, m.fitted, len(m.Coef)); err != nil {
		return nil, err
	}
	return affine(x, m.Coef, m.Intercept), nil
}

func (m *Lasso) Clone() model.Estimator {
	return &Lasso{Alpha: m.Alpha, MaxIter: m.MaxIter, Tol: m.Tol}
}

func softThreshold(v, t float64) float64 {
	switch {
	case v > t:
		return v - t
	case v < -t:
		return v + t
	default:
		return 0
	}
}
