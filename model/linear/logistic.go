package linear

import (
	"fmt"
	"math"
	"slices"

	"github.com/sw965/featsel/model"
	"github.com/sw965/featsel/optimizer"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Logistic is a binary classifier trained by full-batch gradient descent with momentum
// on standardized features. Predict returns the original class labels.
type Logistic struct {
	LearningRate float64
	Momentum     float64
	Epochs       int
	L2           float64

	Coef      []float64
	Intercept float64
	Classes   []float64

	mean   []float64
	scale  []float64
	fitted bool
}

func NewLogistic() *Logistic {
	return &Logistic{LearningRate: 0.5, Momentum: 0.9, Epochs: 300, L2: 1e-4}
}

func (m *Logistic) IsClassifier() bool { return true }

func (m *Logistic) Fit(x mat.Matrix, y []float64) error {
	if err := model.CheckFit(x, y); err != nil {
		return err
	}

	classes := slices.Clone(y)
	slices.Sort(classes)
	classes = slices.Compact(classes)
	if len(classes) > 2 {
		return fmt.Errorf("linear: logistic regression is binary, got %d classes", len(classes))
	}

	n, c := x.Dims()
	m.Classes = classes
	m.mean = make([]float64, c)
	m.scale = make([]float64, c)
	for j := 0; j < c; j++ {
		col := mat.Col(nil, j, x)
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		m.mean[j], m.scale[j] = mean, std
	}

	if len(classes) == 1 {
		m.Coef = make([]float64, c)
		m.Intercept = 0
		m.fitted = true
		return nil
	}

	rows := m.standardize(x)
	t := make([]float64, n)
	for i, yi := range y {
		if yi == classes[1] {
			t[i] = 1
		}
	}

	// the last parameter is the bias
	params := make([]float64, c+1)
	grad := make([]float64, c+1)
	opt := optimizer.Momentum{Momentum: m.Momentum}
	nf := float64(n)
	for epoch := 0; epoch < m.Epochs; epoch++ {
		clear(grad)
		for i, row := range rows {
			g := (sigmoid(params[c]+floats.Dot(params[:c], row)) - t[i]) / nf
			floats.AddScaled(grad[:c], g, row)
			grad[c] += g
		}
		floats.AddScaled(grad[:c], m.L2, params[:c])
		if err := opt.Train(params, grad, m.LearningRate); err != nil {
			return err
		}
	}

	m.Coef = params[:c]
	m.Intercept = params[c]
	m.fitted = true
	return nil
}

func (m *Logistic) Predict(x mat.Matrix) ([]float64, error) {
	if err := model.CheckPredict(x, m.fitted, len(m.Coef)); err != nil {
		return nil, err
	}
	r, _ := x.Dims()
	y := make([]float64, r)
	if len(m.Classes) == 1 {
		for i := range y {
			y[i] = m.Classes[0]
		}
		return y, nil
	}
	for i, row := range m.standardize(x) {
		if m.Intercept+floats.Dot(m.Coef, row) >= 0 {
			y[i] = m.Classes[1]
		} else {
			y[i] = m.Classes[0]
		}
	}
	return y, nil
}

func (m *Logistic) Clone() model.Estimator {
	return &Logistic{LearningRate: m.LearningRate, Momentum: m.Momentum, Epochs: m.Epochs, L2: m.L2}
}

func (m *Logistic) standardize(x mat.Matrix) [][]float64 {
	r, c := x.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		row := make([]float64, c)
		for j := range row {
			row[j] = (x.At(i, j) - m.mean[j]) / m.scale[j]
		}
		rows[i] = row
	}
	return rows
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
