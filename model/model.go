// Package model defines the estimator contract used by cross-validation.
package model

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrNotFitted         = errors.New("model: estimator is not fitted")
	ErrDimensionMismatch = errors.New("model: dimension mismatch")
	ErrSingular          = errors.New("model: singular system")
	ErrEmptyInput        = errors.New("model: empty input")
)

// Estimator is fitted on one design matrix and predicts on another with the same columns.
// A design matrix may have zero columns; estimators then fit an intercept-only model.
type Estimator interface {
	Fit(x mat.Matrix, y []float64) error
	Predict(x mat.Matrix) ([]float64, error)
	// Clone returns an unfitted copy with the same hyperparameters.
	Clone() Estimator
}

// Classifier marks estimators whose targets are class labels.
type Classifier interface {
	Estimator
	IsClassifier() bool
}

func IsClassifier(e Estimator) bool {
	c, ok := e.(Classifier)
	return ok && c.IsClassifier()
}

// CheckFit validates the inputs of Fit.
func CheckFit(x mat.Matrix, y []float64) error {
	r, c := x.Dims()
	if r == 0 {
		return ErrEmptyInput
	}
	if r != len(y) {
		return fmt.Errorf("%w: x is %dx%d, y has %d samples", ErrDimensionMismatch, r, c, len(y))
	}
	return nil
}

// CheckPredict validates that x has the number of columns the estimator was fitted on.
func CheckPredict(x mat.Matrix, fitted bool, features int) error {
	if !fitted {
		return ErrNotFitted
	}
	if _, c := x.Dims(); c != features {
		return fmt.Errorf("%w: fitted on %d features, got %d", ErrDimensionMismatch, features, c)
	}
	return nil
}

// ColumnMeans returns the mean of every column of x.
func ColumnMeans(x mat.Matrix) []float64 {
	r, c := x.Dims()
	means := make([]float64, c)
	if r == 0 {
		return means
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			means[j] += x.At(i, j)
		}
	}
	for j := range means {
		means[j] /= float64(r)
	}
	return means
}
