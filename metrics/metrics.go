// Package metrics holds scoring functions of the form f(yTrue, yPred).
package metrics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	ErrLengthMismatch = errors.New("metrics: length mismatch")
	ErrEmpty          = errors.New("metrics: empty input")
)

// Func scores predictions against true values.
type Func func(yTrue, yPred []float64) (float64, error)

func check(yTrue, yPred []float64) error {
	if len(yTrue) != len(yPred) {
		return fmt.Errorf("%w: %d true values, %d predictions", ErrLengthMismatch, len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return ErrEmpty
	}
	return nil
}

// Accuracy is the fraction of exact matches.
func Accuracy(yTrue, yPred []float64) (float64, error) {
	if err := check(yTrue, yPred); err != nil {
		return 0, err
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

func MeanAbsoluteError(yTrue, yPred []float64) (float64, error) {
	if err := check(yTrue, yPred); err != nil {
		return 0, err
	}
	return floats.Distance(yTrue, yPred, 1) / float64(len(yTrue)), nil
}

func MeanSquaredError(yTrue, yPred []float64) (float64, error) {
	if err := check(yTrue, yPred); err != nil {
		return 0, err
	}
	d := floats.Distance(yTrue, yPred, 2)
	return d * d / float64(len(yTrue)), nil
}

// R2 is the coefficient of determination. A constant target scores 1 when it is
// predicted exactly and 0 otherwise.
func R2(yTrue, yPred []float64) (float64, error) {
	if err := check(yTrue, yPred); err != nil {
		return 0, err
	}
	if len(yTrue) == 1 || stat.Variance(yTrue, nil) == 0 {
		if floats.Equal(yTrue, yPred) {
			return 1, nil
		}
		return 0, nil
	}
	r2 := stat.RSquaredFrom(yPred, yTrue, nil)
	if math.IsNaN(r2) {
		return 0, fmt.Errorf("metrics: r2 is NaN")
	}
	return r2, nil
}
