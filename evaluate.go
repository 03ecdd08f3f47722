package featsel

import (
	"fmt"
	"math"
	"slices"

	"github.com/sw965/featsel/cv"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Evaluator scores the columns subset of x against y once per fold.
// cv.Validator is the estimator-based implementation.
type Evaluator interface {
	FoldScores(x mat.Matrix, y []float64, subset []int, folds []cv.Fold) ([]float64, error)
}

type EvaluatorFunc func(x mat.Matrix, y []float64, subset []int, folds []cv.Fold) ([]float64, error)

func (f EvaluatorFunc) FoldScores(x mat.Matrix, y []float64, subset []int, folds []cv.Fold) ([]float64, error) {
	return f(x, y, subset, folds)
}

// evaluate returns |mean(fold scores)| for the subset.
func (a *AddDel) evaluate(x mat.Matrix, y []float64, subset []int, folds []cv.Fold) (float64, error) {
	scores, err := a.evaluator.FoldScores(x, y, slices.Clone(subset), folds)
	if err != nil {
		return 0, err
	}
	if len(scores) == 0 {
		return 0, ErrNoFoldScores
	}
	return math.Abs(stat.Mean(scores, nil)), nil
}

// checkScorer calls the metric on a one-sample input. Failures, including panics,
// are only reported to the observers.
func (a *AddDel) checkScorer() {
	if a.metric == nil {
		return
	}
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("metric panicked: %v", r)
			}
		}()
		s, err := a.metric([]float64{1}, []float64{5})
		if err != nil {
			return err
		}
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("metric returned %v", s)
		}
		return nil
	}()
	if err != nil {
		a.observe(Event{Kind: ScorerWarning, Err: err})
	}
}
