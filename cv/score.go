package cv

import (
	"fmt"

	"github.com/sw965/featsel/dataset"
	"github.com/sw965/featsel/metrics"
	"github.com/sw965/featsel/model"
	"gonum.org/v1/gonum/mat"
)

// Scorer rates a fitted estimator on held-out data. Higher is always better.
type Scorer func(est model.Estimator, x mat.Matrix, y []float64) (float64, error)

// MakeScorer turns a metric into a Scorer. When greaterIsBetter is false the metric is negated.
func MakeScorer(metric metrics.Func, greaterIsBetter bool) Scorer {
	sign := 1.0
	if !greaterIsBetter {
		sign = -1.0
	}
	return func(est model.Estimator, x mat.Matrix, y []float64) (float64, error) {
		pred, err := est.Predict(x)
		if err != nil {
			return 0, err
		}
		s, err := metric(y, pred)
		if err != nil {
			return 0, err
		}
		return sign * s, nil
	}
}

// CrossValScore fits a fresh clone of est on every training split and scores it on the test split.
func CrossValScore(est model.Estimator, x mat.Matrix, y []float64, scorer Scorer, folds []Fold) ([]float64, error) {
	scores := make([]float64, len(folds))
	for i, f := range folds {
		e := est.Clone()
		if err := e.Fit(dataset.Rows(x, f.Train), dataset.Pick(y, f.Train)); err != nil {
			return nil, fmt.Errorf("cv: fold %d fit: %w", i, err)
		}
		s, err := scorer(e, dataset.Rows(x, f.Test), dataset.Pick(y, f.Test))
		if err != nil {
			return nil, fmt.Errorf("cv: fold %d score: %w", i, err)
		}
		scores[i] = s
	}
	return scores, nil
}

// Validator runs CrossValScore on a column subset of x.
type Validator struct {
	Estimator model.Estimator
	Scorer    Scorer
}

func (v Validator) FoldScores(x mat.Matrix, y []float64, subset []int, folds []Fold) ([]float64, error) {
	return CrossValScore(v.Estimator, dataset.Columns(x, subset), y, v.Scorer, folds)
}
