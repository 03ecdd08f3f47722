package featsel_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sw965/featsel"
	"github.com/sw965/featsel/cv"
	"github.com/sw965/featsel/dataset"
	"github.com/sw965/featsel/mathx/randx"
	"github.com/sw965/featsel/metrics"
	"github.com/sw965/featsel/model"
	"github.com/sw965/featsel/model/linear"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// countEstimator predicts, for every row, the share of all columns it was fitted on.
type countEstimator struct {
	total int
	cols  int
	err   error
}

func (e *countEstimator) Fit(x mat.Matrix, y []float64) error {
	if e.err != nil {
		return e.err
	}
	_, e.cols = x.Dims()
	return nil
}

func (e *countEstimator) Predict(x mat.Matrix) ([]float64, error) {
	r, _ := x.Dims()
	pred := make([]float64, r)
	for i := range pred {
		pred[i] = float64(e.cols) / float64(e.total)
	}
	return pred, nil
}

func (e *countEstimator) Clone() model.Estimator {
	return &countEstimator{total: e.total, err: e.err}
}

func meanPrediction(_, yPred []float64) (float64, error) {
	return stat.Mean(yPred, nil), nil
}

func fiveFeatures() (*mat.Dense, []float64) {
	return mat.NewDense(4, 5, nil), []float64{0, 1, 0, 1}
}

// additive scores a subset as base + the sum of its weights, recording every subset it sees.
type additive struct {
	base    float64
	weights []float64
	seen    [][]int
	calls   int
}

func (a *additive) FoldScores(_ mat.Matrix, _ []float64, subset []int, folds []cv.Fold) ([]float64, error) {
	a.calls++
	a.seen = append(a.seen, slices.Clone(subset))
	s := a.base
	for _, f := range subset {
		s += a.weights[f]
	}
	scores := make([]float64, len(folds))
	for i := range scores {
		scores[i] = s
	}
	return scores, nil
}

func TestRunMaximizeKeepsEverything(t *testing.T) {
	x, y := fiveFeatures()
	w := featsel.NewAddDel(&countEstimator{total: 5}, meanPrediction, featsel.WithMaximize(true))

	folds, err := cv.KFold{K: 1}.Split(y, nil)
	require.NoError(t, err)
	forward, err := w.Add(x, y, folds)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, forward, "every addition strictly raises the score")

	res, err := w.Run(x, y, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, res.Features, "every removal strictly lowers the score")
	assert.InDelta(t, 1.0, res.Score, 1e-12)
	assert.Nil(t, res.Names)
}

func TestRunMinimizeFollowsLiteralRules(t *testing.T) {
	x, y := fiveFeatures()
	w := featsel.NewAddDel(&countEstimator{total: 5}, meanPrediction, featsel.WithMaximize(false))

	folds, err := cv.KFold{K: 1}.Split(y, nil)
	require.NoError(t, err)
	// 0: 0.2 > 0 rejected; 1: 0.2 > 0.2 no, kept; 2: 0.4 > 0.2 rejected;
	// 3: {1,3} 0.4 > 0.4 no, kept; 4: 0.6 > 0.4 rejected.
	forward, err := w.Add(x, y, folds)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, forward)

	// baseline 0.4; removing 1 gives 0.2, removing 3 then gives 0.
	res, err := w.Run(x, y, 1)
	require.NoError(t, err)
	assert.Empty(t, res.Features)
	assert.InDelta(t, 0.0, res.Score, 1e-12)
}

func TestRunShapeMismatchBeforeEvaluation(t *testing.T) {
	eval := &additive{weights: make([]float64, 3)}
	w := featsel.NewAddDel(nil, nil, featsel.WithEvaluator(eval))

	_, err := w.Run(mat.NewDense(10, 3, nil), make([]float64, 9), cv.DefaultFolds)
	assert.ErrorIs(t, err, dataset.ErrShapeMismatch)
	assert.Zero(t, eval.calls, "no evaluation may run before validation")
}

func TestRunTypeMismatch(t *testing.T) {
	eval := &additive{weights: make([]float64, 3)}
	w := featsel.NewAddDel(nil, nil, featsel.WithEvaluator(eval))

	_, err := w.Run("not a matrix", []float64{1}, 1)
	assert.ErrorIs(t, err, dataset.ErrTypeMismatch)
	_, err = w.Run(mat.NewDense(2, 3, nil), "not a target", 1)
	assert.ErrorIs(t, err, dataset.ErrTypeMismatch)
	assert.Zero(t, eval.calls)
}

func TestRunBadFolds(t *testing.T) {
	eval := &additive{weights: make([]float64, 2)}
	w := featsel.NewAddDel(nil, nil, featsel.WithEvaluator(eval))

	_, err := w.Run(mat.NewDense(3, 2, nil), make([]float64, 3), 4)
	assert.ErrorIs(t, err, cv.ErrBadFolds)
	_, err = w.Run(mat.NewDense(3, 2, nil), make([]float64, 3), 0)
	assert.ErrorIs(t, err, cv.ErrBadFolds)
	assert.Zero(t, eval.calls)
}

func TestRunWithoutEstimator(t *testing.T) {
	w := featsel.NewAddDel(nil, metrics.R2)
	_, err := w.Run(mat.NewDense(3, 2, nil), make([]float64, 3), 1)
	assert.ErrorIs(t, err, featsel.ErrNilEstimator)
}

func TestRunTableReturnsNames(t *testing.T) {
	table, err := dataset.NewTable([]string{"a", "b", "c", "d"}, mat.NewDense(6, 4, nil))
	require.NoError(t, err)
	eval := &additive{base: 10, weights: []float64{1, -2, 3, 0.5}}
	w := featsel.NewAddDel(nil, nil, featsel.WithEvaluator(eval))

	res, err := w.Run(table, make([]float64, 6), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3}, res.Features)
	assert.Equal(t, []string{"a", "c", "d"}, res.Names)
	assert.Equal(t, []string{"a", "c", "d"}, res.Identifiers())
	assert.InDelta(t, 14.5, res.Score, 1e-12)
}

func TestResultIdentifiers(t *testing.T) {
	res := featsel.Result{Features: []int{4, 0, 2}}
	assert.Equal(t, []string{"4", "0", "2"}, res.Identifiers())
}

func TestRunEstimatorErrorPropagates(t *testing.T) {
	x, y := fiveFeatures()
	boom := errors.New("degenerate fit")
	w := featsel.NewAddDel(&countEstimator{total: 5, err: boom}, meanPrediction)

	_, err := w.Run(x, y, 2)
	assert.ErrorIs(t, err, boom)
}

func TestDelRestoresAtEnd(t *testing.T) {
	// removing 1 helps, everything else hurts
	eval := &additive{base: 10, weights: []float64{1, -1, 1, 1}}
	w := featsel.NewAddDel(nil, nil, featsel.WithEvaluator(eval))
	x := mat.NewDense(2, 4, nil)
	folds := []cv.Fold{{Train: []int{0, 1}, Test: []int{0, 1}}}

	features, score, err := w.Del(x, []float64{0, 0}, []int{0, 1, 2, 3}, folds)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3}, features)
	assert.InDelta(t, 13.0, score, 1e-12)

	// the working sets reflect restored features moving to the back
	assert.Equal(t, [][]int{
		{0, 1, 2, 3},
		{1, 2, 3},
		{2, 3, 0},
		{3, 0},
		{0, 2},
	}, eval.seen)
}

func TestDelDoesNotMutateInput(t *testing.T) {
	eval := &additive{base: 10, weights: []float64{-1, 1, 1}}
	w := featsel.NewAddDel(nil, nil, featsel.WithEvaluator(eval))
	in := []int{0, 1, 2}

	out, _, err := w.Del(mat.NewDense(2, 3, nil), []float64{0, 0}, in, []cv.Fold{{Train: []int{0, 1}, Test: []int{0, 1}}})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, in)
	assert.Equal(t, []int{1, 2}, out)
}

func TestDelRejectsBadFeatures(t *testing.T) {
	eval := &additive{weights: make([]float64, 3)}
	w := featsel.NewAddDel(nil, nil, featsel.WithEvaluator(eval))
	x := mat.NewDense(2, 3, nil)
	folds := []cv.Fold{{Train: []int{0, 1}, Test: []int{0, 1}}}

	_, _, err := w.Del(x, []float64{0, 0}, []int{0, 3}, folds)
	assert.ErrorIs(t, err, featsel.ErrFeatureOutOfRange)
	_, _, err = w.Del(x, []float64{0, 0}, []int{1, 1}, folds)
	assert.ErrorIs(t, err, featsel.ErrDuplicateFeature)
	assert.Zero(t, eval.calls)
}

func TestAddUsesPreviousStepAsBaseline(t *testing.T) {
	// scores after each addition: {0}=5, {0,1}=3 (rejected), {0,2}=4 (kept: 4 > 3)
	eval := &additive{weights: []float64{5, -2, -1}}
	w := featsel.NewAddDel(nil, nil, featsel.WithEvaluator(eval))
	folds := []cv.Fold{{Train: []int{0, 1}, Test: []int{0, 1}}}

	features, err := w.Add(mat.NewDense(2, 3, nil), []float64{0, 0}, folds)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, features)
}

func TestSelectionProperties(t *testing.T) {
	rng := randx.NewPCG(21)
	folds := []cv.Fold{{Train: []int{0, 1}, Test: []int{0, 1}}}
	for trial := 0; trial < 50; trial++ {
		m := 1 + rng.IntN(8)
		weights := make([]float64, m)
		for j := range weights {
			weights[j] = rng.Float64()*4 - 2
		}
		maximize := rng.IntN(2) == 0
		eval := &additive{base: 20, weights: weights}
		w := featsel.NewAddDel(nil, nil, featsel.WithEvaluator(eval), featsel.WithMaximize(maximize))
		x := mat.NewDense(2, m, nil)
		y := []float64{0, 0}

		forward, err := w.Add(x, y, folds)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(forward), m)
		assert.True(t, slices.IsSorted(forward))
		assert.Len(t, slices.Compact(slices.Clone(forward)), len(forward))

		backward, _, err := w.Del(x, y, forward, folds)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(backward), len(forward))
		for _, f := range backward {
			assert.Contains(t, forward, f)
		}
		sorted := slices.Clone(backward)
		slices.Sort(sorted)
		assert.Len(t, slices.Compact(sorted), len(backward), "no duplicates")

		again, _, err := w.Del(x, y, backward, folds)
		require.NoError(t, err)
		assert.Equal(t, backward, again, "a second del pass changes nothing")
	}
}

func TestRunWithLinearModel(t *testing.T) {
	rng := randx.NewPCG(8)
	x, y, _ := dataset.MakeRegression(90, 6, 2, 0.5, rng)
	est := linear.NewRegression(0)
	w := featsel.NewAddDel(est, metrics.MeanSquaredError, featsel.WithMaximize(false))

	res, err := w.Run(x, y, cv.DefaultFolds)
	require.NoError(t, err)
	for _, f := range res.Features {
		assert.True(t, f >= 0 && f < 6)
	}

	// the running best always equals the score of the working set, so the
	// reported score is the cross-validated error of the final selection
	folds, err := cv.KFold{K: cv.DefaultFolds}.Split(y, nil)
	require.NoError(t, err)
	v := cv.Validator{Estimator: est, Scorer: cv.MakeScorer(metrics.MeanSquaredError, false)}
	scores, err := v.FoldScores(x, y, res.Features, folds)
	require.NoError(t, err)
	assert.InDelta(t, -stat.Mean(scores, nil), res.Score, 1e-9)
}

func TestRunWithShuffledStratifiedFolds(t *testing.T) {
	rng := randx.NewPCG(13)
	x, y := dataset.MakeClassification(120, 5, 2, rng)
	w := featsel.NewAddDel(linear.NewLogistic(), metrics.Accuracy, featsel.WithShuffle(true), featsel.WithSeed(3))

	res, err := w.Run(x, y, cv.DefaultFolds)
	require.NoError(t, err)
	assert.Greater(t, res.Score, 0.5)
	assert.True(t, w.Maximize())
}

func TestRunShuffledRerunIsReproducible(t *testing.T) {
	x, y, _ := dataset.MakeRegression(60, 8, 3, 5, randx.NewPCG(5))
	newSelector := func() *featsel.AddDel {
		return featsel.NewAddDel(linear.NewRegression(0), metrics.MeanSquaredError,
			featsel.WithMaximize(false), featsel.WithShuffle(true), featsel.WithSeed(7))
	}

	w := newSelector()
	first, err := w.Run(x, y, cv.DefaultFolds)
	require.NoError(t, err)
	second, err := w.Run(x, y, cv.DefaultFolds)
	require.NoError(t, err)
	assert.Equal(t, first, second, "the same selector gives the same result on every run")

	fresh, err := newSelector().Run(x, y, cv.DefaultFolds)
	require.NoError(t, err)
	assert.Equal(t, first, fresh)
}

func TestDelTieUnderMaximizeKeepsRemoval(t *testing.T) {
	// feature 1 does not change the score
	eval := &additive{base: 10, weights: []float64{1, 0, 1}}
	w := featsel.NewAddDel(nil, nil, featsel.WithEvaluator(eval), featsel.WithMaximize(true))
	folds := []cv.Fold{{Train: []int{0, 1}, Test: []int{0, 1}}}

	features, score, err := w.Del(mat.NewDense(2, 3, nil), []float64{0, 0}, []int{0, 1, 2}, folds)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, features)
	assert.InDelta(t, 12.0, score, 1e-12)
	assert.Equal(t, [][]int{
		{0, 1, 2},
		{1, 2},
		{2, 0},
		{0},
	}, eval.seen)
}

func TestDelTieUnderMinimizeRestores(t *testing.T) {
	eval := &additive{base: 10, weights: []float64{1, 0, 1}}
	w := featsel.NewAddDel(nil, nil, featsel.WithEvaluator(eval), featsel.WithMaximize(false))
	folds := []cv.Fold{{Train: []int{0, 1}, Test: []int{0, 1}}}

	// 12 -> drop 0 (11) -> drop 1 ties at 11 and is restored -> drop 2 (10)
	features, score, err := w.Del(mat.NewDense(2, 3, nil), []float64{0, 0}, []int{0, 1, 2}, folds)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, features)
	assert.InDelta(t, 10.0, score, 1e-12)
	assert.Equal(t, [][]int{
		{0, 1, 2},
		{1, 2},
		{2},
		{1},
	}, eval.seen)
}

func TestEvaluatorWithoutScores(t *testing.T) {
	empty := featsel.EvaluatorFunc(func(mat.Matrix, []float64, []int, []cv.Fold) ([]float64, error) {
		return nil, nil
	})
	w := featsel.NewAddDel(nil, nil, featsel.WithEvaluator(empty))

	_, err := w.Run(mat.NewDense(2, 2, nil), []float64{0, 1}, 1)
	assert.ErrorIs(t, err, featsel.ErrNoFoldScores)
}
