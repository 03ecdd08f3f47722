package featsel

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/sw965/featsel/cv"
	"github.com/sw965/featsel/dataset"
	"github.com/sw965/featsel/mathx/randx"
	"github.com/sw965/featsel/metrics"
	"github.com/sw965/featsel/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// AddDel is a two-pass sequential feature selector. It must not be used by several
// goroutines at once.
type AddDel struct {
	estimator model.Estimator
	metric    metrics.Func
	evaluator Evaluator
	maximize  bool
	shuffle   bool
	seed      uint64
	rng       *rand.Rand
	observers []Observer
}

// NewAddDel wraps an estimator and a metric. maximize defaults to true; pass
// WithMaximize(false) for error metrics such as metrics.MeanAbsoluteError.
func NewAddDel(est model.Estimator, metric metrics.Func, opts ...Option) *AddDel {
	a := &AddDel{
		estimator: est,
		metric:    metric,
		maximize:  true,
		seed:      randx.DefaultSeed,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.evaluator == nil && est != nil && metric != nil {
		a.evaluator = cv.Validator{Estimator: est, Scorer: cv.MakeScorer(metric, a.maximize)}
	}
	return a
}

// Maximize reports whether higher scores are preferred.
func (a *AddDel) Maximize() bool { return a.maximize }

// Result is the outcome of Run. Names is set only when the input was a dataset.Table
// and lists the column names of Features in the same order.
type Result struct {
	Features []int
	Names    []string
	Score    float64
}

// Identifiers returns the selected column names, or the indices as strings.
func (r Result) Identifiers() []string {
	if r.Names != nil {
		return r.Names
	}
	ids := make([]string, len(r.Features))
	for i, f := range r.Features {
		ids[i] = fmt.Sprint(f)
	}
	return ids
}

// Run validates x and y, cuts the samples into k folds and runs the add pass followed
// by the del pass. x may be a dataset.Table, a mat.Matrix or [][]float64; y may be
// []float64, []int, a mat.Vector or a single-row or single-column matrix.
// Every validation error is returned before the first evaluation. Unless WithRand
// was given, every call shuffles with a fresh source from the seed, so repeated
// runs on the same data agree.
func (a *AddDel) Run(x, y any, k int) (Result, error) {
	xm, names, err := dataset.Normalize(x)
	if err != nil {
		return Result{}, err
	}
	yv, err := dataset.Ravel(y)
	if err != nil {
		return Result{}, err
	}
	if err := dataset.CheckShapes(xm, yv); err != nil {
		return Result{}, err
	}
	if a.evaluator == nil {
		return Result{}, ErrNilEstimator
	}
	rng := a.rng
	if rng == nil {
		rng = randx.NewPCG(a.seed)
	}
	folds, err := cv.NewSplitter(a.estimator, k, a.shuffle).Split(yv, rng)
	if err != nil {
		return Result{}, err
	}
	a.checkScorer()

	features, err := a.Add(xm, yv, folds)
	if err != nil {
		return Result{}, err
	}
	features, score, err := a.Del(xm, yv, features, folds)
	if err != nil {
		return Result{}, err
	}

	res := Result{Features: features, Score: score}
	if names != nil {
		res.Names = dataset.SelectNames(names, features)
	}
	return res, nil
}

// Add is the forward pass. Every column, in order, is appended to the working set and
// dropped again when the score did not move in the preferred direction compared with
// the previous step. The comparison baseline is the score of the previous step whether
// or not that step kept its column.
func (a *AddDel) Add(x mat.Matrix, y []float64, folds []cv.Fold) ([]int, error) {
	if a.evaluator == nil {
		return nil, ErrNilEstimator
	}
	_, m := x.Dims()
	a.observe(Event{Kind: PassStarted, Pass: Forward})

	prevScore := 0.0
	scores := make([]float64, 0, m)
	appended := make([]int, 0, m)
	for feature := 0; feature < m; feature++ {
		appended = append(appended, feature)
		currentScore, err := a.evaluate(x, y, appended, folds)
		if err != nil {
			return nil, err
		}
		scores = append(scores, currentScore)
		a.observe(Event{Kind: FeatureScored, Pass: Forward, Feature: feature, Score: currentScore})

		if a.maximize && currentScore <= prevScore {
			appended = appended[:len(appended)-1]
		} else if !a.maximize && currentScore > prevScore {
			appended = appended[:len(appended)-1]
		}
		prevScore = currentScore
	}

	if len(scores) > 0 {
		a.observe(Event{Kind: PassBest, Pass: Forward, Score: a.best(scores), Maximize: a.maximize})
	}
	return appended, nil
}

// Del is the backward pass over a snapshot of features. Each feature is removed and put
// back at the end of the set when the removal scored worse than the running best.
// The running best only moves when a step improves on it. Del returns a new slice and
// the best score of the pass, including the score of the full incoming set.
func (a *AddDel) Del(x mat.Matrix, y []float64, features []int, folds []cv.Fold) ([]int, float64, error) {
	if a.evaluator == nil {
		return nil, 0, ErrNilEstimator
	}
	_, m := x.Dims()
	if err := checkFeatures(features, m); err != nil {
		return nil, 0, err
	}
	a.observe(Event{Kind: PassStarted, Pass: Backward})

	working := slices.Clone(features)
	prevScore, err := a.evaluate(x, y, working, folds)
	if err != nil {
		return nil, 0, err
	}
	scores := []float64{prevScore}
	a.observe(Event{Kind: Baseline, Pass: Backward, Score: prevScore})

	snapshot := slices.Clone(working)
	for _, feature := range snapshot {
		i := slices.Index(working, feature)
		working = slices.Delete(working, i, i+1)

		currentScore, err := a.evaluate(x, y, working, folds)
		if err != nil {
			return nil, 0, err
		}
		scores = append(scores, currentScore)
		a.observe(Event{Kind: FeatureScored, Pass: Backward, Feature: feature, Score: currentScore})

		if a.maximize && prevScore > currentScore {
			working = append(working, feature)
		}
		if !a.maximize && prevScore <= currentScore {
			working = append(working, feature)
		}

		if a.maximize && currentScore > prevScore {
			prevScore = currentScore
		}
		if !a.maximize && currentScore <= prevScore {
			prevScore = currentScore
		}
	}

	best := a.best(scores)
	a.observe(Event{Kind: PassBest, Pass: Backward, Score: best, Maximize: a.maximize})
	return working, best, nil
}

func (a *AddDel) best(scores []float64) float64 {
	if a.maximize {
		return floats.Max(scores)
	}
	return floats.Min(scores)
}

func (a *AddDel) observe(e Event) {
	for _, o := range a.observers {
		o.Observe(e)
	}
}

func checkFeatures(features []int, m int) error {
	seen := make(map[int]struct{}, len(features))
	for _, f := range features {
		if f < 0 || f >= m {
			return fmt.Errorf("%w: %d not in [0, %d)", ErrFeatureOutOfRange, f, m)
		}
		if _, ok := seen[f]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateFeature, f)
		}
		seen[f] = struct{}{}
	}
	return nil
}
