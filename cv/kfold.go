// Package cv splits samples into cross-validation folds and scores estimators on them.
package cv

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/sw965/featsel/dataset"
	"github.com/sw965/featsel/mathx/randx"
	"github.com/sw965/featsel/model"
)

const DefaultFolds = 3

var ErrBadFolds = errors.New("cv: invalid number of folds")

// Fold holds ascending sample indices. With a single fold Train and Test are both every sample.
type Fold struct {
	Train []int
	Test  []int
}

type Splitter interface {
	Split(y []float64, rng *rand.Rand) ([]Fold, error)
}

// KFold cuts the samples into K contiguous blocks; the first n%K blocks get one extra sample.
// Shuffle permutes the samples with rng before cutting.
type KFold struct {
	K       int
	Shuffle bool
}

func (kf KFold) Split(y []float64, rng *rand.Rand) ([]Fold, error) {
	n := len(y)
	if err := checkK(kf.K, n); err != nil {
		return nil, err
	}
	idx := dataset.Range(n)
	if kf.K == 1 {
		return []Fold{whole(n)}, nil
	}
	if kf.Shuffle && rng != nil {
		randx.Shuffle(idx, rng)
	}

	folds := make([]Fold, 0, kf.K)
	start := 0
	for f := 0; f < kf.K; f++ {
		size := n / kf.K
		if f < n%kf.K {
			size++
		}
		folds = append(folds, newFold(n, idx[start:start+size]))
		start += size
	}
	return folds, nil
}

// StratifiedKFold deals the samples of every class round-robin over the K folds,
// so each fold keeps roughly the class proportions of y.
type StratifiedKFold struct {
	K       int
	Shuffle bool
}

func (skf StratifiedKFold) Split(y []float64, rng *rand.Rand) ([]Fold, error) {
	n := len(y)
	if err := checkK(skf.K, n); err != nil {
		return nil, err
	}
	if skf.K == 1 {
		return []Fold{whole(n)}, nil
	}

	classes := slices.Clone(y)
	slices.Sort(classes)
	classes = slices.Compact(classes)

	tests := make([][]int, skf.K)
	offset := 0
	for _, class := range classes {
		members := make([]int, 0)
		for i, yi := range y {
			if yi == class {
				members = append(members, i)
			}
		}
		if skf.Shuffle && rng != nil {
			randx.Shuffle(members, rng)
		}
		for i, m := range members {
			f := (offset + i) % skf.K
			tests[f] = append(tests[f], m)
		}
		offset += len(members)
	}

	folds := make([]Fold, skf.K)
	for f, test := range tests {
		folds[f] = newFold(n, test)
	}
	return folds, nil
}

// NewSplitter picks stratified folds for classifiers and plain k-fold otherwise.
func NewSplitter(est model.Estimator, k int, shuffle bool) Splitter {
	if est != nil && model.IsClassifier(est) {
		return StratifiedKFold{K: k, Shuffle: shuffle}
	}
	return KFold{K: k, Shuffle: shuffle}
}

func checkK(k, n int) error {
	if k < 1 || k > n {
		return fmt.Errorf("%w: k = %d for %d samples", ErrBadFolds, k, n)
	}
	return nil
}

func whole(n int) Fold {
	return Fold{Train: dataset.Range(n), Test: dataset.Range(n)}
}

func newFold(n int, test []int) Fold {
	test = slices.Clone(test)
	slices.Sort(test)
	inTest := make([]bool, n)
	for _, i := range test {
		inTest[i] = true
	}
	train := make([]int, 0, n-len(test))
	for i := 0; i < n; i++ {
		if !inTest[i] {
			train = append(train, i)
		}
	}
	return Fold{Train: train, Test: test}
}
