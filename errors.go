package featsel

import "errors"

var (
	ErrNilEstimator      = errors.New("featsel: no estimator or evaluator configured")
	ErrFeatureOutOfRange = errors.New("featsel: feature index out of range")
	ErrDuplicateFeature  = errors.New("featsel: duplicate feature index")
	ErrNoFoldScores      = errors.New("featsel: evaluator returned no fold scores")
)
