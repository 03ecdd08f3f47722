package config

import (
	"fmt"
	"sort"

	"github.com/sw965/featsel/metrics"
	"github.com/sw965/featsel/model"
	"github.com/sw965/featsel/model/linear"
)

// EstimatorBuilder builds an unfitted estimator from its configuration.
type EstimatorBuilder func(EstimatorConfig) model.Estimator

// Metric is a registered scoring function together with its natural direction.
type Metric struct {
	Func            metrics.Func
	GreaterIsBetter bool
	Description     string
}

// Estimators maps estimator kinds to their builders.
var Estimators = map[string]EstimatorBuilder{
	"ols":      buildOLS,
	"ridge":    buildRidge,
	"lasso":    buildLasso,
	"logistic": buildLogistic,
}

// Metrics maps metric names to scoring functions.
var Metrics = map[string]Metric{
	"accuracy": {Func: metrics.Accuracy, GreaterIsBetter: true, Description: "share of exact label matches"},
	"mae":      {Func: metrics.MeanAbsoluteError, Description: "mean absolute error"},
	"mse":      {Func: metrics.MeanSquaredError, Description: "mean squared error"},
	"r2":       {Func: metrics.R2, GreaterIsBetter: true, Description: "coefficient of determination"},
}

func SupportedEstimators() []string {
	return sortedKeys(Estimators)
}

func SupportedMetrics() []string {
	return sortedKeys(Metrics)
}

// NewEstimator builds the estimator registered under ec.Kind.
func NewEstimator(ec EstimatorConfig) (model.Estimator, error) {
	build, ok := Estimators[ec.Kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnknownEstimator, ec.Kind, SupportedEstimators())
	}
	return build(ec), nil
}

func LookupMetric(name string) (Metric, error) {
	m, ok := Metrics[name]
	if !ok {
		return Metric{}, fmt.Errorf("%w: %q (supported: %v)", ErrUnknownMetric, name, SupportedMetrics())
	}
	return m, nil
}

func buildOLS(EstimatorConfig) model.Estimator {
	return linear.NewRegression(0)
}

func buildRidge(ec EstimatorConfig) model.Estimator {
	alpha := ec.Alpha
	if alpha == 0 {
		alpha = 1
	}
	return linear.NewRegression(alpha)
}

func buildLasso(ec EstimatorConfig) model.Estimator {
	alpha := ec.Alpha
	if alpha == 0 {
		alpha = 1
	}
	m := linear.NewLasso(alpha)
	if ec.MaxIter > 0 {
		m.MaxIter = ec.MaxIter
	}
	if ec.Tol > 0 {
		m.Tol = ec.Tol
	}
	return m
}

func buildLogistic(ec EstimatorConfig) model.Estimator {
	m := linear.NewLogistic()
	if ec.LearningRate > 0 {
		m.LearningRate = ec.LearningRate
	}
	if ec.Momentum > 0 {
		m.Momentum = ec.Momentum
	}
	if ec.Epochs > 0 {
		m.Epochs = ec.Epochs
	}
	if ec.Alpha > 0 {
		m.L2 = ec.Alpha
	}
	return m
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
