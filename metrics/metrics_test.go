package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sw965/featsel/metrics"
)

func TestAccuracy(t *testing.T) {
	got, err := metrics.Accuracy([]float64{0, 1, 1, 0}, []float64{0, 1, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, got, 1e-12)
}

func TestMeanAbsoluteError(t *testing.T) {
	got, err := metrics.MeanAbsoluteError([]float64{1, 2, 3}, []float64{2, 2, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-12)
}

func TestMeanSquaredError(t *testing.T) {
	got, err := metrics.MeanSquaredError([]float64{1, 2, 3}, []float64{2, 2, 1})
	require.NoError(t, err)
	assert.InDelta(t, 5.0/3.0, got, 1e-12)
}

func TestR2(t *testing.T) {
	yTrue := []float64{1, 2, 3, 4}

	perfect, err := metrics.R2(yTrue, yTrue)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, perfect, 1e-12)

	// predicting the mean explains nothing
	mean, err := metrics.R2(yTrue, []float64{2.5, 2.5, 2.5, 2.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, mean, 1e-12)

	constant, err := metrics.R2([]float64{3, 3}, []float64{3, 4})
	require.NoError(t, err)
	assert.Equal(t, 0.0, constant)
}

func TestLengthMismatch(t *testing.T) {
	fs := map[string]metrics.Func{
		"accuracy": metrics.Accuracy,
		"mae":      metrics.MeanAbsoluteError,
		"mse":      metrics.MeanSquaredError,
		"r2":       metrics.R2,
	}
	for name, f := range fs {
		_, err := f([]float64{1, 2}, []float64{1})
		assert.ErrorIs(t, err, metrics.ErrLengthMismatch, name)

		_, err = f(nil, nil)
		assert.ErrorIs(t, err, metrics.ErrEmpty, name)
	}
}
