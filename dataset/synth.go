package dataset

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// MakeClassification draws n samples of m standard normal features. The label is 1
// when a random positive combination of the first informative features, plus noise,
// is positive, and 0 otherwise. The remaining columns are pure noise.
func MakeClassification(n, m, informative int, rng *rand.Rand) (*mat.Dense, []float64) {
	informative = min(informative, m)
	weights := make([]float64, informative)
	for j := range weights {
		weights[j] = 0.5 + rng.Float64()
	}

	x := mat.NewDense(n, m, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		z := 0.25 * rng.NormFloat64()
		for j := 0; j < m; j++ {
			v := rng.NormFloat64()
			x.Set(i, j, v)
			if j < informative {
				z += weights[j] * v
			}
		}
		if z > 0 {
			y[i] = 1
		}
	}
	return x, y
}

// MakeRegression draws n samples of m standard normal features with
// y = sum(coef[j] * x[j]) + noise * N(0, 1). Only the first informative coefficients are non-zero.
func MakeRegression(n, m, informative int, noise float64, rng *rand.Rand) (*mat.Dense, []float64, []float64) {
	informative = min(informative, m)
	coef := make([]float64, m)
	for j := 0; j < informative; j++ {
		coef[j] = 1 + 9*rng.Float64()
	}

	x := mat.NewDense(n, m, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		v := noise * rng.NormFloat64()
		for j := 0; j < m; j++ {
			xij := rng.NormFloat64()
			x.Set(i, j, xij)
			v += coef[j] * xij
		}
		y[i] = v
	}
	return x, y, coef
}
