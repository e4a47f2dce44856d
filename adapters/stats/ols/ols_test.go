package ols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linmod/domain/core"
)

func TestFit_ExactLine(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{3, 5, 7, 9, 11} // y = 2x + 1

	m, err := Fit(x, y)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, m.Slope, 1e-12)
	assert.InDelta(t, 1.0, m.Intercept, 1e-12)
	assert.InDelta(t, 7.0, m.YMean, 1e-12)
}

func TestFit_KnownHandComputedCase(t *testing.T) {
	// x: {0, 2, 4}, y: {1, 2, 6}. xMean=2, yMean=3, Sxx=8, Sxy=10.
	x := []float64{0, 2, 4}
	y := []float64{1, 2, 6}

	m, err := Fit(x, y)
	require.NoError(t, err)

	assert.InDelta(t, 1.25, m.Slope, 1e-12)
	assert.InDelta(t, 0.5, m.Intercept, 1e-12)
	assert.InDelta(t, 8.0, m.Sxx, 1e-12)
	assert.InDelta(t, 10.0, m.Sxy, 1e-12)
	assert.InDelta(t, 14.0, m.Syy, 1e-12)
}

func TestFit_ResidualsOrthogonalToX(t *testing.T) {
	x := []float64{-3, -1, 0, 2, 5, 8}
	y := []float64{2.1, 0.4, 1.3, 4.9, 7.2, 11.8}

	m, err := Fit(x, y)
	require.NoError(t, err)

	res := m.Residuals(x, y)

	var sum, dot float64
	for i := range res {
		sum += res[i]
		dot += res[i] * x[i]
	}
	// Normal equations: residuals sum to zero and are orthogonal to x.
	assert.InDelta(t, 0.0, sum, 1e-9)
	assert.InDelta(t, 0.0, dot, 1e-9)
}

func TestFit_Errors(t *testing.T) {
	_, err := Fit(nil, nil)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, err = Fit([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, core.ErrInvalidParameter)

	_, err = Fit([]float64{3, 3, 3}, []float64{1, 2, 3})
	assert.ErrorIs(t, err, core.ErrDegenerateSample)
}

func TestFitted_MatchesPredict(t *testing.T) {
	x := []float64{1, 2, 3}
	y := []float64{2, 4, 7}

	m, err := Fit(x, y)
	require.NoError(t, err)

	fitted := m.Fitted(x)
	require.Len(t, fitted, len(x))
	for i, xi := range x {
		assert.Equal(t, m.Predict(xi), fitted[i])
	}
}
