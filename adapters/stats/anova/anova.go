// Package anova decomposes the total variance of a fitted simple regression
// into explained and residual sums of squares and derives the F-statistic.
package anova

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"linmod/adapters/stats/ols"
	"linmod/domain/core"
)

// ConsistencyTolerance is the absolute tolerance for the redundant
// sums-of-squares recomputation. The algebraic and elementwise forms must
// agree this closely or the decomposition is considered defective.
const ConsistencyTolerance = 0.01

// residualFloor below which the residual sum of squares is treated as
// numerically zero relative to the total variation.
const residualFloor = 1e-12

// Decomposition is the variance breakdown of one fitted regression.
type Decomposition struct {
	SSExplained float64
	SSResidual  float64
	FStatistic  float64
	PValue      float64
	DFModel     int
	DFResidual  int
}

// Decompose computes the sums of squares and F-statistic for a fitted model.
//
// The primary values come from the algebraic identities
// ssExplained = slope^2 * Sxx and ssResidual = Syy - slope^2 * Sxx. An
// independent elementwise recomputation from the fitted values guards against
// a drifted formula; disagreement beyond ConsistencyTolerance aborts with
// ErrInternalInconsistency rather than returning silently wrong numbers.
//
// A numerically zero residual sum of squares (perfect fit) fails with
// ErrDegenerateSample: the F-ratio is undefined and this package never
// substitutes +Inf.
func Decompose(m *ols.Model, x, y []float64) (*Decomposition, error) {
	n := len(x)
	dfModel := 1
	dfResidual := n - 2
	if dfResidual <= 0 {
		return nil, core.ErrZeroResidualDF
	}

	ssExplained := m.Slope * m.Slope * m.Sxx
	ssResidual := m.Syy - ssExplained

	if err := verifyDecomposition(m, x, y, ssExplained, ssResidual); err != nil {
		return nil, err
	}

	if ssResidual <= residualFloor*math.Max(m.Syy, 1) {
		return nil, core.ErrPerfectFit
	}

	f := (ssExplained / float64(dfModel)) / (ssResidual / float64(dfResidual))

	fDist := distuv.F{D1: float64(dfModel), D2: float64(dfResidual)}
	p := fDist.Survival(f)

	return &Decomposition{
		SSExplained: ssExplained,
		SSResidual:  ssResidual,
		FStatistic:  f,
		PValue:      p,
		DFModel:     dfModel,
		DFResidual:  dfResidual,
	}, nil
}

// verifyDecomposition recomputes both sums of squares elementwise from the
// fitted line and asserts agreement with the algebraic forms. This is a
// runtime invariant of every call, not a test-only check.
func verifyDecomposition(m *ols.Model, x, y []float64, ssExplained, ssResidual float64) error {
	var explained, residual float64
	for i := range x {
		fitted := m.Predict(x[i])
		de := fitted - m.YMean
		dr := y[i] - fitted
		explained += de * de
		residual += dr * dr
	}

	// Negated comparisons so a NaN anywhere in the arithmetic fails the
	// check instead of sliding through (NaN <= tol is false).
	if !(math.Abs(explained-ssExplained) <= ConsistencyTolerance) {
		return core.NewInconsistencyError("ss_explained", ssExplained, explained, ConsistencyTolerance)
	}
	if !(math.Abs(residual-ssResidual) <= ConsistencyTolerance) {
		return core.NewInconsistencyError("ss_residual", ssResidual, residual, ConsistencyTolerance)
	}
	return nil
}
