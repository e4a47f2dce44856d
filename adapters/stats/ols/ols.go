// Package ols implements closed-form simple linear regression. Only one
// explanatory variable is ever fit, so the coefficients come straight from the
// centered sums of squares rather than a generic solver.
package ols

import (
	"math"

	"linmod/domain/core"
)

// Model holds the fitted coefficients and the centered sums the ANOVA
// decomposition reuses.
type Model struct {
	Intercept float64
	Slope     float64

	XMean float64
	YMean float64

	Sxx float64 // sum((x_i - xMean)^2)
	Syy float64 // sum((y_i - yMean)^2), total sum of squares
	Sxy float64 // sum((x_i - xMean)*(y_i - yMean))
}

// Fit computes the ordinary-least-squares line of y on x:
// slope = cov(x,y)/var(x), intercept = yMean - slope*xMean.
func Fit(x, y []float64) (*Model, error) {
	if len(x) == 0 {
		return nil, core.NewInvalidParameterError("x", "must not be empty")
	}
	if len(x) != len(y) {
		return nil, core.NewInvalidParameterError("y", "length must match x")
	}

	n := float64(len(x))
	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	xMean := sumX / n
	yMean := sumY / n

	var sxx, syy, sxy float64
	for i := range x {
		dx := x[i] - xMean
		dy := y[i] - yMean
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}

	if sxx == 0 {
		return nil, core.ErrConstantX
	}

	slope := sxy / sxx
	intercept := yMean - slope*xMean

	return &Model{
		Intercept: intercept,
		Slope:     slope,
		XMean:     xMean,
		YMean:     yMean,
		Sxx:       sxx,
		Syy:       syy,
		Sxy:       sxy,
	}, nil
}

// Predict returns the fitted value at a single point.
func (m *Model) Predict(x float64) float64 {
	return m.Intercept + m.Slope*x
}

// Fitted returns the fitted values for every observation.
func (m *Model) Fitted(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, xi := range x {
		out[i] = m.Predict(xi)
	}
	return out
}

// Residuals returns observed minus fitted values.
func (m *Model) Residuals(x, y []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = y[i] - m.Predict(x[i])
	}
	return out
}

// StdErrSlope returns the standard error of the slope estimate given the
// residual variance estimate s2.
func (m *Model) StdErrSlope(s2 float64) float64 {
	return math.Sqrt(s2 / m.Sxx)
}
