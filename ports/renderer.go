package ports

import (
	"context"

	"linmod/domain/regression"
)

// PlotView selects which sums-of-squares view of a simulation to draw
type PlotView string

const (
	// ViewResidual draws the (x, y) scatter, the fitted line, and the residual
	// segments between observed and fitted values, annotated with ssResidual.
	ViewResidual PlotView = "residual"

	// ViewExplained draws the fitted line, the horizontal mean line, and the
	// explained-deviation segments between them, annotated with ssExplained.
	ViewExplained PlotView = "explained"
)

// RendererPort draws a simulation result. The simulator exposes everything a
// renderer needs (x, y, fitted values, mean, coefficients, sums of squares)
// but is never responsible for drawing.
type RendererPort interface {
	// RenderSimulation produces an image of the requested view
	RenderSimulation(ctx context.Context, result *regression.SimulationResult, view PlotView) ([]byte, error)

	// RenderDensity produces a density curve image for a numeric series
	RenderDensity(ctx context.Context, label string, values []float64) ([]byte, error)

	// ContentType reports the MIME type of the rendered images
	ContentType() string
}
