// Package render draws simulation results and density curves as SVG. It is
// the rendering collaborator behind the renderer port; the simulation core
// never depends on it.
package render

import (
	"context"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"

	"linmod/adapters/microarray"
	"linmod/domain/core"
	"linmod/domain/regression"
	"linmod/ports"
)

const (
	width   = 640
	height  = 420
	margin  = 48
	plotW   = width - 2*margin
	plotH   = height - 2*margin
	pointR  = 3
	numTick = 5
)

// SVGRenderer implements ports.RendererPort with self-contained SVG output.
type SVGRenderer struct{}

// NewSVGRenderer creates an SVG renderer
func NewSVGRenderer() *SVGRenderer {
	return &SVGRenderer{}
}

var _ ports.RendererPort = (*SVGRenderer)(nil)

// ContentType reports the MIME type of rendered images
func (r *SVGRenderer) ContentType() string { return "image/svg+xml" }

// RenderSimulation draws one of the two sums-of-squares views of a result.
func (r *SVGRenderer) RenderSimulation(ctx context.Context, result *regression.SimulationResult, view ports.PlotView) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if result == nil || len(result.X) == 0 {
		return nil, core.NewInvalidParameterError("result", "has no observations")
	}

	switch view {
	case ports.ViewResidual, ports.ViewExplained:
	default:
		return nil, core.NewInvalidParameterError("view", fmt.Sprintf("unknown plot view %q", view))
	}

	// Scale over both observed and fitted values so every segment fits.
	yAll := make([]float64, 0, 2*len(result.Y)+1)
	yAll = append(yAll, result.Y...)
	yAll = append(yAll, result.YFitted...)
	yAll = append(yAll, result.YMean)

	sc := newScale(floats.Min(result.X), floats.Max(result.X), floats.Min(yAll), floats.Max(yAll))

	var b strings.Builder
	openSVG(&b)
	drawAxes(&b, sc)

	switch view {
	case ports.ViewResidual:
		// Residual segments from each observation down to the fitted line.
		for i := range result.X {
			x := sc.px(result.X[i])
			b.WriteString(segment(x, sc.py(result.Y[i]), x, sc.py(result.YFitted[i]), "#d9534f"))
		}
		drawFittedLine(&b, sc, result)
		for i := range result.X {
			b.WriteString(point(sc.px(result.X[i]), sc.py(result.Y[i])))
		}
		annotate(&b, fmt.Sprintf("SS(residual) = %.2f", result.SSResidual))

	case ports.ViewExplained:
		// Explained-deviation segments between the mean line and the fit.
		meanY := sc.py(result.YMean)
		b.WriteString(segment(sc.px(sc.xMin), meanY, sc.px(sc.xMax), meanY, "#999999"))
		for i := range result.X {
			x := sc.px(result.X[i])
			b.WriteString(segment(x, meanY, x, sc.py(result.YFitted[i]), "#5bc0de"))
		}
		drawFittedLine(&b, sc, result)
		annotate(&b, fmt.Sprintf("SS(explained) = %.2f", result.SSExplained))
	}

	closeSVG(&b)
	return []byte(b.String()), nil
}

// RenderDensity draws a kernel density curve for a numeric series.
func (r *SVGRenderer) RenderDensity(ctx context.Context, label string, values []float64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	curve, err := microarray.Density(values, 0)
	if err != nil {
		return nil, err
	}

	sc := newScale(floats.Min(curve.X), floats.Max(curve.X), 0, floats.Max(curve.Y))

	var b strings.Builder
	openSVG(&b)
	drawAxes(&b, sc)

	b.WriteString(`<polyline fill="none" stroke="#337ab7" stroke-width="1.5" points="`)
	for i := range curve.X {
		fmt.Fprintf(&b, "%.1f,%.1f ", sc.px(curve.X[i]), sc.py(curve.Y[i]))
	}
	b.WriteString("\"/>\n")
	annotate(&b, label)

	closeSVG(&b)
	return []byte(b.String()), nil
}

type scale struct {
	xMin, xMax, yMin, yMax float64
}

func newScale(xMin, xMax, yMin, yMax float64) *scale {
	if xMax == xMin {
		xMax = xMin + 1
	}
	if yMax == yMin {
		yMax = yMin + 1
	}
	return &scale{xMin: xMin, xMax: xMax, yMin: yMin, yMax: yMax}
}

func (s *scale) px(x float64) float64 {
	return margin + (x-s.xMin)/(s.xMax-s.xMin)*plotW
}

func (s *scale) py(y float64) float64 {
	return height - margin - (y-s.yMin)/(s.yMax-s.yMin)*plotH
}

func openSVG(b *strings.Builder) {
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)
	fmt.Fprintf(b, `<rect width="%d" height="%d" fill="white"/>`+"\n", width, height)
}

func closeSVG(b *strings.Builder) {
	b.WriteString("</svg>\n")
}

func drawAxes(b *strings.Builder, sc *scale) {
	b.WriteString(segment(margin, height-margin, width-margin, height-margin, "#333333"))
	b.WriteString(segment(margin, margin, margin, height-margin, "#333333"))

	for i := 0; i <= numTick; i++ {
		fx := sc.xMin + (sc.xMax-sc.xMin)*float64(i)/numTick
		fy := sc.yMin + (sc.yMax-sc.yMin)*float64(i)/numTick
		fmt.Fprintf(b, `<text x="%.1f" y="%d" font-size="10" text-anchor="middle">%.3g</text>`+"\n",
			sc.px(fx), height-margin+16, fx)
		fmt.Fprintf(b, `<text x="%d" y="%.1f" font-size="10" text-anchor="end">%.3g</text>`+"\n",
			margin-6, sc.py(fy)+3, fy)
	}
}

func drawFittedLine(b *strings.Builder, sc *scale, result *regression.SimulationResult) {
	y1 := result.Intercept + result.Slope*sc.xMin
	y2 := result.Intercept + result.Slope*sc.xMax
	b.WriteString(segment(sc.px(sc.xMin), sc.py(y1), sc.px(sc.xMax), sc.py(y2), "#2e6da4"))
}

func segment(x1, y1, x2, y2 float64, color string) string {
	return fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="1"/>`+"\n",
		x1, y1, x2, y2, color)
}

func point(x, y float64) string {
	return fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%d" fill="#333333"/>`+"\n", x, y, pointR)
}

func annotate(b *strings.Builder, text string) {
	fmt.Fprintf(b, `<text x="%d" y="%d" font-size="13" font-family="sans-serif">%s</text>`+"\n",
		margin, margin-12, text)
}
