// Package report renders the narrative analysis report for a simulation run:
// the input parameters, the sums-of-squares decomposition table, and a short
// interpretation, as markdown and as HTML.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"linmod/domain/regression"
)

// Markdown builds the report source for one simulation result.
func Markdown(res *regression.SimulationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Regression simulation report\n\n")
	fmt.Fprintf(&b, "Simulated %d observations with true slope %.4g, noise sd %.4g, seed %d.\n\n",
		res.Input.SampleSize, res.Input.Effect, res.Input.Noise, res.Input.Seed)

	fmt.Fprintf(&b, "## Fitted line\n\n")
	fmt.Fprintf(&b, "y = %.4f + %.4f x (slope standard error %.4f, response mean %.4f)\n\n",
		res.Intercept, res.Slope, res.SlopeStdErr, res.YMean)

	fmt.Fprintf(&b, "## Variance decomposition\n\n")
	fmt.Fprintf(&b, "| Source | Sum of squares | df | Mean square |\n")
	fmt.Fprintf(&b, "|---|---|---|---|\n")
	fmt.Fprintf(&b, "| Model | %.4f | %d | %.4f |\n",
		res.SSExplained, res.DFModel, res.SSExplained/float64(res.DFModel))
	fmt.Fprintf(&b, "| Residual | %.4f | %d | %.4f |\n",
		res.SSResidual, res.DFResidual, res.SSResidual/float64(res.DFResidual))
	fmt.Fprintf(&b, "| Total | %.4f | %d | |\n\n",
		res.SSTotal(), res.DFModel+res.DFResidual)

	fmt.Fprintf(&b, "F(%d, %d) = %.4f, p = %.4g, R² = %.4f\n\n",
		res.DFModel, res.DFResidual, res.FStatistic, res.PValue, res.RSquared())

	fmt.Fprintf(&b, "## Interpretation\n\n%s\n", interpretation(res))

	return b.String()
}

// HTML renders the report as an HTML fragment.
func HTML(res *regression.SimulationResult) []byte {
	md := Markdown(res)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML([]byte(md), p, renderer)
}

func interpretation(res *regression.SimulationResult) string {
	share := res.RSquared() * 100
	switch {
	case res.PValue < 0.001:
		return fmt.Sprintf("The fitted slope explains %.1f%% of the total variation; "+
			"an effect this strong is very unlikely under a flat true relationship.", share)
	case res.PValue < 0.05:
		return fmt.Sprintf("The fitted slope explains %.1f%% of the total variation, "+
			"distinguishable from noise at the usual 5%% level.", share)
	default:
		return fmt.Sprintf("The fitted slope explains only %.1f%% of the total variation; "+
			"the data are consistent with no true relationship.", share)
	}
}
