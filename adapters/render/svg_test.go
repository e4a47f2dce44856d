package render

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linmod/adapters/stats/engine"
	"linmod/domain/core"
	"linmod/domain/regression"
	"linmod/ports"
)

func simulated(t *testing.T) *regression.SimulationResult {
	t.Helper()
	res, err := engine.NewSimulator().Simulate(context.Background(),
		regression.SimulationInput{SampleSize: 10, Effect: 2, Noise: 5, Seed: 1})
	require.NoError(t, err)
	return res
}

func TestRenderSimulation_ResidualView(t *testing.T) {
	svg, err := NewSVGRenderer().RenderSimulation(context.Background(), simulated(t), ports.ViewResidual)
	require.NoError(t, err)

	doc := string(svg)
	assert.True(t, strings.HasPrefix(doc, "<svg"))
	assert.Contains(t, doc, "SS(residual)")
	assert.Contains(t, doc, "<circle")
	assert.Contains(t, doc, "</svg>")
}

func TestRenderSimulation_ExplainedView(t *testing.T) {
	svg, err := NewSVGRenderer().RenderSimulation(context.Background(), simulated(t), ports.ViewExplained)
	require.NoError(t, err)

	doc := string(svg)
	assert.Contains(t, doc, "SS(explained)")
	assert.NotContains(t, doc, "<circle")
}

func TestRenderSimulation_UnknownView(t *testing.T) {
	_, err := NewSVGRenderer().RenderSimulation(context.Background(), simulated(t), ports.PlotView("pie"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestRenderDensity(t *testing.T) {
	values := []float64{1, 2, 2.5, 3, 3.5, 4, 5, 6, 7, 8}

	svg, err := NewSVGRenderer().RenderDensity(context.Background(), "sample s1", values)
	require.NoError(t, err)

	doc := string(svg)
	assert.Contains(t, doc, "<polyline")
	assert.Contains(t, doc, "sample s1")
}

func TestRenderDensity_TooFewValues(t *testing.T) {
	_, err := NewSVGRenderer().RenderDensity(context.Background(), "x", []float64{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/svg+xml", NewSVGRenderer().ContentType())
}
