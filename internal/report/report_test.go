package report

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linmod/adapters/stats/engine"
	"linmod/domain/regression"
)

func result(t *testing.T) *regression.SimulationResult {
	t.Helper()
	res, err := engine.NewSimulator().Simulate(context.Background(),
		regression.SimulationInput{SampleSize: 10, Effect: 2, Noise: 5, Seed: 1})
	require.NoError(t, err)
	return res
}

func TestMarkdown_ContainsDecompositionTable(t *testing.T) {
	md := Markdown(result(t))

	assert.Contains(t, md, "# Regression simulation report")
	assert.Contains(t, md, "| Model |")
	assert.Contains(t, md, "| Residual |")
	assert.Contains(t, md, "| Total |")
	assert.Contains(t, md, "F(1, 8)")
	assert.Contains(t, md, "slope standard error")
	assert.Contains(t, md, "seed 1")
}

func TestMarkdown_Deterministic(t *testing.T) {
	assert.Equal(t, Markdown(result(t)), Markdown(result(t)))
}

func TestHTML_RendersTable(t *testing.T) {
	doc := string(HTML(result(t)))

	assert.True(t, strings.Contains(doc, "<table>"))
	assert.True(t, strings.Contains(doc, "<h1"))
	assert.NotContains(t, doc, "| Model |")
}
