package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linmod/adapters/render"
	"linmod/app"
	"linmod/domain/core"
	"linmod/domain/expression"
	"linmod/domain/regression"
	"linmod/internal/testkit"
)

func storedRun(t *testing.T, kit *testkit.Kit) core.RunID {
	t.Helper()
	res, err := kit.SimulationService().Run(context.Background(), app.RunRequest{
		Input:   regression.SimulationInput{SampleSize: 10, Effect: 2, Noise: 5, Seed: 1},
		Persist: true,
	})
	require.NoError(t, err)
	return res.RunID
}

func newTestApp(t *testing.T, kit *testkit.Kit, matrix *expression.Matrix) *App {
	t.Helper()
	a, err := NewApp(kit.RunLedger(), render.NewSVGRenderer(), matrix)
	require.NoError(t, err)
	return a
}

func get(t *testing.T, a *App, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestIndex_ListsStoredRuns(t *testing.T) {
	kit := testkit.NewKit()
	runID := storedRun(t, kit)
	a := newTestApp(t, kit, nil)

	w := get(t, a, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), runID.String())
}

func TestRunReport_RendersDecomposition(t *testing.T) {
	kit := testkit.NewKit()
	runID := storedRun(t, kit)
	a := newTestApp(t, kit, nil)

	w := get(t, a, "/runs/"+runID.String())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Variance decomposition")
	assert.Contains(t, w.Body.String(), "plot/residual.svg")
}

func TestRunPlot_ServesSVG(t *testing.T) {
	kit := testkit.NewKit()
	runID := storedRun(t, kit)
	a := newTestApp(t, kit, nil)

	for _, view := range []string{"residual", "explained"} {
		w := get(t, a, "/runs/"+runID.String()+"/plot/"+view+".svg")
		require.Equal(t, http.StatusOK, w.Code, view)
		assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "<svg")
	}
}

func TestRunReport_UnknownRun(t *testing.T) {
	a := newTestApp(t, testkit.NewKit(), nil)

	w := get(t, a, "/runs/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSamples_DisabledWithoutMatrix(t *testing.T) {
	a := newTestApp(t, testkit.NewKit(), nil)

	assert.Equal(t, http.StatusNotFound, get(t, a, "/samples").Code)
}

func TestSamples_WithMatrix(t *testing.T) {
	matrix := &expression.Matrix{
		Samples: []core.SampleKey{"s1", "s2"},
		Genes:   []core.GeneKey{"g1", "g2", "g3", "g4"},
		Values: [][]float64{
			{1, 2.5, 3, 4.5},
			{2, 3, 4, 5},
		},
	}
	a := newTestApp(t, testkit.NewKit(), matrix)

	w := get(t, a, "/samples")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "s1")

	dens := get(t, a, "/samples/0/density.svg")
	require.Equal(t, http.StatusOK, dens.Code)
	assert.Contains(t, dens.Body.String(), "<polyline")

	assert.Equal(t, http.StatusNotFound, get(t, a, "/samples/9/density.svg").Code)
}
