// Package ui serves HTML report pages for stored simulation runs and density
// views of expression samples.
package ui

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"linmod/adapters/microarray"
	"linmod/adapters/stats/engine"
	"linmod/domain/core"
	"linmod/domain/expression"
	"linmod/internal"
	"linmod/internal/report"
	"linmod/ports"
)

// App represents the report UI application
type App struct {
	router    *chi.Mux
	reader    ports.RunLedgerReaderPort
	renderer  ports.RendererPort
	simulator *engine.Simulator
	matrix    *expression.Matrix // optional preprocessed expression data
	templates *template.Template
	logger    *internal.Logger
}

// NewApp creates the report application. matrix may be nil when no expression
// file is configured; the density pages are disabled in that case.
func NewApp(reader ports.RunLedgerReaderPort, renderer ports.RendererPort, matrix *expression.Matrix) (*App, error) {
	templates, err := template.New("").Parse(pageTemplates)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	app := &App{
		router:    chi.NewRouter(),
		reader:    reader,
		renderer:  renderer,
		simulator: engine.NewSimulator(),
		matrix:    matrix,
		templates: templates,
		logger:    internal.DefaultLogger,
	}
	app.setupRoutes()
	return app, nil
}

func (a *App) setupRoutes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Recoverer)

	a.router.Get("/", a.handleIndex)
	a.router.Get("/runs/{id}", a.handleRunReport)
	a.router.Get("/runs/{id}/plot/{view}.svg", a.handleRunPlot)
	a.router.Get("/samples", a.handleSamples)
	a.router.Get("/samples/{index}/density.svg", a.handleSampleDensity)
}

// Handler exposes the router
func (a *App) Handler() http.Handler { return a.router }

// Serve starts the UI server on the given address
func (a *App) Serve(addr string) error {
	a.logger.Info("UI server listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	runs, err := a.reader.ListRuns(r.Context(), ports.RunFilters{Limit: 50})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	a.renderPage(w, "index", map[string]interface{}{
		"Runs":       runs,
		"HasSamples": a.matrix != nil,
	})
}

func (a *App) handleRunReport(w http.ResponseWriter, r *http.Request) {
	runID, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := a.reader.GetRun(r.Context(), runID)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	// The full result is rebuilt from the stored input; the run record only
	// keeps the headline numbers.
	result, err := a.simulator.Simulate(r.Context(), record.Input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := record.Fingerprint.Verify(result); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	a.renderPage(w, "run", map[string]interface{}{
		"RunID":  record.ID.String(),
		"Report": template.HTML(report.HTML(result)),
	})
}

func (a *App) handleRunPlot(w http.ResponseWriter, r *http.Request) {
	runID, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	record, err := a.reader.GetRun(r.Context(), runID)
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	result, err := a.simulator.Simulate(r.Context(), record.Input)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	svg, err := a.renderer.RenderSimulation(r.Context(), result, ports.PlotView(chi.URLParam(r, "view")))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", a.renderer.ContentType())
	w.Write(svg)
}

func (a *App) handleSamples(w http.ResponseWriter, r *http.Request) {
	if a.matrix == nil {
		http.Error(w, "no expression data configured", http.StatusNotFound)
		return
	}

	summaries, err := microarray.Summarize(a.matrix)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	a.renderPage(w, "samples", map[string]interface{}{"Summaries": summaries})
}

func (a *App) handleSampleDensity(w http.ResponseWriter, r *http.Request) {
	if a.matrix == nil {
		http.Error(w, "no expression data configured", http.StatusNotFound)
		return
	}

	var index int
	if _, err := fmt.Sscanf(chi.URLParam(r, "index"), "%d", &index); err != nil ||
		index < 0 || index >= a.matrix.NumSamples() {
		http.Error(w, "unknown sample index", http.StatusNotFound)
		return
	}

	label := fmt.Sprintf("sample %s", a.matrix.Samples[index])
	svg, err := a.renderer.RenderDensity(r.Context(), label, a.matrix.Sample(index))
	if err != nil {
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", a.renderer.ContentType())
	w.Write(svg)
}

func (a *App) renderPage(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, name, data); err != nil {
		a.logger.Error("template %s: %v", name, err)
	}
}

func statusFor(err error) int {
	switch {
	case core.IsNotFoundError(err):
		return http.StatusNotFound
	case core.IsInvalidParameterError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
