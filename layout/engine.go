package layout

import (
	"bytes"
	"context"

	"github.com/goccy/go-graphviz"
)

// EngineOptions selects the Graphviz layout algorithm. It is passed
// through the render core without interpretation.
type EngineOptions struct {
	// Layout names the algorithm: dot (default), neato, fdp, circo, ...
	Layout string
}

// RenderOptions selects the output format. Passed through the render core
// without interpretation.
type RenderOptions struct {
	// Format is the Graphviz output format. Defaults to SVG.
	Format string
}

// Engine renders a themed DOT document. Implementations own any engine
// internal concurrency, timeouts and cancellation; the core treats them
// as opaque.
type Engine interface {
	Render(ctx context.Context, dotSrc string, eng EngineOptions, ren RenderOptions) (string, error)
}

// GraphvizEngine runs Graphviz in-process through its WebAssembly build,
// so no external dot binary is needed.
type GraphvizEngine struct{}

// NewGraphvizEngine returns the production layout engine.
func NewGraphvizEngine() *GraphvizEngine {
	return &GraphvizEngine{}
}

// Render lays out dotSrc and returns the result document.
func (e *GraphvizEngine) Render(ctx context.Context, dotSrc string, eng EngineOptions, ren RenderOptions) (string, error) {
	g, err := graphviz.New(ctx)
	if err != nil {
		return "", err
	}
	defer g.Close()

	graph, err := graphviz.ParseBytes([]byte(dotSrc))
	if err != nil {
		return "", err
	}
	defer graph.Close()

	if eng.Layout != "" {
		g.SetLayout(graphviz.Layout(eng.Layout))
	}

	format := graphviz.SVG
	if ren.Format != "" {
		format = graphviz.Format(ren.Format)
	}

	var buf bytes.Buffer
	if err := g.Render(ctx, graph, format, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
