package diagram

import (
	"context"

	"github.com/emicklei/dot"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/skillsenselab/yumlsvg/errors"
	"github.com/skillsenselab/yumlsvg/layout"
	"github.com/skillsenselab/yumlsvg/postprocess"
)

// assemble is the two-branch concurrent tail of the pipeline. Branch A
// wraps the intermediate graph with the theme header and renders it
// through the layout engine; branch B independently acquires the
// post-processor. The single join waits for both, fail-fast, then applies
// the post-processor to the rendered document. No partial result is ever
// returned.
func (r *Renderer) assemble(ctx context.Context, graph *dot.Graph, opts Options, eng layout.EngineOptions, ren layout.RenderOptions) (string, error) {
	ctx, span := r.tracer.Start(ctx, "diagram.assemble")
	defer span.End()

	var rendered string
	var proc *postprocess.Processor

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		themed := layout.WrapHeader(graph, opts.IsDark, opts.DotHeaderOverrides)
		out, err := r.engine.Render(ctx, themed, eng, ren)
		if err != nil {
			return apperrors.Render(err)
		}
		rendered = out
		return nil
	})
	g.Go(func() error {
		p, err := postprocess.New(opts.IsDark)
		if err != nil {
			return err
		}
		proc = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	return proc.Apply(rendered)
}
