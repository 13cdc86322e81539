package diagram

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/skillsenselab/yumlsvg/errors"
	"github.com/skillsenselab/yumlsvg/grammar"
	"github.com/skillsenselab/yumlsvg/layout"
	"github.com/skillsenselab/yumlsvg/logger"
)

const instrumentationName = "github.com/skillsenselab/yumlsvg/diagram"

// EmptyDocument is returned for inputs with no instruction lines. This is
// a success, not an error.
const EmptyDocument = `<svg xmlns="http://www.w3.org/2000/svg"/>`

// Renderer drives the render pipeline. A Renderer is immutable after New
// and safe for concurrent use.
type Renderer struct {
	engine   layout.Engine
	log      *logger.Logger
	tracer   trace.Tracer
	renders  metric.Int64Counter
	duration metric.Float64Histogram
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithEngine replaces the production layout engine. Tests use this to
// substitute a deterministic stub.
func WithEngine(e layout.Engine) Option {
	return func(r *Renderer) { r.engine = e }
}

// WithLogger sets the diagnostic logger receiving directive warnings.
func WithLogger(l *logger.Logger) Option {
	return func(r *Renderer) { r.log = l }
}

// New creates a Renderer backed by the in-process Graphviz engine.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		engine: layout.NewGraphvizEngine(),
		log:    logger.WithComponent("diagram"),
		tracer: otel.Tracer(instrumentationName),
	}
	meter := otel.Meter(instrumentationName)
	r.renders, _ = meter.Int64Counter("yumlsvg.renders",
		metric.WithDescription("Completed render operations."))
	r.duration, _ = meter.Float64Histogram("yumlsvg.render.duration",
		metric.WithUnit("ms"),
		metric.WithDescription("Render duration."))
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RenderString renders a buffered text payload.
func (r *Renderer) RenderString(ctx context.Context, src string, req Request) (string, error) {
	return r.Render(ctx, FromString(src), req)
}

// RenderBytes renders a buffered byte payload.
func (r *Renderer) RenderBytes(ctx context.Context, src []byte, req Request) (string, error) {
	return r.Render(ctx, FromBytes(src), req)
}

// Render runs the full pipeline: scan the input once, applying directives
// and collecting instructions; resolve and validate the configuration;
// dispatch to the selected grammar; and, for all types except sequence,
// assemble the final document through layout and post-processing.
func (r *Renderer) Render(ctx context.Context, in Input, req Request) (out string, err error) {
	ctx, span := r.tracer.Start(ctx, "diagram.render")
	defer span.End()
	start := time.Now()
	opts := req.Options
	defer func() { r.record(ctx, opts.Type, start, err) }()

	instructions, err := r.ingest(ctx, in, &opts)
	if err != nil {
		return "", err
	}
	if len(instructions) == 0 {
		return EmptyDocument, nil
	}

	// Configuration is read-only from here on.
	if opts.Type == "" {
		return "", apperrors.MissingTypeDirective()
	}
	gr, ok := grammar.Lookup(string(opts.Type))
	if !ok {
		return "", apperrors.InvalidDiagramType(string(opts.Type), KnownTypes())
	}

	res, err := r.compile(ctx, gr, instructions, opts)
	if err != nil {
		return "", err
	}
	if opts.Type == TypeSequence {
		// The sequence grammar's output is the final document: no header
		// wrapping, no post-processing.
		return res.SVG, nil
	}
	return r.assemble(ctx, res.Graph, opts, req.Engine, req.Render)
}

// ingest is the single sequential pass over the input: directives mutate
// opts in place, every other non-blank trimmed line is collected in
// arrival order.
func (r *Renderer) ingest(ctx context.Context, in Input, opts *Options) ([]string, error) {
	_, span := r.tracer.Start(ctx, "diagram.ingest")
	defer span.End()

	var instructions []string
	err := in.forEachLine(func(raw string) {
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
		case strings.HasPrefix(line, "//"):
			r.applyDirective(line, opts)
		default:
			instructions = append(instructions, line)
		}
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("instructions", len(instructions)))
	return instructions, nil
}

// compile dispatches the instruction list to the grammar. Grammar errors
// propagate with their message unchanged.
func (r *Renderer) compile(ctx context.Context, gr grammar.Grammar, instructions []string, opts Options) (*grammar.Result, error) {
	_, span := r.tracer.Start(ctx, "diagram.compile",
		trace.WithAttributes(attribute.String("diagram_type", string(opts.Type))))
	defer span.End()

	res, err := gr.Compile(instructions, grammar.Options{
		RankDir: string(opts.Dir),
		IsDark:  opts.IsDark,
	})
	if err != nil {
		return nil, apperrors.Grammar(string(opts.Type), err)
	}
	return res, nil
}

// record emits render metrics. Instruments are no-ops unless a meter
// provider is installed.
func (r *Renderer) record(ctx context.Context, diagramType DiagramType, start time.Time, err error) {
	attrs := metric.WithAttributes(
		attribute.String("diagram_type", string(diagramType)),
		attribute.Bool("success", err == nil),
	)
	if r.renders != nil {
		r.renders.Add(ctx, 1, attrs)
	}
	if r.duration != nil {
		r.duration.Record(ctx, float64(time.Since(start).Milliseconds()), attrs)
	}
}
