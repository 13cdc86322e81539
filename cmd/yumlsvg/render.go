package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/skillsenselab/yumlsvg/bootstrap"
	"github.com/skillsenselab/yumlsvg/config"
	"github.com/skillsenselab/yumlsvg/diagram"
	"github.com/skillsenselab/yumlsvg/layout"
	"github.com/skillsenselab/yumlsvg/pipeline"
)

// cliConfig is the CLI configuration, loadable from yumlsvg.yml and
// environment variables, with flags applied on top.
type cliConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Render  config.RenderConfig `yaml:"render" mapstructure:"render"`
	Workers int                 `yaml:"workers" mapstructure:"workers"`
}

func (c *cliConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "yumlsvg"
	}
	c.ServiceConfig.ApplyDefaults()
	c.Render.ApplyDefaults()
}

func (c *cliConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Render.Validate(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	return nil
}

// batchJob renders the CLI inputs: either a concurrent batch of files or a
// single diagram from stdin.
type batchJob struct {
	cfg    *cliConfig
	outDir string
	inputs []string
}

// renderResult describes one completed file render.
type renderResult struct {
	input    string
	output   string
	bytes    int
	duration time.Duration
}

func (j *batchJob) run(ctx context.Context, app *bootstrap.App[*cliConfig]) error {
	engineComp, ok := app.Components.Get("layout-engine").(*layout.EngineComponent)
	if !ok {
		return fmt.Errorf("layout engine component not registered")
	}

	renderer := diagram.New(
		diagram.WithEngine(engineComp.Engine()),
		diagram.WithLogger(app.Logger),
	)

	if len(j.inputs) == 0 {
		return j.renderStdin(ctx, renderer)
	}
	return j.renderFiles(ctx, app, renderer)
}

// baseRequest builds the render request from the resolved configuration.
// Directives inside a diagram source still override these values.
func (j *batchJob) baseRequest() diagram.Request {
	return diagram.Request{
		Options: diagram.Options{
			Dir:    diagram.Direction(j.cfg.Render.Direction),
			Type:   diagram.DiagramType(j.cfg.Render.Type),
			IsDark: j.cfg.Render.Dark,
		},
		Engine: layout.EngineOptions{Layout: j.cfg.Render.Layout},
	}
}

func (j *batchJob) renderStdin(ctx context.Context, renderer *diagram.Renderer) error {
	renderCtx, cancel := context.WithTimeout(ctx, j.cfg.Render.Timeout)
	defer cancel()

	limited := io.LimitReader(os.Stdin, int64(j.cfg.Render.MaxSourceBytes)+1)
	svg, err := renderer.Render(renderCtx, diagram.FromReader(limited), j.baseRequest())
	if err != nil {
		return err
	}
	_, err = io.WriteString(os.Stdout, svg+"\n")
	return err
}

func (j *batchJob) renderFiles(ctx context.Context, app *bootstrap.App[*cliConfig], renderer *diagram.Renderer) error {
	if j.outDir != "" {
		if err := os.MkdirAll(j.outDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	start := time.Now()

	files := pipeline.FromSlice(j.inputs)
	rendered := pipeline.Parallel(files, j.cfg.Workers, func(ctx context.Context, path string) (renderResult, error) {
		return j.renderFile(ctx, renderer, path)
	})

	count := 0
	err := pipeline.ForEach(ctx, rendered, func(_ context.Context, r renderResult) error {
		count++
		app.Logger.Info("Rendered diagram", map[string]interface{}{
			"input":       r.input,
			"output":      r.output,
			"bytes":       r.bytes,
			"duration_ms": r.duration.Milliseconds(),
		})
		return nil
	})
	if err != nil {
		return err
	}

	app.Logger.Info("Batch complete", map[string]interface{}{
		"files":       count,
		"workers":     j.cfg.Workers,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

func (j *batchJob) renderFile(ctx context.Context, renderer *diagram.Renderer, path string) (renderResult, error) {
	start := time.Now()

	info, err := os.Stat(path)
	if err != nil {
		return renderResult{}, fmt.Errorf("%s: %w", path, err)
	}
	if info.Size() > int64(j.cfg.Render.MaxSourceBytes) {
		return renderResult{}, fmt.Errorf("%s: source exceeds %d bytes", path, j.cfg.Render.MaxSourceBytes)
	}

	f, err := os.Open(path)
	if err != nil {
		return renderResult{}, fmt.Errorf("%s: %w", path, err)
	}
	defer f.Close()

	renderCtx, cancel := context.WithTimeout(ctx, j.cfg.Render.Timeout)
	defer cancel()

	svg, err := renderer.Render(renderCtx, diagram.FromReader(f), j.baseRequest())
	if err != nil {
		return renderResult{}, fmt.Errorf("%s: %w", path, err)
	}

	out := j.outputPath(path)
	if err := os.WriteFile(out, []byte(svg+"\n"), 0o644); err != nil {
		return renderResult{}, fmt.Errorf("%s: %w", out, err)
	}

	return renderResult{
		input:    path,
		output:   out,
		bytes:    len(svg),
		duration: time.Since(start),
	}, nil
}

// outputPath derives the .svg path for an input file, honoring -out.
func (j *batchJob) outputPath(input string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext) + ".svg"
	if j.outDir != "" {
		return filepath.Join(j.outDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}
