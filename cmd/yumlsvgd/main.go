// Command yumlsvgd serves yUML-style diagram rendering over HTTP.
//
// It exposes POST /v1/render plus the standard system endpoints
// (/health, /alive, /ready, /info, /version, /metrics). Configuration is
// read from yumlsvgd.yml and environment variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/skillsenselab/yumlsvg/bootstrap"
	"github.com/skillsenselab/yumlsvg/component"
	"github.com/skillsenselab/yumlsvg/config"
	"github.com/skillsenselab/yumlsvg/diagram"
	"github.com/skillsenselab/yumlsvg/layout"
	"github.com/skillsenselab/yumlsvg/observability"
	"github.com/skillsenselab/yumlsvg/server"
	"github.com/skillsenselab/yumlsvg/server/endpoint"
	"github.com/skillsenselab/yumlsvg/version"
)

// daemonConfig is the daemon configuration, loadable from yumlsvgd.yml
// and environment variables.
type daemonConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config       `yaml:"server" mapstructure:"server"`
	Render        config.RenderConfig `yaml:"render" mapstructure:"render"`
	Observability obsConfig           `yaml:"observability" mapstructure:"observability"`
}

// obsConfig enables the OTLP trace and metric exporters.
type obsConfig struct {
	TracingEnabled bool    `yaml:"tracing_enabled" mapstructure:"tracing_enabled"`
	MetricsEnabled bool    `yaml:"metrics_enabled" mapstructure:"metrics_enabled"`
	Endpoint       string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure       bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate     float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

func (c *daemonConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "yumlsvgd"
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Render.ApplyDefaults()
	if c.Observability.Endpoint == "" {
		c.Observability.Endpoint = "localhost:4318"
	}
	if c.Observability.SampleRate == 0 {
		c.Observability.SampleRate = 1.0
	}
}

func (c *daemonConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Render.Validate()
}

func main() {
	var (
		flagConfig  = flag.String("config", "", "path to config file")
		flagVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *flagVersion {
		fmt.Println(version.Full())
		return
	}

	cfg := &daemonConfig{}
	loadOpts := []config.LoaderOption{}
	if *flagConfig != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(*flagConfig))
	}
	if err := config.LoadConfig("yumlsvgd", cfg, loadOpts...); err != nil {
		fmt.Fprintf(os.Stderr, "yumlsvgd: %v\n", err)
		os.Exit(1)
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "yumlsvgd: %v\n", err)
		os.Exit(1)
	}

	if err := run(app); err != nil {
		app.Logger.Error("Daemon failed", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}
}

func run(app *bootstrap.App[*daemonConfig]) error {
	ctx := context.Background()
	cfg := app.Cfg

	// Layout engine warms the Graphviz WASM module at startup so the first
	// request does not pay the instantiation cost.
	engineComp := layout.NewEngineComponent()
	if err := app.RegisterComponent(engineComp); err != nil {
		return err
	}

	srv := server.New(cfg.Server, app.Logger)
	srv.ApplyDefaults(cfg.Name, func(ctx context.Context) []component.Health {
		return app.Components.HealthAll(ctx)
	})
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return err
	}

	metrics, err := initObservability(ctx, app)
	if err != nil {
		return err
	}

	renderer := diagram.New(
		diagram.WithEngine(engineComp.Engine()),
		diagram.WithLogger(app.Logger),
	)
	defaults := diagram.Request{
		Options: diagram.Options{
			Dir:    diagram.Direction(cfg.Render.Direction),
			Type:   diagram.DiagramType(cfg.Render.Type),
			IsDark: cfg.Render.Dark,
		},
		Engine: layout.EngineOptions{Layout: cfg.Render.Layout},
	}
	srv.GinEngine().POST("/v1/render", endpoint.Render(renderer, defaults, metrics))

	return app.Run(ctx)
}

// initObservability wires the OTLP exporters when enabled and registers
// their shutdown with the application lifecycle. It returns the metric
// instruments for the render endpoint, nil when metrics are off.
func initObservability(ctx context.Context, app *bootstrap.App[*daemonConfig]) (*observability.Metrics, error) {
	obs := app.Cfg.Observability

	if obs.TracingEnabled {
		tc := observability.DefaultTracerConfig(app.Name)
		tc.ServiceVersion = app.Version
		tc.Environment = app.Cfg.Environment
		tc.Endpoint = obs.Endpoint
		tc.Insecure = obs.Insecure
		tc.SampleRate = obs.SampleRate

		tp, err := observability.InitTracer(ctx, tc)
		if err != nil {
			return nil, fmt.Errorf("init tracer: %w", err)
		}
		app.OnStop(func(ctx context.Context) error {
			return tp.Shutdown(ctx)
		})
	}

	if !obs.MetricsEnabled {
		return nil, nil
	}

	mc := observability.DefaultMeterConfig(app.Name)
	mc.ServiceVersion = app.Version
	mc.Environment = app.Cfg.Environment
	mc.Endpoint = obs.Endpoint
	mc.Insecure = obs.Insecure

	mp, err := observability.InitMeter(ctx, &mc)
	if err != nil {
		return nil, fmt.Errorf("init meter: %w", err)
	}
	app.OnStop(func(ctx context.Context) error {
		return mp.Shutdown(ctx)
	})

	return observability.NewMetrics(observability.Meter(app.Name))
}
