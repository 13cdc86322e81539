package layout

import (
	"context"

	"github.com/goccy/go-graphviz"

	"github.com/skillsenselab/yumlsvg/component"
)

// EngineComponent wraps the Graphviz engine for lifecycle management.
// Start warms up the WebAssembly module so the first render request does
// not pay the load cost, and health reflects whether the warmup succeeded.
type EngineComponent struct {
	engine *GraphvizEngine
	lazy   *component.BaseLazyComponent
}

// NewEngineComponent creates the lifecycle wrapper around a fresh engine.
func NewEngineComponent() *EngineComponent {
	ec := &EngineComponent{engine: NewGraphvizEngine()}
	ec.lazy = component.NewBaseLazyComponent("layout-engine", func(ctx context.Context) error {
		g, err := graphviz.New(ctx)
		if err != nil {
			return err
		}
		return g.Close()
	})
	return ec
}

// Engine returns the underlying render engine.
func (ec *EngineComponent) Engine() Engine { return ec.engine }

func (ec *EngineComponent) Name() string { return ec.lazy.Name() }

func (ec *EngineComponent) Start(ctx context.Context) error {
	return ec.lazy.Initialize(ctx)
}

func (ec *EngineComponent) Stop(ctx context.Context) error {
	return ec.lazy.Close()
}

func (ec *EngineComponent) Health(ctx context.Context) component.Health {
	if err := ec.lazy.HealthCheck(ctx); err != nil {
		return component.Health{
			Name:    ec.Name(),
			Status:  component.StatusUnhealthy,
			Message: err.Error(),
		}
	}
	return component.Health{Name: ec.Name(), Status: component.StatusHealthy}
}

func (ec *EngineComponent) Describe() component.Description {
	return component.Description{
		Name:    "Layout Engine",
		Type:    "engine",
		Details: "graphviz wasm, in-process",
	}
}
