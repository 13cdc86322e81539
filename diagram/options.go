package diagram

import (
	"github.com/skillsenselab/yumlsvg/grammar"
	"github.com/skillsenselab/yumlsvg/layout"
)

// DiagramType identifies one of the seven diagram grammars.
type DiagramType string

const (
	TypeClass      DiagramType = grammar.TypeClass
	TypeUseCase    DiagramType = grammar.TypeUseCase
	TypeActivity   DiagramType = grammar.TypeActivity
	TypeState      DiagramType = grammar.TypeState
	TypeDeployment DiagramType = grammar.TypeDeployment
	TypePackage    DiagramType = grammar.TypePackage
	TypeSequence   DiagramType = grammar.TypeSequence
)

// Known reports whether t is a registered diagram type.
func (t DiagramType) Known() bool {
	_, ok := grammar.Lookup(string(t))
	return ok
}

// KnownTypes returns the diagram type names in canonical order.
func KnownTypes() []string {
	return grammar.KnownTypes()
}

// Direction is a layout direction code.
type Direction string

const (
	DirTopDown     Direction = "TB"
	DirLeftToRight Direction = "LR"
	DirRightToLeft Direction = "RL"
)

// directionNames maps the symbolic directive values to direction codes.
var directionNames = map[string]Direction{
	"topDown":     DirTopDown,
	"leftToRight": DirLeftToRight,
	"rightToLeft": DirRightToLeft,
}

// Options is the render configuration. It is built before ingestion,
// mutated in place by directives during the single input scan, and
// read-only from the moment dispatch begins.
type Options struct {
	// Dir is the layout direction code.
	Dir Direction
	// Type selects the diagram grammar.
	Type DiagramType
	// IsDark selects the dark theme for header wrapping and
	// post-processing.
	IsDark bool
	// DotHeaderOverrides are passed verbatim to the header wrap.
	DotHeaderOverrides map[string]string
	// Generate is deprecated and has no effect.
	Generate bool
}

// DefaultOptions returns the configuration used before any directive is
// read: top-down class diagram with the light theme.
func DefaultOptions() Options {
	return Options{
		Dir:  DirTopDown,
		Type: TypeClass,
	}
}

// Request bundles the render configuration with the opaque engine and
// render options threaded through to the layout engine.
type Request struct {
	Options Options
	Engine  layout.EngineOptions
	Render  layout.RenderOptions
}

// DefaultRequest returns a Request carrying DefaultOptions.
func DefaultRequest() Request {
	return Request{Options: DefaultOptions()}
}
