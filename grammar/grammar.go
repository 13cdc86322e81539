package grammar

import (
	"github.com/emicklei/dot"
)

// Options carries the subset of render configuration a grammar may read.
type Options struct {
	// RankDir is the layout direction code: TB, LR, or RL.
	RankDir string
	// IsDark selects the dark palette. Only the sequence grammar reads it;
	// the DOT-producing grammars leave theming to the header wrap.
	IsDark bool
}

// Result is a grammar's output: either an intermediate DOT graph destined
// for the layout engine, or a ready-to-return SVG document.
type Result struct {
	Graph *dot.Graph
	SVG   string
}

// Grammar compiles instruction lines into a diagram document.
type Grammar interface {
	Compile(lines []string, opts Options) (*Result, error)
}

// Diagram type names, in the order they are reported to users.
const (
	TypeClass      = "class"
	TypeUseCase    = "usecase"
	TypeActivity   = "activity"
	TypeState      = "state"
	TypeDeployment = "deployment"
	TypePackage    = "package"
	TypeSequence   = "sequence"
)

// registry is the static dispatch table, resolved at startup.
var registry = map[string]Grammar{
	TypeClass:      classGrammar{},
	TypeUseCase:    usecaseGrammar{},
	TypeActivity:   activityGrammar{},
	TypeState:      stateGrammar{},
	TypeDeployment: deploymentGrammar{},
	TypePackage:    packageGrammar{},
	TypeSequence:   sequenceGrammar{},
}

// Lookup returns the grammar registered for the given diagram type.
func Lookup(diagramType string) (Grammar, bool) {
	g, ok := registry[diagramType]
	return g, ok
}

// KnownTypes returns the diagram type names in canonical order.
func KnownTypes() []string {
	return []string{
		TypeClass, TypeUseCase, TypeActivity, TypeState,
		TypeDeployment, TypePackage, TypeSequence,
	}
}

// newGraph creates a directed graph with the shared layout attributes.
func newGraph(opts Options) *dot.Graph {
	g := dot.NewGraph(dot.Directed)
	if opts.RankDir != "" {
		g.Attr("rankdir", opts.RankDir)
	}
	g.Attr("ranksep", "0.5")
	return g
}
