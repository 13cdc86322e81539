// Package layout turns an intermediate DOT graph into rendered SVG.
//
// WrapHeader applies theme and caller-supplied header attributes to the
// graph text; Engine runs the Graphviz dot layout in-process. Engine and
// render options are opaque to the render core, which threads them
// through untouched.
package layout
