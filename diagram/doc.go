// Package diagram is the yumlsvg render core: it normalizes buffered or
// streaming input into an ordered instruction list, applies embedded
// // {key:value} directives to the render configuration, routes to the
// grammar selected by the resolved diagram type, and assembles the final
// SVG through a two-branch concurrent pipeline (layout rendering and SVG
// post-processing).
//
// The core performs no diagram-syntax validation itself; that is entirely
// delegated to the grammar package. Malformed directives are downgraded
// to warnings on the diagnostic logger and never fail a render.
package diagram
