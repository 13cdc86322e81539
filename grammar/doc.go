// Package grammar translates yUML instruction lines into diagram documents.
//
// Six of the seven grammars (class, usecase, activity, state, deployment,
// package) compile instructions into an intermediate DOT graph that the
// layout engine renders. The sequence grammar composes the final SVG
// document directly and bypasses layout entirely.
//
// Grammars are order-sensitive: instruction lines are consumed exactly in
// arrival order and never reordered.
package grammar
