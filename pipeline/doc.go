// Package pipeline provides a lazy, pull-based data pipeline used by the
// CLI to render batches of diagram files.
//
// A Pipeline[T] describes a stream of values; no work happens until a
// terminal (Collect, Drain, ForEach) pulls values through it. Operators
// compose by wrapping the upstream iterator:
//
//	files := pipeline.FromSlice(paths)
//	rendered := pipeline.Parallel(files, workers, renderOne)
//	err := pipeline.ForEach(ctx, rendered, writeOutput)
//
// Parallel fans work out to n workers and does not preserve order; use Map
// when ordering matters. All operators propagate the first error and stop
// pulling from upstream.
package pipeline
