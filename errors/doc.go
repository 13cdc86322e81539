// Package errors provides the error taxonomy for the yumlsvg render
// pipeline: structured errors with machine-readable codes, HTTP status
// mapping, and cause chaining.
package errors
