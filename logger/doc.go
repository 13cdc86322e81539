// Package logger wraps zerolog with the conventions used across yumlsvg:
// component tagging, structured fields, and a console format for local use.
//
// The render core uses it as the diagnostic channel for directive warnings;
// warnings never affect the success or failure of a render.
package logger
