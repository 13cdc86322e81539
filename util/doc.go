// Package util contains small shared helpers: size parsing for the HTTP
// body limit and escaping routines for DOT labels and SVG text.
package util
