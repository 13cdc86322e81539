// Package postprocess finalizes rendered SVG documents: it strips the XML
// prolog Graphviz emits, swaps the palette for dark renders, and embeds
// locally referenced images as data URIs. Processing is deterministic so
// identical renders stay byte-identical.
package postprocess
