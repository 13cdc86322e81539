package util

import "strings"

// recordEscaper escapes the characters that carry structure inside a
// Graphviz record label.
var recordEscaper = strings.NewReplacer(
	"{", `\{`,
	"}", `\}`,
	"|", `\|`,
	"<", `\<`,
	">", `\>`,
	`"`, `\"`,
)

// EscapeRecord escapes s for use inside a Graphviz record-shaped label.
func EscapeRecord(s string) string {
	return recordEscaper.Replace(s)
}

// xmlEscaper covers the five predefined XML entities.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeXML escapes s for use as SVG/XML text content or attribute value.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// SplitTrimmed splits s on sep and trims whitespace from every part.
// Empty parts are preserved so positional semantics survive.
func SplitTrimmed(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
