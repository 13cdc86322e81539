package layout

import (
	"fmt"
	"sort"
	"strings"

	"github.com/emicklei/dot"
)

// WrapHeader serializes the intermediate graph and splices the theme
// header directly after the opening brace: default font settings, a
// transparent background, the dark palette when requested, and any
// caller-supplied header overrides verbatim.
func WrapHeader(g *dot.Graph, isDark bool, overrides map[string]string) string {
	body := g.String()
	open := strings.IndexByte(body, '{')
	if open < 0 {
		return body
	}

	var header strings.Builder
	header.WriteString("\n\tgraph [fontname=\"Helvetica\",bgcolor=\"transparent\"];")
	header.WriteString("\n\tnode [fontname=\"Helvetica\",fontsize=\"10\"];")
	header.WriteString("\n\tedge [fontname=\"Helvetica\",fontsize=\"10\"];")
	if isDark {
		header.WriteString("\n\tnode [color=\"white\",fontcolor=\"white\"];")
		header.WriteString("\n\tedge [color=\"white\",fontcolor=\"white\"];")
	}

	// Overrides are emitted in key order so output stays deterministic.
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&header, "\n\tgraph [%s=%q];", k, overrides[k])
	}

	return body[:open+1] + header.String() + body[open+1:]
}
