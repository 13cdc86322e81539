package grammar

import (
	"fmt"

	"github.com/emicklei/dot"
)

// activityGrammar compiles activity diagrams: (start)/(end) terminals,
// (Action) rounded boxes, <decision> diamonds, |fork| bars and [guard]
// edge labels.
type activityGrammar struct{}

func (activityGrammar) Compile(lines []string, opts Options) (*Result, error) {
	g := newGraph(opts)
	forkCount := 0

	for _, line := range lines {
		tokens, err := tokenize(line, "[(<|")
		if err != nil {
			return nil, err
		}

		// Walk the token list keeping a pending connector and guard label,
		// so that [guard] elements annotate the edge that follows them.
		var prev *dot.Node
		var pendingConn string
		var pendingGuard string
		connSeen := false

		for _, tok := range tokens {
			if tok.kind == tokenConnector {
				if connSeen {
					return nil, fmt.Errorf("activity diagram: consecutive connectors in %q", line)
				}
				pendingConn = tok.text
				connSeen = true
				continue
			}
			if tok.open == '[' {
				if prev == nil || connSeen {
					return nil, fmt.Errorf("activity diagram: guard %q must follow an element", tok.text)
				}
				pendingGuard = tok.text
				continue
			}
			node, err := activityNode(g, tok, &forkCount)
			if err != nil {
				return nil, fmt.Errorf("activity diagram: %w", err)
			}
			if prev != nil {
				if !connSeen {
					return nil, fmt.Errorf("activity diagram: missing connector before %q", tok.text)
				}
				spec := parseConnector(pendingConn)
				if pendingGuard != "" {
					spec.label = pendingGuard
				}
				applyEdge(g, *prev, node, spec)
			}
			prev = &node
			pendingConn = ""
			pendingGuard = ""
			connSeen = false
		}
		if connSeen {
			return nil, fmt.Errorf("activity diagram: dangling connector %q in %q", pendingConn, line)
		}
	}
	return &Result{Graph: g}, nil
}

func activityNode(g *dot.Graph, tok token, forkCount *int) (dot.Node, error) {
	text, bg := background(tok.text)
	switch tok.open {
	case '(':
		switch text {
		case "start":
			return g.Node("start").
				Attr("shape", "circle").
				Attr("style", "filled").
				Attr("fillcolor", "black").
				Attr("label", ""), nil
		case "end":
			return g.Node("end").
				Attr("shape", "doublecircle").
				Attr("style", "filled").
				Attr("fillcolor", "black").
				Attr("label", ""), nil
		default:
			if text == "" {
				return dot.Node{}, fmt.Errorf("empty activity element")
			}
			n := g.Node(text).
				Attr("shape", "box").
				Attr("style", "rounded").
				Attr("label", text)
			return fillNode(n, bg), nil
		}
	case '<':
		if text == "" {
			return dot.Node{}, fmt.Errorf("empty decision element")
		}
		return g.Node(text).
			Attr("shape", "diamond").
			Attr("label", text), nil
	case '|':
		// Named bars refer to the same fork across lines; unnamed bars are
		// unique per occurrence.
		id := "fork_" + text
		if text == "" {
			*forkCount++
			id = fmt.Sprintf("fork%d", *forkCount)
		}
		return g.Node(id).
			Attr("shape", "box").
			Attr("style", "filled").
			Attr("fillcolor", "black").
			Attr("label", "").
			Attr("height", "0.05"), nil
	}
	return dot.Node{}, fmt.Errorf("unexpected element %q", tok.text)
}
