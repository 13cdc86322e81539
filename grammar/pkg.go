package grammar

import (
	"fmt"

	"github.com/emicklei/dot"
)

// packageGrammar compiles package diagrams: [Pkg] tab-shaped nodes with
// dependency edges.
type packageGrammar struct{}

func (packageGrammar) Compile(lines []string, opts Options) (*Result, error) {
	g := newGraph(opts)

	for _, line := range lines {
		tokens, err := tokenize(line, "[")
		if err != nil {
			return nil, err
		}
		err = elementPairs(tokens, func(left token, conn *token, right *token) error {
			from, err := packageNode(g, left)
			if err != nil {
				return err
			}
			if conn == nil {
				return nil
			}
			to, err := packageNode(g, *right)
			if err != nil {
				return err
			}
			spec := parseConnector(conn.text)
			// Package dependencies are conventionally drawn dashed.
			if spec.head == arrowVee && spec.tail == arrowNone {
				spec.dashed = true
			}
			applyEdge(g, from, to, spec)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("package diagram: %w", err)
		}
	}
	return &Result{Graph: g}, nil
}

func packageNode(g *dot.Graph, tok token) (dot.Node, error) {
	text, bg := background(tok.text)
	if text == "" {
		return dot.Node{}, fmt.Errorf("empty element in package diagram")
	}
	n := g.Node(text).
		Attr("shape", "tab").
		Attr("label", text)
	return fillNode(n, bg), nil
}
