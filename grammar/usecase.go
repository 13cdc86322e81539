package grammar

import (
	"fmt"

	"github.com/emicklei/dot"
)

// usecaseGrammar compiles use-case diagrams: [Actor] boxes, (Use Case)
// ellipses, plain associations and directed includes/extends.
type usecaseGrammar struct{}

func (usecaseGrammar) Compile(lines []string, opts Options) (*Result, error) {
	g := newGraph(opts)

	for _, line := range lines {
		tokens, err := tokenize(line, "[(")
		if err != nil {
			return nil, err
		}
		err = elementPairs(tokens, func(left token, conn *token, right *token) error {
			from, err := usecaseNode(g, left)
			if err != nil {
				return err
			}
			if conn == nil {
				return nil
			}
			to, err := usecaseNode(g, *right)
			if err != nil {
				return err
			}
			applyEdge(g, from, to, parseConnector(conn.text))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("usecase diagram: %w", err)
		}
	}
	return &Result{Graph: g}, nil
}

func usecaseNode(g *dot.Graph, tok token) (dot.Node, error) {
	text, bg := background(tok.text)
	if text == "" {
		return dot.Node{}, fmt.Errorf("empty element in usecase diagram")
	}
	n := g.Node(text).Attr("label", text)
	if tok.open == '(' {
		n = n.Attr("shape", "ellipse")
	} else {
		n = n.Attr("shape", "box")
	}
	return fillNode(n, bg), nil
}
