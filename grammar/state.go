package grammar

import (
	"fmt"

	"github.com/emicklei/dot"
)

// stateGrammar compiles state diagrams: (start)/(end) terminals, (State)
// rounded boxes and -event> transition labels.
type stateGrammar struct{}

func (stateGrammar) Compile(lines []string, opts Options) (*Result, error) {
	g := newGraph(opts)

	for _, line := range lines {
		tokens, err := tokenize(line, "(")
		if err != nil {
			return nil, err
		}
		err = elementPairs(tokens, func(left token, conn *token, right *token) error {
			from, err := stateNode(g, left)
			if err != nil {
				return err
			}
			if conn == nil {
				return nil
			}
			to, err := stateNode(g, *right)
			if err != nil {
				return err
			}
			applyEdge(g, from, to, parseConnector(conn.text))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("state diagram: %w", err)
		}
	}
	return &Result{Graph: g}, nil
}

func stateNode(g *dot.Graph, tok token) (dot.Node, error) {
	text, bg := background(tok.text)
	switch text {
	case "":
		return dot.Node{}, fmt.Errorf("empty element in state diagram")
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
	}
	n := g.Node(text).
		Attr("shape", "box").
		Attr("style", "rounded").
		Attr("label", text)
	return fillNode(n, bg), nil
}
