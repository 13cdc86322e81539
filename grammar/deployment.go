package grammar

import (
	"fmt"
	"strings"

	"github.com/emicklei/dot"
)

// deploymentGrammar compiles deployment diagrams: [Node] three-dimensional
// boxes with associations and dashed communication paths.
type deploymentGrammar struct{}

func (deploymentGrammar) Compile(lines []string, opts Options) (*Result, error) {
	g := newGraph(opts)
	noteCount := 0

	for _, line := range lines {
		tokens, err := tokenize(line, "[")
		if err != nil {
			return nil, err
		}
		err = elementPairs(tokens, func(left token, conn *token, right *token) error {
			from, err := deploymentNode(g, left, &noteCount)
			if err != nil {
				return err
			}
			if conn == nil {
				return nil
			}
			to, err := deploymentNode(g, *right, &noteCount)
			if err != nil {
				return err
			}
			applyEdge(g, from, to, parseConnector(conn.text))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("deployment diagram: %w", err)
		}
	}
	return &Result{Graph: g}, nil
}

func deploymentNode(g *dot.Graph, tok token, noteCount *int) (dot.Node, error) {
	text, bg := background(tok.text)
	if text == "" {
		return dot.Node{}, fmt.Errorf("empty element in deployment diagram")
	}
	if note, ok := strings.CutPrefix(text, "note:"); ok {
		*noteCount++
		n := g.Node(fmt.Sprintf("note%d", *noteCount)).
			Attr("shape", "note").
			Attr("label", strings.TrimSpace(note))
		return fillNode(n, bg), nil
	}
	n := g.Node(text).
		Attr("shape", "box3d").
		Attr("label", text)
	return fillNode(n, bg), nil
}
