package grammar

import (
	"fmt"
	"strings"

	"github.com/emicklei/dot"

	"github.com/skillsenselab/yumlsvg/util"
)

// classGrammar compiles class diagrams: [Name|attrs|methods] record nodes,
// inheritance (^), aggregation (<>), composition (++), dashed dependencies
// and cardinality labels.
type classGrammar struct{}

func (classGrammar) Compile(lines []string, opts Options) (*Result, error) {
	g := newGraph(opts)
	noteCount := 0

	for _, line := range lines {
		tokens, err := tokenize(line, "[")
		if err != nil {
			return nil, err
		}
		err = elementPairs(tokens, func(left token, conn *token, right *token) error {
			from, err := classNode(g, left, &noteCount)
			if err != nil {
				return err
			}
			if conn == nil {
				return nil
			}
			to, err := classNode(g, *right, &noteCount)
			if err != nil {
				return err
			}
			applyEdge(g, from, to, parseConnector(conn.text))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("class diagram: %w", err)
		}
	}
	return &Result{Graph: g}, nil
}

// classNode materializes one [..] element as a DOT node, reusing nodes
// already declared under the same name.
func classNode(g *dot.Graph, tok token, noteCount *int) (dot.Node, error) {
	text, bg := background(tok.text)
	if text == "" {
		return dot.Node{}, fmt.Errorf("empty element in class diagram")
	}

	if note, ok := strings.CutPrefix(text, "note:"); ok {
		*noteCount++
		n := g.Node(fmt.Sprintf("note%d", *noteCount)).
			Attr("shape", "note").
			Attr("label", strings.TrimSpace(note))
		return fillNode(n, bg), nil
	}

	parts := util.SplitTrimmed(text, "|")
	name := parts[0]
	if name == "" {
		return dot.Node{}, fmt.Errorf("class element %q has no name", tok.text)
	}

	n := g.Node(name)
	if len(parts) > 1 {
		escaped := make([]string, len(parts))
		for i, p := range parts {
			escaped[i] = util.EscapeRecord(p)
		}
		n = n.Attr("shape", "record").
			Attr("label", "{"+strings.Join(escaped, "|")+"}")
	} else {
		n = n.Attr("shape", "box").Attr("label", name)
	}
	return fillNode(n, bg), nil
}

// fillNode applies a {bg:...} background to a node.
func fillNode(n dot.Node, bg string) dot.Node {
	if bg == "" {
		return n
	}
	return n.Attr("style", "filled").Attr("fillcolor", bg)
}

// applyEdge declares an edge carrying the parsed connector semantics.
func applyEdge(g *dot.Graph, from, to dot.Node, spec edgeSpec) {
	e := g.Edge(from, to).
		Attr("arrowhead", string(spec.head)).
		Attr("arrowtail", string(spec.tail))
	switch {
	case spec.tail != arrowNone:
		e = e.Attr("dir", "both")
	case spec.head == arrowNone:
		e = e.Attr("dir", "none")
	}
	if spec.dashed {
		e = e.Attr("style", "dashed")
	}
	if spec.label != "" {
		e = e.Attr("label", spec.label)
	}
	if spec.tailLabel != "" {
		e = e.Attr("taillabel", spec.tailLabel)
	}
	if spec.headLabel != "" {
		e.Attr("headlabel", spec.headLabel)
	}
}
