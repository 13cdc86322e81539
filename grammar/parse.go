package grammar

import (
	"fmt"
	"strings"
)

// tokenKind discriminates the two token classes produced by the scanner.
type tokenKind int

const (
	tokenElement tokenKind = iota
	tokenConnector
)

// token is one lexical unit of an instruction line: a delimited element
// such as [Class], (UseCase), <decision> or |fork|, or the connector text
// between two elements.
type token struct {
	kind tokenKind
	open byte   // delimiter for elements: '[', '(', '<' or '|'
	text string // inner text for elements, raw text for connectors
}

// closerFor maps an opening delimiter to its closer.
func closerFor(open byte) byte {
	switch open {
	case '[':
		return ']'
	case '(':
		return ')'
	case '<':
		return '>'
	case '|':
		return '|'
	}
	return 0
}

// tokenize splits an instruction line into element and connector tokens.
// openers lists the delimiter bytes that begin an element for the calling
// grammar; '<' is an opener only for grammars with diamond elements, since
// it also occurs inside connectors.
func tokenize(line, openers string) ([]token, error) {
	var tokens []token
	var connector strings.Builder

	flush := func() {
		text := strings.TrimSpace(connector.String())
		connector.Reset()
		if text != "" {
			tokens = append(tokens, token{kind: tokenConnector, text: text})
		}
	}

	for i := 0; i < len(line); {
		c := line[i]
		if strings.IndexByte(openers, c) >= 0 {
			closer := closerFor(c)
			end := strings.IndexByte(line[i+1:], closer)
			if end < 0 {
				return nil, fmt.Errorf("unterminated %q element in %q", string(c), line)
			}
			flush()
			tokens = append(tokens, token{
				kind: tokenElement,
				open: c,
				text: strings.TrimSpace(line[i+1 : i+1+end]),
			})
			i += end + 2
			continue
		}
		connector.WriteByte(c)
		i++
	}
	if text := strings.TrimSpace(connector.String()); text != "" {
		return nil, fmt.Errorf("trailing connector %q in %q", text, line)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no diagram elements in %q", line)
	}
	return tokens, nil
}

// arrowStyle describes one end of a parsed connector.
type arrowStyle string

const (
	arrowNone    arrowStyle = "none"
	arrowVee     arrowStyle = "vee"
	arrowEmpty   arrowStyle = "empty"    // inheritance / generalization
	arrowDiamond arrowStyle = "diamond"  // composition
	arrowODiam   arrowStyle = "odiamond" // aggregation
)

// edgeSpec is the interpretation of the connector text between two elements.
type edgeSpec struct {
	head      arrowStyle
	tail      arrowStyle
	dashed    bool
	label     string
	headLabel string
	tailLabel string
}

// parseConnector interprets yUML connector text: arrow markers at either
// end (>, <, ^, <>, ++), an optional dashed core (-.-), and remaining text
// as labels. Two dash-separated label parts become tail and head labels
// (cardinalities); a single part becomes the edge label.
func parseConnector(text string) edgeSpec {
	spec := edgeSpec{head: arrowNone, tail: arrowNone}
	rest := text

	// Inheritance is written with a caret at either end.
	if strings.HasPrefix(rest, "^") {
		spec.tail = arrowEmpty
		rest = rest[1:]
	} else if strings.HasSuffix(rest, "^") {
		spec.head = arrowEmpty
		rest = rest[:len(rest)-1]
	}

	switch {
	case strings.HasPrefix(rest, "<>"):
		spec.tail = arrowODiam
		rest = rest[2:]
	case strings.HasPrefix(rest, "++"):
		spec.tail = arrowDiamond
		rest = rest[2:]
	case strings.HasPrefix(rest, "<"):
		spec.tail = arrowVee
		rest = rest[1:]
	}

	switch {
	case strings.HasSuffix(rest, "<>"):
		spec.head = arrowODiam
		rest = rest[:len(rest)-2]
	case strings.HasSuffix(rest, "++"):
		spec.head = arrowDiamond
		rest = rest[:len(rest)-2]
	case strings.HasSuffix(rest, ">"):
		spec.head = arrowVee
		rest = rest[:len(rest)-1]
	}

	if strings.Contains(rest, "-.-") {
		spec.dashed = true
		rest = strings.Replace(rest, "-.-", "-", 1)
	}

	rest = strings.Trim(rest, ".")
	core := strings.Trim(rest, "-")
	if core == "" {
		return spec
	}
	if tail, head, found := strings.Cut(core, "-"); found {
		spec.tailLabel = strings.TrimSpace(tail)
		spec.headLabel = strings.TrimSpace(head)
	} else {
		spec.label = strings.TrimSpace(core)
	}
	return spec
}

// background extracts a trailing {bg:color} marker from element text.
func background(text string) (string, string) {
	open := strings.LastIndex(text, "{")
	if open < 0 || !strings.HasSuffix(text, "}") {
		return text, ""
	}
	marker := text[open+1 : len(text)-1]
	key, value, found := strings.Cut(marker, ":")
	if !found || strings.TrimSpace(key) != "bg" {
		return text, ""
	}
	return strings.TrimSpace(text[:open]), strings.TrimSpace(value)
}

// elementPairs walks tokens as an alternating element/connector sequence
// and invokes visit for every (left, connector, right) triple. A line with
// a single element yields one visit with a nil connector and nil right.
func elementPairs(tokens []token, visit func(left token, conn *token, right *token) error) error {
	if tokens[0].kind != tokenElement {
		return fmt.Errorf("expected element, got connector %q", tokens[0].text)
	}
	if len(tokens) == 1 {
		return visit(tokens[0], nil, nil)
	}
	left := tokens[0]
	i := 1
	for i < len(tokens) {
		conn := tokens[i]
		if conn.kind != tokenConnector {
			return fmt.Errorf("expected connector before %q", conn.text)
		}
		if i+1 >= len(tokens) || tokens[i+1].kind != tokenElement {
			return fmt.Errorf("dangling connector %q", conn.text)
		}
		right := tokens[i+1]
		if err := visit(left, &conn, &right); err != nil {
			return err
		}
		left = right
		i += 2
	}
	return nil
}
