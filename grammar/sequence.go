package grammar

import (
	"fmt"
	"strings"

	"github.com/skillsenselab/yumlsvg/util"
)

// sequenceGrammar compiles sequence diagrams. Unlike the other grammars it
// does not go through the layout engine: it composes the final SVG
// document itself, with actor boxes, dashed lifelines and ordered message
// arrows. Replies are written with a dotted connector and drawn dashed.
type sequenceGrammar struct{}

type seqMessage struct {
	from, to string
	label    string
	dashed   bool
}

// Sequence layout constants, in SVG user units.
const (
	seqTop      = 10
	seqBoxH     = 40
	seqGap      = 30
	seqMsgGap   = 40
	seqCharW    = 8
	seqMinBoxW  = 60
	seqSelfSpan = 40
)

func (sequenceGrammar) Compile(lines []string, opts Options) (*Result, error) {
	var actors []string
	index := map[string]int{}
	var messages []seqMessage

	addActor := func(name string) {
		if _, ok := index[name]; !ok {
			index[name] = len(actors)
			actors = append(actors, name)
		}
	}

	for _, line := range lines {
		tokens, err := tokenize(line, "[")
		if err != nil {
			return nil, err
		}
		err = elementPairs(tokens, func(left token, conn *token, right *token) error {
			from, _ := background(left.text)
			if from == "" {
				return fmt.Errorf("empty actor in sequence diagram")
			}
			addActor(from)
			if conn == nil {
				return nil
			}
			to, _ := background(right.text)
			if to == "" {
				return fmt.Errorf("empty actor in sequence diagram")
			}
			addActor(to)
			messages = append(messages, seqMessage{
				from:   from,
				to:     to,
				label:  messageLabel(conn.text),
				dashed: strings.Contains(conn.text, "."),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("sequence diagram: %w", err)
		}
	}

	return &Result{SVG: composeSequenceSVG(actors, index, messages, opts.IsDark)}, nil
}

// messageLabel strips arrow and dash markers from the connector text.
func messageLabel(conn string) string {
	return strings.TrimSpace(strings.Trim(conn, "<>-. "))
}

func composeSequenceSVG(actors []string, index map[string]int, messages []seqMessage, isDark bool) string {
	fg := "black"
	if isDark {
		fg = "white"
	}

	// Horizontal layout: actor boxes sized by name length, centers recorded
	// for lifelines and message endpoints.
	widths := make([]int, len(actors))
	centers := make([]int, len(actors))
	x := seqGap
	for i, name := range actors {
		w := seqCharW*len(name) + 24
		if w < seqMinBoxW {
			w = seqMinBoxW
		}
		widths[i] = w
		centers[i] = x + w/2
		x += w + seqGap
	}
	width := x
	height := seqTop + seqBoxH + seqMsgGap*(len(messages)+1) + seqTop

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, width, height, width, height)
	fmt.Fprintf(&b, `<defs><marker id="arrow" markerWidth="10" markerHeight="8" refX="9" refY="4" orient="auto"><path d="M0,0 L10,4 L0,8 z" fill="%s"/></marker></defs>`, fg)

	lifelineBottom := height - seqTop
	for i, name := range actors {
		bx := centers[i] - widths[i]/2
		fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-dasharray="4,4"/>`,
			centers[i], seqTop+seqBoxH, centers[i], lifelineBottom, fg)
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="none" stroke="%s"/>`,
			bx, seqTop, widths[i], seqBoxH, fg)
		fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" fill="%s">%s</text>`,
			centers[i], seqTop+seqBoxH/2+5, fg, util.EscapeXML(name))
	}

	for i, m := range messages {
		y := seqTop + seqBoxH + seqMsgGap*(i+1)
		x1 := centers[index[m.from]]
		x2 := centers[index[m.to]]
		dash := ""
		if m.dashed {
			dash = ` stroke-dasharray="6,3"`
		}
		if m.from == m.to {
			// Self message: out, down, and back with the arrow on return.
			fmt.Fprintf(&b, `<path d="M%d,%d h%d v%d h-%d" fill="none" stroke="%s"%s marker-end="url(#arrow)"/>`,
				x1, y, seqSelfSpan, seqMsgGap/2, seqSelfSpan, fg, dash)
			if m.label != "" {
				fmt.Fprintf(&b, `<text x="%d" y="%d" fill="%s">%s</text>`,
					x1+seqSelfSpan+6, y+seqMsgGap/4+5, fg, util.EscapeXML(m.label))
			}
			continue
		}
		fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s"%s marker-end="url(#arrow)"/>`,
			x1, y, x2, y, fg, dash)
		if m.label != "" {
			fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" fill="%s">%s</text>`,
				(x1+x2)/2, y-6, fg, util.EscapeXML(m.label))
		}
	}

	b.WriteString(`</svg>`)
	return b.String()
}
