package postprocess

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Processor rewrites a rendered SVG document into its final form.
// Acquire one with New; a Processor is safe for concurrent use.
type Processor struct {
	isDark   bool
	palette  *regexp.Regexp
	imageRef *regexp.Regexp

	// readFile is a seam for tests.
	readFile func(string) ([]byte, error)
}

// New acquires the post-processing capability for the given theme.
func New(isDark bool) (*Processor, error) {
	palette, err := regexp.Compile(`(fill|stroke)="(black|white|#000000|#ffffff)"`)
	if err != nil {
		return nil, err
	}
	imageRef, err := regexp.Compile(`(<image\b[^>]*?(?:xlink:)?href=")([^"]+)(")`)
	if err != nil {
		return nil, err
	}
	return &Processor{
		isDark:   isDark,
		palette:  palette,
		imageRef: imageRef,
		readFile: os.ReadFile,
	}, nil
}

// Apply produces the final document: prolog stripped, palette swapped for
// dark renders, local image references embedded as data URIs.
func (p *Processor) Apply(svg string) (string, error) {
	out := stripProlog(svg)
	if p.isDark {
		out = p.swapPalette(out)
	}
	out = p.embedImages(out)
	return strings.TrimSpace(out), nil
}

// stripProlog drops the XML declaration and DOCTYPE Graphviz emits before
// the root element.
func stripProlog(svg string) string {
	if i := strings.Index(svg, "<svg"); i > 0 {
		return svg[i:]
	}
	return svg
}

var paletteSwap = map[string]string{
	"black":   "white",
	"white":   "black",
	"#000000": "#ffffff",
	"#ffffff": "#000000",
}

// swapPalette inverts black and white fill/stroke attributes.
func (p *Processor) swapPalette(svg string) string {
	return p.palette.ReplaceAllStringFunc(svg, func(m string) string {
		sub := p.palette.FindStringSubmatch(m)
		return sub[1] + `="` + paletteSwap[sub[2]] + `"`
	})
}

var imageMIMEs = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
}

// embedImages inlines local image references as data URIs. Remote and
// already-embedded references, and files that cannot be read, are left
// untouched.
func (p *Processor) embedImages(svg string) string {
	return p.imageRef.ReplaceAllStringFunc(svg, func(m string) string {
		sub := p.imageRef.FindStringSubmatch(m)
		ref := sub[2]
		if strings.HasPrefix(ref, "data:") ||
			strings.HasPrefix(ref, "http://") ||
			strings.HasPrefix(ref, "https://") {
			return m
		}
		mime, ok := imageMIMEs[strings.ToLower(filepath.Ext(ref))]
		if !ok {
			return m
		}
		data, err := p.readFile(ref)
		if err != nil {
			return m
		}
		encoded := base64.StdEncoding.EncodeToString(data)
		return sub[1] + "data:" + mime + ";base64," + encoded + sub[3]
	})
}
