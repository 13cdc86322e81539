package diagram

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skillsenselab/yumlsvg/logger"
)

func warnRenderer(t *testing.T) (*Renderer, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return New(WithLogger(logger.NewWriter(&buf))), &buf
}

func TestTypeDirectiveAllKnownTypes(t *testing.T) {
	for _, name := range KnownTypes() {
		t.Run(name, func(t *testing.T) {
			r, warnings := warnRenderer(t)
			opts := DefaultOptions()
			r.applyDirective("// {type:"+name+"}", &opts)
			assert.Equal(t, DiagramType(name), opts.Type)
			assert.Empty(t, warnings.String())
		})
	}
}

func TestTypeDirectiveUnknownValueWarns(t *testing.T) {
	r, warnings := warnRenderer(t)
	opts := DefaultOptions()
	opts.Type = TypeActivity

	r.applyDirective("// {type:flowchart}", &opts)

	assert.Equal(t, TypeActivity, opts.Type, "type must stay unchanged")
	out := warnings.String()
	assert.Contains(t, out, "flowchart")
	for _, name := range KnownTypes() {
		assert.Contains(t, out, name)
	}
}

func TestDirectionDirective(t *testing.T) {
	tests := []struct {
		value string
		want  Direction
	}{
		{"topDown", DirTopDown},
		{"leftToRight", DirLeftToRight},
		{"rightToLeft", DirRightToLeft},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			r, warnings := warnRenderer(t)
			opts := DefaultOptions()
			r.applyDirective("// {direction:"+tc.value+"}", &opts)
			assert.Equal(t, tc.want, opts.Dir)
			assert.Empty(t, warnings.String())
		})
	}
}

func TestDirectionDirectiveUnknownValueWarns(t *testing.T) {
	r, warnings := warnRenderer(t)
	opts := DefaultOptions()
	r.applyDirective("// {direction:upsideDown}", &opts)
	assert.Equal(t, DirTopDown, opts.Dir)
	assert.Contains(t, warnings.String(), "upsideDown")
}

func TestGenerateDirective(t *testing.T) {
	r, warnings := warnRenderer(t)
	opts := DefaultOptions()

	r.applyDirective("// {generate:true}", &opts)
	assert.True(t, opts.Generate)
	assert.Contains(t, warnings.String(), "deprecated")

	warnings.Reset()
	r.applyDirective("// {generate:maybe}", &opts)
	assert.True(t, opts.Generate, "invalid value leaves the flag unchanged")
	assert.Contains(t, warnings.String(), "true")
	assert.Contains(t, warnings.String(), "false")
}

func TestUnrecognizedDirectivesSilentlyIgnored(t *testing.T) {
	lines := []string{
		"// {color:red}",        // unknown key
		"// plain comment",      // not a directive shape
		"// {type:class:extra}", // malformed
		"//{}",                  // malformed
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			r, warnings := warnRenderer(t)
			opts := DefaultOptions()
			before := opts
			r.applyDirective(line, &opts)
			assert.Equal(t, before, opts)
			assert.Empty(t, warnings.String())
		})
	}
}

func TestDirectivePatternWhitespace(t *testing.T) {
	r, _ := warnRenderer(t)
	opts := DefaultOptions()
	r.applyDirective("//  { direction : leftToRight }  ", &opts)
	assert.Equal(t, DirLeftToRight, opts.Dir)
}

func TestDirectiveAppliesToLaterEvaluationOnly(t *testing.T) {
	// A later type directive wins because dispatch resolves the
	// configuration once, after the full scan.
	r, _ := warnRenderer(t)
	opts := DefaultOptions()
	r.applyDirective("// {type:state}", &opts)
	r.applyDirective("// {type:usecase}", &opts)
	assert.Equal(t, TypeUseCase, opts.Type)
	assert.False(t, strings.HasPrefix(string(opts.Type), "state"))
}
