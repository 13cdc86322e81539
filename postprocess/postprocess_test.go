package postprocess

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripProlog(t *testing.T) {
	in := `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
<svg width="8pt"><g/></svg>`

	p, err := New(false)
	require.NoError(t, err)
	out, err := p.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, `<svg width="8pt"><g/></svg>`, out)
}

func TestDarkPaletteSwap(t *testing.T) {
	p, err := New(true)
	require.NoError(t, err)

	out, err := p.Apply(`<svg><rect fill="white" stroke="black"/><path stroke="#000000" fill="#ffffff"/></svg>`)
	require.NoError(t, err)
	assert.Contains(t, out, `fill="black" stroke="white"`)
	assert.Contains(t, out, `stroke="#ffffff" fill="#000000"`)
}

func TestLightThemeLeavesPaletteAlone(t *testing.T) {
	p, err := New(false)
	require.NoError(t, err)
	in := `<svg><rect fill="white" stroke="black"/></svg>`
	out, err := p.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEmbedLocalImage(t *testing.T) {
	p, err := New(false)
	require.NoError(t, err)
	payload := []byte{0x89, 0x50, 0x4e, 0x47}
	p.readFile = func(path string) ([]byte, error) {
		assert.Equal(t, "logo.png", path)
		return payload, nil
	}

	out, err := p.Apply(`<svg><image xlink:href="logo.png" width="10"/></svg>`)
	require.NoError(t, err)
	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)
	assert.Contains(t, out, want)
}

func TestEmbedSkipsRemoteAndDataRefs(t *testing.T) {
	p, err := New(false)
	require.NoError(t, err)
	p.readFile = func(string) ([]byte, error) {
		t.Fatal("readFile must not be called")
		return nil, nil
	}

	in := `<svg><image href="https://example.com/a.png"/><image href="data:image/png;base64,AAAA"/></svg>`
	out, err := p.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEmbedLeavesUnreadableRefs(t *testing.T) {
	p, err := New(false)
	require.NoError(t, err)
	p.readFile = func(string) ([]byte, error) {
		return nil, errors.New("no such file")
	}

	in := `<svg><image href="missing.png"/></svg>`
	out, err := p.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestApplyDeterministic(t *testing.T) {
	p, err := New(true)
	require.NoError(t, err)
	in := `<svg><rect fill="black"/></svg>`
	first, err := p.Apply(in)
	require.NoError(t, err)
	second, err := p.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
