package diagram

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/skillsenselab/yumlsvg/errors"
	"github.com/skillsenselab/yumlsvg/layout"
	"github.com/skillsenselab/yumlsvg/logger"
)

// stubEngine is a deterministic layout engine: it echoes the themed DOT
// source inside an SVG comment, prefixed with the prolog Graphviz emits.
type stubEngine struct {
	calls int32
	err   error
}

func (s *stubEngine) Render(_ context.Context, dotSrc string, _ layout.EngineOptions, _ layout.RenderOptions) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return "", s.err
	}
	return "<?xml version=\"1.0\"?>\n<svg xmlns=\"http://www.w3.org/2000/svg\"><!--\n" + dotSrc + "\n--></svg>", nil
}

func testRenderer(t *testing.T) (*Renderer, *stubEngine) {
	t.Helper()
	engine := &stubEngine{}
	var buf bytes.Buffer
	return New(WithEngine(engine), WithLogger(logger.NewWriter(&buf))), engine
}

func TestEmptyInputReturnsMinimalDocument(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"   \n\t\n",
		"// {type:activity}\n// {direction:leftToRight}\n",
		"// just a comment",
	}
	for _, input := range inputs {
		r, engine := testRenderer(t)
		out, err := r.RenderString(context.Background(), input, DefaultRequest())
		require.NoError(t, err)
		assert.Equal(t, EmptyDocument, out)
		assert.Zero(t, engine.calls, "no collaborator may run for empty input")
	}

	// Independent of options.
	r, _ := testRenderer(t)
	req := Request{Options: Options{Dir: DirRightToLeft, Type: TypeSequence, IsDark: true}}
	out, err := r.RenderString(context.Background(), "// {generate:true}", req)
	require.NoError(t, err)
	assert.Equal(t, EmptyDocument, out)
}

func TestUnknownTypeRejected(t *testing.T) {
	r, engine := testRenderer(t)
	req := Request{Options: Options{Dir: DirTopDown, Type: "flowchart"}}

	_, err := r.RenderString(context.Background(), "[A]->[B]", req)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidDiagramType))
	assert.Contains(t, err.Error(), "flowchart")
	assert.Zero(t, engine.calls)
}

func TestMissingTypeRejected(t *testing.T) {
	r, _ := testRenderer(t)
	// A zero Options value bypasses defaulting entirely.
	_, err := r.RenderString(context.Background(), "[A]->[B]", Request{})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeMissingTypeDirective))
}

func TestClassRenderGoesThroughAssembly(t *testing.T) {
	r, engine := testRenderer(t)
	out, err := r.RenderString(context.Background(), "[Customer]->[Order]", DefaultRequest())
	require.NoError(t, err)

	assert.Equal(t, int32(1), engine.calls)
	// The prolog the engine emits is stripped by post-processing.
	assert.True(t, strings.HasPrefix(out, "<svg"))
	// The themed DOT reached the engine with the header applied.
	assert.Contains(t, out, `bgcolor="transparent"`)
	assert.Contains(t, out, "Customer")
}

func TestTypeDirectiveSelectsGrammar(t *testing.T) {
	r, engine := testRenderer(t)
	src := "// {type:sequence}\n[Client]request->[Server]"
	out, err := r.RenderString(context.Background(), src, DefaultRequest())
	require.NoError(t, err)

	assert.Zero(t, engine.calls, "sequence must bypass the layout engine")
	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg"`))
	assert.Contains(t, out, "request")
}

func TestSequenceBypassesAssemblyEntirely(t *testing.T) {
	r, engine := testRenderer(t)
	req := Request{Options: Options{Dir: DirTopDown, Type: TypeSequence}}
	out, err := r.RenderString(context.Background(), "[A]msg->[B]", req)
	require.NoError(t, err)
	assert.Zero(t, engine.calls)
	// No post-processing either: a dark-looking palette stays untouched.
	assert.NotContains(t, out, "<?xml")
}

func TestGenerateDirectiveDoesNotChangeOutput(t *testing.T) {
	base := "[Customer]->[Order]"
	withGenerate := "// {generate:true}\n" + base

	r1, _ := testRenderer(t)
	r2, _ := testRenderer(t)
	out1, err := r1.RenderString(context.Background(), base, DefaultRequest())
	require.NoError(t, err)
	out2, err := r2.RenderString(context.Background(), withGenerate, DefaultRequest())
	require.NoError(t, err)
	assert.Equal(t, out1, out2)
}

func TestGenerateDirectiveWarns(t *testing.T) {
	var buf bytes.Buffer
	engine := &stubEngine{}
	r := New(WithEngine(engine), WithLogger(logger.NewWriter(&buf)))

	_, err := r.RenderString(context.Background(), "// {generate:true}\n[A]->[B]", DefaultRequest())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "deprecated")
}

func TestRenderErrorPropagates(t *testing.T) {
	engine := &stubEngine{err: errors.New("layout exploded")}
	var buf bytes.Buffer
	r := New(WithEngine(engine), WithLogger(logger.NewWriter(&buf)))

	_, err := r.RenderString(context.Background(), "[A]->[B]", DefaultRequest())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRender))
	assert.Contains(t, err.Error(), "layout exploded")
}

func TestGrammarErrorPropagates(t *testing.T) {
	r, engine := testRenderer(t)
	_, err := r.RenderString(context.Background(), "[Broken", DefaultRequest())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeGrammar))
	assert.Zero(t, engine.calls)
}

// failReader delivers some content and then fails.
type failReader struct {
	content string
	err     error
	read    bool
}

func (f *failReader) Read(p []byte) (int, error) {
	if !f.read {
		f.read = true
		return copy(p, f.content), nil
	}
	return 0, f.err
}

func TestStreamErrorRejectsRender(t *testing.T) {
	r, _ := testRenderer(t)
	src := &failReader{content: "[A]->[B]\n", err: errors.New("connection reset")}

	_, err := r.Render(context.Background(), FromReader(src), DefaultRequest())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeStream))
	assert.Contains(t, err.Error(), "connection reset")
}

func TestBufferedAndStreamingAreByteIdentical(t *testing.T) {
	src := strings.Join([]string{
		"// {type:class}",
		"// {direction:leftToRight}",
		"[Customer|name;phone|save()]",
		"",
		"[Customer]<>1-0..*[Order]",
		"[Order]-.->[note: nightly batch {bg:cornsilk}]",
	}, "\n")
	req := Request{Options: Options{Dir: DirTopDown, Type: TypeClass, IsDark: true}}

	r1, _ := testRenderer(t)
	buffered, err := r1.RenderString(context.Background(), src, req)
	require.NoError(t, err)

	r2, _ := testRenderer(t)
	streamed, err := r2.Render(context.Background(), FromReader(strings.NewReader(src)), req)
	require.NoError(t, err)

	if diff := cmp.Diff(buffered, streamed); diff != "" {
		t.Fatalf("buffered vs streaming mismatch (-buffered +streamed):\n%s", diff)
	}

	// CRLF and CR line breaks are equivalent to LF.
	r3, _ := testRenderer(t)
	crlf, err := r3.RenderString(context.Background(), strings.ReplaceAll(src, "\n", "\r\n"), req)
	require.NoError(t, err)
	assert.Equal(t, buffered, crlf)
}

func TestDarkSequenceMatchesGolden(t *testing.T) {
	src := strings.Join([]string{
		"// {type:sequence}",
		"[Client]request->[Server]",
		"[Server]response-.->[Client]",
	}, "\n")
	req := Request{Options: Options{Dir: DirTopDown, Type: TypeClass, IsDark: true}}

	r, _ := testRenderer(t)
	got, err := r.RenderString(context.Background(), src, req)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join("testdata", "sequence_dark.svg"))
	require.NoError(t, err)
	want := strings.TrimRight(string(data), "\n")

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("golden mismatch (-want +got):\n%s", diff)
	}
}

func TestDirectiveAfterContentStillAppliesToDispatch(t *testing.T) {
	// Dispatch resolves the type once, after the full scan, so a trailing
	// type directive still selects the grammar.
	r, engine := testRenderer(t)
	src := "[A]msg->[B]\n// {type:sequence}"
	out, err := r.RenderString(context.Background(), src, DefaultRequest())
	require.NoError(t, err)
	assert.Zero(t, engine.calls)
	assert.Contains(t, out, "msg")
}

func TestInstructionOrderPreserved(t *testing.T) {
	r, _ := testRenderer(t)
	req := Request{Options: Options{Dir: DirTopDown, Type: TypeSequence}}
	out, err := r.RenderString(context.Background(), "[A]first->[B]\n[A]second->[B]", req)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "first"), strings.Index(out, "second"))
}

var _ io.Reader = (*failReader)(nil)
