package diagram

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	apperrors "github.com/skillsenselab/yumlsvg/errors"
)

// maxLineSize bounds a single instruction line on the streaming path.
const maxLineSize = 1024 * 1024

// Input is a diagram text source. Buffered and streaming sources reduce
// to the same per-line handling, so both delivery modes yield identical
// results for identical logical line sequences.
type Input struct {
	text     string
	reader   io.Reader
	buffered bool
}

// FromString wraps a fully materialized text payload.
func FromString(s string) Input {
	return Input{text: s, buffered: true}
}

// FromBytes wraps a fully materialized byte payload.
func FromBytes(b []byte) Input {
	return Input{text: string(b), buffered: true}
}

// FromReader wraps a streaming source. Lines are delivered strictly in
// read order; a read error rejects the whole render as a stream error.
func FromReader(r io.Reader) Input {
	return Input{reader: r}
}

// isLineBreak matches carriage returns and line feeds.
func isLineBreak(r rune) bool { return r == '\r' || r == '\n' }

// scanBreaks is a bufio.SplitFunc splitting on CR or LF, matching the
// buffered path's split behavior.
func scanBreaks(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// forEachLine dispatches every line of the source to fn, in source order,
// never concurrently.
func (in Input) forEachLine(fn func(line string)) error {
	if in.buffered {
		for _, line := range strings.FieldsFunc(in.text, isLineBreak) {
			fn(line)
		}
		return nil
	}

	scanner := bufio.NewScanner(in.reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	scanner.Split(scanBreaks)
	for scanner.Scan() {
		fn(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return apperrors.Stream(err)
	}
	return nil
}
