package frame

import (
	"bufio"
	"fmt"
	"io"
)

// maxLineSize is the maximum size of a single stream line (1 MB).
// The default bufio.Scanner limit is 64 KiB, which is too small for
// large events such as tool-call arguments or long completions. If a
// line exceeds this limit the reader returns a wrapped bufio.ErrTooLong
// via the Next() error path.
const maxLineSize = 1 * 1024 * 1024

// LineReader yields raw event-stream lines from an io.Reader, one at a
// time. It performs no classification; feed each returned line to a Parser.
// Reading one line per call is what gives the engine its pull-based,
// one-frame-at-a-time backpressure.
type LineReader struct {
	scanner *bufio.Scanner
}

// NewLineReader creates a LineReader over the given reader. Individual lines
// up to maxLineSize (1 MB) are supported.
func NewLineReader(reader io.Reader) *LineReader {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &LineReader{scanner: scanner}
}

// Next returns the next line without its trailing newline.
// Returns io.EOF when the underlying reader is exhausted.
func (r *LineReader) Next() (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", fmt.Errorf("stream line read error: %w", err)
	}
	return "", io.EOF
}
