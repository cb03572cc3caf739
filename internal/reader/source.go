package reader

// source.go turns a byte stream into a sequence of text lines.
//
// Input files come from spreadsheets and legacy exports, so every line source
// applies the same clean-up before the tokenizer sees any text:
//
//   - a leading UTF-8 byte order mark is dropped
//   - single-byte encodings (latin1, windows-1252) are decoded to UTF-8
//   - invalid UTF-8 sequences are replaced with '?'
//   - line terminators (\n, \r\n or a lone \r) are removed

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// MaxLineLength bounds a single input line.
const MaxLineLength = 4 * 1024 * 1024

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LineSource yields the lines of one text source.
type LineSource interface {
	// Next returns the next line without its terminator. ok is false at the
	// end of input or after an error; check Err to tell them apart.
	Next() (line string, ok bool)
	// Err returns the first error that stopped iteration, nil at clean EOF.
	Err() error
	// Line returns the number of lines returned so far.
	Line() int
	// Close releases the underlying source. It is safe to call more than once.
	Close() error
}

// Options configures a line source.
type Options struct {
	// Encoding names the input charset. Empty means UTF-8.
	Encoding string
}

// Encoding resolves a charset name. Names are case-insensitive; nil means the
// input is already UTF-8.
func Encoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "latin9", "iso-8859-15":
		return charmap.ISO8859_15, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "ibm437", "cp437":
		return charmap.CodePage437, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

type lineSource struct {
	closer  io.Closer
	scanner *bufio.Scanner
	utf8    bool
	line    int
	closed  bool
}

// NewLineSource wraps rc. The returned source owns rc and closes it on Close.
// An unknown encoding is reported before anything is read; rc is left open in
// that case.
func NewLineSource(rc io.ReadCloser, opts Options) (LineSource, error) {
	enc, err := Encoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	var r io.Reader = skipBOM(rc)
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	scanner.Split(scanLines)

	return &lineSource{
		closer:  rc,
		scanner: scanner,
		utf8:    enc == nil,
	}, nil
}

// scanLines is bufio.ScanLines extended to old Mac exports that end lines
// with a bare \r. A \r at the end of the buffer waits for one more byte so a
// split \r\n is not read as two terminators.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// bomSkipper drops a leading UTF-8 byte order mark. The check happens on the
// first Read so that constructing a source never touches the input.
type bomSkipper struct {
	br      *bufio.Reader
	checked bool
}

func skipBOM(r io.Reader) io.Reader {
	return &bomSkipper{br: bufio.NewReader(r)}
}

func (b *bomSkipper) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		if head, err := b.br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
			_, _ = b.br.Discard(len(utf8BOM))
		}
	}
	return b.br.Read(p)
}

func (s *lineSource) Next() (string, bool) {
	if s.closed || !s.scanner.Scan() {
		return "", false
	}
	s.line++
	line := s.scanner.Text()
	if s.utf8 {
		line = strings.ToValidUTF8(line, "?")
	}
	return line, true
}

func (s *lineSource) Err() error {
	return s.scanner.Err()
}

func (s *lineSource) Line() int {
	return s.line
}

func (s *lineSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.closer.Close()
}
