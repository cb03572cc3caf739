// Package tokenizer splits one line of delimited text into a row of cells.
//
// The format is the usual CSV dialect with a configurable delimiter and quote:
//
//   - Fields are separated by the delimiter outside of quoted regions.
//   - Surrounding whitespace is trimmed from every field.
//   - A field whose first non-blank character is a quote character is quoted.
//     It ends at the next matching quote followed by the delimiter or the end
//     of the line (blanks in between are allowed). Inside it, a doubled quote
//     is one literal quote and the delimiter has no meaning.
//   - A field that ends up empty is reported as grid.Absent.
//   - A blank line yields a row with zero cells.
package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/JonMunkholm/gridbook/internal/grid"
)

const (
	// DefaultDelimiter separates fields unless configured otherwise.
	DefaultDelimiter = ","

	// DefaultQuote encloses fields that contain the delimiter.
	DefaultQuote = `"`
)

// Tokenizer turns lines into rows. Configure it with New or the setters;
// Split itself never mutates the tokenizer and may be called concurrently.
type Tokenizer struct {
	delimiter string
	quote     string
	m         matcher
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithDelimiter sets the field delimiter. An empty delimiter keeps the default.
func WithDelimiter(delimiter string) Option {
	return func(t *Tokenizer) {
		if delimiter != "" {
			t.delimiter = delimiter
		}
	}
}

// WithQuote sets the quote characters. Each rune in quote opens a quoted
// field that is closed by the same rune. An empty string disables quoting.
func WithQuote(quote string) Option {
	return func(t *Tokenizer) {
		t.quote = quote
	}
}

// New returns a tokenizer using "," and `"` unless overridden by opts.
func New(opts ...Option) *Tokenizer {
	t := &Tokenizer{
		delimiter: DefaultDelimiter,
		quote:     DefaultQuote,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.compile()
	return t
}

// Delimiter returns the current field delimiter.
func (t *Tokenizer) Delimiter() string {
	return t.delimiter
}

// Quote returns the current quote characters, "" when quoting is disabled.
func (t *Tokenizer) Quote() string {
	return t.quote
}

// SetDelimiter changes the delimiter; "" restores the default.
func (t *Tokenizer) SetDelimiter(delimiter string) *Tokenizer {
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	t.delimiter = delimiter
	t.compile()
	return t
}

// SetQuote changes the quote characters; "" disables quoting.
func (t *Tokenizer) SetQuote(quote string) *Tokenizer {
	t.quote = quote
	t.compile()
	return t
}

func (t *Tokenizer) compile() {
	t.m = matcher{delimiter: t.delimiter, quotes: t.quote}
}

// Split tokenizes one line. The line must not contain its line terminator.
func (t *Tokenizer) Split(line string) grid.Row {
	if strings.TrimSpace(line) == "" {
		return grid.Row{}
	}

	var row grid.Row
	pos := 0
	for {
		value, next, more := t.m.field(line, pos)
		row = append(row, toCell(value))
		if !more {
			return row
		}
		pos = next
	}
}

func toCell(value string) grid.Cell {
	if value == "" {
		return grid.Absent
	}
	return grid.Text(value)
}

// matcher holds the compiled delimiter/quote configuration.
type matcher struct {
	delimiter string
	quotes    string
}

func (m matcher) delimiterAt(line string, i int) bool {
	return strings.HasPrefix(line[i:], m.delimiter)
}

// quoteAt returns the quote rune at i and its width, or a zero width.
func (m matcher) quoteAt(line string, i int) (rune, int) {
	if m.quotes == "" || i >= len(line) {
		return 0, 0
	}
	r, size := utf8.DecodeRuneInString(line[i:])
	if !strings.ContainsRune(m.quotes, r) {
		return 0, 0
	}
	return r, size
}

// skipBlank advances past whitespace that is not the start of a delimiter.
func (m matcher) skipBlank(line string, i int) int {
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if !unicode.IsSpace(r) || m.delimiterAt(line, i) {
			break
		}
		i += size
	}
	return i
}

// field reads the field starting at pos. It returns the field text, the
// position after the terminating delimiter, and whether another field follows.
func (m matcher) field(line string, pos int) (string, int, bool) {
	start := m.skipBlank(line, pos)
	if q, size := m.quoteAt(line, start); size > 0 {
		return m.quoted(line, start+size, q)
	}
	return m.plain(line, start)
}

func (m matcher) plain(line string, pos int) (string, int, bool) {
	idx := strings.Index(line[pos:], m.delimiter)
	if idx < 0 {
		return strings.TrimSpace(line[pos:]), len(line), false
	}
	return strings.TrimSpace(line[pos : pos+idx]), pos + idx + len(m.delimiter), true
}

func (m matcher) quoted(line string, pos int, q rune) (string, int, bool) {
	var b strings.Builder
	i := pos
	for i < len(line) {
		r, size := utf8.DecodeRuneInString(line[i:])
		if r != q {
			b.WriteString(line[i : i+size])
			i += size
			continue
		}

		// doubled quote
		if next, nsize := utf8.DecodeRuneInString(line[i+size:]); nsize > 0 && next == q {
			b.WriteRune(q)
			i += size + nsize
			continue
		}

		end := m.skipBlank(line, i+size)
		if end == len(line) {
			return b.String(), len(line), false
		}
		if m.delimiterAt(line, end) {
			return b.String(), end + len(m.delimiter), true
		}

		// a lone quote in the middle of the field is kept literally
		b.WriteRune(q)
		i += size
	}

	// unterminated: the rest of the line belongs to the field
	return b.String(), len(line), false
}
