// Package message collects validation notices produced above the tabular core.
//
// Messages form a tree: a Leaf carries one notice of a given Kind, a List groups
// leaves and other lists. Readers of the tree usually only want the flattened
// leaf text of one kind, which Errors, Warnings and Infos provide.
//
// Code that only needs to report notices should depend on Sink, not on List.
package message

import "strings"

// Kind classifies a notice.
type Kind int

const (
	Error Kind = iota
	Warning
	Info
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Sink accepts notices.
type Sink interface {
	Add(kind Kind, text string)
}

// Message is a node of the message tree.
type Message interface {
	// Text returns the leaf text, or the space-joined text of all children.
	Text() string
	// Composite reports whether the node groups other messages.
	Composite() bool
	// Children returns the direct children of a composite, nil for a leaf.
	Children() []Message
}

// Leaf is a single notice.
type Leaf struct {
	Kind    Kind
	Message string
}

func (l Leaf) Text() string        { return l.Message }
func (l Leaf) Composite() bool     { return false }
func (l Leaf) Children() []Message { return nil }

// List is a composite message. The zero value is an empty list ready to use.
type List struct {
	items []Message
}

// Add appends a leaf notice. It makes *List a Sink.
func (l *List) Add(kind Kind, text string) {
	l.items = append(l.items, Leaf{Kind: kind, Message: text})
}

// Append nests msg in the list. Nil messages are ignored.
func (l *List) Append(msg Message) *List {
	if msg != nil {
		l.items = append(l.items, msg)
	}
	return l
}

// Clear removes all children.
func (l *List) Clear() *List {
	l.items = nil
	return l
}

// Len returns the number of direct children.
func (l *List) Len() int {
	return len(l.items)
}

// Empty reports whether the list has no children.
func (l *List) Empty() bool {
	return len(l.items) == 0
}

func (l *List) Composite() bool { return true }

func (l *List) Children() []Message {
	out := make([]Message, len(l.items))
	copy(out, l.items)
	return out
}

func (l *List) Text() string {
	texts := make([]string, 0, len(l.items))
	for _, m := range l.items {
		texts = append(texts, m.Text())
	}
	return strings.Join(texts, " ")
}

func (l *List) String() string {
	return l.Text()
}

// Flatten returns every leaf below l, depth first.
func (l *List) Flatten() []Leaf {
	var out []Leaf
	flatten(l, &out)
	return out
}

func flatten(m Message, out *[]Leaf) {
	if !m.Composite() {
		if leaf, ok := m.(Leaf); ok {
			*out = append(*out, leaf)
		}
		return
	}
	for _, child := range m.Children() {
		flatten(child, out)
	}
}

// Errors returns the text of all error leaves joined by spaces.
func (l *List) Errors() string { return l.join(Error) }

// Warnings returns the text of all warning leaves joined by spaces.
func (l *List) Warnings() string { return l.join(Warning) }

// Infos returns the text of all info leaves joined by spaces.
func (l *List) Infos() string { return l.join(Info) }

// Of returns the text of every leaf of the given kind.
func (l *List) Of(kind Kind) []string {
	var out []string
	for _, leaf := range l.Flatten() {
		if leaf.Kind == kind {
			out = append(out, leaf.Message)
		}
	}
	return out
}

func (l *List) join(kind Kind) string {
	return strings.Join(l.Of(kind), " ")
}

// HasErrors reports whether any leaf below l is an error.
func (l *List) HasErrors() bool { return l.has(Error) }

// HasWarnings reports whether any leaf below l is a warning.
func (l *List) HasWarnings() bool { return l.has(Warning) }

func (l *List) has(kind Kind) bool {
	for _, leaf := range l.Flatten() {
		if leaf.Kind == kind {
			return true
		}
	}
	return false
}
