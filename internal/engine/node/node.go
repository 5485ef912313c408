package node

import (
	"slices"
	"unicode/utf8"
)

// Kind discriminates the node variants.
type Kind int

const (
	// KindDocument is the root container.
	KindDocument Kind = iota
	// KindElement is a block or inline container.
	KindElement
	// KindText is a text leaf.
	KindText
)

// String returns the serialized name of the kind.
func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "document"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// ParseKind parses a serialized kind name.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "document":
		return KindDocument, true
	case "element":
		return KindElement, true
	case "text":
		return KindText, true
	default:
		return 0, false
	}
}

// Node is implemented by *Document, *Element and *Text.
type Node interface {
	Kind() Kind
	Key() string
	isNode()
}

// Parent is a node with children: *Document or *Element.
type Parent interface {
	Node
	// Children returns the child slice. It is shared with the node and
	// must not be modified.
	Children() []Node
	NumChildren() int
	Child(i int) (Node, bool)
	withChildren(children []Node) Parent
}

// Text is a leaf holding a string and a set of marks.
type Text struct {
	key   string
	text  string
	marks MarkSet
}

// NewText creates a text leaf.
func NewText(key, text string, marks ...Mark) *Text {
	return &Text{key: key, text: text, marks: NewMarkSet(marks...)}
}

func (*Text) isNode() {}

// Kind returns KindText.
func (*Text) Kind() Kind { return KindText }

// Key returns the stable key.
func (t *Text) Key() string { return t.key }

// Text returns the string content.
func (t *Text) Text() string { return t.text }

// Len returns the length of the text in runes.
func (t *Text) Len() int { return utf8.RuneCountInString(t.text) }

// Marks returns the text's marks.
func (t *Text) Marks() MarkSet { return t.marks }

// WithKey returns a copy with a different key.
func (t *Text) WithKey(key string) *Text {
	c := *t
	c.key = key
	return &c
}

// WithText returns a copy holding s.
func (t *Text) WithText(s string) *Text {
	c := *t
	c.text = s
	return &c
}

// WithMarks returns a copy holding marks.
func (t *Text) WithMarks(marks MarkSet) *Text {
	c := *t
	c.marks = marks
	return &c
}

// Element is a container node classified as block or inline.
type Element struct {
	key      string
	typ      string
	inline   bool
	void     bool
	data     Data
	children []Node
}

// NewElement creates a block element with the given children.
func NewElement(key, typ string, children ...Node) *Element {
	return &Element{key: key, typ: typ, children: slices.Clone(children)}
}

func (*Element) isNode() {}

// Kind returns KindElement.
func (*Element) Kind() Kind { return KindElement }

// Key returns the stable key.
func (e *Element) Key() string { return e.key }

// Type returns the element's type name.
func (e *Element) Type() string { return e.typ }

// IsInline reports whether the element flows inside a block.
func (e *Element) IsInline() bool { return e.inline }

// IsBlock reports whether the element is a block.
func (e *Element) IsBlock() bool { return !e.inline }

// IsVoid reports whether the element's content is opaque to the cursor.
func (e *Element) IsVoid() bool { return e.void }

// Data returns the element's property bag.
func (e *Element) Data() Data { return e.data }

// Children returns the child slice. Do not modify it.
func (e *Element) Children() []Node { return e.children }

// NumChildren returns the number of children.
func (e *Element) NumChildren() int { return len(e.children) }

// Child returns the child at index i.
func (e *Element) Child(i int) (Node, bool) {
	if i < 0 || i >= len(e.children) {
		return nil, false
	}
	return e.children[i], true
}

func (e *Element) withChildren(children []Node) Parent {
	c := *e
	c.children = children
	return &c
}

// WithChildren returns a copy holding children.
func (e *Element) WithChildren(children ...Node) *Element {
	return e.withChildren(slices.Clone(children)).(*Element)
}

// WithKey returns a copy with a different key.
func (e *Element) WithKey(key string) *Element {
	c := *e
	c.key = key
	return &c
}

// WithType returns a copy with a different type.
func (e *Element) WithType(typ string) *Element {
	c := *e
	c.typ = typ
	return &c
}

// WithInline returns a copy with the inline flag set.
func (e *Element) WithInline(inline bool) *Element {
	c := *e
	c.inline = inline
	return &c
}

// WithVoid returns a copy with the void flag set.
func (e *Element) WithVoid(void bool) *Element {
	c := *e
	c.void = void
	return &c
}

// WithData returns a copy holding data.
func (e *Element) WithData(data Data) *Element {
	c := *e
	c.data = data
	return &c
}

// Document is the root of a tree.
type Document struct {
	key      string
	data     Data
	children []Node
	index    *keyIndex
}

// NewDocument creates a document with the given top-level children.
func NewDocument(key string, children ...Node) *Document {
	return &Document{key: key, children: slices.Clone(children), index: &keyIndex{}}
}

func (*Document) isNode() {}

// Kind returns KindDocument.
func (*Document) Kind() Kind { return KindDocument }

// Key returns the stable key.
func (d *Document) Key() string { return d.key }

// Data returns the document's property bag.
func (d *Document) Data() Data { return d.data }

// Children returns the child slice. Do not modify it.
func (d *Document) Children() []Node { return d.children }

// NumChildren returns the number of children.
func (d *Document) NumChildren() int { return len(d.children) }

// Child returns the child at index i.
func (d *Document) Child(i int) (Node, bool) {
	if i < 0 || i >= len(d.children) {
		return nil, false
	}
	return d.children[i], true
}

func (d *Document) withChildren(children []Node) Parent {
	c := *d
	c.children = children
	c.index = &keyIndex{}
	return &c
}

// WithData returns a copy holding data.
func (d *Document) WithData(data Data) *Document {
	c := *d
	c.data = data
	c.index = &keyIndex{}
	return &c
}
