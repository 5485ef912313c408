package node

import (
	"errors"
	"fmt"
)

// ErrInvalidProperties indicates properties that do not apply to a node.
var ErrInvalidProperties = errors.New("invalid properties")

// Properties is a shallow, partial update for a node. Nil fields are left
// untouched; Data entries are merged key by key. Marks replaces a text's
// whole mark set.
type Properties struct {
	Type   *string
	Inline *bool
	Void   *bool
	Data   Data
	Marks  *MarkSet
}

// IsEmpty returns true if the update changes nothing.
func (p Properties) IsEmpty() bool {
	return p.Type == nil && p.Inline == nil && p.Void == nil && len(p.Data) == 0 && p.Marks == nil
}

func (p Properties) hasElementFields() bool {
	return p.Type != nil || p.Inline != nil || p.Void != nil
}

// ApplyProperties returns n with p merged onto it.
// Texts accept only Marks; documents accept only Data.
func ApplyProperties(n Node, p Properties) (Node, error) {
	if p.IsEmpty() {
		return n, nil
	}
	switch n := n.(type) {
	case *Element:
		if p.Marks != nil {
			return nil, fmt.Errorf("%w: elements have no marks", ErrInvalidProperties)
		}
		e := n
		if p.Type != nil {
			e = e.WithType(*p.Type)
		}
		if p.Inline != nil {
			e = e.WithInline(*p.Inline)
		}
		if p.Void != nil {
			e = e.WithVoid(*p.Void)
		}
		if len(p.Data) > 0 {
			e = e.WithData(e.data.Merge(p.Data))
		}
		return e, nil
	case *Document:
		if p.hasElementFields() || p.Marks != nil {
			return nil, fmt.Errorf("%w: document accepts only data", ErrInvalidProperties)
		}
		return n.WithData(n.data.Merge(p.Data)), nil
	case *Text:
		if p.hasElementFields() || len(p.Data) > 0 {
			return nil, fmt.Errorf("%w: text accepts only marks", ErrInvalidProperties)
		}
		return n.WithMarks(*p.Marks), nil
	default:
		return nil, fmt.Errorf("%w: unknown node kind %s", ErrInvalidProperties, n.Kind())
	}
}

// CaptureProperties returns the current values of n for every field that p
// would change. Applying the result undoes ApplyProperties(n, p).
func CaptureProperties(n Node, p Properties) Properties {
	var old Properties
	var data Data
	switch n := n.(type) {
	case *Element:
		if p.Type != nil {
			t := n.typ
			old.Type = &t
		}
		if p.Inline != nil {
			b := n.inline
			old.Inline = &b
		}
		if p.Void != nil {
			b := n.void
			old.Void = &b
		}
		data = n.data
	case *Document:
		data = n.data
	case *Text:
		if p.Marks != nil {
			m := n.marks
			old.Marks = &m
		}
	}
	if len(p.Data) > 0 {
		old.Data = make(Data, len(p.Data))
		for k := range p.Data {
			old.Data[k] = data[k]
		}
	}
	return old
}

// Diff returns the properties that turn a into b. Both nodes must be of
// the same kind; keys and children are not compared.
func Diff(a, b Node) Properties {
	var p Properties
	switch a := a.(type) {
	case *Element:
		be := b.(*Element)
		if a.typ != be.typ {
			p.Type = String(be.typ)
		}
		if a.inline != be.inline {
			p.Inline = Bool(be.inline)
		}
		if a.void != be.void {
			p.Void = Bool(be.void)
		}
		p.Data = diffData(a.data, be.data)
	case *Document:
		p.Data = diffData(a.data, b.(*Document).data)
	case *Text:
		bt := b.(*Text)
		if !a.marks.Equal(bt.marks) {
			m := bt.marks
			p.Marks = &m
		}
	}
	return p
}

func diffData(a, b Data) Data {
	var out Data
	set := func(k string, v any) {
		if out == nil {
			out = make(Data)
		}
		out[k] = v
	}
	for k, v := range b {
		if av, ok := a[k]; !ok || !(Data{k: av}).Equal(Data{k: v}) {
			set(k, v)
		}
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			set(k, nil)
		}
	}
	return out
}

// String returns a pointer to s, for building Properties.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building Properties.
func Bool(b bool) *bool { return &b }
