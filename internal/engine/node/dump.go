package node

import (
	"strconv"
	"strings"
)

// Dump renders n as a compact single-line string, for logs and tests.
//
//	doc[paragraph["wo" "rd"{bold}] image!void[""]]
func Dump(n Node) string {
	var b strings.Builder
	dump(&b, n)
	return b.String()
}

func dump(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Text:
		b.WriteString(strconv.Quote(n.text))
		if !n.marks.IsEmpty() {
			b.WriteString(n.marks.String())
		}
		return
	case *Document:
		b.WriteString("doc")
	case *Element:
		b.WriteString(n.typ)
		if n.inline {
			b.WriteString("!inline")
		}
		if n.void {
			b.WriteString("!void")
		}
	}
	b.WriteByte('[')
	for i, c := range n.(Parent).Children() {
		if i > 0 {
			b.WriteByte(' ')
		}
		dump(b, c)
	}
	b.WriteByte(']')
}

// Equal reports whether a and b are structurally identical, keys included.
func Equal(a, b Node) bool {
	if a.Kind() != b.Kind() || a.Key() != b.Key() {
		return false
	}
	switch a := a.(type) {
	case *Text:
		bt := b.(*Text)
		return a.text == bt.text && a.marks.Equal(bt.marks)
	case *Element:
		be := b.(*Element)
		if a.typ != be.typ || a.inline != be.inline || a.void != be.void || !a.data.Equal(be.data) {
			return false
		}
	case *Document:
		if !a.data.Equal(b.(*Document).data) {
			return false
		}
	}
	ac, bc := a.(Parent).Children(), b.(Parent).Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}
