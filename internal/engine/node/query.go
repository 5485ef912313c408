package node

import (
	"strings"
	"unicode/utf8"

	"github.com/dshills/richtext/internal/engine/path"
)

// Entry pairs a node with its path from the traversal root.
type Entry struct {
	Node Node
	Path path.Path
}

// Get returns the node at p below root.
func Get(root Node, p path.Path) (Node, error) {
	n := root
	for i, idx := range p {
		parent, ok := n.(Parent)
		if !ok {
			return nil, notFound(p)
		}
		child, ok := parent.Child(idx)
		if !ok {
			return nil, notFound(p[:i+1])
		}
		n = child
	}
	return n, nil
}

// GetText returns the text leaf at p.
func GetText(root Node, p path.Path) (*Text, error) {
	n, err := Get(root, p)
	if err != nil {
		return nil, err
	}
	t, ok := n.(*Text)
	if !ok {
		return nil, notFound(p)
	}
	return t, nil
}

// GetParent returns the parent of the node at p.
func GetParent(root Node, p path.Path) (Parent, error) {
	if len(p) == 0 {
		return nil, notFound(p)
	}
	if _, err := Get(root, p); err != nil {
		return nil, err
	}
	n, err := Get(root, p[:len(p)-1])
	if err != nil {
		return nil, err
	}
	return n.(Parent), nil
}

// Ancestors returns the entries from root down to the parent of p.
func Ancestors(root Node, p path.Path) ([]Entry, error) {
	if _, err := Get(root, p); err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(p))
	n := root
	for i := 0; i < len(p); i++ {
		out = append(out, Entry{Node: n, Path: p[:i].Clone()})
		n, _ = n.(Parent).Child(p[i])
	}
	return out, nil
}

// closest walks the ancestors of p from nearest to root and returns the
// first element matching match.
func closest(root Node, p path.Path, match func(*Element) bool) (Entry, bool, error) {
	ancestors, err := Ancestors(root, p)
	if err != nil {
		return Entry{}, false, err
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if e, ok := ancestors[i].Node.(*Element); ok && match(e) {
			return ancestors[i], true, nil
		}
	}
	return Entry{}, false, nil
}

// ClosestBlock returns the nearest block ancestor of p.
func ClosestBlock(root Node, p path.Path) (Entry, bool, error) {
	return closest(root, p, (*Element).IsBlock)
}

// ClosestInline returns the nearest inline ancestor of p.
func ClosestInline(root Node, p path.Path) (Entry, bool, error) {
	return closest(root, p, (*Element).IsInline)
}

// FurthestVoid returns the outermost void element on the way to p,
// including the node at p itself.
func FurthestVoid(root Node, p path.Path) (Entry, bool, error) {
	if _, err := Get(root, p); err != nil {
		return Entry{}, false, err
	}
	n := root
	for i := 0; i <= len(p); i++ {
		if e, ok := n.(*Element); ok && e.void {
			return Entry{Node: n, Path: p[:i].Clone()}, true, nil
		}
		if i < len(p) {
			n, _ = n.(Parent).Child(p[i])
		}
	}
	return Entry{}, false, nil
}

// IsInVoid reports whether p is a void element or lies inside one.
func IsInVoid(root Node, p path.Path) bool {
	_, ok, err := FurthestVoid(root, p)
	return err == nil && ok
}

// TextOf returns the concatenated text of n. Void subtrees contribute
// nothing.
func TextOf(n Node) string {
	switch n := n.(type) {
	case *Text:
		return n.text
	case *Element:
		if n.void {
			return ""
		}
	}
	parent, ok := n.(Parent)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, c := range parent.Children() {
		b.WriteString(TextOf(c))
	}
	return b.String()
}

// Length returns the rune length of TextOf(n).
func Length(n Node) int {
	switch n := n.(type) {
	case *Text:
		return n.Len()
	case *Element:
		if n.void {
			return 0
		}
	}
	parent, ok := n.(Parent)
	if !ok {
		return 0
	}
	total := 0
	for _, c := range parent.Children() {
		total += Length(c)
	}
	return total
}

// Offset returns the number of characters of root's text that precede the
// node at rel, a path relative to root.
func Offset(root Node, rel path.Path) (int, error) {
	if _, err := Get(root, rel); err != nil {
		return 0, err
	}
	offset := 0
	n := root
	for _, idx := range rel {
		if e, ok := n.(*Element); ok && e.void {
			break
		}
		parent := n.(Parent)
		for i := 0; i < idx; i++ {
			c, _ := parent.Child(i)
			offset += Length(c)
		}
		n, _ = parent.Child(idx)
	}
	return offset, nil
}

// FirstText returns the first text leaf of n, with a path relative to n.
func FirstText(n Node) (Entry, bool) {
	it := Texts(n, IterOptions{})
	if !it.Next() {
		if t, ok := n.(*Text); ok {
			return Entry{Node: t, Path: path.Root()}, true
		}
		return Entry{}, false
	}
	return it.Entry(), true
}

// LastText returns the last text leaf of n, with a path relative to n.
func LastText(n Node) (Entry, bool) {
	it := Texts(n, IterOptions{Reverse: true})
	if !it.Next() {
		if t, ok := n.(*Text); ok {
			return Entry{Node: t, Path: path.Root()}, true
		}
		return Entry{}, false
	}
	return it.Entry(), true
}

// NextText returns the first text leaf after the node at p and outside its
// subtree.
func NextText(root Node, p path.Path) (Entry, bool, error) {
	if _, err := Get(root, p); err != nil {
		return Entry{}, false, err
	}
	it := Texts(root, IterOptions{From: p})
	for it.Next() {
		e := it.Entry()
		if path.IsAncestorOrEqual(p, e.Path) {
			continue
		}
		return e, true, nil
	}
	return Entry{}, false, nil
}

// PreviousText returns the last text leaf before the node at p and outside
// its subtree.
func PreviousText(root Node, p path.Path) (Entry, bool, error) {
	if _, err := Get(root, p); err != nil {
		return Entry{}, false, err
	}
	it := Texts(root, IterOptions{To: p, Reverse: true})
	for it.Next() {
		e := it.Entry()
		if path.IsAncestorOrEqual(p, e.Path) {
			continue
		}
		return e, true, nil
	}
	return Entry{}, false, nil
}

// RuneLen returns the length of s in runes.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// HasDescendant reports whether a node strictly below root has key.
func HasDescendant(root Node, key string) bool {
	if d, ok := root.(*Document); ok {
		p, found := d.FindPath(key)
		return found && len(p) > 0
	}
	it := Descendants(root, IterOptions{})
	for it.Next() {
		if it.Entry().Node.Key() == key {
			return true
		}
	}
	return false
}
