package selection

import (
	"fmt"

	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/path"
)

// Point is a cursor location: a rune offset into the text node with Key.
type Point struct {
	Key    string
	Path   path.Path // cached; nil until resolved
	Offset int
}

// NewPoint creates an unresolved point.
func NewPoint(key string, offset int) Point {
	return Point{Key: key, Offset: offset}
}

// IsSet returns true if the point refers to a node.
func (p Point) IsSet() bool {
	return p.Key != ""
}

// MoveTo returns a point at offset in the node with key. The path cache is
// cleared.
func (p Point) MoveTo(key string, offset int) Point {
	return Point{Key: key, Offset: offset}
}

// SetOffset returns a point with a different offset in the same node.
func (p Point) SetOffset(offset int) Point {
	p.Offset = offset
	return p
}

// SetPath returns a point with the path cache replaced. Passing nil forces
// re-resolution on next use.
func (p Point) SetPath(pa path.Path) Point {
	p.Path = pa.Clone()
	return p
}

// Equal reports whether two points address the same location.
// The path cache is ignored.
func (p Point) Equal(other Point) bool {
	return p.Key == other.Key && p.Offset == other.Offset
}

// String returns a string representation of the point.
func (p Point) String() string {
	if !p.IsSet() {
		return "Point(unset)"
	}
	return fmt.Sprintf("Point(%s:%d)", p.Key, p.Offset)
}

// Resolve returns the point with its path recomputed against doc.
// A cached path is kept only if it still addresses the point's key.
func (p Point) Resolve(doc *node.Document) (Point, error) {
	if !p.IsSet() {
		return p, &StalePointError{}
	}
	if p.Path != nil {
		if n, err := node.Get(doc, p.Path); err == nil && n.Key() == p.Key {
			return p, nil
		}
	}
	pa, ok := doc.FindPath(p.Key)
	if !ok {
		return p, &StalePointError{Key: p.Key}
	}
	p.Path = pa
	return p, nil
}

// Normalize resolves the point and makes it address a text node: a point
// on an element moves to the start of its first text, and the offset is
// clamped to the text's length.
func (p Point) Normalize(doc *node.Document) (Point, error) {
	p, err := p.Resolve(doc)
	if err != nil {
		return p, err
	}
	n, err := node.Get(doc, p.Path)
	if err != nil {
		return p, err
	}
	t, ok := n.(*node.Text)
	if !ok {
		first, ok := node.FirstText(n)
		if !ok {
			return p, &StalePointError{Key: p.Key}
		}
		t = first.Node.(*node.Text)
		p = Point{Key: t.Key(), Path: append(p.Path.Clone(), first.Path...), Offset: 0}
	}
	p.Offset = max(0, min(p.Offset, t.Len()))
	return p, nil
}

// Compare orders two points in doc: -1 if a is before b, 1 if after, 0 if
// equal.
func Compare(doc *node.Document, a, b Point) (int, error) {
	a, err := a.Resolve(doc)
	if err != nil {
		return 0, err
	}
	b, err = b.Resolve(doc)
	if err != nil {
		return 0, err
	}
	if c := path.Compare(a.Path, b.Path); c != 0 {
		return c, nil
	}
	switch {
	case a.Offset < b.Offset:
		return -1, nil
	case a.Offset > b.Offset:
		return 1, nil
	default:
		return 0, nil
	}
}
