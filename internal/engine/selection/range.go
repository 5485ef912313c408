package selection

import (
	"fmt"

	"github.com/dshills/richtext/internal/engine/node"
)

// Range is an anchor/focus pair of points.
type Range struct {
	Anchor Point
	Focus  Point
	// Marks, when non-nil, overrides the marks computed for the next
	// insertion at a collapsed range.
	Marks *node.MarkSet
}

// NewRange creates a range from anchor to focus.
func NewRange(anchor, focus Point) Range {
	return Range{Anchor: anchor, Focus: focus}
}

// Collapsed creates a range with both points at p.
func Collapsed(p Point) Range {
	return Range{Anchor: p, Focus: p}
}

// IsSet returns true if both points refer to nodes.
func (r Range) IsSet() bool {
	return r.Anchor.IsSet() && r.Focus.IsSet()
}

// IsUnset returns true for the inert range.
func (r Range) IsUnset() bool {
	return !r.IsSet()
}

// Unset returns the inert range.
func (r Range) Unset() Range {
	return Range{}
}

// IsCollapsed returns true if anchor and focus are the same location.
func (r Range) IsCollapsed() bool {
	return r.Anchor.Equal(r.Focus)
}

// IsExpanded returns true if the range covers content.
func (r Range) IsExpanded() bool {
	return !r.IsCollapsed()
}

// UpdatePoints applies fn to both points.
func (r Range) UpdatePoints(fn func(Point) Point) Range {
	r.Anchor = fn(r.Anchor)
	r.Focus = fn(r.Focus)
	return r
}

// WithMarks returns the range with a marks override. Nil clears it.
func (r Range) WithMarks(marks *node.MarkSet) Range {
	r.Marks = marks
	return r
}

// MoveAnchorTo returns the range with the anchor moved.
func (r Range) MoveAnchorTo(key string, offset int) Range {
	r.Anchor = r.Anchor.MoveTo(key, offset)
	return r
}

// MoveFocusTo returns the range with the focus moved.
func (r Range) MoveFocusTo(key string, offset int) Range {
	r.Focus = r.Focus.MoveTo(key, offset)
	return r
}

// MoveTo returns a range collapsed at offset in key.
func (r Range) MoveTo(key string, offset int) Range {
	p := NewPoint(key, offset)
	r.Anchor, r.Focus = p, p
	return r
}

// CollapseToAnchor collapses the range onto its anchor.
func (r Range) CollapseToAnchor() Range {
	r.Focus = r.Anchor
	return r
}

// CollapseToFocus collapses the range onto its focus.
func (r Range) CollapseToFocus() Range {
	r.Anchor = r.Focus
	return r
}

// Flip swaps anchor and focus.
func (r Range) Flip() Range {
	r.Anchor, r.Focus = r.Focus, r.Anchor
	return r
}

// Resolve resolves both points against doc.
func (r Range) Resolve(doc *node.Document) (Range, error) {
	var err error
	if r.Anchor, err = r.Anchor.Resolve(doc); err != nil {
		return r, err
	}
	if r.Focus, err = r.Focus.Resolve(doc); err != nil {
		return r, err
	}
	return r, nil
}

// IsBackward reports whether the focus comes before the anchor.
func (r Range) IsBackward(doc *node.Document) (bool, error) {
	c, err := Compare(doc, r.Anchor, r.Focus)
	if err != nil {
		return false, err
	}
	return c > 0, nil
}

// Edges returns the range's points in document order, resolved.
func (r Range) Edges(doc *node.Document) (start, end Point, err error) {
	r, err = r.Resolve(doc)
	if err != nil {
		return Point{}, Point{}, err
	}
	backward, err := r.IsBackward(doc)
	if err != nil {
		return Point{}, Point{}, err
	}
	if backward {
		return r.Focus, r.Anchor, nil
	}
	return r.Anchor, r.Focus, nil
}

// CollapseToStart collapses the range onto its first point in doc.
func (r Range) CollapseToStart(doc *node.Document) (Range, error) {
	start, _, err := r.Edges(doc)
	if err != nil {
		return r, err
	}
	r.Anchor, r.Focus = start, start
	return r, nil
}

// CollapseToEnd collapses the range onto its last point in doc.
func (r Range) CollapseToEnd(doc *node.Document) (Range, error) {
	_, end, err := r.Edges(doc)
	if err != nil {
		return r, err
	}
	r.Anchor, r.Focus = end, end
	return r, nil
}

// Equal reports whether two ranges have equal points and marks.
func (r Range) Equal(other Range) bool {
	if !r.Anchor.Equal(other.Anchor) || !r.Focus.Equal(other.Focus) {
		return false
	}
	if (r.Marks == nil) != (other.Marks == nil) {
		return false
	}
	return r.Marks == nil || r.Marks.Equal(*other.Marks)
}

// String returns a string representation of the range.
func (r Range) String() string {
	if r.IsUnset() {
		return "Range(unset)"
	}
	if r.IsCollapsed() {
		return fmt.Sprintf("Range(%s:%d)", r.Anchor.Key, r.Anchor.Offset)
	}
	return fmt.Sprintf("Range(%s:%d→%s:%d)", r.Anchor.Key, r.Anchor.Offset, r.Focus.Key, r.Focus.Offset)
}

// Annotation is a named range tracked independently of the selection.
type Annotation struct {
	Key  string
	Type string
	Data node.Data
	Range
}

// WithRange returns the annotation covering r.
func (a Annotation) WithRange(r Range) Annotation {
	a.Range = r
	return a
}
