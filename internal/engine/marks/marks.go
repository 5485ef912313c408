// Package marks computes the formatting active at the selection: the
// marks a toolbar shows as on, and the marks the next insertion takes.
package marks

import (
	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/path"
	"github.com/dshills/richtext/internal/engine/selection"
	"github.com/dshills/richtext/internal/engine/value"
)

// Active returns the marks active at v's selection.
//
// An explicit marks override on the selection wins. A collapsed selection
// at the start of a text continues the formatting of the previous text in
// the same block. An expanded selection folds over every text it touches:
// by intersection, or by union when union is set.
func Active(v value.Value, union bool) (node.MarkSet, error) {
	sel := v.Selection()
	if sel.Marks != nil {
		return *sel.Marks, nil
	}
	if sel.IsUnset() {
		return node.MarkSet{}, nil
	}
	doc := v.Document()
	if sel.IsCollapsed() {
		p, err := sel.Anchor.Normalize(doc)
		if err != nil {
			return node.MarkSet{}, err
		}
		return atPoint(doc, p)
	}
	start, end, err := sel.Edges(doc)
	if err != nil {
		return node.MarkSet{}, err
	}
	if start, err = start.Normalize(doc); err != nil {
		return node.MarkSet{}, err
	}
	if end, err = end.Normalize(doc); err != nil {
		return node.MarkSet{}, err
	}
	return inRange(doc, start, end, union), nil
}

func atPoint(doc *node.Document, p selection.Point) (node.MarkSet, error) {
	t, err := node.GetText(doc, p.Path)
	if err != nil {
		return node.MarkSet{}, err
	}
	if p.Offset > 0 {
		return t.Marks(), nil
	}
	prev, ok, err := node.PreviousText(doc, p.Path)
	if err != nil || !ok {
		return t.Marks(), err
	}
	if sameBlock(doc, prev.Path, p.Path) {
		return prev.Node.(*node.Text).Marks(), nil
	}
	return t.Marks(), nil
}

func sameBlock(doc *node.Document, a, b path.Path) bool {
	ba, okA, errA := node.ClosestBlock(doc, a)
	bb, okB, errB := node.ClosestBlock(doc, b)
	if errA != nil || errB != nil || !okA || !okB {
		return false
	}
	return path.Equal(ba.Path, bb.Path)
}

// inRange folds the marks of the texts between start and end. Texts the
// range only touches at an edge, at the very end of the first or offset 0
// of the last, do not count.
func inRange(doc *node.Document, start, end selection.Point, union bool) node.MarkSet {
	var texts []*node.Text
	for it := node.Texts(doc, node.IterOptions{From: start.Path, To: end.Path}); it.Next(); {
		texts = append(texts, it.Entry().Node.(*node.Text))
	}
	if len(texts) == 0 {
		return node.MarkSet{}
	}
	i, j := 0, len(texts)-1
	for endOffset := end.Offset; i < j && endOffset == 0; {
		j--
		endOffset = texts[j].Len()
	}
	for startOffset := start.Offset; i < j && startOffset == texts[i].Len(); {
		i++
		startOffset = 0
	}

	acc := texts[i].Marks()
	for _, t := range texts[i+1 : j+1] {
		if union {
			acc = acc.Union(t.Marks())
			continue
		}
		if acc = acc.Intersect(t.Marks()); acc.IsEmpty() {
			break
		}
	}
	return acc
}
