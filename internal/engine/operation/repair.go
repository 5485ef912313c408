package operation

import (
	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/selection"
	"github.com/dshills/richtext/internal/engine/value"
)

// clearPaths drops every cached path. Structural edits shift paths in
// ways keyed points do not need to track; the cache is rebuilt lazily.
func clearPaths(v value.Value) value.Value {
	return v.MapPoints(func(p selection.Point) selection.Point {
		return p.SetPath(nil)
	})
}

// mapKeyed applies fn to the points sitting in the text with key.
func mapKeyed(v value.Value, key string, fn func(selection.Point) selection.Point) value.Value {
	return v.MapPoints(func(p selection.Point) selection.Point {
		if p.Key != key {
			return p
		}
		return fn(p)
	})
}

// relocation says where a point inside a removed subtree goes.
type relocation struct {
	removed map[string]bool
	prev    *node.Text
	next    *node.Text
}

func newRelocation(doc *node.Document, e node.Entry) (*relocation, error) {
	r := &relocation{removed: map[string]bool{e.Node.Key(): true}}
	for it := node.Descendants(e.Node, node.IterOptions{}); it.Next(); {
		r.removed[it.Entry().Node.Key()] = true
	}
	prev, ok, err := node.PreviousText(doc, e.Path)
	if err != nil {
		return nil, err
	}
	if ok {
		r.prev = prev.Node.(*node.Text)
	}
	next, ok, err := node.NextText(doc, e.Path)
	if err != nil {
		return nil, err
	}
	if ok {
		r.next = next.Node.(*node.Text)
	}
	return r, nil
}

// point moves p out of the removed subtree. The second result is false
// when there is nowhere left to go.
func (r *relocation) point(p selection.Point) (selection.Point, bool) {
	if !r.removed[p.Key] {
		return p.SetPath(nil), true
	}
	switch {
	case r.prev != nil:
		return p.MoveTo(r.prev.Key(), r.prev.Len()), true
	case r.next != nil:
		return p.MoveTo(r.next.Key(), 0), true
	default:
		return selection.Point{}, false
	}
}

func (r *relocation) apply(v value.Value) value.Value {
	return v.MapRanges(func(rg selection.Range) selection.Range {
		anchor, ok := r.point(rg.Anchor)
		if !ok {
			return rg.Unset()
		}
		focus, ok := r.point(rg.Focus)
		if !ok {
			return rg.Unset()
		}
		rg.Anchor, rg.Focus = anchor, focus
		return rg
	})
}
