package operation

import (
	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/path"
	"github.com/dshills/richtext/internal/engine/selection"
	"github.com/dshills/richtext/internal/engine/value"
)

// locate finds the text holding a block-relative character offset. At a
// boundary between two texts the earlier one wins. Void content is
// skipped.
func locate(block *node.Element, offset int) (path.Path, int, bool) {
	if offset < 0 {
		return nil, 0, false
	}
	acc := 0
	for it := node.Texts(block, node.IterOptions{}); it.Next(); {
		e := it.Entry()
		if node.IsInVoid(block, e.Path) {
			continue
		}
		n := e.Node.(*node.Text).Len()
		if offset <= acc+n {
			return e.Path, offset - acc, true
		}
		acc += n
	}
	return nil, 0, false
}

// SplitBlock splits the block at blockPath in two at a character offset.
// The text holding the offset is split, then every ancestor up to and
// including the block. An empty text left at the front of the new block
// is removed when another text follows it, and points on it move to the
// start of that text.
//
// It returns the new value and the operations that produced it, with
// every generated key filled in.
func SplitBlock(v value.Value, blockPath path.Path, offset int, keys node.KeyGenerator) (value.Value, []Operation, error) {
	if keys == nil {
		keys = node.DefaultKeys
	}
	n, err := node.Get(v.Document(), blockPath)
	if err != nil {
		return v, nil, wrap(TypeSplitNode, err)
	}
	block, ok := n.(*node.Element)
	if !ok || blockPath.IsRoot() {
		return v, nil, invalid(TypeSplitNode, blockPath, "%s is not an element", n.Kind())
	}
	if block.IsVoid() {
		return v, nil, invalid(TypeSplitNode, blockPath, "cannot split a void element")
	}
	rel, local, ok := locate(block, offset)
	if !ok {
		return v, nil, invalid(TypeSplitNode, blockPath, "offset %d outside [0, %d]", offset, node.Length(block))
	}

	textPath := append(blockPath.Clone(), rel...)
	ops := []Operation{SplitNode{Path: textPath, Position: local, Key: keys.NewKey()}}
	for p := textPath; len(p) > len(blockPath); {
		parent, _ := p.Parent()
		ops = append(ops, SplitNode{Path: parent, Position: p.Last() + 1, Key: keys.NewKey()})
		p = parent
	}
	out, err := ApplyAll(v, ops...)
	if err != nil {
		return v, nil, err
	}

	next, _ := blockPath.Next()
	succ := append(next, make(path.Path, len(rel))...)
	t, err := node.GetText(out.Document(), succ)
	if err != nil {
		return v, nil, wrap(TypeSplitNode, err)
	}
	if t.Len() == 0 {
		follow, _ := succ.Next()
		if ft, err := node.GetText(out.Document(), follow); err == nil {
			drop := dropEmptyText(out, succ, t.Key(), ft.Key())
			if out, err = ApplyAll(out, drop...); err != nil {
				return v, nil, err
			}
			ops = append(ops, drop...)
		}
	}
	return out, ops, nil
}

// dropEmptyText returns the operations that remove the empty text at p
// after moving every point on it to the start of the text keyed follow.
func dropEmptyText(v value.Value, p path.Path, empty, follow string) []Operation {
	repoint := func(r selection.Range) (selection.Range, bool) {
		moved := false
		r = r.UpdatePoints(func(pt selection.Point) selection.Point {
			if pt.Key != empty {
				return pt
			}
			moved = true
			return pt.MoveTo(follow, 0)
		})
		return r, moved
	}
	var ops []Operation
	if r, ok := repoint(v.Selection()); ok {
		ops = append(ops, SetSelection{Selection: r})
	}
	for _, a := range v.Annotations() {
		if r, ok := repoint(a.Range); ok {
			ops = append(ops, SetAnnotation{Annotation: a.WithRange(r)})
		}
	}
	return append(ops, RemoveNode{Path: p.Clone()})
}

// SplitBlockAtSelection splits the closest block around a collapsed
// selection at the selection's position.
func SplitBlockAtSelection(v value.Value, keys node.KeyGenerator) (value.Value, []Operation, error) {
	sel := v.Selection()
	if sel.IsUnset() {
		return v, nil, invalid(TypeSplitNode, path.Root(), "no selection")
	}
	if sel.IsExpanded() {
		return v, nil, invalid(TypeSplitNode, path.Root(), "selection is expanded")
	}
	doc := v.Document()
	p, err := sel.Anchor.Normalize(doc)
	if err != nil {
		return v, nil, wrap(TypeSplitNode, err)
	}
	block, ok, err := node.ClosestBlock(doc, p.Path)
	if err != nil {
		return v, nil, wrap(TypeSplitNode, err)
	}
	if !ok {
		return v, nil, invalid(TypeSplitNode, p.Path, "selection is not inside a block")
	}
	rel, err := path.Relative(p.Path, block.Path)
	if err != nil {
		return v, nil, wrap(TypeSplitNode, err)
	}
	offset, err := node.Offset(block.Node, rel)
	if err != nil {
		return v, nil, wrap(TypeSplitNode, err)
	}
	if !node.IsInVoid(block.Node, rel) {
		offset += p.Offset
	}
	return SplitBlock(v, block.Path, offset, keys)
}
