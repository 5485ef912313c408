package node

import (
	"slices"

	"github.com/dshills/richtext/internal/engine/path"
)

// updateAt rebuilds the spine from root to p, replacing the node at p
// with fn's result. Subtrees off the spine are shared.
func updateAt(n Node, p path.Path, fn func(Node) (Node, error)) (Node, error) {
	if len(p) == 0 {
		return fn(n)
	}
	parent, ok := n.(Parent)
	if !ok {
		return nil, notFound(p)
	}
	child, ok := parent.Child(p[0])
	if !ok {
		return nil, notFound(p[:1])
	}
	updated, err := updateAt(child, p[1:], fn)
	if err != nil {
		return nil, err
	}
	children := slices.Clone(parent.Children())
	children[p[0]] = updated
	return parent.withChildren(children), nil
}

func (d *Document) update(p path.Path, fn func(Node) (Node, error)) (*Document, error) {
	n, err := updateAt(d, p, fn)
	if err != nil {
		return nil, err
	}
	doc, ok := n.(*Document)
	if !ok {
		return nil, &NodeNotFoundError{Path: p.Clone()}
	}
	return doc, nil
}

// ReplaceNode returns a document with the node at p replaced by n.
func (d *Document) ReplaceNode(p path.Path, n Node) (*Document, error) {
	if len(p) == 0 {
		doc, ok := n.(*Document)
		if !ok {
			return nil, &NodeNotFoundError{Path: p.Clone()}
		}
		return doc, nil
	}
	return d.update(p, func(Node) (Node, error) { return n, nil })
}

// UpdateNode returns a document with fn applied to the node at p.
func (d *Document) UpdateNode(p path.Path, fn func(Node) (Node, error)) (*Document, error) {
	return d.update(p, fn)
}

// InsertNode returns a document with n inserted at p. The final index of p
// may equal the parent's child count to append.
func (d *Document) InsertNode(p path.Path, n Node) (*Document, error) {
	if len(p) == 0 {
		return nil, notFound(p)
	}
	idx := p.Last()
	return d.update(p[:len(p)-1], func(target Node) (Node, error) {
		parent, ok := target.(Parent)
		if !ok || idx < 0 || idx > parent.NumChildren() {
			return nil, notFound(p)
		}
		return parent.withChildren(slices.Insert(slices.Clone(parent.Children()), idx, n)), nil
	})
}

// RemoveNode returns a document without the node at p, and the removed
// node.
func (d *Document) RemoveNode(p path.Path) (*Document, Node, error) {
	removed, err := Get(d, p)
	if err != nil {
		return nil, nil, err
	}
	if len(p) == 0 {
		return nil, nil, notFound(p)
	}
	idx := p.Last()
	doc, err := d.update(p[:len(p)-1], func(target Node) (Node, error) {
		parent := target.(Parent)
		return parent.withChildren(slices.Delete(slices.Clone(parent.Children()), idx, idx+1)), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return doc, removed, nil
}

// SetChildren returns a copy of parent holding children.
func SetChildren(parent Parent, children []Node) Parent {
	return parent.withChildren(slices.Clone(children))
}

// ReplaceChild returns a copy of parent with child i replaced by n.
func ReplaceChild(parent Parent, i int, n Node) (Parent, error) {
	if i < 0 || i >= parent.NumChildren() {
		return nil, notFound(path.New(i))
	}
	children := slices.Clone(parent.Children())
	children[i] = n
	return parent.withChildren(children), nil
}

// InsertChild returns a copy of parent with n inserted before child i.
// i may equal the child count to append.
func InsertChild(parent Parent, i int, n Node) (Parent, error) {
	if i < 0 || i > parent.NumChildren() {
		return nil, notFound(path.New(i))
	}
	return parent.withChildren(slices.Insert(slices.Clone(parent.Children()), i, n)), nil
}

// RemoveChild returns a copy of parent without child i.
func RemoveChild(parent Parent, i int) (Parent, error) {
	if i < 0 || i >= parent.NumChildren() {
		return nil, notFound(path.New(i))
	}
	return parent.withChildren(slices.Delete(slices.Clone(parent.Children()), i, i+1)), nil
}
