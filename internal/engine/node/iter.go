package node

import "github.com/dshills/richtext/internal/engine/path"

// IterOptions scopes a traversal.
type IterOptions struct {
	// Reverse walks in reverse document order.
	Reverse bool
	// From skips everything before this path, except its ancestors.
	From path.Path
	// To stops after this path's subtree.
	To path.Path
}

// Iterator walks the descendants of a root lazily, in document order or
// its reverse. It holds no state beyond its own cursor, so it can be
// abandoned at any time; Reset restarts it from the beginning.
//
//	for it := node.Texts(doc, node.IterOptions{}); it.Next(); {
//	    e := it.Entry()
//	    ...
//	}
type Iterator struct {
	root  Node
	opts  IterOptions
	match func(Node) bool

	stack   []Node // stack[i] is the node at cur[:i]
	cur     path.Path
	entry   Entry
	started bool
	done    bool
}

func newIterator(root Node, opts IterOptions, match func(Node) bool) *Iterator {
	return &Iterator{root: root, opts: opts, match: match}
}

// Texts iterates over the text leaves below root.
func Texts(root Node, opts IterOptions) *Iterator {
	return newIterator(root, opts, func(n Node) bool { return n.Kind() == KindText })
}

// Elements iterates over the elements below root.
func Elements(root Node, opts IterOptions) *Iterator {
	return newIterator(root, opts, func(n Node) bool { return n.Kind() == KindElement })
}

// Descendants iterates over every node below root.
func Descendants(root Node, opts IterOptions) *Iterator {
	return newIterator(root, opts, func(Node) bool { return true })
}

// Reset rewinds the iterator to its starting position.
func (it *Iterator) Reset() {
	it.stack = nil
	it.cur = nil
	it.entry = Entry{}
	it.started = false
	it.done = false
}

// Entry returns the current entry.
func (it *Iterator) Entry() Entry {
	return it.entry
}

// Next advances to the next matching node.
// Returns false once the traversal is exhausted.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	descend := true
	for {
		var ok bool
		switch {
		case !it.started:
			it.started = true
			ok = it.first()
		case it.opts.Reverse:
			ok = it.prev()
		default:
			ok = it.next(descend)
		}
		if !ok {
			it.done = true
			return false
		}
		descend = true

		p := it.cur
		if from := it.opts.From; from != nil && path.IsBefore(p, from) && !path.IsAncestor(p, from) {
			if it.opts.Reverse {
				it.done = true
				return false
			}
			descend = false
			continue
		}
		if to := it.opts.To; to != nil && !it.opts.Reverse && path.IsAfter(p, to) && !path.IsAncestor(to, p) {
			it.done = true
			return false
		}

		n := it.stack[len(it.stack)-1]
		if it.match(n) {
			it.entry = Entry{Node: n, Path: p.Clone()}
			return true
		}
	}
}

func (it *Iterator) first() bool {
	it.stack = []Node{it.root}
	it.cur = path.Path{}
	if !it.opts.Reverse {
		return it.push(0)
	}
	if to := it.opts.To; to != nil {
		for _, idx := range to {
			if !it.push(idx) {
				return false
			}
		}
		it.descendLast()
		return len(it.cur) > 0
	}
	it.descendLast()
	return len(it.cur) > 0
}

// push moves to child i of the current node.
func (it *Iterator) push(i int) bool {
	parent, ok := it.stack[len(it.stack)-1].(Parent)
	if !ok {
		return false
	}
	child, ok := parent.Child(i)
	if !ok {
		return false
	}
	it.stack = append(it.stack, child)
	it.cur = append(it.cur, i)
	return true
}

func (it *Iterator) pop() {
	it.stack = it.stack[:len(it.stack)-1]
	it.cur = it.cur[:len(it.cur)-1]
}

func (it *Iterator) descendLast() {
	for {
		parent, ok := it.stack[len(it.stack)-1].(Parent)
		if !ok || parent.NumChildren() == 0 {
			return
		}
		it.push(parent.NumChildren() - 1)
	}
}

// next moves to the following node in document order, skipping the
// current subtree when descend is false.
func (it *Iterator) next(descend bool) bool {
	if descend && it.push(0) {
		return true
	}
	for len(it.cur) > 0 {
		last := it.cur[len(it.cur)-1]
		it.pop()
		if it.push(last + 1) {
			return true
		}
	}
	return false
}

// prev moves to the preceding node in document order.
func (it *Iterator) prev() bool {
	if len(it.cur) == 0 {
		return false
	}
	last := it.cur[len(it.cur)-1]
	it.pop()
	if last > 0 {
		it.push(last - 1)
		it.descendLast()
		return true
	}
	return len(it.cur) > 0
}
