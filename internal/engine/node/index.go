package node

import (
	"sync"

	"github.com/dshills/richtext/internal/engine/path"
)

// keyIndex maps keys to paths for one document snapshot. It is built on
// first use and never changes afterwards.
type keyIndex struct {
	once  sync.Once
	paths map[string]path.Path
}

func (idx *keyIndex) build(d *Document) {
	idx.paths = make(map[string]path.Path)
	var walk func(n Node, p path.Path)
	walk = func(n Node, p path.Path) {
		idx.paths[n.Key()] = p
		if parent, ok := n.(Parent); ok {
			for i, c := range parent.Children() {
				walk(c, p.Child(i))
			}
		}
	}
	walk(d, path.Root())
}

// FindPath returns the current path of the node with the given key.
func (d *Document) FindPath(key string) (path.Path, bool) {
	if d.index == nil {
		// Zero-value documents built outside NewDocument.
		d = NewDocument(d.key, d.children...).WithData(d.data)
	}
	d.index.once.Do(func() { d.index.build(d) })
	p, ok := d.index.paths[key]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

// GetByKey returns the node with the given key and its path.
func (d *Document) GetByKey(key string) (Entry, error) {
	p, ok := d.FindPath(key)
	if !ok {
		return Entry{}, &NodeNotFoundError{Key: key}
	}
	n, err := Get(d, p)
	if err != nil {
		return Entry{}, err
	}
	return Entry{Node: n, Path: p}, nil
}

// HasKey reports whether a node with key exists in d.
func (d *Document) HasKey(key string) bool {
	_, ok := d.FindPath(key)
	return ok
}
