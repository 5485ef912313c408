package path

import (
	"strconv"
	"strings"
)

// Path addresses a node by the child indices leading to it from the root.
type Path []int

// New creates a path from indices.
func New(indices ...int) Path {
	p := make(Path, len(indices))
	copy(p, indices)
	return p
}

// Root returns the empty path.
func Root() Path {
	return Path{}
}

// Clone returns a copy of p. A nil path stays nil.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	c := make(Path, len(p))
	copy(c, p)
	return c
}

// String returns the path formatted as [0 1 2].
func (p Path) String() string {
	if p == nil {
		return "<nil>"
	}
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// IsRoot returns true for the empty path.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Last returns the final index of p. It returns -1 for the root path.
func (p Path) Last() int {
	if len(p) == 0 {
		return -1
	}
	return p[len(p)-1]
}

// Parent returns the path with its final index dropped.
func (p Path) Parent() (Path, error) {
	if len(p) == 0 {
		return nil, &InvalidPathError{Op: "parent", Path: p, Message: "root has no parent"}
	}
	return p[:len(p)-1].Clone(), nil
}

// Child returns the path of the child at index i under p.
func (p Path) Child(i int) Path {
	c := make(Path, len(p)+1)
	copy(c, p)
	c[len(p)] = i
	return c
}

// Next returns the path of the following sibling.
func (p Path) Next() (Path, error) {
	if len(p) == 0 {
		return nil, &InvalidPathError{Op: "next", Path: p, Message: "root has no siblings"}
	}
	return Increment(p, 1, len(p)-1)
}

// Previous returns the path of the preceding sibling.
func (p Path) Previous() (Path, error) {
	if len(p) == 0 {
		return nil, &InvalidPathError{Op: "previous", Path: p, Message: "root has no siblings"}
	}
	return Decrement(p, 1, len(p)-1)
}

// Equal returns true if p and q address the same node.
func Equal(p, q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// Compare returns -1 if p comes before q in document order, 1 if after,
// and 0 if equal. An ancestor comes before its descendants.
func Compare(p, q Path) int {
	n := min(len(p), len(q))
	for i := 0; i < n; i++ {
		if p[i] < q[i] {
			return -1
		}
		if p[i] > q[i] {
			return 1
		}
	}
	switch {
	case len(p) < len(q):
		return -1
	case len(p) > len(q):
		return 1
	default:
		return 0
	}
}

// IsBefore returns true if p comes strictly before q in document order.
func IsBefore(p, q Path) bool {
	return Compare(p, q) < 0
}

// IsAfter returns true if p comes strictly after q in document order.
func IsAfter(p, q Path) bool {
	return Compare(p, q) > 0
}

// IsAncestor returns true if p is a strict prefix of q.
func IsAncestor(p, q Path) bool {
	if len(p) >= len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// IsAncestorOrEqual returns true if p is a prefix of q or equal to it.
func IsAncestorOrEqual(p, q Path) bool {
	return Equal(p, q) || IsAncestor(p, q)
}

// IsSibling returns true if p and q share the same parent and differ.
func IsSibling(p, q Path) bool {
	if len(p) == 0 || len(p) != len(q) {
		return false
	}
	return Equal(p[:len(p)-1], q[:len(q)-1]) && p[len(p)-1] != q[len(q)-1]
}

// IsYounger returns true if p ends before q at p's depth: p's final index
// is smaller than q's index at the same depth and both share p's parent.
// A younger path's removal or insertion shifts q.
func IsYounger(p, q Path) bool {
	if len(p) == 0 || len(p) > len(q) {
		return false
	}
	depth := len(p) - 1
	if !Equal(p[:depth], q[:depth]) {
		return false
	}
	return p[depth] < q[depth]
}

// Relative drops root from the front of p.
// It fails when root is not an ancestor of (or equal to) p.
func Relative(p, root Path) (Path, error) {
	if !IsAncestorOrEqual(root, p) {
		return nil, &InvalidPathError{Op: "relative", Path: p, Other: root, Message: "root is not a prefix"}
	}
	return p[len(root):].Clone(), nil
}

// Common returns the longest shared prefix of p and q.
func Common(p, q Path) Path {
	n := min(len(p), len(q))
	c := make(Path, 0, n)
	for i := 0; i < n && p[i] == q[i]; i++ {
		c = append(c, p[i])
	}
	return c
}

// Increment adds n to the index at depth.
func Increment(p Path, n, depth int) (Path, error) {
	if depth < 0 || depth >= len(p) {
		return nil, &InvalidPathError{Op: "increment", Path: p, Message: "depth " + strconv.Itoa(depth) + " out of range"}
	}
	c := p.Clone()
	c[depth] += n
	if c[depth] < 0 {
		return nil, &InvalidPathError{Op: "increment", Path: p, Message: "index would be negative"}
	}
	return c, nil
}

// Decrement subtracts n from the index at depth.
func Decrement(p Path, n, depth int) (Path, error) {
	if depth < 0 || depth >= len(p) {
		return nil, &InvalidPathError{Op: "decrement", Path: p, Message: "depth " + strconv.Itoa(depth) + " out of range"}
	}
	c := p.Clone()
	c[depth] -= n
	if c[depth] < 0 {
		return nil, &InvalidPathError{Op: "decrement", Path: p, Message: "index would be negative"}
	}
	return c, nil
}

// TransformRemove returns where p ends up after the node at removed is
// deleted. The second result is false when p was removed with it.
func TransformRemove(p, removed Path) (Path, bool) {
	if IsAncestorOrEqual(removed, p) {
		return nil, false
	}
	if IsYounger(removed, p) {
		c := p.Clone()
		c[len(removed)-1]--
		return c, true
	}
	return p.Clone(), true
}

// TransformInsert returns where p ends up after a node is inserted at
// inserted. Nodes at or after the insertion point shift forward.
func TransformInsert(p, inserted Path) Path {
	if len(inserted) == 0 || len(inserted) > len(p) {
		return p.Clone()
	}
	depth := len(inserted) - 1
	if !Equal(inserted[:depth], p[:depth]) || p[depth] < inserted[depth] {
		return p.Clone()
	}
	c := p.Clone()
	c[depth]++
	return c
}
