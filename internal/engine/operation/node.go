package operation

import (
	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/path"
	"github.com/dshills/richtext/internal/engine/selection"
	"github.com/dshills/richtext/internal/engine/value"
)

// parentAt returns the container at p.
func parentAt(op Type, doc *node.Document, p path.Path) (node.Parent, error) {
	n, err := node.Get(doc, p)
	if err != nil {
		return nil, wrap(op, err)
	}
	parent, ok := n.(node.Parent)
	if !ok {
		return nil, invalid(op, p, "%s node cannot hold children", n.Kind())
	}
	return parent, nil
}

// checkKeys rejects a subtree whose keys are missing, repeated, or
// already used in doc.
func checkKeys(op Type, doc *node.Document, p path.Path, n node.Node) error {
	seen := make(map[string]bool)
	check := func(key string) error {
		switch {
		case key == "":
			return invalid(op, p, "node without key")
		case seen[key] || doc.HasKey(key):
			return invalid(op, p, "key %q already in use", key)
		}
		seen[key] = true
		return nil
	}
	if err := check(n.Key()); err != nil {
		return err
	}
	for it := node.Descendants(n, node.IterOptions{}); it.Next(); {
		if err := check(it.Entry().Node.Key()); err != nil {
			return err
		}
	}
	return nil
}

// InsertNode inserts Node at Path. The final index may equal the parent's
// child count to append.
type InsertNode struct {
	Path path.Path
	Node node.Node
}

// Type implements Operation.
func (InsertNode) Type() Type { return TypeInsertNode }

// Apply implements Operation.
func (op InsertNode) Apply(v value.Value) (value.Value, error) {
	doc := v.Document()
	if op.Path.IsRoot() {
		return v, invalid(TypeInsertNode, op.Path, "cannot insert at the root")
	}
	if op.Node == nil {
		return v, invalid(TypeInsertNode, op.Path, "no node")
	}
	if op.Node.Kind() == node.KindDocument {
		return v, invalid(TypeInsertNode, op.Path, "cannot nest a document")
	}
	parentPath, _ := op.Path.Parent()
	parent, err := parentAt(TypeInsertNode, doc, parentPath)
	if err != nil {
		return v, err
	}
	if idx := op.Path.Last(); idx < 0 || idx > parent.NumChildren() {
		return v, invalid(TypeInsertNode, op.Path, "index %d outside [0, %d]", idx, parent.NumChildren())
	}
	if err := checkKeys(TypeInsertNode, doc, op.Path, op.Node); err != nil {
		return v, err
	}
	doc, err = doc.InsertNode(op.Path, op.Node)
	if err != nil {
		return v, wrap(TypeInsertNode, err)
	}
	return clearPaths(v.WithDocument(doc)), nil
}

// Invert implements Operation.
func (op InsertNode) Invert(value.Value) (Operation, error) {
	return RemoveNode{Path: op.Path.Clone()}, nil
}

// RemoveNode removes the node at Path with its subtree.
type RemoveNode struct {
	Path path.Path
}

// Type implements Operation.
func (RemoveNode) Type() Type { return TypeRemoveNode }

// Apply implements Operation. Points inside the removed subtree move to
// the end of the previous text, else the start of the next text, else
// their range is unset. Removing an only child leaves its parent empty.
func (op RemoveNode) Apply(v value.Value) (value.Value, error) {
	doc := v.Document()
	if op.Path.IsRoot() {
		return v, invalid(TypeRemoveNode, op.Path, "cannot remove the root")
	}
	n, err := node.Get(doc, op.Path)
	if err != nil {
		return v, wrap(TypeRemoveNode, err)
	}
	reloc, err := newRelocation(doc, node.Entry{Node: n, Path: op.Path})
	if err != nil {
		return v, wrap(TypeRemoveNode, err)
	}
	doc, _, err = doc.RemoveNode(op.Path)
	if err != nil {
		return v, wrap(TypeRemoveNode, err)
	}
	return reloc.apply(v.WithDocument(doc)), nil
}

// Invert implements Operation.
func (op RemoveNode) Invert(before value.Value) (Operation, error) {
	n, err := node.Get(before.Document(), op.Path)
	if err != nil {
		return nil, wrap(TypeRemoveNode, err)
	}
	return InsertNode{Path: op.Path.Clone(), Node: n}, nil
}

// MergeNode merges the node at Path into its previous sibling. Both must
// be texts, or both elements.
type MergeNode struct {
	Path path.Path
}

// Type implements Operation.
func (MergeNode) Type() Type { return TypeMergeNode }

func (op MergeNode) pair(doc *node.Document) (prevPath path.Path, prev, n node.Node, err error) {
	if op.Path.IsRoot() || op.Path.Last() == 0 {
		return nil, nil, nil, invalid(TypeMergeNode, op.Path, "no previous sibling")
	}
	if n, err = node.Get(doc, op.Path); err != nil {
		return nil, nil, nil, wrap(TypeMergeNode, err)
	}
	prevPath, _ = op.Path.Previous()
	if prev, err = node.Get(doc, prevPath); err != nil {
		return nil, nil, nil, wrap(TypeMergeNode, err)
	}
	if prev.Kind() != n.Kind() {
		return nil, nil, nil, invalid(TypeMergeNode, op.Path, "cannot merge %s into %s", n.Kind(), prev.Kind())
	}
	return prevPath, prev, n, nil
}

// Apply implements Operation. Points in a merged text move into the
// previous text, offset by its old length.
func (op MergeNode) Apply(v value.Value) (value.Value, error) {
	doc := v.Document()
	prevPath, prev, n, err := op.pair(doc)
	if err != nil {
		return v, err
	}
	var merged node.Node
	switch prev := prev.(type) {
	case *node.Text:
		merged = prev.WithText(prev.Text() + n.(*node.Text).Text())
	case *node.Element:
		merged = prev.WithChildren(append(append([]node.Node(nil), prev.Children()...), n.(*node.Element).Children()...)...)
	}
	if doc, err = doc.ReplaceNode(prevPath, merged); err != nil {
		return v, wrap(TypeMergeNode, err)
	}
	if doc, _, err = doc.RemoveNode(op.Path); err != nil {
		return v, wrap(TypeMergeNode, err)
	}
	out := v.WithDocument(doc)
	if t, ok := prev.(*node.Text); ok {
		shift := t.Len()
		out = mapKeyed(out, n.Key(), func(p selection.Point) selection.Point {
			return p.MoveTo(t.Key(), shift+p.Offset)
		})
	}
	return clearPaths(out), nil
}

// Invert implements Operation.
func (op MergeNode) Invert(before value.Value) (Operation, error) {
	prevPath, prev, n, err := op.pair(before.Document())
	if err != nil {
		return nil, err
	}
	split := SplitNode{Path: prevPath, Properties: node.Diff(prev, n), Key: n.Key()}
	switch prev := prev.(type) {
	case *node.Text:
		split.Position = prev.Len()
	case *node.Element:
		split.Position = prev.NumChildren()
	}
	return split, nil
}

// SplitNode splits the node at Path at Position: a rune offset for a
// text, a child index for an element. The second half takes Key, or a
// generated key when Key is empty, and Properties are merged onto it.
// Splitting an element at 0 or at its child count leaves one half empty.
type SplitNode struct {
	Path       path.Path
	Position   int
	Properties node.Properties
	Key        string
}

// Type implements Operation.
func (SplitNode) Type() Type { return TypeSplitNode }

// Apply implements Operation. Points in a split text at or after Position
// move into the new text.
func (op SplitNode) Apply(v value.Value) (value.Value, error) {
	doc := v.Document()
	if op.Path.IsRoot() {
		return v, invalid(TypeSplitNode, op.Path, "cannot split the root")
	}
	n, err := node.Get(doc, op.Path)
	if err != nil {
		return v, wrap(TypeSplitNode, err)
	}
	key := op.Key
	if key == "" {
		key = node.DefaultKeys.NewKey()
	}
	if doc.HasKey(key) {
		return v, invalid(TypeSplitNode, op.Path, "key %q already in use", key)
	}

	var left, right node.Node
	switch n := n.(type) {
	case *node.Text:
		if op.Position < 0 || op.Position > n.Len() {
			return v, invalid(TypeSplitNode, op.Path, "position %d outside [0, %d]", op.Position, n.Len())
		}
		left, right = n.SplitText(op.Position, key)
	case *node.Element:
		children := n.Children()
		if op.Position < 0 || op.Position > len(children) {
			return v, invalid(TypeSplitNode, op.Path, "position %d outside [0, %d]", op.Position, len(children))
		}
		left = n.WithChildren(children[:op.Position]...)
		right = n.WithKey(key).WithChildren(children[op.Position:]...)
	default:
		return v, invalid(TypeSplitNode, op.Path, "cannot split %s", n.Kind())
	}
	if right, err = node.ApplyProperties(right, op.Properties); err != nil {
		return v, &InvalidOperationError{Op: TypeSplitNode, Path: op.Path.Clone(), Message: "bad properties", Err: err}
	}

	next, _ := op.Path.Next()
	if doc, err = doc.ReplaceNode(op.Path, left); err != nil {
		return v, wrap(TypeSplitNode, err)
	}
	if doc, err = doc.InsertNode(next, right); err != nil {
		return v, wrap(TypeSplitNode, err)
	}
	out := v.WithDocument(doc)
	if _, ok := n.(*node.Text); ok {
		out = mapKeyed(out, n.Key(), func(p selection.Point) selection.Point {
			if p.Offset >= op.Position {
				return p.MoveTo(key, p.Offset-op.Position)
			}
			return p
		})
	}
	return clearPaths(out), nil
}

// Invert implements Operation.
func (op SplitNode) Invert(value.Value) (Operation, error) {
	if op.Path.IsRoot() {
		return nil, invalid(TypeSplitNode, op.Path, "cannot split the root")
	}
	next, _ := op.Path.Next()
	return MergeNode{Path: next}, nil
}

// MoveNode moves the node at Path to become the child of NewParent at
// Index. NewParent is addressed before the removal; Index is taken after
// it and clamped to append.
type MoveNode struct {
	Path      path.Path
	NewParent path.Path
	Index     int
}

// Type implements Operation.
func (MoveNode) Type() Type { return TypeMoveNode }

// target validates the move and returns the node's path once moved. A
// target equal to Path means the move changes nothing.
func (op MoveNode) target(doc *node.Document) (path.Path, error) {
	if op.Path.IsRoot() {
		return nil, invalid(TypeMoveNode, op.Path, "cannot move the root")
	}
	if _, err := node.Get(doc, op.Path); err != nil {
		return nil, wrap(TypeMoveNode, err)
	}
	if _, err := parentAt(TypeMoveNode, doc, op.NewParent); err != nil {
		return nil, err
	}
	if path.IsAncestorOrEqual(op.Path, op.NewParent) {
		return nil, invalid(TypeMoveNode, op.Path, "cannot move into itself at %s", op.NewParent)
	}
	if op.Index < 0 {
		return nil, invalid(TypeMoveNode, op.Path, "negative index %d", op.Index)
	}
	parentPath, _ := path.TransformRemove(op.NewParent, op.Path)
	n, _ := node.Get(doc, op.NewParent)
	count := n.(node.Parent).NumChildren()
	if path.Equal(op.Path[:len(op.Path)-1], op.NewParent) {
		count--
	}
	return parentPath.Child(min(op.Index, count)), nil
}

// Apply implements Operation.
func (op MoveNode) Apply(v value.Value) (value.Value, error) {
	doc := v.Document()
	to, err := op.target(doc)
	if err != nil {
		return v, err
	}
	if path.Equal(to, op.Path) {
		return v, nil
	}
	doc, n, err := doc.RemoveNode(op.Path)
	if err != nil {
		return v, wrap(TypeMoveNode, err)
	}
	if doc, err = doc.InsertNode(to, n); err != nil {
		return v, wrap(TypeMoveNode, err)
	}
	return clearPaths(v.WithDocument(doc)), nil
}

// Invert implements Operation.
func (op MoveNode) Invert(before value.Value) (Operation, error) {
	to, err := op.target(before.Document())
	if err != nil {
		return nil, err
	}
	if path.Equal(to, op.Path) {
		return op, nil
	}
	oldParent, _ := op.Path.Parent()
	oldParent, _ = path.TransformRemove(oldParent, op.Path)
	return MoveNode{
		Path:      to,
		NewParent: path.TransformInsert(oldParent, to),
		Index:     op.Path.Last(),
	}, nil
}

// SetNode merges Properties onto the node at Path.
type SetNode struct {
	Path       path.Path
	Properties node.Properties
}

// Type implements Operation.
func (SetNode) Type() Type { return TypeSetNode }

// Apply implements Operation.
func (op SetNode) Apply(v value.Value) (value.Value, error) {
	n, err := node.Get(v.Document(), op.Path)
	if err != nil {
		return v, wrap(TypeSetNode, err)
	}
	updated, err := node.ApplyProperties(n, op.Properties)
	if err != nil {
		return v, &InvalidOperationError{Op: TypeSetNode, Path: op.Path.Clone(), Message: "bad properties", Err: err}
	}
	doc, err := v.Document().ReplaceNode(op.Path, updated)
	if err != nil {
		return v, wrap(TypeSetNode, err)
	}
	return v.WithDocument(doc), nil
}

// Invert implements Operation.
func (op SetNode) Invert(before value.Value) (Operation, error) {
	n, err := node.Get(before.Document(), op.Path)
	if err != nil {
		return nil, wrap(TypeSetNode, err)
	}
	return SetNode{Path: op.Path.Clone(), Properties: node.CaptureProperties(n, op.Properties)}, nil
}
