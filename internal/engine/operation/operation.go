package operation

import (
	"github.com/dshills/richtext/internal/engine/value"
)

// Type names an operation kind.
type Type string

// Operation types.
const (
	TypeInsertText       Type = "insert_text"
	TypeRemoveText       Type = "remove_text"
	TypeInsertNode       Type = "insert_node"
	TypeRemoveNode       Type = "remove_node"
	TypeMergeNode        Type = "merge_node"
	TypeSplitNode        Type = "split_node"
	TypeMoveNode         Type = "move_node"
	TypeSetNode          Type = "set_node"
	TypeAddMark          Type = "add_mark"
	TypeRemoveMark       Type = "remove_mark"
	TypeSetMark          Type = "set_mark"
	TypeSetSelection     Type = "set_selection"
	TypeAddAnnotation    Type = "add_annotation"
	TypeRemoveAnnotation Type = "remove_annotation"
	TypeSetAnnotation    Type = "set_annotation"
)

// String returns the type name.
func (t Type) String() string {
	return string(t)
}

// Operation is a primitive, invertible edit of a Value.
type Operation interface {
	// Type returns the operation kind.
	Type() Type

	// Apply returns v with the operation performed and all ranges
	// repaired. On error v is returned unchanged.
	Apply(v value.Value) (value.Value, error)

	// Invert returns the operation that undoes this one. before is the
	// value the operation is, or was, applied to.
	Invert(before value.Value) (Operation, error)
}
