package operation

import (
	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/path"
	"github.com/dshills/richtext/internal/engine/selection"
	"github.com/dshills/richtext/internal/engine/value"
)

// InsertText inserts Text at a rune Offset of the text node at Path.
type InsertText struct {
	Path   path.Path
	Offset int
	Text   string
}

// Type implements Operation.
func (InsertText) Type() Type { return TypeInsertText }

// Apply implements Operation. Points in the text at or after Offset move
// right by the inserted length.
func (op InsertText) Apply(v value.Value) (value.Value, error) {
	t, err := node.GetText(v.Document(), op.Path)
	if err != nil {
		return v, wrap(TypeInsertText, err)
	}
	if op.Offset < 0 || op.Offset > t.Len() {
		return v, invalid(TypeInsertText, op.Path, "offset %d outside [0, %d]", op.Offset, t.Len())
	}
	doc, err := v.Document().ReplaceNode(op.Path, t.InsertText(op.Offset, op.Text))
	if err != nil {
		return v, wrap(TypeInsertText, err)
	}
	n := node.RuneLen(op.Text)
	out := mapKeyed(v.WithDocument(doc), t.Key(), func(p selection.Point) selection.Point {
		if p.Offset >= op.Offset {
			return p.SetOffset(p.Offset + n)
		}
		return p
	})
	return out, nil
}

// Invert implements Operation.
func (op InsertText) Invert(value.Value) (Operation, error) {
	return RemoveText(op), nil
}

// RemoveText removes Text from a rune Offset of the text node at Path.
// Text must match the content being removed.
type RemoveText struct {
	Path   path.Path
	Offset int
	Text   string
}

// Type implements Operation.
func (RemoveText) Type() Type { return TypeRemoveText }

// Apply implements Operation. Points after the removed span move left by
// its length; points inside it collapse to Offset.
func (op RemoveText) Apply(v value.Value) (value.Value, error) {
	t, err := node.GetText(v.Document(), op.Path)
	if err != nil {
		return v, wrap(TypeRemoveText, err)
	}
	n := node.RuneLen(op.Text)
	end := op.Offset + n
	if op.Offset < 0 || end > t.Len() {
		return v, invalid(TypeRemoveText, op.Path, "span [%d, %d) outside [0, %d]", op.Offset, end, t.Len())
	}
	if got := node.SliceRunes(t.Text(), op.Offset, end); got != op.Text {
		return v, invalid(TypeRemoveText, op.Path, "text %q does not match %q", op.Text, got)
	}
	doc, err := v.Document().ReplaceNode(op.Path, t.RemoveText(op.Offset, n))
	if err != nil {
		return v, wrap(TypeRemoveText, err)
	}
	out := mapKeyed(v.WithDocument(doc), t.Key(), func(p selection.Point) selection.Point {
		switch {
		case p.Offset >= end:
			return p.SetOffset(p.Offset - n)
		case p.Offset > op.Offset:
			return p.SetOffset(op.Offset)
		}
		return p
	})
	return out, nil
}

// Invert implements Operation.
func (op RemoveText) Invert(value.Value) (Operation, error) {
	return InsertText(op), nil
}
