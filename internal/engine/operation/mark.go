package operation

import (
	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/path"
	"github.com/dshills/richtext/internal/engine/value"
)

func updateText(op Type, v value.Value, p path.Path, fn func(*node.Text) (*node.Text, error)) (value.Value, error) {
	t, err := node.GetText(v.Document(), p)
	if err != nil {
		return v, wrap(op, err)
	}
	updated, err := fn(t)
	if err != nil {
		return v, err
	}
	doc, err := v.Document().ReplaceNode(p, updated)
	if err != nil {
		return v, wrap(op, err)
	}
	return v.WithDocument(doc), nil
}

// AddMark adds Mark to the text at Path, replacing a mark with the same
// key.
type AddMark struct {
	Path path.Path
	Mark node.Mark
}

// Type implements Operation.
func (AddMark) Type() Type { return TypeAddMark }

// Apply implements Operation.
func (op AddMark) Apply(v value.Value) (value.Value, error) {
	if op.Mark.Key == "" {
		return v, invalid(TypeAddMark, op.Path, "mark without key")
	}
	return updateText(TypeAddMark, v, op.Path, func(t *node.Text) (*node.Text, error) {
		return t.WithMarks(t.Marks().Add(op.Mark)), nil
	})
}

// Invert implements Operation.
func (op AddMark) Invert(before value.Value) (Operation, error) {
	t, err := node.GetText(before.Document(), op.Path)
	if err != nil {
		return nil, wrap(TypeAddMark, err)
	}
	if old, ok := t.Marks().Get(op.Mark.Key); ok {
		return AddMark{Path: op.Path.Clone(), Mark: old}, nil
	}
	return RemoveMark{Path: op.Path.Clone(), Mark: op.Mark}, nil
}

// RemoveMark removes the mark with Mark.Key from the text at Path.
// Removing an absent mark changes nothing.
type RemoveMark struct {
	Path path.Path
	Mark node.Mark
}

// Type implements Operation.
func (RemoveMark) Type() Type { return TypeRemoveMark }

// Apply implements Operation.
func (op RemoveMark) Apply(v value.Value) (value.Value, error) {
	return updateText(TypeRemoveMark, v, op.Path, func(t *node.Text) (*node.Text, error) {
		if !t.Marks().Has(op.Mark.Key) {
			return t, nil
		}
		return t.WithMarks(t.Marks().Remove(op.Mark.Key)), nil
	})
}

// Invert implements Operation.
func (op RemoveMark) Invert(before value.Value) (Operation, error) {
	t, err := node.GetText(before.Document(), op.Path)
	if err != nil {
		return nil, wrap(TypeRemoveMark, err)
	}
	old, ok := t.Marks().Get(op.Mark.Key)
	if !ok {
		return op, nil
	}
	return AddMark{Path: op.Path.Clone(), Mark: old}, nil
}

// SetMark merges Properties into the mark with key Mark on the text at
// Path. A nil property value deletes the property.
type SetMark struct {
	Path       path.Path
	Mark       string
	Properties node.Data
}

// Type implements Operation.
func (SetMark) Type() Type { return TypeSetMark }

// Apply implements Operation.
func (op SetMark) Apply(v value.Value) (value.Value, error) {
	return updateText(TypeSetMark, v, op.Path, func(t *node.Text) (*node.Text, error) {
		marks, ok := t.Marks().Set(op.Mark, op.Properties)
		if !ok {
			return nil, invalid(TypeSetMark, op.Path, "no mark %q", op.Mark)
		}
		return t.WithMarks(marks), nil
	})
}

// Invert implements Operation.
func (op SetMark) Invert(before value.Value) (Operation, error) {
	t, err := node.GetText(before.Document(), op.Path)
	if err != nil {
		return nil, wrap(TypeSetMark, err)
	}
	m, ok := t.Marks().Get(op.Mark)
	if !ok {
		return nil, invalid(TypeSetMark, op.Path, "no mark %q", op.Mark)
	}
	old := make(node.Data, len(op.Properties))
	for k := range op.Properties {
		old[k] = m.Properties[k]
	}
	return SetMark{Path: op.Path.Clone(), Mark: op.Mark, Properties: old}, nil
}
