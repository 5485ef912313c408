package operation

import (
	"github.com/dshills/richtext/internal/engine/path"
	"github.com/dshills/richtext/internal/engine/selection"
	"github.com/dshills/richtext/internal/engine/value"
)

// resolveRange normalizes both points of a set range against v: each ends
// up in a text, with a clamped offset and its path cached.
func resolveRange(op Type, v value.Value, r selection.Range) (selection.Range, error) {
	if r.IsUnset() {
		return r.Unset(), nil
	}
	var err error
	if r.Anchor, err = r.Anchor.Normalize(v.Document()); err != nil {
		return r, wrap(op, err)
	}
	if r.Focus, err = r.Focus.Normalize(v.Document()); err != nil {
		return r, wrap(op, err)
	}
	return r, nil
}

// SetSelection replaces the selection. An unset range clears it.
type SetSelection struct {
	Selection selection.Range
}

// Type implements Operation.
func (SetSelection) Type() Type { return TypeSetSelection }

// Apply implements Operation.
func (op SetSelection) Apply(v value.Value) (value.Value, error) {
	r, err := resolveRange(TypeSetSelection, v, op.Selection)
	if err != nil {
		return v, err
	}
	return v.WithSelection(r), nil
}

// Invert implements Operation.
func (op SetSelection) Invert(before value.Value) (Operation, error) {
	return SetSelection{Selection: before.Selection()}, nil
}

// AddAnnotation adds an annotation under a new key.
type AddAnnotation struct {
	Annotation selection.Annotation
}

// Type implements Operation.
func (AddAnnotation) Type() Type { return TypeAddAnnotation }

// Apply implements Operation.
func (op AddAnnotation) Apply(v value.Value) (value.Value, error) {
	a := op.Annotation
	if a.Key == "" {
		return v, invalid(TypeAddAnnotation, path.Root(), "annotation without key")
	}
	if _, ok := v.Annotation(a.Key); ok {
		return v, invalid(TypeAddAnnotation, path.Root(), "annotation %q already exists", a.Key)
	}
	if a.Range.IsUnset() {
		return v, invalid(TypeAddAnnotation, path.Root(), "annotation %q has no range", a.Key)
	}
	r, err := resolveRange(TypeAddAnnotation, v, a.Range)
	if err != nil {
		return v, err
	}
	return v.SetAnnotation(a.WithRange(r)), nil
}

// Invert implements Operation.
func (op AddAnnotation) Invert(value.Value) (Operation, error) {
	return RemoveAnnotation{Key: op.Annotation.Key}, nil
}

// RemoveAnnotation removes the annotation with Key.
type RemoveAnnotation struct {
	Key string
}

// Type implements Operation.
func (RemoveAnnotation) Type() Type { return TypeRemoveAnnotation }

// Apply implements Operation.
func (op RemoveAnnotation) Apply(v value.Value) (value.Value, error) {
	if _, ok := v.Annotation(op.Key); !ok {
		return v, invalid(TypeRemoveAnnotation, path.Root(), "no annotation %q", op.Key)
	}
	return v.RemoveAnnotation(op.Key), nil
}

// Invert implements Operation.
func (op RemoveAnnotation) Invert(before value.Value) (Operation, error) {
	a, ok := before.Annotation(op.Key)
	if !ok {
		return nil, invalid(TypeRemoveAnnotation, path.Root(), "no annotation %q", op.Key)
	}
	return AddAnnotation{Annotation: a}, nil
}

// SetAnnotation replaces the annotation stored under Annotation.Key.
type SetAnnotation struct {
	Annotation selection.Annotation
}

// Type implements Operation.
func (SetAnnotation) Type() Type { return TypeSetAnnotation }

// Apply implements Operation.
func (op SetAnnotation) Apply(v value.Value) (value.Value, error) {
	a := op.Annotation
	if _, ok := v.Annotation(a.Key); !ok {
		return v, invalid(TypeSetAnnotation, path.Root(), "no annotation %q", a.Key)
	}
	if a.Range.IsUnset() {
		return v, invalid(TypeSetAnnotation, path.Root(), "annotation %q has no range", a.Key)
	}
	r, err := resolveRange(TypeSetAnnotation, v, a.Range)
	if err != nil {
		return v, err
	}
	return v.SetAnnotation(a.WithRange(r)), nil
}

// Invert implements Operation.
func (op SetAnnotation) Invert(before value.Value) (Operation, error) {
	a, ok := before.Annotation(op.Annotation.Key)
	if !ok {
		return nil, invalid(TypeSetAnnotation, path.Root(), "no annotation %q", op.Annotation.Key)
	}
	return SetAnnotation{Annotation: a}, nil
}
