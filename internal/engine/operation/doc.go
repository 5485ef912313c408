// Package operation implements the primitive edits of a document value.
//
// Every Operation validates its preconditions against the input Value
// before building anything, so a failed Apply returns the input untouched
// together with an error. A successful Apply returns a new Value whose
// selection and annotations have been repaired: no point is left naming a
// key that is missing from the new document, and every cached path is
// either correct or cleared.
//
// Operations are invertible. Invert takes the Value the operation was
// applied to and returns the operation that undoes it:
//
//	after, _ := op.Apply(before)
//	inv, _ := op.Invert(before)
//	restored, _ := inv.Apply(after) // restored.Document() equals before's
//
// Operations do not normalize structure. RemoveNode on an only child, or
// SplitNode on an element at position 0 or at its child count, leaves an
// element with no children. Normalizing such elements is the caller's
// job; SplitBlock never produces one.
//
// Commands such as SplitBlock compose several primitives into one
// all-or-nothing edit.
package operation
