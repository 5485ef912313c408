package operation

import (
	"fmt"
	"slices"

	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/value"
)

// BatchError reports which operation of a batch failed.
type BatchError struct {
	Index int
	Op    Type
	Err   error
}

// Error implements the error interface.
func (e *BatchError) Error() string {
	return fmt.Sprintf("operation %d (%s): %v", e.Index, e.Op, e.Err)
}

// Unwrap returns the failing operation's error.
func (e *BatchError) Unwrap() error {
	return e.Err
}

// ApplyAll applies ops in order. The batch is all-or-nothing: when an
// operation fails, v is returned unchanged with a *BatchError.
func ApplyAll(v value.Value, ops ...Operation) (value.Value, error) {
	out := v
	for i, op := range ops {
		next, err := op.Apply(out)
		if err != nil {
			return v, &BatchError{Index: i, Op: op.Type(), Err: err}
		}
		out = next
	}
	return out, nil
}

// InvertAll returns the operations that undo ops applied to before, in
// the order they must be applied.
func InvertAll(before value.Value, ops ...Operation) ([]Operation, error) {
	inverses := make([]Operation, 0, len(ops))
	v := before
	for i, op := range ops {
		inv, err := op.Invert(v)
		if err != nil {
			return nil, &BatchError{Index: i, Op: op.Type(), Err: err}
		}
		if v, err = op.Apply(v); err != nil {
			return nil, &BatchError{Index: i, Op: op.Type(), Err: err}
		}
		inverses = append(inverses, inv)
	}
	slices.Reverse(inverses)
	return inverses, nil
}

// AssignKeys returns ops with a key drawn from keys for every SplitNode
// that has none, so the batch replays identically.
func AssignKeys(keys node.KeyGenerator, ops ...Operation) []Operation {
	out := make([]Operation, len(ops))
	for i, op := range ops {
		if split, ok := op.(SplitNode); ok && split.Key == "" {
			split.Key = keys.NewKey()
			op = split
		}
		out[i] = op
	}
	return out
}
