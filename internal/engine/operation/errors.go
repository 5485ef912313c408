package operation

import (
	"errors"
	"fmt"

	"github.com/dshills/richtext/internal/engine/path"
)

// ErrInvalidOperation indicates an operation whose arguments do not fit
// the value it was applied to.
var ErrInvalidOperation = errors.New("invalid operation")

// InvalidOperationError describes a rejected operation.
type InvalidOperationError struct {
	Op      Type
	Path    path.Path
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InvalidOperationError) Error() string {
	msg := fmt.Sprintf("%s at %s: %s", e.Op, e.Path, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is ErrInvalidOperation.
func (e *InvalidOperationError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// Unwrap returns the underlying cause, if any.
func (e *InvalidOperationError) Unwrap() error {
	return e.Err
}

func invalid(op Type, p path.Path, format string, args ...any) error {
	return &InvalidOperationError{Op: op, Path: p.Clone(), Message: fmt.Sprintf(format, args...)}
}

// wrap annotates a lookup failure with the operation that hit it. The
// original error stays matchable with errors.Is.
func wrap(op Type, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
