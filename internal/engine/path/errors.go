package path

import (
	"errors"
	"fmt"
)

// ErrInvalidPath indicates a malformed path or paths that do not stand in
// the relationship an operation requires.
var ErrInvalidPath = errors.New("invalid path")

// InvalidPathError describes why a path argument was rejected.
type InvalidPathError struct {
	Op      string
	Path    Path
	Other   Path
	Message string
}

// Error implements the error interface.
func (e *InvalidPathError) Error() string {
	if e.Other != nil {
		return fmt.Sprintf("%s: invalid path %s (against %s): %s", e.Op, e.Path, e.Other, e.Message)
	}
	return fmt.Sprintf("%s: invalid path %s: %s", e.Op, e.Path, e.Message)
}

// Is reports whether target is ErrInvalidPath.
func (e *InvalidPathError) Is(target error) bool {
	return target == ErrInvalidPath
}
