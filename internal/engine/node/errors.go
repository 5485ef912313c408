package node

import (
	"errors"
	"fmt"

	"github.com/dshills/richtext/internal/engine/path"
)

// ErrNodeNotFound indicates a path or key does not address a node in the
// current tree.
var ErrNodeNotFound = errors.New("node not found")

// NodeNotFoundError reports the path or key that failed to resolve.
type NodeNotFoundError struct {
	Path path.Path
	Key  string
}

// Error implements the error interface.
func (e *NodeNotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("node not found: key %q", e.Key)
	}
	return fmt.Sprintf("node not found at path %s", e.Path)
}

// Is reports whether target is ErrNodeNotFound.
func (e *NodeNotFoundError) Is(target error) bool {
	return target == ErrNodeNotFound
}

func notFound(p path.Path) error {
	return &NodeNotFoundError{Path: p.Clone()}
}
