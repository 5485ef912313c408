package engine

import (
	"errors"

	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/operation"
	"github.com/dshills/richtext/internal/engine/path"
	"github.com/dshills/richtext/internal/engine/selection"
)

// Errors returned by engine operations. The first four are the error
// taxonomy of the sub-packages, re-exported for errors.Is.
var (
	// ErrNodeNotFound indicates a path or key absent from the document.
	ErrNodeNotFound = node.ErrNodeNotFound

	// ErrInvalidPath indicates a malformed path argument.
	ErrInvalidPath = path.ErrInvalidPath

	// ErrInvalidOperation indicates a violated operation precondition.
	ErrInvalidOperation = operation.ErrInvalidOperation

	// ErrStalePoint indicates a point whose key no longer resolves.
	ErrStalePoint = selection.ErrStalePoint

	// ErrReadOnly indicates an edit was attempted on a read-only engine.
	ErrReadOnly = errors.New("engine is read-only")

	// ErrSnapshotNotFound indicates a snapshot name was not found.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrRevisionNotFound indicates a revision outside the retained log.
	ErrRevisionNotFound = errors.New("revision not found")
)
