package engine

import (
	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/selection"
	"github.com/dshills/richtext/internal/logging"
)

// DefaultMaxChanges is the number of changes kept in the change log.
const DefaultMaxChanges = 10000

// Option configures an Engine during creation.
type Option func(*Engine)

// WithSelection sets the initial selection.
func WithSelection(r selection.Range) Option {
	return func(e *Engine) {
		e.val = e.val.WithSelection(r)
	}
}

// WithAnnotations adds initial annotations.
func WithAnnotations(annotations ...selection.Annotation) Option {
	return func(e *Engine) {
		for _, a := range annotations {
			e.val = e.val.SetAnnotation(a)
		}
	}
}

// WithKeyGenerator sets the generator for keys of nodes created by splits.
func WithKeyGenerator(keys node.KeyGenerator) Option {
	return func(e *Engine) {
		if keys != nil {
			e.keys = keys
		}
	}
}

// WithLogger sets the logger. Operations are logged at debug level.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxChanges sets the maximum number of changes kept in the log.
func WithMaxChanges(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxChanges = max
		}
	}
}

// WithReadOnly creates a read-only engine.
// Edits will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}
