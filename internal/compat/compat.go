// Package compat keeps legacy value accessors working during migration.
//
// Each accessor logs a deprecation warning, once per wrapper, and answers
// through the modern selection and node queries. Accessors whose concept no
// longer exists fail with ErrRemoved.
package compat

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/selection"
	"github.com/dshills/richtext/internal/engine/value"
	"github.com/dshills/richtext/internal/logging"
)

// ErrRemoved indicates an accessor whose backing concept was removed.
var ErrRemoved = errors.New("removed")

// RemovedError names a removed accessor and what replaced it.
type RemovedError struct {
	Name        string
	Replacement string
}

func (e *RemovedError) Error() string {
	return fmt.Sprintf("%s was removed; use %s", e.Name, e.Replacement)
}

// Is matches ErrRemoved.
func (e *RemovedError) Is(target error) bool {
	return target == ErrRemoved
}

// Value wraps a value with the legacy accessors.
type Value struct {
	v      value.Value
	logger *logging.Logger

	mu     sync.Mutex
	warned map[string]bool
}

// Wrap returns the legacy view of v. A nil logger uses logging.Default.
func Wrap(v value.Value, logger *logging.Logger) *Value {
	if logger == nil {
		logger = logging.Default()
	}
	return &Value{v: v, logger: logger.WithComponent("compat"), warned: make(map[string]bool)}
}

// Value returns the wrapped value.
func (c *Value) Value() value.Value {
	return c.v
}

func (c *Value) deprecated(name, replacement string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.warned[name] {
		return
	}
	c.warned[name] = true
	c.logger.WithField("accessor", name).Warn("%s is deprecated; use %s", name, replacement)
}

// AnchorKey returns the key of the selection anchor.
//
// Deprecated: use Selection().Anchor.Key.
func (c *Value) AnchorKey() string {
	c.deprecated("anchorKey", "selection.anchor.key")
	return c.v.Selection().Anchor.Key
}

// AnchorOffset returns the offset of the selection anchor.
//
// Deprecated: use Selection().Anchor.Offset.
func (c *Value) AnchorOffset() int {
	c.deprecated("anchorOffset", "selection.anchor.offset")
	return c.v.Selection().Anchor.Offset
}

// FocusKey returns the key of the selection focus.
//
// Deprecated: use Selection().Focus.Key.
func (c *Value) FocusKey() string {
	c.deprecated("focusKey", "selection.focus.key")
	return c.v.Selection().Focus.Key
}

// FocusOffset returns the offset of the selection focus.
//
// Deprecated: use Selection().Focus.Offset.
func (c *Value) FocusOffset() int {
	c.deprecated("focusOffset", "selection.focus.offset")
	return c.v.Selection().Focus.Offset
}

// edges falls back to anchor and focus when the selection cannot be
// ordered.
func (c *Value) edges() (start, end selection.Point) {
	r := c.v.Selection()
	start, end, err := r.Edges(c.v.Document())
	if err != nil {
		c.logger.Debug("selection edges: %v", err)
		return r.Anchor, r.Focus
	}
	return start, end
}

// StartKey returns the key of the earlier selection edge.
//
// Deprecated: use Selection().Edges.
func (c *Value) StartKey() string {
	c.deprecated("startKey", "selection.edges")
	start, _ := c.edges()
	return start.Key
}

// StartOffset returns the offset of the earlier selection edge.
//
// Deprecated: use Selection().Edges.
func (c *Value) StartOffset() int {
	c.deprecated("startOffset", "selection.edges")
	start, _ := c.edges()
	return start.Offset
}

// EndKey returns the key of the later selection edge.
//
// Deprecated: use Selection().Edges.
func (c *Value) EndKey() string {
	c.deprecated("endKey", "selection.edges")
	_, end := c.edges()
	return end.Key
}

// EndOffset returns the offset of the later selection edge.
//
// Deprecated: use Selection().Edges.
func (c *Value) EndOffset() int {
	c.deprecated("endOffset", "selection.edges")
	_, end := c.edges()
	return end.Offset
}

// StartText returns the text node holding the earlier selection edge.
//
// Deprecated: resolve the start point and use node.GetText.
func (c *Value) StartText() (*node.Text, bool) {
	c.deprecated("startText", "node.GetText on the resolved start point")
	start, _ := c.edges()
	p, err := start.Resolve(c.v.Document())
	if err != nil {
		return nil, false
	}
	t, err := node.GetText(c.v.Document(), p.Path)
	if err != nil {
		return nil, false
	}
	return t, true
}

// IsBackward reports whether the focus precedes the anchor. An
// unorderable selection is reported as forward.
//
// Deprecated: use Selection().IsBackward.
func (c *Value) IsBackward() bool {
	c.deprecated("isBackward", "selection.isBackward")
	backward, err := c.v.Selection().IsBackward(c.v.Document())
	return err == nil && backward
}

// Texts returns every text node in document order.
//
// Deprecated: use node.Texts.
func (c *Value) Texts() []*node.Text {
	c.deprecated("texts", "node.Texts")
	var out []*node.Text
	it := node.Texts(c.v.Document(), node.IterOptions{})
	for it.Next() {
		out = append(out, it.Entry().Node.(*node.Text))
	}
	return out
}

// Decorations always fails: decorations were replaced by annotations.
func (c *Value) Decorations() error {
	return &RemovedError{Name: "decorations", Replacement: "annotations"}
}

// History always fails: undo history is no longer part of the value.
func (c *Value) History() error {
	return &RemovedError{Name: "history", Replacement: "the host's change log"}
}
