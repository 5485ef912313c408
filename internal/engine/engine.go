package engine

import (
	"sort"
	"sync"

	"github.com/dshills/richtext/internal/engine/marks"
	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/operation"
	"github.com/dshills/richtext/internal/engine/path"
	"github.com/dshills/richtext/internal/engine/position"
	"github.com/dshills/richtext/internal/engine/selection"
	"github.com/dshills/richtext/internal/engine/value"
	"github.com/dshills/richtext/internal/logging"
)

// RevisionID identifies the state after an applied operation.
type RevisionID uint64

// Change is one applied operation and the operation that undoes it.
type Change struct {
	Revision RevisionID
	Op       operation.Operation
	Inverse  operation.Operation
}

// Snapshot is a named value captured at a revision.
type Snapshot struct {
	Name     string
	Revision RevisionID
	Value    value.Value
}

// Engine is the facade over a document value.
// It applies operations one at a time and records them in a change log.
//
// All operations are thread-safe and can be called from multiple goroutines.
type Engine struct {
	mu sync.RWMutex

	val    value.Value
	keys   node.KeyGenerator
	logger *logging.Logger

	// Configuration
	maxChanges int
	readOnly   bool

	// Change log. Revisions in (base, revision] are retained.
	revision RevisionID
	base     RevisionID
	changes  []Change

	snapshots map[string]Snapshot
}

// New creates an engine holding doc with no selection.
func New(doc *node.Document, opts ...Option) *Engine {
	return NewFromValue(value.New(doc), opts...)
}

// NewFromValue creates an engine holding v.
func NewFromValue(v value.Value, opts ...Option) *Engine {
	e := &Engine{
		val:        v,
		keys:       node.DefaultKeys,
		logger:     logging.Default(),
		maxChanges: DefaultMaxChanges,
		snapshots:  make(map[string]Snapshot),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithComponent("engine")
	return e
}

// ============================================================================
// Read Operations
// ============================================================================

// Value returns the current value.
func (e *Engine) Value() value.Value {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.val
}

// Document returns the current document.
func (e *Engine) Document() *node.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.val.Document()
}

// Selection returns the current selection.
func (e *Engine) Selection() selection.Range {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.val.Selection()
}

// Text returns the concatenated text of the document.
func (e *Engine) Text() string {
	return node.TextOf(e.Document())
}

// Positions returns an iterator over the cursor positions of the current
// document. The iterator reads the document as it is now; later edits do
// not affect it.
func (e *Engine) Positions(opts position.Options) *position.Iterator {
	return position.New(e.Document(), opts)
}

// ActiveMarks returns the marks active at the current selection.
func (e *Engine) ActiveMarks(union bool) (node.MarkSet, error) {
	return marks.Active(e.Value(), union)
}

// IsReadOnly returns true if the engine rejects edits.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// ============================================================================
// Write Operations
// ============================================================================

// Apply applies ops in order. The batch is all-or-nothing: on error the
// current value is unchanged. Split operations without a key get one from
// the engine's key generator.
func (e *Engine) Apply(ops ...operation.Operation) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.applyLocked(operation.AssignKeys(e.keys, ops...))
}

func (e *Engine) applyLocked(ops []operation.Operation) error {
	if e.readOnly {
		return ErrReadOnly
	}
	v := e.val
	changes := make([]Change, 0, len(ops))
	for i, op := range ops {
		inv, err := op.Invert(v)
		if err == nil {
			v, err = op.Apply(v)
		}
		if err != nil {
			e.logger.Debug("rejected %s: %v", op.Type(), err)
			return &operation.BatchError{Index: i, Op: op.Type(), Err: err}
		}
		changes = append(changes, Change{Op: op, Inverse: inv})
	}

	e.val = v
	for _, c := range changes {
		e.revision++
		c.Revision = e.revision
		e.changes = append(e.changes, c)
		e.logger.WithField("rev", e.revision).Debug("applied %s %+v", c.Op.Type(), c.Op)
	}
	e.trimLocked()
	return nil
}

func (e *Engine) trimLocked() {
	if over := len(e.changes) - e.maxChanges; over > 0 {
		e.base = e.changes[over-1].Revision
		e.changes = append([]Change(nil), e.changes[over:]...)
	}
}

// Select replaces the selection.
func (e *Engine) Select(r selection.Range) error {
	return e.Apply(operation.SetSelection{Selection: r})
}

// SplitBlock splits the block at blockPath at a block-relative character
// offset.
func (e *Engine) SplitBlock(blockPath path.Path, offset int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ops, err := operation.SplitBlock(e.val, blockPath, offset, e.keys)
	if err != nil {
		return err
	}
	return e.applyLocked(ops)
}

// SplitBlockAtSelection splits the block around the collapsed selection.
func (e *Engine) SplitBlockAtSelection() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ops, err := operation.SplitBlockAtSelection(e.val, e.keys)
	if err != nil {
		return err
	}
	return e.applyLocked(ops)
}

// Resolve refreshes the path cache of every point. It is not an edit and
// does not advance the revision.
func (e *Engine) Resolve() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.val = e.val.Resolve()
}

// SetValue replaces the whole value. The change log is cleared.
func (e *Engine) SetValue(v value.Value) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return ErrReadOnly
	}
	e.val = v
	e.revision++
	e.base = e.revision
	e.changes = nil
	e.logger.Info("value replaced at revision %d", e.revision)
	return nil
}

// ============================================================================
// Change Log
// ============================================================================

// RevisionID returns the current revision.
func (e *Engine) RevisionID() RevisionID {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.revision
}

// ChangesSince returns the changes applied after rev, oldest first.
func (e *Engine) ChangesSince(rev RevisionID) ([]Change, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if rev < e.base || rev > e.revision {
		return nil, ErrRevisionNotFound
	}
	i := sort.Search(len(e.changes), func(i int) bool { return e.changes[i].Revision > rev })
	return append([]Change(nil), e.changes[i:]...), nil
}

// LatestChanges returns up to n of the most recent changes, oldest first.
func (e *Engine) LatestChanges(n int) []Change {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if n > len(e.changes) {
		n = len(e.changes)
	}
	return append([]Change(nil), e.changes[len(e.changes)-n:]...)
}

// ChangeCount returns the number of retained changes.
func (e *Engine) ChangeCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.changes)
}

// ============================================================================
// Snapshots
// ============================================================================

// CreateSnapshot captures the current value under name, replacing any
// snapshot with the same name.
func (e *Engine) CreateSnapshot(name string) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := Snapshot{Name: name, Revision: e.revision, Value: e.val}
	e.snapshots[name] = s
	return s
}

// Snapshot returns the snapshot with name.
func (e *Engine) Snapshot(name string) (Snapshot, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.snapshots[name]
	if !ok {
		return Snapshot{}, ErrSnapshotNotFound
	}
	return s, nil
}

// DeleteSnapshot removes the snapshot with name.
func (e *Engine) DeleteSnapshot(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.snapshots, name)
}

// ListSnapshots returns every snapshot, sorted by name.
func (e *Engine) ListSnapshots() []Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]Snapshot, 0, len(e.snapshots))
	for _, s := range e.snapshots {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RestoreSnapshot makes the snapshot's value current. It is an edit: the
// engine must be writable and the change log is cleared.
func (e *Engine) RestoreSnapshot(name string) error {
	s, err := e.Snapshot(name)
	if err != nil {
		return err
	}
	return e.SetValue(s.Value)
}
