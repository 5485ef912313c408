// Package engine provides the document engine facade for richtext.
//
// The engine holds the current document value and applies operations to
// it one at a time. Every edit is a pure function from one immutable
// value to the next, so readers can keep any value they obtained for as
// long as they like; the engine only serializes the swap of "the current
// value".
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - path: positional addresses of nodes and their algebra
//   - node: the immutable document tree, traversal and queries
//   - selection: keyed points, ranges and annotations
//   - value: the (document, selection, annotations) snapshot
//   - operation: primitive invertible edits with selection repair
//   - position: cursor movement by offset, character, word or line
//   - marks: formatting active at the selection
//
// # Thread Safety
//
// All Engine methods are safe for concurrent use. Reads take a read lock
// and return immutable values; writes are serialized.
//
// # Basic Usage
//
//	doc := node.NewDocument("doc",
//		node.NewElement("p", "paragraph", node.NewText("t", "word")),
//	)
//	e := engine.New(doc)
//
//	// Place the cursor after "wo" and split the paragraph there.
//	e.Select(selection.Collapsed(selection.NewPoint("t", 2)))
//	e.SplitBlockAtSelection()
//
//	// Walk the cursor positions of the new document by word.
//	it := e.Positions(position.Options{Unit: position.Word})
//	for it.Next() {
//		fmt.Println(it.Point())
//	}
//
// # Change Log
//
// Each applied operation advances the revision and is recorded together
// with its inverse. Hosts that implement undo can replay the inverses;
// the engine itself keeps no undo stack.
//
//	rev := e.RevisionID()
//	e.Apply(op)
//	changes, _ := e.ChangesSince(rev)
//
// # Snapshots
//
// Named snapshots capture the whole value at a point in time. They cost
// nothing beyond keeping the value reachable.
//
//	e.CreateSnapshot("before-import")
//	snap, _ := e.Snapshot("before-import")
//	doc := snap.Value.Document()
//
// RestoreSnapshot makes a snapshot current again and clears the change log.
package engine
