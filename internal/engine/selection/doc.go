// Package selection provides points, ranges and annotations anchored to
// node keys.
//
// A Point identifies a cursor location by the key of a text node and a
// rune offset into it. The key is the durable identity; the Path field is
// only a cache that structural edits invalidate (set to nil). Resolve
// recomputes it from the current document before use.
//
// A Range is an anchor/focus pair. The anchor is where the interaction
// began and the focus is where it currently is, so a range carries a
// direction; Edges sorts the pair into document order. A range with unset
// points is inert and represents "no selection".
//
// Point, Range and Annotation are immutable value types and safe for
// concurrent use.
package selection
