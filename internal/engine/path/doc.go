// Package path implements the addressing algebra for the document tree.
//
// A Path is a sequence of child indices walked from the document root.
// The empty path addresses the root itself. Paths are compared
// lexicographically, which gives document order: an ancestor always sorts
// before its descendants, and an earlier sibling subtree sorts before a
// later one.
//
// Paths are not stable across structural edits. The Transform helpers
// describe how a path shifts when a sibling is inserted or removed before
// it.
//
// All functions are pure. They never modify their arguments and always
// return freshly allocated slices, so callers may hold paths indefinitely.
package path
