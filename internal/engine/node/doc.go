// Package node implements the immutable document tree.
//
// A tree is rooted at a Document whose children are Elements; Elements
// hold Elements or Text leaves. Every node carries a stable key that
// survives moves, splits and merges, while its position is expressed by a
// path.Path recomputed from the root. Nodes never point back to their
// parents.
//
// Nodes are never modified in place. Every "With" method and every tree
// edit returns a new value that shares all unchanged subtrees with the
// original, so old snapshots stay valid for as long as anyone holds them.
//
// Tree Shape:
//
//	Document
//	├── Element (block)
//	│   ├── Text "Hello "
//	│   ├── Element (inline, "link")
//	│   │   └── Text "world"
//	│   └── Text ""
//	└── Element (block, void, "image")
//	    └── Text ""
//
// Void elements are atomic: their descendants are never addressed by the
// cursor and contribute no characters to TextOf, Length or Offset.
package node
