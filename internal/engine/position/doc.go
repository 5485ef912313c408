// Package position walks the cursor positions of a document.
//
// An Iterator starts at a point and steps forward or backward by a unit:
// one code point, one grapheme cluster, one word, or the rest of the
// block. Each step yields the next valid cursor position.
//
// A few positions are identified with each other so that every distinct
// cursor location is yielded once:
//
//   - Between two texts of one block, the position is reported at the end
//     of the earlier text.
//   - A void element is atomic. Its only position is offset 0 of its first
//     text, and the position directly after it (offset 0 of the next text)
//     is the same position.
//
// Iteration reads a single document snapshot and holds no other state, so
// an Iterator can be dropped at any time or restarted with Reset.
package position
