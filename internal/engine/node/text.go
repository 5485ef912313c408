package node

import "unicode/utf8"

// byteIndex converts a rune offset into a byte index of s.
// Offsets past the end clamp to len(s).
func byteIndex(s string, offset int) int {
	if offset <= 0 {
		return 0
	}
	i := 0
	for n := 0; n < offset && i < len(s); n++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}

// SliceRunes returns s[start:end] with the bounds measured in runes.
func SliceRunes(s string, start, end int) string {
	if end < start {
		return ""
	}
	b := byteIndex(s, start)
	return s[b : b+byteIndex(s[b:], end-start)]
}

// InsertText returns a copy of t with s spliced in at offset.
func (t *Text) InsertText(offset int, s string) *Text {
	i := byteIndex(t.text, offset)
	return t.WithText(t.text[:i] + s + t.text[i:])
}

// RemoveText returns a copy of t with n runes removed starting at offset.
func (t *Text) RemoveText(offset, n int) *Text {
	start := byteIndex(t.text, offset)
	end := start + byteIndex(t.text[start:], n)
	return t.WithText(t.text[:start] + t.text[end:])
}

// SplitText partitions t at offset. The first half keeps t's key; the
// second half takes key and shares t's marks.
func (t *Text) SplitText(offset int, key string) (*Text, *Text) {
	i := byteIndex(t.text, offset)
	return t.WithText(t.text[:i]), &Text{key: key, text: t.text[i:], marks: t.marks}
}
