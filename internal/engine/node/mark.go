package node

import (
	"slices"
	"sort"
	"strings"
)

// Mark is a named formatting property attached to text.
type Mark struct {
	Key        string
	Properties Data
}

// NewMark creates a mark with no properties.
func NewMark(key string) Mark {
	return Mark{Key: key}
}

// Equal reports whether two marks have the same key and properties.
func (m Mark) Equal(other Mark) bool {
	return m.Key == other.Key && m.Properties.Equal(other.Properties)
}

// MarkSet is an immutable set of marks with at most one mark per key.
// Marks are kept sorted by key so equal sets compare equal.
type MarkSet struct {
	marks []Mark
}

// NewMarkSet builds a set from marks. Later marks win on duplicate keys.
func NewMarkSet(marks ...Mark) MarkSet {
	var s MarkSet
	for _, m := range marks {
		s = s.Add(m)
	}
	return s
}

// Len returns the number of marks.
func (s MarkSet) Len() int {
	return len(s.marks)
}

// IsEmpty returns true if the set has no marks.
func (s MarkSet) IsEmpty() bool {
	return len(s.marks) == 0
}

// All returns a copy of the marks in key order.
func (s MarkSet) All() []Mark {
	return slices.Clone(s.marks)
}

// Keys returns the mark keys in order.
func (s MarkSet) Keys() []string {
	keys := make([]string, len(s.marks))
	for i, m := range s.marks {
		keys[i] = m.Key
	}
	return keys
}

func (s MarkSet) find(key string) (int, bool) {
	i := sort.Search(len(s.marks), func(i int) bool { return s.marks[i].Key >= key })
	return i, i < len(s.marks) && s.marks[i].Key == key
}

// Get returns the mark with the given key.
func (s MarkSet) Get(key string) (Mark, bool) {
	i, ok := s.find(key)
	if !ok {
		return Mark{}, false
	}
	return s.marks[i], true
}

// Has reports whether the set contains a mark with the given key.
func (s MarkSet) Has(key string) bool {
	_, ok := s.find(key)
	return ok
}

// Contains reports whether the set holds a mark equal to m.
func (s MarkSet) Contains(m Mark) bool {
	got, ok := s.Get(m.Key)
	return ok && got.Equal(m)
}

// Add returns a set that includes m, replacing any mark with the same key.
func (s MarkSet) Add(m Mark) MarkSet {
	i, ok := s.find(m.Key)
	out := make([]Mark, 0, len(s.marks)+1)
	out = append(out, s.marks[:i]...)
	out = append(out, m)
	if ok {
		i++
	}
	out = append(out, s.marks[i:]...)
	return MarkSet{marks: out}
}

// Remove returns a set without the mark for key.
func (s MarkSet) Remove(key string) MarkSet {
	i, ok := s.find(key)
	if !ok {
		return s
	}
	out := make([]Mark, 0, len(s.marks)-1)
	out = append(out, s.marks[:i]...)
	out = append(out, s.marks[i+1:]...)
	return MarkSet{marks: out}
}

// Set merges properties onto the mark with the given key.
func (s MarkSet) Set(key string, properties Data) (MarkSet, bool) {
	m, ok := s.Get(key)
	if !ok {
		return s, false
	}
	m.Properties = m.Properties.Merge(properties)
	return s.Add(m), true
}

// Intersect returns the marks present and equal in both sets.
func (s MarkSet) Intersect(other MarkSet) MarkSet {
	var out []Mark
	for _, m := range s.marks {
		if other.Contains(m) {
			out = append(out, m)
		}
	}
	return MarkSet{marks: out}
}

// Union returns s plus every mark of other whose key is not yet present.
func (s MarkSet) Union(other MarkSet) MarkSet {
	out := s
	for _, m := range other.marks {
		if !out.Has(m.Key) {
			out = out.Add(m)
		}
	}
	return out
}

// Equal reports whether both sets hold the same marks.
func (s MarkSet) Equal(other MarkSet) bool {
	return slices.EqualFunc(s.marks, other.marks, Mark.Equal)
}

// String returns the keys joined by commas.
func (s MarkSet) String() string {
	return "{" + strings.Join(s.Keys(), ",") + "}"
}
