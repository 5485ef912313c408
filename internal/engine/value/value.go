// Package value holds the immutable editor snapshot: a document tree, the
// selection and the annotations attached to it.
//
// A Value is never modified. Every method returns a new Value sharing all
// unchanged parts with the old one: the document through node structural
// sharing, the annotations through a persistent hash map. Readers may keep
// an old Value for as long as they like.
package value

import (
	"sort"

	"github.com/xiaq/persistent/hash"
	"github.com/xiaq/persistent/hashmap"

	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/selection"
)

var emptyAnnotations = hashmap.New(
	func(a, b any) bool { return a.(string) == b.(string) },
	func(k any) uint32 { return hash.String(k.(string)) },
)

// Value is a snapshot of (document, selection, annotations).
type Value struct {
	document    *node.Document
	selection   selection.Range
	annotations hashmap.Map
}

// New creates a value for doc with no selection and no annotations.
func New(doc *node.Document) Value {
	return Value{document: doc, annotations: emptyAnnotations}
}

// Document returns the document tree.
func (v Value) Document() *node.Document {
	return v.document
}

// Selection returns the current selection. It may be unset.
func (v Value) Selection() selection.Range {
	return v.selection
}

// WithDocument returns a value holding doc.
func (v Value) WithDocument(doc *node.Document) Value {
	v.document = doc
	return v
}

// WithSelection returns a value holding r as its selection.
func (v Value) WithSelection(r selection.Range) Value {
	v.selection = r
	return v
}

func (v Value) annotationMap() hashmap.Map {
	if v.annotations == nil {
		return emptyAnnotations
	}
	return v.annotations
}

// Annotation returns the annotation with key.
func (v Value) Annotation(key string) (selection.Annotation, bool) {
	a, ok := v.annotationMap().Index(key)
	if !ok {
		return selection.Annotation{}, false
	}
	return a.(selection.Annotation), true
}

// NumAnnotations returns the number of annotations.
func (v Value) NumAnnotations() int {
	return v.annotationMap().Len()
}

// AnnotationKeys returns the annotation keys in sorted order.
func (v Value) AnnotationKeys() []string {
	keys := make([]string, 0, v.NumAnnotations())
	for it := v.annotationMap().Iterator(); it.HasElem(); it.Next() {
		k, _ := it.Elem()
		keys = append(keys, k.(string))
	}
	sort.Strings(keys)
	return keys
}

// Annotations returns every annotation, sorted by key.
func (v Value) Annotations() []selection.Annotation {
	keys := v.AnnotationKeys()
	out := make([]selection.Annotation, len(keys))
	for i, k := range keys {
		out[i], _ = v.Annotation(k)
	}
	return out
}

// SetAnnotation returns a value with a stored under a.Key.
func (v Value) SetAnnotation(a selection.Annotation) Value {
	v.annotations = v.annotationMap().Assoc(a.Key, a)
	return v
}

// RemoveAnnotation returns a value without the annotation for key.
func (v Value) RemoveAnnotation(key string) Value {
	v.annotations = v.annotationMap().Dissoc(key)
	return v
}

// MapRanges applies fn to the selection and to every annotation's range.
// Annotations whose range becomes unset are dropped.
func (v Value) MapRanges(fn func(selection.Range) selection.Range) Value {
	if v.selection.IsSet() {
		v.selection = fn(v.selection)
	}
	m := v.annotationMap()
	for it := m.Iterator(); it.HasElem(); it.Next() {
		k, a := it.Elem()
		ann := a.(selection.Annotation)
		r := fn(ann.Range)
		if r.IsUnset() {
			m = m.Dissoc(k)
			continue
		}
		m = m.Assoc(k, ann.WithRange(r))
	}
	v.annotations = m
	return v
}

// MapPoints applies fn to every point of every range.
func (v Value) MapPoints(fn func(selection.Point) selection.Point) Value {
	return v.MapRanges(func(r selection.Range) selection.Range {
		return r.UpdatePoints(fn)
	})
}

// Resolve returns the value with every point's path cache recomputed.
// Points whose key no longer resolves are left as they are.
func (v Value) Resolve() Value {
	doc := v.document
	return v.MapPoints(func(p selection.Point) selection.Point {
		if r, err := p.Resolve(doc); err == nil {
			return r
		}
		return p
	})
}

// Texts is a shorthand for iterating the document's texts.
func (v Value) Texts(opts node.IterOptions) *node.Iterator {
	return node.Texts(v.document, opts)
}
