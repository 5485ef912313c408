package position

import (
	"strings"

	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/path"
	"github.com/dshills/richtext/internal/engine/selection"
)

// Options configures an Iterator.
type Options struct {
	// Point is where iteration starts. It is not itself yielded. When
	// unset, iteration starts at the beginning of the document, or at the
	// end when Reverse is set.
	Point   selection.Point
	Unit    Unit
	Reverse bool
}

// Iterator yields cursor positions one step at a time. An empty block
// directly after a void has no position of its own.
//
//	it := position.New(doc, position.Options{Unit: position.Word})
//	for it.Next() {
//		fmt.Println(it.Point())
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator struct {
	doc   *node.Document
	opts  Options
	start selection.Point
	cur   selection.Point
	err   error
	done  bool
}

// New creates an iterator over doc.
func New(doc *node.Document, opts Options) *Iterator {
	it := &Iterator{doc: doc, opts: opts}
	it.start, it.done, it.err = it.initial()
	it.cur = it.start
	return it
}

func (it *Iterator) initial() (selection.Point, bool, error) {
	if it.opts.Point.IsSet() {
		p, err := it.opts.Point.Normalize(it.doc)
		return p, false, err
	}
	var e node.Entry
	var ok bool
	if it.opts.Reverse {
		e, ok = node.LastText(it.doc)
	} else {
		e, ok = node.FirstText(it.doc)
	}
	if !ok {
		return selection.Point{}, true, nil
	}
	offset := 0
	if it.opts.Reverse {
		offset = e.Node.(*node.Text).Len()
	}
	return at(e, offset), false, nil
}

// Next advances to the next position. It returns false when there is
// none, or when the starting point could not be resolved.
func (it *Iterator) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	from := it.canonical(it.cur)
	p := it.cur
	for {
		var ok bool
		if it.opts.Reverse {
			p, ok = it.backward(p)
		} else {
			p, ok = it.forward(p)
		}
		if !ok {
			it.done = true
			return false
		}
		if c := it.canonical(p); !c.Equal(from) {
			it.cur = c
			return true
		}
	}
}

// Point returns the current position. Its path is resolved.
func (it *Iterator) Point() selection.Point {
	return it.cur
}

// Err returns the error that stopped iteration, if any.
func (it *Iterator) Err() error {
	return it.err
}

// Reset restarts iteration from the starting point.
func (it *Iterator) Reset() {
	it.cur = it.start
	it.done = it.err != nil || !it.start.IsSet()
}

// Collect runs a fresh iterator to the end and returns every position.
func Collect(doc *node.Document, opts Options) ([]selection.Point, error) {
	it := New(doc, opts)
	var out []selection.Point
	for it.Next() {
		out = append(out, it.Point())
	}
	return out, it.Err()
}

// span is one text of a block, in document order.
type span struct {
	path path.Path
	text *node.Text
	void bool
}

func at(e node.Entry, offset int) selection.Point {
	return selection.Point{Key: e.Node.Key(), Path: e.Path, Offset: offset}
}

func (s span) point(offset int) selection.Point {
	return selection.Point{Key: s.text.Key(), Path: s.path, Offset: offset}
}

// block returns the closest block around p, or the document when the
// text has no block ancestor.
func (it *Iterator) block(p path.Path) node.Entry {
	if b, ok, err := node.ClosestBlock(it.doc, p); err == nil && ok {
		return b
	}
	return node.Entry{Node: it.doc, Path: path.Root()}
}

func (it *Iterator) void(p path.Path) (node.Entry, bool) {
	v, ok, err := node.FurthestVoid(it.doc, p)
	return v, ok && err == nil
}

// voidPoint returns the single position of the void around p.
func (it *Iterator) voidPoint(p path.Path) selection.Point {
	v, _ := it.void(p)
	first, ok := node.FirstText(v.Node)
	if !ok {
		return selection.Point{Key: v.Node.Key(), Path: v.Path}
	}
	return at(node.Entry{Node: first.Node, Path: append(v.Path.Clone(), first.Path...)}, 0)
}

// spans lists the texts of block and returns the index of the text with
// key.
func (it *Iterator) spans(block node.Entry, key string) ([]span, int) {
	var out []span
	idx := -1
	for ti := node.Texts(block.Node, node.IterOptions{}); ti.Next(); {
		e := ti.Entry()
		abs := append(block.Path.Clone(), e.Path...)
		_, void := it.void(abs)
		if e.Node.Key() == key {
			idx = len(out)
		}
		out = append(out, span{path: abs, text: e.Node.(*node.Text), void: void})
	}
	return out, idx
}

// canonical maps p to the position it is identified with: the void it
// sits in or directly follows, or the end of the previous text of the
// same block.
func (it *Iterator) canonical(p selection.Point) selection.Point {
	for {
		if _, ok := it.void(p.Path); ok {
			return it.voidPoint(p.Path)
		}
		if p.Offset > 0 {
			return p
		}
		spans, i := it.spans(it.block(p.Path), p.Key)
		if i > 0 {
			prev := spans[i-1]
			if prev.void {
				return it.voidPoint(prev.path)
			}
			p = prev.point(prev.text.Len())
			continue
		}
		if prev, ok, err := node.PreviousText(it.doc, p.Path); err == nil && ok {
			if _, void := it.void(prev.Path); void {
				return it.voidPoint(prev.Path)
			}
		}
		return p
	}
}

func (it *Iterator) forward(cur selection.Point) (selection.Point, bool) {
	if v, ok := it.void(cur.Path); ok {
		next, ok, err := node.NextText(it.doc, v.Path)
		if err != nil || !ok {
			return selection.Point{}, false
		}
		return at(next, 0), true
	}

	blk := it.block(cur.Path)
	spans, i := it.spans(blk, cur.Key)
	if i < 0 {
		return selection.Point{}, false
	}
	var ahead strings.Builder
	ahead.WriteString(node.SliceRunes(spans[i].text.Text(), cur.Offset, spans[i].text.Len()))
	stop := -1
	for j := i + 1; j < len(spans); j++ {
		if spans[j].void {
			stop = j
			break
		}
		ahead.WriteString(spans[j].text.Text())
	}

	d := it.opts.Unit.forward(ahead.String())
	if d == 0 {
		if stop >= 0 {
			return it.voidPoint(spans[stop].path), true
		}
		next, ok, err := node.NextText(it.doc, blk.Path)
		if err != nil || !ok {
			return selection.Point{}, false
		}
		return at(next, 0), true
	}
	for t, o := i, cur.Offset; ; t, o = t+1, 0 {
		avail := spans[t].text.Len() - o
		if d <= avail {
			return spans[t].point(o + d), true
		}
		d -= avail
	}
}

func (it *Iterator) backward(cur selection.Point) (selection.Point, bool) {
	if v, ok := it.void(cur.Path); ok {
		prev, ok, err := node.PreviousText(it.doc, v.Path)
		if err != nil || !ok {
			return selection.Point{}, false
		}
		return at(prev, prev.Node.(*node.Text).Len()), true
	}

	blk := it.block(cur.Path)
	spans, i := it.spans(blk, cur.Key)
	if i < 0 {
		return selection.Point{}, false
	}
	parts := []string{node.SliceRunes(spans[i].text.Text(), 0, cur.Offset)}
	stop := -1
	for j := i - 1; j >= 0; j-- {
		if spans[j].void {
			stop = j
			break
		}
		parts = append(parts, spans[j].text.Text())
	}
	var behind strings.Builder
	for j := len(parts) - 1; j >= 0; j-- {
		behind.WriteString(parts[j])
	}

	d := it.opts.Unit.backward(behind.String())
	if d == 0 {
		if stop >= 0 {
			return it.voidPoint(spans[stop].path), true
		}
		prev, ok, err := node.PreviousText(it.doc, blk.Path)
		if err != nil || !ok {
			return selection.Point{}, false
		}
		return at(prev, prev.Node.(*node.Text).Len()), true
	}
	for t, o := i, cur.Offset; ; {
		if d <= o {
			return spans[t].point(o - d), true
		}
		d -= o
		t--
		o = spans[t].text.Len()
	}
}
