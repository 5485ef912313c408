package codec

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/selection"
	"github.com/dshills/richtext/internal/engine/value"
)

// Decoder turns JSON records into nodes and values.
type Decoder struct {
	// Schema fills in void and inline flags a record omits.
	Schema Schema
	// Keys generates keys for records without one. Defaults to
	// node.DefaultKeys.
	Keys node.KeyGenerator
}

// DecodeNode decodes a single node record.
func (d *Decoder) DecodeNode(data []byte) (node.Node, error) {
	root, err := parse(data)
	if err != nil {
		return nil, err
	}
	st := d.state()
	return st.node(root, "")
}

// DecodeDocument decodes a document record.
func (d *Decoder) DecodeDocument(data []byte) (*node.Document, error) {
	root, err := parse(data)
	if err != nil {
		return nil, err
	}
	return d.state().document(root, "")
}

// DecodeValue decodes a value record. Every point must name a text node
// of the document.
func (d *Decoder) DecodeValue(data []byte) (value.Value, error) {
	root, err := parse(data)
	if err != nil {
		return value.Value{}, err
	}
	if !root.IsObject() {
		return value.Value{}, invalid("", "value must be an object")
	}
	st := d.state()
	doc, err := st.document(root.Get("document"), "document")
	if err != nil {
		return value.Value{}, err
	}
	v := value.New(doc)

	if sel := root.Get("selection"); sel.Exists() && sel.Type != gjson.Null {
		r, err := st.rangeOf(sel, "selection", doc)
		if err != nil {
			return value.Value{}, err
		}
		v = v.WithSelection(r)
	}

	for i, rec := range root.Get("annotations").Array() {
		at := fmt.Sprintf("annotations.%d", i)
		a, err := st.annotation(rec, at, doc)
		if err != nil {
			return value.Value{}, err
		}
		if _, dup := v.Annotation(a.Key); dup {
			return value.Value{}, invalid(at, "duplicate annotation key %q", a.Key)
		}
		v = v.SetAnnotation(a)
	}
	return v, nil
}

func parse(data []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("decode: %w", ErrSyntax)
	}
	return gjson.ParseBytes(data), nil
}

// decodeState tracks keys seen in one decode call.
type decodeState struct {
	*Decoder
	keys node.KeyGenerator
	seen map[string]bool
}

func (d *Decoder) state() *decodeState {
	keys := d.Keys
	if keys == nil {
		keys = node.DefaultKeys
	}
	return &decodeState{Decoder: d, keys: keys, seen: make(map[string]bool)}
}

func join(at, field string) string {
	if at == "" {
		return field
	}
	return at + "." + field
}

func (st *decodeState) key(rec gjson.Result, at string) (string, error) {
	k := rec.Get("key")
	if k.Exists() && k.Type != gjson.String {
		return "", invalid(at, "key must be a string")
	}
	key := k.String()
	if key == "" {
		key = st.keys.NewKey()
	}
	if st.seen[key] {
		return "", invalid(at, "duplicate key %q", key)
	}
	st.seen[key] = true
	return key, nil
}

func kindOf(rec gjson.Result) string {
	if k := rec.Get("kind"); k.Exists() {
		return k.String()
	}
	switch {
	case rec.Get("text").Exists():
		return "text"
	case rec.Get("type").Exists():
		return "element"
	}
	return ""
}

func (st *decodeState) node(rec gjson.Result, at string) (node.Node, error) {
	if !rec.IsObject() {
		return nil, invalid(at, "node must be an object")
	}
	switch kind := kindOf(rec); kind {
	case "text":
		return st.text(rec, at)
	case "element":
		return st.element(rec, at)
	case "document":
		return st.document(rec, at)
	case "":
		return nil, invalid(at, "missing kind")
	default:
		return nil, invalid(at, "unknown kind %q", kind)
	}
}

func (st *decodeState) document(rec gjson.Result, at string) (*node.Document, error) {
	if !rec.IsObject() {
		return nil, invalid(at, "document must be an object")
	}
	if k := kindOf(rec); k != "document" && k != "" {
		return nil, invalid(at, "expected document, got %q", k)
	}
	key, err := st.key(rec, at)
	if err != nil {
		return nil, err
	}
	children, err := st.children(rec, at)
	if err != nil {
		return nil, err
	}
	doc := node.NewDocument(key, children...)
	if data, err := dataOf(rec.Get("data"), join(at, "data")); err != nil {
		return nil, err
	} else if data != nil {
		doc = doc.WithData(data)
	}
	return doc, nil
}

func (st *decodeState) element(rec gjson.Result, at string) (*node.Element, error) {
	key, err := st.key(rec, at)
	if err != nil {
		return nil, err
	}
	typ := rec.Get("type")
	if typ.Type != gjson.String || typ.String() == "" {
		return nil, invalid(at, "element needs a type")
	}
	children, err := st.children(rec, at)
	if err != nil {
		return nil, err
	}
	rule := st.Schema.rule(typ.String())
	inline, err := flag(rec, "inline", rule.Inline, at)
	if err != nil {
		return nil, err
	}
	void, err := flag(rec, "void", rule.Void, at)
	if err != nil {
		return nil, err
	}
	el := node.NewElement(key, typ.String(), children...).WithInline(inline).WithVoid(void)
	data, err := dataOf(rec.Get("data"), join(at, "data"))
	if err != nil {
		return nil, err
	}
	if data != nil {
		el = el.WithData(data)
	}
	return el, nil
}

func flag(rec gjson.Result, field string, def bool, at string) (bool, error) {
	f := rec.Get(field)
	switch f.Type {
	case gjson.True:
		return true, nil
	case gjson.False:
		return false, nil
	case gjson.Null:
		return def, nil
	}
	return false, invalid(join(at, field), "must be a boolean")
}

func (st *decodeState) children(rec gjson.Result, at string) ([]node.Node, error) {
	c := rec.Get("children")
	if !c.Exists() || c.Type == gjson.Null {
		return nil, nil
	}
	if !c.IsArray() {
		return nil, invalid(join(at, "children"), "must be an array")
	}
	var out []node.Node
	for i, child := range c.Array() {
		childAt := fmt.Sprintf("%s.%d", join(at, "children"), i)
		if kindOf(child) == "document" {
			return nil, invalid(childAt, "document cannot be nested")
		}
		n, err := st.node(child, childAt)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func (st *decodeState) text(rec gjson.Result, at string) (*node.Text, error) {
	key, err := st.key(rec, at)
	if err != nil {
		return nil, err
	}
	t := rec.Get("text")
	if t.Exists() && t.Type != gjson.String {
		return nil, invalid(join(at, "text"), "must be a string")
	}
	marks, err := marksOf(rec.Get("marks"), join(at, "marks"))
	if err != nil {
		return nil, err
	}
	return node.NewText(key, t.String(), marks.All()...), nil
}

func marksOf(rec gjson.Result, at string) (node.MarkSet, error) {
	if !rec.Exists() || rec.Type == gjson.Null {
		return node.NewMarkSet(), nil
	}
	if !rec.IsArray() {
		return node.NewMarkSet(), invalid(at, "must be an array")
	}
	var marks []node.Mark
	for i, m := range rec.Array() {
		markAt := fmt.Sprintf("%s.%d", at, i)
		switch {
		case m.Type == gjson.String:
			marks = append(marks, node.NewMark(m.String()))
		case m.IsObject() && m.Get("key").Type == gjson.String:
			props, err := dataOf(m.Get("properties"), join(markAt, "properties"))
			if err != nil {
				return node.NewMarkSet(), err
			}
			marks = append(marks, node.Mark{Key: m.Get("key").String(), Properties: props})
		default:
			return node.NewMarkSet(), invalid(markAt, "mark needs a key")
		}
	}
	return node.NewMarkSet(marks...), nil
}

func dataOf(rec gjson.Result, at string) (node.Data, error) {
	if !rec.Exists() || rec.Type == gjson.Null {
		return nil, nil
	}
	if !rec.IsObject() {
		return nil, invalid(at, "must be an object")
	}
	m, _ := rec.Value().(map[string]any)
	if len(m) == 0 {
		return nil, nil
	}
	return node.Data(m), nil
}

func (st *decodeState) point(rec gjson.Result, at string, doc *node.Document) (selection.Point, error) {
	if !rec.IsObject() {
		return selection.Point{}, invalid(at, "point must be an object")
	}
	key := rec.Get("key")
	if key.Type != gjson.String || key.String() == "" {
		return selection.Point{}, invalid(at, "point needs a key")
	}
	off := rec.Get("offset")
	if off.Type != gjson.Number || off.Int() < 0 || float64(off.Int()) != off.Float() {
		return selection.Point{}, invalid(join(at, "offset"), "must be a non-negative integer")
	}
	p, err := selection.NewPoint(key.String(), int(off.Int())).Normalize(doc)
	if err != nil {
		return selection.Point{}, &RecordError{Path: at, Message: err.Error(), Err: err}
	}
	return p.SetPath(nil), nil
}

func (st *decodeState) rangeOf(rec gjson.Result, at string, doc *node.Document) (selection.Range, error) {
	if !rec.IsObject() {
		return selection.Range{}, invalid(at, "range must be an object")
	}
	anchor, err := st.point(rec.Get("anchor"), join(at, "anchor"), doc)
	if err != nil {
		return selection.Range{}, err
	}
	focus, err := st.point(rec.Get("focus"), join(at, "focus"), doc)
	if err != nil {
		return selection.Range{}, err
	}
	r := selection.NewRange(anchor, focus)
	if m := rec.Get("marks"); m.Exists() && m.Type != gjson.Null {
		marks, err := marksOf(m, join(at, "marks"))
		if err != nil {
			return selection.Range{}, err
		}
		r = r.WithMarks(&marks)
	}
	return r, nil
}

func (st *decodeState) annotation(rec gjson.Result, at string, doc *node.Document) (selection.Annotation, error) {
	key := rec.Get("key")
	if key.Type != gjson.String || key.String() == "" {
		return selection.Annotation{}, invalid(at, "annotation needs a key")
	}
	r, err := st.rangeOf(rec, at, doc)
	if err != nil {
		return selection.Annotation{}, err
	}
	data, err := dataOf(rec.Get("data"), join(at, "data"))
	if err != nil {
		return selection.Annotation{}, err
	}
	return selection.Annotation{Key: key.String(), Type: rec.Get("type").String(), Data: data, Range: r}, nil
}

// Kind reports what a JSON record holds: its kind field when present,
// "value" for a record with a document field, and "document" for an
// untyped record with children. It returns "" otherwise.
func Kind(data []byte) string {
	rec := gjson.ParseBytes(data)
	if !rec.IsObject() {
		return ""
	}
	if k := kindOf(rec); k != "" {
		return k
	}
	if rec.Get("document").Exists() {
		return "value"
	}
	if rec.Get("children").Exists() {
		return "document"
	}
	return ""
}
