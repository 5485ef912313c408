package codec

import (
	"fmt"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/selection"
	"github.com/dshills/richtext/internal/engine/value"
)

// EncodeNode returns the JSON record for n.
func EncodeNode(n node.Node) ([]byte, error) {
	out := []byte(`{}`)
	var err error
	set := func(field string, v any) {
		if err == nil {
			out, err = sjson.SetBytes(out, field, v)
		}
	}

	switch n := n.(type) {
	case *node.Text:
		set("kind", "text")
		set("key", n.Key())
		set("text", n.Text())
		if err == nil {
			out, err = setMarks(out, "marks", n.Marks())
		}
		return out, err
	case *node.Element:
		set("kind", "element")
		set("key", n.Key())
		set("type", n.Type())
		set("inline", n.IsInline())
		set("void", n.IsVoid())
		set("data", dataOrEmpty(n.Data()))
	case *node.Document:
		set("kind", "document")
		set("key", n.Key())
		set("data", dataOrEmpty(n.Data()))
	default:
		return nil, fmt.Errorf("encode: unsupported node %T", n)
	}
	if err != nil {
		return nil, err
	}

	out, err = sjson.SetRawBytes(out, "children", []byte(`[]`))
	if err != nil {
		return nil, err
	}
	for _, child := range n.(node.Parent).Children() {
		raw, err := EncodeNode(child)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, "children.-1", raw); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func dataOrEmpty(d node.Data) node.Data {
	if d == nil {
		return node.Data{}
	}
	return d
}

func setMarks(out []byte, field string, marks node.MarkSet) ([]byte, error) {
	out, err := sjson.SetRawBytes(out, field, []byte(`[]`))
	if err != nil {
		return nil, err
	}
	for _, m := range marks.All() {
		rec, err := sjson.SetBytes([]byte(`{}`), "key", m.Key)
		if err == nil {
			rec, err = sjson.SetBytes(rec, "properties", dataOrEmpty(m.Properties))
		}
		if err == nil {
			out, err = sjson.SetRawBytes(out, field+".-1", rec)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodePoint returns the JSON record for p.
func EncodePoint(p selection.Point) ([]byte, error) {
	out, err := sjson.SetBytes([]byte(`{}`), "key", p.Key)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(out, "offset", p.Offset)
}

// EncodeRange returns the JSON record for r, or null when r is unset.
func EncodeRange(r selection.Range) ([]byte, error) {
	if r.IsUnset() {
		return []byte(`null`), nil
	}
	return appendRange([]byte(`{}`), r)
}

func appendRange(out []byte, r selection.Range) ([]byte, error) {
	for _, end := range []struct {
		field string
		p     selection.Point
	}{{"anchor", r.Anchor}, {"focus", r.Focus}} {
		raw, err := EncodePoint(end.p)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, end.field, raw); err != nil {
			return nil, err
		}
	}
	if r.Marks != nil {
		return setMarks(out, "marks", *r.Marks)
	}
	return out, nil
}

// EncodeAnnotation returns the JSON record for a.
func EncodeAnnotation(a selection.Annotation) ([]byte, error) {
	out, err := sjson.SetBytes([]byte(`{}`), "key", a.Key)
	if err == nil {
		out, err = sjson.SetBytes(out, "type", a.Type)
	}
	if err == nil {
		out, err = sjson.SetBytes(out, "data", dataOrEmpty(a.Data))
	}
	if err != nil {
		return nil, err
	}
	return appendRange(out, a.Range)
}

// EncodeValue returns the JSON record for v.
func EncodeValue(v value.Value) ([]byte, error) {
	doc, err := EncodeNode(v.Document())
	if err != nil {
		return nil, err
	}
	out, err := sjson.SetRawBytes([]byte(`{}`), "document", doc)
	if err != nil {
		return nil, err
	}
	sel, err := EncodeRange(v.Selection())
	if err != nil {
		return nil, err
	}
	if out, err = sjson.SetRawBytes(out, "selection", sel); err != nil {
		return nil, err
	}
	if out, err = sjson.SetRawBytes(out, "annotations", []byte(`[]`)); err != nil {
		return nil, err
	}
	for _, a := range v.Annotations() {
		raw, err := EncodeAnnotation(a)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, "annotations.-1", raw); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Indent formats JSON for reading.
func Indent(data []byte) []byte {
	return pretty.Pretty(data)
}
