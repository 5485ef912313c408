package codec

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/richtext/internal/engine/node"
	"github.com/dshills/richtext/internal/engine/value"
)

// JSONFromYAML converts a YAML document to the equivalent JSON.
func JSONFromYAML(data []byte) ([]byte, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode yaml: %w: %v", ErrSyntax, err)
	}
	out, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("decode yaml: %w: %v", ErrSyntax, err)
	}
	return out, nil
}

// YAMLFromJSON converts a JSON document to YAML.
func YAMLFromJSON(data []byte) ([]byte, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("encode yaml: %w", ErrSyntax)
	}
	return yaml.Marshal(gjson.ParseBytes(data).Value())
}

// DecodeValueYAML decodes a value record written as YAML.
func (d *Decoder) DecodeValueYAML(data []byte) (value.Value, error) {
	js, err := JSONFromYAML(data)
	if err != nil {
		return value.Value{}, err
	}
	return d.DecodeValue(js)
}

// DecodeDocumentYAML decodes a document record written as YAML.
func (d *Decoder) DecodeDocumentYAML(data []byte) (*node.Document, error) {
	js, err := JSONFromYAML(data)
	if err != nil {
		return nil, err
	}
	return d.DecodeDocument(js)
}

// EncodeValueYAML returns the YAML record for v.
func EncodeValueYAML(v value.Value) ([]byte, error) {
	js, err := EncodeValue(v)
	if err != nil {
		return nil, err
	}
	return YAMLFromJSON(js)
}
