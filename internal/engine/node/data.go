package node

import (
	"maps"
	"reflect"
)

// Data is an opaque property bag. Values are treated as immutable: never
// modify a Data obtained from a node, use Merge to derive a new one.
type Data map[string]any

// Clone returns a shallow copy of d.
func (d Data) Clone() Data {
	if d == nil {
		return nil
	}
	return maps.Clone(d)
}

// Merge returns a new Data with the entries of other laid over d.
// A nil value in other deletes the key.
func (d Data) Merge(other Data) Data {
	if len(other) == 0 {
		return d
	}
	out := make(Data, len(d)+len(other))
	maps.Copy(out, d)
	for k, v := range other {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// Equal reports whether d and other hold deeply equal entries.
// Nil and empty are equal.
func (d Data) Equal(other Data) bool {
	if len(d) == 0 && len(other) == 0 {
		return true
	}
	return reflect.DeepEqual(map[string]any(d), map[string]any(other))
}
