// Package loader reads raw configuration maps from TOML files and the
// environment. Sources produce map[string]any trees that are merged with
// DeepMerge; decoding into typed settings is the config package's job.
package loader

import (
	"io/fs"
	"os"
)

// Source produces a configuration tree.
type Source interface {
	// Load returns nil, nil when the source does not exist.
	Load() (map[string]any, error)
}

// FileSystem is the file access a loader needs.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the real file system.
type OSFS struct{}

// ReadFile implements FileSystem.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MapFS adapts an fs.FS, such as fstest.MapFS, to FileSystem.
type MapFS struct {
	FS fs.FS
}

// ReadFile implements FileSystem.
func (m MapFS) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(m.FS, path)
}

// LoadAll loads each source in order and merges the results. Later
// sources override earlier ones.
func LoadAll(sources ...Source) (map[string]any, error) {
	merged := make(map[string]any)
	for _, src := range sources {
		tree, err := src.Load()
		if err != nil {
			return nil, err
		}
		merged = DeepMerge(merged, tree)
	}
	return merged, nil
}

// DeepMerge merges src into dst and returns dst. Nested maps merge key by
// key; any other src value replaces the dst value.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		sub, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		if into, ok := dst[k].(map[string]any); ok {
			dst[k] = DeepMerge(into, sub)
		} else {
			dst[k] = DeepMerge(nil, sub)
		}
	}
	return dst
}

// Lookup returns the value at a dot-separated path.
func Lookup(tree map[string]any, dotted string) (any, bool) {
	parts := splitPath(dotted)
	cur := tree
	for i, part := range parts {
		v, ok := cur[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		if cur, ok = v.(map[string]any); !ok {
			return nil, false
		}
	}
	return nil, false
}

// Set stores v at a dot-separated path, creating intermediate tables.
func Set(tree map[string]any, dotted string, v any) {
	parts := splitPath(dotted)
	cur := tree
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = v
}
