package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// MaxIncludeDepth bounds nested @include directives.
const MaxIncludeDepth = 8

// ErrIncludeDepth is returned when @include nesting exceeds MaxIncludeDepth.
var ErrIncludeDepth = errors.New("include depth exceeded")

// TOML loads a TOML file. A top-level @include key names files, relative
// to the including file, whose settings the including file overrides.
type TOML struct {
	FS   FileSystem
	Path string
}

// NewTOML creates a TOML source reading path from the OS file system.
func NewTOML(path string) *TOML {
	return &TOML{FS: OSFS{}, Path: path}
}

// Load implements Source. A missing file yields nil, nil.
func (l *TOML) Load() (map[string]any, error) {
	if l.Path == "" {
		return nil, nil
	}
	return l.load(l.Path, MaxIncludeDepth)
}

func (l *TOML) load(path string, depth int) (map[string]any, error) {
	if depth < 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrIncludeDepth)
	}
	data, err := l.FS.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	tree, err := ParseTOML(path, data)
	if err != nil {
		return nil, err
	}

	includes, err := includeList(tree["@include"])
	if err != nil {
		return nil, &ParseError{Path: path, Message: err.Error()}
	}
	delete(tree, "@include")

	merged := make(map[string]any)
	for _, inc := range includes {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(filepath.Dir(path), inc)
		}
		sub, err := l.load(inc, depth-1)
		if err != nil {
			return nil, err
		}
		merged = DeepMerge(merged, sub)
	}
	return DeepMerge(merged, tree), nil
}

func includeList(v any) ([]string, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("@include entries must be strings, got %T", item)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, fmt.Errorf("@include must be a string or an array of strings, got %T", v)
}

// ReadTOML parses TOML from r.
func ReadTOML(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return ParseTOML("<reader>", data)
}

// ParseTOML parses TOML data. source names the data in errors.
func ParseTOML(source string, data []byte) (map[string]any, error) {
	tree := make(map[string]any)
	if err := toml.Unmarshal(data, &tree); err != nil {
		pe := &ParseError{Path: source, Message: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			pe.Line, pe.Column = de.Position()
		}
		return nil, pe
	}
	return tree, nil
}

// ParseError reports malformed configuration.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
