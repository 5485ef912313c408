package codec

import (
	"errors"
	"fmt"
)

// Errors returned by decoding.
var (
	// ErrSyntax indicates input that is not well-formed JSON or YAML.
	ErrSyntax = errors.New("syntax error")

	// ErrInvalidRecord indicates a well-formed record that does not
	// describe a node, point or range.
	ErrInvalidRecord = errors.New("invalid record")
)

// RecordError reports an invalid record and where it was found.
type RecordError struct {
	// Path is the location of the record, e.g. "document.children.1".
	Path    string
	Message string
	Err     error
}

func (e *RecordError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("invalid record: %s", e.Message)
	}
	return fmt.Sprintf("invalid record at %s: %s", e.Path, e.Message)
}

// Is matches ErrInvalidRecord.
func (e *RecordError) Is(target error) bool {
	return target == ErrInvalidRecord
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func invalid(at, format string, args ...any) error {
	return &RecordError{Path: at, Message: fmt.Sprintf(format, args...)}
}
