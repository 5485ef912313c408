package node

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// KeyGenerator produces keys for newly created nodes.
type KeyGenerator interface {
	NewKey() string
}

// UUIDKeys generates random UUID keys.
type UUIDKeys struct{}

// NewKey returns a new random key.
func (UUIDKeys) NewKey() string {
	return uuid.NewString()
}

// SequenceKeys generates keys from a monotonically increasing counter.
// It is safe for concurrent use.
type SequenceKeys struct {
	Prefix string
	next   atomic.Int64
}

// NewSequenceKeys creates a sequence generator starting at start.
func NewSequenceKeys(prefix string, start int64) *SequenceKeys {
	g := &SequenceKeys{Prefix: prefix}
	g.next.Store(start)
	return g
}

// NewKey returns the next key in the sequence.
func (g *SequenceKeys) NewKey() string {
	n := g.next.Add(1) - 1
	return g.Prefix + strconv.FormatInt(n, 10)
}

// DefaultKeys is used when no generator is supplied.
var DefaultKeys KeyGenerator = UUIDKeys{}
