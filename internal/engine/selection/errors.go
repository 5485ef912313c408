package selection

import (
	"errors"
	"fmt"
)

// ErrStalePoint indicates a point whose key no longer resolves.
var ErrStalePoint = errors.New("stale point")

// StalePointError reports the point that could not be resolved.
type StalePointError struct {
	Key string
}

// Error implements the error interface.
func (e *StalePointError) Error() string {
	if e.Key == "" {
		return "stale point: point is unset"
	}
	return fmt.Sprintf("stale point: key %q not in document", e.Key)
}

// Is reports whether target is ErrStalePoint.
func (e *StalePointError) Is(target error) bool {
	return target == ErrStalePoint
}
