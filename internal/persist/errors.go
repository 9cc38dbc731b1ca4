package persist

import (
	"errors"
	"fmt"
)

// ErrPersistence matches every *PersistenceError.
var ErrPersistence = errors.New("persist: unreadable inventory")

// PersistenceError reports a data file that exists but cannot be parsed.
// Load returns it together with an empty collection; it is a warning for the
// caller to surface, never a reason to stop.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("could not read %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying decode or driver error.
func (e *PersistenceError) Unwrap() error { return e.Err }

// Is makes every PersistenceError match ErrPersistence.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}
