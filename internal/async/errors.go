package async

import (
	"errors"
	"fmt"
)

// ErrClosed is returned for loads against a closed cache.
var ErrClosed = errors.New("async cache closed")

// LoadError wraps a supplier failure for one key.
type LoadError struct {
	Key string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Key, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// TypeError reports a cached value that does not have the requested type.
type TypeError struct {
	Value any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("unexpected cached value type %T", e.Value)
}

// PanicError carries a recovered supplier panic.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("supplier panicked: %v", e.Value)
}
