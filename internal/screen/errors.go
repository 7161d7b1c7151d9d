package screen

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownViewer is returned for operations on a viewer with no session.
	ErrUnknownViewer = errors.New("unknown viewer")
	// ErrUnknownPane is returned when a pane name does not exist.
	ErrUnknownPane = errors.New("unknown pane")
	// ErrNotPaginated is returned for paging operations on a static pane.
	ErrNotPaginated = errors.New("pane is not paginated")
	// ErrUnknownFilter is returned when toggling a filter the pane never declared.
	ErrUnknownFilter = errors.New("unknown filter")
	// ErrSurfaceTooSmall is returned when opening a viewer on a surface that
	// cannot hold the screen.
	ErrSurfaceTooSmall = errors.New("surface too small for screen")
)

// ItemConfigError reports an item mixing interactive and display fields, or
// otherwise misconfigured.
type ItemConfigError struct {
	Item   string
	Reason string
}

func (e *ItemConfigError) Error() string {
	if e.Item == "" {
		return "item config: " + e.Reason
	}
	return fmt.Sprintf("item config %q: %s", e.Item, e.Reason)
}

// RoutingFailure wraps anything that went wrong while resolving a click.
type RoutingFailure struct {
	Viewer string
	Cell   int
	Err    error
}

func (e *RoutingFailure) Error() string {
	return fmt.Sprintf("routing click on cell %d for %s: %v", e.Cell, e.Viewer, e.Err)
}

func (e *RoutingFailure) Unwrap() error {
	return e.Err
}

// HandlerError wraps an error or panic raised by a click or change handler.
type HandlerError struct {
	Viewer string
	Cell   int
	Item   string
	Err    error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("handler for %q on cell %d (%s): %v", e.Item, e.Cell, e.Viewer, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// PanicError carries a recovered panic value.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// safeCall runs fn and converts a panic into an error.
func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r}
		}
	}()
	return fn()
}
