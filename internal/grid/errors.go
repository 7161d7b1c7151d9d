package grid

import "fmt"

// BoundsError reports an invalid rectangle.
type BoundsError struct {
	Bounds Bounds
	Reason string
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("invalid bounds %dx%d@%d,%d: %s", e.Bounds.Width, e.Bounds.Height, e.Bounds.Row, e.Bounds.Col, e.Reason)
}

// LayoutError reports regions that overlap or fall outside the grid.
type LayoutError struct {
	First  string
	Second string
	Bounds Bounds
	Other  Bounds
	Reason string
}

func (e *LayoutError) Error() string {
	if e.Second == "" {
		return fmt.Sprintf("layout: region %q (%s) %s", e.First, e.Bounds, e.Reason)
	}
	return fmt.Sprintf("layout: %s: %q (%s) and %q (%s)", e.Reason, e.First, e.Bounds, e.Second, e.Other)
}
