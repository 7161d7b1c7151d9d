package grid

import "fmt"

// DefaultWidth is the column count used when a screen does not override it.
const DefaultWidth = 9

// Bounds is a rectangle of cells on a grid with a fixed column count.
type Bounds struct {
	Row    int
	Col    int
	Width  int
	Height int

	gridWidth int
}

// NewBounds validates and constructs a rectangle anchored at (row, col).
func NewBounds(row, col, width, height, gridWidth int) (Bounds, error) {
	b := Bounds{Row: row, Col: col, Width: width, Height: height, gridWidth: gridWidth}
	if gridWidth <= 0 {
		return Bounds{}, &BoundsError{Bounds: b, Reason: fmt.Sprintf("grid width must be > 0 (got %d)", gridWidth)}
	}
	if width <= 0 || height <= 0 {
		return Bounds{}, &BoundsError{Bounds: b, Reason: fmt.Sprintf("size must be positive (got %dx%d)", width, height)}
	}
	if row < 0 || col < 0 {
		return Bounds{}, &BoundsError{Bounds: b, Reason: fmt.Sprintf("origin must be non-negative (got %d,%d)", row, col)}
	}
	if col+width > gridWidth {
		return Bounds{}, &BoundsError{Bounds: b, Reason: fmt.Sprintf("columns %d..%d exceed grid width %d", col, col+width-1, gridWidth)}
	}
	return b, nil
}

// MustBounds is NewBounds for literals known to be valid.
func MustBounds(row, col, width, height, gridWidth int) Bounds {
	b, err := NewBounds(row, col, width, height, gridWidth)
	if err != nil {
		panic(err)
	}
	return b
}

// FullRow spans one complete grid row.
func FullRow(row, gridWidth int) (Bounds, error) {
	return NewBounds(row, 0, gridWidth, 1, gridWidth)
}

// GridWidth reports the column count the bounds were validated against.
func (b Bounds) GridWidth() int {
	return b.gridWidth
}

// Capacity is the number of cells covered.
func (b Bounds) Capacity() int {
	return b.Width * b.Height
}

// LastRow is the last grid row covered.
func (b Bounds) LastRow() int {
	return b.Row + b.Height - 1
}

// ToGlobal converts a local (row, col) into a grid cell index. Local
// coordinates are not range checked.
func (b Bounds) ToGlobal(localRow, localCol int) int {
	return (b.Row+localRow)*b.gridWidth + (b.Col + localCol)
}

// ToLocal converts a grid cell index into local coordinates.
func (b Bounds) ToLocal(cell int) (row, col int, ok bool) {
	if !b.Contains(cell) {
		return 0, 0, false
	}
	return cell/b.gridWidth - b.Row, cell%b.gridWidth - b.Col, true
}

// Slot returns the row-major index of cell within the bounds, or -1.
func (b Bounds) Slot(cell int) int {
	row, col, ok := b.ToLocal(cell)
	if !ok {
		return -1
	}
	return row*b.Width + col
}

// SlotCell is the inverse of Slot.
func (b Bounds) SlotCell(slot int) int {
	return b.ToGlobal(slot/b.Width, slot%b.Width)
}

// Contains reports whether the grid cell lies inside the bounds.
func (b Bounds) Contains(cell int) bool {
	if cell < 0 || b.gridWidth <= 0 {
		return false
	}
	row, col := cell/b.gridWidth, cell%b.gridWidth
	return row >= b.Row && row < b.Row+b.Height && col >= b.Col && col < b.Col+b.Width
}

// Overlaps reports whether the row and column intervals of both rectangles
// intersect.
func (b Bounds) Overlaps(other Bounds) bool {
	return intersects(b.Row, b.Height, other.Row, other.Height) &&
		intersects(b.Col, b.Width, other.Col, other.Width)
}

// Cells returns the covered grid cells in row-major order.
func (b Bounds) Cells() []int {
	cells := make([]int, 0, b.Capacity())
	for r := 0; r < b.Height; r++ {
		for c := 0; c < b.Width; c++ {
			cells = append(cells, b.ToGlobal(r, c))
		}
	}
	return cells
}

func (b Bounds) String() string {
	return fmt.Sprintf("%dx%d@%d,%d", b.Width, b.Height, b.Row, b.Col)
}

func intersects(startA, lenA, startB, lenB int) bool {
	return startA < startB+lenB && startB < startA+lenA
}
