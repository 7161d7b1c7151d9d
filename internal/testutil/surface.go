package testutil

import (
	"sync"

	"github.com/atomicstack/panegrid/internal/surface"
)

// Write records one SetCell call.
type Write struct {
	Index int
	Rep   surface.Representation
}

// Surface is a surface.Surface that records writes alongside the cells.
type Surface struct {
	mu     sync.Mutex
	cells  []surface.Representation
	writes []Write
}

// NewSurface allocates a recording surface.
func NewSurface(size int) *Surface {
	return &Surface{cells: make([]surface.Representation, size)}
}

// SetCell implements surface.Surface.
func (s *Surface) SetCell(index int, rep surface.Representation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, Write{Index: index, Rep: rep})
	if index >= 0 && index < len(s.cells) {
		s.cells[index] = rep
	}
}

// Size implements surface.Surface.
func (s *Surface) Size() int {
	return len(s.cells)
}

// Cell returns the last representation written at index.
func (s *Surface) Cell(index int) surface.Representation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.cells) {
		return surface.Empty
	}
	return s.cells[index]
}

// Name is shorthand for Cell(index).Name.
func (s *Surface) Name(index int) string {
	return s.Cell(index).Name
}

// Writes returns every recorded write.
func (s *Surface) Writes() []Write {
	s.mu.Lock()
	defer s.mu.Unlock()
	dup := make([]Write, len(s.writes))
	copy(dup, s.writes)
	return dup
}

// Reset forgets recorded writes but keeps cell contents.
func (s *Surface) Reset() {
	s.mu.Lock()
	s.writes = nil
	s.mu.Unlock()
}
