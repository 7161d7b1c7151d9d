package surface

import "sync"

// Buffer is an in-memory Surface. Hosts read it back to draw the grid.
type Buffer struct {
	mu      sync.RWMutex
	cells   []Representation
	version uint64
}

// NewBuffer allocates a buffer of size empty cells.
func NewBuffer(size int) *Buffer {
	if size < 0 {
		size = 0
	}
	return &Buffer{cells: make([]Representation, size)}
}

// SetCell implements Surface. Out of range writes are ignored.
func (b *Buffer) SetCell(index int, rep Representation) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if index < 0 || index >= len(b.cells) {
		return
	}
	if rep.IsEmpty() {
		rep = Empty
	}
	b.cells[index] = rep
	b.version++
}

// Size implements Surface.
func (b *Buffer) Size() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.cells)
}

// Cell returns the representation stored at index.
func (b *Buffer) Cell(index int) Representation {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if index < 0 || index >= len(b.cells) {
		return Empty
	}
	return b.cells[index]
}

// Snapshot copies every cell.
func (b *Buffer) Snapshot() []Representation {
	b.mu.RLock()
	defer b.mu.RUnlock()
	dup := make([]Representation, len(b.cells))
	copy(dup, b.cells)
	return dup
}

// Version increments on every write; hosts use it to skip redraws.
func (b *Buffer) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}
