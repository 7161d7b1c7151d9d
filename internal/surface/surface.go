package surface

import "slices"

// MaxStack is the largest amount a single cell may hold.
const MaxStack = 64

// Representation is the concrete content written into one cell.
type Representation struct {
	Material Material
	Name     string
	Lore     []string
	Amount   int
}

// Empty is the sentinel for a cleared cell.
var Empty = Representation{}

// IsEmpty reports whether the representation displays nothing.
func (r Representation) IsEmpty() bool {
	return r.Material == Air || r.Amount <= 0
}

// Stacks reports whether r and other can merge into one stack.
func (r Representation) Stacks(other Representation) bool {
	return r.Material == other.Material && r.Name == other.Name && slices.Equal(r.Lore, other.Lore)
}

// Equal compares material, name, lore and amount.
func (r Representation) Equal(other Representation) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return r.IsEmpty() == other.IsEmpty()
	}
	return r.Stacks(other) && r.Amount == other.Amount
}

// WithAmount returns a copy holding n items, or Empty when n <= 0.
func (r Representation) WithAmount(n int) Representation {
	if n <= 0 {
		return Empty
	}
	r.Amount = n
	return r
}

// Surface is the host display primitive. The engine only ever writes to it.
type Surface interface {
	SetCell(index int, rep Representation)
	Size() int
}
