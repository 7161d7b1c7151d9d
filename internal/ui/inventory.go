package ui

import "github.com/atomicstack/panegrid/internal/surface"

const (
	inventoryRows = 4
	inventoryCols = 9
)

// Inventory is the viewer's own 4x9 storage, shown below the screen grid.
// Clicks on it are routed with screen.RegionViewer.
type Inventory struct {
	cells [inventoryRows * inventoryCols]surface.Representation
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{}
}

// Size is the number of cells.
func (inv *Inventory) Size() int {
	return len(inv.cells)
}

// Cell returns the stack at index.
func (inv *Inventory) Cell(index int) surface.Representation {
	if index < 0 || index >= len(inv.cells) {
		return surface.Empty
	}
	return inv.cells[index]
}

// SetCell implements surface.Surface.
func (inv *Inventory) SetCell(index int, rep surface.Representation) {
	if index < 0 || index >= len(inv.cells) {
		return
	}
	if rep.IsEmpty() {
		rep = surface.Empty
	}
	inv.cells[index] = rep
}

// Deliver adds rep to the inventory, topping up matching stacks first. It
// reports false, leaving the inventory unchanged, when rep does not fit.
func (inv *Inventory) Deliver(_ string, rep surface.Representation) bool {
	if rep.IsEmpty() {
		return true
	}
	room := 0
	for _, cell := range inv.cells {
		switch {
		case cell.IsEmpty():
			room += surface.MaxStack
		case cell.Stacks(rep):
			room += surface.MaxStack - cell.Amount
		}
	}
	if room < rep.Amount {
		return false
	}
	left := rep.Amount
	for i := range inv.cells {
		if left == 0 {
			break
		}
		cell := inv.cells[i]
		if cell.IsEmpty() || !cell.Stacks(rep) {
			continue
		}
		add := min(left, surface.MaxStack-cell.Amount)
		inv.cells[i] = cell.WithAmount(cell.Amount + add)
		left -= add
	}
	for i := range inv.cells {
		if left == 0 {
			break
		}
		if !inv.cells[i].IsEmpty() {
			continue
		}
		add := min(left, surface.MaxStack)
		inv.cells[i] = rep.WithAmount(add)
		left -= add
	}
	return true
}

// Count totals the amount of stacks matching rep.
func (inv *Inventory) Count(rep surface.Representation) int {
	total := 0
	for _, cell := range inv.cells {
		if !cell.IsEmpty() && cell.Stacks(rep) {
			total += cell.Amount
		}
	}
	return total
}
