package screen

import "github.com/atomicstack/panegrid/internal/surface"

// ChangeKind classifies an interactive slot mutation.
type ChangeKind int

const (
	ChangeNone ChangeKind = iota
	ChangePlaced
	ChangeRemoved
	ChangeSwapped
	ChangeAmountIncreased
	ChangeAmountDecreased
)

func (k ChangeKind) String() string {
	switch k {
	case ChangePlaced:
		return "placed"
	case ChangeRemoved:
		return "removed"
	case ChangeSwapped:
		return "swapped"
	case ChangeAmountIncreased:
		return "amount-increased"
	case ChangeAmountDecreased:
		return "amount-decreased"
	default:
		return "none"
	}
}

// SlotChange describes a permitted slot mutation before it is applied.
type SlotChange struct {
	Cell   int
	Slot   int
	Before surface.Representation
	After  surface.Representation
	Kind   ChangeKind
}

// Delta is the amount gained by the slot, negative when it lost items. A
// swap counts as losing the old stack and gaining the new one.
func (c SlotChange) Delta() int {
	before, after := c.Before.Amount, c.After.Amount
	if c.Before.IsEmpty() {
		before = 0
	}
	if c.After.IsEmpty() {
		after = 0
	}
	return after - before
}

// Classify compares slot contents before and after a mutation.
func Classify(before, after surface.Representation) ChangeKind {
	switch {
	case before.IsEmpty() && after.IsEmpty():
		return ChangeNone
	case before.IsEmpty():
		return ChangePlaced
	case after.IsEmpty():
		return ChangeRemoved
	case !before.Stacks(after):
		return ChangeSwapped
	case after.Amount > before.Amount:
		return ChangeAmountIncreased
	case after.Amount < before.Amount:
		return ChangeAmountDecreased
	default:
		return ChangeNone
	}
}

// Transfer applies the click rules of an interactive slot to a slot the
// host owns, such as the viewer's inventory.
func Transfer(kind ClickKind, slot, cursor surface.Representation) (slotAfter, cursorAfter surface.Representation, ok bool) {
	return plan(kind, slot, cursor, true, true)
}

// plan computes the slot and cursor contents a click would produce. ok is
// false when the click does not mutate anything or is not permitted.
func plan(kind ClickKind, slot, cursor surface.Representation, pickup, place bool) (slotAfter, cursorAfter surface.Representation, ok bool) {
	slotEmpty, cursorEmpty := slot.IsEmpty(), cursor.IsEmpty()
	switch {
	case kind == ClickMiddle:
		return slot, cursor, false
	case slotEmpty && cursorEmpty:
		return slot, cursor, false

	case cursorEmpty:
		if !pickup {
			return slot, cursor, false
		}
		if kind == ClickRight {
			take := (slot.Amount + 1) / 2
			return slot.WithAmount(slot.Amount - take), slot.WithAmount(take), true
		}
		return surface.Empty, slot, true

	case slotEmpty:
		if !place {
			return slot, cursor, false
		}
		if kind == ClickRight {
			return cursor.WithAmount(1), cursor.WithAmount(cursor.Amount - 1), true
		}
		return cursor, surface.Empty, true

	case slot.Stacks(cursor):
		if !place {
			return slot, cursor, false
		}
		space := surface.MaxStack - slot.Amount
		if space <= 0 {
			return slot, cursor, false
		}
		moved := min(cursor.Amount, space)
		if kind == ClickRight {
			moved = 1
		}
		return slot.WithAmount(slot.Amount + moved), cursor.WithAmount(cursor.Amount - moved), true

	default:
		if !pickup || !place {
			return slot, cursor, false
		}
		return cursor, slot, true
	}
}
