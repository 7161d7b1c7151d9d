package surface

import "testing"

func TestRepresentationEmptiness(t *testing.T) {
	if !Empty.IsEmpty() {
		t.Fatal("expected Empty to be empty")
	}
	if !(Representation{Material: Stone}).IsEmpty() {
		t.Fatal("expected zero amount to be empty")
	}
	stone := Representation{Material: Stone, Amount: 3}
	if stone.IsEmpty() {
		t.Fatal("expected stone to be non-empty")
	}
	if !stone.WithAmount(0).IsEmpty() {
		t.Fatal("expected WithAmount(0) to clear the representation")
	}
	if stone.WithAmount(5).Amount != 5 {
		t.Fatal("expected amount to be replaced")
	}
}

func TestRepresentationStacks(t *testing.T) {
	a := Representation{Material: Emerald, Name: "Gem", Amount: 1}
	b := Representation{Material: Emerald, Name: "Gem", Amount: 7}
	c := Representation{Material: Emerald, Name: "Other", Amount: 1}
	if !a.Stacks(b) {
		t.Fatal("expected identical items to stack")
	}
	if a.Stacks(c) {
		t.Fatal("expected differently named items not to stack")
	}
	if a.Equal(b) {
		t.Fatal("expected different amounts to compare unequal")
	}
}

func TestBufferWrites(t *testing.T) {
	buf := NewBuffer(4)
	if buf.Size() != 4 {
		t.Fatalf("expected size 4, got %d", buf.Size())
	}
	buf.SetCell(1, Representation{Material: Book, Amount: 1})
	buf.SetCell(9, Representation{Material: Book, Amount: 1})
	if buf.Cell(1).Material != Book {
		t.Fatalf("expected book at 1, got %#v", buf.Cell(1))
	}
	if buf.Version() != 1 {
		t.Fatalf("expected out of range write to be ignored, version %d", buf.Version())
	}
	buf.SetCell(1, Representation{Material: Book})
	if buf.Cell(1).Material != Air {
		t.Fatalf("expected zero amount write to clear the cell, got %#v", buf.Cell(1))
	}
}

func TestCatalogValidity(t *testing.T) {
	if !Air.Valid() || !Diamond.Valid() {
		t.Fatal("expected catalog materials to be valid")
	}
	if Material("spaceship").Valid() {
		t.Fatal("expected unknown material to be invalid")
	}
	if len(Materials()) == 0 {
		t.Fatal("expected non-empty catalog")
	}
}
