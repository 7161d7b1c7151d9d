package grid

import (
	"errors"
	"testing"
)

func TestToGlobalCell(t *testing.T) {
	b := MustBounds(0, 0, 9, 3, DefaultWidth)
	if got := b.ToGlobal(0, 0); got != 0 {
		t.Fatalf("expected cell 0, got %d", got)
	}
	if got := b.ToGlobal(2, 8); got != 26 {
		t.Fatalf("expected cell 26, got %d", got)
	}

	offset := MustBounds(1, 2, 3, 2, DefaultWidth)
	if got := offset.ToGlobal(1, 1); got != 21 {
		t.Fatalf("expected cell 21, got %d", got)
	}
	row, col, ok := offset.ToLocal(21)
	if !ok || row != 1 || col != 1 {
		t.Fatalf("expected local (1,1), got (%d,%d,%v)", row, col, ok)
	}
	if offset.Slot(21) != 4 {
		t.Fatalf("expected slot 4, got %d", offset.Slot(21))
	}
	if offset.SlotCell(4) != 21 {
		t.Fatalf("expected slot 4 to map back to 21, got %d", offset.SlotCell(4))
	}
}

func TestNewBoundsRejectsInvalidRectangles(t *testing.T) {
	cases := []struct {
		name                    string
		row, col, width, height int
	}{
		{"zero width", 0, 0, 0, 1},
		{"negative height", 0, 0, 1, -1},
		{"negative row", -1, 0, 1, 1},
		{"negative col", 0, -2, 1, 1},
		{"too wide", 0, 5, 5, 1},
	}
	for _, tc := range cases {
		_, err := NewBounds(tc.row, tc.col, tc.width, tc.height, DefaultWidth)
		var boundsErr *BoundsError
		if !errors.As(err, &boundsErr) {
			t.Fatalf("%s: expected BoundsError, got %v", tc.name, err)
		}
	}
	if _, err := NewBounds(0, 4, 5, 1, DefaultWidth); err != nil {
		t.Fatalf("expected rectangle touching the right edge to be valid, got %v", err)
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	a := MustBounds(0, 0, 3, 3, DefaultWidth)
	b := MustBounds(2, 2, 3, 3, DefaultWidth)
	if !a.Overlaps(b) || !b.Overlaps(a) {
		t.Fatalf("expected %s and %s to overlap both ways", a, b)
	}

	right := MustBounds(0, 3, 3, 3, DefaultWidth)
	if a.Overlaps(right) || right.Overlaps(a) {
		t.Fatalf("expected horizontally adjacent rectangles not to overlap")
	}
	below := MustBounds(3, 0, 3, 1, DefaultWidth)
	if a.Overlaps(below) || below.Overlaps(a) {
		t.Fatalf("expected vertically adjacent rectangles not to overlap")
	}
}

func TestContainsAndCells(t *testing.T) {
	b := MustBounds(1, 7, 2, 2, DefaultWidth)
	want := []int{16, 17, 25, 26}
	cells := b.Cells()
	if len(cells) != len(want) {
		t.Fatalf("expected %d cells, got %v", len(want), cells)
	}
	for i, cell := range want {
		if cells[i] != cell {
			t.Fatalf("expected cell %d at %d, got %d", cell, i, cells[i])
		}
		if !b.Contains(cell) {
			t.Fatalf("expected %s to contain %d", b, cell)
		}
	}
	for _, cell := range []int{-1, 15, 18, 24, 34} {
		if b.Contains(cell) {
			t.Fatalf("expected %s not to contain %d", b, cell)
		}
	}
}

func TestCheckLayout(t *testing.T) {
	header := Region{Name: "header", Bounds: MustBounds(0, 0, 9, 1, DefaultWidth)}
	body := Region{Name: "body", Bounds: MustBounds(1, 0, 9, 2, DefaultWidth)}
	if err := CheckLayout(3, []Region{header, body}); err != nil {
		t.Fatalf("expected valid layout, got %v", err)
	}

	overlapping := Region{Name: "banner", Bounds: MustBounds(0, 4, 2, 2, DefaultWidth)}
	err := CheckLayout(3, []Region{header, body, overlapping})
	var layoutErr *LayoutError
	if !errors.As(err, &layoutErr) {
		t.Fatalf("expected LayoutError, got %v", err)
	}
	if layoutErr.First != "header" || layoutErr.Second != "banner" {
		t.Fatalf("expected header/banner overlap, got %q/%q", layoutErr.First, layoutErr.Second)
	}

	err = CheckLayout(2, []Region{header, body})
	if !errors.As(err, &layoutErr) || layoutErr.First != "body" {
		t.Fatalf("expected body to exceed a 2-row grid, got %v", err)
	}
}
