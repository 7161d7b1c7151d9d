package screen

import (
	"strconv"
	"testing"

	"github.com/atomicstack/panegrid/internal/state"
	"github.com/atomicstack/panegrid/internal/surface"
	"github.com/atomicstack/panegrid/internal/testutil"
)

func openViewer(t *testing.T, def *Definition, opts Options) (*Registry, *Viewer, *testutil.Surface) {
	t.Helper()
	reg := NewRegistry(def, opts)
	surf := testutil.NewSurface(def.Size())
	v, err := reg.Open("alice", surf)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	return reg, v, surf
}

func itemID(v *Viewer, cell int) string {
	it, ok := v.ItemAt(cell)
	if !ok {
		return ""
	}
	return it.ID()
}

func TestReflowSkipsInvisibleItems(t *testing.T) {
	def := NewScreen("reflow", 1).
		Pane(NewStatic("flow", Rect{Row: 0, Col: 0, Width: 9, Height: 1}).Flow(
			Label(surface.Stone, "one").ID("one"),
			Label(surface.Paper, "two").ID("two").
				DependOn("hide").
				VisibleWhen(func(v *Viewer) bool { return !state.Bool(v.State(), "hide") }),
			Label(surface.Book, "three").ID("three"),
		)).
		MustBuild()
	_, v, surf := openViewer(t, def, Options{})

	want := []string{"one", "two", "three"}
	for cell, id := range want {
		if got := itemID(v, cell); got != id {
			t.Fatalf("cell %d: expected %s, got %q", cell, id, got)
		}
		if surf.Name(cell) != id {
			t.Fatalf("cell %d shows %q", cell, surf.Name(cell))
		}
	}

	v.State().Set("hide", true)
	v.Flush()

	if got := itemID(v, 0); got != "one" {
		t.Fatalf("cell 0: expected one, got %q", got)
	}
	if got := itemID(v, 1); got != "three" {
		t.Fatalf("cell 1: expected three after reflow, got %q", got)
	}
	if _, ok := v.ItemAt(2); ok {
		t.Fatalf("cell 2 should be empty after reflow")
	}
	if !surf.Cell(2).IsEmpty() {
		t.Fatalf("cell 2 should be cleared, got %+v", surf.Cell(2))
	}
}

func TestExplicitItemsBlockFlowOnlyWhenPainted(t *testing.T) {
	def := NewScreen("explicit", 1).
		Pane(NewStatic("row", Rect{Row: 0, Col: 0, Width: 3, Height: 1}).
			Place(0, 0, Label(surface.Barrier, "pin").ID("pin").
				DependOn("hide").
				VisibleWhen(func(v *Viewer) bool { return !state.Bool(v.State(), "hide") })).
			Flow(
				Label(surface.Stone, "a").ID("a"),
				Label(surface.Stone, "b").ID("b"),
				Label(surface.Stone, "c").ID("c"),
			).
			Filler(Label(surface.GlassPane, " ").ID("filler"))).
		MustBuild()
	_, v, _ := openViewer(t, def, Options{})

	if got := []string{itemID(v, 0), itemID(v, 1), itemID(v, 2)}; got[0] != "pin" || got[1] != "a" || got[2] != "b" {
		t.Fatalf("unexpected layout with pin: %v", got)
	}

	v.State().Set("hide", true)
	v.Flush()
	if got := []string{itemID(v, 0), itemID(v, 1), itemID(v, 2)}; got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected layout without pin: %v", got)
	}
}

func TestFillerPaintsEmptyCells(t *testing.T) {
	def := NewScreen("filler", 1).
		Pane(NewStatic("row", Rect{Row: 0, Col: 0, Width: 4, Height: 1}).
			Flow(Label(surface.Stone, "a").ID("a")).
			Filler(Label(surface.GlassPane, " ").ID("filler"))).
		MustBuild()
	_, v, surf := openViewer(t, def, Options{})
	for cell := 1; cell < 4; cell++ {
		if surf.Cell(cell).Material != surface.GlassPane {
			t.Fatalf("cell %d: expected filler, got %+v", cell, surf.Cell(cell))
		}
		if itemID(v, cell) != "filler" {
			t.Fatalf("cell %d: expected filler in click map", cell)
		}
	}
	if surf.Cell(4).Material != surface.Air {
		t.Fatalf("cells outside the pane must stay untouched")
	}
}

func TestOverflowIsDropped(t *testing.T) {
	def := NewScreen("overflow", 1).
		Pane(NewStatic("row", Rect{Row: 0, Col: 0, Width: 2, Height: 1}).Flow(
			Label(surface.Stone, "a").ID("a"),
			Label(surface.Stone, "b").ID("b"),
			Label(surface.Stone, "c").ID("c"),
		)).
		MustBuild()
	_, v, surf := openViewer(t, def, Options{})
	if itemID(v, 0) != "a" || itemID(v, 1) != "b" {
		t.Fatalf("unexpected layout: %q %q", itemID(v, 0), itemID(v, 1))
	}
	if surf.Name(2) != "" {
		t.Fatalf("overflow leaked into cell 2: %q", surf.Name(2))
	}
}

func TestReactiveValuesComputeOncePerInvalidation(t *testing.T) {
	calls := 0
	def := NewScreen("reactive", 1).
		Pane(NewStatic("row", Rect{Row: 0, Col: 0, Width: 9, Height: 1}).Flow(
			Label(surface.Emerald, "{coins} coins").ID("balance").
				DependOn("coins").
				Var("coins", func(v *Viewer) string {
					calls++
					return "5"
				}),
		)).
		MustBuild()
	reg, v, surf := openViewer(t, def, Options{})

	v.Invalidate()
	v.Flush()
	if calls != 1 {
		t.Fatalf("expected a single compute across renders, got %d", calls)
	}
	if surf.Name(0) != "5 coins" {
		t.Fatalf("unexpected name %q", surf.Name(0))
	}
	if hits, misses, cached := v.CacheStats(); hits == 0 || misses == 0 || cached == 0 {
		t.Fatalf("expected cache activity, got hits=%d misses=%d cached=%d", hits, misses, cached)
	}

	v.State().Set("coins", 6)
	v.Flush()
	if calls != 2 {
		t.Fatalf("expected recompute after state change, got %d", calls)
	}

	if err := reg.RefreshPane("alice", "row"); err != nil {
		t.Fatalf("refresh pane: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected recompute after pane refresh, got %d", calls)
	}
}

func TestRenderFailureSkipsItem(t *testing.T) {
	def := NewScreen("panic", 1).
		Pane(NewStatic("row", Rect{Row: 0, Col: 0, Width: 9, Height: 1}).Flow(
			Label(surface.Stone, "{boom}").ID("bad").
				Var("boom", func(*Viewer) string { panic("no value") }),
			Label(surface.Stone, "good").ID("good"),
		)).
		MustBuild()
	_, v, _ := openViewer(t, def, Options{})
	if itemID(v, 0) != "good" {
		t.Fatalf("expected the failing item to be skipped, got %q", itemID(v, 0))
	}
}

func TestTitleResolvesVars(t *testing.T) {
	def := NewScreen("Shop - {coins} coins", 1).
		Default("coins", 12).
		TitleVar("coins", func(v *Viewer) string {
			return strconv.Itoa(state.Int(v.State(), "coins", 0))
		}).
		Pane(NewStatic("row", Rect{Row: 0, Col: 0, Width: 9, Height: 1})).
		MustBuild()
	_, v, _ := openViewer(t, def, Options{})
	if v.Title() != "Shop - 12 coins" {
		t.Fatalf("unexpected title %q", v.Title())
	}
}
