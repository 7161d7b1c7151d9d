package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/panegrid/internal/surface"
)

func TestRenderCellPadsAndTruncates(t *testing.T) {
	cases := []struct {
		rep  surface.Representation
		want string
	}{
		{surface.Empty, "·"},
		{surface.Representation{Material: surface.Apple, Name: "Apple", Amount: 1}, "Apple"},
		{surface.Representation{Material: surface.Apple, Name: "Apple", Amount: 12}, "Apple x12"},
		{surface.Representation{Material: surface.Potion, Name: "Potion of Healing", Amount: 5}, "Potion … x5"},
		{surface.Representation{Material: surface.GlassPane, Name: " ", Amount: 1}, "░░░"},
	}
	for _, tc := range cases {
		got := ansi.Strip(renderCell(tc.rep, false))
		if ansi.StringWidth(got) != cellWidth {
			t.Fatalf("cell %q has width %d", got, ansi.StringWidth(got))
		}
		if !strings.Contains(got, tc.want) {
			t.Fatalf("expected %q in %q", tc.want, got)
		}
	}
}

func TestSeparatorFillsWidth(t *testing.T) {
	got := separator("inventory", 40)
	if ansi.StringWidth(got) != 40 || !strings.HasPrefix(got, "── inventory ") {
		t.Fatalf("unexpected separator %q", got)
	}
}

func TestLimitHeightAddsEllipsis(t *testing.T) {
	lines := []styledLine{{text: "a"}, {text: "b"}, {text: "c"}}
	got := limitHeight(lines, 2, 10)
	if len(got) != 2 || got[1].text != "…" {
		t.Fatalf("unexpected lines %#v", got)
	}
}
