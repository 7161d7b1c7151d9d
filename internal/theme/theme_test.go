package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/panegrid/internal/surface"
)

func TestEveryMaterialHasAColor(t *testing.T) {
	for _, m := range surface.Materials() {
		if _, ok := materialColors[m]; !ok {
			t.Fatalf("material %q has no color", m)
		}
	}
}

func TestMaterialStyle(t *testing.T) {
	s := Default()
	if got := s.Material(surface.Emerald).GetForeground(); got != lipgloss.Color("35") {
		t.Fatalf("expected emerald green, got %v", got)
	}
	if got := s.Material(surface.Air).GetForeground(); got != s.EmptyCell.GetForeground() {
		t.Fatalf("air should use the empty cell style, got %v", got)
	}
}
