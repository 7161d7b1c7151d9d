package screen

import (
	"errors"
	"testing"

	"github.com/atomicstack/panegrid/internal/state"
	"github.com/atomicstack/panegrid/internal/surface"
	"github.com/atomicstack/panegrid/internal/testutil"
)

func counterScreen() *Definition {
	return NewScreen("sessions", 1).
		Default("n", 0).
		Pane(NewStatic("row", Rect{Row: 0, Col: 0, Width: 9, Height: 1}).
			Place(0, 0, Button(surface.Clock, "count", func(c *ClickContext) error {
				state.Add(c.State(), "n", 1)
				return nil
			}))).
		MustBuild()
}

func TestOpenReusesSession(t *testing.T) {
	reg := NewRegistry(counterScreen(), Options{})
	first, err := reg.Open("alice", testutil.NewSurface(9))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	reg.Click(Click{Viewer: "alice", Cell: 0})

	second, err := reg.Open("alice", testutil.NewSurface(9))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if first != second || first.Token() != second.Token() {
		t.Fatalf("reopen must reuse the session")
	}
	if state.Int(second.State(), "n", 0) != 1 {
		t.Fatalf("reopened session lost its state")
	}
	if got := reg.Sessions(); len(got) != 1 || got[0] != "alice" {
		t.Fatalf("unexpected sessions %v", got)
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	reg := NewRegistry(counterScreen(), Options{})
	alice, _ := reg.Open("alice", testutil.NewSurface(9))
	bob, _ := reg.Open("bob", testutil.NewSurface(9))
	if alice.Token() == bob.Token() {
		t.Fatalf("sessions must get distinct tokens")
	}

	reg.Click(Click{Viewer: "alice", Cell: 0})
	reg.Click(Click{Viewer: "alice", Cell: 0})
	if state.Int(alice.State(), "n", 0) != 2 || state.Int(bob.State(), "n", 0) != 0 {
		t.Fatalf("state leaked between viewers")
	}
	if _, ok := reg.Definition().Defaults()["n"]; !ok {
		t.Fatalf("defaults must survive viewer mutations")
	}
}

func TestCloseReleasesSession(t *testing.T) {
	reg := NewRegistry(counterScreen(), Options{})
	v, _ := reg.Open("alice", testutil.NewSurface(9))
	if err := reg.Close("alice"); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !v.Closed() {
		t.Fatalf("closed session should report closed")
	}
	if _, ok := reg.Session("alice"); ok {
		t.Fatalf("session still registered")
	}
	if err := reg.Close("alice"); !errors.Is(err, ErrUnknownViewer) {
		t.Fatalf("expected unknown viewer, got %v", err)
	}
	if err := reg.Refresh("alice"); !errors.Is(err, ErrUnknownViewer) {
		t.Fatalf("expected unknown viewer, got %v", err)
	}

	fresh, _ := reg.Open("alice", testutil.NewSurface(9))
	if fresh == v || state.Int(fresh.State(), "n", -1) != 0 {
		t.Fatalf("reopening after close must start a new session")
	}
}

func TestCloseAll(t *testing.T) {
	reg := NewRegistry(counterScreen(), Options{})
	reg.Open("alice", testutil.NewSurface(9))
	reg.Open("bob", testutil.NewSurface(9))
	reg.CloseAll()
	if len(reg.Sessions()) != 0 {
		t.Fatalf("expected no sessions, got %v", reg.Sessions())
	}
}

func TestOpenRejectsSmallSurface(t *testing.T) {
	reg := NewRegistry(counterScreen(), Options{})
	if _, err := reg.Open("alice", testutil.NewSurface(8)); !errors.Is(err, ErrSurfaceTooSmall) {
		t.Fatalf("expected surface too small, got %v", err)
	}
}

func TestRefreshPaneUnknown(t *testing.T) {
	reg := NewRegistry(counterScreen(), Options{})
	reg.Open("alice", testutil.NewSurface(9))
	if err := reg.RefreshPane("alice", "nope"); !errors.Is(err, ErrUnknownPane) {
		t.Fatalf("expected unknown pane, got %v", err)
	}
}
