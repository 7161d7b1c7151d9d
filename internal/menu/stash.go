package menu

import (
	"strconv"

	"github.com/atomicstack/panegrid/internal/screen"
	"github.com/atomicstack/panegrid/internal/state"
	"github.com/atomicstack/panegrid/internal/surface"
)

// KeyStored counts the items currently kept in the stash.
const KeyStored = "stored"

// Stash is a three-row chest: two rows of free slots and a summary row.
func Stash(Deps) (*screen.Definition, error) {
	slots := screen.NewStatic("slots", screen.Rect{Row: 0, Col: 0, Width: 9, Height: 2})
	for i := 0; i < 18; i++ {
		slots.Place(i/9, i%9, screen.Slot(func(c *screen.ClickContext, change screen.SlotChange) error {
			state.Add(c.State(), KeyStored, change.Delta())
			return nil
		}).ID("stash-"+strconv.Itoa(i)))
	}

	summary := screen.NewStatic("summary", screen.Rect{Row: 2, Col: 0, Width: 9, Height: 1}).
		Place(0, 4, screen.NewItem().
			ID("stored").
			Material(surface.Chest).
			Name("{stored} items stored").
			DependOn(KeyStored).
			Var("stored", func(v *screen.Viewer) string {
				return strconv.Itoa(state.Int(v.State(), KeyStored, 0))
			})).
		Filler(screen.Label(surface.BlackGlass, " ").ID("summary-filler"))

	return screen.NewScreen("Stash", 3).
		Default(KeyStored, 0).
		Pane(slots, summary).
		Build()
}
