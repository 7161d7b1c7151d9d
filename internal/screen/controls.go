package screen

import (
	"strconv"

	"github.com/atomicstack/panegrid/internal/paging"
	"github.com/atomicstack/panegrid/internal/surface"
)

// NextPage returns a handler advancing the named pane.
func NextPage(pane string) Handler {
	return func(c *ClickContext) error {
		_, err := c.Viewer.NextPage(pane)
		return err
	}
}

// PreviousPage returns a handler moving the named pane back.
func PreviousPage(pane string) Handler {
	return func(c *ClickContext) error {
		_, err := c.Viewer.PreviousPage(pane)
		return err
	}
}

// ToggleFilter returns a handler flipping a declared filter of pane.
func ToggleFilter(pane, id string) Handler {
	return func(c *ClickContext) error {
		_, err := c.Viewer.ToggleFilter(pane, id)
		return err
	}
}

// CycleStrategy returns a handler switching pane between AND and OR.
func CycleStrategy(pane string) Handler {
	return func(c *ClickContext) error {
		pg, err := c.Viewer.Pager(pane)
		if err != nil {
			return err
		}
		next := paging.All
		if pg.Strategy() == paging.All {
			next = paging.Any
		}
		return c.Viewer.SetStrategy(pane, next)
	}
}

// PageButton is a button that is only visible while the pane can move in
// the given direction.
func PageButton(pane string, forward bool, name string) *ItemBuilder {
	id, h, can := pane+"-previous", PreviousPage(pane), Pager.HasPrevious
	if forward {
		id, h, can = pane+"-next", NextPage(pane), Pager.HasNext
	}
	return NewItem().
		ID(id).
		Material(surface.Arrow).
		Name(name).
		DependOn(PageKey(pane)).
		VisibleWhen(func(v *Viewer) bool {
			pg, err := v.Pager(pane)
			return err == nil && can(pg)
		}).
		OnClick(h)
}

// PageIndicator shows "page/total" for the pane, with the page as the stack
// amount.
func PageIndicator(pane string) *ItemBuilder {
	return NewItem().
		ID(pane+"-page").
		Material(surface.Paper).
		Name("Page {page}/{total}").
		DependOn(PageKey(pane)).
		Var("page", func(v *Viewer) string { return strconv.Itoa(pageOf(v, pane) + 1) }).
		Var("total", func(v *Viewer) string {
			if pg, err := v.Pager(pane); err == nil {
				return strconv.Itoa(pg.TotalPages())
			}
			return "1"
		}).
		AmountFunc(func(v *Viewer) int { return pageOf(v, pane) + 1 })
}

func pageOf(v *Viewer, pane string) int {
	if pg, err := v.Pager(pane); err == nil {
		return pg.Page()
	}
	return 0
}
