package menu

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/panegrid/internal/catalog"
	"github.com/atomicstack/panegrid/internal/paging"
	"github.com/atomicstack/panegrid/internal/screen"
	"github.com/atomicstack/panegrid/internal/state"
	"github.com/atomicstack/panegrid/internal/surface"
)

// Shop pane names and state keys.
const (
	ShopCatalog  = "catalog"
	ShopHeader   = "header"
	ShopControls = "controls"
	ShopSellbox  = "sellbox"

	KeyCoins = "coins"

	filterAffordable = "affordable"
	filterFavourites = "favourites"
	categoryPrefix   = "cat:"

	startingCoins = 50
	restockUnits  = 8
)

var errNotEnoughCoins = errors.New("not enough coins")

// Shop is a six-row screen: a header of filter toggles, a four-row catalog
// loaded from the database, paging controls and a box for selling stacks.
func Shop(deps Deps) (*screen.Definition, error) {
	if deps.Catalog == nil {
		return nil, errors.New("shop needs a catalog")
	}
	store := deps.Catalog

	header := screen.NewStatic(ShopHeader, screen.Rect{Row: 0, Col: 0, Width: 9, Height: 1}).
		Place(0, 0, balanceItem()).
		Place(0, 1, filterToggle(filterAffordable, "Only affordable")).
		Place(0, 2, filterToggle(filterFavourites, "Only favourites")).
		Place(0, 3, strategyToggle()).
		Filler(screen.Label(surface.BlackGlass, " ").ID("header-filler"))
	for _, c := range deps.Categories {
		header.Flow(filterToggle(categoryPrefix+c, prettyLabel(c)))
	}

	list := screen.NewAsyncPaginated(ShopCatalog, screen.Rect{Row: 1, Col: 0, Width: 9, Height: 4},
		func(ctx context.Context, viewer string) ([]catalog.Product, error) {
			return store.Products(ctx, viewer)
		},
		func(_ *screen.Viewer, p catalog.Product) *screen.ItemBuilder {
			return productItem(deps, p)
		}).
		Filter(filterAffordable, func(v *screen.Viewer, p catalog.Product) bool {
			return p.Price <= state.Int(v.State(), KeyCoins, 0)
		}, false).
		Filter(filterFavourites, func(_ *screen.Viewer, p catalog.Product) bool {
			return p.Favourite
		}, false).
		Searchable(func(p catalog.Product) string { return p.Name }).
		Loading(screen.Label(surface.Clock, "Loading catalog...")).
		Empty(screen.Label(surface.Barrier, "Nothing for sale", "Try clearing the filters."))
	if deps.TTL > 0 {
		list.TTL(deps.TTL)
	}
	for _, c := range deps.Categories {
		category := c
		list.Filter(categoryPrefix+c, func(_ *screen.Viewer, p catalog.Product) bool {
			return p.Category == category
		}, false)
	}

	controls := screen.NewStatic(ShopControls, screen.Rect{Row: 5, Col: 0, Width: 6, Height: 1}).
		Place(0, 0, screen.PageButton(ShopCatalog, false, "Previous page")).
		Place(0, 1, screen.PageIndicator(ShopCatalog)).
		Place(0, 2, screen.PageButton(ShopCatalog, true, "Next page")).
		Place(0, 3, screen.Button(surface.Compass, "Reload catalog", func(c *screen.ClickContext) error {
			return c.Viewer.Reload(ShopCatalog)
		}).ID("reload")).
		Place(0, 4, searchItem()).
		Filler(screen.Label(surface.GlassPane, " ").ID("controls-filler"))

	sellbox := screen.NewStatic(ShopSellbox, screen.Rect{Row: 5, Col: 6, Width: 3, Height: 1})
	for col := 0; col < 3; col++ {
		sellbox.Place(0, col, screen.Slot(sell).ID("sell-"+strconv.Itoa(col)))
	}

	return screen.NewScreen("Shop - {coins} coins", 6).
		Default(KeyCoins, startingCoins).
		TitleVar("coins", func(v *screen.Viewer) string {
			return strconv.Itoa(state.Int(v.State(), KeyCoins, 0))
		}).
		Pane(header, list, controls, sellbox).
		Build()
}

func balanceItem() *screen.ItemBuilder {
	return screen.NewItem().
		ID("balance").
		Material(surface.GoldIngot).
		Name("{coins} coins").
		Lore("Sell stacks in the box bottom right.").
		DependOn(KeyCoins).
		Var("coins", func(v *screen.Viewer) string {
			return strconv.Itoa(state.Int(v.State(), KeyCoins, 0))
		}).
		AmountFunc(func(v *screen.Viewer) int {
			return max(1, min(state.Int(v.State(), KeyCoins, 0), surface.MaxStack))
		})
}

// filterToggle shows a lime or gray dye depending on whether the catalog
// filter id is active.
func filterToggle(id, label string) *screen.ItemBuilder {
	active := func(v *screen.Viewer) bool {
		pg, err := v.Pager(ShopCatalog)
		return err == nil && pg.HasFilter(id)
	}
	return screen.NewItem().
		ID("toggle-"+id).
		MaterialFunc(func(v *screen.Viewer) surface.Material {
			if active(v) {
				return surface.LimeDye
			}
			return surface.GrayDye
		}).
		Name(label).
		Lore("{state}").
		DependOn(screen.PageKey(ShopCatalog)).
		Var("state", func(v *screen.Viewer) string {
			if active(v) {
				return "Active. Click to disable."
			}
			return "Click to enable."
		}).
		OnClick(screen.ToggleFilter(ShopCatalog, id))
}

func strategyToggle() *screen.ItemBuilder {
	return screen.NewItem().
		ID("strategy").
		Material(surface.Hopper).
		Name("Match {mode} filters").
		DependOn(screen.PageKey(ShopCatalog)).
		Var("mode", func(v *screen.Viewer) string {
			if pg, err := v.Pager(ShopCatalog); err == nil && pg.Strategy() == paging.Any {
				return "any"
			}
			return "all"
		}).
		OnClick(screen.CycleStrategy(ShopCatalog))
}

func searchItem() *screen.ItemBuilder {
	query := func(v *screen.Viewer) string {
		if pg, err := v.Pager(ShopCatalog); err == nil {
			return pg.Query()
		}
		return ""
	}
	return screen.NewItem().
		ID("search").
		Material(surface.WritableMap).
		Name("Search: {query}").
		Lore("Right click to clear.").
		DependOn(screen.PageKey(ShopCatalog)).
		Var("query", query).
		VisibleWhen(func(v *screen.Viewer) bool { return query(v) != "" }).
		OnRight(func(c *screen.ClickContext) error {
			return c.Viewer.Search(ShopCatalog, "")
		})
}

func productItem(deps Deps, p catalog.Product) *screen.ItemBuilder {
	lore := []string{
		"Price: " + strconv.Itoa(p.Price) + " coins",
		"Stock: " + strconv.Itoa(p.Stock),
	}
	if p.Blurb != "" {
		lore = append(lore, p.Blurb)
	}
	if p.Favourite {
		lore = append(lore, "* Favourite")
	}
	lore = append(lore, "Left click to buy, right click to favourite.", "Middle click to restock "+strconv.Itoa(restockUnits)+".")

	material, name := p.Material, p.Name
	if p.Stock <= 0 {
		material, name = surface.Barrier, p.Name+" (sold out)"
	}
	return screen.NewItem().
		ID("product-"+strconv.FormatInt(p.ID, 10)).
		Material(material).
		Name(name).
		Lore(lore...).
		Amount(max(1, min(p.Stock, surface.MaxStack))).
		OnLeft(func(c *screen.ClickContext) error {
			return buy(deps, c, p)
		}).
		OnRight(func(c *screen.ClickContext) error {
			if _, err := deps.Catalog.ToggleFavourite(deps.ctx(), c.Viewer.ID(), p.ID); err != nil {
				return err
			}
			return c.Viewer.Revalidate(ShopCatalog)
		}).
		OnMiddle(func(c *screen.ClickContext) error {
			return restock(deps, c, p)
		})
}

func buy(deps Deps, c *screen.ClickContext, p catalog.Product) error {
	coins := state.Int(c.State(), KeyCoins, 0)
	if coins < p.Price {
		return fmt.Errorf("buy %s: %w", p.Name, errNotEnoughCoins)
	}
	if err := deps.Catalog.Buy(deps.ctx(), p.ID); err != nil {
		return err
	}
	c.State().Set(KeyCoins, coins-p.Price)
	if deps.Deliver != nil {
		deps.Deliver(c.Viewer.ID(), surface.Representation{Material: p.Material, Name: p.Name, Amount: 1})
	}
	return c.Viewer.Revalidate(ShopCatalog)
}

// restock orders more units of p, paid for at one coin per unit.
func restock(deps Deps, c *screen.ClickContext, p catalog.Product) error {
	coins := state.Int(c.State(), KeyCoins, 0)
	if coins < restockUnits {
		return fmt.Errorf("restock %s: %w", p.Name, errNotEnoughCoins)
	}
	if err := deps.Catalog.Restock(deps.ctx(), p.ID, restockUnits); err != nil {
		return err
	}
	c.State().Set(KeyCoins, coins-restockUnits)
	return c.Viewer.Revalidate(ShopCatalog)
}

// sell credits one coin per item placed into the box and charges it back
// when items are taken out.
func sell(c *screen.ClickContext, change screen.SlotChange) error {
	delta := change.Delta()
	coins := state.Int(c.State(), KeyCoins, 0)
	if coins+delta < 0 {
		return fmt.Errorf("take back %s: %w", strings.ToLower(change.Before.Name), errNotEnoughCoins)
	}
	c.State().Set(KeyCoins, coins+delta)
	return nil
}
