package paging

import (
	"reflect"
	"testing"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestTotalPages(t *testing.T) {
	ctx := New(numbers(10), 3)
	if ctx.TotalPages() != 4 {
		t.Fatalf("expected 4 pages, got %d", ctx.TotalPages())
	}
	empty := New[int](nil, 3)
	if empty.TotalPages() != 1 {
		t.Fatalf("expected empty collection to have one page, got %d", empty.TotalPages())
	}
	if items := empty.PageItems(); len(items) != 0 {
		t.Fatalf("expected no items, got %v", items)
	}
}

func TestPageItemsSlicesCurrentPage(t *testing.T) {
	ctx := New(numbers(10), 3)
	if !reflect.DeepEqual(ctx.PageItems(), []int{1, 2, 3}) {
		t.Fatalf("unexpected first page %v", ctx.PageItems())
	}
	ctx.SetPage(3)
	if !reflect.DeepEqual(ctx.PageItems(), []int{10}) {
		t.Fatalf("unexpected last page %v", ctx.PageItems())
	}
}

func TestNextAndPreviousStopAtBounds(t *testing.T) {
	ctx := New(numbers(5), 2)
	if ctx.PreviousPage() {
		t.Fatal("expected no movement before first page")
	}
	if !ctx.NextPage() || !ctx.NextPage() {
		t.Fatal("expected two forward moves")
	}
	if ctx.NextPage() {
		t.Fatal("expected no movement past last page")
	}
	if ctx.Page() != 2 {
		t.Fatalf("expected page 2, got %d", ctx.Page())
	}
	if ctx.HasNext() || !ctx.HasPrevious() {
		t.Fatal("unexpected HasNext/HasPrevious on last page")
	}
	if !ctx.PreviousPage() || ctx.Page() != 1 {
		t.Fatalf("expected move back to page 1, got %d", ctx.Page())
	}
}

func TestSetPageClamps(t *testing.T) {
	ctx := New(numbers(10), 3)
	if !ctx.SetPage(99) || ctx.Page() != 3 {
		t.Fatalf("expected clamp to last page, got %d", ctx.Page())
	}
	if !ctx.SetPage(-4) || ctx.Page() != 0 {
		t.Fatalf("expected clamp to first page, got %d", ctx.Page())
	}
	if ctx.SetPage(0) {
		t.Fatal("expected no change when already on page")
	}
}

func TestUpdateItemsReclamps(t *testing.T) {
	ctx := New(numbers(10), 3)
	ctx.SetPage(3)
	ctx.UpdateItems(numbers(3))
	if ctx.Page() != 0 {
		t.Fatalf("expected page clamped to 0, got %d", ctx.Page())
	}

	ctx.UpdateItems(numbers(20))
	ctx.SetPage(6)
	ctx.UpdateItems(numbers(8))
	if ctx.Page() != 2 {
		t.Fatalf("expected page clamped to new last page 2, got %d", ctx.Page())
	}
	ctx.UpdateItems(numbers(30))
	if ctx.Page() != 2 {
		t.Fatalf("expected page kept when still valid, got %d", ctx.Page())
	}
}

func TestFilterStrategies(t *testing.T) {
	ctx := New(numbers(6), 10)
	ctx.AddFilter("two", func(n int) bool { return n == 2 })
	ctx.AddFilter("five", func(n int) bool { return n == 5 })

	if got := ctx.Filtered(); len(got) != 0 {
		t.Fatalf("expected AND of disjoint predicates to be empty, got %v", got)
	}
	ctx.SetStrategy(Any)
	if got := ctx.Filtered(); !reflect.DeepEqual(got, []int{2, 5}) {
		t.Fatalf("expected OR to yield union, got %v", got)
	}
}

func TestFilterShortCircuits(t *testing.T) {
	calls := map[string]int{}
	ctx := New(numbers(4), 10)
	ctx.AddFilter("reject", func(int) bool { calls["reject"]++; return false })
	ctx.AddFilter("second", func(int) bool { calls["second"]++; return true })
	ctx.Filtered()
	if calls["second"] != 0 {
		t.Fatalf("expected AND to stop at first rejection, second ran %d times", calls["second"])
	}

	calls = map[string]int{}
	ctx = New(numbers(4), 10)
	ctx.SetStrategy(Any)
	ctx.AddFilter("accept", func(int) bool { calls["accept"]++; return true })
	ctx.AddFilter("second", func(int) bool { calls["second"]++; return false })
	ctx.Filtered()
	if calls["second"] != 0 {
		t.Fatalf("expected OR to stop at first acceptance, second ran %d times", calls["second"])
	}
}

func TestFilterMutationsResetPage(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }
	ctx := New(numbers(20), 2)
	ctx.SetPage(4)
	ctx.AddFilter("even", even)
	if ctx.Page() != 0 {
		t.Fatalf("expected AddFilter to reset page, got %d", ctx.Page())
	}
	if ctx.Len() != 10 {
		t.Fatalf("expected 10 even numbers, got %d", ctx.Len())
	}

	ctx.SetPage(2)
	if ctx.ToggleFilter("even", even) {
		t.Fatal("expected toggle to deactivate existing filter")
	}
	if ctx.Page() != 0 || ctx.Len() != 20 {
		t.Fatalf("expected reset with all items, got page %d len %d", ctx.Page(), ctx.Len())
	}
	if !ctx.ToggleFilter("even", even) || !ctx.HasFilter("even") {
		t.Fatal("expected toggle to reactivate filter")
	}

	ctx.SetPage(3)
	if !ctx.RemoveFilter("even") || ctx.Page() != 0 {
		t.Fatalf("expected RemoveFilter to reset page, got %d", ctx.Page())
	}
	if ctx.RemoveFilter("even") {
		t.Fatal("expected removing a missing filter to report false")
	}
}

func TestFiltersKeepInsertionOrder(t *testing.T) {
	ctx := New(numbers(3), 3)
	ctx.AddFilter("b", func(int) bool { return true })
	ctx.AddFilter("a", func(int) bool { return true })
	ctx.AddFilter("b", func(int) bool { return false })
	if !reflect.DeepEqual(ctx.Filters(), []string{"b", "a"}) {
		t.Fatalf("expected replaced filter to keep its position, got %v", ctx.Filters())
	}
	if ctx.Len() != 0 {
		t.Fatalf("expected replacement predicate to apply, got %d", ctx.Len())
	}
	ctx.ClearFilters()
	if ctx.Len() != 3 {
		t.Fatalf("expected all items after clear, got %d", ctx.Len())
	}
}

func TestFuzzyPredicate(t *testing.T) {
	type product struct{ name string }
	items := []product{{"Diamond Sword"}, {"Iron Pickaxe"}, {"Golden Apple"}}
	ctx := New(items, 10)
	ctx.AddFilter("search", Fuzzy("dsw", func(p product) string { return p.name }))
	got := ctx.Filtered()
	if len(got) != 1 || got[0].name != "Diamond Sword" {
		t.Fatalf("expected fuzzy match for Diamond Sword, got %v", got)
	}
	ctx.AddFilter("search", Fuzzy("  ", func(p product) string { return p.name }))
	if ctx.Len() != 3 {
		t.Fatalf("expected blank query to match everything, got %d", ctx.Len())
	}
}

func TestFilteredReturnsCopy(t *testing.T) {
	ctx := New(numbers(6), 2)
	ctx.AddFilter("even", func(n int) bool { return n%2 == 0 })
	got := ctx.Filtered()
	got[0] = 99
	_ = append(got[:1], 42)
	if page := ctx.PageItems(); !reflect.DeepEqual(page, []int{2, 4}) {
		t.Fatalf("writes through Filtered leaked into pages: %v", page)
	}
}
