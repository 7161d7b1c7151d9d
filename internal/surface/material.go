package surface

// Material identifies a displayable item from the fixed catalog.
type Material string

const (
	Air         Material = ""
	Stone       Material = "stone"
	Paper       Material = "paper"
	Book        Material = "book"
	Chest       Material = "chest"
	Barrier     Material = "barrier"
	Arrow       Material = "arrow"
	Clock       Material = "clock"
	Compass     Material = "compass"
	Emerald     Material = "emerald"
	Diamond     Material = "diamond"
	GoldIngot   Material = "gold_ingot"
	IronIngot   Material = "iron_ingot"
	Apple       Material = "apple"
	Bread       Material = "bread"
	Sword       Material = "sword"
	Pickaxe     Material = "pickaxe"
	Bow         Material = "bow"
	Shield      Material = "shield"
	Potion      Material = "potion"
	Redstone    Material = "redstone"
	LimeDye     Material = "lime_dye"
	GrayDye     Material = "gray_dye"
	Hopper      Material = "hopper"
	GlassPane   Material = "glass_pane"
	BlackGlass  Material = "black_glass_pane"
	PlayerHead  Material = "player_head"
	WritableMap Material = "writable_map"
)

var catalog = map[Material]struct{}{
	Stone: {}, Paper: {}, Book: {}, Chest: {}, Barrier: {}, Arrow: {}, Clock: {},
	Compass: {}, Emerald: {}, Diamond: {}, GoldIngot: {}, IronIngot: {}, Apple: {},
	Bread: {}, Sword: {}, Pickaxe: {}, Bow: {}, Shield: {}, Potion: {}, Redstone: {},
	LimeDye: {}, GrayDye: {}, Hopper: {}, GlassPane: {}, BlackGlass: {},
	PlayerHead: {}, WritableMap: {},
}

// Valid reports whether m is part of the catalog. Air is valid and renders as
// an empty cell.
func (m Material) Valid() bool {
	if m == Air {
		return true
	}
	_, ok := catalog[m]
	return ok
}

// Materials lists the catalog in no particular order.
func Materials() []Material {
	out := make([]Material, 0, len(catalog))
	for m := range catalog {
		out = append(out, m)
	}
	return out
}
