// Package catalog stores the demo shop's products in SQLite.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/atomicstack/panegrid/internal/surface"
)

var (
	// ErrSoldOut is returned when buying a product without stock.
	ErrSoldOut = errors.New("sold out")
	// ErrUnknownProduct is returned for ids not in the catalog.
	ErrUnknownProduct = errors.New("unknown product")
)

// Product is one row of the catalog, with the viewer's favourite flag.
type Product struct {
	ID        int64
	Name      string
	Category  string
	Material  surface.Material
	Price     int
	Stock     int
	Blurb     string
	Favourite bool
}

// Store wraps the catalog database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	name     TEXT NOT NULL UNIQUE,
	category TEXT NOT NULL,
	material TEXT NOT NULL,
	price    INTEGER NOT NULL,
	stock    INTEGER NOT NULL,
	blurb    TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS favourites (
	viewer     TEXT NOT NULL,
	product_id INTEGER NOT NULL REFERENCES products(id),
	PRIMARY KEY (viewer, product_id)
);`

// Open connects to the database at path and applies the schema. An empty
// path opens a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	// one connection keeps an in-memory database alive and serialises writers
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Seed inserts products whose names are not present yet.
func (s *Store) Seed(ctx context.Context, products []Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	defer tx.Rollback()
	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO products (name, category, material, price, stock, blurb) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	defer stmt.Close()
	for _, p := range products {
		if _, err := stmt.ExecContext(ctx, p.Name, p.Category, string(p.Material), p.Price, p.Stock, p.Blurb); err != nil {
			return fmt.Errorf("seed %q: %w", p.Name, err)
		}
	}
	return tx.Commit()
}

// Products lists the catalog ordered by category and name, marking the
// viewer's favourites.
func (s *Store) Products(ctx context.Context, viewer string) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT p.id, p.name, p.category, p.material, p.price, p.stock, p.blurb, f.viewer IS NOT NULL
FROM products p
LEFT JOIN favourites f ON f.product_id = p.id AND f.viewer = ?
ORDER BY p.category, p.name`, viewer)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var out []Product
	for rows.Next() {
		var p Product
		var material string
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &material, &p.Price, &p.Stock, &p.Blurb, &p.Favourite); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Material = surface.Material(material)
		if !p.Material.Valid() {
			p.Material = surface.Barrier
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

// Categories lists distinct categories in order.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Buy takes one unit out of stock.
func (s *Store) Buy(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `UPDATE products SET stock = stock - 1 WHERE id = ? AND stock > 0`, id)
	if err != nil {
		return fmt.Errorf("buy %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return nil
	}
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = ?)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("buy %d: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("buy %d: %w", id, ErrUnknownProduct)
	}
	return fmt.Errorf("buy %d: %w", id, ErrSoldOut)
}

// Restock adds n units.
func (s *Store) Restock(ctx context.Context, id int64, n int) error {
	res, err := s.db.ExecContext(ctx, `UPDATE products SET stock = stock + ? WHERE id = ?`, n, id)
	if err != nil {
		return fmt.Errorf("restock %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("restock %d: %w", id, ErrUnknownProduct)
	}
	return nil
}

// ToggleFavourite flips the viewer's favourite mark and reports the new
// state.
func (s *Store) ToggleFavourite(ctx context.Context, viewer string, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM favourites WHERE viewer = ? AND product_id = ?`, viewer, id)
	if err != nil {
		return false, fmt.Errorf("favourite %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return false, nil
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO favourites (viewer, product_id) VALUES (?, ?)`, viewer, id); err != nil {
		return false, fmt.Errorf("favourite %d: %w", id, err)
	}
	return true, nil
}

// Demo is the built-in product list used when no database is configured.
func Demo() []Product {
	return []Product{
		{Name: "Apple", Category: "food", Material: surface.Apple, Price: 1, Stock: 64, Blurb: "Crisp and red. Keeps the doctor away for a while."},
		{Name: "Bread", Category: "food", Material: surface.Bread, Price: 2, Stock: 32, Blurb: "Baked this morning."},
		{Name: "Potion of Healing", Category: "food", Material: surface.Potion, Price: 12, Stock: 5, Blurb: "Restores health. Tastes of cherries."},
		{Name: "Iron Sword", Category: "gear", Material: surface.Sword, Price: 20, Stock: 4, Blurb: "A reliable blade for any traveller."},
		{Name: "Iron Pickaxe", Category: "gear", Material: surface.Pickaxe, Price: 18, Stock: 6, Blurb: "Mines stone, iron and gold."},
		{Name: "Bow", Category: "gear", Material: surface.Bow, Price: 15, Stock: 3, Blurb: "Comes without arrows."},
		{Name: "Arrows", Category: "gear", Material: surface.Arrow, Price: 1, Stock: 64},
		{Name: "Shield", Category: "gear", Material: surface.Shield, Price: 14, Stock: 2, Blurb: "Blocks most things thrown at it."},
		{Name: "Compass", Category: "tools", Material: surface.Compass, Price: 8, Stock: 10, Blurb: "Always points home."},
		{Name: "Clock", Category: "tools", Material: surface.Clock, Price: 9, Stock: 10, Blurb: "Tells the time of day underground."},
		{Name: "Map", Category: "tools", Material: surface.WritableMap, Price: 6, Stock: 12},
		{Name: "Hopper", Category: "tools", Material: surface.Hopper, Price: 11, Stock: 7, Blurb: "Moves items between containers."},
		{Name: "Book", Category: "lore", Material: surface.Book, Price: 3, Stock: 20, Blurb: "Blank pages waiting for a story."},
		{Name: "Paper", Category: "lore", Material: surface.Paper, Price: 1, Stock: 64},
		{Name: "Diamond", Category: "gems", Material: surface.Diamond, Price: 40, Stock: 3, Blurb: "Rare and very hard."},
		{Name: "Emerald", Category: "gems", Material: surface.Emerald, Price: 25, Stock: 5},
		{Name: "Gold Ingot", Category: "gems", Material: surface.GoldIngot, Price: 10, Stock: 16},
		{Name: "Iron Ingot", Category: "gems", Material: surface.IronIngot, Price: 5, Stock: 32},
		{Name: "Redstone", Category: "gems", Material: surface.Redstone, Price: 2, Stock: 48, Blurb: "Glows faintly. Conducts signals."},
		{Name: "Chest", Category: "tools", Material: surface.Chest, Price: 4, Stock: 10},
	}
}
