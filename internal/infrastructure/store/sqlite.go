package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ojayWillow/latvian-price-scraper/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    store      TEXT NOT NULL,
    product_id TEXT NOT NULL,
    name       TEXT NOT NULL,
    price      REAL NOT NULL,
    url        TEXT,
    scraped_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(store, product_id)
);
`

// ProductStore is a SQLite-backed domain.ProductRepository.
type ProductStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and applies the
// schema.
func Open(path string) (*ProductStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma journal_mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &ProductStore{db: db}, nil
}

// Close closes the underlying database.
func (s *ProductStore) Close() error {
	return s.db.Close()
}

// Upsert inserts a listing or replaces the values of an existing one keyed by
// (store, product_id). The original row id is kept so insertion order, which
// the matcher's tie-breaks depend on, survives re-scrapes.
func (s *ProductStore) Upsert(ctx context.Context, p domain.Product) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO products (store, product_id, name, price, url)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(store, product_id) DO UPDATE SET
            name = excluded.name,
            price = excluded.price,
            url = excluded.url,
            scraped_at = CURRENT_TIMESTAMP
    `, p.Source, p.ExternalID, p.Name, p.Price, p.URL)
	if err != nil {
		return fmt.Errorf("upsert %s/%s: %w", p.Source, p.ExternalID, err)
	}
	return nil
}

// All returns every stored listing in insertion order.
func (s *ProductStore) All(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT store, product_id, name, price, url
        FROM products
        ORDER BY id
    `)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var out []domain.Product
	for rows.Next() {
		var (
			p   domain.Product
			url sql.NullString
		)
		if err := rows.Scan(&p.Source, &p.ExternalID, &p.Name, &p.Price, &url); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.URL = url.String
		out = append(out, p)
	}
	return out, rows.Err()
}

// Count returns the number of stored listings.
func (s *ProductStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}
