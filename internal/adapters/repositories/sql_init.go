package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"warehouse-cost-service/internal/domain"

	"github.com/jmoiron/sqlx"
)

// Dialect selects placeholder syntax for the shared SQL statements.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) bindType() int {
	if d == DialectPostgres {
		return sqlx.DOLLAR
	}
	return sqlx.QUESTION
}

// rebind rewrites '?' placeholders to the dialect's bind syntax.
// Statements must not contain a literal '?'.
func rebind(d Dialect, q string) string {
	return sqlx.Rebind(d.bindType(), q)
}

// InitSchema creates the catalog tables. The DDL is portable between SQLite and Postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createMetaQuery := `
	CREATE TABLE IF NOT EXISTS catalog_meta (
		meta_key TEXT PRIMARY KEY,
		meta_value TEXT NOT NULL
	);
	`

	createItemsQuery := `
	CREATE TABLE IF NOT EXISTS items (
		item_id TEXT PRIMARY KEY,
		unit_weight DOUBLE PRECISION NOT NULL CHECK (unit_weight > 0)
	);
	`

	createCentersQuery := `
	CREATE TABLE IF NOT EXISTS centers (
		center_id TEXT PRIMARY KEY,
		position INTEGER NOT NULL UNIQUE,
		distance_to_hub DOUBLE PRECISION NOT NULL CHECK (distance_to_hub > 0)
	);
	`

	createStockQuery := `
	CREATE TABLE IF NOT EXISTS center_stock (
		center_id TEXT NOT NULL REFERENCES centers(center_id) ON DELETE CASCADE,
		item_id TEXT NOT NULL REFERENCES items(item_id) ON DELETE CASCADE,
		quantity DOUBLE PRECISION NOT NULL CHECK (quantity >= 0),
		PRIMARY KEY (center_id, item_id)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_center_stock_item_center
	ON center_stock(item_id, center_id);
	`

	statements := []string{
		createMetaQuery,
		createItemsQuery,
		createCentersQuery,
		createStockQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedCatalog replaces the stored catalog with cat in a single transaction.
func SeedCatalog(ctx context.Context, db *sql.DB, dialect Dialect, cat *domain.Catalog) error {
	if db == nil {
		return errors.New("seed catalog: DB is nil")
	}
	if err := cat.Validate(); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"center_stock", "centers", "items", "catalog_meta"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("seed catalog: clear %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		rebind(dialect, `INSERT INTO catalog_meta (meta_key, meta_value) VALUES (?, ?)`),
		"hub", cat.Hub,
	); err != nil {
		return fmt.Errorf("seed catalog: insert hub: %w", err)
	}

	itemStmt, err := tx.PrepareContext(ctx, rebind(dialect, `INSERT INTO items (item_id, unit_weight) VALUES (?, ?)`))
	if err != nil {
		return fmt.Errorf("seed catalog: prepare item insert: %w", err)
	}
	defer itemStmt.Close()

	for _, id := range cat.ItemIDs() {
		if _, err := itemStmt.ExecContext(ctx, id, cat.Items[id]); err != nil {
			return fmt.Errorf("seed catalog: insert item_id=%q: %w", id, err)
		}
	}

	centerStmt, err := tx.PrepareContext(ctx, rebind(dialect, `
	INSERT INTO centers (
		center_id,
		position,
		distance_to_hub
	)
	VALUES (?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("seed catalog: prepare center insert: %w", err)
	}
	defer centerStmt.Close()

	stockStmt, err := tx.PrepareContext(ctx, rebind(dialect, `
	INSERT INTO center_stock (
		center_id,
		item_id,
		quantity
	)
	VALUES (?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("seed catalog: prepare stock insert: %w", err)
	}
	defer stockStmt.Close()

	for pos, c := range cat.Centers {
		if _, err := centerStmt.ExecContext(ctx, c.ID, pos+1, c.DistanceToHub); err != nil {
			return fmt.Errorf("seed catalog: insert center_id=%q: %w", c.ID, err)
		}
		for item, qty := range c.Stock {
			if _, err := stockStmt.ExecContext(ctx, c.ID, item, qty); err != nil {
				return fmt.Errorf("seed catalog: insert stock center_id=%q item_id=%q: %w", c.ID, item, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}

// SeedFromFile populates the database from a JSON or YAML catalog file.
func SeedFromFile(ctx context.Context, db *sql.DB, dialect Dialect, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("seed from file: read %q: %w", path, err)
	}

	cat, err := ParseCatalog(path, data)
	if err != nil {
		return fmt.Errorf("seed from file: %w", err)
	}

	if err := SeedCatalog(ctx, db, dialect, cat); err != nil {
		return fmt.Errorf("seed from file: %w", err)
	}

	return nil
}
