package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"warehouse-cost-service/internal/domain"
	"warehouse-cost-service/internal/platform/obs"
)

// SQL-backed implementation of the CatalogRepository port (SQLite or Postgres).
type SQLCatalogRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLCatalogRepository(db *sql.DB, dialect Dialect) *SQLCatalogRepository {
	return &SQLCatalogRepository{DB: db, Dialect: dialect}
}

// LoadCatalog returns the stored catalog with centers ordered by position.
func (s *SQLCatalogRepository) LoadCatalog(ctx context.Context) (_ *domain.Catalog, err error) {
	defer obs.Time(ctx, "catalog.sql.Load")(&err)

	if s.DB == nil {
		return nil, errors.New("sql catalog repository: DB is nil")
	}

	cat := &domain.Catalog{Items: map[string]float64{}}

	err = s.DB.QueryRowContext(ctx,
		rebind(s.Dialect, `SELECT meta_value FROM catalog_meta WHERE meta_key = ?`),
		"hub",
	).Scan(&cat.Hub)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load catalog: hub not seeded: %w", domain.ErrInvalidCatalog)
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog: query hub: %w", err)
	}

	if err := s.loadItems(ctx, cat); err != nil {
		return nil, err
	}

	index, err := s.loadCenters(ctx, cat)
	if err != nil {
		return nil, err
	}

	if err := s.loadStock(ctx, cat, index); err != nil {
		return nil, err
	}

	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	return cat, nil
}

func (s *SQLCatalogRepository) loadItems(ctx context.Context, cat *domain.Catalog) error {
	query := `
	SELECT
		item_id,
		unit_weight
	FROM items
	ORDER BY item_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("load catalog: query items table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var weight float64
		if err := rows.Scan(&id, &weight); err != nil {
			return fmt.Errorf("load catalog: scan item row: %w", err)
		}
		cat.Items[id] = weight
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("load catalog: item row iteration: %w", err)
	}
	return nil
}

// loadCenters returns center id -> index into cat.Centers.
func (s *SQLCatalogRepository) loadCenters(ctx context.Context, cat *domain.Catalog) (map[string]int, error) {
	query := `
	SELECT
		center_id,
		distance_to_hub
	FROM centers
	ORDER BY position;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load catalog: query centers table: %w", err)
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var id string
		var dist float64
		if err := rows.Scan(&id, &dist); err != nil {
			return nil, fmt.Errorf("load catalog: scan center row: %w", err)
		}
		index[id] = len(cat.Centers)
		cat.Centers = append(cat.Centers, domain.Center{ID: id, DistanceToHub: dist, Stock: map[string]float64{}})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load catalog: center row iteration: %w", err)
	}
	return index, nil
}

func (s *SQLCatalogRepository) loadStock(ctx context.Context, cat *domain.Catalog, index map[string]int) error {
	query := `
	SELECT
		center_id,
		item_id,
		quantity
	FROM center_stock;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("load catalog: query center_stock table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var centerID, itemID string
		var qty float64
		if err := rows.Scan(&centerID, &itemID, &qty); err != nil {
			return fmt.Errorf("load catalog: scan stock row: %w", err)
		}
		i, ok := index[centerID]
		if !ok {
			return fmt.Errorf("load catalog: stock references unknown center %q: %w", centerID, domain.ErrInvalidCatalog)
		}
		cat.Centers[i].Stock[itemID] = qty
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("load catalog: stock row iteration: %w", err)
	}
	return nil
}
