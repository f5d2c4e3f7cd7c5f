package ports

import (
	"context"
	"warehouse-cost-service/internal/domain"
)

// Port: a boundary for loading the reference catalog (weights, distances, stock).
type CatalogRepository interface {
	// Load the full catalog. Centers must come back in their enumeration order.
	LoadCatalog(ctx context.Context) (*domain.Catalog, error)
}
