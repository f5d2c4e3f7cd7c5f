package ports

import (
	"context"
	"warehouse-cost-service/internal/domain"
)

// Contract for caching computed quotes by canonical key.
type QuoteCache interface {
	// Return the cached quote and whether it was found.
	Get(ctx context.Context, key string) (*domain.Quote, bool, error)
	// Store a quote under key.
	Put(ctx context.Context, key string, q *domain.Quote) error
}
