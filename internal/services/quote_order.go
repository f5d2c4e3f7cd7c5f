package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"warehouse-cost-service/internal/domain"
	"warehouse-cost-service/internal/platform/obs"
	"warehouse-cost-service/internal/ports"
)

// QuoteCacheKey scopes an order's canonical form to the engine's pricing inputs,
// so a catalog or rate change never serves a stale quote.
func QuoteCacheKey(engine *Engine, order domain.Order) string {
	return engine.Fingerprint() + ":" + order.Key()
}

// QuoteOrder validates an order and prices it, consulting the cache first when one is configured.
//
// Cache failures are logged and degrade to a direct computation; they never fail the quote.
// The returned bool reports whether the quote was served from cache.
func QuoteOrder(
	ctx context.Context,
	order domain.Order,
	engine *Engine,
	cache ports.QuoteCache,
) (_ *domain.Quote, cached bool, err error) {
	defer obs.Time(ctx, "quote.Order")(&err)

	if engine == nil {
		return nil, false, errors.New("quote order: engine must be non-nil")
	}

	if verr := order.Validate(); verr != nil {
		obs.QuotesTotal.WithLabelValues("rejected").Inc()
		return nil, false, fmt.Errorf("quote order: %w", verr)
	}

	key := QuoteCacheKey(engine, order)
	reqID := obs.RequestID(ctx)

	if cache != nil {
		q, ok, cerr := cache.Get(ctx, key)
		switch {
		case cerr != nil:
			obs.QuoteCacheTotal.WithLabelValues("error").Inc()
			log.Printf("req_id=%s quote cache get failed key=%s err=%v", reqID, key, cerr)
		case ok:
			obs.QuoteCacheTotal.WithLabelValues("hit").Inc()
			obs.QuotesTotal.WithLabelValues("cached").Inc()
			return q, true, nil
		default:
			obs.QuoteCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	q, qerr := engine.Quote(order)
	if qerr != nil {
		if errors.Is(qerr, domain.ErrUnsourceableItem) || errors.Is(qerr, domain.ErrInvalidQuantity) {
			obs.QuotesTotal.WithLabelValues("rejected").Inc()
		} else {
			obs.QuotesTotal.WithLabelValues("failed").Inc()
		}
		return nil, false, fmt.Errorf("quote order: %w", qerr)
	}

	if len(q.Unsourced) > 0 {
		log.Printf("req_id=%s quote dropped unsourced items=%v", reqID, q.Unsourced)
	}

	if cache != nil {
		if perr := cache.Put(ctx, key, q); perr != nil {
			log.Printf("req_id=%s quote cache put failed key=%s err=%v", reqID, key, perr)
		}
	}

	obs.QuotesTotal.WithLabelValues("computed").Inc()
	obs.QuoteCost.Observe(q.TotalCost)

	return q, false, nil
}
