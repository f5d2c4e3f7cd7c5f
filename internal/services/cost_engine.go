package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"warehouse-cost-service/internal/domain"

	"github.com/shopspring/decimal"
)

// UnsourcedPolicy decides what happens to order items no center stocks.
type UnsourcedPolicy string

const (
	// Reject the whole order.
	UnsourcedReject UnsourcedPolicy = "reject"
	// Drop the item; it contributes nothing to the total.
	UnsourcedDrop UnsourcedPolicy = "drop"
)

func ParseUnsourcedPolicy(s string) (UnsourcedPolicy, error) {
	switch p := UnsourcedPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return UnsourcedReject, nil
	case UnsourcedReject, UnsourcedDrop:
		return p, nil
	default:
		return "", fmt.Errorf("parse unsourced policy: unknown value %q (want reject or drop)", s)
	}
}

// Engine prices orders against an immutable catalog and rate table.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	catalog     *domain.Catalog
	rates       domain.RateTable
	policy      UnsourcedPolicy
	fingerprint string
}

func NewEngine(catalog *domain.Catalog, rates domain.RateTable, policy UnsourcedPolicy) (*Engine, error) {
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	if err := rates.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	if policy != UnsourcedReject && policy != UnsourcedDrop {
		return nil, fmt.Errorf("new engine: unknown unsourced policy %q", policy)
	}

	cat := catalog.Clone()
	return &Engine{
		catalog:     cat,
		rates:       rates,
		policy:      policy,
		fingerprint: fingerprint(cat, rates, policy),
	}, nil
}

// Catalog returns the engine's reference tables. Callers must not mutate it.
func (e *Engine) Catalog() *domain.Catalog { return e.catalog }

// Fingerprint identifies the pricing inputs; quotes are only comparable
// between engines with the same fingerprint.
func (e *Engine) Fingerprint() string { return e.fingerprint }

// ComputeCost returns the total delivery cost of an order.
func (e *Engine) ComputeCost(order domain.Order) (float64, error) {
	q, err := e.Quote(order)
	if err != nil {
		return 0, err
	}
	return q.TotalCost, nil
}

// Quote prices an order and returns every charged leg.
//
// Each item is sourced in full from the first center, in catalog order, that
// stocks it. Required centers are then visited in catalog order: a loaded leg
// from the center to the hub at the weight-tiered rate, and an empty
// repositioning leg from the hub before every pickup except the first.
// Nothing is charged to reach the first center or after the last delivery.
func (e *Engine) Quote(order domain.Order) (*domain.Quote, error) {
	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("quote: %w", err)
	}

	required := make(map[string]map[string]int)
	var unsourced []string
	for _, item := range order.Items() {
		src, ok := e.catalog.SourceOf(item)
		if !ok {
			unsourced = append(unsourced, item)
			continue
		}
		if required[src.ID] == nil {
			required[src.ID] = make(map[string]int)
		}
		required[src.ID][item] = order[item]
	}

	if len(unsourced) > 0 && e.policy == UnsourcedReject {
		return nil, fmt.Errorf("quote: %w", &domain.UnsourceableError{Items: unsourced})
	}

	total := decimal.Zero
	legs := make([]domain.Leg, 0, 2*len(required))
	lastStop := ""

	for _, ctr := range e.catalog.Centers {
		items, ok := required[ctr.ID]
		if !ok {
			continue
		}
		dist := decimal.NewFromFloat(ctr.DistanceToHub)

		if lastStop != "" && lastStop != ctr.ID {
			rate := decimal.NewFromFloat(e.rates.RepositionRate)
			cost := dist.Mul(rate)
			total = total.Add(cost)
			legs = append(legs, domain.Leg{
				Kind:     domain.LegReposition,
				Center:   ctr.ID,
				Distance: ctr.DistanceToHub,
				Rate:     rate.InexactFloat64(),
				Cost:     cost.InexactFloat64(),
			})
		}

		// Unreachable with a validated catalog and order: weights and quantities are positive.
		weight := payloadWeight(e.catalog, items)
		if weight.IsZero() {
			continue
		}

		rate := e.rates.RateFor(weight)
		cost := dist.Mul(rate)
		total = total.Add(cost)
		legs = append(legs, domain.Leg{
			Kind:     domain.LegDelivery,
			Center:   ctr.ID,
			Distance: ctr.DistanceToHub,
			Weight:   weight.InexactFloat64(),
			Rate:     rate.InexactFloat64(),
			Cost:     cost.InexactFloat64(),
		})

		// Every delivery ends at the hub.
		lastStop = e.catalog.Hub
	}

	return &domain.Quote{
		TotalCost: total.InexactFloat64(),
		Legs:      legs,
		Unsourced: unsourced,
	}, nil
}

func payloadWeight(cat *domain.Catalog, items map[string]int) decimal.Decimal {
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	weight := decimal.Zero
	for _, id := range ids {
		unit, _ := cat.Weight(id)
		weight = weight.Add(decimal.NewFromFloat(unit).Mul(decimal.NewFromInt(int64(items[id]))))
	}
	return weight
}

func fingerprint(cat *domain.Catalog, rates domain.RateTable, policy UnsourcedPolicy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "hub=%s;policy=%s;rates=%v,%v,%v,%v,%v;",
		cat.Hub, policy, rates.BaseRate, rates.BaseWeight, rates.BracketWeight, rates.BracketStep, rates.RepositionRate)
	for _, id := range cat.ItemIDs() {
		fmt.Fprintf(&b, "item=%s:%v;", id, cat.Items[id])
	}
	for _, ctr := range cat.Centers {
		fmt.Fprintf(&b, "center=%s:%v", ctr.ID, ctr.DistanceToHub)
		stocked := make([]string, 0, len(ctr.Stock))
		for item := range ctr.Stock {
			stocked = append(stocked, item)
		}
		sort.Strings(stocked)
		for _, item := range stocked {
			fmt.Fprintf(&b, ",%s:%v", item, ctr.Stock[item])
		}
		b.WriteByte(';')
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:16]
}
