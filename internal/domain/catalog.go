package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Center is a fulfillment location that ships a subset of items to the hub.
// Centers only reach each other through the hub.
type Center struct {
	ID            string
	DistanceToHub float64
	Stock         map[string]float64
}

// Stocks reports whether the center holds positive stock of item.
func (c Center) Stocks(item string) bool {
	return c.Stock[item] > 0
}

// Catalog is the immutable reference data the cost engine prices against:
// unit weights, hub distances and stock per center.
//
// The order of Centers is the one and only center enumeration order. It decides
// which center wins an item stocked in several places and the sequence in which
// pickups are charged.
type Catalog struct {
	Hub     string
	Items   map[string]float64
	Centers []Center
}

// Weight returns the unit weight of item.
func (c *Catalog) Weight(item string) (float64, bool) {
	w, ok := c.Items[item]
	return w, ok
}

// Center returns the center with the given id.
func (c *Catalog) Center(id string) (Center, bool) {
	for _, ctr := range c.Centers {
		if ctr.ID == id {
			return ctr, true
		}
	}
	return Center{}, false
}

// SourceOf returns the first center, in catalog order, holding positive stock of item.
func (c *Catalog) SourceOf(item string) (Center, bool) {
	for _, ctr := range c.Centers {
		if ctr.Stocks(item) {
			return ctr, true
		}
	}
	return Center{}, false
}

// ItemIDs returns item ids in lexical order.
func (c *Catalog) ItemIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for id := range c.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy so the engine never shares mutable maps with its caller.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{
		Hub:     c.Hub,
		Items:   make(map[string]float64, len(c.Items)),
		Centers: make([]Center, 0, len(c.Centers)),
	}
	for id, w := range c.Items {
		out.Items[id] = w
	}
	for _, ctr := range c.Centers {
		stock := make(map[string]float64, len(ctr.Stock))
		for item, qty := range ctr.Stock {
			stock[item] = qty
		}
		out.Centers = append(out.Centers, Center{ID: ctr.ID, DistanceToHub: ctr.DistanceToHub, Stock: stock})
	}
	return out
}

// Validate checks the structural invariants of the reference tables.
func (c *Catalog) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: catalog is nil", ErrInvalidCatalog)
	}
	if strings.TrimSpace(c.Hub) == "" {
		return fmt.Errorf("%w: hub must not be empty", ErrInvalidCatalog)
	}
	if len(c.Centers) == 0 {
		return fmt.Errorf("%w: at least one center is required", ErrInvalidCatalog)
	}
	if len(c.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidCatalog)
	}

	for _, id := range c.ItemIDs() {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: item id must not be empty", ErrInvalidCatalog)
		}
		if w := c.Items[id]; w <= 0 {
			return fmt.Errorf("%w: item %q weight must be positive, got %v", ErrInvalidCatalog, id, w)
		}
	}

	seen := make(map[string]struct{}, len(c.Centers))
	for i, ctr := range c.Centers {
		if strings.TrimSpace(ctr.ID) == "" {
			return fmt.Errorf("%w: center #%d has empty id", ErrInvalidCatalog, i+1)
		}
		if ctr.ID == c.Hub {
			return fmt.Errorf("%w: center %q collides with hub id", ErrInvalidCatalog, ctr.ID)
		}
		if _, dup := seen[ctr.ID]; dup {
			return fmt.Errorf("%w: duplicate center %q", ErrInvalidCatalog, ctr.ID)
		}
		seen[ctr.ID] = struct{}{}

		if ctr.DistanceToHub <= 0 {
			return fmt.Errorf("%w: center %q distance must be positive, got %v", ErrInvalidCatalog, ctr.ID, ctr.DistanceToHub)
		}
		for item, qty := range ctr.Stock {
			if _, ok := c.Items[item]; !ok {
				return fmt.Errorf("%w: center %q stocks unknown item %q", ErrInvalidCatalog, ctr.ID, item)
			}
			if qty < 0 {
				return fmt.Errorf("%w: center %q stock of %q is negative", ErrInvalidCatalog, ctr.ID, item)
			}
		}
	}

	for _, id := range c.ItemIDs() {
		if _, ok := c.SourceOf(id); !ok {
			return fmt.Errorf("%w: item %q is not stocked by any center", ErrInvalidCatalog, id)
		}
	}

	return nil
}

// DefaultCatalog returns the three-center reference network served through hub L1.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Hub: "L1",
		Items: map[string]float64{
			"A": 3,
			"B": 2,
			"C": 8,
			"D": 12,
			"E": 25,
			"F": 15,
			"G": 0.5,
			"H": 1,
			"I": 2,
		},
		Centers: []Center{
			{
				ID:            "C1",
				DistanceToHub: 3,
				Stock:         map[string]float64{"A": 3, "B": 2, "C": 8, "D": 0, "E": 0, "F": 0, "G": 0, "H": 0, "I": 0},
			},
			{
				ID:            "C2",
				DistanceToHub: 2.5,
				Stock:         map[string]float64{"A": 0, "B": 0, "C": 0, "D": 12, "E": 25, "F": 15, "G": 0, "H": 0, "I": 0},
			},
			{
				ID:            "C3",
				DistanceToHub: 2,
				Stock:         map[string]float64{"A": 0, "B": 0, "C": 0, "D": 0, "E": 0, "F": 0, "G": 0.5, "H": 1, "I": 2},
			},
		},
	}
}
