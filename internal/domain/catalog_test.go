package domain

import (
	"errors"
	"testing"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	cat := DefaultCatalog()
	if err := cat.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src, ok := cat.SourceOf("E")
	if !ok || src.ID != "C2" {
		t.Fatalf("SourceOf(E) = %q, %v, want C2", src.ID, ok)
	}
	if src.DistanceToHub != 2.5 {
		t.Fatalf("C2 distance = %v, want 2.5", src.DistanceToHub)
	}
}

func TestCatalogSourceOfPrefersFirstCenter(t *testing.T) {
	cat := &Catalog{
		Hub:   "HUB",
		Items: map[string]float64{"X": 1},
		Centers: []Center{
			{ID: "Z", DistanceToHub: 1, Stock: map[string]float64{"X": 0}},
			{ID: "B", DistanceToHub: 1, Stock: map[string]float64{"X": 4}},
			{ID: "A", DistanceToHub: 1, Stock: map[string]float64{"X": 9}},
		},
	}

	src, ok := cat.SourceOf("X")
	if !ok {
		t.Fatalf("expected a source for X")
	}
	if src.ID != "B" {
		t.Fatalf("SourceOf(X) = %q, want B", src.ID)
	}
}

func TestCatalogValidateRejects(t *testing.T) {
	tests := map[string]func(c *Catalog){
		"empty hub":         func(c *Catalog) { c.Hub = "" },
		"zero distance":     func(c *Catalog) { c.Centers[0].DistanceToHub = 0 },
		"duplicate center":  func(c *Catalog) { c.Centers[1].ID = c.Centers[0].ID },
		"negative weight":   func(c *Catalog) { c.Items["A"] = -1 },
		"unknown stock":     func(c *Catalog) { c.Centers[0].Stock["Q"] = 1 },
		"unstocked item":    func(c *Catalog) { c.Items["J"] = 4 },
		"negative stock":    func(c *Catalog) { c.Centers[2].Stock["G"] = -1 },
		"center is the hub": func(c *Catalog) { c.Centers[0].ID = c.Hub },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			cat := DefaultCatalog()
			mutate(cat)

			err := cat.Validate()
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("Validate() = %v, want ErrInvalidCatalog", err)
			}
		})
	}
}
