package repositories

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"warehouse-cost-service/internal/domain"

	"gopkg.in/yaml.v3"
)

// CatalogDocument is the on-disk catalog format shared by JSON and YAML files.
// Centers are a list so the file fixes the center enumeration order.
type CatalogDocument struct {
	Hub     string             `json:"hub" yaml:"hub"`
	Items   map[string]float64 `json:"items" yaml:"items"`
	Centers []CenterDocument   `json:"centers" yaml:"centers"`
}

type CenterDocument struct {
	ID            string             `json:"id" yaml:"id"`
	DistanceToHub float64            `json:"distance_to_hub" yaml:"distance_to_hub"`
	Stock         map[string]float64 `json:"stock" yaml:"stock"`
}

func (d CatalogDocument) ToDomain() *domain.Catalog {
	cat := &domain.Catalog{
		Hub:     strings.TrimSpace(d.Hub),
		Items:   make(map[string]float64, len(d.Items)),
		Centers: make([]domain.Center, 0, len(d.Centers)),
	}
	for id, w := range d.Items {
		cat.Items[strings.TrimSpace(id)] = w
	}
	for _, c := range d.Centers {
		stock := make(map[string]float64, len(c.Stock))
		for item, qty := range c.Stock {
			stock[strings.TrimSpace(item)] = qty
		}
		cat.Centers = append(cat.Centers, domain.Center{
			ID:            strings.TrimSpace(c.ID),
			DistanceToHub: c.DistanceToHub,
			Stock:         stock,
		})
	}
	return cat
}

func DocumentFromDomain(cat *domain.Catalog) CatalogDocument {
	doc := CatalogDocument{
		Hub:     cat.Hub,
		Items:   make(map[string]float64, len(cat.Items)),
		Centers: make([]CenterDocument, 0, len(cat.Centers)),
	}
	for id, w := range cat.Items {
		doc.Items[id] = w
	}
	for _, c := range cat.Centers {
		stock := make(map[string]float64, len(c.Stock))
		for item, qty := range c.Stock {
			stock[item] = qty
		}
		doc.Centers = append(doc.Centers, CenterDocument{ID: c.ID, DistanceToHub: c.DistanceToHub, Stock: stock})
	}
	return doc
}

// ParseCatalog decodes a catalog document; format is chosen by the file extension of name.
func ParseCatalog(name string, data []byte) (*domain.Catalog, error) {
	var doc CatalogDocument

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse catalog %q: json: %w", name, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse catalog %q: yaml: %w", name, err)
		}
	default:
		return nil, fmt.Errorf("parse catalog %q: unsupported extension %q (want .json, .yaml or .yml)", name, ext)
	}

	cat := doc.ToDomain()
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("parse catalog %q: %w", name, err)
	}
	return cat, nil
}
