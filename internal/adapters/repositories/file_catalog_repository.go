package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"warehouse-cost-service/internal/domain"
	"warehouse-cost-service/internal/platform/obs"
)

// File-backed implementation of the CatalogRepository port (JSON or YAML).
type FileCatalogRepository struct{ Path string }

func NewFileCatalogRepository(path string) *FileCatalogRepository {
	return &FileCatalogRepository{Path: path}
}

// LoadCatalog reads and validates the catalog file.
func (f *FileCatalogRepository) LoadCatalog(ctx context.Context) (_ *domain.Catalog, err error) {
	defer obs.Time(ctx, "catalog.file.Load")(&err)

	if strings.TrimSpace(f.Path) == "" {
		return nil, errors.New("file catalog repository: path is empty")
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: read %q: %w", f.Path, err)
	}

	return ParseCatalog(f.Path, data)
}
