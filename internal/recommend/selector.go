package recommend

import (
	"context"
	"fmt"

	"vitrifiye-studio/internal/catalog"
	"vitrifiye-studio/internal/models"

	"go.uber.org/zap"
)

// Catalog is the read-only product accessor the engine depends on.
// *catalog.Store implements it.
type Catalog interface {
	AllActive(ctx context.Context) ([]models.Product, error)
	ByID(ctx context.Context, id int64) (models.Product, bool, error)
	ByCategory(ctx context.Context, category models.ProductCategory) ([]models.Product, error)
	Filter(ctx context.Context, f catalog.Filter) ([]models.Product, error)
}

// Tier records which relaxation step produced the candidate pool.
type Tier int

const (
	TierStrict Tier = iota + 1
	TierWithoutPrice
	TierNeededCategories
	TierWholeCatalog
)

func (t Tier) String() string {
	switch t {
	case TierStrict:
		return "strict"
	case TierWithoutPrice:
		return "without_price"
	case TierNeededCategories:
		return "needed_categories"
	case TierWholeCatalog:
		return "whole_catalog"
	default:
		return "unknown"
	}
}

type Selection struct {
	Products []models.Product
	Tier     Tier
}

type Selector struct {
	catalog Catalog
	logger  *zap.Logger
}

func NewSelector(c Catalog, logger *zap.Logger) *Selector {
	return &Selector{catalog: c, logger: logger}
}

// Select applies the filters with progressive relaxation. Each tier runs only
// when the previous one produced nothing. The result is empty only when the
// active catalog itself is empty.
func (s *Selector) Select(ctx context.Context, filters Filters, needed []models.ProductCategory) (Selection, error) {
	products, err := s.filtered(ctx, filters, needed)
	if err != nil {
		return Selection{}, err
	}
	if len(products) > 0 {
		return Selection{Products: products, Tier: TierStrict}, nil
	}

	s.logger.Info("No products matched strict filters, dropping price range")
	products, err = s.filtered(ctx, filters.WithoutPrice(), needed)
	if err != nil {
		return Selection{}, err
	}
	if len(products) > 0 {
		return Selection{Products: products, Tier: TierWithoutPrice}, nil
	}

	if len(needed) > 0 {
		s.logger.Info("No products matched relaxed filters, using all products of needed categories",
			zap.Int("categories", len(needed)),
		)
		for _, category := range needed {
			inCategory, err := s.catalog.ByCategory(ctx, category)
			if err != nil {
				return Selection{}, fmt.Errorf("failed to list category %s: %w", category, err)
			}
			products = append(products, inCategory...)
		}
		if len(products) > 0 {
			return Selection{Products: products, Tier: TierNeededCategories}, nil
		}
	}

	s.logger.Info("Falling back to the whole active catalog")
	products, err = s.catalog.AllActive(ctx)
	if err != nil {
		return Selection{}, fmt.Errorf("failed to list catalog: %w", err)
	}
	return Selection{Products: products, Tier: TierWholeCatalog}, nil
}

func (s *Selector) filtered(ctx context.Context, filters Filters, needed []models.ProductCategory) ([]models.Product, error) {
	products, err := s.catalog.Filter(ctx, filters.CatalogFilter())
	if err != nil {
		return nil, fmt.Errorf("failed to filter catalog: %w", err)
	}
	if len(needed) == 0 {
		return products, nil
	}

	wanted := make(map[models.ProductCategory]bool, len(needed))
	for _, c := range needed {
		wanted[c] = true
	}
	out := products[:0]
	for _, p := range products {
		if wanted[p.Category] {
			out = append(out, p)
		}
	}
	return out, nil
}
