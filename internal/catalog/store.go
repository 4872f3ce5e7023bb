package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"vitrifiye-studio/internal/metrics"
	"vitrifiye-studio/internal/models"

	"go.uber.org/zap"
)

// Source materializes the full product list. Implemented by the postgres
// product repository and by JSONFileSource.
type Source interface {
	LoadProducts(ctx context.Context) ([]models.Product, error)
}

// Store keeps the catalog in memory for the process lifetime. The first
// successful load wins; a failed load is not cached and is retried on the
// next access.
type Store struct {
	source Source
	logger *zap.Logger

	mu     sync.Mutex
	loaded bool
	active []models.Product
	byID   map[int64]int
}

func NewStore(source Source, logger *zap.Logger) *Store {
	return &Store{
		source: source,
		logger: logger,
	}
}

func (s *Store) ensureLoaded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}

	products, err := s.source.LoadProducts(ctx)
	if err != nil {
		metrics.CatalogLoads.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	metrics.CatalogLoads.WithLabelValues("ok").Inc()

	active := make([]models.Product, 0, len(products))
	byID := make(map[int64]int, len(products))
	for _, p := range products {
		if !p.IsActive {
			continue
		}
		if _, dup := byID[p.ID]; dup {
			s.logger.Warn("Duplicate product id in catalog, keeping first", zap.Int64("product_id", p.ID))
			continue
		}
		byID[p.ID] = len(active)
		active = append(active, p)
	}

	s.active = active
	s.byID = byID
	s.loaded = true

	s.logger.Info("Catalog loaded",
		zap.Int("total", len(products)),
		zap.Int("active", len(active)),
	)
	return nil
}

// Preload forces the initial load so startup can fail fast on a broken source.
func (s *Store) Preload(ctx context.Context) error {
	return s.ensureLoaded(ctx)
}

func (s *Store) AllActive(ctx context.Context) ([]models.Product, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(s.active), nil
}

func (s *Store) ByID(ctx context.Context, id int64) (models.Product, bool, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return models.Product{}, false, err
	}
	idx, ok := s.byID[id]
	if !ok {
		return models.Product{}, false, nil
	}
	return s.active[idx], true, nil
}

func (s *Store) ByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if idx, ok := s.byID[id]; ok {
			products = append(products, s.active[idx])
		}
	}
	return products, nil
}

func (s *Store) ByCategory(ctx context.Context, category models.ProductCategory) ([]models.Product, error) {
	return s.Filter(ctx, Filter{Category: category})
}

func (s *Store) Filter(ctx context.Context, f Filter) ([]models.Product, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	var out []models.Product
	for _, p := range s.active {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out, nil
}
