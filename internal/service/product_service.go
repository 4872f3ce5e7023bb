package service

import (
	"context"
	"errors"

	"vitrifiye-studio/internal/catalog"
	"vitrifiye-studio/internal/dto"
	"vitrifiye-studio/internal/models"

	"go.uber.org/zap"
)

var ErrNotFound = errors.New("not found")

// ProductCatalog is the read side of the catalog used by the services.
type ProductCatalog interface {
	AllActive(ctx context.Context) ([]models.Product, error)
	ByID(ctx context.Context, id int64) (models.Product, bool, error)
	ByIDs(ctx context.Context, ids []int64) ([]models.Product, error)
	ByCategory(ctx context.Context, category models.ProductCategory) ([]models.Product, error)
	Filter(ctx context.Context, f catalog.Filter) ([]models.Product, error)
}

type ProductService struct {
	catalog ProductCatalog
	logger  *zap.Logger
}

func NewProductService(c ProductCatalog, logger *zap.Logger) *ProductService {
	return &ProductService{
		catalog: c,
		logger:  logger,
	}
}

func (s *ProductService) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.catalog.AllActive(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponses(products), nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, ok, err := s.catalog.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	resp := dto.NewProductResponse(p)
	return &resp, nil
}

func (s *ProductService) ByCategory(ctx context.Context, category models.ProductCategory) ([]dto.ProductResponse, error) {
	products, err := s.catalog.ByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponses(products), nil
}

func (s *ProductService) Search(ctx context.Context, q dto.ProductSearchQuery) ([]dto.ProductResponse, error) {
	products, err := s.catalog.Filter(ctx, catalog.Filter{
		Category: models.ProductCategory(q.Category),
		Style:    models.ProductStyle(q.Style),
		Color:    q.Color,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		Tags:     q.TagList(),
	})
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponses(products), nil
}

// totalPrice sums the price of every placement whose product is in the
// catalog. Unknown products contribute nothing.
func totalPrice(ctx context.Context, c ProductCatalog, placed []models.PlacedProduct) (int64, error) {
	var total int64
	for _, p := range placed {
		product, ok, err := c.ByID(ctx, p.ProductID)
		if err != nil {
			return 0, err
		}
		if ok {
			total += product.Price
		}
	}
	return total, nil
}
