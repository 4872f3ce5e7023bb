package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"vitrifiye-studio/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

var productColumns = []string{
	"id", "COALESCE(shopify_id, '')", "title", "COALESCE(description, '')", "category", "COALESCE(style, '')",
	"COALESCE(color, '')", "COALESCE(material, '')", "price", "COALESCE(image_url, '')", "COALESCE(dimensions, '')",
	"COALESCE(tags, '[]'::jsonb)", "is_active", "created_at", "updated_at",
}

type ProductRepository struct {
	db     DB
	logger *zap.Logger
}

func NewProductRepository(db DB, logger *zap.Logger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	var tags []byte
	if err := row.Scan(
		&p.ID, &p.ShopifyID, &p.Title, &p.Description, &p.Category, &p.Style,
		&p.Color, &p.Material, &p.Price, &p.ImageURL, &p.Dimensions,
		&tags, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return models.Product{}, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return models.Product{}, fmt.Errorf("product %d has malformed tags: %w", p.ID, err)
		}
	}
	return p, nil
}

// LoadProducts returns every product, active or not. It backs the in-memory
// catalog store.
func (r *ProductRepository) LoadProducts(ctx context.Context) ([]models.Product, error) {
	query := squirrel.Select(productColumns...).
		From("products").
		OrderBy("id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// Upsert inserts or replaces products by id in a single statement.
func (r *ProductRepository) Upsert(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	builder := squirrel.Insert("products").
		Columns("id", "shopify_id", "title", "description", "category", "style", "color", "material",
			"price", "image_url", "dimensions", "tags", "is_active", "created_at", "updated_at").
		PlaceholderFormat(squirrel.Dollar)

	for _, p := range products {
		tags, err := json.Marshal(p.Tags)
		if err != nil {
			return err
		}
		if p.Tags == nil {
			tags = []byte("[]")
		}
		builder = builder.Values(p.ID, nullString(p.ShopifyID), p.Title, nullString(p.Description), p.Category,
			nullString(string(p.Style)), nullString(p.Color), nullString(p.Material), p.Price,
			nullString(p.ImageURL), nullString(p.Dimensions), string(tags), p.IsActive, p.CreatedAt, p.UpdatedAt)
	}

	builder = builder.Suffix(`ON CONFLICT (id) DO UPDATE SET
		shopify_id = EXCLUDED.shopify_id, title = EXCLUDED.title, description = EXCLUDED.description,
		category = EXCLUDED.category, style = EXCLUDED.style, color = EXCLUDED.color,
		material = EXCLUDED.material, price = EXCLUDED.price, image_url = EXCLUDED.image_url,
		dimensions = EXCLUDED.dimensions, tags = EXCLUDED.tags, is_active = EXCLUDED.is_active,
		updated_at = EXCLUDED.updated_at`)

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to upsert products: %w", err)
	}
	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
