package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"vitrifiye-studio/internal/models"
)

var exportCategoryAliases = map[string]models.ProductCategory{
	"lavabo":       models.CategoryLavabo,
	"klozet":       models.CategoryKlozet,
	"batarya":      models.CategoryBatarya,
	"dus_seti":     models.CategoryDusSeti,
	"dus":          models.CategoryDusSeti,
	"ayna":         models.CategoryAyna,
	"aksesuar":     models.CategoryAksesuar,
	"karo":         models.CategoryKaro,
	"dolap":        models.CategoryDiger,
	"banyo_dolabi": models.CategoryDiger,
}

var exportStyleAliases = map[string]models.ProductStyle{
	"modern":      models.StyleModern,
	"klasik":      models.StyleKlasik,
	"endustriyel": models.StyleEndustriyel,
	"dogal":       models.StyleRustik,
	"rustik":      models.StyleRustik,
	"minimalist":  models.StyleModern,
}

// exportedProduct mirrors the storefront export format, where several fields
// arrive either as JSON-encoded strings or as native JSON values.
type exportedProduct struct {
	ID          int64           `json:"id"`
	ShopifyID   string          `json:"shopifyId"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Style       string          `json:"style"`
	Color       string          `json:"color"`
	Material    string          `json:"material"`
	Price       int64           `json:"price"`
	ImageURL    string          `json:"imageUrl"`
	Dimensions  json.RawMessage `json:"dimensions"`
	Tags        json.RawMessage `json:"tags"`
	IsActive    json.RawMessage `json:"isActive"`
	CreatedAt   string          `json:"createdAt"`
	UpdatedAt   string          `json:"updatedAt"`
}

// JSONFileSource reads products from an exported-products JSON array on disk.
type JSONFileSource struct {
	path string
}

func NewJSONFileSource(path string) *JSONFileSource {
	return &JSONFileSource{path: path}
}

func (s *JSONFileSource) LoadProducts(_ context.Context) ([]models.Product, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return ParseExportedProducts(data)
}

func ParseExportedProducts(data []byte) ([]models.Product, error) {
	var exported []exportedProduct
	if err := json.Unmarshal(data, &exported); err != nil {
		return nil, fmt.Errorf("failed to parse catalog export: %w", err)
	}

	products := make([]models.Product, 0, len(exported))
	for _, e := range exported {
		products = append(products, e.toProduct())
	}
	return products, nil
}

func (e exportedProduct) toProduct() models.Product {
	category, ok := exportCategoryAliases[strings.ToLower(e.Category)]
	if !ok {
		category = models.CategoryDiger
	}

	var style models.ProductStyle
	if e.Style != "" {
		style = exportStyleAliases[strings.ToLower(e.Style)]
	}

	price := e.Price
	if price < 0 {
		price = 0
	}

	now := time.Now()
	return models.Product{
		ID:          e.ID,
		ShopifyID:   e.ShopifyID,
		Title:       e.Title,
		Description: e.Description,
		Category:    category,
		Style:       style,
		Color:       e.Color,
		Material:    e.Material,
		Price:       price,
		ImageURL:    e.ImageURL,
		Dimensions:  parseDimensions(e.Dimensions),
		Tags:        parseTags(e.Tags),
		IsActive:    parseActive(e.IsActive),
		CreatedAt:   parseTimeOr(e.CreatedAt, now),
		UpdatedAt:   parseTimeOr(e.UpdatedAt, now),
	}
}

func parseDimensions(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil || !json.Valid([]byte(s)) {
			return ""
		}
		return s
	}
	return string(raw)
}

// parseTags accepts either a JSON array or a string holding a JSON array.
func parseTags(raw json.RawMessage) []string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
		raw = []byte(s)
	}
	var tags []string
	if err := json.Unmarshal(raw, &tags); err != nil {
		return nil
	}
	return tags
}

func parseActive(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "1", "true":
		return true
	default:
		return false
	}
}

func parseTimeOr(value string, fallback time.Time) time.Time {
	if value == "" {
		return fallback
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return fallback
}
