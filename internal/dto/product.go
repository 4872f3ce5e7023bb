package dto

import (
	"strings"

	"vitrifiye-studio/internal/models"
)

type ProductResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category"`
	Style       string   `json:"style,omitempty"`
	Color       string   `json:"color,omitempty"`
	Material    string   `json:"material,omitempty"`
	Price       int64    `json:"price"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Dimensions  string   `json:"dimensions,omitempty"`
	Tags        []string `json:"tags"`
}

func NewProductResponse(p models.Product) ProductResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    string(p.Category),
		Style:       string(p.Style),
		Color:       p.Color,
		Material:    p.Material,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Dimensions:  p.Dimensions,
		Tags:        tags,
	}
}

func NewProductResponses(products []models.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, NewProductResponse(p))
	}
	return out
}

// ProductSearchQuery is bound from the query string. Tags is a comma
// separated list; a product matches when it carries any of them.
type ProductSearchQuery struct {
	Category string `query:"category" validate:"omitempty,oneof=lavabo klozet batarya dus_seti ayna aksesuar karo diger"`
	Style    string `query:"style" validate:"omitempty,max=50"`
	Color    string `query:"color" validate:"omitempty,max=50"`
	MinPrice *int64 `query:"minPrice" validate:"omitempty,min=0"`
	MaxPrice *int64 `query:"maxPrice" validate:"omitempty,min=0"`
	Tags     string `query:"tags" validate:"omitempty,max=500"`
}

func (q ProductSearchQuery) TagList() []string {
	if q.Tags == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(q.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
