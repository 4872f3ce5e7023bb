package models

import (
	"time"
)

type ProductCategory string

const (
	CategoryLavabo   ProductCategory = "lavabo"
	CategoryKlozet   ProductCategory = "klozet"
	CategoryBatarya  ProductCategory = "batarya"
	CategoryDusSeti  ProductCategory = "dus_seti"
	CategoryAyna     ProductCategory = "ayna"
	CategoryAksesuar ProductCategory = "aksesuar"
	CategoryKaro     ProductCategory = "karo"
	CategoryDiger    ProductCategory = "diger"
)

// ProductStyle is kept as a free string: catalog data may carry style values
// outside the canonical set and filters must still match them verbatim.
type ProductStyle string

const (
	StyleModern      ProductStyle = "modern"
	StyleKlasik      ProductStyle = "klasik"
	StyleMinimalist  ProductStyle = "minimalist"
	StyleRustik      ProductStyle = "rustik"
	StyleEndustriyel ProductStyle = "endustriyel"
)

// Product prices are in kuruş (150000 = 1500.00 TL).
type Product struct {
	ID          int64           `db:"id" json:"id"`
	ShopifyID   string          `db:"shopify_id" json:"shopifyId,omitempty"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description,omitempty"`
	Category    ProductCategory `db:"category" json:"category"`
	Style       ProductStyle    `db:"style" json:"style,omitempty"`
	Color       string          `db:"color" json:"color,omitempty"`
	Material    string          `db:"material" json:"material,omitempty"`
	Price       int64           `db:"price" json:"price"`
	ImageURL    string          `db:"image_url" json:"imageUrl,omitempty"`
	Dimensions  string          `db:"dimensions" json:"dimensions,omitempty"`
	Tags        []string        `db:"tags" json:"tags,omitempty"`
	IsActive    bool            `db:"is_active" json:"isActive"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
