package catalog

import (
	"vitrifiye-studio/internal/models"
)

// Filter is a conjunction of optional predicates. Zero-valued fields are ignored.
// Price bounds are inclusive; Tags matches when the product carries any of them.
type Filter struct {
	Category models.ProductCategory
	Style    models.ProductStyle
	Color    string
	MinPrice *int64
	MaxPrice *int64
	Tags     []string
}

func (f Filter) Matches(p models.Product) bool {
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Style != "" && p.Style != f.Style {
		return false
	}
	if f.Color != "" && p.Color != f.Color {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if len(f.Tags) > 0 {
		matched := false
		for _, tag := range f.Tags {
			if p.HasTag(tag) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func (f Filter) IsEmpty() bool {
	return f.Category == "" && f.Style == "" && f.Color == "" &&
		f.MinPrice == nil && f.MaxPrice == nil && len(f.Tags) == 0
}
