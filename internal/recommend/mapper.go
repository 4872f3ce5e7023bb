package recommend

import (
	"vitrifiye-studio/internal/catalog"
	"vitrifiye-studio/internal/models"
)

// Canonical question ids of the quiz.
const (
	QuestionRoomType = "1"
	QuestionStyle    = "2"
	QuestionColor    = "3"
	QuestionBudget   = "4"
	QuestionSize     = "5"
	QuestionNeeds    = "6"
)

type PriceBand struct {
	Min int64
	Max int64
}

var styleAnswers = map[string]models.ProductStyle{
	"modern":      models.StyleModern,
	"klasik":      models.StyleKlasik,
	"endustriyel": models.StyleEndustriyel,
	"dogal":       models.StyleRustik,
}

// Budget bands in kuruş.
var budgetAnswers = map[string]PriceBand{
	"ekonomik": {Min: 0, Max: 500000},
	"orta":     {Min: 500000, Max: 1500000},
	"premium":  {Min: 1500000, Max: 3000000},
	"lux":      {Min: 3000000, Max: 10000000},
}

var needAnswers = map[string]models.ProductCategory{
	"lavabo":   models.CategoryLavabo,
	"klozet":   models.CategoryKlozet,
	"batarya":  models.CategoryBatarya,
	"dus":      models.CategoryDusSeti,
	"karo":     models.CategoryKaro,
	"dolap":    models.CategoryDiger,
	"aksesuar": models.CategoryAksesuar,
}

// Filters are the catalog constraints derived from a quiz submission.
type Filters struct {
	Style    models.ProductStyle
	Color    string
	MinPrice *int64
	MaxPrice *int64
	Tags     []string
}

func (f Filters) HasBudget() bool {
	return f.MinPrice != nil && f.MaxPrice != nil
}

func (f Filters) Midpoint() float64 {
	if !f.HasBudget() {
		return 0
	}
	return float64(*f.MinPrice+*f.MaxPrice) / 2
}

func (f Filters) WithoutPrice() Filters {
	f.MinPrice = nil
	f.MaxPrice = nil
	return f
}

func (f Filters) CatalogFilter() catalog.Filter {
	return catalog.Filter{
		Style:    f.Style,
		Color:    f.Color,
		MinPrice: f.MinPrice,
		MaxPrice: f.MaxPrice,
		Tags:     f.Tags,
	}
}

// MapAnswersToFilters translates raw answer codes into catalog filters and the
// ordered set of needed categories. Missing or wrong-typed answers simply
// leave that dimension unconstrained.
func MapAnswersToFilters(answers Answers) (Filters, []models.ProductCategory) {
	var filters Filters

	if style, ok := answers.Get(QuestionStyle).Scalar(); ok && style != "" {
		if mapped, known := styleAnswers[style]; known {
			filters.Style = mapped
		} else {
			filters.Style = models.ProductStyle(style)
		}
	}

	if color, ok := answers.Get(QuestionColor).Scalar(); ok && color != "" {
		filters.Color = color
	}

	if budget, ok := answers.Get(QuestionBudget).Scalar(); ok {
		if band, known := budgetAnswers[budget]; known {
			minPrice, maxPrice := band.Min, band.Max
			filters.MinPrice = &minPrice
			filters.MaxPrice = &maxPrice
		}
	}

	return filters, neededCategories(answers.Get(QuestionNeeds))
}

func neededCategories(v AnswerValue) []models.ProductCategory {
	var needed []models.ProductCategory
	seen := make(map[models.ProductCategory]bool)
	for _, raw := range v.Values() {
		category, ok := needAnswers[raw]
		if !ok || seen[category] {
			continue
		}
		seen[category] = true
		needed = append(needed, category)
	}
	return needed
}

func BudgetBand(code string) (PriceBand, bool) {
	band, ok := budgetAnswers[code]
	return band, ok
}
