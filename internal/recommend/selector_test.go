package recommend

import (
	"context"
	"errors"
	"testing"

	"vitrifiye-studio/internal/catalog"
	"vitrifiye-studio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func ids(products []models.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func selectFor(t *testing.T, store Catalog, raw string) Selection {
	t.Helper()
	filters, needed := MapAnswersToFilters(mustAnswers(t, raw))
	sel, err := NewSelector(store, zap.NewNop()).Select(context.Background(), filters, needed)
	require.NoError(t, err)
	return sel
}

func TestSelector_StrictBudgetTier(t *testing.T) {
	store := newStore(fixtureCatalog()...)

	sel := selectFor(t, store, `{"4":"orta"}`)
	assert.Equal(t, TierStrict, sel.Tier)
	assert.ElementsMatch(t, []int64{2, 3, 4, 8, 11}, ids(sel.Products))
	for _, p := range sel.Products {
		assert.GreaterOrEqual(t, p.Price, int64(500000))
		assert.LessOrEqual(t, p.Price, int64(1500000))
	}
}

func TestSelector_DropsPriceWhenBandIsEmpty(t *testing.T) {
	store := newStore(
		product(1, models.CategoryLavabo, models.StyleModern, "beyaz", 100000),
		product(2, models.CategoryKlozet, models.StyleModern, "beyaz", 2000000),
		product(3, models.CategoryKlozet, models.StyleKlasik, "beyaz", 2000000),
	)

	sel := selectFor(t, store, `{"2":"modern","4":"orta"}`)
	assert.Equal(t, TierWithoutPrice, sel.Tier)
	assert.Equal(t, []int64{1, 2}, ids(sel.Products), "style is still applied after the price is dropped")
}

func TestSelector_FallsBackToNeededCategories(t *testing.T) {
	store := newStore(
		product(1, models.CategoryLavabo, models.StyleModern, "beyaz", 100000),
		product(2, models.CategoryLavabo, models.StyleRustik, "bej", 2000000),
		product(3, models.CategoryKlozet, models.StyleKlasik, "beyaz", 700000),
	)

	sel := selectFor(t, store, `{"2":"klasik","4":"orta","6":["lavabo"]}`)
	assert.Equal(t, TierNeededCategories, sel.Tier)
	assert.Equal(t, []int64{1, 2}, ids(sel.Products))
}

func TestSelector_FallsBackToWholeCatalog(t *testing.T) {
	store := newStore(fixtureCatalog()...)

	sel := selectFor(t, store, `{"2":"bohem"}`)
	assert.Equal(t, TierWholeCatalog, sel.Tier)
	assert.Len(t, sel.Products, 12, "only active products are eligible")

	sel = selectFor(t, store, `{"2":"bohem","6":["dus"]}`)
	assert.Equal(t, TierNeededCategories, sel.Tier)
	assert.Equal(t, []int64{8}, ids(sel.Products))
}

func TestSelector_NeededCategoryWithNoProducts(t *testing.T) {
	store := newStore(product(1, models.CategoryLavabo, models.StyleModern, "beyaz", 100000))

	sel := selectFor(t, store, `{"6":["karo"]}`)
	assert.Equal(t, TierWholeCatalog, sel.Tier)
	assert.Equal(t, []int64{1}, ids(sel.Products))
}

func TestSelector_EmptyCatalog(t *testing.T) {
	sel := selectFor(t, newStore(), `{"4":"lux"}`)
	assert.Equal(t, TierWholeCatalog, sel.Tier)
	assert.Empty(t, sel.Products)
}

func TestSelector_CatalogFailure(t *testing.T) {
	store := catalog.NewStore(&sliceSource{err: errors.New("connection refused")}, zap.NewNop())

	_, err := NewSelector(store, zap.NewNop()).Select(context.Background(), Filters{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
