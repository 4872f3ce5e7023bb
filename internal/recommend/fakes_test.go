package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"vitrifiye-studio/internal/catalog"
	"vitrifiye-studio/internal/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sliceSource struct {
	products []models.Product
	err      error
}

func (s *sliceSource) LoadProducts(_ context.Context) ([]models.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func newStore(products ...models.Product) *catalog.Store {
	return catalog.NewStore(&sliceSource{products: products}, zap.NewNop())
}

func product(id int64, category models.ProductCategory, style models.ProductStyle, color string, price int64) models.Product {
	return models.Product{
		ID:       id,
		Title:    "Ürün",
		Category: category,
		Style:    style,
		Color:    color,
		Price:    price,
		IsActive: true,
	}
}

func fixtureCatalog() []models.Product {
	inactive := product(12, models.CategoryLavabo, models.StyleModern, "beyaz", 1000000)
	inactive.IsActive = false
	return []models.Product{
		product(1, models.CategoryLavabo, models.StyleModern, "beyaz", 450000),
		product(2, models.CategoryLavabo, models.StyleKlasik, "bej", 1200000),
		product(3, models.CategoryLavabo, models.StyleModern, "beyaz", 900000),
		product(4, models.CategoryKlozet, models.StyleModern, "beyaz", 800000),
		product(5, models.CategoryKlozet, models.StyleRustik, "kahverengi", 300000),
		product(6, models.CategoryBatarya, models.StyleModern, "krom", 250000),
		product(7, models.CategoryBatarya, models.StyleEndustriyel, "siyah", 1600000),
		product(8, models.CategoryDusSeti, models.StyleModern, "krom", 1400000),
		product(9, models.CategoryKaro, models.StyleRustik, "bej", 200000),
		product(10, models.CategoryAksesuar, models.StyleModern, "krom", 50000),
		product(11, models.CategoryAyna, models.StyleModern, "", 600000),
		inactive,
		product(13, models.CategoryDiger, models.StyleKlasik, "beyaz", 2500000),
	}
}

func mustAnswers(t *testing.T, raw string) Answers {
	t.Helper()
	var a Answers
	require.NoError(t, json.Unmarshal([]byte(raw), &a))
	return a
}

// fakeCapability answers the profile schema with a canned object and the
// ranking schema with a fixed id order.
type fakeCapability struct {
	mu sync.Mutex

	profile    string
	ranking    []int64
	err        error
	rankingErr error
	calls      map[string]int
	prompts    []string
}

func (f *fakeCapability) Generate(ctx context.Context, _, userPrompt string, schema Schema) (json.RawMessage, error) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[schema.Name]++
	f.prompts = append(f.prompts, userPrompt)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}

	switch schema.Name {
	case StyleProfileSchema.Name:
		if f.profile == "" {
			return json.RawMessage(`{"profile":"Modern ve sade.","keywords":["modern","beyaz"],"recommendations":"Sade ürünler öner."}`), nil
		}
		return json.RawMessage(f.profile), nil
	case RankingSchema.Name:
		if f.rankingErr != nil {
			return nil, f.rankingErr
		}
		data, err := json.Marshal(map[string][]int64{"sortedIds": f.ranking})
		return data, err
	default:
		return nil, errors.New("unexpected schema")
	}
}

func (f *fakeCapability) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func descendingIDs(max int64) []int64 {
	ids := make([]int64, 0, max)
	for id := max; id >= 1; id-- {
		ids = append(ids, id)
	}
	return ids
}
