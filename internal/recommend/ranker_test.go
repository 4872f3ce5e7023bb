package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"vitrifiye-studio/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func budget(min, max int64) Filters {
	return Filters{MinPrice: &min, MaxPrice: &max}
}

func TestRankRuleBased_MidpointAndCheapest(t *testing.T) {
	candidates := []models.Product{
		product(1, models.CategoryLavabo, "", "", 100),
		product(2, models.CategoryLavabo, "", "", 500),
		product(3, models.CategoryLavabo, "", "", 900),
	}
	needed := []models.ProductCategory{models.CategoryLavabo}

	withBudget := RankRuleBased(candidates, needed, budget(0, 1000))
	assert.Equal(t, []int64{2, 1}, withBudget, "closest to the midpoint first, ties keep input order")

	withoutBudget := RankRuleBased(candidates, needed, Filters{})
	assert.Equal(t, []int64{1, 2}, withoutBudget)

	assert.Equal(t, []int64{1, 2, 3}, ids(candidates), "input must not be reordered")
}

func TestRankRuleBased_DefaultCategoryOrder(t *testing.T) {
	got := RankRuleBased(fixtureCatalog()[:11], nil, Filters{})

	// lavabo, klozet, batarya, dus_seti, karo, aksesuar; ayna is never ranked by default
	assert.Equal(t, []int64{1, 3, 5, 4, 6, 7, 8, 9, 10}, got)
}

func TestRankRuleBased_SingleCandidateCategory(t *testing.T) {
	candidates := []models.Product{product(8, models.CategoryDusSeti, "", "", 1400000)}
	got := RankRuleBased(candidates, []models.ProductCategory{models.CategoryDusSeti, models.CategoryKaro}, Filters{})
	assert.Equal(t, []int64{8}, got)
}

func TestReassemble(t *testing.T) {
	pool := []models.Product{
		product(1, models.CategoryLavabo, "", "", 100),
		product(2, models.CategoryLavabo, "", "", 200),
		product(3, models.CategoryLavabo, "", "", 300),
	}

	tests := []struct {
		name   string
		sorted []int64
		limit  int
		want   []int64
	}{
		{"keeps model order", []int64{3, 2, 1}, 2, []int64{3, 2}},
		{"ignores unknown ids and pads", []int64{99, 3}, 2, []int64{3, 1}},
		{"ignores duplicates", []int64{2, 2}, 2, []int64{2, 1}},
		{"empty answer is padded", nil, 2, []int64{1, 2}},
		{"single slot", []int64{3, 1}, 1, []int64{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reassemble(pool, tt.sorted, tt.limit))
		})
	}
}

func TestRanker_RankWithCapability(t *testing.T) {
	capability := &fakeCapability{ranking: descendingIDs(13)}
	ranker := NewRanker(capability, time.Second, zap.NewNop())

	needed := []models.ProductCategory{models.CategoryLavabo, models.CategoryKlozet, models.CategoryDusSeti}
	got, err := ranker.RankWithCapability(context.Background(), fixtureCatalog()[:11], needed, StyleProfile{Profile: "modern"}, NewAnswers())
	require.NoError(t, err)

	assert.Equal(t, []int64{3, 2, 5, 4, 8}, got)
	assert.Equal(t, 3, capability.callCount(RankingSchema.Name))
}

func TestRanker_RankWithCapabilityIsAllOrNothing(t *testing.T) {
	capability := &fakeCapability{rankingErr: errors.New("upstream 503")}
	ranker := NewRanker(capability, time.Second, zap.NewNop())

	got, err := ranker.RankWithCapability(context.Background(), fixtureCatalog(), nil, StyleProfile{}, NewAnswers())
	require.Error(t, err)
	assert.Nil(t, got)

	var ce *CapabilityError
	require.True(t, errors.As(AsCapabilityError("ranking", err), &ce))
	assert.Equal(t, CapabilityUnavailable, ce.Kind)
}

func TestRanker_TruncatesPool(t *testing.T) {
	var candidates []models.Product
	for id := int64(1); id <= 60; id++ {
		candidates = append(candidates, product(id, models.CategoryLavabo, "", "", id*1000))
	}
	capability := &fakeCapability{ranking: []int64{60, 55}}
	ranker := NewRanker(capability, time.Second, zap.NewNop())

	got, err := ranker.RankWithCapability(context.Background(), candidates, []models.ProductCategory{models.CategoryLavabo}, StyleProfile{}, NewAnswers())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, got, "ids outside the truncated pool are ignored")

	require.Len(t, capability.prompts, 1)
	assert.Contains(t, capability.prompts[0], `"id": 50,`)
	assert.NotContains(t, capability.prompts[0], `"id": 51,`)
}

type blockingCapability struct{}

func (blockingCapability) Generate(ctx context.Context, _, _ string, _ Schema) (json.RawMessage, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRanker_TimeoutIsCapabilityFailure(t *testing.T) {
	ranker := NewRanker(blockingCapability{}, 20*time.Millisecond, zap.NewNop())

	_, err := ranker.RankWithCapability(context.Background(), fixtureCatalog(), []models.ProductCategory{models.CategoryLavabo}, StyleProfile{}, NewAnswers())
	require.Error(t, err)
	assert.Equal(t, CapabilityTimeout, AsCapabilityError("ranking", err).Kind)
}

func TestRanker_UseAI(t *testing.T) {
	ranker := NewRanker(&fakeCapability{}, time.Second, zap.NewNop())
	two := fixtureCatalog()[:2]

	assert.True(t, ranker.UseAI(two, []models.ProductCategory{models.CategoryLavabo}))
	assert.False(t, ranker.UseAI(two, nil))
	assert.True(t, ranker.UseAI(fixtureCatalog()[:3], nil))

	noAI := NewRanker(nil, time.Second, zap.NewNop())
	assert.False(t, noAI.UseAI(fixtureCatalog(), []models.ProductCategory{models.CategoryLavabo}))
}
