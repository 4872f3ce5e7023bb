package service

import (
	"context"
	"encoding/json"
	"testing"

	"vitrifiye-studio/internal/dto"
	"vitrifiye-studio/internal/recommend"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newQuizService(t *testing.T, cache *ResultCache) (*QuizService, *memoryResults) {
	t.Helper()
	store := testCatalog()
	engine := recommend.NewEngine(store, nil, recommend.Config{}, zap.NewNop())
	results := newMemoryResults()
	return NewQuizService(nil, results, engine, store, cache, zap.NewNop()), results
}

func submitRequest(t *testing.T, body string) *dto.SubmitQuizRequest {
	t.Helper()
	var req dto.SubmitQuizRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func TestQuizService_SubmitPersistsResult(t *testing.T) {
	svc, results := newQuizService(t, nil)
	userID := uuid.New()

	resp, err := svc.Submit(context.Background(), submitRequest(t, `{"answers":{"2":"modern","1":"banyo"},"email":"a@b.c"}`), &userID)
	require.NoError(t, err)

	assert.NotZero(t, resp.ResultID)
	_, err = uuid.Parse(resp.SessionID)
	assert.NoError(t, err)
	assert.Equal(t, string(recommend.StrategyRuleBased), resp.Strategy)
	assert.NotEmpty(t, resp.RecommendedProducts)
	assert.NotContains(t, resp.RecommendedProducts, int64(5), "inactive products are never recommended")

	stored, err := results.GetByID(context.Background(), resp.ResultID)
	require.NoError(t, err)
	assert.Equal(t, resp.RecommendedProducts, stored.RecommendedProducts)
	assert.Equal(t, resp.Score, stored.Score)
	assert.Equal(t, "a@b.c", stored.Email)
	assert.Equal(t, &userID, stored.UserID)
	assert.Equal(t, `{"1":"banyo","2":"modern"}`, string(stored.Answers), "question ids are stored in key order")
	assert.Equal(t, resp.StyleProfile.Profile, stored.StyleProfile)
}

func TestQuizService_GetResultResolvesProductsAndCaches(t *testing.T) {
	cache, _ := newTestCache(t)
	svc, results := newQuizService(t, cache)
	ctx := context.Background()

	submitted, err := svc.Submit(ctx, submitRequest(t, `{"answers":{"2":"modern"}}`), nil)
	require.NoError(t, err)

	first, err := svc.GetResult(ctx, submitted.ResultID)
	require.NoError(t, err)
	require.Len(t, first.Products, len(first.RecommendedProducts))
	for i, p := range first.Products {
		assert.Equal(t, first.RecommendedProducts[i], p.ID)
	}

	second, err := svc.GetResult(ctx, submitted.ResultID)
	require.NoError(t, err)
	assert.Equal(t, first.RecommendedProducts, second.RecommendedProducts)
	assert.Equal(t, 1, results.gets, "second read is served from the cache")
}

func TestQuizService_GetResultSkipsUnknownProducts(t *testing.T) {
	svc, results := newQuizService(t, nil)
	ctx := context.Background()

	submitted, err := svc.Submit(ctx, submitRequest(t, `{"answers":{}}`), nil)
	require.NoError(t, err)
	results.results[submitted.ResultID].RecommendedProducts = []int64{999, 1, 5}

	res, err := svc.GetResult(ctx, submitted.ResultID)
	require.NoError(t, err)
	require.Len(t, res.Products, 1)
	assert.Equal(t, int64(1), res.Products[0].ID)
}

func TestQuizService_GetResultNotFound(t *testing.T) {
	svc, _ := newQuizService(t, nil)

	_, err := svc.GetResult(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuizService_ListMine(t *testing.T) {
	svc, _ := newQuizService(t, nil)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Submit(ctx, submitRequest(t, `{"answers":{"2":"klasik"}}`), &userID)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, submitRequest(t, `{"answers":{"2":"modern"}}`), nil)
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Nil(t, mine[0].Products)
}
