package recommend

import (
	"context"
	"sort"
	"time"

	"vitrifiye-studio/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxAIPool bounds the products sent to the model per category.
	MaxAIPool       = 50
	MaxPerCategory  = 2
	minAICandidates = 3
)

// DefaultCategories is used when the user did not name any needed category.
var DefaultCategories = []models.ProductCategory{
	models.CategoryLavabo,
	models.CategoryKlozet,
	models.CategoryBatarya,
	models.CategoryDusSeti,
	models.CategoryKaro,
	models.CategoryAksesuar,
}

type Strategy string

const (
	StrategyAI        Strategy = "ai"
	StrategyRuleBased Strategy = "rule_based"
)

type Ranker struct {
	capability Capability
	timeout    time.Duration
	logger     *zap.Logger
}

// NewRanker accepts a nil capability; ranking is then always rule based.
func NewRanker(c Capability, timeout time.Duration, logger *zap.Logger) *Ranker {
	return &Ranker{capability: c, timeout: timeout, logger: logger}
}

// UseAI reports whether the AI path should be attempted for this pool.
func (r *Ranker) UseAI(candidates []models.Product, needed []models.ProductCategory) bool {
	if r.capability == nil {
		return false
	}
	return len(needed) > 0 || len(candidates) >= minAICandidates
}

func categoriesToRank(needed []models.ProductCategory) []models.ProductCategory {
	if len(needed) > 0 {
		return needed
	}
	return DefaultCategories
}

func groupByCategory(candidates []models.Product) map[models.ProductCategory][]models.Product {
	groups := make(map[models.ProductCategory][]models.Product)
	for _, p := range candidates {
		groups[p.Category] = append(groups[p.Category], p)
	}
	return groups
}

func perCategoryCap(n int) int {
	if n >= MaxPerCategory {
		return MaxPerCategory
	}
	return n
}

// RankRuleBased is deterministic and makes no external calls. With a full
// budget band products closest to the band midpoint come first, otherwise the
// cheapest. Ties keep candidate order.
func RankRuleBased(candidates []models.Product, needed []models.ProductCategory, filters Filters) []int64 {
	groups := groupByCategory(candidates)
	picks := make([][]int64, 0, len(groups))

	for _, category := range categoriesToRank(needed) {
		inCategory := append([]models.Product(nil), groups[category]...)
		if len(inCategory) == 0 {
			continue
		}

		if filters.HasBudget() {
			mid := filters.Midpoint()
			sort.SliceStable(inCategory, func(i, j int) bool {
				return distance(inCategory[i].Price, mid) < distance(inCategory[j].Price, mid)
			})
		} else {
			sort.SliceStable(inCategory, func(i, j int) bool {
				return inCategory[i].Price < inCategory[j].Price
			})
		}

		ids := make([]int64, 0, MaxPerCategory)
		for _, p := range inCategory[:perCategoryCap(len(inCategory))] {
			ids = append(ids, p.ID)
		}
		picks = append(picks, ids)
	}
	return flattenUnique(picks)
}

func distance(price int64, mid float64) float64 {
	d := float64(price) - mid
	if d < 0 {
		return -d
	}
	return d
}

// RankWithCapability ranks every category through the capability in
// parallel. Any failure aborts the whole pass and nothing partial is returned.
func (r *Ranker) RankWithCapability(ctx context.Context, candidates []models.Product, needed []models.ProductCategory, profile StyleProfile, answers Answers) ([]int64, error) {
	categories := categoriesToRank(needed)
	groups := groupByCategory(candidates)
	picks := make([][]int64, len(categories))

	g, gctx := errgroup.WithContext(ctx)
	for i, category := range categories {
		inCategory := groups[category]
		if len(inCategory) == 0 {
			continue
		}
		g.Go(func() error {
			ids, err := r.rankCategory(gctx, inCategory, profile, answers)
			if err != nil {
				r.logger.Warn("AI ranking failed for category",
					zap.String("category", string(category)),
					zap.Error(err),
				)
				return err
			}
			picks[i] = ids
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return flattenUnique(picks), nil
}

func (r *Ranker) rankCategory(ctx context.Context, inCategory []models.Product, profile StyleProfile, answers Answers) ([]int64, error) {
	pool := inCategory
	if len(pool) > MaxAIPool {
		pool = pool[:MaxAIPool]
	}
	limit := perCategoryCap(len(inCategory))

	prompt, err := buildRankingPrompt(profile.Profile, answers, pool, limit)
	if err != nil {
		return nil, &CapabilityError{Op: "ranking", Kind: CapabilityInvalidResponse, Err: err}
	}

	callCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	sorted, err := GenerateRanking(callCtx, r.capability, rankingSystemInstruction, prompt)
	if err != nil {
		return nil, err
	}
	return reassemble(pool, sorted, limit), nil
}

// reassemble keeps the model's order for ids that exist in the pool, then
// fills remaining slots with untouched pool products in their original order.
func reassemble(pool []models.Product, sorted []int64, limit int) []int64 {
	inPool := make(map[int64]bool, len(pool))
	for _, p := range pool {
		inPool[p.ID] = true
	}

	out := make([]int64, 0, limit)
	taken := make(map[int64]bool, limit)
	for _, id := range sorted {
		if len(out) == limit {
			break
		}
		if !inPool[id] || taken[id] {
			continue
		}
		taken[id] = true
		out = append(out, id)
	}
	for _, p := range pool {
		if len(out) == limit {
			break
		}
		if taken[p.ID] {
			continue
		}
		taken[p.ID] = true
		out = append(out, p.ID)
	}
	return out
}

func flattenUnique(picks [][]int64) []int64 {
	seen := make(map[int64]bool)
	out := make([]int64, 0)
	for _, ids := range picks {
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
