package recommend

import (
	"context"
	"fmt"
	"time"

	"vitrifiye-studio/internal/metrics"
	"vitrifiye-studio/internal/models"

	"go.uber.org/zap"
)

type Config struct {
	AIEnabled         bool
	CapabilityTimeout time.Duration
}

// Result is one recommendation run. IDs are distinct, active and at most
// MaxPerCategory per ranked category.
type Result struct {
	IDs           []int64                  `json:"recommendedProductIds"`
	Score         int                      `json:"score"`
	Strategy      Strategy                 `json:"strategy"`
	ProfileSource ProfileSource            `json:"profileSource"`
	StyleProfile  StyleProfile             `json:"styleProfile"`
	Tier          Tier                     `json:"-"`
	Filters       Filters                  `json:"-"`
	Needed        []models.ProductCategory `json:"-"`
}

// Engine composes mapping, candidate selection, profiling and ranking. It
// holds no per-request state and is safe for concurrent use.
type Engine struct {
	selector *Selector
	ranker   *Ranker
	profiles *ProfileExtractor
	timeout  time.Duration
	logger   *zap.Logger
}

func NewEngine(c Catalog, capability Capability, cfg Config, logger *zap.Logger) *Engine {
	if !cfg.AIEnabled {
		capability = nil
	}
	return &Engine{
		selector: NewSelector(c, logger),
		ranker:   NewRanker(capability, cfg.CapabilityTimeout, logger),
		profiles: NewProfileExtractor(capability, logger),
		timeout:  cfg.CapabilityTimeout,
		logger:   logger,
	}
}

// Recommend fails only when the catalog cannot be read. Capability problems
// degrade to the fallback profile and rule-based ranking.
func (e *Engine) Recommend(ctx context.Context, answers Answers) (*Result, error) {
	start := time.Now()

	filters, needed := MapAnswersToFilters(answers)

	selection, err := e.selector.Select(ctx, filters, needed)
	if err != nil {
		return nil, fmt.Errorf("failed to select candidates: %w", err)
	}
	metrics.RecommendationTier.WithLabelValues(selection.Tier.String()).Inc()

	result := &Result{
		Strategy:      StrategyRuleBased,
		ProfileSource: ProfileFromFallback,
		Tier:          selection.Tier,
		Filters:       filters,
		Needed:        needed,
	}

	if e.ranker.UseAI(selection.Products, needed) {
		result.StyleProfile, result.ProfileSource = e.buildProfile(ctx, answers)

		ids, err := e.ranker.RankWithCapability(ctx, selection.Products, needed, result.StyleProfile, answers)
		if err != nil {
			ce := AsCapabilityError("ranking", err)
			metrics.CapabilityFailures.WithLabelValues(ce.Op, string(ce.Kind)).Inc()
			e.logger.Warn("AI ranking failed, falling back to rule-based ranking",
				zap.String("kind", string(ce.Kind)),
				zap.Error(err),
			)
		} else {
			result.IDs = ids
			result.Strategy = StrategyAI
		}
	} else {
		result.StyleProfile = FallbackStyleProfile(answers)
	}

	if result.Strategy == StrategyRuleBased {
		result.IDs = RankRuleBased(selection.Products, needed, filters)
	}

	result.Score = MatchScore(answers.AnsweredCount(), len(result.IDs))

	metrics.RecommendationRuns.WithLabelValues(string(result.Strategy), string(result.ProfileSource)).Inc()
	metrics.RecommendationDuration.WithLabelValues(string(result.Strategy)).Observe(time.Since(start).Seconds())

	e.logger.Info("Recommendation completed",
		zap.String("strategy", string(result.Strategy)),
		zap.String("profile_source", string(result.ProfileSource)),
		zap.String("tier", selection.Tier.String()),
		zap.Int("candidates", len(selection.Products)),
		zap.Int("recommended", len(result.IDs)),
		zap.Int("score", result.Score),
	)

	return result, nil
}

func (e *Engine) buildProfile(ctx context.Context, answers Answers) (StyleProfile, ProfileSource) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	return e.profiles.Build(ctx, answers)
}
