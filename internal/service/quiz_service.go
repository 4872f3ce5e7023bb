package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vitrifiye-studio/internal/dto"
	"vitrifiye-studio/internal/models"
	"vitrifiye-studio/internal/recommend"
	"vitrifiye-studio/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type QuestionStore interface {
	ListActive(ctx context.Context) ([]models.QuizQuestion, error)
}

type QuizResultStore interface {
	Create(ctx context.Context, result *models.QuizResult) error
	GetByID(ctx context.Context, id int64) (*models.QuizResult, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.QuizResult, error)
}

type QuizService struct {
	questions QuestionStore
	results   QuizResultStore
	engine    *recommend.Engine
	catalog   ProductCatalog
	cache     *ResultCache
	logger    *zap.Logger
}

func NewQuizService(
	questions QuestionStore,
	results QuizResultStore,
	engine *recommend.Engine,
	c ProductCatalog,
	cache *ResultCache,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		questions: questions,
		results:   results,
		engine:    engine,
		catalog:   c,
		cache:     cache,
		logger:    logger,
	}
}

func (s *QuizService) Questions(ctx context.Context) ([]models.QuizQuestion, error) {
	questions, err := s.questions.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	if questions == nil {
		questions = []models.QuizQuestion{}
	}
	return questions, nil
}

// Submit runs the recommendation engine on the answers and stores the outcome
// under a fresh session id. userID is nil for anonymous submissions.
func (s *QuizService) Submit(ctx context.Context, req *dto.SubmitQuizRequest, userID *uuid.UUID) (*dto.SubmitQuizResponse, error) {
	rec, err := s.engine.Recommend(ctx, req.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate recommendations: %w", err)
	}

	answers, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}

	result := &models.QuizResult{
		UserID:              userID,
		SessionID:           uuid.New().String(),
		Email:               req.Email,
		Name:                req.Name,
		Answers:             answers,
		RecommendedProducts: rec.IDs,
		Score:               rec.Score,
		Strategy:            string(rec.Strategy),
		StyleProfile:        sanitizeUTF8(rec.StyleProfile.Profile),
		CompletedAt:         time.Now(),
	}

	if err := s.results.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save quiz result: %w", err)
	}

	s.logger.Info("Quiz submitted",
		zap.Int64("result_id", result.ID),
		zap.String("session_id", result.SessionID),
		zap.String("strategy", result.Strategy),
		zap.Int("recommended", len(result.RecommendedProducts)),
	)

	ids := rec.IDs
	if ids == nil {
		ids = []int64{}
	}
	profile := rec.StyleProfile
	return &dto.SubmitQuizResponse{
		ResultID:            result.ID,
		SessionID:           result.SessionID,
		RecommendedProducts: ids,
		Score:               rec.Score,
		Strategy:            string(rec.Strategy),
		StyleProfile:        &profile,
	}, nil
}

// GetResult resolves the stored result together with its product records.
// Products no longer in the active catalog are skipped.
func (s *QuizService) GetResult(ctx context.Context, id int64) (*dto.QuizResultResponse, error) {
	if cached, ok := s.cache.Get(ctx, id); ok {
		return cached, nil
	}

	result, err := s.results.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load quiz result: %w", err)
	}

	products, err := s.catalog.ByIDs(ctx, result.RecommendedProducts)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	resp := dto.NewQuizResultResponse(result, products)
	s.cache.Set(ctx, &resp)
	return &resp, nil
}

func (s *QuizService) ListMine(ctx context.Context, userID uuid.UUID) ([]dto.QuizResultResponse, error) {
	results, err := s.results.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz results: %w", err)
	}

	out := make([]dto.QuizResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, dto.NewQuizResultResponse(r, nil))
	}
	return out, nil
}
