package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vitrifiye-studio/internal/dto"
	"vitrifiye-studio/internal/models"
	"vitrifiye-studio/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPublicLimit = 20
	maxPublicLimit     = 100
)

var ErrForbidden = errors.New("forbidden")

type ConfigurationStore interface {
	Create(ctx context.Context, cfg *models.Configuration) error
	Update(ctx context.Context, cfg *models.Configuration) error
	GetByID(ctx context.Context, id int64) (*models.Configuration, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Configuration, error)
	ListPublic(ctx context.Context, limit uint64) ([]*models.Configuration, error)
	Delete(ctx context.Context, id int64) error
}

// Actor is the authenticated caller of a mutating operation.
type Actor struct {
	UserID uuid.UUID
	Role   models.UserRole
}

func (a Actor) canModify(cfg *models.Configuration) bool {
	return a.Role == models.RoleAdmin || cfg.OwnedBy(a.UserID)
}

type ConfigurationService struct {
	configs ConfigurationStore
	catalog ProductCatalog
	logger  *zap.Logger
}

func NewConfigurationService(configs ConfigurationStore, c ProductCatalog, logger *zap.Logger) *ConfigurationService {
	return &ConfigurationService{
		configs: configs,
		catalog: c,
		logger:  logger,
	}
}

// Create stores a new design. Anonymous callers (nil userID) get a session id.
func (s *ConfigurationService) Create(ctx context.Context, req *dto.CreateConfigurationRequest, userID *uuid.UUID) (*dto.ConfigurationResponse, error) {
	placed := dto.ToPlacedProducts(req.SelectedProducts)
	total, err := totalPrice(ctx, s.catalog, placed)
	if err != nil {
		return nil, fmt.Errorf("failed to price configuration: %w", err)
	}

	now := time.Now()
	cfg := &models.Configuration{
		UserID:           userID,
		QuizResultID:     req.QuizResultID,
		Title:            req.Title,
		RoomType:         models.RoomType(req.RoomType),
		SelectedProducts: placed,
		TotalPrice:       total,
		IsPublic:         req.IsPublic,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if userID == nil {
		cfg.SessionID = uuid.New().String()
	}

	if err := s.configs.Create(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to save configuration: %w", err)
	}

	s.logger.Info("Configuration created",
		zap.Int64("configuration_id", cfg.ID),
		zap.Int("products", len(placed)),
		zap.Int64("total_price", total),
	)

	resp := dto.NewConfigurationResponse(cfg, nil)
	return &resp, nil
}

func (s *ConfigurationService) Update(ctx context.Context, id int64, req *dto.UpdateConfigurationRequest, actor Actor) (*dto.ConfigurationResponse, error) {
	cfg, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canModify(cfg) {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		cfg.Title = *req.Title
	}
	if req.IsPublic != nil {
		cfg.IsPublic = *req.IsPublic
	}
	if req.PreviewImageURL != nil {
		cfg.PreviewImageURL = *req.PreviewImageURL
	}
	if req.SelectedProducts != nil {
		cfg.SelectedProducts = dto.ToPlacedProducts(req.SelectedProducts)
		total, err := totalPrice(ctx, s.catalog, cfg.SelectedProducts)
		if err != nil {
			return nil, fmt.Errorf("failed to price configuration: %w", err)
		}
		cfg.TotalPrice = total
	}
	cfg.UpdatedAt = time.Now()

	if err := s.configs.Update(ctx, cfg); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update configuration: %w", err)
	}

	resp := dto.NewConfigurationResponse(cfg, nil)
	return &resp, nil
}

// Get returns the design with its resolved products.
func (s *ConfigurationService) Get(ctx context.Context, id int64) (*dto.ConfigurationResponse, error) {
	cfg, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	products, err := s.catalog.ByIDs(ctx, cfg.ProductIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	resp := dto.NewConfigurationResponse(cfg, products)
	return &resp, nil
}

func (s *ConfigurationService) ListMine(ctx context.Context, userID uuid.UUID) ([]dto.ConfigurationResponse, error) {
	configs, err := s.configs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list configurations: %w", err)
	}
	return toConfigurationResponses(configs), nil
}

func (s *ConfigurationService) ListPublic(ctx context.Context, limit int) ([]dto.ConfigurationResponse, error) {
	if limit <= 0 {
		limit = defaultPublicLimit
	}
	if limit > maxPublicLimit {
		limit = maxPublicLimit
	}

	configs, err := s.configs.ListPublic(ctx, uint64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list public configurations: %w", err)
	}
	return toConfigurationResponses(configs), nil
}

func (s *ConfigurationService) Delete(ctx context.Context, id int64, actor Actor) error {
	cfg, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !actor.canModify(cfg) {
		return ErrForbidden
	}

	if err := s.configs.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete configuration: %w", err)
	}

	s.logger.Info("Configuration deleted",
		zap.Int64("configuration_id", id),
		zap.String("actor", actor.UserID.String()),
	)
	return nil
}

func (s *ConfigurationService) load(ctx context.Context, id int64) (*models.Configuration, error) {
	cfg, err := s.configs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func toConfigurationResponses(configs []*models.Configuration) []dto.ConfigurationResponse {
	out := make([]dto.ConfigurationResponse, 0, len(configs))
	for _, cfg := range configs {
		out = append(out, dto.NewConfigurationResponse(cfg, nil))
	}
	return out
}
