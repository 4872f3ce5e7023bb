package service

import (
	"context"
	"errors"
	"fmt"

	"vitrifiye-studio/internal/dto"
	"vitrifiye-studio/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProfileService assembles the signed-in user's overview page.
type ProfileService struct {
	users   UserStore
	configs *ConfigurationService
	quizzes *QuizService
	logger  *zap.Logger
}

func NewProfileService(users UserStore, configs *ConfigurationService, quizzes *QuizService, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		users:   users,
		configs: configs,
		quizzes: quizzes,
		logger:  logger,
	}
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	resp := &dto.ProfileResponse{User: newUserResponse(user)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		configs, err := s.configs.ListMine(gctx, userID)
		resp.Configurations = configs
		return err
	})
	g.Go(func() error {
		results, err := s.quizzes.ListMine(gctx, userID)
		resp.QuizResults = results
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resp, nil
}
