package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"vitrifiye-studio/internal/models"

	"github.com/google/uuid"
	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

var configurationColumns = []string{
	"id", "user_id", "COALESCE(session_id, '')", "quiz_result_id", "title", "room_type",
	"selected_products", "total_price", "COALESCE(preview_image_url, '')", "is_public", "created_at", "updated_at",
}

type ConfigurationRepository struct {
	db     DB
	logger *zap.Logger
}

func NewConfigurationRepository(db DB, logger *zap.Logger) *ConfigurationRepository {
	return &ConfigurationRepository{
		db:     db,
		logger: logger,
	}
}

func scanConfiguration(row rowScanner) (*models.Configuration, error) {
	var cfg models.Configuration
	var selected []byte
	if err := row.Scan(
		&cfg.ID, &cfg.UserID, &cfg.SessionID, &cfg.QuizResultID, &cfg.Title, &cfg.RoomType,
		&selected, &cfg.TotalPrice, &cfg.PreviewImageURL, &cfg.IsPublic, &cfg.CreatedAt, &cfg.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(selected, &cfg.SelectedProducts); err != nil {
		return nil, fmt.Errorf("configuration %d has malformed products: %w", cfg.ID, err)
	}
	return &cfg, nil
}

func (r *ConfigurationRepository) Create(ctx context.Context, cfg *models.Configuration) error {
	selected, err := json.Marshal(cfg.SelectedProducts)
	if err != nil {
		return err
	}

	query := squirrel.Insert("configurations").
		Columns("user_id", "session_id", "quiz_result_id", "title", "room_type", "selected_products",
			"total_price", "preview_image_url", "is_public", "created_at", "updated_at").
		Values(cfg.UserID, nullString(cfg.SessionID), cfg.QuizResultID, cfg.Title, cfg.RoomType, string(selected),
			cfg.TotalPrice, nullString(cfg.PreviewImageURL), cfg.IsPublic, cfg.CreatedAt, cfg.UpdatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&cfg.ID)
}

func (r *ConfigurationRepository) Update(ctx context.Context, cfg *models.Configuration) error {
	selected, err := json.Marshal(cfg.SelectedProducts)
	if err != nil {
		return err
	}

	query := squirrel.Update("configurations").
		Set("title", cfg.Title).
		Set("selected_products", string(selected)).
		Set("total_price", cfg.TotalPrice).
		Set("preview_image_url", nullString(cfg.PreviewImageURL)).
		Set("is_public", cfg.IsPublic).
		Set("updated_at", cfg.UpdatedAt).
		Where(squirrel.Eq{"id": cfg.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ConfigurationRepository) GetByID(ctx context.Context, id int64) (*models.Configuration, error) {
	query := squirrel.Select(configurationColumns...).
		From("configurations").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	cfg, err := scanConfiguration(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return cfg, nil
}

func (r *ConfigurationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Configuration, error) {
	return r.list(ctx, squirrel.Select(configurationColumns...).
		From("configurations").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("updated_at DESC"))
}

func (r *ConfigurationRepository) ListPublic(ctx context.Context, limit uint64) ([]*models.Configuration, error) {
	return r.list(ctx, squirrel.Select(configurationColumns...).
		From("configurations").
		Where(squirrel.Eq{"is_public": true}).
		OrderBy("created_at DESC").
		Limit(limit))
}

func (r *ConfigurationRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Configuration, error) {
	sql, args, err := query.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configurations []*models.Configuration
	for rows.Next() {
		cfg, err := scanConfiguration(rows)
		if err != nil {
			return nil, err
		}
		configurations = append(configurations, cfg)
	}

	return configurations, rows.Err()
}

func (r *ConfigurationRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("configurations").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
