package repository

import (
	"context"
	"encoding/json"

	"vitrifiye-studio/internal/models"

	"github.com/google/uuid"
	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

var quizResultColumns = []string{
	"id", "user_id", "session_id", "COALESCE(email, '')", "COALESCE(name, '')", "answers",
	"COALESCE(recommended_products, '[]'::jsonb)", "COALESCE(score, 0)", "COALESCE(strategy, '')",
	"COALESCE(style_profile, '')", "completed_at",
}

type QuizResultRepository struct {
	db     DB
	logger *zap.Logger
}

func NewQuizResultRepository(db DB, logger *zap.Logger) *QuizResultRepository {
	return &QuizResultRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the result and stores the generated id on it.
func (r *QuizResultRepository) Create(ctx context.Context, result *models.QuizResult) error {
	recommended, err := json.Marshal(result.RecommendedProducts)
	if err != nil {
		return err
	}

	query := squirrel.Insert("quiz_results").
		Columns("user_id", "session_id", "email", "name", "answers", "recommended_products", "score", "strategy", "style_profile", "completed_at").
		Values(result.UserID, result.SessionID, nullString(result.Email), nullString(result.Name), string(result.Answers),
			string(recommended), result.Score, result.Strategy, result.StyleProfile, result.CompletedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&result.ID)
}

func (r *QuizResultRepository) scan(row rowScanner) (*models.QuizResult, error) {
	var res models.QuizResult
	var recommended []byte
	if err := row.Scan(
		&res.ID, &res.UserID, &res.SessionID, &res.Email, &res.Name, &res.Answers,
		&recommended, &res.Score, &res.Strategy, &res.StyleProfile, &res.CompletedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(recommended, &res.RecommendedProducts); err != nil {
		r.logger.Warn("Malformed recommended products on quiz result", zap.Int64("result_id", res.ID), zap.Error(err))
		res.RecommendedProducts = nil
	}
	return &res, nil
}

func (r *QuizResultRepository) GetByID(ctx context.Context, id int64) (*models.QuizResult, error) {
	query := squirrel.Select(quizResultColumns...).
		From("quiz_results").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	res, err := r.scan(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, notFound(err)
	}
	return res, nil
}

func (r *QuizResultRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.QuizResult, error) {
	query := squirrel.Select(quizResultColumns...).
		From("quiz_results").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("completed_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.QuizResult
	for rows.Next() {
		res, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	return results, rows.Err()
}
