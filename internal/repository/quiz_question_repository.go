package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"vitrifiye-studio/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type QuizQuestionRepository struct {
	db     DB
	logger *zap.Logger
}

func NewQuizQuestionRepository(db DB, logger *zap.Logger) *QuizQuestionRepository {
	return &QuizQuestionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *QuizQuestionRepository) ListActive(ctx context.Context) ([]models.QuizQuestion, error) {
	query := squirrel.Select("id", "question_text", "question_type", "category", "options", "sort_order", "is_active", "created_at").
		From("quiz_questions").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("sort_order", "id").
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

	var questions []models.QuizQuestion
	for rows.Next() {
		var q models.QuizQuestion
		var options []byte
		if err := rows.Scan(
			&q.ID, &q.QuestionText, &q.QuestionType, &q.Category, &options, &q.Order, &q.IsActive, &q.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return nil, fmt.Errorf("question %d has malformed options: %w", q.ID, err)
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

func (r *QuizQuestionRepository) Upsert(ctx context.Context, questions []models.QuizQuestion) error {
	if len(questions) == 0 {
		return nil
	}

	builder := squirrel.Insert("quiz_questions").
		Columns("id", "question_text", "question_type", "category", "options", "sort_order", "is_active", "created_at").
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			question_text = EXCLUDED.question_text, question_type = EXCLUDED.question_type,
			category = EXCLUDED.category, options = EXCLUDED.options,
			sort_order = EXCLUDED.sort_order, is_active = EXCLUDED.is_active`).
		PlaceholderFormat(squirrel.Dollar)

	for _, q := range questions {
		options, err := json.Marshal(q.Options)
		if err != nil {
			return err
		}
		builder = builder.Values(q.ID, q.QuestionText, q.QuestionType, q.Category, string(options), q.Order, q.IsActive, q.CreatedAt)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
