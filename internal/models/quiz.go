package models

import (
	"time"

	"github.com/google/uuid"
)

type QuestionType string

const (
	QuestionTypeSingleChoice   QuestionType = "single_choice"
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeRange          QuestionType = "range"
	QuestionTypeImageSelect    QuestionType = "image_select"
)

type QuestionCategory string

const (
	QuestionCategoryRoomType QuestionCategory = "mekan_tipi"
	QuestionCategoryStyle    QuestionCategory = "stil"
	QuestionCategoryColor    QuestionCategory = "renk"
	QuestionCategoryBudget   QuestionCategory = "butce"
	QuestionCategorySize     QuestionCategory = "boyut"
	QuestionCategoryFeature  QuestionCategory = "ozellik"
)

type QuizOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	ImageURL string `json:"imageUrl,omitempty"`
}

type QuizQuestion struct {
	ID           int64            `db:"id" json:"id"`
	QuestionText string           `db:"question_text" json:"questionText"`
	QuestionType QuestionType     `db:"question_type" json:"questionType"`
	Category     QuestionCategory `db:"category" json:"category"`
	Options      []QuizOption     `db:"options" json:"options"`
	Order        int              `db:"sort_order" json:"order"`
	IsActive     bool             `db:"is_active" json:"isActive"`
	CreatedAt    time.Time        `db:"created_at" json:"createdAt"`
}

// QuizResult stores the raw answer payload verbatim so the exact submission
// can be replayed through the recommendation engine.
type QuizResult struct {
	ID                  int64      `db:"id"`
	UserID              *uuid.UUID `db:"user_id"`
	SessionID           string     `db:"session_id"`
	Email               string     `db:"email"`
	Name                string     `db:"name"`
	Answers             []byte     `db:"answers"`
	RecommendedProducts []int64    `db:"recommended_products"`
	Score               int        `db:"score"`
	Strategy            string     `db:"strategy"`
	StyleProfile        string     `db:"style_profile"`
	CompletedAt         time.Time  `db:"completed_at"`
}
