package dto

import (
	"encoding/json"
	"time"

	"vitrifiye-studio/internal/models"
	"vitrifiye-studio/internal/recommend"
)

type SubmitQuizRequest struct {
	Answers recommend.Answers `json:"answers"`
	Email   string            `json:"email" validate:"omitempty,email"`
	Name    string            `json:"name" validate:"omitempty,max=100"`
}

type SubmitQuizResponse struct {
	ResultID            int64                   `json:"resultId"`
	SessionID           string                  `json:"sessionId"`
	RecommendedProducts []int64                 `json:"recommendedProducts"`
	Score               int                     `json:"score"`
	Strategy            string                  `json:"strategy"`
	StyleProfile        *recommend.StyleProfile `json:"styleProfile,omitempty"`
}

type QuizResultResponse struct {
	ID                  int64             `json:"id"`
	SessionID           string            `json:"sessionId"`
	Answers             json.RawMessage   `json:"answers"`
	RecommendedProducts []int64           `json:"recommendedProducts"`
	Products            []ProductResponse `json:"products,omitempty"`
	Score               int               `json:"score"`
	Strategy            string            `json:"strategy,omitempty"`
	StyleProfile        string            `json:"styleProfile,omitempty"`
	CompletedAt         time.Time         `json:"completedAt"`
}

// NewQuizResultResponse builds the response; products may be nil for list views.
func NewQuizResultResponse(res *models.QuizResult, products []models.Product) QuizResultResponse {
	answers := json.RawMessage(res.Answers)
	if len(answers) == 0 {
		answers = json.RawMessage(`{}`)
	}
	ids := res.RecommendedProducts
	if ids == nil {
		ids = []int64{}
	}

	out := QuizResultResponse{
		ID:                  res.ID,
		SessionID:           res.SessionID,
		Answers:             answers,
		RecommendedProducts: ids,
		Score:               res.Score,
		Strategy:            res.Strategy,
		StyleProfile:        res.StyleProfile,
		CompletedAt:         res.CompletedAt,
	}
	if products != nil {
		out.Products = NewProductResponses(products)
	}
	return out
}
