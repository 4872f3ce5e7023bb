package dto

import (
	"time"

	"vitrifiye-studio/internal/models"
)

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PlacedProduct struct {
	ProductID int64    `json:"productId" validate:"required,gt=0"`
	Position  Position `json:"position"`
	Rotation  *float64 `json:"rotation,omitempty"`
}

type CreateConfigurationRequest struct {
	Title            string          `json:"title" validate:"required,min=1,max=200"`
	RoomType         string          `json:"roomType" validate:"required,oneof=banyo mutfak tuvalet lavabo"`
	SelectedProducts []PlacedProduct `json:"selectedProducts" validate:"dive"`
	QuizResultID     *int64          `json:"quizResultId" validate:"omitempty,gt=0"`
	IsPublic         bool            `json:"isPublic"`
}

// UpdateConfigurationRequest leaves nil fields unchanged.
type UpdateConfigurationRequest struct {
	Title            *string         `json:"title" validate:"omitempty,min=1,max=200"`
	SelectedProducts []PlacedProduct `json:"selectedProducts" validate:"omitempty,dive"`
	PreviewImageURL  *string         `json:"previewImageUrl" validate:"omitempty,url"`
	IsPublic         *bool           `json:"isPublic"`
}

type ConfigurationResponse struct {
	ID               int64             `json:"id"`
	UserID           *string           `json:"userId,omitempty"`
	SessionID        string            `json:"sessionId,omitempty"`
	QuizResultID     *int64            `json:"quizResultId,omitempty"`
	Title            string            `json:"title"`
	RoomType         string            `json:"roomType"`
	SelectedProducts []PlacedProduct   `json:"selectedProducts"`
	TotalPrice       int64             `json:"totalPrice"`
	PreviewImageURL  string            `json:"previewImageUrl,omitempty"`
	IsPublic         bool              `json:"isPublic"`
	Products         []ProductResponse `json:"products,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

func ToPlacedProducts(in []PlacedProduct) []models.PlacedProduct {
	out := make([]models.PlacedProduct, 0, len(in))
	for _, p := range in {
		out = append(out, models.PlacedProduct{
			ProductID: p.ProductID,
			Position:  models.Position{X: p.Position.X, Y: p.Position.Y},
			Rotation:  p.Rotation,
		})
	}
	return out
}

func NewConfigurationResponse(cfg *models.Configuration, products []models.Product) ConfigurationResponse {
	placed := make([]PlacedProduct, 0, len(cfg.SelectedProducts))
	for _, p := range cfg.SelectedProducts {
		placed = append(placed, PlacedProduct{
			ProductID: p.ProductID,
			Position:  Position{X: p.Position.X, Y: p.Position.Y},
			Rotation:  p.Rotation,
		})
	}

	out := ConfigurationResponse{
		ID:               cfg.ID,
		SessionID:        cfg.SessionID,
		QuizResultID:     cfg.QuizResultID,
		Title:            cfg.Title,
		RoomType:         string(cfg.RoomType),
		SelectedProducts: placed,
		TotalPrice:       cfg.TotalPrice,
		PreviewImageURL:  cfg.PreviewImageURL,
		IsPublic:         cfg.IsPublic,
		CreatedAt:        cfg.CreatedAt,
		UpdatedAt:        cfg.UpdatedAt,
	}
	if cfg.UserID != nil {
		id := cfg.UserID.String()
		out.UserID = &id
	}
	if products != nil {
		out.Products = NewProductResponses(products)
	}
	return out
}
